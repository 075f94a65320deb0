package awsec2

import (
	"context"
	"errors"
	"io"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costsift/costsift/model"
)

type mockEC2API struct {
	describeInstancesFunc func(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
}

func (m *mockEC2API) DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	return m.describeInstancesFunc(ctx, params, optFns...)
}

type mockMetrics struct {
	averageFunc func(ctx context.Context, namespace, metricName string, dims map[string]string, windowDays int) (*float64, error)
	sumFunc     func(ctx context.Context, namespace, metricName string, dims map[string]string, windowDays int) (*float64, error)
}

func (m *mockMetrics) AverageOverWindow(ctx context.Context, namespace, metricName string, dims map[string]string, windowDays int) (*float64, error) {
	return m.averageFunc(ctx, namespace, metricName, dims, windowDays)
}

func (m *mockMetrics) SumOverWindow(ctx context.Context, namespace, metricName string, dims map[string]string, windowDays int) (*float64, error) {
	return m.sumFunc(ctx, namespace, metricName, dims, windowDays)
}

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestFetchMapsInstances(t *testing.T) {
	mock := &mockEC2API{
		describeInstancesFunc: func(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
			require.Len(t, params.Filters, 1)
			assert.Equal(t, "instance-state-name", *params.Filters[0].Name)
			assert.Equal(t, []string{"running"}, params.Filters[0].Values)
			return &ec2.DescribeInstancesOutput{
				Reservations: []types.Reservation{
					{
						Instances: []types.Instance{
							{
								InstanceId:   awssdk.String("i-0abc"),
								InstanceType: types.InstanceTypeT2Micro,
								State:        &types.InstanceState{Name: types.InstanceStateNameRunning},
								Tags: []types.Tag{
									{Key: awssdk.String("Name"), Value: awssdk.String("web-1")},
									{Key: awssdk.String("team"), Value: awssdk.String("core")},
								},
							},
						},
					},
				},
			}, nil
		},
	}
	metrics := &mockMetrics{
		averageFunc: func(ctx context.Context, namespace, metricName string, dims map[string]string, windowDays int) (*float64, error) {
			assert.Equal(t, "AWS/EC2", namespace)
			assert.Equal(t, "CPUUtilization", metricName)
			assert.Equal(t, map[string]string{"InstanceId": "i-0abc"}, dims)
			assert.Equal(t, 14, windowDays)
			return awssdk.Float64(2.31), nil
		},
	}
	svc := NewService(mock, metrics, testLogger(), "ap-south-1", 14)

	records, err := svc.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	record := records[0]
	assert.Equal(t, "i-0abc", record.ID)
	assert.Equal(t, "web-1", record.Name)
	assert.Equal(t, model.KindCompute, record.Kind)
	assert.Equal(t, "ap-south-1", record.Region)
	assert.Equal(t, "t2.micro", record.BillingDimension)
	assert.Equal(t, "core", record.Tags["team"])
	require.NotNil(t, record.Compute)
	require.NotNil(t, record.Compute.AvgCPUPercent)
	assert.InDelta(t, 2.31, *record.Compute.AvgCPUPercent, 0.0001)
	assert.Equal(t, "running", record.Compute.State)
	assert.Equal(t, 14, record.Compute.WindowDays)
}

func TestFetchPaginates(t *testing.T) {
	callCount := 0
	mock := &mockEC2API{
		describeInstancesFunc: func(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
			callCount++
			if callCount == 1 {
				assert.Nil(t, params.NextToken)
				return &ec2.DescribeInstancesOutput{
					Reservations: []types.Reservation{{Instances: []types.Instance{{
						InstanceId:   awssdk.String("i-page1"),
						InstanceType: types.InstanceTypeT3Medium,
					}}}},
					NextToken: awssdk.String("token2"),
				}, nil
			}
			assert.Equal(t, "token2", *params.NextToken)
			return &ec2.DescribeInstancesOutput{
				Reservations: []types.Reservation{{Instances: []types.Instance{{
					InstanceId:   awssdk.String("i-page2"),
					InstanceType: types.InstanceTypeT3Large,
				}}}},
			}, nil
		},
	}
	metrics := &mockMetrics{
		averageFunc: func(ctx context.Context, namespace, metricName string, dims map[string]string, windowDays int) (*float64, error) {
			return awssdk.Float64(50.0), nil
		},
	}
	svc := NewService(mock, metrics, testLogger(), "us-east-1", 14)

	records, err := svc.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, callCount)
	require.Len(t, records, 2)
	assert.Equal(t, "i-page1", records[0].ID)
	assert.Equal(t, "i-page2", records[1].ID)
}

func TestFetchToleratesMissingMetrics(t *testing.T) {
	mock := &mockEC2API{
		describeInstancesFunc: func(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
			return &ec2.DescribeInstancesOutput{
				Reservations: []types.Reservation{{Instances: []types.Instance{{
					InstanceId:   awssdk.String("i-0abc"),
					InstanceType: types.InstanceTypeT2Micro,
				}}}},
			}, nil
		},
	}
	metrics := &mockMetrics{
		averageFunc: func(ctx context.Context, namespace, metricName string, dims map[string]string, windowDays int) (*float64, error) {
			return nil, errors.New("AccessDenied")
		},
	}
	svc := NewService(mock, metrics, testLogger(), "us-east-1", 14)

	records, err := svc.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].Compute)
	assert.Nil(t, records[0].Compute.AvgCPUPercent)
}

func TestFetchWrapsAPIError(t *testing.T) {
	apiErr := errors.New("UnauthorizedOperation")
	mock := &mockEC2API{
		describeInstancesFunc: func(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
			return nil, apiErr
		},
	}
	metrics := &mockMetrics{}
	svc := NewService(mock, metrics, testLogger(), "us-east-1", 14)

	records, err := svc.Fetch(context.Background())
	require.Error(t, err)
	assert.Nil(t, records)
	assert.ErrorIs(t, err, apiErr)
	assert.Contains(t, err.Error(), "DescribeInstances")
}
