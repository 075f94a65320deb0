package awscloudwatch

import (
	"context"
	"errors"
	"testing"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCloudWatchAPI struct {
	getMetricStatisticsFunc func(ctx context.Context, params *cloudwatch.GetMetricStatisticsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error)
}

func (m *mockCloudWatchAPI) GetMetricStatistics(ctx context.Context, params *cloudwatch.GetMetricStatisticsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error) {
	return m.getMetricStatisticsFunc(ctx, params, optFns...)
}

func TestAverageOverWindow(t *testing.T) {
	tests := []struct {
		name       string
		datapoints []cwtypes.Datapoint
		want       *float64
	}{
		{
			name: "averages datapoints",
			datapoints: []cwtypes.Datapoint{
				{Average: awssdk.Float64(2.0)},
				{Average: awssdk.Float64(4.0)},
				{Average: awssdk.Float64(6.0)},
			},
			want: awssdk.Float64(4.0),
		},
		{
			name: "single datapoint",
			datapoints: []cwtypes.Datapoint{
				{Average: awssdk.Float64(97.5)},
			},
			want: awssdk.Float64(97.5),
		},
		{
			name:       "no datapoints means no metric",
			datapoints: []cwtypes.Datapoint{},
			want:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockCloudWatchAPI{
				getMetricStatisticsFunc: func(ctx context.Context, params *cloudwatch.GetMetricStatisticsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error) {
					assert.Equal(t, "AWS/EC2", *params.Namespace)
					assert.Equal(t, "CPUUtilization", *params.MetricName)
					assert.Equal(t, int32(3600), *params.Period)
					assert.Equal(t, []cwtypes.Statistic{cwtypes.StatisticAverage}, params.Statistics)
					require.Len(t, params.Dimensions, 1)
					assert.Equal(t, "InstanceId", *params.Dimensions[0].Name)
					assert.Equal(t, "i-0abc", *params.Dimensions[0].Value)
					return &cloudwatch.GetMetricStatisticsOutput{Datapoints: tt.datapoints}, nil
				},
			}
			svc := NewService(mock)

			got, err := svc.AverageOverWindow(context.Background(), "AWS/EC2", "CPUUtilization", map[string]string{"InstanceId": "i-0abc"}, 14)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 0.0001)
		})
	}
}

func TestAverageOverWindowUsesLookbackWindow(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	mock := &mockCloudWatchAPI{
		getMetricStatisticsFunc: func(ctx context.Context, params *cloudwatch.GetMetricStatisticsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error) {
			assert.Equal(t, now, *params.EndTime)
			assert.Equal(t, now.Add(-14*24*time.Hour), *params.StartTime)
			return &cloudwatch.GetMetricStatisticsOutput{}, nil
		},
	}
	svc := NewService(mock)
	svc.now = func() time.Time { return now }

	got, err := svc.AverageOverWindow(context.Background(), "AWS/RDS", "CPUUtilization", map[string]string{"DBInstanceIdentifier": "orders-db"}, 14)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSumOverWindow(t *testing.T) {
	mock := &mockCloudWatchAPI{
		getMetricStatisticsFunc: func(ctx context.Context, params *cloudwatch.GetMetricStatisticsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error) {
			assert.Equal(t, []cwtypes.Statistic{cwtypes.StatisticSum}, params.Statistics)
			return &cloudwatch.GetMetricStatisticsOutput{
				Datapoints: []cwtypes.Datapoint{
					{Sum: awssdk.Float64(3.0)},
					{Sum: awssdk.Float64(4.0)},
				},
			}, nil
		},
	}
	svc := NewService(mock)

	got, err := svc.SumOverWindow(context.Background(), "AWS/S3", "GetRequests", map[string]string{"BucketName": "assets", "FilterId": "EntireBucket"}, 14)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.InDelta(t, 7.0, *got, 0.0001)
}

func TestGetStatisticsWrapsAPIError(t *testing.T) {
	apiErr := errors.New("AccessDenied")
	mock := &mockCloudWatchAPI{
		getMetricStatisticsFunc: func(ctx context.Context, params *cloudwatch.GetMetricStatisticsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error) {
			return nil, apiErr
		},
	}
	svc := NewService(mock)

	_, err := svc.AverageOverWindow(context.Background(), "AWS/EC2", "CPUUtilization", map[string]string{"InstanceId": "i-0abc"}, 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, apiErr)
	assert.Contains(t, err.Error(), "GetMetricStatistics")
}
