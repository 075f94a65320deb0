package awsec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/sirupsen/logrus"

	"github.com/costsift/costsift/model"
	awscloudwatch "github.com/costsift/costsift/service/aws/cloudwatch"
	"github.com/costsift/costsift/service/aws/retry"
)

func NewService(api EC2API, metrics awscloudwatch.MetricsService, log logrus.FieldLogger, region string, windowDays int) *service {
	return &service{
		api:        api,
		metrics:    metrics,
		log:        log,
		region:     region,
		windowDays: windowDays,
	}
}

// Kind implements service.Fetcher.
func (s *service) Kind() model.Kind {
	return model.KindCompute
}

// Fetch implements service.Fetcher. Only running instances are billed for
// compute time, so stopped ones are excluded up front.
func (s *service) Fetch(ctx context.Context) ([]model.ResourceRecord, error) {
	var records []model.ResourceRecord
	var nextToken *string

	for {
		var out *ec2.DescribeInstancesOutput
		err := retry.Do(ctx, func() error {
			var callErr error
			out, callErr = s.api.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
				Filters: []types.Filter{
					{
						Name:   aws.String("instance-state-name"),
						Values: []string{"running"},
					},
				},
				NextToken: nextToken,
			})
			return callErr
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeInstances: %w", err)
		}

		for _, reservation := range out.Reservations {
			for _, instance := range reservation.Instances {
				records = append(records, s.toRecord(ctx, instance))
			}
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	return records, nil
}

func (s *service) toRecord(ctx context.Context, instance types.Instance) model.ResourceRecord {
	id := aws.ToString(instance.InstanceId)

	avgCPU, err := s.metrics.AverageOverWindow(ctx, "AWS/EC2", "CPUUtilization",
		map[string]string{"InstanceId": id}, s.windowDays)
	if err != nil {
		s.log.WithError(err).WithField("instance_id", id).Warn("cpu metric unavailable")
		avgCPU = nil
	}

	state := ""
	if instance.State != nil {
		state = string(instance.State.Name)
	}

	tags := tagMap(instance.Tags)

	return model.ResourceRecord{
		ID:               id,
		Name:             tags["Name"],
		Kind:             model.KindCompute,
		Region:           s.region,
		Tags:             tags,
		BillingDimension: string(instance.InstanceType),
		Compute: &model.ComputeMetrics{
			AvgCPUPercent: avgCPU,
			State:         state,
			WindowDays:    s.windowDays,
		},
	}
}

func tagMap(tags []types.Tag) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	m := make(map[string]string, len(tags))
	for _, t := range tags {
		m[aws.ToString(t.Key)] = aws.ToString(t.Value)
	}
	return m
}
