package awscloudwatch

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/costsift/costsift/service/aws/retry"
)

// Hourly samples.
const periodSeconds = 3600

func NewService(api CloudWatchAPI) *service {
	return &service{
		api: api,
		now: time.Now,
	}
}

func (s *service) AverageOverWindow(ctx context.Context, namespace, metricName string, dims map[string]string, windowDays int) (*float64, error) {
	datapoints, err := s.getStatistics(ctx, namespace, metricName, dims, windowDays, types.StatisticAverage)
	if err != nil {
		return nil, err
	}
	if len(datapoints) == 0 {
		return nil, nil
	}

	sum := 0.0
	for _, d := range datapoints {
		sum += aws.ToFloat64(d.Average)
	}
	avg := sum / float64(len(datapoints))
	return &avg, nil
}

func (s *service) SumOverWindow(ctx context.Context, namespace, metricName string, dims map[string]string, windowDays int) (*float64, error) {
	datapoints, err := s.getStatistics(ctx, namespace, metricName, dims, windowDays, types.StatisticSum)
	if err != nil {
		return nil, err
	}
	if len(datapoints) == 0 {
		return nil, nil
	}

	total := 0.0
	for _, d := range datapoints {
		total += aws.ToFloat64(d.Sum)
	}
	return &total, nil
}

func (s *service) getStatistics(ctx context.Context, namespace, metricName string, dims map[string]string, windowDays int, stat types.Statistic) ([]types.Datapoint, error) {
	end := s.now().UTC()
	start := end.Add(-time.Duration(windowDays) * 24 * time.Hour)

	dimensions := make([]types.Dimension, 0, len(dims))
	for name, value := range dims {
		dimensions = append(dimensions, types.Dimension{
			Name:  aws.String(name),
			Value: aws.String(value),
		})
	}

	input := &cloudwatch.GetMetricStatisticsInput{
		Namespace:  aws.String(namespace),
		MetricName: aws.String(metricName),
		Dimensions: dimensions,
		StartTime:  aws.Time(start),
		EndTime:    aws.Time(end),
		Period:     aws.Int32(periodSeconds),
		Statistics: []types.Statistic{stat},
	}

	var output *cloudwatch.GetMetricStatisticsOutput
	err := retry.Do(ctx, func() error {
		var callErr error
		output, callErr = s.api.GetMetricStatistics(ctx, input)
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("GetMetricStatistics %s %s: %w", namespace, metricName, err)
	}

	return output.Datapoints, nil
}
