package awscloudwatch

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
)

// CloudWatchAPI is the subset of the CloudWatch API the scanner uses.
type CloudWatchAPI interface {
	GetMetricStatistics(ctx context.Context, params *cloudwatch.GetMetricStatisticsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error)
}

type service struct {
	api CloudWatchAPI
	now func() time.Time
}

// MetricsService reads utilization statistics for a single resource over a
// lookback window. A nil value with a nil error means CloudWatch has no
// datapoints for that resource.
type MetricsService interface {
	AverageOverWindow(ctx context.Context, namespace, metricName string, dims map[string]string, windowDays int) (*float64, error)
	SumOverWindow(ctx context.Context, namespace, metricName string, dims map[string]string, windowDays int) (*float64, error)
}
