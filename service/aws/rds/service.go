package awsrds

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/rds/types"
	"github.com/sirupsen/logrus"

	"github.com/costsift/costsift/model"
	awscloudwatch "github.com/costsift/costsift/service/aws/cloudwatch"
	"github.com/costsift/costsift/service/aws/retry"
)

func NewService(api RDSAPI, metrics awscloudwatch.MetricsService, log logrus.FieldLogger, region string, windowDays int) *service {
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
	return model.KindDatabase
}

// Fetch implements service.Fetcher.
func (s *service) Fetch(ctx context.Context) ([]model.ResourceRecord, error) {
	var records []model.ResourceRecord
	var marker *string

	for {
		var out *rds.DescribeDBInstancesOutput
		err := retry.Do(ctx, func() error {
			var callErr error
			out, callErr = s.api.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{
				Marker: marker,
			})
			return callErr
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeDBInstances: %w", err)
		}

		for _, db := range out.DBInstances {
			records = append(records, s.toRecord(ctx, db))
		}

		if out.Marker == nil {
			break
		}
		marker = out.Marker
	}

	return records, nil
}

func (s *service) toRecord(ctx context.Context, db types.DBInstance) model.ResourceRecord {
	id := aws.ToString(db.DBInstanceIdentifier)
	dims := map[string]string{"DBInstanceIdentifier": id}

	avgCPU, err := s.metrics.AverageOverWindow(ctx, "AWS/RDS", "CPUUtilization", dims, s.windowDays)
	if err != nil {
		s.log.WithError(err).WithField("db_instance", id).Warn("cpu metric unavailable")
		avgCPU = nil
	}

	avgConns, err := s.metrics.AverageOverWindow(ctx, "AWS/RDS", "DatabaseConnections", dims, s.windowDays)
	if err != nil {
		s.log.WithError(err).WithField("db_instance", id).Warn("connections metric unavailable")
		avgConns = nil
	}

	tags := tagMap(db.TagList)

	return model.ResourceRecord{
		ID:               id,
		Name:             tags["Name"],
		Kind:             model.KindDatabase,
		Region:           s.region,
		Tags:             tags,
		BillingDimension: aws.ToString(db.DBInstanceClass),
		Database: &model.DatabaseMetrics{
			AvgCPUPercent:  avgCPU,
			AvgConnections: avgConns,
			Engine:         aws.ToString(db.Engine),
			WindowDays:     s.windowDays,
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
