package awsrds

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/sirupsen/logrus"

	awscloudwatch "github.com/costsift/costsift/service/aws/cloudwatch"
)

// RDSAPI is the subset of the RDS API the scanner uses.
type RDSAPI interface {
	DescribeDBInstances(ctx context.Context, params *rds.DescribeDBInstancesInput, optFns ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error)
}

type service struct {
	api        RDSAPI
	metrics    awscloudwatch.MetricsService
	log        logrus.FieldLogger
	region     string
	windowDays int
}
