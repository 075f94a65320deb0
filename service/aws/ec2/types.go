package awsec2

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/sirupsen/logrus"

	awscloudwatch "github.com/costsift/costsift/service/aws/cloudwatch"
)

// EC2API is the subset of the EC2 API the scanner uses.
type EC2API interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
}

type service struct {
	api        EC2API
	metrics    awscloudwatch.MetricsService
	log        logrus.FieldLogger
	region     string
	windowDays int
}
