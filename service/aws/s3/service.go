package awss3

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/sirupsen/logrus"

	"github.com/costsift/costsift/model"
	awscloudwatch "github.com/costsift/costsift/service/aws/cloudwatch"
	"github.com/costsift/costsift/service/aws/retry"
)

// Request metrics filter covering the whole bucket, the name AWS uses when
// metrics are enabled from the console.
const entireBucketFilter = "EntireBucket"

const defaultStorageClass = "STANDARD"

func NewService(api S3API, metrics awscloudwatch.MetricsService, log logrus.FieldLogger, region string, windowDays int) *service {
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
	return model.KindObjectStorage
}

// Fetch implements service.Fetcher. ListBuckets is account-wide, so buckets
// homed in other regions are filtered out by their location. A bucket we
// cannot inspect is reported without metrics rather than dropped.
func (s *service) Fetch(ctx context.Context) ([]model.ResourceRecord, error) {
	var out *s3.ListBucketsOutput
	err := retry.Do(ctx, func() error {
		var callErr error
		out, callErr = s.api.ListBuckets(ctx, &s3.ListBucketsInput{})
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("ListBuckets: %w", err)
	}

	var records []model.ResourceRecord
	for _, bucket := range out.Buckets {
		name := aws.ToString(bucket.Name)

		region, err := s.bucketRegion(ctx, name)
		if err != nil {
			s.logBucketWarn(name, "bucket location unavailable, skipping", err)
			continue
		}
		if region != s.region {
			continue
		}

		records = append(records, s.toRecord(ctx, name))
	}

	return records, nil
}

func (s *service) bucketRegion(ctx context.Context, name string) (string, error) {
	var out *s3.GetBucketLocationOutput
	err := retry.Do(ctx, func() error {
		var callErr error
		out, callErr = s.api.GetBucketLocation(ctx, &s3.GetBucketLocationInput{
			Bucket: aws.String(name),
		})
		return callErr
	})
	if err != nil {
		return "", err
	}

	// us-east-1 reports an empty location constraint.
	region := string(out.LocationConstraint)
	if region == "" {
		region = "us-east-1"
	}
	return region, nil
}

func (s *service) toRecord(ctx context.Context, name string) model.ResourceRecord {
	record := model.ResourceRecord{
		ID:               name,
		Name:             name,
		Kind:             model.KindObjectStorage,
		Region:           s.region,
		BillingDimension: defaultStorageClass,
	}

	size, count, storageClass, err := s.bucketUsage(ctx, name)
	if err != nil {
		s.logBucketWarn(name, "bucket contents unavailable", err)
		return record
	}
	record.BillingDimension = storageClass

	getRequests, err := s.metrics.SumOverWindow(ctx, "AWS/S3", "GetRequests",
		map[string]string{"BucketName": name, "FilterId": entireBucketFilter}, s.windowDays)
	if err != nil {
		s.log.WithError(err).WithField("bucket", name).Warn("request metrics unavailable")
		getRequests = nil
	}

	record.Storage = &model.StorageMetrics{
		SizeBytes:   size,
		ObjectCount: count,
		GetRequests: getRequests,
		WindowDays:  s.windowDays,
	}
	return record
}

// bucketUsage walks the full object listing and totals size and count. The
// returned storage class is the one holding the most bytes, STANDARD when the
// bucket is empty.
func (s *service) bucketUsage(ctx context.Context, name string) (int64, int64, string, error) {
	var size, count int64
	classBytes := map[string]int64{}
	var continuationToken *string

	for {
		var out *s3.ListObjectsV2Output
		err := retry.Do(ctx, func() error {
			var callErr error
			out, callErr = s.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
				Bucket:            aws.String(name),
				ContinuationToken: continuationToken,
			})
			return callErr
		})
		if err != nil {
			return 0, 0, "", fmt.Errorf("ListObjectsV2 %s: %w", name, err)
		}

		for _, obj := range out.Contents {
			objSize := aws.ToInt64(obj.Size)
			size += objSize
			count++

			class := string(obj.StorageClass)
			if class == "" {
				class = defaultStorageClass
			}
			classBytes[class] += objSize
		}

		if out.IsTruncated == nil || !*out.IsTruncated {
			break
		}
		continuationToken = out.NextContinuationToken
	}

	return size, count, dominantClass(classBytes), nil
}

func dominantClass(classBytes map[string]int64) string {
	class := defaultStorageClass
	var top int64
	for c, b := range classBytes {
		if b > top {
			class, top = c, b
		}
	}
	return class
}

// Upload implements service.Publisher.
func (s *service) Upload(ctx context.Context, bucket, key string, body []byte) (string, error) {
	err := retry.Do(ctx, func() error {
		_, callErr := s.api.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(body),
			ContentType: aws.String("text/csv"),
		})
		return callErr
	})
	if err != nil {
		return "", fmt.Errorf("PutObject s3://%s/%s: %w", bucket, key, err)
	}

	return fmt.Sprintf("s3://%s/%s", bucket, key), nil
}

func (s *service) logBucketWarn(name, msg string, err error) {
	entry := s.log.WithField("bucket", name)
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		entry = entry.WithField("code", apiErr.ErrorCode())
	} else {
		entry = entry.WithError(err)
	}
	entry.Warn(msg)
}
