package awssts

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/costsift/costsift/model"
)

func NewService(api STSAPI) *service {
	return &service{api: api}
}

// GetAccountInfo implements service.IdentityService. A failure here means the
// credential chain is unusable and the whole scan must stop.
func (s *service) GetAccountInfo(ctx context.Context) (*model.AccountInfo, error) {
	output, err := s.api.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("GetCallerIdentity: %w", err)
	}

	arn := aws.ToString(output.Arn)
	return &model.AccountInfo{
		Provider:    "aws",
		AccountID:   aws.ToString(output.Account),
		AccountARN:  arn,
		AccountName: callerName(arn),
	}, nil
}

// callerName extracts the trailing user or role name from a caller ARN,
// e.g. "arn:aws:iam::123456789012:user/alice" yields "alice".
func callerName(arn string) string {
	idx := strings.LastIndex(arn, "/")
	if idx < 0 || idx == len(arn)-1 {
		return arn
	}
	return arn[idx+1:]
}
