package awssts

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/costsift/costsift/model"
)

// STSAPI is the subset of the STS API the scanner uses.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

type service struct {
	api STSAPI
}

type STSService interface {
	GetAccountInfo(ctx context.Context) (*model.AccountInfo, error)
}
