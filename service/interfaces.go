package service

import (
	"context"

	"github.com/costsift/costsift/model"
)

// IdentityService provides cloud account identity information.
type IdentityService interface {
	GetAccountInfo(ctx context.Context) (*model.AccountInfo, error)
}

// Fetcher produces the resource inventory for one kind, utilization metrics
// included. Implementations paginate fully and treat missing per-resource
// metrics as nil fields, not errors.
type Fetcher interface {
	Kind() model.Kind
	Fetch(ctx context.Context) ([]model.ResourceRecord, error)
}

// Classifier applies the idle rules to a single record.
type Classifier interface {
	Classify(record model.ResourceRecord) model.Classification
}

// Estimator prices a classified record from the static price table.
type Estimator interface {
	Estimate(record model.ResourceRecord, c model.Classification) model.SavingsEstimate
}

// SpendService provides billed month-to-date costs for context sections.
type SpendService interface {
	MonthToDate(ctx context.Context) (*model.ActualSpend, error)
}

// Publisher uploads a finished report artifact to object storage.
type Publisher interface {
	Upload(ctx context.Context, bucket, key string, body []byte) (string, error)
}
