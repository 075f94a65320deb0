package awscostexplorer

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/costexplorer"

	"github.com/costsift/costsift/model"
)

// CostExplorerAPI is the subset of the Cost Explorer API the scanner uses.
type CostExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
}

type service struct {
	api CostExplorerAPI
	now func() time.Time
}

type CostService interface {
	MonthToDate(ctx context.Context) (*model.ActualSpend, error)
}
