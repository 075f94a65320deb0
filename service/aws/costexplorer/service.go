package awscostexplorer

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"

	"github.com/costsift/costsift/model"
	"github.com/costsift/costsift/service/aws/retry"
)

const costsAggregation = "UnblendedCost"

func NewService(api CostExplorerAPI) *service {
	return &service{
		api: api,
		now: time.Now,
	}
}

// MonthToDate implements service.SpendService. It returns the billed costs
// from the first of the current month until today, grouped by service and
// sorted by descending amount.
func (s *service) MonthToDate(ctx context.Context) (*model.ActualSpend, error) {
	end := s.now().UTC()
	start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	if start.Format("2006-01-02") == end.Format("2006-01-02") {
		// Cost Explorer rejects empty intervals, so on the first of the
		// month we cover that single day.
		end = start.AddDate(0, 0, 1)
	}

	input := &costexplorer.GetCostAndUsageInput{
		Granularity: types.GranularityMonthly,
		TimePeriod: &types.DateInterval{
			Start: aws.String(start.Format("2006-01-02")),
			End:   aws.String(end.Format("2006-01-02")),
		},
		Metrics: []string{costsAggregation},
		GroupBy: []types.GroupDefinition{
			{
				Key:  aws.String("SERVICE"),
				Type: types.GroupDefinitionTypeDimension,
			},
		},
	}

	var output *costexplorer.GetCostAndUsageOutput
	err := retry.Do(ctx, func() error {
		var callErr error
		output, callErr = s.api.GetCostAndUsage(ctx, input)
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("GetCostAndUsage: %w", err)
	}
	if len(output.ResultsByTime) == 0 {
		return nil, fmt.Errorf("GetCostAndUsage: empty result for %s", start.Format("2006-01"))
	}

	result := output.ResultsByTime[0]
	spend := &model.ActualSpend{
		Start:    aws.ToString(result.TimePeriod.Start),
		End:      aws.ToString(result.TimePeriod.End),
		Currency: "USD",
	}

	for _, group := range result.Groups {
		metric, ok := group.Metrics[costsAggregation]
		if !ok || metric.Amount == nil || len(group.Keys) == 0 {
			continue
		}
		amount, err := strconv.ParseFloat(aws.ToString(metric.Amount), 64)
		if err != nil || amount == 0 {
			continue
		}

		spend.Services = append(spend.Services, model.ServiceSpend{
			Service: group.Keys[0],
			Amount:  amount,
		})
		spend.Total += amount
		if unit := aws.ToString(metric.Unit); unit != "" {
			spend.Currency = unit
		}
	}

	sort.Slice(spend.Services, func(i, j int) bool {
		return spend.Services[i].Amount > spend.Services[j].Amount
	})

	return spend, nil
}
