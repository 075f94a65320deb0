// Package report assembles classified, priced resources into the final
// Report and renders it to CSV and HTML artifacts.
package report

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/costsift/costsift/model"
)

// Build assembles a report from the pipeline's output. Rows are sorted by
// descending monthly savings with ties broken by ascending resource ID, so
// identical input always yields the same ordering.
func Build(account *model.AccountInfo, region string, rows []model.Row, skipped []model.SkippedKind, actuals *model.ActualSpend) *model.Report {
	sorted := make([]model.Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Estimate.MonthlySavings != sorted[j].Estimate.MonthlySavings {
			return sorted[i].Estimate.MonthlySavings > sorted[j].Estimate.MonthlySavings
		}
		return sorted[i].Record.ID < sorted[j].Record.ID
	})

	report := &model.Report{
		RunID:       uuid.NewString(),
		Region:      region,
		GeneratedAt: time.Now().UTC(),
		Rows:        sorted,
		Totals:      totals(sorted),
		Skipped:     skipped,
		ActualSpend: actuals,
	}
	if account != nil {
		report.AccountID = account.AccountID
		report.AccountARN = account.AccountARN
	}
	return report
}

func totals(rows []model.Row) model.Totals {
	t := model.Totals{
		MonthlyCost:    lo.SumBy(rows, func(r model.Row) float64 { return r.Estimate.MonthlyCost }),
		MonthlySavings: lo.SumBy(rows, func(r model.Row) float64 { return r.Estimate.MonthlySavings }),
		IdleCount:      lo.CountBy(rows, func(r model.Row) bool { return r.Classification.Idle }),
		UnknownCount:   lo.CountBy(rows, func(r model.Row) bool { return r.Classification.Unknown }),
		UnpricedCount:  lo.CountBy(rows, func(r model.Row) bool { return r.Estimate.Unpriced }),
		ByKind:         map[model.Kind]model.KindTotals{},
	}

	for kind, kindRows := range lo.GroupBy(rows, func(r model.Row) model.Kind { return r.Record.Kind }) {
		t.ByKind[kind] = model.KindTotals{
			Count:          len(kindRows),
			IdleCount:      lo.CountBy(kindRows, func(r model.Row) bool { return r.Classification.Idle }),
			MonthlyCost:    lo.SumBy(kindRows, func(r model.Row) float64 { return r.Estimate.MonthlyCost }),
			MonthlySavings: lo.SumBy(kindRows, func(r model.Row) float64 { return r.Estimate.MonthlySavings }),
		}
	}

	return t
}
