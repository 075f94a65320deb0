package response

import (
	"time"

	"github.com/costsift/costsift/model"
)

// ConvertAccountInfo converts model.AccountInfo to response.AccountInfo
func ConvertAccountInfo(info *model.AccountInfo) *AccountInfo {
	if info == nil {
		return nil
	}
	return &AccountInfo{
		Provider:  info.Provider,
		AccountID: info.AccountID,
		ARN:       info.AccountARN,
		Name:      info.AccountName,
	}
}

// ConvertRow converts one report row to its JSON shape
func ConvertRow(row model.Row) ReportRow {
	return ReportRow{
		ResourceID:        row.Record.ID,
		Name:              row.Record.Name,
		Kind:              string(row.Record.Kind),
		Region:            row.Record.Region,
		BillingDimension:  row.Record.BillingDimension,
		Usage:             row.Record.UsageSummary(),
		Idle:              row.Classification.Idle,
		Unknown:           row.Classification.Unknown,
		Rule:              string(row.Classification.Rule),
		Detail:            row.Classification.Detail,
		MonthlyCostUSD:    row.Estimate.MonthlyCost,
		MonthlySavingsUSD: row.Estimate.MonthlySavings,
		Unpriced:          row.Estimate.Unpriced,
	}
}

// ConvertRows converts report rows, preserving their order
func ConvertRows(rows []model.Row) []ReportRow {
	converted := make([]ReportRow, 0, len(rows))
	for _, row := range rows {
		converted = append(converted, ConvertRow(row))
	}
	return converted
}

// ConvertTotals converts report totals, kinds in canonical order
func ConvertTotals(report *model.Report) Totals {
	totals := Totals{
		Resources:         len(report.Rows),
		IdleCount:         report.Totals.IdleCount,
		UnknownCount:      report.Totals.UnknownCount,
		UnpricedCount:     report.Totals.UnpricedCount,
		MonthlyCostUSD:    report.Totals.MonthlyCost,
		MonthlySavingsUSD: report.Totals.MonthlySavings,
	}
	for _, kind := range model.AllKinds() {
		byKind, ok := report.Totals.ByKind[kind]
		if !ok {
			continue
		}
		totals.ByKind = append(totals.ByKind, KindTotals{
			Kind:              string(kind),
			Count:             byKind.Count,
			IdleCount:         byKind.IdleCount,
			MonthlyCostUSD:    byKind.MonthlyCost,
			MonthlySavingsUSD: byKind.MonthlySavings,
		})
	}
	return totals
}

// ConvertSkipped converts the skipped-kind warnings
func ConvertSkipped(skipped []model.SkippedKind) []SkippedKind {
	converted := make([]SkippedKind, 0, len(skipped))
	for _, s := range skipped {
		converted = append(converted, SkippedKind{Kind: string(s.Kind), Reason: s.Reason})
	}
	return converted
}

// ConvertActualSpend converts the billed-spend context section
func ConvertActualSpend(spend *model.ActualSpend) *ActualSpend {
	if spend == nil {
		return nil
	}
	services := make([]ServiceSpend, 0, len(spend.Services))
	for _, s := range spend.Services {
		services = append(services, ServiceSpend{Service: s.Service, Amount: s.Amount})
	}
	return &ActualSpend{
		Start:    spend.Start,
		End:      spend.End,
		Currency: spend.Currency,
		Services: services,
		Total:    spend.Total,
	}
}

// ConvertSummary builds the scan_report payload with the top savers inlined
func ConvertSummary(report *model.Report, topSavers int) ReportSummary {
	return ReportSummary{
		RunID:       report.RunID,
		AccountID:   report.AccountID,
		Region:      report.Region,
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		Totals:      ConvertTotals(report),
		Skipped:     ConvertSkipped(report.Skipped),
		TopSavers:   ConvertRows(report.TopSavers(topSavers)),
		ActualSpend: ConvertActualSpend(report.ActualSpend),
	}
}
