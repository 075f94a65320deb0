package model

import "time"

// Row ties one scanned resource to its classification and estimate.
type Row struct {
	Record         ResourceRecord
	Classification Classification
	Estimate       SavingsEstimate
}

// KindTotals aggregates one resource kind inside a report.
type KindTotals struct {
	Count          int
	IdleCount      int
	MonthlyCost    float64
	MonthlySavings float64
}

// Totals aggregates a whole report.
type Totals struct {
	MonthlyCost    float64
	MonthlySavings float64
	IdleCount      int
	UnknownCount   int
	UnpricedCount  int
	ByKind         map[Kind]KindTotals
}

// SkippedKind records a resource kind whose fetch failed; the rest of the
// scan proceeded without it.
type SkippedKind struct {
	Kind   Kind
	Reason string
}

// Report is the immutable result of one scan run. Rows are ordered by
// descending monthly savings, ties broken by ascending resource ID.
type Report struct {
	RunID       string
	AccountID   string
	AccountARN  string
	Region      string
	GeneratedAt time.Time
	Rows        []Row
	Totals      Totals
	Skipped     []SkippedKind
	ActualSpend *ActualSpend
}

// RowsByKind returns the report rows for one kind, preserving report order.
func (r *Report) RowsByKind(k Kind) []Row {
	var rows []Row
	for _, row := range r.Rows {
		if row.Record.Kind == k {
			rows = append(rows, row)
		}
	}
	return rows
}

// IdleRows returns only the rows flagged idle, preserving report order.
func (r *Report) IdleRows() []Row {
	var rows []Row
	for _, row := range r.Rows {
		if row.Classification.Idle {
			rows = append(rows, row)
		}
	}
	return rows
}

// TopSavers returns up to n rows with the largest potential savings.
func (r *Report) TopSavers(n int) []Row {
	if n <= 0 || n > len(r.Rows) {
		n = len(r.Rows)
	}
	return r.Rows[:n]
}
