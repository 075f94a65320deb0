package response

// AccountInfo describes the account a report was scanned from.
type AccountInfo struct {
	Provider  string `json:"provider"`
	AccountID string `json:"account_id"`
	ARN       string `json:"arn,omitempty"`
	Name      string `json:"name,omitempty"`
}

// ReportRow is one scanned resource in tool output.
type ReportRow struct {
	ResourceID        string  `json:"resource_id"`
	Name              string  `json:"name,omitempty"`
	Kind              string  `json:"kind"`
	Region            string  `json:"region"`
	BillingDimension  string  `json:"billing_dimension"`
	Usage             string  `json:"usage"`
	Idle              bool    `json:"idle"`
	Unknown           bool    `json:"unknown,omitempty"`
	Rule              string  `json:"rule"`
	Detail            string  `json:"detail,omitempty"`
	MonthlyCostUSD    float64 `json:"monthly_cost_usd"`
	MonthlySavingsUSD float64 `json:"monthly_savings_usd"`
	Unpriced          bool    `json:"unpriced,omitempty"`
}

// KindTotals aggregates one resource kind.
type KindTotals struct {
	Kind              string  `json:"kind"`
	Count             int     `json:"count"`
	IdleCount         int     `json:"idle_count"`
	MonthlyCostUSD    float64 `json:"monthly_cost_usd"`
	MonthlySavingsUSD float64 `json:"monthly_savings_usd"`
}

// Totals aggregates a whole report.
type Totals struct {
	Resources         int          `json:"resources"`
	IdleCount         int          `json:"idle_count"`
	UnknownCount      int          `json:"unknown_count"`
	UnpricedCount     int          `json:"unpriced_count"`
	MonthlyCostUSD    float64      `json:"monthly_cost_usd"`
	MonthlySavingsUSD float64      `json:"monthly_savings_usd"`
	ByKind            []KindTotals `json:"by_kind"`
}

// SkippedKind reports a resource kind whose fetch failed during the scan.
type SkippedKind struct {
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

// ServiceSpend is one service's billed month-to-date amount.
type ServiceSpend struct {
	Service string  `json:"service"`
	Amount  float64 `json:"amount"`
}

// ActualSpend is the billed month-to-date context section.
type ActualSpend struct {
	Start    string         `json:"start"`
	End      string         `json:"end"`
	Currency string         `json:"currency"`
	Services []ServiceSpend `json:"services"`
	Total    float64        `json:"total"`
}

// ReportSummary is the scan_report tool payload.
type ReportSummary struct {
	RunID       string        `json:"run_id"`
	AccountID   string        `json:"account_id"`
	Region      string        `json:"region"`
	GeneratedAt string        `json:"generated_at"`
	Totals      Totals        `json:"totals"`
	Skipped     []SkippedKind `json:"skipped,omitempty"`
	TopSavers   []ReportRow   `json:"top_savers"`
	ActualSpend *ActualSpend  `json:"actual_spend,omitempty"`
}

// RowList is the list_rows / top_savers tool payload.
type RowList struct {
	RunID string      `json:"run_id,omitempty"`
	Count int         `json:"count"`
	Rows  []ReportRow `json:"rows"`
}
