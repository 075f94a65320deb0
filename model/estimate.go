package model

// Price sources recorded on an estimate.
const (
	PriceSourceTable = "table"
	PriceSourceNone  = "none"
)

// SavingsEstimate is the modeled monthly cost of a resource and the monthly
// reduction if it were removed or downsized. Unpriced marks resources whose
// billing dimension was absent from the price table; their amounts are zero
// but the resource still appears in the report.
type SavingsEstimate struct {
	MonthlyCost    float64
	MonthlySavings float64
	Currency       string
	Unpriced       bool
	PriceSource    string
}
