package model

// ServiceSpend is the billed amount for one AWS service.
type ServiceSpend struct {
	Service string
	Amount  float64
}

// ActualSpend holds month-to-date billed costs by service, fetched from Cost
// Explorer as context alongside the modeled estimates.
type ActualSpend struct {
	Start    string
	End      string
	Currency string
	Services []ServiceSpend
	Total    float64
}
