package pricing

import (
	"fmt"

	"github.com/costsift/costsift/model"
)

// HoursPerMonth is the averaged month length used to turn hourly rates into
// monthly costs.
const HoursPerMonth = 730.0

// Table maps a resource kind and its billing dimension to a unit price in
// USD. Compute and database dimensions price per hour, storage per GiB-month.
type Table map[model.Kind]map[string]float64

// Merge returns a copy of t with every entry from override applied on top.
func (t Table) Merge(override Table) Table {
	merged := make(Table, len(t))
	for kind, dims := range t {
		merged[kind] = make(map[string]float64, len(dims))
		for dim, price := range dims {
			merged[kind][dim] = price
		}
	}
	for kind, dims := range override {
		if merged[kind] == nil {
			merged[kind] = make(map[string]float64, len(dims))
		}
		for dim, price := range dims {
			merged[kind][dim] = price
		}
	}
	return merged
}

// LookupError reports a billing dimension absent from the price table.
type LookupError struct {
	Kind      model.Kind
	Dimension string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no price for %s dimension %q", e.Kind, e.Dimension)
}

type service struct {
	table Table
	cache *priceCache
}

// PriceService resolves unit prices for billing dimensions. A miss returns a
// *LookupError.
type PriceService interface {
	UnitPrice(kind model.Kind, dimension string) (float64, error)
}
