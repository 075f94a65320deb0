package pricing

import (
	"strings"
	"time"

	"github.com/costsift/costsift/model"
)

const defaultCacheTTL = time.Hour

func NewService(table Table) *service {
	return &service{
		table: table,
		cache: newPriceCache(defaultCacheTTL),
	}
}

// UnitPrice implements PriceService.
func (s *service) UnitPrice(kind model.Kind, dimension string) (float64, error) {
	dimension = strings.TrimSpace(dimension)
	key := string(kind) + "/" + dimension

	if price, ok := s.cache.get(key); ok {
		return price, nil
	}

	dims, ok := s.table[kind]
	if !ok {
		return 0, &LookupError{Kind: kind, Dimension: dimension}
	}
	price, ok := dims[dimension]
	if !ok {
		return 0, &LookupError{Kind: kind, Dimension: dimension}
	}

	s.cache.set(key, price)
	return price, nil
}
