package estimator

import (
	"github.com/costsift/costsift/model"
	"github.com/costsift/costsift/service/pricing"
)

func NewService(prices pricing.PriceService) *service {
	return &service{prices: prices}
}

// Estimate implements service.Estimator. Every record gets an estimate:
// healthy and unknown resources carry zero savings, unpriced ones carry zero
// amounts and the Unpriced flag so the report can call them out.
func (s *service) Estimate(record model.ResourceRecord, c model.Classification) model.SavingsEstimate {
	price, err := s.prices.UnitPrice(record.Kind, record.BillingDimension)
	if err != nil {
		return model.SavingsEstimate{
			Currency:    "USD",
			Unpriced:    true,
			PriceSource: model.PriceSourceNone,
		}
	}

	estimate := model.SavingsEstimate{
		Currency:    "USD",
		MonthlyCost: monthlyCost(record, price),
		PriceSource: model.PriceSourceTable,
	}
	if c.Idle {
		estimate.MonthlySavings = estimate.MonthlyCost
		if record.Kind == model.KindObjectStorage {
			estimate.MonthlySavings = estimate.MonthlyCost * storageSavingsShare
		}
	}
	return estimate
}

func monthlyCost(record model.ResourceRecord, unitPrice float64) float64 {
	switch record.Kind {
	case model.KindCompute, model.KindDatabase:
		return unitPrice * pricing.HoursPerMonth
	case model.KindObjectStorage:
		return record.SizeGiB() * unitPrice
	}
	return 0
}
