package estimator

import "github.com/costsift/costsift/service/pricing"

// Share of storage cost recoverable by moving a cold bucket to an archive
// tier, instead of deleting it outright.
const storageSavingsShare = 0.5

type service struct {
	prices pricing.PriceService
}
