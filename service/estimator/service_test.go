package estimator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costsift/costsift/model"
	"github.com/costsift/costsift/service/pricing"
)

const gib = 1024 * 1024 * 1024

func idleClassification() model.Classification {
	return model.Classification{Idle: true, Rule: model.RuleCPUBelowThreshold}
}

func healthyClassification() model.Classification {
	return model.Classification{Rule: model.RuleHealthy}
}

func TestEstimateIdleCompute(t *testing.T) {
	svc := NewService(pricing.NewService(pricing.DefaultTable()))
	record := model.ResourceRecord{
		ID:               "i-0abc",
		Kind:             model.KindCompute,
		BillingDimension: "t2.micro",
	}

	estimate := svc.Estimate(record, idleClassification())

	// 0.023 $/h over a 730 hour month.
	assert.InDelta(t, 16.79, estimate.MonthlyCost, 0.001)
	assert.InDelta(t, 16.79, estimate.MonthlySavings, 0.001)
	assert.Equal(t, "USD", estimate.Currency)
	assert.False(t, estimate.Unpriced)
	assert.Equal(t, model.PriceSourceTable, estimate.PriceSource)
}

func TestEstimateHealthyComputeHasZeroSavings(t *testing.T) {
	svc := NewService(pricing.NewService(pricing.DefaultTable()))
	record := model.ResourceRecord{
		ID:               "i-0abc",
		Kind:             model.KindCompute,
		BillingDimension: "t2.micro",
	}

	estimate := svc.Estimate(record, healthyClassification())

	assert.InDelta(t, 16.79, estimate.MonthlyCost, 0.001)
	assert.Zero(t, estimate.MonthlySavings)
}

func TestEstimateIdleDatabase(t *testing.T) {
	svc := NewService(pricing.NewService(pricing.DefaultTable()))
	record := model.ResourceRecord{
		ID:               "orders-db",
		Kind:             model.KindDatabase,
		BillingDimension: "db.t3.micro",
	}

	estimate := svc.Estimate(record, model.Classification{Idle: true, Rule: model.RuleLowConnections})

	assert.InDelta(t, 29.93, estimate.MonthlyCost, 0.001)
	assert.InDelta(t, 29.93, estimate.MonthlySavings, 0.001)
}

func TestEstimateIdleStorageSavesHalf(t *testing.T) {
	svc := NewService(pricing.NewService(pricing.DefaultTable()))
	record := model.ResourceRecord{
		ID:               "assets",
		Kind:             model.KindObjectStorage,
		BillingDimension: "STANDARD",
		Storage:          &model.StorageMetrics{SizeBytes: 100 * gib, ObjectCount: 4000},
	}

	estimate := svc.Estimate(record, model.Classification{Idle: true, Rule: model.RuleLowAccess})

	assert.InDelta(t, 2.30, estimate.MonthlyCost, 0.001)
	assert.InDelta(t, 1.15, estimate.MonthlySavings, 0.001)
}

func TestEstimateUnknownClassificationHasZeroSavings(t *testing.T) {
	svc := NewService(pricing.NewService(pricing.DefaultTable()))
	record := model.ResourceRecord{
		ID:               "assets",
		Kind:             model.KindObjectStorage,
		BillingDimension: "STANDARD",
		Storage:          &model.StorageMetrics{SizeBytes: 10 * gib, ObjectCount: 5},
	}

	estimate := svc.Estimate(record, model.Classification{Unknown: true, Rule: model.RuleMetricsUnavailable})

	assert.InDelta(t, 0.23, estimate.MonthlyCost, 0.001)
	assert.Zero(t, estimate.MonthlySavings)
}

func TestEstimateUnpricedDimension(t *testing.T) {
	svc := NewService(pricing.NewService(pricing.DefaultTable()))
	record := model.ResourceRecord{
		ID:               "exotic",
		Kind:             model.KindObjectStorage,
		BillingDimension: "OUTPOSTS",
		Storage:          &model.StorageMetrics{SizeBytes: 50 * gib, ObjectCount: 900},
	}

	estimate := svc.Estimate(record, model.Classification{Idle: true, Rule: model.RuleLowAccess})

	assert.True(t, estimate.Unpriced)
	assert.Zero(t, estimate.MonthlyCost)
	assert.Zero(t, estimate.MonthlySavings)
	assert.Equal(t, model.PriceSourceNone, estimate.PriceSource)
}

func TestSavingsNeverExceedCost(t *testing.T) {
	svc := NewService(pricing.NewService(pricing.DefaultTable()))

	records := []struct {
		record model.ResourceRecord
		c      model.Classification
	}{
		{
			record: model.ResourceRecord{Kind: model.KindCompute, BillingDimension: "m5.xlarge"},
			c:      idleClassification(),
		},
		{
			record: model.ResourceRecord{Kind: model.KindDatabase, BillingDimension: "db.m5.large"},
			c:      model.Classification{Idle: true, Rule: model.RuleLowConnections},
		},
		{
			record: model.ResourceRecord{
				Kind:             model.KindObjectStorage,
				BillingDimension: "GLACIER",
				Storage:          &model.StorageMetrics{SizeBytes: 500 * gib, ObjectCount: 100},
			},
			c: model.Classification{Idle: true, Rule: model.RuleLowAccess},
		},
		{
			record: model.ResourceRecord{Kind: model.KindCompute, BillingDimension: "t3.large"},
			c:      healthyClassification(),
		},
	}

	for _, tt := range records {
		estimate := svc.Estimate(tt.record, tt.c)
		require.GreaterOrEqual(t, estimate.MonthlySavings, 0.0)
		require.LessOrEqual(t, estimate.MonthlySavings, estimate.MonthlyCost)
	}
}
