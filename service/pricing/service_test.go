package pricing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costsift/costsift/model"
)

func TestUnitPriceKnownDimensions(t *testing.T) {
	svc := NewService(DefaultTable())

	tests := []struct {
		kind      model.Kind
		dimension string
		want      float64
	}{
		{model.KindCompute, "t2.micro", 0.023},
		{model.KindDatabase, "db.t3.micro", 0.041},
		{model.KindObjectStorage, "STANDARD", 0.023},
		{model.KindObjectStorage, "GLACIER", 0.004},
	}

	for _, tt := range tests {
		price, err := svc.UnitPrice(tt.kind, tt.dimension)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, price, 0.000001)
	}
}

func TestUnitPriceMissReturnsLookupError(t *testing.T) {
	svc := NewService(DefaultTable())

	_, err := svc.UnitPrice(model.KindCompute, "u7in-32tb.224xlarge")
	require.Error(t, err)

	var lookupErr *LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, model.KindCompute, lookupErr.Kind)
	assert.Equal(t, "u7in-32tb.224xlarge", lookupErr.Dimension)
}

func TestUnitPriceCachesHits(t *testing.T) {
	table := Table{model.KindCompute: {"t2.micro": 0.023}}
	svc := NewService(table)

	price, err := svc.UnitPrice(model.KindCompute, "t2.micro")
	require.NoError(t, err)
	assert.InDelta(t, 0.023, price, 0.000001)

	// Later table mutations must not affect cached entries.
	table[model.KindCompute]["t2.micro"] = 99.0

	price, err = svc.UnitPrice(model.KindCompute, "t2.micro")
	require.NoError(t, err)
	assert.InDelta(t, 0.023, price, 0.000001)
}

func TestMergeOverridesAndExtends(t *testing.T) {
	base := DefaultTable()
	merged := base.Merge(Table{
		model.KindCompute: {
			"t2.micro":   0.03,
			"x2gd.large": 0.334,
		},
	})

	assert.InDelta(t, 0.03, merged[model.KindCompute]["t2.micro"], 0.000001)
	assert.InDelta(t, 0.334, merged[model.KindCompute]["x2gd.large"], 0.000001)
	assert.InDelta(t, 0.041, merged[model.KindDatabase]["db.t3.micro"], 0.000001)

	// The base table is left untouched.
	assert.InDelta(t, 0.023, base[model.KindCompute]["t2.micro"], 0.000001)
}

func TestLookupErrorMessage(t *testing.T) {
	err := &LookupError{Kind: model.KindObjectStorage, Dimension: "OUTPOSTS"}
	assert.Contains(t, err.Error(), "s3")
	assert.Contains(t, err.Error(), "OUTPOSTS")

	wrapped := errors.Join(errors.New("estimating"), err)
	var target *LookupError
	assert.ErrorAs(t, wrapped, &target)
}
