package pricing

import "github.com/costsift/costsift/model"

// DefaultTable returns the built-in approximate on-demand prices in USD.
// Hourly rates for instances, GiB-month rates for storage classes. Config
// files can override or extend any entry.
func DefaultTable() Table {
	return Table{
		model.KindCompute: {
			"t2.nano":   0.0058,
			"t2.micro":  0.023,
			"t2.small":  0.046,
			"t2.medium": 0.092,
			"t3.micro":  0.0104,
			"t3.small":  0.0208,
			"t3.medium": 0.0416,
			"t3.large":  0.0832,
			"m5.large":  0.096,
			"m5.xlarge": 0.192,
			"c5.large":  0.085,
			"c5.xlarge": 0.17,
			"r5.large":  0.126,
		},
		model.KindDatabase: {
			"db.t3.micro":  0.041,
			"db.t3.small":  0.082,
			"db.t3.medium": 0.164,
			"db.t4g.micro": 0.037,
			"db.m5.large":  0.342,
			"db.m5.xlarge": 0.684,
			"db.r5.large":  0.48,
		},
		model.KindObjectStorage: {
			"STANDARD":            0.023,
			"STANDARD_IA":         0.0125,
			"INTELLIGENT_TIERING": 0.023,
			"ONEZONE_IA":          0.01,
			"GLACIER":             0.004,
			"GLACIER_IR":          0.004,
			"DEEP_ARCHIVE":        0.00099,
			"REDUCED_REDUNDANCY":  0.024,
		},
	}
}
