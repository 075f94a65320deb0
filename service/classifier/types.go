package classifier

// Thresholds are the tunable cutoffs the idle rules compare against. Zero
// values are not meaningful; start from DefaultThresholds and override.
type Thresholds struct {
	// ComputeCPUPercent flags compute and database instances whose average
	// CPU stays below it.
	ComputeCPUPercent float64
	// DatabaseConnections flags database instances averaging fewer
	// connections than this.
	DatabaseConnections float64
	// StorageGetRequests flags buckets with fewer GET requests than this
	// over the lookback window.
	StorageGetRequests float64
	// ColdSizeGiB is the bucket size from which missing request metrics
	// leave the verdict unknown instead of healthy.
	ColdSizeGiB float64
}

// DefaultThresholds returns the stock cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ComputeCPUPercent:   5.0,
		DatabaseConnections: 1.0,
		StorageGetRequests:  10.0,
		ColdSizeGiB:         1.0,
	}
}

type service struct {
	thresholds Thresholds
}
