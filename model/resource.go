package model

import "fmt"

// Kind identifies the closed set of resource kinds a scan covers.
type Kind string

const (
	KindCompute       Kind = "ec2"
	KindDatabase      Kind = "rds"
	KindObjectStorage Kind = "s3"
)

// AllKinds returns every scannable kind in canonical scan order.
func AllKinds() []Kind {
	return []Kind{KindCompute, KindDatabase, KindObjectStorage}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindCompute, KindDatabase, KindObjectStorage:
		return true
	}
	return false
}

// Label returns the human-readable name used in tables and reports.
func (k Kind) Label() string {
	switch k {
	case KindCompute:
		return "EC2 Instance"
	case KindDatabase:
		return "RDS Instance"
	case KindObjectStorage:
		return "S3 Bucket"
	}
	return string(k)
}

// ComputeMetrics carries the utilization observed for an EC2 instance.
// AvgCPUPercent is nil when CloudWatch returned no datapoints for the window.
type ComputeMetrics struct {
	AvgCPUPercent *float64
	State         string
	WindowDays    int
}

// DatabaseMetrics carries the utilization observed for an RDS instance.
type DatabaseMetrics struct {
	AvgCPUPercent  *float64
	AvgConnections *float64
	Engine         string
	WindowDays     int
}

// StorageMetrics carries size and access activity for an S3 bucket.
// GetRequests is nil when request metrics are not enabled on the bucket.
type StorageMetrics struct {
	SizeBytes   int64
	ObjectCount int64
	GetRequests *float64
	WindowDays  int
}

// ResourceRecord is one scanned resource. At most one of the metric variants
// is non-nil and matches Kind; a nil variant means the fetch stage could not
// observe the resource at all. Records are not mutated after the fetch stage.
type ResourceRecord struct {
	ID               string
	Name             string
	Kind             Kind
	Region           string
	Tags             map[string]string
	BillingDimension string

	Compute  *ComputeMetrics
	Database *DatabaseMetrics
	Storage  *StorageMetrics
}

const bytesPerGiB = 1024 * 1024 * 1024

// SizeGiB returns the stored size for storage records, zero otherwise.
func (r ResourceRecord) SizeGiB() float64 {
	if r.Storage == nil {
		return 0
	}
	return float64(r.Storage.SizeBytes) / bytesPerGiB
}

// UsageSummary renders the record's primary utilization metric as a short
// human string, e.g. "CPU 2.31%" or "Size 14.20 GiB".
func (r ResourceRecord) UsageSummary() string {
	switch r.Kind {
	case KindCompute:
		if r.Compute == nil || r.Compute.AvgCPUPercent == nil {
			return "CPU n/a"
		}
		return fmt.Sprintf("CPU %.2f%%", *r.Compute.AvgCPUPercent)
	case KindDatabase:
		if r.Database == nil {
			return "CPU n/a"
		}
		cpu := "n/a"
		if r.Database.AvgCPUPercent != nil {
			cpu = fmt.Sprintf("%.2f%%", *r.Database.AvgCPUPercent)
		}
		conns := "n/a"
		if r.Database.AvgConnections != nil {
			conns = fmt.Sprintf("%.1f", *r.Database.AvgConnections)
		}
		return fmt.Sprintf("CPU %s, conns %s", cpu, conns)
	case KindObjectStorage:
		if r.Storage == nil {
			return "Size n/a"
		}
		return fmt.Sprintf("Size %.2f GiB, %d objects", r.SizeGiB(), r.Storage.ObjectCount)
	}
	return ""
}
