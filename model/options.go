package model

// ScanOptions carries one run's settings from the CLI into the pipeline.
type ScanOptions struct {
	Region  string
	Profile string

	// Kinds to scan; empty means all kinds.
	Kinds []Kind

	OutputPath    string
	HTMLPath      string
	PublishBucket string
	PublishPrefix string
	WithActuals   bool
}
