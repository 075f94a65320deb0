package classifier

import (
	"fmt"

	"github.com/costsift/costsift/model"
)

func NewService(thresholds Thresholds) *service {
	return &service{thresholds: thresholds}
}

// Classify implements service.Classifier. It is a pure function of the record
// and the configured thresholds; unknown verdicts are never flagged idle.
func (s *service) Classify(record model.ResourceRecord) model.Classification {
	switch record.Kind {
	case model.KindCompute:
		return s.classifyCompute(record)
	case model.KindDatabase:
		return s.classifyDatabase(record)
	case model.KindObjectStorage:
		return s.classifyStorage(record)
	}
	return unavailable(fmt.Sprintf("unrecognized resource kind %q", record.Kind))
}

func (s *service) classifyCompute(record model.ResourceRecord) model.Classification {
	m := record.Compute
	if m == nil || m.AvgCPUPercent == nil {
		return unavailable("no CPU datapoints in window")
	}

	cpu := *m.AvgCPUPercent
	if cpu < s.thresholds.ComputeCPUPercent {
		return idle(model.RuleCPUBelowThreshold,
			fmt.Sprintf("avg CPU %.2f%% over %dd, below %.1f%%", cpu, m.WindowDays, s.thresholds.ComputeCPUPercent))
	}
	return healthy(fmt.Sprintf("avg CPU %.2f%% over %dd", cpu, m.WindowDays))
}

func (s *service) classifyDatabase(record model.ResourceRecord) model.Classification {
	m := record.Database
	if m == nil {
		return unavailable("no database metrics in window")
	}

	if m.AvgConnections != nil && *m.AvgConnections < s.thresholds.DatabaseConnections {
		return idle(model.RuleLowConnections,
			fmt.Sprintf("avg %.2f connections over %dd, below %.1f", *m.AvgConnections, m.WindowDays, s.thresholds.DatabaseConnections))
	}
	if m.AvgCPUPercent != nil && *m.AvgCPUPercent < s.thresholds.ComputeCPUPercent {
		return idle(model.RuleCPUBelowThreshold,
			fmt.Sprintf("avg CPU %.2f%% over %dd, below %.1f%%", *m.AvgCPUPercent, m.WindowDays, s.thresholds.ComputeCPUPercent))
	}
	if m.AvgConnections == nil && m.AvgCPUPercent == nil {
		return unavailable("no CPU or connection datapoints in window")
	}
	return healthy("connection and CPU activity above thresholds")
}

func (s *service) classifyStorage(record model.ResourceRecord) model.Classification {
	m := record.Storage
	if m == nil {
		return unavailable("bucket contents not readable")
	}

	if m.ObjectCount == 0 {
		return idle(model.RuleEmptyBucket, "bucket holds no objects")
	}
	if m.GetRequests != nil {
		if *m.GetRequests < s.thresholds.StorageGetRequests {
			return idle(model.RuleLowAccess,
				fmt.Sprintf("%.0f GET requests over %dd, below %.0f", *m.GetRequests, m.WindowDays, s.thresholds.StorageGetRequests))
		}
		return healthy(fmt.Sprintf("%.0f GET requests over %dd", *m.GetRequests, m.WindowDays))
	}

	// Without request metrics a large bucket cannot be cleared for
	// cold-tier migration, so the verdict stays unknown.
	if record.SizeGiB() >= s.thresholds.ColdSizeGiB {
		return unavailable(fmt.Sprintf("request metrics not enabled on %.1f GiB bucket", record.SizeGiB()))
	}
	return healthy("small bucket without request metrics")
}

func idle(rule model.Rule, detail string) model.Classification {
	return model.Classification{Idle: true, Rule: rule, Detail: detail}
}

func healthy(detail string) model.Classification {
	return model.Classification{Rule: model.RuleHealthy, Detail: detail}
}

func unavailable(detail string) model.Classification {
	return model.Classification{Unknown: true, Rule: model.RuleMetricsUnavailable, Detail: detail}
}
