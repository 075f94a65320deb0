package model

// Rule names the heuristic that produced a classification.
type Rule string

const (
	RuleCPUBelowThreshold  Rule = "cpu_below_threshold"
	RuleLowConnections     Rule = "low_connections"
	RuleLowAccess          Rule = "low_access"
	RuleEmptyBucket        Rule = "empty_bucket"
	RuleHealthy            Rule = "healthy"
	RuleMetricsUnavailable Rule = "metrics_unavailable"
)

// Classification is the idle verdict for a single ResourceRecord.
// Unknown is set when the deciding metric was unavailable; unknown resources
// are never flagged idle.
type Classification struct {
	Idle    bool
	Unknown bool
	Rule    Rule
	Detail  string
}
