package rule

import (
	"fmt"
	"time"
)

// AlertRule represents a persisted alert rule definition
type AlertRule struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	Description          string    `json:"description,omitempty"`
	RuleType             string    `json:"rule_type"`
	MetricName           string    `json:"metric_name"`
	Condition            string    `json:"condition"`
	Threshold            float64   `json:"threshold"`
	Severity             string    `json:"severity"`
	HostID               string    `json:"host_id,omitempty"` // empty means every host reporting the metric
	NotificationChannels []string  `json:"notification_channels"`
	CooldownMinutes      int       `json:"cooldown_minutes"`
	Enabled              bool      `json:"enabled"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at,omitempty"`
}

// Rule types
const (
	TypeThreshold = "threshold"
	TypeTrend     = "trend"
)

// Threshold conditions
const (
	ConditionGT  = "gt"
	ConditionGTE = "gte"
	ConditionLT  = "lt"
	ConditionLTE = "lte"
	ConditionEQ  = "eq"
	ConditionNE  = "ne"
)

// Severity levels, ordered low to high
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Cooldown returns the rule's cooldown as a duration
func (r *AlertRule) Cooldown() time.Duration {
	return time.Duration(r.CooldownMinutes) * time.Minute
}

// Validate checks the rule's enumerated fields
func (r *AlertRule) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("rule name is required")
	}
	if r.MetricName == "" {
		return fmt.Errorf("rule metric_name is required")
	}
	if !ValidRuleType(r.RuleType) {
		return fmt.Errorf("invalid rule_type: %s", r.RuleType)
	}
	if !ValidCondition(r.Condition) {
		return fmt.Errorf("invalid condition: %s", r.Condition)
	}
	if !ValidSeverity(r.Severity) {
		return fmt.Errorf("invalid severity: %s", r.Severity)
	}
	if r.CooldownMinutes < 0 {
		return fmt.Errorf("cooldown_minutes must not be negative")
	}
	return nil
}

// ValidRuleType reports whether t is a known rule type
func ValidRuleType(t string) bool {
	switch t {
	case TypeThreshold, TypeTrend:
		return true
	default:
		return false
	}
}

// ValidCondition reports whether c is a known threshold condition
func ValidCondition(c string) bool {
	switch c {
	case ConditionGT, ConditionGTE, ConditionLT, ConditionLTE, ConditionEQ, ConditionNE:
		return true
	default:
		return false
	}
}

// ValidSeverity reports whether s is a known severity
func ValidSeverity(s string) bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityCritical:
		return true
	default:
		return false
	}
}

// SeverityRank maps a severity to its position in the total ordering
// info < warning < critical. Unknown severities rank below info.
func SeverityRank(s string) int {
	switch s {
	case SeverityInfo:
		return 1
	case SeverityWarning:
		return 2
	case SeverityCritical:
		return 3
	default:
		return 0
	}
}

// Filter contains rule filtering options
type Filter struct {
	RuleType   string
	MetricName string
	Severity   string
	HostID     string
	Enabled    *bool
}
