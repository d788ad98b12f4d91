package alert

import "time"

// Alert represents a triggered alert instance
type Alert struct {
	ID             int64      `json:"id"`
	AlertRuleID    int64      `json:"alert_rule_id"`
	HostID         string     `json:"host_id"`
	HostName       string     `json:"host_name,omitempty"`
	MetricName     string     `json:"metric_name"`
	Value          float64    `json:"value"`
	Threshold      float64    `json:"threshold"`
	Severity       string     `json:"severity"`
	Message        string     `json:"message"`
	TriggeredAt    time.Time  `json:"triggered_at"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	AcknowledgedBy string     `json:"acknowledged_by,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
}

// IsActive reports whether the alert has not been resolved
func (a *Alert) IsActive() bool {
	return a.ResolvedAt == nil
}

// IsAcknowledged reports whether the alert has been acknowledged
func (a *Alert) IsAcknowledged() bool {
	return a.AcknowledgedAt != nil
}

// Filter contains alert filtering options
type Filter struct {
	AlertRuleID int64
	HostID      string
	MetricName  string
	Severity    string
	ActiveOnly  bool
}
