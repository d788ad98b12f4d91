package dto

import "time"

// AlertDTO represents a fired alert in API responses
type AlertDTO struct {
	ID             int64      `json:"id"`
	AlertRuleID    int64      `json:"alertRuleId"`
	HostID         string     `json:"hostId"`
	HostName       string     `json:"hostName,omitempty"`
	MetricName     string     `json:"metricName"`
	Value          float64    `json:"value"`
	Threshold      float64    `json:"threshold"`
	Severity       string     `json:"severity"`
	Message        string     `json:"message"`
	TriggeredAt    time.Time  `json:"triggeredAt"`
	AcknowledgedAt *time.Time `json:"acknowledgedAt,omitempty"`
	AcknowledgedBy string     `json:"acknowledgedBy,omitempty"`
	ResolvedAt     *time.Time `json:"resolvedAt,omitempty"`
}

// AcknowledgeAlertRequest represents an alert acknowledgement request
type AcknowledgeAlertRequest struct {
	AcknowledgedBy string `json:"acknowledgedBy,omitempty"`
}

// AlertSummaryDTO represents active alert counts per severity
type AlertSummaryDTO struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Info     int `json:"info"`
}

// MuteDTO represents a mute window in API responses
type MuteDTO struct {
	ID          string     `json:"id"`
	AlertRuleID int64      `json:"alertRuleId"`
	HostID      string     `json:"hostId,omitempty"`
	MutedBy     string     `json:"mutedBy,omitempty"`
	Reason      string     `json:"reason,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// CreateMuteRequest represents a mute creation request
type CreateMuteRequest struct {
	AlertRuleID int64      `json:"alertRuleId" validate:"required"`
	HostID      string     `json:"hostId,omitempty"`
	Reason      string     `json:"reason,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}
