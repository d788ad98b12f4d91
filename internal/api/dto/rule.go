package dto

import "time"

// RuleDTO represents an alert rule in API responses
type RuleDTO struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	Description          string    `json:"description,omitempty"`
	RuleType             string    `json:"ruleType"`
	MetricName           string    `json:"metricName"`
	Condition            string    `json:"condition"`
	Threshold            float64   `json:"threshold"`
	Severity             string    `json:"severity"`
	HostID               string    `json:"hostId,omitempty"`
	NotificationChannels []string  `json:"notificationChannels"`
	CooldownMinutes      int       `json:"cooldownMinutes"`
	Enabled              bool      `json:"enabled"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// CreateRuleRequest represents a rule creation request
type CreateRuleRequest struct {
	Name                 string   `json:"name" validate:"required"`
	Description          string   `json:"description,omitempty"`
	RuleType             string   `json:"ruleType,omitempty" validate:"omitempty,oneof=threshold trend"`
	MetricName           string   `json:"metricName" validate:"required"`
	Condition            string   `json:"condition" validate:"required,oneof=gt gte lt lte eq ne"`
	Threshold            float64  `json:"threshold"`
	Severity             string   `json:"severity" validate:"required,oneof=info warning critical"`
	HostID               string   `json:"hostId,omitempty"`
	NotificationChannels []string `json:"notificationChannels,omitempty"`
	CooldownMinutes      int      `json:"cooldownMinutes,omitempty" validate:"omitempty,min=0"`
	Enabled              *bool    `json:"enabled,omitempty"`
}

// UpdateRuleRequest represents a rule update request
type UpdateRuleRequest struct {
	Name                 *string  `json:"name,omitempty"`
	Description          *string  `json:"description,omitempty"`
	MetricName           *string  `json:"metricName,omitempty"`
	Condition            *string  `json:"condition,omitempty" validate:"omitempty,oneof=gt gte lt lte eq ne"`
	Threshold            *float64 `json:"threshold,omitempty"`
	Severity             *string  `json:"severity,omitempty" validate:"omitempty,oneof=info warning critical"`
	HostID               *string  `json:"hostId,omitempty"`
	NotificationChannels []string `json:"notificationChannels,omitempty"`
	CooldownMinutes      *int     `json:"cooldownMinutes,omitempty" validate:"omitempty,min=0"`
	Enabled              *bool    `json:"enabled,omitempty"`
}
