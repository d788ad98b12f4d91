package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// RuleService handles alert rule-related API calls
type RuleService struct {
	client *Client
}

// RuleListOptions contains options for listing alert rules
type RuleListOptions struct {
	MetricName *string `json:"metric_name,omitempty"`
	Severity   *string `json:"severity,omitempty"` // info, warning, critical
	HostID     *string `json:"host_id,omitempty"`
	Enabled    *bool   `json:"enabled,omitempty"`
}

// CreateRuleRequest represents a request to create an alert rule
type CreateRuleRequest struct {
	Name                 string   `json:"name"`
	Description          string   `json:"description,omitempty"`
	MetricName           string   `json:"metricName"`
	Condition            string   `json:"condition"` // gt, gte, lt, lte, eq, ne
	Threshold            float64  `json:"threshold"`
	Severity             string   `json:"severity"` // info, warning, critical
	HostID               string   `json:"hostId,omitempty"`
	NotificationChannels []string `json:"notificationChannels,omitempty"`
	CooldownMinutes      int      `json:"cooldownMinutes,omitempty"`
	Enabled              *bool    `json:"enabled,omitempty"`
}

// UpdateRuleRequest represents a request to update an alert rule
type UpdateRuleRequest struct {
	Name                 *string   `json:"name,omitempty"`
	Description          *string   `json:"description,omitempty"`
	MetricName           *string   `json:"metricName,omitempty"`
	Condition            *string   `json:"condition,omitempty"`
	Threshold            *float64  `json:"threshold,omitempty"`
	Severity             *string   `json:"severity,omitempty"`
	HostID               *string   `json:"hostId,omitempty"`
	NotificationChannels *[]string `json:"notificationChannels,omitempty"`
	CooldownMinutes      *int      `json:"cooldownMinutes,omitempty"`
	Enabled              *bool     `json:"enabled,omitempty"`
}

// List retrieves alert rules matching the given options
func (s *RuleService) List(ctx context.Context, opts *RuleListOptions) ([]Rule, error) {
	query := url.Values{}

	if opts != nil {
		if opts.MetricName != nil {
			query.Set("metric_name", *opts.MetricName)
		}
		if opts.Severity != nil {
			query.Set("severity", *opts.Severity)
		}
		if opts.HostID != nil {
			query.Set("host_id", *opts.HostID)
		}
		if opts.Enabled != nil {
			query.Set("enabled", strconv.FormatBool(*opts.Enabled))
		}
	}

	path := "/api/v1/rules"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var rules []Rule
	if err := s.client.doRequest(ctx, "GET", path, nil, &rules); err != nil {
		return nil, err
	}

	return rules, nil
}

// Get retrieves a single alert rule by ID
func (s *RuleService) Get(ctx context.Context, id int64) (*Rule, error) {
	path := fmt.Sprintf("/api/v1/rules/%d", id)

	var rule Rule
	if err := s.client.doRequest(ctx, "GET", path, nil, &rule); err != nil {
		return nil, err
	}

	return &rule, nil
}

// Create creates a new alert rule
func (s *RuleService) Create(ctx context.Context, req CreateRuleRequest) (*Rule, error) {
	var rule Rule
	if err := s.client.doRequest(ctx, "POST", "/api/v1/rules", req, &rule); err != nil {
		return nil, err
	}

	return &rule, nil
}

// Update updates an existing alert rule
func (s *RuleService) Update(ctx context.Context, id int64, req UpdateRuleRequest) (*Rule, error) {
	path := fmt.Sprintf("/api/v1/rules/%d", id)

	var rule Rule
	if err := s.client.doRequest(ctx, "PUT", path, req, &rule); err != nil {
		return nil, err
	}

	return &rule, nil
}

// Delete deletes an alert rule
func (s *RuleService) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/v1/rules/%d", id)
	return s.client.doRequest(ctx, "DELETE", path, nil, nil)
}

// Enable turns an alert rule on
func (s *RuleService) Enable(ctx context.Context, id int64) (*Rule, error) {
	path := fmt.Sprintf("/api/v1/rules/%d/enable", id)

	var rule Rule
	if err := s.client.doRequest(ctx, "POST", path, nil, &rule); err != nil {
		return nil, err
	}

	return &rule, nil
}

// Disable turns an alert rule off
func (s *RuleService) Disable(ctx context.Context, id int64) (*Rule, error) {
	path := fmt.Sprintf("/api/v1/rules/%d/disable", id)

	var rule Rule
	if err := s.client.doRequest(ctx, "POST", path, nil, &rule); err != nil {
		return nil, err
	}

	return &rule, nil
}
