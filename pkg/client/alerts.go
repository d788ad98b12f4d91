package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// AlertService handles fired alert-related API calls
type AlertService struct {
	client *Client
}

// AlertListOptions contains options for listing alerts
type AlertListOptions struct {
	ListOptions
	AlertRuleID *int64  `json:"alert_rule_id,omitempty"`
	HostID      *string `json:"host_id,omitempty"`
	MetricName  *string `json:"metric_name,omitempty"`
	Severity    *string `json:"severity,omitempty"` // info, warning, critical
	ActiveOnly  bool    `json:"active,omitempty"`
}

// AcknowledgeRequest represents a request to acknowledge an alert
type AcknowledgeRequest struct {
	AcknowledgedBy string `json:"acknowledgedBy,omitempty"`
}

// List retrieves a page of alerts matching the given options
func (s *AlertService) List(ctx context.Context, opts *AlertListOptions) (*AlertPage, error) {
	query := url.Values{}

	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(opts.PageSize))
		}
		if opts.AlertRuleID != nil {
			query.Set("rule_id", strconv.FormatInt(*opts.AlertRuleID, 10))
		}
		if opts.HostID != nil {
			query.Set("host_id", *opts.HostID)
		}
		if opts.MetricName != nil {
			query.Set("metric_name", *opts.MetricName)
		}
		if opts.Severity != nil {
			query.Set("severity", *opts.Severity)
		}
		if opts.ActiveOnly {
			query.Set("active", "true")
		}
	}

	path := "/api/v1/alerts"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var page AlertPage
	if err := s.client.doRequest(ctx, "GET", path, nil, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// Get retrieves a single alert by ID
func (s *AlertService) Get(ctx context.Context, id int64) (*Alert, error) {
	path := fmt.Sprintf("/api/v1/alerts/%d", id)

	var a Alert
	if err := s.client.doRequest(ctx, "GET", path, nil, &a); err != nil {
		return nil, err
	}

	return &a, nil
}

// Acknowledge marks an alert as acknowledged. The server fills in the
// token's email when by is empty.
func (s *AlertService) Acknowledge(ctx context.Context, id int64, by string) (*Alert, error) {
	path := fmt.Sprintf("/api/v1/alerts/%d/acknowledge", id)

	var a Alert
	if err := s.client.doRequest(ctx, "POST", path, AcknowledgeRequest{AcknowledgedBy: by}, &a); err != nil {
		return nil, err
	}

	return &a, nil
}

// Resolve marks an alert as resolved
func (s *AlertService) Resolve(ctx context.Context, id int64) (*Alert, error) {
	path := fmt.Sprintf("/api/v1/alerts/%d/resolve", id)

	var a Alert
	if err := s.client.doRequest(ctx, "POST", path, nil, &a); err != nil {
		return nil, err
	}

	return &a, nil
}

// Summary returns the counts of active alerts per severity
func (s *AlertService) Summary(ctx context.Context) (*AlertSummary, error) {
	var sum AlertSummary
	if err := s.client.doRequest(ctx, "GET", "/api/v1/alerts/summary", nil, &sum); err != nil {
		return nil, err
	}

	return &sum, nil
}
