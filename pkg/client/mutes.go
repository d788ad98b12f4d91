package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// MuteService handles mute window-related API calls
type MuteService struct {
	client *Client
}

// CreateMuteRequest represents a request to mute an alert rule
type CreateMuteRequest struct {
	AlertRuleID int64      `json:"alertRuleId"`
	HostID      string     `json:"hostId,omitempty"`
	Reason      string     `json:"reason,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// List retrieves mute windows, optionally restricted to one rule
func (s *MuteService) List(ctx context.Context, ruleID *int64) ([]Mute, error) {
	path := "/api/v1/mutes"
	if ruleID != nil {
		query := url.Values{}
		query.Set("rule_id", strconv.FormatInt(*ruleID, 10))
		path += "?" + query.Encode()
	}

	var mutes []Mute
	if err := s.client.doRequest(ctx, "GET", path, nil, &mutes); err != nil {
		return nil, err
	}

	return mutes, nil
}

// Create mutes a rule. An empty HostID mutes the rule on every host,
// and a nil ExpiresAt mutes it until explicitly removed.
func (s *MuteService) Create(ctx context.Context, req CreateMuteRequest) (*Mute, error) {
	var m Mute
	if err := s.client.doRequest(ctx, "POST", "/api/v1/mutes", req, &m); err != nil {
		return nil, err
	}

	return &m, nil
}

// Delete removes a mute window
func (s *MuteService) Delete(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/v1/mutes/%s", id)
	return s.client.doRequest(ctx, "DELETE", path, nil, nil)
}
