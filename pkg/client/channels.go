package client

import (
	"context"
	"encoding/json"
	"fmt"
)

// ChannelService handles notification channel-related API calls
type ChannelService struct {
	client *Client
}

// CreateChannelRequest represents a request to create a notification channel
type CreateChannelRequest struct {
	Name        string          `json:"name"`
	ChannelType string          `json:"channelType"` // email, webhook
	Config      json.RawMessage `json:"config"`
}

// UpdateChannelRequest represents a request to update a notification channel
type UpdateChannelRequest struct {
	Name    *string         `json:"name,omitempty"`
	Config  json.RawMessage `json:"config,omitempty"`
	Enabled *bool           `json:"enabled,omitempty"`
}

// List retrieves all notification channels
func (s *ChannelService) List(ctx context.Context) ([]Channel, error) {
	var channels []Channel
	if err := s.client.doRequest(ctx, "GET", "/api/v1/channels", nil, &channels); err != nil {
		return nil, err
	}

	return channels, nil
}

// Get retrieves a single notification channel by ID
func (s *ChannelService) Get(ctx context.Context, id string) (*Channel, error) {
	path := fmt.Sprintf("/api/v1/channels/%s", id)

	var ch Channel
	if err := s.client.doRequest(ctx, "GET", path, nil, &ch); err != nil {
		return nil, err
	}

	return &ch, nil
}

// Create creates a new notification channel
func (s *ChannelService) Create(ctx context.Context, req CreateChannelRequest) (*Channel, error) {
	var ch Channel
	if err := s.client.doRequest(ctx, "POST", "/api/v1/channels", req, &ch); err != nil {
		return nil, err
	}

	return &ch, nil
}

// Update updates an existing notification channel
func (s *ChannelService) Update(ctx context.Context, id string, req UpdateChannelRequest) (*Channel, error) {
	path := fmt.Sprintf("/api/v1/channels/%s", id)

	var ch Channel
	if err := s.client.doRequest(ctx, "PUT", path, req, &ch); err != nil {
		return nil, err
	}

	return &ch, nil
}

// Delete deletes a notification channel
func (s *ChannelService) Delete(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/v1/channels/%s", id)
	return s.client.doRequest(ctx, "DELETE", path, nil, nil)
}

// Test asks the server to deliver a synthetic alert through the channel
func (s *ChannelService) Test(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/v1/channels/%s/test", id)
	return s.client.doRequest(ctx, "POST", path, nil, nil)
}
