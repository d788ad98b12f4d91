package dto

import (
	"encoding/json"
	"time"
)

// ChannelDTO represents a notification channel in API responses
type ChannelDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	ChannelType string          `json:"channelType"`
	Config      json.RawMessage `json:"config"`
	Enabled     bool            `json:"enabled"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CreateChannelRequest represents a channel creation request
type CreateChannelRequest struct {
	Name        string          `json:"name" validate:"required"`
	ChannelType string          `json:"channelType" validate:"required,oneof=email webhook"`
	Config      json.RawMessage `json:"config" validate:"required"`
}

// UpdateChannelRequest represents a channel update request
type UpdateChannelRequest struct {
	Name    *string         `json:"name,omitempty"`
	Config  json.RawMessage `json:"config,omitempty"`
	Enabled *bool           `json:"enabled,omitempty"`
}
