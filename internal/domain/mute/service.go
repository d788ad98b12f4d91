package mute

import (
	"context"
	"time"
)

// Service defines the interface for mute business logic
type Service interface {
	// Mute suppresses a rule (optionally for one host) until expiresAt;
	// nil expiresAt means indefinitely
	Mute(ctx context.Context, ruleID int64, hostID, mutedBy, reason string, expiresAt *time.Time) (*AlertMute, error)

	// Unmute removes a mute
	Unmute(ctx context.Context, id string) error

	// List retrieves all mutes
	List(ctx context.Context) ([]*AlertMute, error)

	// ListForRule retrieves mutes for one rule
	ListForRule(ctx context.Context, ruleID int64) ([]*AlertMute, error)
}
