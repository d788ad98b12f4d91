package mute

import (
	"context"
	"time"
)

// Repository defines the interface for mute data access.
// Reads return (nil, nil) when nothing matches.
type Repository interface {
	// Create persists a new mute
	Create(ctx context.Context, m *AlertMute) error

	// GetByID retrieves a mute by ID
	GetByID(ctx context.Context, id string) (*AlertMute, error)

	// Delete removes a mute (explicit unmute)
	Delete(ctx context.Context, id string) error

	// List retrieves all mutes, newest first
	List(ctx context.Context) ([]*AlertMute, error)

	// ListForRule retrieves all mutes for one rule
	ListForRule(ctx context.Context, ruleID int64) ([]*AlertMute, error)

	// ActiveForRuleHost returns a mute covering the rule/host pair that
	// is active at the given time (host-scoped or network-wide), or nil
	ActiveForRuleHost(ctx context.Context, ruleID int64, hostID string, at time.Time) (*AlertMute, error)
}
