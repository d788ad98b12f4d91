package channel

import (
	"context"
	"encoding/json"
)

// Service defines the interface for channel business logic
type Service interface {
	// Create validates and creates a channel
	Create(ctx context.Context, name, channelType string, config json.RawMessage) (*NotificationChannel, error)

	// GetByID retrieves a channel by ID
	GetByID(ctx context.Context, id string) (*NotificationChannel, error)

	// Update applies updates to a channel
	Update(ctx context.Context, id string, updates map[string]interface{}) (*NotificationChannel, error)

	// Delete removes a channel
	Delete(ctx context.Context, id string) error

	// List retrieves all channels
	List(ctx context.Context) ([]*NotificationChannel, error)

	// SetEnabled flips the enabled flag
	SetEnabled(ctx context.Context, id string, enabled bool) error

	// Test delivers a synthetic alert through the channel
	Test(ctx context.Context, id string) error
}
