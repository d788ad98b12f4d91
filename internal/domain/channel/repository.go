package channel

import "context"

// Repository defines the interface for channel data access.
// Reads return (nil, nil) when nothing matches.
type Repository interface {
	// Create persists a new channel
	Create(ctx context.Context, c *NotificationChannel) error

	// GetByID retrieves a channel by ID
	GetByID(ctx context.Context, id string) (*NotificationChannel, error)

	// Update updates a channel
	Update(ctx context.Context, c *NotificationChannel) error

	// Delete removes a channel
	Delete(ctx context.Context, id string) error

	// List retrieves all channels
	List(ctx context.Context) ([]*NotificationChannel, error)
}
