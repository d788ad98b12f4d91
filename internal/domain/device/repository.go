package device

import "context"

// Repository defines the interface for device inventory access.
// Reads return (nil, nil) when nothing matches.
type Repository interface {
	// Upsert inserts or refreshes a device row
	Upsert(ctx context.Context, d *Device) error

	// GetByID retrieves a device by controller id
	GetByID(ctx context.Context, id string) (*Device, error)

	// List retrieves all known devices
	List(ctx context.Context) ([]*Device, error)
}
