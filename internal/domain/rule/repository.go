package rule

import "context"

// Repository defines the interface for rule data access.
// Reads return (nil, nil) when no rule matches; errors are reserved for
// storage failures and constraint violations.
type Repository interface {
	// Create creates a new rule
	Create(ctx context.Context, r *AlertRule) (int64, error)

	// GetByID retrieves a rule by ID
	GetByID(ctx context.Context, id int64) (*AlertRule, error)

	// Update updates a rule
	Update(ctx context.Context, r *AlertRule) error

	// Delete deletes a rule
	Delete(ctx context.Context, id int64) error

	// List retrieves rules with filters
	List(ctx context.Context, filter Filter) ([]*AlertRule, error)

	// ListEnabled retrieves all enabled rules in stable listing order
	ListEnabled(ctx context.Context) ([]*AlertRule, error)

	// SetEnabled flips the enabled flag
	SetEnabled(ctx context.Context, id int64, enabled bool) error
}
