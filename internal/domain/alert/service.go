package alert

import "context"

// Service defines the interface for alert business logic
type Service interface {
	// GetByID retrieves an alert by ID
	GetByID(ctx context.Context, id int64) (*Alert, error)

	// List retrieves alerts with filters and pagination
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Alert, int64, error)

	// Acknowledge marks an alert as acknowledged by an operator
	Acknowledge(ctx context.Context, id int64, by string) (*Alert, error)

	// Resolve marks an alert as resolved
	Resolve(ctx context.Context, id int64) (*Alert, error)

	// Summary counts unresolved alerts per severity
	Summary(ctx context.Context) (map[string]int, error)
}
