package rule

import "context"

// Service defines the interface for rule business logic
type Service interface {
	// Create validates and creates a new rule
	Create(ctx context.Context, r *AlertRule) (int64, error)

	// GetByID retrieves a rule by ID
	GetByID(ctx context.Context, id int64) (*AlertRule, error)

	// Update applies field updates to a rule
	Update(ctx context.Context, id int64, updates map[string]interface{}) (*AlertRule, error)

	// Delete deletes a rule
	Delete(ctx context.Context, id int64) error

	// List retrieves rules with filters
	List(ctx context.Context, filter Filter) ([]*AlertRule, error)

	// Enable enables a rule
	Enable(ctx context.Context, id int64) error

	// Disable disables a rule
	Disable(ctx context.Context, id int64) error
}
