package alert

import (
	"context"
	"time"
)

// Repository defines the interface for alert data access.
// Reads return (nil, nil) when nothing matches.
type Repository interface {
	// Create persists a new alert
	Create(ctx context.Context, a *Alert) (int64, error)

	// GetByID retrieves an alert by ID
	GetByID(ctx context.Context, id int64) (*Alert, error)

	// Update updates an alert
	Update(ctx context.Context, a *Alert) error

	// ListWithPagination retrieves alerts with filters and pagination,
	// newest first
	ListWithPagination(ctx context.Context, filter Filter, limit, offset int) ([]*Alert, int64, error)

	// LatestForRuleHost returns the most recently triggered alert for a
	// rule/host pair, or nil if the pair has never alerted
	LatestForRuleHost(ctx context.Context, ruleID int64, hostID string) (*Alert, error)

	// CountActiveBySeverity counts unresolved alerts per severity
	CountActiveBySeverity(ctx context.Context) (map[string]int, error)

	// DeleteResolvedBefore removes resolved alerts older than cutoff and
	// returns the number of rows removed
	DeleteResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
