package metric

import (
	"context"
	"time"
)

// Reader is the read-only metric contract used by the engine and the
// analytics/forecasting modules.
type Reader interface {
	// GetLatest returns the newest sample per metric name for a host
	GetLatest(ctx context.Context, hostID string) ([]*Metric, error)

	// LatestFor returns the newest sample for one host/metric pair, or
	// nil if the host never reported the metric
	LatestFor(ctx context.Context, hostID, metricName string) (*Metric, error)

	// GetByTimeRange returns samples ordered by recorded_at ascending
	GetByTimeRange(ctx context.Context, hostID, metricName string, start, end time.Time) ([]*Metric, error)

	// HostsReporting returns the distinct hosts that have reported a
	// metric name
	HostsReporting(ctx context.Context, metricName string) ([]string, error)
}

// Repository extends the read contract with the writes the collector
// and retention job need.
type Repository interface {
	Reader

	// Insert appends one sample
	Insert(ctx context.Context, m *Metric) error

	// InsertBatch appends many samples in one transaction
	InsertBatch(ctx context.Context, ms []*Metric) error

	// DeleteBefore removes samples older than cutoff and returns the
	// number of rows removed
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
