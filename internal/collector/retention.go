package collector

import (
	"context"
	"time"

	"github.com/netpulse/netpulse/internal/config"
	"github.com/netpulse/netpulse/internal/domain/alert"
	"github.com/netpulse/netpulse/internal/domain/metric"
	"github.com/netpulse/netpulse/internal/pkg/logger"
)

// Retention purges resolved alerts and raw metric samples past their
// configured retention windows.
type Retention struct {
	cfg     config.EngineConfig
	alerts  alert.Repository
	samples metric.Repository
	logger  *logger.Logger
	now     func() time.Time
}

// NewRetention creates a retention cleanup job
func NewRetention(cfg config.EngineConfig, alerts alert.Repository, samples metric.Repository, log *logger.Logger) *Retention {
	return &Retention{
		cfg:     cfg,
		alerts:  alerts,
		samples: samples,
		logger:  log,
		now:     time.Now,
	}
}

// RunOnce deletes expired rows in both tables. A failure in one table
// does not skip the other.
func (r *Retention) RunOnce(ctx context.Context) error {
	now := r.now().UTC()
	var firstErr error

	if r.cfg.AlertRetention > 0 {
		removed, err := r.alerts.DeleteResolvedBefore(ctx, now.Add(-r.cfg.AlertRetention))
		if err != nil {
			r.logger.ErrorWithErr(err, "Failed to purge resolved alerts")
			firstErr = err
		} else if removed > 0 {
			r.logger.WithFields(map[string]interface{}{
				"removed": removed,
			}).Info("Purged resolved alerts")
		}
	}

	if r.cfg.MetricRetention > 0 {
		removed, err := r.samples.DeleteBefore(ctx, now.Add(-r.cfg.MetricRetention))
		if err != nil {
			r.logger.ErrorWithErr(err, "Failed to purge metric samples")
			if firstErr == nil {
				firstErr = err
			}
		} else if removed > 0 {
			r.logger.WithFields(map[string]interface{}{
				"removed": removed,
			}).Info("Purged metric samples")
		}
	}

	return firstErr
}
