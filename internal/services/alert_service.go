package services

import (
	"context"
	"time"

	"github.com/netpulse/netpulse/internal/domain/alert"
	apperrors "github.com/netpulse/netpulse/internal/pkg/errors"
	"github.com/netpulse/netpulse/internal/pkg/logger"
)

// AlertService implements alert.Service
type AlertService struct {
	repo   alert.Repository
	logger *logger.Logger
	now    func() time.Time
}

// NewAlertService creates a new alert service
func NewAlertService(repo alert.Repository, log *logger.Logger) alert.Service {
	return &AlertService{
		repo:   repo,
		logger: log,
		now:    time.Now,
	}
}

// GetByID retrieves an alert by ID
func (s *AlertService) GetByID(ctx context.Context, id int64) (*alert.Alert, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperrors.NotFound("alert")
	}
	return a, nil
}

// List retrieves alerts with filters and pagination
func (s *AlertService) List(ctx context.Context, filter alert.Filter, limit, offset int) ([]*alert.Alert, int64, error) {
	return s.repo.ListWithPagination(ctx, filter, limit, offset)
}

// Acknowledge marks an alert as acknowledged by an operator
func (s *AlertService) Acknowledge(ctx context.Context, id int64, by string) (*alert.Alert, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.IsAcknowledged() {
		return a, nil
	}

	ts := s.now().UTC()
	a.AcknowledgedAt = &ts
	a.AcknowledgedBy = by

	if err := s.repo.Update(ctx, a); err != nil {
		s.logger.ErrorWithErr(err, "Failed to acknowledge alert")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"alert_id":        id,
		"acknowledged_by": by,
	}).Info("Alert acknowledged")

	return a, nil
}

// Resolve marks an alert as resolved
func (s *AlertService) Resolve(ctx context.Context, id int64) (*alert.Alert, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.IsActive() {
		return a, nil
	}

	ts := s.now().UTC()
	a.ResolvedAt = &ts

	if err := s.repo.Update(ctx, a); err != nil {
		s.logger.ErrorWithErr(err, "Failed to resolve alert")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"alert_id": id,
		"severity": a.Severity,
	}).Info("Alert resolved")

	return a, nil
}

// Summary counts unresolved alerts per severity
func (s *AlertService) Summary(ctx context.Context) (map[string]int, error) {
	return s.repo.CountActiveBySeverity(ctx)
}
