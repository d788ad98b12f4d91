package services

import (
	"context"

	"github.com/netpulse/netpulse/internal/domain/rule"
	apperrors "github.com/netpulse/netpulse/internal/pkg/errors"
	"github.com/netpulse/netpulse/internal/pkg/logger"
)

// RuleService implements rule.Service
type RuleService struct {
	repo   rule.Repository
	logger *logger.Logger
}

// NewRuleService creates a new rule service
func NewRuleService(repo rule.Repository, log *logger.Logger) rule.Service {
	return &RuleService{
		repo:   repo,
		logger: log,
	}
}

// Create validates and creates a new rule
func (s *RuleService) Create(ctx context.Context, r *rule.AlertRule) (int64, error) {
	if r.RuleType == "" {
		r.RuleType = rule.TypeThreshold
	}
	if err := r.Validate(); err != nil {
		return 0, apperrors.BadRequest(err.Error())
	}

	id, err := s.repo.Create(ctx, r)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to create alert rule")
		return 0, err
	}

	s.logger.WithFields(map[string]interface{}{
		"rule_id":  id,
		"metric":   r.MetricName,
		"severity": r.Severity,
	}).Info("Alert rule created")

	return id, nil
}

// GetByID retrieves a rule by ID
func (s *RuleService) GetByID(ctx context.Context, id int64) (*rule.AlertRule, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, apperrors.NotFound("alert rule")
	}
	return r, nil
}

// Update applies field updates to a rule
func (s *RuleService) Update(ctx context.Context, id int64, updates map[string]interface{}) (*rule.AlertRule, error) {
	r, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name, ok := updates["name"].(string); ok {
		r.Name = name
	}
	if description, ok := updates["description"].(string); ok {
		r.Description = description
	}
	if metricName, ok := updates["metric_name"].(string); ok {
		r.MetricName = metricName
	}
	if condition, ok := updates["condition"].(string); ok {
		r.Condition = condition
	}
	if threshold, ok := updates["threshold"].(float64); ok {
		r.Threshold = threshold
	}
	if severity, ok := updates["severity"].(string); ok {
		r.Severity = severity
	}
	if hostID, ok := updates["host_id"].(string); ok {
		r.HostID = hostID
	}
	if channels, ok := updates["notification_channels"].([]string); ok {
		r.NotificationChannels = channels
	}
	if cooldown, ok := updates["cooldown_minutes"].(int); ok {
		r.CooldownMinutes = cooldown
	}
	if enabled, ok := updates["enabled"].(bool); ok {
		r.Enabled = enabled
	}

	if err := r.Validate(); err != nil {
		return nil, apperrors.BadRequest(err.Error())
	}

	if err := s.repo.Update(ctx, r); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update alert rule")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"rule_id": id,
	}).Info("Alert rule updated")

	return r, nil
}

// Delete deletes a rule
func (s *RuleService) Delete(ctx context.Context, id int64) error {
	r, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, r.ID); err != nil {
		s.logger.ErrorWithErr(err, "Failed to delete alert rule")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"rule_id": id,
	}).Info("Alert rule deleted")

	return nil
}

// List retrieves rules with filters
func (s *RuleService) List(ctx context.Context, filter rule.Filter) ([]*rule.AlertRule, error) {
	return s.repo.List(ctx, filter)
}

// Enable enables a rule
func (s *RuleService) Enable(ctx context.Context, id int64) error {
	return s.setEnabled(ctx, id, true)
}

// Disable disables a rule
func (s *RuleService) Disable(ctx context.Context, id int64) error {
	return s.setEnabled(ctx, id, false)
}

func (s *RuleService) setEnabled(ctx context.Context, id int64, enabled bool) error {
	r, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.SetEnabled(ctx, r.ID, enabled); err != nil {
		s.logger.ErrorWithErr(err, "Failed to toggle alert rule")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"rule_id": id,
		"enabled": enabled,
	}).Info("Alert rule toggled")

	return nil
}
