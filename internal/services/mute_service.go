package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/netpulse/netpulse/internal/domain/mute"
	"github.com/netpulse/netpulse/internal/domain/rule"
	apperrors "github.com/netpulse/netpulse/internal/pkg/errors"
	"github.com/netpulse/netpulse/internal/pkg/logger"
)

// MuteService implements mute.Service
type MuteService struct {
	repo   mute.Repository
	rules  rule.Repository
	logger *logger.Logger
	now    func() time.Time
}

// NewMuteService creates a new mute service
func NewMuteService(repo mute.Repository, rules rule.Repository, log *logger.Logger) mute.Service {
	return &MuteService{
		repo:   repo,
		rules:  rules,
		logger: log,
		now:    time.Now,
	}
}

// Mute suppresses a rule (optionally for one host) until expiresAt
func (s *MuteService) Mute(ctx context.Context, ruleID int64, hostID, mutedBy, reason string, expiresAt *time.Time) (*mute.AlertMute, error) {
	r, err := s.rules.GetByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, apperrors.NotFound("alert rule")
	}
	if expiresAt != nil && !expiresAt.After(s.now()) {
		return nil, apperrors.BadRequest("expires_at must be in the future")
	}

	m := &mute.AlertMute{
		ID:          uuid.New().String(),
		AlertRuleID: ruleID,
		HostID:      hostID,
		MutedBy:     mutedBy,
		Reason:      reason,
		CreatedAt:   s.now().UTC(),
		ExpiresAt:   expiresAt,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create mute")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"mute_id":  m.ID,
		"rule_id":  ruleID,
		"host_id":  hostID,
		"muted_by": mutedBy,
	}).Info("Alert rule muted")

	return m, nil
}

// Unmute removes a mute
func (s *MuteService) Unmute(ctx context.Context, id string) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return apperrors.NotFound("mute")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.ErrorWithErr(err, "Failed to delete mute")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"mute_id": id,
		"rule_id": m.AlertRuleID,
	}).Info("Alert rule unmuted")

	return nil
}

// List retrieves all mutes
func (s *MuteService) List(ctx context.Context) ([]*mute.AlertMute, error) {
	return s.repo.List(ctx)
}

// ListForRule retrieves mutes for one rule
func (s *MuteService) ListForRule(ctx context.Context, ruleID int64) ([]*mute.AlertMute, error) {
	return s.repo.ListForRule(ctx, ruleID)
}
