package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/netpulse/netpulse/internal/domain/alert"
	"github.com/netpulse/netpulse/internal/domain/channel"
	"github.com/netpulse/netpulse/internal/domain/rule"
	"github.com/netpulse/netpulse/internal/notifier"
	apperrors "github.com/netpulse/netpulse/internal/pkg/errors"
	"github.com/netpulse/netpulse/internal/pkg/logger"
)

// ChannelService implements channel.Service
type ChannelService struct {
	repo      channel.Repository
	notifiers *notifier.Registry
	logger    *logger.Logger
}

// NewChannelService creates a new channel service
func NewChannelService(repo channel.Repository, notifiers *notifier.Registry, log *logger.Logger) channel.Service {
	return &ChannelService{
		repo:      repo,
		notifiers: notifiers,
		logger:    log,
	}
}

// Create validates and creates a channel
func (s *ChannelService) Create(ctx context.Context, name, channelType string, config json.RawMessage) (*channel.NotificationChannel, error) {
	if name == "" {
		return nil, apperrors.BadRequest("channel name is required")
	}

	c := &channel.NotificationChannel{
		ID:          uuid.New().String(),
		Name:        name,
		ChannelType: channelType,
		Config:      config,
		Enabled:     true,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := s.validate(c); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create notification channel")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"channel_id":   c.ID,
		"channel_type": channelType,
	}).Info("Notification channel created")

	return c, nil
}

// GetByID retrieves a channel by ID
func (s *ChannelService) GetByID(ctx context.Context, id string) (*channel.NotificationChannel, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperrors.NotFound("notification channel")
	}
	return c, nil
}

// Update applies updates to a channel
func (s *ChannelService) Update(ctx context.Context, id string, updates map[string]interface{}) (*channel.NotificationChannel, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name, ok := updates["name"].(string); ok {
		c.Name = name
	}
	if config, ok := updates["config"].(json.RawMessage); ok {
		c.Config = config
	}
	if enabled, ok := updates["enabled"].(bool); ok {
		c.Enabled = enabled
	}
	c.UpdatedAt = time.Now().UTC()

	if err := s.validate(c); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, c); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update notification channel")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"channel_id": id,
	}).Info("Notification channel updated")

	return c, nil
}

// Delete removes a channel
func (s *ChannelService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.ErrorWithErr(err, "Failed to delete notification channel")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"channel_id": id,
	}).Info("Notification channel deleted")

	return nil
}

// List retrieves all channels
func (s *ChannelService) List(ctx context.Context) ([]*channel.NotificationChannel, error) {
	return s.repo.List(ctx)
}

// SetEnabled flips the enabled flag
func (s *ChannelService) SetEnabled(ctx context.Context, id string, enabled bool) error {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	c.Enabled = enabled
	c.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		s.logger.ErrorWithErr(err, "Failed to toggle notification channel")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"channel_id": id,
		"enabled":    enabled,
	}).Info("Notification channel toggled")

	return nil
}

// Test delivers a synthetic info alert through the channel so operators
// can verify the configuration before wiring it to a rule.
func (s *ChannelService) Test(ctx context.Context, id string) error {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	n, ok := s.notifiers.Get(c.ChannelType)
	if !ok {
		return apperrors.BadRequest("unsupported channel type: " + c.ChannelType)
	}

	now := time.Now().UTC()
	probe := &alert.Alert{
		HostID:      "test",
		HostName:    "netpulse",
		MetricName:  "test",
		Severity:    rule.SeverityInfo,
		Message:     "This is a test notification from netpulse",
		TriggeredAt: now,
	}

	if err := n.Send(ctx, c, probe); err != nil {
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"channel_id": id,
		}).Error("Test notification failed")
		return apperrors.BadRequest("test delivery failed: " + err.Error())
	}

	s.logger.WithFields(map[string]interface{}{
		"channel_id": id,
	}).Info("Test notification delivered")
	return nil
}

func (s *ChannelService) validate(c *channel.NotificationChannel) error {
	n, ok := s.notifiers.Get(c.ChannelType)
	if !ok {
		return apperrors.BadRequest("unsupported channel type: " + c.ChannelType)
	}
	if err := n.ValidateConfig(c); err != nil {
		return apperrors.BadRequest(err.Error())
	}
	return nil
}
