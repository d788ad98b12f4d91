package services

import (
	"context"

	"github.com/netpulse/netpulse/internal/domain/alert"
	"github.com/netpulse/netpulse/internal/domain/channel"
	"github.com/netpulse/netpulse/internal/domain/rule"
	"github.com/netpulse/netpulse/internal/notifier"
	"github.com/netpulse/netpulse/internal/pkg/logger"
	"github.com/netpulse/netpulse/internal/pkg/metrics"
)

// NotificationService fans a fired alert out to the channels its rule
// subscribes to. A failing channel never blocks delivery to the others.
type NotificationService struct {
	channels  channel.Repository
	notifiers *notifier.Registry
	logger    *logger.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(channels channel.Repository, notifiers *notifier.Registry, log *logger.Logger) *NotificationService {
	return &NotificationService{
		channels:  channels,
		notifiers: notifiers,
		logger:    log,
	}
}

// SendAlert delivers the alert to every channel listed on the rule and
// returns a per-channel success map. Disabled channels, unknown channel
// ids and channels whose minimum severity outranks the alert are skipped
// and do not appear in the result.
func (s *NotificationService) SendAlert(ctx context.Context, r *rule.AlertRule, a *alert.Alert) map[string]bool {
	results := make(map[string]bool)

	for _, channelID := range r.NotificationChannels {
		ch, err := s.channels.GetByID(ctx, channelID)
		if err != nil {
			s.logger.WithError(err).WithFields(map[string]interface{}{
				"channel_id": channelID,
			}).Error("Failed to load notification channel")
			continue
		}
		if ch == nil || !ch.Enabled {
			continue
		}
		if rule.SeverityRank(a.Severity) < rule.SeverityRank(ch.MinSeverity()) {
			continue
		}

		results[channelID] = s.deliver(ctx, ch, a)
	}

	return results
}

func (s *NotificationService) deliver(ctx context.Context, ch *channel.NotificationChannel, a *alert.Alert) bool {
	n, ok := s.notifiers.Get(ch.ChannelType)
	if !ok {
		s.logger.WithFields(map[string]interface{}{
			"channel_id":   ch.ID,
			"channel_type": ch.ChannelType,
		}).Error("No notifier registered for channel type")
		metrics.RecordNotification(ch.ChannelType, "failure")
		return false
	}

	if err := n.Send(ctx, ch, a); err != nil {
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"channel_id":   ch.ID,
			"channel_type": ch.ChannelType,
			"alert_id":     a.ID,
		}).Error("Notification delivery failed")
		metrics.RecordNotification(ch.ChannelType, "failure")
		return false
	}

	s.logger.WithFields(map[string]interface{}{
		"channel_id":   ch.ID,
		"channel_type": ch.ChannelType,
		"alert_id":     a.ID,
		"severity":     a.Severity,
	}).Info("Notification delivered")
	metrics.RecordNotification(ch.ChannelType, "success")
	return true
}
