package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/netpulse/netpulse/internal/domain/alert"
	"github.com/netpulse/netpulse/internal/domain/channel"
	"github.com/netpulse/netpulse/internal/domain/rule"
	"github.com/netpulse/netpulse/internal/notifier"
	"github.com/netpulse/netpulse/internal/pkg/logger"
	"github.com/netpulse/netpulse/internal/testutil"
)

// fakeNotifier records delivery attempts and can be told to fail.
type fakeNotifier struct {
	channelType string
	sendErr     error
	sent        []string // channel IDs in delivery order
}

func (f *fakeNotifier) Type() string { return f.channelType }

func (f *fakeNotifier) ValidateConfig(ch *channel.NotificationChannel) error { return nil }

func (f *fakeNotifier) FormatMessage(a *alert.Alert) string { return a.Message }

func (f *fakeNotifier) Send(ctx context.Context, ch *channel.NotificationChannel, a *alert.Alert) error {
	f.sent = append(f.sent, ch.ID)
	return f.sendErr
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

func testChannel(id, channelType string, enabled bool, config string) *channel.NotificationChannel {
	return &channel.NotificationChannel{
		ID:          id,
		Name:        id,
		ChannelType: channelType,
		Config:      json.RawMessage(config),
		Enabled:     enabled,
		CreatedAt:   time.Now(),
	}
}

func testAlert(severity string) *alert.Alert {
	return &alert.Alert{
		ID:          1,
		AlertRuleID: 1,
		HostID:      "host-1",
		HostName:    "Office Gateway",
		MetricName:  "cpu_percent",
		Value:       95.5,
		Threshold:   90,
		Severity:    severity,
		Message:     "cpu_percent is 95.5 (gte 90.0)",
		TriggeredAt: time.Now(),
	}
}

func TestSendAlert_DeliversToSubscribedChannels(t *testing.T) {
	channels := testutil.NewMockChannelRepository()
	channels.Channels["ch-email"] = testChannel("ch-email", channel.TypeEmail, true, `{"to_emails":["ops@example.com"]}`)
	channels.Channels["ch-hook"] = testChannel("ch-hook", channel.TypeWebhook, true, `{"webhook_url":"https://hooks.example.com/x"}`)

	email := &fakeNotifier{channelType: channel.TypeEmail}
	hook := &fakeNotifier{channelType: channel.TypeWebhook}
	registry := notifier.NewRegistry()
	registry.Register(email)
	registry.Register(hook)

	svc := NewNotificationService(channels, registry, testLogger())

	r := &rule.AlertRule{ID: 1, NotificationChannels: []string{"ch-email", "ch-hook"}}
	results := svc.SendAlert(context.Background(), r, testAlert(rule.SeverityCritical))

	if len(results) != 2 {
		t.Fatalf("results = %v, want 2 entries", results)
	}
	if !results["ch-email"] || !results["ch-hook"] {
		t.Errorf("results = %v, want both channels true", results)
	}
	if len(email.sent) != 1 || len(hook.sent) != 1 {
		t.Errorf("delivery counts email=%d hook=%d, want 1 each", len(email.sent), len(hook.sent))
	}
}

func TestSendAlert_MinSeverityFiltersChannel(t *testing.T) {
	channels := testutil.NewMockChannelRepository()
	channels.Channels["ch-warning"] = testChannel("ch-warning", channel.TypeWebhook, true,
		`{"webhook_url":"https://hooks.example.com/x","min_severity":"warning"}`)

	hook := &fakeNotifier{channelType: channel.TypeWebhook}
	registry := notifier.NewRegistry()
	registry.Register(hook)

	svc := NewNotificationService(channels, registry, testLogger())
	r := &rule.AlertRule{ID: 1, NotificationChannels: []string{"ch-warning"}}

	// An info alert is below the channel's floor and must be skipped
	// entirely, not recorded as a failure.
	results := svc.SendAlert(context.Background(), r, testAlert(rule.SeverityInfo))
	if len(results) != 0 {
		t.Fatalf("info alert results = %v, want empty", results)
	}
	if len(hook.sent) != 0 {
		t.Errorf("notifier was invoked %d times for a filtered alert", len(hook.sent))
	}

	// A warning alert meets the floor.
	results = svc.SendAlert(context.Background(), r, testAlert(rule.SeverityWarning))
	if !results["ch-warning"] {
		t.Errorf("warning alert results = %v, want ch-warning true", results)
	}

	// So does anything above it.
	results = svc.SendAlert(context.Background(), r, testAlert(rule.SeverityCritical))
	if !results["ch-warning"] {
		t.Errorf("critical alert results = %v, want ch-warning true", results)
	}
}

func TestSendAlert_SkipsDisabledAndUnknownChannels(t *testing.T) {
	channels := testutil.NewMockChannelRepository()
	channels.Channels["ch-off"] = testChannel("ch-off", channel.TypeWebhook, false, `{"webhook_url":"https://hooks.example.com/x"}`)

	hook := &fakeNotifier{channelType: channel.TypeWebhook}
	registry := notifier.NewRegistry()
	registry.Register(hook)

	svc := NewNotificationService(channels, registry, testLogger())
	r := &rule.AlertRule{ID: 1, NotificationChannels: []string{"ch-off", "ch-missing"}}

	results := svc.SendAlert(context.Background(), r, testAlert(rule.SeverityCritical))
	if len(results) != 0 {
		t.Errorf("results = %v, want empty for disabled and unknown channels", results)
	}
	if len(hook.sent) != 0 {
		t.Errorf("notifier was invoked for a disabled channel")
	}
}

func TestSendAlert_FailedDeliveryReportedFalse(t *testing.T) {
	channels := testutil.NewMockChannelRepository()
	channels.Channels["ch-good"] = testChannel("ch-good", channel.TypeEmail, true, `{"to_emails":["ops@example.com"]}`)
	channels.Channels["ch-bad"] = testChannel("ch-bad", channel.TypeWebhook, true, `{"webhook_url":"https://hooks.example.com/x"}`)

	email := &fakeNotifier{channelType: channel.TypeEmail}
	hook := &fakeNotifier{channelType: channel.TypeWebhook, sendErr: errors.New("connection refused")}
	registry := notifier.NewRegistry()
	registry.Register(email)
	registry.Register(hook)

	svc := NewNotificationService(channels, registry, testLogger())
	r := &rule.AlertRule{ID: 1, NotificationChannels: []string{"ch-good", "ch-bad"}}

	results := svc.SendAlert(context.Background(), r, testAlert(rule.SeverityWarning))
	if !results["ch-good"] {
		t.Errorf("ch-good = %v, want true", results["ch-good"])
	}
	if v, ok := results["ch-bad"]; !ok || v {
		t.Errorf("ch-bad = %v (present=%v), want false", v, ok)
	}
}

func TestSendAlert_NoNotifierForType(t *testing.T) {
	channels := testutil.NewMockChannelRepository()
	channels.Channels["ch-sms"] = testChannel("ch-sms", "sms", true, `{}`)

	svc := NewNotificationService(channels, notifier.NewRegistry(), testLogger())
	r := &rule.AlertRule{ID: 1, NotificationChannels: []string{"ch-sms"}}

	results := svc.SendAlert(context.Background(), r, testAlert(rule.SeverityCritical))
	if v, ok := results["ch-sms"]; !ok || v {
		t.Errorf("ch-sms = %v (present=%v), want false for unregistered type", v, ok)
	}
}

func TestSendAlert_RepositoryErrorSkipsChannel(t *testing.T) {
	channels := testutil.NewMockChannelRepository()
	channels.GetError = errors.New("database unavailable")

	svc := NewNotificationService(channels, notifier.NewRegistry(), testLogger())
	r := &rule.AlertRule{ID: 1, NotificationChannels: []string{"ch-1"}}

	results := svc.SendAlert(context.Background(), r, testAlert(rule.SeverityCritical))
	if len(results) != 0 {
		t.Errorf("results = %v, want empty when the channel lookup fails", results)
	}
}
