package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/netpulse/netpulse/internal/domain/channel"
	"github.com/netpulse/netpulse/internal/notifier"
	apperrors "github.com/netpulse/netpulse/internal/pkg/errors"
	"github.com/netpulse/netpulse/internal/testutil"
)

func channelFixture() (channel.Service, *testutil.MockChannelRepository) {
	repo := testutil.NewMockChannelRepository()
	registry := notifier.NewRegistry()
	registry.Register(notifier.NewWebhookNotifier())
	return NewChannelService(repo, registry, testLogger()), repo
}

func TestChannelService_Create(t *testing.T) {
	svc, repo := channelFixture()

	c, err := svc.Create(context.Background(), "ops-slack", channel.TypeWebhook,
		json.RawMessage(`{"webhook_url":"https://hooks.slack.com/services/T/B/x","platform":"slack"}`))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if c.ID == "" {
		t.Error("channel id not assigned")
	}
	if !c.Enabled {
		t.Error("new channel should start enabled")
	}
	if repo.Channels[c.ID] == nil {
		t.Error("channel was not persisted")
	}
}

func TestChannelService_CreateRejectsInvalid(t *testing.T) {
	tests := []struct {
		name        string
		channelName string
		channelType string
		config      string
	}{
		{"missing name", "", channel.TypeWebhook, `{"webhook_url":"https://x"}`},
		{"unsupported type", "pager", "pagerduty", `{}`},
		{"missing webhook url", "hook", channel.TypeWebhook, `{}`},
		{"malformed config", "hook", channel.TypeWebhook, `{not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := channelFixture()

			_, err := svc.Create(context.Background(), tt.channelName, tt.channelType, json.RawMessage(tt.config))
			var appErr *apperrors.AppError
			if !errors.As(err, &appErr) || appErr.StatusCode != 400 {
				t.Errorf("Create() error = %v, want a 400 AppError", err)
			}
			if len(repo.Channels) != 0 {
				t.Error("invalid channel was persisted")
			}
		})
	}
}

func TestChannelService_SetEnabled(t *testing.T) {
	svc, repo := channelFixture()

	c, err := svc.Create(context.Background(), "ops-slack", channel.TypeWebhook,
		json.RawMessage(`{"webhook_url":"https://hooks.slack.com/services/T/B/x"}`))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.SetEnabled(context.Background(), c.ID, false); err != nil {
		t.Fatalf("SetEnabled() error = %v", err)
	}
	if repo.Channels[c.ID].Enabled {
		t.Error("channel still enabled after disable")
	}

	if err := svc.SetEnabled(context.Background(), c.ID, true); err != nil {
		t.Fatalf("SetEnabled() error = %v", err)
	}
	if !repo.Channels[c.ID].Enabled {
		t.Error("channel still disabled after enable")
	}
}

func TestChannelService_UpdateValidatesNewConfig(t *testing.T) {
	svc, _ := channelFixture()

	c, err := svc.Create(context.Background(), "ops-slack", channel.TypeWebhook,
		json.RawMessage(`{"webhook_url":"https://hooks.slack.com/services/T/B/x"}`))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err = svc.Update(context.Background(), c.ID, map[string]interface{}{
		"config": json.RawMessage(`{}`),
	})
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.StatusCode != 400 {
		t.Errorf("Update() error = %v, want a 400 AppError", err)
	}
}

func TestChannelService_Test(t *testing.T) {
	repo := testutil.NewMockChannelRepository()
	repo.Channels["ch-1"] = testChannel("ch-1", channel.TypeWebhook, true, `{"webhook_url":"https://hooks.example.com/x"}`)

	hook := &fakeNotifier{channelType: channel.TypeWebhook}
	registry := notifier.NewRegistry()
	registry.Register(hook)
	svc := NewChannelService(repo, registry, testLogger())

	if err := svc.Test(context.Background(), "ch-1"); err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if len(hook.sent) != 1 {
		t.Errorf("notifier invoked %d times, want 1", len(hook.sent))
	}

	hook.sendErr = errors.New("connection refused")
	err := svc.Test(context.Background(), "ch-1")
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.StatusCode != 400 {
		t.Errorf("Test() error = %v, want a 400 AppError on delivery failure", err)
	}

	err = svc.Test(context.Background(), "missing")
	if !errors.As(err, &appErr) || appErr.StatusCode != 404 {
		t.Errorf("Test(missing) error = %v, want a 404 AppError", err)
	}
}

func TestChannelService_DeleteNotFound(t *testing.T) {
	svc, _ := channelFixture()

	err := svc.Delete(context.Background(), "missing")
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.StatusCode != 404 {
		t.Errorf("Delete() error = %v, want a 404 AppError", err)
	}
}
