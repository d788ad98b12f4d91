package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/netpulse/netpulse/internal/domain/alert"
	"github.com/netpulse/netpulse/internal/domain/channel"
	"github.com/netpulse/netpulse/internal/domain/rule"
)

// WebhookNotifier delivers alerts via HTTP POST. The payload shape
// branches on the channel's platform: Slack uses an attachments array,
// Discord an embeds array and generic a flat object.
type WebhookNotifier struct {
	client *http.Client
}

// NewWebhookNotifier creates a webhook notifier
func NewWebhookNotifier() *WebhookNotifier {
	return &WebhookNotifier{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Type returns the channel type served by this notifier
func (n *WebhookNotifier) Type() string {
	return channel.TypeWebhook
}

// ValidateConfig checks the channel carries a webhook URL
func (n *WebhookNotifier) ValidateConfig(ch *channel.NotificationChannel) error {
	cfg, err := ch.WebhookConfig()
	if err != nil {
		return err
	}
	if cfg.WebhookURL == "" {
		return fmt.Errorf("webhook channel %s has no webhook_url configured", ch.ID)
	}
	return nil
}

// FormatMessage renders the alert body
func (n *WebhookNotifier) FormatMessage(a *alert.Alert) string {
	return fmt.Sprintf("%s: %s", formatSubject(a), a.Message)
}

// Send posts the alert payload to the configured URL
func (n *WebhookNotifier) Send(ctx context.Context, ch *channel.NotificationChannel, a *alert.Alert) error {
	if err := n.ValidateConfig(ch); err != nil {
		return err
	}
	cfg, err := ch.WebhookConfig()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(n.buildPayload(cfg.Platform, a))
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range cfg.Headers {
		req.Header.Set(key, value)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

func (n *WebhookNotifier) buildPayload(platform string, a *alert.Alert) map[string]interface{} {
	switch platform {
	case channel.PlatformSlack:
		return map[string]interface{}{
			"attachments": []map[string]interface{}{
				{
					"color": slackColor(a.Severity),
					"title": formatSubject(a),
					"text":  a.Message,
					"fields": []map[string]interface{}{
						{"title": "Host", "value": a.HostName, "short": true},
						{"title": "Metric", "value": a.MetricName, "short": true},
						{"title": "Value", "value": fmt.Sprintf("%g", a.Value), "short": true},
						{"title": "Threshold", "value": fmt.Sprintf("%g", a.Threshold), "short": true},
					},
					"footer": "netpulse",
					"ts":     a.TriggeredAt.Unix(),
				},
			},
		}
	case channel.PlatformDiscord:
		return map[string]interface{}{
			"embeds": []map[string]interface{}{
				{
					"title":       formatSubject(a),
					"description": a.Message,
					"color":       discordColor(a.Severity),
					"timestamp":   a.TriggeredAt.UTC().Format(time.RFC3339),
					"fields": []map[string]interface{}{
						{"name": "Host", "value": a.HostName, "inline": true},
						{"name": "Metric", "value": a.MetricName, "inline": true},
						{"name": "Value", "value": fmt.Sprintf("%g", a.Value), "inline": true},
					},
				},
			},
		}
	default:
		return map[string]interface{}{
			"severity":     a.Severity,
			"message":      a.Message,
			"host_id":      a.HostID,
			"host_name":    a.HostName,
			"metric_name":  a.MetricName,
			"value":        a.Value,
			"threshold":    a.Threshold,
			"triggered_at": a.TriggeredAt.UTC().Format(time.RFC3339),
		}
	}
}

func slackColor(severity string) string {
	switch severity {
	case rule.SeverityCritical:
		return "#ff0000"
	case rule.SeverityWarning:
		return "#ffcc00"
	default:
		return "#36a64f"
	}
}

func discordColor(severity string) int {
	switch severity {
	case rule.SeverityCritical:
		return 0xff0000
	case rule.SeverityWarning:
		return 0xffcc00
	default:
		return 0x36a64f
	}
}
