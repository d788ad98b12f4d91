package channel

import (
	"encoding/json"
	"fmt"
	"time"
)

// NotificationChannel represents a named, configured alert destination
type NotificationChannel struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	ChannelType string          `json:"channel_type"`
	Config      json.RawMessage `json:"config"`
	Enabled     bool            `json:"enabled"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at,omitempty"`
}

// Channel types
const (
	TypeEmail   = "email"
	TypeWebhook = "webhook"
)

// Webhook payload platforms
const (
	PlatformSlack   = "slack"
	PlatformDiscord = "discord"
	PlatformGeneric = "generic"
)

// EmailConfig is the structured configuration for email channels
type EmailConfig struct {
	ToEmails    []string `json:"to_emails"`
	MinSeverity string   `json:"min_severity,omitempty"`
	SubjectTag  string   `json:"subject_tag,omitempty"`
}

// WebhookConfig is the structured configuration for webhook channels
type WebhookConfig struct {
	WebhookURL  string            `json:"webhook_url"`
	Platform    string            `json:"platform,omitempty"` // slack, discord or generic
	MinSeverity string            `json:"min_severity,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
}

// severityConfig extracts only the severity filter common to all
// channel types.
type severityConfig struct {
	MinSeverity string `json:"min_severity"`
}

// MinSeverity returns the channel's configured severity floor, or empty
// if the config carries none.
func (c *NotificationChannel) MinSeverity() string {
	if len(c.Config) == 0 {
		return ""
	}
	var sc severityConfig
	if err := json.Unmarshal(c.Config, &sc); err != nil {
		return ""
	}
	return sc.MinSeverity
}

// EmailConfig decodes the channel config as an email configuration
func (c *NotificationChannel) EmailConfig() (*EmailConfig, error) {
	if c.ChannelType != TypeEmail {
		return nil, fmt.Errorf("channel %s is not an email channel", c.ID)
	}
	var cfg EmailConfig
	if err := json.Unmarshal(c.Config, &cfg); err != nil {
		return nil, fmt.Errorf("invalid email config: %w", err)
	}
	return &cfg, nil
}

// WebhookConfig decodes the channel config as a webhook configuration
func (c *NotificationChannel) WebhookConfig() (*WebhookConfig, error) {
	if c.ChannelType != TypeWebhook {
		return nil, fmt.Errorf("channel %s is not a webhook channel", c.ID)
	}
	var cfg WebhookConfig
	if err := json.Unmarshal(c.Config, &cfg); err != nil {
		return nil, fmt.Errorf("invalid webhook config: %w", err)
	}
	return &cfg, nil
}
