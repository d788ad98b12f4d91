package notifier

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/netpulse/netpulse/internal/config"
	"github.com/netpulse/netpulse/internal/domain/alert"
	"github.com/netpulse/netpulse/internal/domain/channel"
)

// EmailNotifier delivers alerts over SMTP
type EmailNotifier struct {
	cfg config.SMTPConfig
}

// NewEmailNotifier creates an email notifier using the shared SMTP
// transport configuration. Recipients come from each channel's config.
func NewEmailNotifier(cfg config.SMTPConfig) *EmailNotifier {
	return &EmailNotifier{cfg: cfg}
}

// Type returns the channel type served by this notifier
func (n *EmailNotifier) Type() string {
	return channel.TypeEmail
}

// ValidateConfig checks the channel carries at least one recipient
func (n *EmailNotifier) ValidateConfig(ch *channel.NotificationChannel) error {
	cfg, err := ch.EmailConfig()
	if err != nil {
		return err
	}
	if len(cfg.ToEmails) == 0 {
		return fmt.Errorf("email channel %s has no to_emails configured", ch.ID)
	}
	if n.cfg.Host == "" {
		return fmt.Errorf("SMTP host is not configured")
	}
	return nil
}

// FormatMessage renders a plaintext body
func (n *EmailNotifier) FormatMessage(a *alert.Alert) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Severity: %s\n", a.Severity)
	fmt.Fprintf(&b, "Host: %s (%s)\n", a.HostName, a.HostID)
	fmt.Fprintf(&b, "Metric: %s\n", a.MetricName)
	fmt.Fprintf(&b, "Triggered: %s\n\n", a.TriggeredAt.Format("2006-01-02 15:04:05 MST"))
	b.WriteString(a.Message)
	b.WriteString("\n")
	return b.String()
}

// Send delivers the alert to every configured recipient
func (n *EmailNotifier) Send(ctx context.Context, ch *channel.NotificationChannel, a *alert.Alert) error {
	if err := n.ValidateConfig(ch); err != nil {
		return err
	}
	cfg, err := ch.EmailConfig()
	if err != nil {
		return err
	}

	subject := formatSubject(a)
	if cfg.SubjectTag != "" {
		subject = cfg.SubjectTag + " " + subject
	}

	msg := strings.Join([]string{
		"From: " + n.cfg.From,
		"To: " + strings.Join(cfg.ToEmails, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		n.FormatMessage(a),
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	// smtp.SendMail negotiates STARTTLS when the server offers it
	if err := smtp.SendMail(addr, auth, n.cfg.From, cfg.ToEmails, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}
