// Package notifier contains the pluggable delivery backends used by the
// notification manager. New channel types register by name at startup.
package notifier

import (
	"context"
	"fmt"
	"sync"

	"github.com/netpulse/netpulse/internal/domain/alert"
	"github.com/netpulse/netpulse/internal/domain/channel"
)

// Notifier delivers alerts for one channel type
type Notifier interface {
	// Type returns the channel_type this notifier serves
	Type() string

	// ValidateConfig checks that a channel's config carries the fields
	// this notifier needs
	ValidateConfig(ch *channel.NotificationChannel) error

	// FormatMessage renders the alert body for this channel type
	FormatMessage(a *alert.Alert) string

	// Send delivers the alert through the channel
	Send(ctx context.Context, ch *channel.NotificationChannel, a *alert.Alert) error
}

// Registry maps channel types to notifier implementations
type Registry struct {
	mu        sync.RWMutex
	notifiers map[string]Notifier
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{notifiers: make(map[string]Notifier)}
}

// Register adds or replaces the notifier for its channel type
func (r *Registry) Register(n Notifier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifiers[n.Type()] = n
}

// Get returns the notifier for a channel type
func (r *Registry) Get(channelType string) (Notifier, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.notifiers[channelType]
	return n, ok
}

// Types returns the registered channel types
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.notifiers))
	for t := range r.notifiers {
		types = append(types, t)
	}
	return types
}

// formatSubject renders the common one-line alert summary
func formatSubject(a *alert.Alert) string {
	return fmt.Sprintf("[%s] %s on %s", a.Severity, a.MetricName, a.HostName)
}
