package mute

import "time"

// AlertMute represents a suppression window for a rule, optionally
// scoped to one host. An empty HostID mutes the rule network-wide; a
// nil ExpiresAt mutes indefinitely.
type AlertMute struct {
	ID          string     `json:"id"`
	AlertRuleID int64      `json:"alert_rule_id"`
	HostID      string     `json:"host_id,omitempty"`
	MutedBy     string     `json:"muted_by"`
	Reason      string     `json:"reason,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// ActiveAt reports whether the mute is in effect at the given time.
// Expiry is evaluated at query time; expired mutes are never swept.
func (m *AlertMute) ActiveAt(t time.Time) bool {
	return m.ExpiresAt == nil || m.ExpiresAt.After(t)
}

// Covers reports whether the mute applies to the given host scope.
func (m *AlertMute) Covers(hostID string) bool {
	return m.HostID == "" || m.HostID == hostID
}
