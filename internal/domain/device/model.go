package device

import "time"

// Device represents a UniFi device (gateway, switch, access point)
// known to the controller.
type Device struct {
	ID        string     `json:"id"` // controller device id (MAC-based)
	Name      string     `json:"name"`
	Model     string     `json:"model,omitempty"`
	Type      string     `json:"type,omitempty"` // ugw, usw, uap
	IP        string     `json:"ip,omitempty"`
	Site      string     `json:"site"`
	State     string     `json:"state"` // connected, disconnected, upgrading
	Version   string     `json:"version,omitempty"`
	UptimeS   int64      `json:"uptime_s"`
	LastSeen  *time.Time `json:"last_seen"`
	UpdatedAt time.Time  `json:"updated_at,omitempty"`
}

// Device states reported by the controller
const (
	StateConnected       = "connected"
	StateDisconnected    = "disconnected"
	StateUpgrading       = "upgrading"
	StateProvisioning    = "provisioning"
	StateHeartbeatMissed = "heartbeat_missed"
)
