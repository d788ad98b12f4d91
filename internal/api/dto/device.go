package dto

import "time"

// DeviceDTO represents a monitored device in API responses
type DeviceDTO struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Model    string     `json:"model,omitempty"`
	Type     string     `json:"type,omitempty"`
	IP       string     `json:"ip,omitempty"`
	Site     string     `json:"site,omitempty"`
	State    string     `json:"state"`
	Version  string     `json:"version,omitempty"`
	UptimeS  int64      `json:"uptimeS"`
	LastSeen *time.Time `json:"lastSeen,omitempty"`
}

// MetricDTO represents a metric sample in API responses
type MetricDTO struct {
	HostID     string    `json:"hostId"`
	MetricName string    `json:"metricName"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
}
