package metric

import "time"

// Metric is a single telemetry sample. The alerting and analytics core
// only ever reads metrics; the collector is the sole writer.
type Metric struct {
	ID         int64     `json:"id"`
	HostID     string    `json:"host_id"`
	MetricName string    `json:"metric_name"`
	Value      float64   `json:"metric_value"`
	Unit       string    `json:"unit,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Well-known metric names written by the collector
const (
	NameCPUPercent   = "cpu_percent"
	NameMemPercent   = "mem_percent"
	NameTemperatureC = "temperature_c"
	NameUptimeS      = "uptime_s"
	NameClientCount  = "client_count"
	NameTxRateBps    = "tx_rate_bps"
	NameRxRateBps    = "rx_rate_bps"
)
