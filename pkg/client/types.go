package client

import (
	"encoding/json"
	"time"
)

// User is a user account
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse carries a token and the logged-in user
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	User        *User  `json:"user"`
}

// Rule is an alert rule
type Rule struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	Description          string    `json:"description,omitempty"`
	RuleType             string    `json:"ruleType"`
	MetricName           string    `json:"metricName"`
	Condition            string    `json:"condition"`
	Threshold            float64   `json:"threshold"`
	Severity             string    `json:"severity"`
	HostID               string    `json:"hostId,omitempty"`
	NotificationChannels []string  `json:"notificationChannels"`
	CooldownMinutes      int       `json:"cooldownMinutes"`
	Enabled              bool      `json:"enabled"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// Alert is a fired alert
type Alert struct {
	ID             int64      `json:"id"`
	AlertRuleID    int64      `json:"alertRuleId"`
	HostID         string     `json:"hostId"`
	HostName       string     `json:"hostName,omitempty"`
	MetricName     string     `json:"metricName"`
	Value          float64    `json:"value"`
	Threshold      float64    `json:"threshold"`
	Severity       string     `json:"severity"`
	Message        string     `json:"message"`
	TriggeredAt    time.Time  `json:"triggeredAt"`
	AcknowledgedAt *time.Time `json:"acknowledgedAt,omitempty"`
	AcknowledgedBy string     `json:"acknowledgedBy,omitempty"`
	ResolvedAt     *time.Time `json:"resolvedAt,omitempty"`
}

// AlertSummary counts active alerts per severity
type AlertSummary struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Info     int `json:"info"`
}

// Mute is a mute window
type Mute struct {
	ID          string     `json:"id"`
	AlertRuleID int64      `json:"alertRuleId"`
	HostID      string     `json:"hostId,omitempty"`
	MutedBy     string     `json:"mutedBy,omitempty"`
	Reason      string     `json:"reason,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// Channel is a notification channel
type Channel struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	ChannelType string          `json:"channelType"`
	Config      json.RawMessage `json:"config"`
	Enabled     bool            `json:"enabled"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Device is a monitored device
type Device struct {
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

// Metric is one telemetry sample
type Metric struct {
	HostID     string    `json:"hostId"`
	MetricName string    `json:"metricName"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
}

// Statistics are descriptive statistics over a series
type Statistics struct {
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	StdDev       float64 `json:"std_dev"`
	SampleStdDev float64 `json:"sample_std_dev"`
	Count        int     `json:"count"`
}

// Trend is a fitted linear trend
type Trend struct {
	Direction   string  `json:"direction"`
	SlopePerDay float64 `json:"slope_per_day"`
	Confidence  float64 `json:"confidence"`
}

// Anomaly is one flagged sample
type Anomaly struct {
	At       time.Time `json:"at"`
	Value    float64   `json:"value"`
	ZScore   float64   `json:"z_score"`
	Mean     float64   `json:"mean"`
	StdDev   float64   `json:"std_dev"`
	Severity string    `json:"severity"`
}

// MetricReport bundles the analytics for one series
type MetricReport struct {
	HostID     string      `json:"host_id"`
	MetricName string      `json:"metric_name"`
	Statistics *Statistics `json:"statistics,omitempty"`
	Trend      *Trend      `json:"trend,omitempty"`
	Anomalies  []Anomaly   `json:"anomalies"`
}

// HostHealth is the composite host health score
type HostHealth struct {
	HostID       string             `json:"host_id"`
	Score        float64            `json:"score"`
	Status       string             `json:"status"`
	SubScores    map[string]float64 `json:"sub_scores"`
	AnomalyCount int                `json:"anomaly_count"`
	WindowHours  int                `json:"window_hours"`
}

// ForecastPoint is one projected step with its confidence band
type ForecastPoint struct {
	Step  int     `json:"step"`
	Value float64 `json:"value"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// MetricForecast is a fitted forecast
type MetricForecast struct {
	HostID     string          `json:"host_id"`
	MetricName string          `json:"metric_name"`
	Alpha      float64         `json:"alpha"`
	Beta       float64         `json:"beta"`
	Level      float64         `json:"level"`
	TrendSlope float64         `json:"trend_slope"`
	Points     []ForecastPoint `json:"points"`
}

// CapacityReport is a projected capacity-threshold crossing
type CapacityReport struct {
	Capacity         float64 `json:"capacity"`
	ThresholdPercent float64 `json:"threshold_percent"`
	ThresholdValue   float64 `json:"threshold_value"`
	CurrentValue     float64 `json:"current_value"`
	DaysUntilCross   int     `json:"days_until_cross"`
	PredictedValue   float64 `json:"predicted_value"`
	Status           string  `json:"status"`
	Recommendation   string  `json:"recommendation"`
}

// ListOptions contains common pagination options
type ListOptions struct {
	Page     int `json:"page,omitempty"`
	PageSize int `json:"page_size,omitempty"`
}

// AlertPage is one page of alerts
type AlertPage struct {
	Data       []Alert `json:"data"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
	TotalItems int64   `json:"total_items"`
	TotalPages int     `json:"total_pages"`
}
