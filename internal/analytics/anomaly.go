package analytics

import (
	"math"
	"time"
)

// DefaultSigma is the default z-score threshold for anomaly flagging
const DefaultSigma = 2.0

// minAnomalyPoints is the minimum series length for anomaly detection
const minAnomalyPoints = 10

// Anomaly severities by z-score magnitude
const (
	AnomalySeverityHigh   = "high"   // |z| > 3.0
	AnomalySeverityMedium = "medium" // |z| > 2.5
	AnomalySeverityLow    = "low"
)

// Anomaly is one sample flagged as deviating from the window mean
type Anomaly struct {
	At       time.Time `json:"at"`
	Value    float64   `json:"value"`
	ZScore   float64   `json:"z_score"`
	Mean     float64   `json:"mean"`
	StdDev   float64   `json:"std_dev"`
	Severity string    `json:"severity"`
}

// DetectAnomalies flags points whose deviation from the window mean
// exceeds sigma standard deviations. It returns an empty slice for
// series shorter than 10 points and for constant series (stddev 0),
// never an error.
func DetectAnomalies(points []Point, sigma float64) []Anomaly {
	if sigma <= 0 {
		sigma = DefaultSigma
	}
	if len(points) < minAnomalyPoints {
		return []Anomaly{}
	}

	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}

	m := mean(values)
	sd := stdDev(values, m)
	if sd == 0 {
		return []Anomaly{}
	}

	anomalies := []Anomaly{}
	for _, p := range points {
		z := (p.Value - m) / sd
		if math.Abs(p.Value-m) <= sigma*sd {
			continue
		}
		anomalies = append(anomalies, Anomaly{
			At:       p.At,
			Value:    p.Value,
			ZScore:   z,
			Mean:     m,
			StdDev:   sd,
			Severity: anomalySeverity(math.Abs(z)),
		})
	}

	return anomalies
}

func anomalySeverity(absZ float64) string {
	switch {
	case absZ > 3.0:
		return AnomalySeverityHigh
	case absZ > 2.5:
		return AnomalySeverityMedium
	default:
		return AnomalySeverityLow
	}
}
