package analytics

// Sub-score helpers for the composite host health score. Every score is
// on a 0-100 scale; categories with no data are omitted from the
// composite rather than penalized.

// CPUScore scores average CPU utilization: an idle host scores 100.
func CPUScore(avgCPUPercent float64) float64 {
	return clampScore(100 - avgCPUPercent)
}

// MemoryScore scores average memory utilization
func MemoryScore(avgMemPercent float64) float64 {
	return clampScore(100 - avgMemPercent)
}

// TemperatureScore scores average temperature: full marks below 50°C,
// decaying linearly to 0 at 90°C.
func TemperatureScore(avgTempC float64) float64 {
	switch {
	case avgTempC < 50:
		return 100
	case avgTempC >= 90:
		return 0
	default:
		return clampScore(100 - (avgTempC-50)*2.5)
	}
}

// AnomalyScore deducts 5 points per anomaly, capped at a 50 point
// deduction.
func AnomalyScore(anomalyCount int) float64 {
	deduction := float64(anomalyCount) * 5
	if deduction > 50 {
		deduction = 50
	}
	return 100 - deduction
}

// ComposeHealthScore averages the present sub-scores
func ComposeHealthScore(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	return clampScore(mean(scores))
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
