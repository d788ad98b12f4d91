package forecast

import "fmt"

// CapacityHorizonDays is how far ahead capacity forecasts look
const CapacityHorizonDays = 90

// Capacity statuses
const (
	StatusCritical = "critical" // crossing within 7 days
	StatusWarning  = "warning"  // crossing within 30 days
	StatusInfo     = "info"     // crossing within the horizon
	StatusHealthy  = "healthy"  // no crossing within the horizon
)

// CapacityReport describes the projected capacity-threshold crossing
type CapacityReport struct {
	Capacity         float64 `json:"capacity"`
	ThresholdPercent float64 `json:"threshold_percent"`
	ThresholdValue   float64 `json:"threshold_value"`
	CurrentValue     float64 `json:"current_value"`
	DaysUntilCross   int     `json:"days_until_cross"` // -1 when never crossed
	PredictedValue   float64 `json:"predicted_value"`  // value at the crossing step
	Status           string  `json:"status"`
	Recommendation   string  `json:"recommendation"`
}

// ForecastCapacity walks a daily forecast of the series and reports the
// first step at which the predicted value reaches capacity×threshold%.
// It returns nil when the series is too short to fit a model.
func ForecastCapacity(values []float64, capacity, thresholdPercent float64) *CapacityReport {
	model := Fit(values, DefaultAlpha, DefaultBeta, true)
	if model == nil {
		return nil
	}

	thresholdValue := capacity * thresholdPercent / 100
	report := &CapacityReport{
		Capacity:         capacity,
		ThresholdPercent: thresholdPercent,
		ThresholdValue:   thresholdValue,
		CurrentValue:     values[len(values)-1],
		DaysUntilCross:   -1,
	}

	for _, p := range model.Forecast(CapacityHorizonDays) {
		if p.Value >= thresholdValue {
			report.DaysUntilCross = p.Step
			report.PredictedValue = p.Value
			break
		}
	}

	switch {
	case report.DaysUntilCross < 0:
		report.Status = StatusHealthy
		report.Recommendation = fmt.Sprintf(
			"Projected usage stays below %.1f%% of capacity for the next %d days.",
			thresholdPercent, CapacityHorizonDays)
	case report.DaysUntilCross < 7:
		report.Status = StatusCritical
		report.Recommendation = fmt.Sprintf(
			"Projected to reach %.1f%% of capacity in %d days. Immediate action required.",
			thresholdPercent, report.DaysUntilCross)
	case report.DaysUntilCross < 30:
		report.Status = StatusWarning
		report.Recommendation = fmt.Sprintf(
			"Projected to reach %.1f%% of capacity in %d days. Plan an upgrade soon.",
			thresholdPercent, report.DaysUntilCross)
	default:
		report.Status = StatusInfo
		report.Recommendation = fmt.Sprintf(
			"Projected to reach %.1f%% of capacity in %d days. Monitor the trend.",
			thresholdPercent, report.DaysUntilCross)
	}

	return report
}
