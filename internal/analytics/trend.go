package analytics

import "math"

// Trend directions
const (
	DirectionUp     = "up"
	DirectionDown   = "down"
	DirectionStable = "stable"
)

// stableSlopeLimit is the per-day slope magnitude below which a series
// counts as stable.
const stableSlopeLimit = 0.1

// Trend describes the linear tendency of a series
type Trend struct {
	Direction   string  `json:"direction"`
	SlopePerDay float64 `json:"slope_per_day"`
	Confidence  float64 `json:"confidence"` // R², clamped to [0,1]
}

// DetectTrend fits an ordinary least-squares line of value against
// elapsed hours since the window start and classifies the direction.
// It returns nil when fewer than 3 points are available.
func DetectTrend(points []Point) *Trend {
	n := len(points)
	if n < 3 {
		return nil
	}

	start := points[0].At
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range points {
		xs[i] = p.At.Sub(start).Hours()
		ys[i] = p.Value
	}

	xMean := mean(xs)
	yMean := mean(ys)

	var sxy, sxx, syy float64
	for i := 0; i < n; i++ {
		dx := xs[i] - xMean
		dy := ys[i] - yMean
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}

	if sxx == 0 {
		// All samples share one timestamp, no slope to fit
		return nil
	}

	slopePerHour := sxy / sxx
	slopePerDay := slopePerHour * 24

	// R² = explained variance; for a constant series every point sits on
	// the fitted horizontal line
	confidence := 1.0
	if syy != 0 {
		confidence = (sxy * sxy) / (sxx * syy)
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	direction := DirectionStable
	if math.Abs(slopePerDay) >= stableSlopeLimit {
		if slopePerDay > 0 {
			direction = DirectionUp
		} else {
			direction = DirectionDown
		}
	}

	return &Trend{
		Direction:   direction,
		SlopePerDay: slopePerDay,
		Confidence:  confidence,
	}
}

// CapacityEstimate projects when a rising series crosses a threshold
type CapacityEstimate struct {
	CurrentValue       float64 `json:"current_value"`
	Threshold          float64 `json:"threshold"`
	SlopePerDay        float64 `json:"slope_per_day"`
	DaysUntilThreshold float64 `json:"days_until_threshold"`
}

// EstimateCapacity extrapolates the fitted trend to the threshold. It
// returns nil when the trend is not increasing or the series is already
// at or past the threshold. Percentage metrics are capped at 100.
func EstimateCapacity(points []Point, threshold float64, percentage bool) *CapacityEstimate {
	t := DetectTrend(points)
	if t == nil || t.Direction != DirectionUp {
		return nil
	}

	current := points[len(points)-1].Value
	if percentage && current > 100 {
		current = 100
	}
	if current >= threshold {
		return nil
	}

	return &CapacityEstimate{
		CurrentValue:       current,
		Threshold:          threshold,
		SlopePerDay:        t.SlopePerDay,
		DaysUntilThreshold: (threshold - current) / t.SlopePerDay,
	}
}
