// Package forecast projects future metric values using double
// (level+trend) exponential smoothing.
package forecast

import "math"

// Default smoothing weights
const (
	DefaultAlpha = 0.3 // level weight
	DefaultBeta  = 0.1 // trend weight
)

// Point is one projected value with its 95% confidence band
type Point struct {
	Step  int     `json:"step"` // 1-based forecast distance
	Value float64 `json:"value"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Model holds the fitted smoothing state
type Model struct {
	Alpha    float64
	Beta     float64
	Level    float64
	Trend    float64
	StdError float64
}

// Fit runs double exponential smoothing over the series and returns the
// fitted model. It returns nil when fewer than 2 points are available.
// avgSlopeSeed selects the average-slope trend seed used for
// longer-horizon forecasts; otherwise the first difference seeds the
// trend.
func Fit(values []float64, alpha, beta float64, avgSlopeSeed bool) *Model {
	n := len(values)
	if n < 2 {
		return nil
	}
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultAlpha
	}
	if beta <= 0 || beta > 1 {
		beta = DefaultBeta
	}

	level := values[0]
	trend := values[1] - values[0]
	if avgSlopeSeed {
		trend = (values[n-1] - values[0]) / float64(n-1)
	}

	var residuals []float64
	for i := 1; i < n; i++ {
		predicted := level + trend
		residuals = append(residuals, values[i]-predicted)

		prevLevel := level
		level = alpha*values[i] + (1-alpha)*(level+trend)
		trend = beta*(level-prevLevel) + (1-beta)*trend
	}

	stdError := residualStdDev(residuals)
	if stdError == 0 {
		stdError = 0.1 * math.Abs(level)
	}

	return &Model{
		Alpha:    alpha,
		Beta:     beta,
		Level:    level,
		Trend:    trend,
		StdError: stdError,
	}
}

// Forecast projects steps future values. The 95% band widens linearly
// with forecast distance.
func (m *Model) Forecast(steps int) []Point {
	points := make([]Point, 0, steps)
	for h := 1; h <= steps; h++ {
		value := m.Level + float64(h)*m.Trend
		band := 1.96 * m.StdError * (1 + 0.1*float64(h))
		points = append(points, Point{
			Step:  h,
			Value: value,
			Lower: value - band,
			Upper: value + band,
		})
	}
	return points
}

func residualStdDev(residuals []float64) float64 {
	if len(residuals) == 0 {
		return 0
	}
	var sum float64
	for _, r := range residuals {
		sum += r
	}
	mean := sum / float64(len(residuals))

	var ss float64
	for _, r := range residuals {
		d := r - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(residuals)))
}
