package analytics

import (
	"math"
	"testing"
	"time"
)

func seriesAt(start time.Time, spacing time.Duration, values ...float64) []Point {
	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{At: start.Add(time.Duration(i) * spacing), Value: v}
	}
	return points
}

func TestDetectTrend(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		points        []Point
		wantNil       bool
		wantDirection string
	}{
		{
			name:    "nil below three points",
			points:  seriesAt(start, time.Hour, 10, 20),
			wantNil: true,
		},
		{
			name:          "perfect rising line",
			points:        seriesAt(start, time.Hour, 10, 20, 30, 40, 50),
			wantDirection: DirectionUp,
		},
		{
			name:          "perfect falling line",
			points:        seriesAt(start, time.Hour, 50, 40, 30, 20, 10),
			wantDirection: DirectionDown,
		},
		{
			name:          "constant series is stable",
			points:        seriesAt(start, time.Hour, 25, 25, 25, 25),
			wantDirection: DirectionStable,
		},
		{
			name: "tiny slope is stable",
			// 0.001 per hour = 0.024 per day, under the 0.1 limit
			points:        seriesAt(start, time.Hour, 10, 10.001, 10.002, 10.003),
			wantDirection: DirectionStable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectTrend(tt.points)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("DetectTrend() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("DetectTrend() = nil, want trend")
			}
			if got.Direction != tt.wantDirection {
				t.Errorf("Direction = %q, want %q", got.Direction, tt.wantDirection)
			}
		})
	}
}

func TestDetectTrend_PerfectLineConfidence(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	got := DetectTrend(seriesAt(start, time.Hour, 10, 20, 30, 40, 50))
	if got == nil {
		t.Fatal("DetectTrend() = nil")
	}

	// 10 per hour = 240 per day
	if math.Abs(got.SlopePerDay-240) > 1e-9 {
		t.Errorf("SlopePerDay = %v, want 240", got.SlopePerDay)
	}
	if math.Abs(got.Confidence-1) > 1e-9 {
		t.Errorf("Confidence = %v, want 1.0 for a perfect line", got.Confidence)
	}
}

func TestDetectTrend_SingleTimestamp(t *testing.T) {
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	points := []Point{{At: at, Value: 1}, {At: at, Value: 2}, {At: at, Value: 3}}
	if got := DetectTrend(points); got != nil {
		t.Errorf("DetectTrend() on a zero-width window = %+v, want nil", got)
	}
}

func TestEstimateCapacity(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// Rising 1 per hour = 24 per day, currently at 70, threshold 94
	points := seriesAt(start, time.Hour, 66, 67, 68, 69, 70)
	est := EstimateCapacity(points, 94, true)
	if est == nil {
		t.Fatal("EstimateCapacity() = nil for a rising series")
	}
	if math.Abs(est.DaysUntilThreshold-1) > 1e-9 {
		t.Errorf("DaysUntilThreshold = %v, want 1", est.DaysUntilThreshold)
	}

	// Falling series never crosses
	falling := seriesAt(start, time.Hour, 70, 69, 68, 67, 66)
	if est := EstimateCapacity(falling, 94, true); est != nil {
		t.Errorf("EstimateCapacity() on a falling series = %+v, want nil", est)
	}

	// Already past the threshold
	past := seriesAt(start, time.Hour, 95, 96, 97, 98, 99)
	if est := EstimateCapacity(past, 94, true); est != nil {
		t.Errorf("EstimateCapacity() past the threshold = %+v, want nil", est)
	}
}
