package forecast

import (
	"math"
	"testing"
)

func TestFit(t *testing.T) {
	t.Run("nil below two points", func(t *testing.T) {
		if m := Fit([]float64{42}, DefaultAlpha, DefaultBeta, false); m != nil {
			t.Errorf("Fit() = %+v, want nil", m)
		}
		if m := Fit(nil, DefaultAlpha, DefaultBeta, false); m != nil {
			t.Errorf("Fit(nil) = %+v, want nil", m)
		}
	})

	t.Run("linear series tracks the slope", func(t *testing.T) {
		// 10, 12, 14, ... rising 2 per step
		values := make([]float64, 20)
		for i := range values {
			values[i] = 10 + 2*float64(i)
		}

		m := Fit(values, DefaultAlpha, DefaultBeta, true)
		if m == nil {
			t.Fatal("Fit() = nil")
		}
		if math.Abs(m.Trend-2) > 0.1 {
			t.Errorf("Trend = %v, want about 2", m.Trend)
		}
		if math.Abs(m.Level-values[len(values)-1]) > 1 {
			t.Errorf("Level = %v, want near the last value %v", m.Level, values[len(values)-1])
		}
	})

	t.Run("invalid weights fall back to defaults", func(t *testing.T) {
		m := Fit([]float64{1, 2, 3}, -1, 2, false)
		if m == nil {
			t.Fatal("Fit() = nil")
		}
		if m.Alpha != DefaultAlpha || m.Beta != DefaultBeta {
			t.Errorf("alpha=%v beta=%v, want defaults %v/%v", m.Alpha, m.Beta, DefaultAlpha, DefaultBeta)
		}
	})

	t.Run("constant series gets a floor on the error", func(t *testing.T) {
		m := Fit([]float64{50, 50, 50, 50, 50}, DefaultAlpha, DefaultBeta, true)
		if m == nil {
			t.Fatal("Fit() = nil")
		}
		if m.StdError <= 0 {
			t.Errorf("StdError = %v, want positive floor for a perfect fit", m.StdError)
		}
	})
}

func TestModel_Forecast(t *testing.T) {
	m := &Model{Level: 100, Trend: 5, StdError: 2}

	points := m.Forecast(3)
	if len(points) != 3 {
		t.Fatalf("Forecast(3) returned %d points", len(points))
	}

	for i, p := range points {
		h := i + 1
		if p.Step != h {
			t.Errorf("point %d step = %d, want %d", i, p.Step, h)
		}
		wantValue := 100 + float64(h)*5
		if math.Abs(p.Value-wantValue) > 1e-9 {
			t.Errorf("step %d value = %v, want %v", h, p.Value, wantValue)
		}
		wantBand := 1.96 * 2 * (1 + 0.1*float64(h))
		if math.Abs((p.Upper-p.Value)-wantBand) > 1e-9 {
			t.Errorf("step %d upper band = %v, want %v", h, p.Upper-p.Value, wantBand)
		}
		if math.Abs((p.Value-p.Lower)-wantBand) > 1e-9 {
			t.Errorf("step %d lower band = %v, want %v", h, p.Value-p.Lower, wantBand)
		}
	}

	// Bands widen with distance
	if points[2].Upper-points[2].Lower <= points[0].Upper-points[0].Lower {
		t.Error("confidence band should widen with forecast distance")
	}
}
