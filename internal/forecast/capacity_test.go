package forecast

import "testing"

func risingSeries(start, slope float64, n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = start + slope*float64(i)
	}
	return values
}

func TestForecastCapacity(t *testing.T) {
	tests := []struct {
		name       string
		values     []float64
		capacity   float64
		threshold  float64
		wantNil    bool
		wantStatus string
		wantCross  bool
	}{
		{
			name:    "nil for a short series",
			values:  []float64{10},
			wantNil: true,
		},
		{
			name:       "steep growth is critical",
			values:     risingSeries(60, 5, 14), // near 80 already, 5/day
			capacity:   100,
			threshold:  80,
			wantStatus: StatusCritical,
			wantCross:  true,
		},
		{
			name:       "moderate growth is a warning",
			values:     risingSeries(40, 1.5, 14), // ~60 now, 1.5/day toward 80
			capacity:   100,
			threshold:  80,
			wantStatus: StatusWarning,
			wantCross:  true,
		},
		{
			name:       "slow growth is informational",
			values:     risingSeries(20, 0.8, 14), // ~30 now, crosses in ~2 months
			capacity:   100,
			threshold:  80,
			wantStatus: StatusInfo,
			wantCross:  true,
		},
		{
			name:       "flat usage is healthy",
			values:     risingSeries(30, 0, 14),
			capacity:   100,
			threshold:  80,
			wantStatus: StatusHealthy,
		},
		{
			name:       "falling usage is healthy",
			values:     risingSeries(50, -1, 14),
			capacity:   100,
			threshold:  80,
			wantStatus: StatusHealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForecastCapacity(tt.values, tt.capacity, tt.threshold)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("ForecastCapacity() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("ForecastCapacity() = nil")
			}
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q (crossing in %d days)",
					got.Status, tt.wantStatus, got.DaysUntilCross)
			}
			if tt.wantCross && got.DaysUntilCross < 0 {
				t.Error("expected a crossing within the horizon")
			}
			if !tt.wantCross && got.DaysUntilCross != -1 {
				t.Errorf("DaysUntilCross = %d, want -1", got.DaysUntilCross)
			}
			if got.ThresholdValue != tt.capacity*tt.threshold/100 {
				t.Errorf("ThresholdValue = %v, want %v", got.ThresholdValue, tt.capacity*tt.threshold/100)
			}
			if got.Recommendation == "" {
				t.Error("Recommendation should not be empty")
			}
		})
	}
}
