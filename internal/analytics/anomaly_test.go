package analytics

import (
	"testing"
	"time"
)

func TestDetectAnomalies(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("constant series has no anomalies", func(t *testing.T) {
		points := seriesAt(start, time.Minute, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50)
		got := DetectAnomalies(points, DefaultSigma)
		if got == nil {
			t.Fatal("DetectAnomalies() = nil, want empty slice")
		}
		if len(got) != 0 {
			t.Errorf("constant series flagged %d anomalies, want 0", len(got))
		}
	})

	t.Run("short series has no anomalies", func(t *testing.T) {
		points := seriesAt(start, time.Minute, 1, 2, 3, 100)
		if got := DetectAnomalies(points, DefaultSigma); len(got) != 0 {
			t.Errorf("series of %d points flagged %d anomalies, want 0", len(points), len(got))
		}
	})

	t.Run("outlier is flagged", func(t *testing.T) {
		points := seriesAt(start, time.Minute, 50, 51, 49, 50, 52, 48, 50, 51, 49, 50, 50, 95)
		got := DetectAnomalies(points, DefaultSigma)
		if len(got) != 1 {
			t.Fatalf("flagged %d anomalies, want 1", len(got))
		}
		a := got[0]
		if a.Value != 95 {
			t.Errorf("flagged value = %v, want 95", a.Value)
		}
		if a.ZScore <= DefaultSigma {
			t.Errorf("z-score = %v, should exceed sigma %v", a.ZScore, DefaultSigma)
		}
	})

	t.Run("negative deviation is flagged", func(t *testing.T) {
		points := seriesAt(start, time.Minute, 50, 51, 49, 50, 52, 48, 50, 51, 49, 50, 50, 5)
		got := DetectAnomalies(points, DefaultSigma)
		if len(got) != 1 {
			t.Fatalf("flagged %d anomalies, want 1", len(got))
		}
		if got[0].ZScore >= 0 {
			t.Errorf("z-score = %v, want negative for a low outlier", got[0].ZScore)
		}
	})

	t.Run("zero sigma falls back to default", func(t *testing.T) {
		points := seriesAt(start, time.Minute, 50, 51, 49, 50, 52, 48, 50, 51, 49, 50, 50, 95)
		if got := DetectAnomalies(points, 0); len(got) != 1 {
			t.Errorf("flagged %d anomalies with default sigma, want 1", len(got))
		}
	})
}

func TestAnomalySeverity(t *testing.T) {
	tests := []struct {
		absZ float64
		want string
	}{
		{2.1, AnomalySeverityLow},
		{2.6, AnomalySeverityMedium},
		{3.5, AnomalySeverityHigh},
	}
	for _, tt := range tests {
		if got := anomalySeverity(tt.absZ); got != tt.want {
			t.Errorf("anomalySeverity(%v) = %q, want %q", tt.absZ, got, tt.want)
		}
	}
}
