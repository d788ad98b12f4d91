package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/netpulse/netpulse/internal/domain/metric"
	apperrors "github.com/netpulse/netpulse/internal/pkg/errors"
	"github.com/netpulse/netpulse/internal/testutil"
)

func TestAnalyticsService_GetStatistics(t *testing.T) {
	samples := testutil.NewMockMetricRepository()
	svc := NewAnalyticsService(samples, testLogger())

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range []float64{40, 50, 60} {
		samples.Seed("host-1", metric.NameCPUPercent, v, start.Add(time.Duration(i)*time.Hour))
	}

	stats, err := svc.GetStatistics(context.Background(), "host-1", metric.NameCPUPercent, start, start.Add(3*time.Hour))
	if err != nil {
		t.Fatalf("GetStatistics() error = %v", err)
	}
	if stats == nil {
		t.Fatal("GetStatistics() = nil, want statistics")
	}
	if stats.Mean != 50 {
		t.Errorf("Mean = %v, want 50", stats.Mean)
	}
	if stats.Min != 40 || stats.Max != 60 {
		t.Errorf("Min/Max = %v/%v, want 40/60", stats.Min, stats.Max)
	}
}

func TestAnalyticsService_GetStatisticsSparseSeries(t *testing.T) {
	samples := testutil.NewMockMetricRepository()
	svc := NewAnalyticsService(samples, testLogger())

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	samples.Seed("host-1", metric.NameCPUPercent, 40, start)

	stats, err := svc.GetStatistics(context.Background(), "host-1", metric.NameCPUPercent, start, start.Add(time.Hour))
	if err != nil {
		t.Fatalf("GetStatistics() error = %v", err)
	}
	if stats != nil {
		t.Errorf("GetStatistics() = %+v for a single sample, want nil", stats)
	}
}

func TestAnalyticsService_GetTrendRising(t *testing.T) {
	samples := testutil.NewMockMetricRepository()
	svc := NewAnalyticsService(samples, testLogger())

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range []float64{10, 20, 30, 40, 50} {
		samples.Seed("host-1", metric.NameMemPercent, v, start.Add(time.Duration(i)*time.Hour))
	}

	trend, err := svc.GetTrend(context.Background(), "host-1", metric.NameMemPercent, start, start.Add(5*time.Hour))
	if err != nil {
		t.Fatalf("GetTrend() error = %v", err)
	}
	if trend == nil {
		t.Fatal("GetTrend() = nil, want a trend")
	}
	if trend.Direction != "up" {
		t.Errorf("Direction = %q, want up", trend.Direction)
	}
	if trend.Confidence < 0.999 {
		t.Errorf("Confidence = %v, want 1.0 for a perfect line", trend.Confidence)
	}
}

func TestAnalyticsService_GetAnomaliesScopedToHost(t *testing.T) {
	samples := testutil.NewMockMetricRepository()
	svc := NewAnalyticsService(samples, testLogger())

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		samples.Seed("host-1", metric.NameCPUPercent, 50, start.Add(time.Duration(i)*time.Minute))
		// A noisy neighbor must not pollute host-1's window.
		samples.Seed("host-2", metric.NameCPUPercent, 95, start.Add(time.Duration(i)*time.Minute))
	}

	anomalies, err := svc.GetAnomalies(context.Background(), "host-1", metric.NameCPUPercent, start, start.Add(time.Hour), 0)
	if err != nil {
		t.Fatalf("GetAnomalies() error = %v", err)
	}
	if len(anomalies) != 0 {
		t.Errorf("anomalies = %d, want 0 for a flat series", len(anomalies))
	}
}

func TestAnalyticsService_GetReport(t *testing.T) {
	samples := testutil.NewMockMetricRepository()
	svc := NewAnalyticsService(samples, testLogger())

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range []float64{30, 35, 40, 45} {
		samples.Seed("host-1", metric.NameCPUPercent, v, start.Add(time.Duration(i)*time.Hour))
	}

	report, err := svc.GetReport(context.Background(), "host-1", metric.NameCPUPercent, start, start.Add(4*time.Hour))
	if err != nil {
		t.Fatalf("GetReport() error = %v", err)
	}
	if report.Statistics == nil || report.Trend == nil {
		t.Fatalf("report = %+v, want statistics and trend populated", report)
	}
	if report.Anomalies == nil {
		t.Error("Anomalies is nil, want an empty slice so it encodes as []")
	}
}

func TestAnalyticsService_GetHostHealth(t *testing.T) {
	samples := testutil.NewMockMetricRepository()
	svc := NewAnalyticsService(samples, testLogger())

	now := time.Now().UTC()
	for i := 0; i < 6; i++ {
		at := now.Add(-time.Duration(i) * time.Hour)
		samples.Seed("host-1", metric.NameCPUPercent, 20, at)
		samples.Seed("host-1", metric.NameMemPercent, 30, at)
	}

	health, err := svc.GetHostHealth(context.Background(), "host-1", 24)
	if err != nil {
		t.Fatalf("GetHostHealth() error = %v", err)
	}
	if health.Score < 80 || health.Status != "healthy" {
		t.Errorf("score=%v status=%q, want a healthy host for low utilization", health.Score, health.Status)
	}
	if _, ok := health.SubScores["cpu"]; !ok {
		t.Error("cpu sub-score missing")
	}
	if _, ok := health.SubScores["memory"]; !ok {
		t.Error("memory sub-score missing")
	}
	// No temperature history, so no temperature sub-score.
	if _, ok := health.SubScores["temperature"]; ok {
		t.Error("temperature sub-score present without temperature samples")
	}
}

func TestAnalyticsService_GetHostHealthNoHistory(t *testing.T) {
	svc := NewAnalyticsService(testutil.NewMockMetricRepository(), testLogger())

	_, err := svc.GetHostHealth(context.Background(), "ghost", 24)
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.StatusCode != 404 {
		t.Errorf("GetHostHealth() error = %v, want a 404 AppError", err)
	}
}
