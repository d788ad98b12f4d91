package services

import (
	"context"
	"time"

	"github.com/netpulse/netpulse/internal/analytics"
	"github.com/netpulse/netpulse/internal/domain/metric"
	apperrors "github.com/netpulse/netpulse/internal/pkg/errors"
	"github.com/netpulse/netpulse/internal/pkg/logger"
)

// HostHealth is the composite health report for one host
type HostHealth struct {
	HostID       string             `json:"host_id"`
	Score        float64            `json:"score"`
	Status       string             `json:"status"`
	SubScores    map[string]float64 `json:"sub_scores"`
	AnomalyCount int                `json:"anomaly_count"`
	WindowHours  int                `json:"window_hours"`
}

// MetricReport bundles the analytics for one host/metric series
type MetricReport struct {
	HostID     string                `json:"host_id"`
	MetricName string                `json:"metric_name"`
	Statistics *analytics.Statistics `json:"statistics,omitempty"`
	Trend      *analytics.Trend      `json:"trend,omitempty"`
	Anomalies  []analytics.Anomaly   `json:"anomalies"`
}

// AnalyticsService computes descriptive statistics, trends, anomalies
// and health scores from stored metric history.
type AnalyticsService struct {
	samples metric.Reader
	logger  *logger.Logger
	now     func() time.Time
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(samples metric.Reader, log *logger.Logger) *AnalyticsService {
	return &AnalyticsService{
		samples: samples,
		logger:  log,
		now:     time.Now,
	}
}

// GetStatistics computes descriptive statistics over a time range.
// It returns nil when the series has fewer than two points.
func (s *AnalyticsService) GetStatistics(ctx context.Context, hostID, metricName string, start, end time.Time) (*analytics.Statistics, error) {
	points, err := s.loadSeries(ctx, hostID, metricName, start, end)
	if err != nil {
		return nil, err
	}
	return analytics.Calculate(valuesOf(points)), nil
}

// GetTrend fits a least-squares trend over a time range. It returns nil
// when the series has fewer than three points.
func (s *AnalyticsService) GetTrend(ctx context.Context, hostID, metricName string, start, end time.Time) (*analytics.Trend, error) {
	points, err := s.loadSeries(ctx, hostID, metricName, start, end)
	if err != nil {
		return nil, err
	}
	return analytics.DetectTrend(points), nil
}

// GetAnomalies flags samples deviating more than sigma standard
// deviations from the window mean
func (s *AnalyticsService) GetAnomalies(ctx context.Context, hostID, metricName string, start, end time.Time, sigma float64) ([]analytics.Anomaly, error) {
	points, err := s.loadSeries(ctx, hostID, metricName, start, end)
	if err != nil {
		return nil, err
	}
	return analytics.DetectAnomalies(points, sigma), nil
}

// GetReport bundles statistics, trend and anomalies for one series
func (s *AnalyticsService) GetReport(ctx context.Context, hostID, metricName string, start, end time.Time) (*MetricReport, error) {
	points, err := s.loadSeries(ctx, hostID, metricName, start, end)
	if err != nil {
		return nil, err
	}
	return &MetricReport{
		HostID:     hostID,
		MetricName: metricName,
		Statistics: analytics.Calculate(valuesOf(points)),
		Trend:      analytics.DetectTrend(points),
		Anomalies:  analytics.DetectAnomalies(points, analytics.DefaultSigma),
	}, nil
}

// GetHostHealth scores a host 0-100 from its recent CPU, memory and
// temperature history. Categories the host never reported are left out
// of the composite instead of dragging it down.
func (s *AnalyticsService) GetHostHealth(ctx context.Context, hostID string, windowHours int) (*HostHealth, error) {
	if windowHours <= 0 {
		windowHours = 24
	}
	end := s.now().UTC()
	start := end.Add(-time.Duration(windowHours) * time.Hour)

	health := &HostHealth{
		HostID:      hostID,
		SubScores:   make(map[string]float64),
		WindowHours: windowHours,
	}
	var scores []float64

	cpu, err := s.loadSeries(ctx, hostID, metric.NameCPUPercent, start, end)
	if err != nil {
		return nil, err
	}
	if stats := analytics.Calculate(valuesOf(cpu)); stats != nil {
		score := analytics.CPUScore(stats.Mean)
		health.SubScores["cpu"] = score
		scores = append(scores, score)
	}

	mem, err := s.loadSeries(ctx, hostID, metric.NameMemPercent, start, end)
	if err != nil {
		return nil, err
	}
	if stats := analytics.Calculate(valuesOf(mem)); stats != nil {
		score := analytics.MemoryScore(stats.Mean)
		health.SubScores["memory"] = score
		scores = append(scores, score)
	}

	temp, err := s.loadSeries(ctx, hostID, metric.NameTemperatureC, start, end)
	if err != nil {
		return nil, err
	}
	if stats := analytics.Calculate(valuesOf(temp)); stats != nil {
		score := analytics.TemperatureScore(stats.Mean)
		health.SubScores["temperature"] = score
		scores = append(scores, score)
	}

	anomalies := analytics.DetectAnomalies(cpu, analytics.DefaultSigma)
	anomalies = append(anomalies, analytics.DetectAnomalies(mem, analytics.DefaultSigma)...)
	health.AnomalyCount = len(anomalies)
	if len(scores) > 0 {
		score := analytics.AnomalyScore(health.AnomalyCount)
		health.SubScores["stability"] = score
		scores = append(scores, score)
	}

	if len(scores) == 0 {
		return nil, apperrors.NotFound("metric history for host")
	}

	health.Score = analytics.ComposeHealthScore(scores)
	health.Status = healthStatus(health.Score)
	return health, nil
}

// GetCapacityEstimate extrapolates the fitted trend of a series to a
// threshold. It returns nil when the series is not rising.
func (s *AnalyticsService) GetCapacityEstimate(ctx context.Context, hostID, metricName string, threshold float64, windowHours int) (*analytics.CapacityEstimate, error) {
	if windowHours <= 0 {
		windowHours = 7 * 24
	}
	end := s.now().UTC()
	start := end.Add(-time.Duration(windowHours) * time.Hour)

	points, err := s.loadSeries(ctx, hostID, metricName, start, end)
	if err != nil {
		return nil, err
	}

	percentage := metricName == metric.NameCPUPercent || metricName == metric.NameMemPercent
	return analytics.EstimateCapacity(points, threshold, percentage), nil
}

func (s *AnalyticsService) loadSeries(ctx context.Context, hostID, metricName string, start, end time.Time) ([]analytics.Point, error) {
	rows, err := s.samples.GetByTimeRange(ctx, hostID, metricName, start, end)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to load metric history")
		return nil, err
	}

	points := make([]analytics.Point, 0, len(rows))
	for _, m := range rows {
		points = append(points, analytics.Point{At: m.RecordedAt, Value: m.Value})
	}
	return points, nil
}

func valuesOf(points []analytics.Point) []float64 {
	values := make([]float64, 0, len(points))
	for _, p := range points {
		values = append(values, p.Value)
	}
	return values
}

func healthStatus(score float64) string {
	switch {
	case score >= 80:
		return "healthy"
	case score >= 60:
		return "degraded"
	default:
		return "unhealthy"
	}
}
