package services

import (
	"context"
	"sort"
	"time"

	"github.com/netpulse/netpulse/internal/domain/metric"
	"github.com/netpulse/netpulse/internal/forecast"
	apperrors "github.com/netpulse/netpulse/internal/pkg/errors"
	"github.com/netpulse/netpulse/internal/pkg/logger"
)

// MetricForecast is a fitted forecast for one host/metric series
type MetricForecast struct {
	HostID     string           `json:"host_id"`
	MetricName string           `json:"metric_name"`
	Alpha      float64          `json:"alpha"`
	Beta       float64          `json:"beta"`
	Level      float64          `json:"level"`
	TrendSlope float64          `json:"trend_slope"`
	Points     []forecast.Point `json:"points"`
}

// ForecastService fits exponential-smoothing models over daily metric
// aggregates and projects capacity-threshold crossings.
type ForecastService struct {
	samples metric.Reader
	logger  *logger.Logger
	now     func() time.Time
}

// NewForecastService creates a new forecast service
func NewForecastService(samples metric.Reader, log *logger.Logger) *ForecastService {
	return &ForecastService{
		samples: samples,
		logger:  log,
		now:     time.Now,
	}
}

// ForecastMetric fits a model over historyDays of daily averages and
// projects it horizonDays ahead with 95% confidence bands.
func (s *ForecastService) ForecastMetric(ctx context.Context, hostID, metricName string, historyDays, horizonDays int) (*MetricForecast, error) {
	values, err := s.dailyAverages(ctx, hostID, metricName, historyDays)
	if err != nil {
		return nil, err
	}

	model := forecast.Fit(values, forecast.DefaultAlpha, forecast.DefaultBeta, true)
	if model == nil {
		return nil, apperrors.BadRequest("not enough history to fit a forecast (need at least 2 days)")
	}
	if horizonDays <= 0 {
		horizonDays = 7
	}

	return &MetricForecast{
		HostID:     hostID,
		MetricName: metricName,
		Alpha:      model.Alpha,
		Beta:       model.Beta,
		Level:      model.Level,
		TrendSlope: model.Trend,
		Points:     model.Forecast(horizonDays),
	}, nil
}

// ForecastCapacity projects when the daily-averaged series reaches
// capacity×thresholdPercent% within the 90-day horizon.
func (s *ForecastService) ForecastCapacity(ctx context.Context, hostID, metricName string, capacity, thresholdPercent float64, historyDays int) (*forecast.CapacityReport, error) {
	if capacity <= 0 {
		return nil, apperrors.BadRequest("capacity must be positive")
	}
	if thresholdPercent <= 0 || thresholdPercent > 100 {
		return nil, apperrors.BadRequest("threshold_percent must be in (0, 100]")
	}

	values, err := s.dailyAverages(ctx, hostID, metricName, historyDays)
	if err != nil {
		return nil, err
	}

	report := forecast.ForecastCapacity(values, capacity, thresholdPercent)
	if report == nil {
		return nil, apperrors.BadRequest("not enough history to fit a forecast (need at least 2 days)")
	}
	return report, nil
}

// dailyAverages collapses raw samples into one averaged value per UTC
// day, ordered oldest first. Days with no samples are skipped rather
// than interpolated.
func (s *ForecastService) dailyAverages(ctx context.Context, hostID, metricName string, historyDays int) ([]float64, error) {
	if historyDays <= 0 {
		historyDays = 30
	}
	end := s.now().UTC()
	start := end.AddDate(0, 0, -historyDays)

	rows, err := s.samples.GetByTimeRange(ctx, hostID, metricName, start, end)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to load metric history")
		return nil, err
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, m := range rows {
		day := m.RecordedAt.UTC().Format("2006-01-02")
		sums[day] += m.Value
		counts[day]++
	}

	days := make([]string, 0, len(sums))
	for day := range sums {
		days = append(days, day)
	}
	sort.Strings(days)

	values := make([]float64, 0, len(days))
	for _, day := range days {
		values = append(values, sums[day]/float64(counts[day]))
	}
	return values, nil
}
