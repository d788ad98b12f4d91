package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ForecastService handles forecasting-related API calls
type ForecastService struct {
	client *Client
}

// ForecastOptions contains options for fitting a forecast. Zero values
// use the server defaults of 30 days of history and a 7 day horizon.
type ForecastOptions struct {
	HistoryDays int
	HorizonDays int
}

// Forecast fits a smoothed trend to the metric's daily averages and
// projects it forward with confidence bands.
func (s *ForecastService) Forecast(ctx context.Context, hostID, metricName string, opts *ForecastOptions) (*MetricForecast, error) {
	query := url.Values{}
	if opts != nil {
		if opts.HistoryDays > 0 {
			query.Set("history_days", strconv.Itoa(opts.HistoryDays))
		}
		if opts.HorizonDays > 0 {
			query.Set("horizon_days", strconv.Itoa(opts.HorizonDays))
		}
	}

	path := fmt.Sprintf("/api/v1/forecast/%s/%s", url.PathEscape(hostID), url.PathEscape(metricName))
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var fc MetricForecast
	if err := s.client.doRequest(ctx, "GET", path, nil, &fc); err != nil {
		return nil, err
	}

	return &fc, nil
}

// Capacity projects when the metric will cross thresholdPercent of the
// given capacity. A zero thresholdPercent uses the server default of 80.
func (s *ForecastService) Capacity(ctx context.Context, hostID, metricName string, capacity, thresholdPercent float64) (*CapacityReport, error) {
	query := url.Values{}
	query.Set("capacity", strconv.FormatFloat(capacity, 'f', -1, 64))
	if thresholdPercent > 0 {
		query.Set("threshold_percent", strconv.FormatFloat(thresholdPercent, 'f', -1, 64))
	}

	path := fmt.Sprintf("/api/v1/forecast/%s/%s/capacity?%s", url.PathEscape(hostID), url.PathEscape(metricName), query.Encode())

	var report CapacityReport
	if err := s.client.doRequest(ctx, "GET", path, nil, &report); err != nil {
		return nil, err
	}

	return &report, nil
}
