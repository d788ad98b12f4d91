package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// AnalyticsService handles analytics-related API calls
type AnalyticsService struct {
	client *Client
}

// Report retrieves statistics, trend and anomalies for one metric over
// the trailing window. A zero hours value uses the server default of 24.
func (s *AnalyticsService) Report(ctx context.Context, hostID, metricName string, hours int) (*MetricReport, error) {
	path := fmt.Sprintf("/api/v1/analytics/%s/%s", url.PathEscape(hostID), url.PathEscape(metricName))
	if hours > 0 {
		path += "?hours=" + strconv.Itoa(hours)
	}

	var report MetricReport
	if err := s.client.doRequest(ctx, "GET", path, nil, &report); err != nil {
		return nil, err
	}

	return &report, nil
}

// Anomalies retrieves the samples flagged as statistical outliers. A
// zero sigma uses the server default threshold.
func (s *AnalyticsService) Anomalies(ctx context.Context, hostID, metricName string, hours int, sigma float64) ([]Anomaly, error) {
	query := url.Values{}
	if hours > 0 {
		query.Set("hours", strconv.Itoa(hours))
	}
	if sigma > 0 {
		query.Set("sigma", strconv.FormatFloat(sigma, 'f', -1, 64))
	}

	path := fmt.Sprintf("/api/v1/analytics/%s/%s/anomalies", url.PathEscape(hostID), url.PathEscape(metricName))
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var anomalies []Anomaly
	if err := s.client.doRequest(ctx, "GET", path, nil, &anomalies); err != nil {
		return nil, err
	}

	return anomalies, nil
}

// Health retrieves the composite health score for one host
func (s *AnalyticsService) Health(ctx context.Context, hostID string, hours int) (*HostHealth, error) {
	path := fmt.Sprintf("/api/v1/analytics/%s/health", url.PathEscape(hostID))
	if hours > 0 {
		path += "?hours=" + strconv.Itoa(hours)
	}

	var health HostHealth
	if err := s.client.doRequest(ctx, "GET", path, nil, &health); err != nil {
		return nil, err
	}

	return &health, nil
}
