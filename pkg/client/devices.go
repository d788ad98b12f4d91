package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// DeviceService handles device inventory-related API calls
type DeviceService struct {
	client *Client
}

// List retrieves all known devices
func (s *DeviceService) List(ctx context.Context) ([]Device, error) {
	var devices []Device
	if err := s.client.doRequest(ctx, "GET", "/api/v1/devices", nil, &devices); err != nil {
		return nil, err
	}

	return devices, nil
}

// Get retrieves a single device by ID
func (s *DeviceService) Get(ctx context.Context, id string) (*Device, error) {
	path := fmt.Sprintf("/api/v1/devices/%s", url.PathEscape(id))

	var d Device
	if err := s.client.doRequest(ctx, "GET", path, nil, &d); err != nil {
		return nil, err
	}

	return &d, nil
}

// LatestMetrics retrieves the most recent sample of every metric the
// device reports.
func (s *DeviceService) LatestMetrics(ctx context.Context, id string) ([]Metric, error) {
	path := fmt.Sprintf("/api/v1/devices/%s/metrics", url.PathEscape(id))

	var samples []Metric
	if err := s.client.doRequest(ctx, "GET", path, nil, &samples); err != nil {
		return nil, err
	}

	return samples, nil
}

// MetricHistory retrieves the samples of one metric over the trailing
// window. A zero hours value uses the server default of 24.
func (s *DeviceService) MetricHistory(ctx context.Context, id, metricName string, hours int) ([]Metric, error) {
	path := fmt.Sprintf("/api/v1/devices/%s/metrics/%s", url.PathEscape(id), url.PathEscape(metricName))
	if hours > 0 {
		path += "?hours=" + strconv.Itoa(hours)
	}

	var samples []Metric
	if err := s.client.doRequest(ctx, "GET", path, nil, &samples); err != nil {
		return nil, err
	}

	return samples, nil
}
