package client

import "context"

// HealthStatus is the server's health probe response
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// Health checks that the API is alive
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var health HealthStatus
	if err := c.doRequest(ctx, "GET", "/healthz", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Ready checks that the API can reach its database
func (c *Client) Ready(ctx context.Context) (*HealthStatus, error) {
	var health HealthStatus
	if err := c.doRequest(ctx, "GET", "/readyz", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Ping is a simple connectivity test
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Health(ctx)
	return err
}
