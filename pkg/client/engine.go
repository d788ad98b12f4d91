package client

import "context"

// EngineService handles alert engine API calls
type EngineService struct {
	client *Client
}

// Evaluate runs every enabled rule against the latest samples and
// returns the alerts that fired.
func (s *EngineService) Evaluate(ctx context.Context) ([]Alert, error) {
	var alerts []Alert
	if err := s.client.doRequest(ctx, "POST", "/api/v1/engine/evaluate", nil, &alerts); err != nil {
		return nil, err
	}

	return alerts, nil
}
