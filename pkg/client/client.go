// Package client is a Go client for the netpulse HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the netpulse API client
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Config holds the client configuration
type Config struct {
	BaseURL    string        // API base URL (e.g., "http://localhost:8080")
	Token      string        // Optional JWT for authenticated requests
	Timeout    time.Duration // HTTP client timeout (default: 30s)
	HTTPClient *http.Client  // Optional custom HTTP client
}

// NewClient creates a new API client
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		token:      cfg.Token,
	}
}

// SetToken sets the JWT token for authenticated requests
func (c *Client) SetToken(token string) {
	c.token = token
}

// GetToken returns the current JWT token
func (c *Client) GetToken() string {
	return c.token
}

// envelope is the server's standard response wrapper
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   *struct {
		Code    string      `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	} `json:"error,omitempty"`
}

// doRequest performs an HTTP request, unwrapping the API envelope into
// result when the call succeeds.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &env); err != nil {
			if resp.StatusCode >= 400 {
				return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
			}
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
			apiErr.Details = env.Error.Details
		}
		return apiErr
	}

	if result != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf("failed to parse response data: %w", err)
		}
	}

	return nil
}

// Auth returns the authentication service
func (c *Client) Auth() *AuthService {
	return &AuthService{client: c}
}

// Rules returns the alert rule service
func (c *Client) Rules() *RuleService {
	return &RuleService{client: c}
}

// Alerts returns the fired alert service
func (c *Client) Alerts() *AlertService {
	return &AlertService{client: c}
}

// Mutes returns the mute window service
func (c *Client) Mutes() *MuteService {
	return &MuteService{client: c}
}

// Channels returns the notification channel service
func (c *Client) Channels() *ChannelService {
	return &ChannelService{client: c}
}

// Devices returns the device inventory service
func (c *Client) Devices() *DeviceService {
	return &DeviceService{client: c}
}

// Analytics returns the analytics service
func (c *Client) Analytics() *AnalyticsService {
	return &AnalyticsService{client: c}
}

// Forecast returns the forecasting service
func (c *Client) Forecast() *ForecastService {
	return &ForecastService{client: c}
}

// Engine returns the alert engine service
func (c *Client) Engine() *EngineService {
	return &EngineService{client: c}
}