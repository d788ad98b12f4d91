package unifi

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"

	"github.com/netpulse/netpulse/internal/config"
	"github.com/netpulse/netpulse/internal/pkg/errors"
	"github.com/netpulse/netpulse/internal/pkg/logger"
)

// Client talks to a UniFi network controller. It keeps the session
// cookie and CSRF token from login and retries once on a 401 by
// re-authenticating, since controller sessions expire server-side.
type Client struct {
	cfg    config.UniFiConfig
	http   *http.Client
	logger *logger.Logger

	mu        sync.Mutex
	loggedIn  bool
	csrfToken string
}

// NewClient creates a controller client from configuration
func NewClient(cfg config.UniFiConfig, log *logger.Logger) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("controller URL is required")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: !cfg.VerifyTLS},
	}

	return &Client{
		cfg: cfg,
		http: &http.Client{
			Jar:       jar,
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		logger: log,
	}, nil
}

// apiResponse is the standard controller envelope
type apiResponse struct {
	Meta struct {
		RC  string `json:"rc"`
		Msg string `json:"msg"`
	} `json:"meta"`
	Data json.RawMessage `json:"data"`
}

// Login authenticates against the controller. UDM-class consoles use
// /api/auth/login and return a CSRF token header; classic controllers
// use /api/login.
func (c *Client) Login(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loginLocked(ctx)
}

func (c *Client) loginLocked(ctx context.Context) error {
	path := "/api/login"
	if c.cfg.IsUDMPro {
		path = "/api/auth/login"
	}

	body, err := json.Marshal(map[string]string{
		"username": c.cfg.Username,
		"password": c.cfg.Password,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.cfg.URL, "/")+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.ControllerAuthError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		return errors.ControllerAuthError(
			fmt.Errorf("login returned status %d: %s", resp.StatusCode, string(raw)))
	}

	if token := resp.Header.Get("X-Csrf-Token"); token != "" {
		c.csrfToken = token
	}
	c.loggedIn = true

	c.logger.WithFields(map[string]interface{}{
		"controller": c.cfg.URL,
		"site":       c.cfg.Site,
	}).Debug("Authenticated with controller")

	return nil
}

// Logout ends the controller session
func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loggedIn {
		return nil
	}

	path := "/api/logout"
	if c.cfg.IsUDMPro {
		path = "/api/auth/logout"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.cfg.URL, "/")+path, nil)
	if err != nil {
		return err
	}
	if c.csrfToken != "" {
		req.Header.Set("X-Csrf-Token", c.csrfToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()

	c.loggedIn = false
	c.csrfToken = ""
	return nil
}

// get performs an authenticated GET against a controller API path,
// logging in first (or again after a 401) as needed.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	c.mu.Lock()
	if !c.loggedIn {
		if err := c.loginLocked(ctx); err != nil {
			c.mu.Unlock()
			return err
		}
	}
	c.mu.Unlock()

	resp, err := c.doGet(ctx, path)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()

		c.mu.Lock()
		c.loggedIn = false
		err := c.loginLocked(ctx)
		c.mu.Unlock()
		if err != nil {
			return err
		}

		resp, err = c.doGet(ctx, path)
		if err != nil {
			return err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		return errors.ControllerAPIError(
			fmt.Errorf("%s returned status %d: %s", path, resp.StatusCode, string(raw)))
	}

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return errors.ControllerAPIError(fmt.Errorf("failed to decode %s response: %w", path, err))
	}
	if envelope.Meta.RC != "" && envelope.Meta.RC != "ok" {
		return errors.ControllerAPIError(
			fmt.Errorf("%s returned rc=%s: %s", path, envelope.Meta.RC, envelope.Meta.Msg))
	}

	return json.Unmarshal(envelope.Data, out)
}

func (c *Client) doGet(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL(path), nil)
	if err != nil {
		return nil, err
	}
	if c.csrfToken != "" {
		req.Header.Set("X-Csrf-Token", c.csrfToken)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.ControllerAPIError(err)
	}
	return resp, nil
}

// apiURL prefixes the path for UDM-class consoles, which proxy the
// network application under /proxy/network.
func (c *Client) apiURL(path string) string {
	base := strings.TrimRight(c.cfg.URL, "/")
	if c.cfg.IsUDMPro {
		return base + "/proxy/network" + path
	}
	return base + path
}

// site returns the configured site name, defaulting to "default"
func (c *Client) site() string {
	if c.cfg.Site == "" {
		return "default"
	}
	return c.cfg.Site
}
