package unifi

import (
	"context"
	"fmt"
)

// Device is the subset of controller device state the poller records
type Device struct {
	MAC     string `json:"mac"`
	Name    string `json:"name"`
	Model   string `json:"model"`
	Type    string `json:"type"`
	IP      string `json:"ip"`
	State   int    `json:"state"`
	Version string `json:"version"`
	Uptime  int64  `json:"uptime"`

	SystemStats struct {
		CPU  string `json:"cpu"`
		Mem  string `json:"mem"`
		Temp string `json:"temps,omitempty"`
	} `json:"system-stats"`

	GeneralTemperature float64 `json:"general_temperature"`
	HasTemperature     bool    `json:"has_temperature"`

	Uplink struct {
		TxBytesR int64 `json:"tx_bytes-r"`
		RxBytesR int64 `json:"rx_bytes-r"`
	} `json:"uplink"`

	NumSta int `json:"num_sta"`
}

// StateName maps the controller's numeric device state to a label
func (d *Device) StateName() string {
	switch d.State {
	case 1:
		return "connected"
	case 0:
		return "disconnected"
	case 4:
		return "upgrading"
	case 5:
		return "provisioning"
	case 6:
		return "heartbeat_missed"
	default:
		return fmt.Sprintf("state_%d", d.State)
	}
}

// WiredClient is a client-station row from the controller
type WiredClient struct {
	MAC      string `json:"mac"`
	Hostname string `json:"hostname"`
	IP       string `json:"ip"`
	IsWired  bool   `json:"is_wired"`
	ApMAC    string `json:"ap_mac"`
	SwMAC    string `json:"sw_mac"`
}

// Site is one controller site
type Site struct {
	Name string `json:"name"`
	Desc string `json:"desc"`
}

// GetDevices lists all adopted devices on the configured site
func (c *Client) GetDevices(ctx context.Context) ([]Device, error) {
	var devices []Device
	path := fmt.Sprintf("/api/s/%s/stat/device", c.site())
	if err := c.get(ctx, path, &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

// GetClients lists all active client stations on the configured site
func (c *Client) GetClients(ctx context.Context) ([]WiredClient, error) {
	var clients []WiredClient
	path := fmt.Sprintf("/api/s/%s/stat/sta", c.site())
	if err := c.get(ctx, path, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// GetSites lists the sites visible to the account
func (c *Client) GetSites(ctx context.Context) ([]Site, error) {
	var sites []Site
	if err := c.get(ctx, "/api/self/sites", &sites); err != nil {
		return nil, err
	}
	return sites, nil
}
