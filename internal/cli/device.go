package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newDeviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "device",
		Short: "Inspect monitored devices",
	}

	cmd.AddCommand(newDeviceListCmd())
	cmd.AddCommand(newDeviceGetCmd())
	cmd.AddCommand(newDeviceMetricsCmd())
	cmd.AddCommand(newDeviceHistoryCmd())

	return cmd
}

func newDeviceListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List monitored devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			devices, err := apiClient.Devices().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list devices: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(devices)
			}

			t := NewTable("ID", "NAME", "MODEL", "IP", "STATE", "UPTIME")
			for _, d := range devices {
				t.AddRow(
					d.ID,
					truncate(d.Name, 25),
					d.Model,
					d.IP,
					formatState(d.State),
					formatUptime(d.UptimeS),
				)
			}
			t.Render()
			return nil
		},
	}
}

func newDeviceGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get device details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := apiClient.Devices().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get device: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(d)
			}

			fmt.Printf("ID:      %s\n", d.ID)
			fmt.Printf("Name:    %s\n", d.Name)
			fmt.Printf("Model:   %s\n", d.Model)
			fmt.Printf("Type:    %s\n", d.Type)
			fmt.Printf("IP:      %s\n", d.IP)
			fmt.Printf("Site:    %s\n", d.Site)
			fmt.Printf("State:   %s\n", formatState(d.State))
			fmt.Printf("Version: %s\n", d.Version)
			fmt.Printf("Uptime:  %s\n", formatUptime(d.UptimeS))
			if d.LastSeen != nil {
				fmt.Printf("Seen:    %s\n", d.LastSeen.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}

func newDeviceMetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics <id>",
		Short: "Show the latest sample of every metric a device reports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			samples, err := apiClient.Devices().LatestMetrics(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get metrics: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(samples)
			}

			t := NewTable("METRIC", "VALUE", "UNIT", "RECORDED")
			for _, m := range samples {
				t.AddRow(
					m.MetricName,
					fmt.Sprintf("%g", m.Value),
					m.Unit,
					m.RecordedAt.Format("2006-01-02 15:04:05"),
				)
			}
			t.Render()
			return nil
		},
	}
}

func newDeviceHistoryCmd() *cobra.Command {
	var hours int

	cmd := &cobra.Command{
		Use:   "history <id> <metric>",
		Short: "Show a metric's samples over the trailing window",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			samples, err := apiClient.Devices().MetricHistory(ctx, args[0], args[1], hours)
			if err != nil {
				return fmt.Errorf("failed to get metric history: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(samples)
			}

			t := NewTable("RECORDED", "VALUE", "UNIT")
			for _, m := range samples {
				t.AddRow(
					m.RecordedAt.Format("2006-01-02 15:04:05"),
					fmt.Sprintf("%g", m.Value),
					m.Unit,
				)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&hours, "hours", 0, "trailing window in hours (default 24)")

	return cmd
}

func formatUptime(seconds int64) string {
	if seconds <= 0 {
		return "-"
	}
	d := time.Duration(seconds) * time.Second
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd%dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh%dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}
