package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/netpulse/netpulse/pkg/client"
	"github.com/spf13/cobra"
)

func newAlertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alert",
		Short: "Manage fired alerts",
	}

	cmd.AddCommand(newAlertListCmd())
	cmd.AddCommand(newAlertGetCmd())
	cmd.AddCommand(newAlertSummaryCmd())
	cmd.AddCommand(newAlertAcknowledgeCmd())
	cmd.AddCommand(newAlertResolveCmd())
	cmd.AddCommand(newAlertEvaluateCmd())

	return cmd
}

func newAlertListCmd() *cobra.Command {
	var severity, hostID, metricName string
	var activeOnly bool
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			opts := &client.AlertListOptions{
				ListOptions: client.ListOptions{Page: page, PageSize: pageSize},
				ActiveOnly:  activeOnly,
			}
			if severity != "" {
				opts.Severity = &severity
			}
			if hostID != "" {
				opts.HostID = &hostID
			}
			if metricName != "" {
				opts.MetricName = &metricName
			}

			result, err := apiClient.Alerts().List(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to list alerts: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(result)
			}

			t := NewTable("ID", "HOST", "METRIC", "SEVERITY", "MESSAGE", "TRIGGERED")
			for _, a := range result.Data {
				host := a.HostName
				if host == "" {
					host = a.HostID
				}
				t.AddRow(
					strconv.FormatInt(a.ID, 10),
					truncate(host, 20),
					a.MetricName,
					formatSeverity(a.Severity),
					truncate(a.Message, 45),
					a.TriggeredAt.Format("2006-01-02 15:04"),
				)
			}
			t.Render()

			if result.TotalPages > 1 {
				fmt.Printf("\nPage %d of %d (%d alerts)\n", result.Page, result.TotalPages, result.TotalItems)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&severity, "severity", "", "filter by severity")
	cmd.Flags().StringVar(&hostID, "host", "", "filter by host ID")
	cmd.Flags().StringVar(&metricName, "metric", "", "filter by metric name")
	cmd.Flags().BoolVar(&activeOnly, "active", false, "only unresolved alerts")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "page size")

	return cmd
}

func newAlertGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get alert details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid alert ID: %s", args[0])
			}

			ctx := context.Background()
			a, err := apiClient.Alerts().Get(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get alert: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(a)
			}

			fmt.Printf("ID:        %d\n", a.ID)
			fmt.Printf("Rule:      %d\n", a.AlertRuleID)
			fmt.Printf("Host:      %s", a.HostID)
			if a.HostName != "" {
				fmt.Printf(" (%s)", a.HostName)
			}
			fmt.Println()
			fmt.Printf("Metric:    %s\n", a.MetricName)
			fmt.Printf("Value:     %g (threshold %g)\n", a.Value, a.Threshold)
			fmt.Printf("Severity:  %s\n", formatSeverity(a.Severity))
			fmt.Printf("Message:   %s\n", a.Message)
			fmt.Printf("Triggered: %s\n", a.TriggeredAt.Format("2006-01-02 15:04:05"))
			if a.AcknowledgedAt != nil {
				fmt.Printf("Acked:     %s by %s\n", a.AcknowledgedAt.Format("2006-01-02 15:04:05"), a.AcknowledgedBy)
			}
			if a.ResolvedAt != nil {
				fmt.Printf("Resolved:  %s\n", a.ResolvedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}

func newAlertSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show active alert counts per severity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sum, err := apiClient.Alerts().Summary(ctx)
			if err != nil {
				return fmt.Errorf("failed to get alert summary: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(sum)
			}

			fmt.Printf("Active alerts: %d\n", sum.Total)
			fmt.Printf("  Critical: %d\n", sum.Critical)
			fmt.Printf("  Warning:  %d\n", sum.Warning)
			fmt.Printf("  Info:     %d\n", sum.Info)
			return nil
		},
	}
}

func newAlertAcknowledgeCmd() *cobra.Command {
	var by string

	cmd := &cobra.Command{
		Use:   "acknowledge <id>",
		Short: "Acknowledge an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid alert ID: %s", args[0])
			}

			ctx := context.Background()
			if _, err := apiClient.Alerts().Acknowledge(ctx, id, by); err != nil {
				return fmt.Errorf("failed to acknowledge alert: %w", err)
			}

			fmt.Printf("Alert %d acknowledged\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&by, "by", "", "acknowledger (default the logged-in user)")

	return cmd
}

func newAlertResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <id>",
		Short: "Resolve an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid alert ID: %s", args[0])
			}

			ctx := context.Background()
			if _, err := apiClient.Alerts().Resolve(ctx, id); err != nil {
				return fmt.Errorf("failed to resolve alert: %w", err)
			}

			fmt.Printf("Alert %d resolved\n", id)
			return nil
		},
	}
}

func newAlertEvaluateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate",
		Short: "Run every enabled rule against the latest samples",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			fired, err := apiClient.Engine().Evaluate(ctx)
			if err != nil {
				return fmt.Errorf("evaluation failed: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(fired)
			}

			if len(fired) == 0 {
				fmt.Println("No alerts fired")
				return nil
			}

			t := NewTable("ID", "HOST", "METRIC", "SEVERITY", "MESSAGE")
			for _, a := range fired {
				t.AddRow(
					strconv.FormatInt(a.ID, 10),
					truncate(a.HostID, 20),
					a.MetricName,
					formatSeverity(a.Severity),
					truncate(a.Message, 50),
				)
			}
			t.Render()
			return nil
		},
	}
}
