package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/netpulse/netpulse/pkg/client"
	"github.com/spf13/cobra"
)

func newRuleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rule",
		Short: "Manage alert rules",
	}

	cmd.AddCommand(newRuleListCmd())
	cmd.AddCommand(newRuleGetCmd())
	cmd.AddCommand(newRuleCreateCmd())
	cmd.AddCommand(newRuleDeleteCmd())
	cmd.AddCommand(newRuleEnableCmd())
	cmd.AddCommand(newRuleDisableCmd())

	return cmd
}

func newRuleListCmd() *cobra.Command {
	var metricName, severity, hostID string
	var enabledOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List alert rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			opts := &client.RuleListOptions{}
			if metricName != "" {
				opts.MetricName = &metricName
			}
			if severity != "" {
				opts.Severity = &severity
			}
			if hostID != "" {
				opts.HostID = &hostID
			}
			if enabledOnly {
				enabled := true
				opts.Enabled = &enabled
			}

			rules, err := apiClient.Rules().List(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to list rules: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(rules)
			}

			t := NewTable("ID", "NAME", "METRIC", "CONDITION", "SEVERITY", "ENABLED")
			for _, r := range rules {
				t.AddRow(
					strconv.FormatInt(r.ID, 10),
					truncate(r.Name, 30),
					r.MetricName,
					fmt.Sprintf("%s %g", r.Condition, r.Threshold),
					formatSeverity(r.Severity),
					formatBool(r.Enabled),
				)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&metricName, "metric", "", "filter by metric name")
	cmd.Flags().StringVar(&severity, "severity", "", "filter by severity")
	cmd.Flags().StringVar(&hostID, "host", "", "filter by host ID")
	cmd.Flags().BoolVar(&enabledOnly, "enabled", false, "only enabled rules")

	return cmd
}

func newRuleGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get alert rule details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid rule ID: %s", args[0])
			}

			ctx := context.Background()
			r, err := apiClient.Rules().Get(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get rule: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(r)
			}

			fmt.Printf("ID:          %d\n", r.ID)
			fmt.Printf("Name:        %s\n", r.Name)
			if r.Description != "" {
				fmt.Printf("Description: %s\n", r.Description)
			}
			fmt.Printf("Metric:      %s\n", r.MetricName)
			fmt.Printf("Condition:   %s %g\n", r.Condition, r.Threshold)
			fmt.Printf("Severity:    %s\n", formatSeverity(r.Severity))
			if r.HostID != "" {
				fmt.Printf("Host:        %s\n", r.HostID)
			} else {
				fmt.Printf("Host:        (all hosts)\n")
			}
			fmt.Printf("Cooldown:    %d minutes\n", r.CooldownMinutes)
			fmt.Printf("Channels:    %s\n", strings.Join(r.NotificationChannels, ", "))
			fmt.Printf("Enabled:     %s\n", formatBool(r.Enabled))
			return nil
		},
	}
}

func newRuleCreateCmd() *cobra.Command {
	var req client.CreateRuleRequest
	var channels []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an alert rule",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.NotificationChannels = channels

			ctx := context.Background()
			r, err := apiClient.Rules().Create(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to create rule: %w", err)
			}

			fmt.Printf("Created rule %d: %s\n", r.ID, r.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "rule name")
	cmd.Flags().StringVar(&req.Description, "description", "", "rule description")
	cmd.Flags().StringVar(&req.MetricName, "metric", "", "metric name, e.g. cpu_percent")
	cmd.Flags().StringVar(&req.Condition, "condition", "gt", "comparison: gt, gte, lt, lte, eq, ne")
	cmd.Flags().Float64Var(&req.Threshold, "threshold", 0, "threshold value")
	cmd.Flags().StringVar(&req.Severity, "severity", "warning", "severity: info, warning, critical")
	cmd.Flags().StringVar(&req.HostID, "host", "", "restrict to one host (default all hosts)")
	cmd.Flags().IntVar(&req.CooldownMinutes, "cooldown", 0, "cooldown minutes between repeat alerts")
	cmd.Flags().StringSliceVar(&channels, "channel", nil, "notification channel ID (repeatable)")

	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("metric")
	_ = cmd.MarkFlagRequired("threshold")

	return cmd
}

func newRuleDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an alert rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid rule ID: %s", args[0])
			}

			ctx := context.Background()
			if err := apiClient.Rules().Delete(ctx, id); err != nil {
				return fmt.Errorf("failed to delete rule: %w", err)
			}

			fmt.Printf("Rule %d deleted\n", id)
			return nil
		},
	}
}

func newRuleEnableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enable <id>",
		Short: "Enable an alert rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid rule ID: %s", args[0])
			}

			ctx := context.Background()
			if _, err := apiClient.Rules().Enable(ctx, id); err != nil {
				return fmt.Errorf("failed to enable rule: %w", err)
			}

			fmt.Printf("Rule %d enabled\n", id)
			return nil
		},
	}
}

func newRuleDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable <id>",
		Short: "Disable an alert rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid rule ID: %s", args[0])
			}

			ctx := context.Background()
			if _, err := apiClient.Rules().Disable(ctx, id); err != nil {
				return fmt.Errorf("failed to disable rule: %w", err)
			}

			fmt.Printf("Rule %d disabled\n", id)
			return nil
		},
	}
}
