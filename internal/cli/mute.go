package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/netpulse/netpulse/pkg/client"
	"github.com/spf13/cobra"
)

func newMuteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mute",
		Short: "Manage alert mute windows",
	}

	cmd.AddCommand(newMuteListCmd())
	cmd.AddCommand(newMuteCreateCmd())
	cmd.AddCommand(newMuteDeleteCmd())

	return cmd
}

func newMuteListCmd() *cobra.Command {
	var ruleID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List mute windows",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var filter *int64
			if ruleID > 0 {
				filter = &ruleID
			}

			mutes, err := apiClient.Mutes().List(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to list mutes: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(mutes)
			}

			t := NewTable("ID", "RULE", "HOST", "REASON", "EXPIRES")
			for _, m := range mutes {
				host := m.HostID
				if host == "" {
					host = "(all hosts)"
				}
				expires := "never"
				if m.ExpiresAt != nil {
					expires = m.ExpiresAt.Format("2006-01-02 15:04")
				}
				t.AddRow(
					truncate(m.ID, 12),
					strconv.FormatInt(m.AlertRuleID, 10),
					host,
					truncate(m.Reason, 40),
					expires,
				)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().Int64Var(&ruleID, "rule", 0, "filter by rule ID")

	return cmd
}

func newMuteCreateCmd() *cobra.Command {
	var ruleID int64
	var hostID, reason, duration string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Mute an alert rule",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := client.CreateMuteRequest{
				AlertRuleID: ruleID,
				HostID:      hostID,
				Reason:      reason,
			}

			if duration != "" {
				d, err := time.ParseDuration(duration)
				if err != nil {
					return fmt.Errorf("invalid duration: %s", duration)
				}
				expires := time.Now().Add(d)
				req.ExpiresAt = &expires
			}

			ctx := context.Background()
			m, err := apiClient.Mutes().Create(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to create mute: %w", err)
			}

			scope := "all hosts"
			if m.HostID != "" {
				scope = "host " + m.HostID
			}
			fmt.Printf("Muted rule %d on %s (mute %s)\n", m.AlertRuleID, scope, m.ID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&ruleID, "rule", 0, "rule ID to mute")
	cmd.Flags().StringVar(&hostID, "host", "", "restrict mute to one host (default all hosts)")
	cmd.Flags().StringVar(&reason, "reason", "", "why the rule is muted")
	cmd.Flags().StringVar(&duration, "for", "", "mute duration, e.g. 2h or 30m (default until removed)")

	_ = cmd.MarkFlagRequired("rule")

	return cmd
}

func newMuteDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a mute window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := apiClient.Mutes().Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete mute: %w", err)
			}

			fmt.Printf("Mute %s removed\n", args[0])
			return nil
		},
	}
}
