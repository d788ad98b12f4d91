package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/netpulse/netpulse/pkg/client"
	"github.com/spf13/cobra"
)

func newChannelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channel",
		Short: "Manage notification channels",
	}

	cmd.AddCommand(newChannelListCmd())
	cmd.AddCommand(newChannelGetCmd())
	cmd.AddCommand(newChannelCreateCmd())
	cmd.AddCommand(newChannelEnableCmd())
	cmd.AddCommand(newChannelDisableCmd())
	cmd.AddCommand(newChannelTestCmd())
	cmd.AddCommand(newChannelDeleteCmd())

	return cmd
}

func newChannelListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List notification channels",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			channels, err := apiClient.Channels().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list channels: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(channels)
			}

			t := NewTable("ID", "NAME", "TYPE", "ENABLED")
			for _, ch := range channels {
				t.AddRow(
					truncate(ch.ID, 12),
					truncate(ch.Name, 30),
					ch.ChannelType,
					formatBool(ch.Enabled),
				)
			}
			t.Render()
			return nil
		},
	}
}

func newChannelGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get channel details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ch, err := apiClient.Channels().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get channel: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(ch)
			}

			fmt.Printf("ID:      %s\n", ch.ID)
			fmt.Printf("Name:    %s\n", ch.Name)
			fmt.Printf("Type:    %s\n", ch.ChannelType)
			fmt.Printf("Enabled: %s\n", formatBool(ch.Enabled))
			fmt.Printf("Config:  %s\n", string(ch.Config))
			return nil
		},
	}
}

func newChannelCreateCmd() *cobra.Command {
	var name, channelType, configJSON string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a notification channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !json.Valid([]byte(configJSON)) {
				return fmt.Errorf("config is not valid JSON")
			}

			ctx := context.Background()
			ch, err := apiClient.Channels().Create(ctx, client.CreateChannelRequest{
				Name:        name,
				ChannelType: channelType,
				Config:      json.RawMessage(configJSON),
			})
			if err != nil {
				return fmt.Errorf("failed to create channel: %w", err)
			}

			fmt.Printf("Created channel %s: %s\n", ch.ID, ch.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "channel name")
	cmd.Flags().StringVar(&channelType, "type", "", "channel type: email or webhook")
	cmd.Flags().StringVar(&configJSON, "config", "{}", "channel config as JSON")

	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newChannelEnableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enable <id>",
		Short: "Enable a notification channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setChannelEnabled(args[0], true)
		},
	}
}

func newChannelDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable <id>",
		Short: "Disable a notification channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setChannelEnabled(args[0], false)
		},
	}
}

func setChannelEnabled(id string, enabled bool) error {
	ctx := context.Background()
	if _, err := apiClient.Channels().Update(ctx, id, client.UpdateChannelRequest{
		Enabled: &enabled,
	}); err != nil {
		return fmt.Errorf("failed to update channel: %w", err)
	}

	state := "disabled"
	if enabled {
		state = "enabled"
	}
	fmt.Printf("Channel %s %s\n", id, state)
	return nil
}

func newChannelTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test <id>",
		Short: "Send a test notification through a channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := apiClient.Channels().Test(ctx, args[0]); err != nil {
				return fmt.Errorf("test delivery failed: %w", err)
			}

			fmt.Printf("Test notification sent through channel %s\n", args[0])
			return nil
		},
	}
}

func newChannelDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a notification channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := apiClient.Channels().Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete channel: %w", err)
			}

			fmt.Printf("Channel %s deleted\n", args[0])
			return nil
		},
	}
}
