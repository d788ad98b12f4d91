package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
	}
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigListCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Interactive first-time setup",
		RunE: func(cmd *cobra.Command, args []string) error {
			url := promptDefault("Server URL", "http://localhost:8080")
			format := promptDefault("Default output format (table/json/yaml)", "table")

			viper.Set("server_url", url)
			viper.Set("output", format)

			if err := writeConfig(); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Println("Configuration saved")
			return nil
		},
	}
}

func promptDefault(label, def string) string {
	fmt.Printf("%s [%s]: ", label, def)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.Set(args[0], args[1])
			if err := writeConfig(); err != nil {
				return err
			}
			fmt.Printf("Set %s = %s\n", args[0], args[1])
			return nil
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			val := viper.Get(args[0])
			if val == nil {
				fmt.Printf("%s: (not set)\n", args[0])
				return nil
			}
			fmt.Printf("%s: %v\n", args[0], val)
			return nil
		},
	}
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all configuration values",
		RunE: func(cmd *cobra.Command, args []string) error {
			for key, val := range viper.AllSettings() {
				// Never print stored credentials
				if key == "auth" {
					fmt.Printf("%s: (credentials stored)\n", key)
					continue
				}
				fmt.Printf("%s: %v\n", key, val)
			}
			return nil
		},
	}
}

func writeConfig() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".netpulse")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return viper.WriteConfigAs(filepath.Join(dir, "config.yaml"))
}
