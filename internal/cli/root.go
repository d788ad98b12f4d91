// Package cli implements the netpulse command line client. All commands
// talk to a running server through pkg/client; nothing here touches the
// database directly.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/netpulse/netpulse/pkg/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile      string
	outputFormat string
	serverURL    string
	apiClient    *client.Client
)

var rootCmd = &cobra.Command{
	Use:   "netpulse",
	Short: "NetPulse CLI - UniFi network telemetry and alerting",
	Long: `NetPulse CLI provides command-line access to the NetPulse server
for managing alert rules, inspecting fired alerts and device telemetry,
and running analytics and capacity forecasts over collected metrics.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// config commands must work before any server exists, and login
		// is the one API call that needs no token
		switch {
		case cmd.Parent() != nil && cmd.Parent().Name() == "config":
			return nil
		case cmd.Name() == "login":
			return initClient()
		default:
			return initAuthenticatedClient()
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default $HOME/.netpulse/config.yaml)")
	pf.StringVarP(&outputFormat, "output", "o", "table", "output format: table, json, yaml")
	pf.StringVar(&serverURL, "server", "", "server URL (overrides config)")

	_ = viper.BindPFlag("output", pf.Lookup("output"))
	_ = viper.BindPFlag("server_url", pf.Lookup("server"))

	rootCmd.AddCommand(
		newAuthCmd(),
		newConfigCmd(),
		newStatusCmd(),
		newRuleCmd(),
		newAlertCmd(),
		newMuteCmd(),
		newChannelCmd(),
		newDeviceCmd(),
		newAnalyticsCmd(),
		newForecastCmd(),
	)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return
		}
		dir := filepath.Join(home, ".netpulse")
		_ = os.MkdirAll(dir, 0700)
		viper.AddConfigPath(dir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("NETPULSE")
	viper.AutomaticEnv()
	viper.SetDefault("server_url", "http://localhost:8080")
	viper.SetDefault("output", "table")

	_ = viper.ReadInConfig()
}

func initClient() error {
	url := viper.GetString("server_url")
	if serverURL != "" {
		url = serverURL
	}
	apiClient = client.NewClient(client.Config{BaseURL: url})
	return nil
}

func initAuthenticatedClient() error {
	if err := initClient(); err != nil {
		return err
	}
	token := viper.GetString("auth.token")
	if token == "" {
		return fmt.Errorf("not authenticated. Run 'netpulse auth login' first")
	}
	apiClient.SetToken(token)
	return nil
}

func getOutputFormat() string {
	if outputFormat != "" && outputFormat != "table" {
		return outputFormat
	}
	return viper.GetString("output")
}
