package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show network summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			format := getOutputFormat()
			if format != "table" {
				summary := map[string]interface{}{}

				devices, err := apiClient.Devices().List(ctx)
				if err == nil {
					summary["devices"] = len(devices)
				}
				alerts, err := apiClient.Alerts().Summary(ctx)
				if err == nil {
					summary["active_alerts"] = alerts.Total
					summary["critical_alerts"] = alerts.Critical
				}
				rules, err := apiClient.Rules().List(ctx, nil)
				if err == nil {
					summary["rules"] = len(rules)
				}
				return printOutput(summary)
			}

			fmt.Println("NetPulse Dashboard")
			fmt.Println(strings.Repeat("=", 40))

			devices, err := apiClient.Devices().List(ctx)
			if err != nil {
				fmt.Printf("  Devices:  (error: %v)\n", err)
			} else {
				connected := 0
				for _, d := range devices {
					if d.State == "connected" {
						connected++
					}
				}
				fmt.Printf("  Devices:  %d connected (%d total)\n", connected, len(devices))
			}

			rules, err := apiClient.Rules().List(ctx, nil)
			if err != nil {
				fmt.Printf("  Rules:    (error: %v)\n", err)
			} else {
				enabled := 0
				for _, r := range rules {
					if r.Enabled {
						enabled++
					}
				}
				fmt.Printf("  Rules:    %d enabled (%d total)\n", enabled, len(rules))
			}

			alerts, err := apiClient.Alerts().Summary(ctx)
			if err != nil {
				fmt.Printf("  Alerts:   (error: %v)\n", err)
			} else {
				fmt.Printf("  Alerts:   %d active", alerts.Total)
				if alerts.Critical > 0 {
					fmt.Printf(" (%d critical)", alerts.Critical)
				}
				fmt.Println()
			}

			return nil
		},
	}
}
