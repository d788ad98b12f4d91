package cli

import (
	"context"
	"fmt"

	"github.com/netpulse/netpulse/pkg/client"
	"github.com/spf13/cobra"
)

func newForecastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project metric trends forward",
	}

	cmd.AddCommand(newForecastRunCmd())
	cmd.AddCommand(newForecastCapacityCmd())

	return cmd
}

func newForecastRunCmd() *cobra.Command {
	var historyDays, horizonDays int

	cmd := &cobra.Command{
		Use:   "run <host> <metric>",
		Short: "Forecast a metric's daily averages",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			fc, err := apiClient.Forecast().Forecast(ctx, args[0], args[1], &client.ForecastOptions{
				HistoryDays: historyDays,
				HorizonDays: horizonDays,
			})
			if err != nil {
				return fmt.Errorf("failed to forecast: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(fc)
			}

			fmt.Printf("Host:   %s\n", fc.HostID)
			fmt.Printf("Metric: %s\n", fc.MetricName)
			fmt.Printf("Level:  %.2f, trend %+.3f/day\n\n", fc.Level, fc.TrendSlope)

			t := NewTable("DAY", "FORECAST", "LOW", "HIGH")
			for _, p := range fc.Points {
				t.AddRow(
					fmt.Sprintf("+%d", p.Step),
					fmt.Sprintf("%.2f", p.Value),
					fmt.Sprintf("%.2f", p.Lower),
					fmt.Sprintf("%.2f", p.Upper),
				)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&historyDays, "history", 0, "days of history to fit (default 30)")
	cmd.Flags().IntVar(&horizonDays, "horizon", 0, "days to project forward (default 7)")

	return cmd
}

func newForecastCapacityCmd() *cobra.Command {
	var capacity, thresholdPercent float64

	cmd := &cobra.Command{
		Use:   "capacity <host> <metric>",
		Short: "Project when a metric will cross a capacity threshold",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			report, err := apiClient.Forecast().Capacity(ctx, args[0], args[1], capacity, thresholdPercent)
			if err != nil {
				return fmt.Errorf("failed to estimate capacity: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(report)
			}

			fmt.Printf("Capacity:  %g (threshold %.0f%% = %g)\n",
				report.Capacity, report.ThresholdPercent, report.ThresholdValue)
			fmt.Printf("Current:   %g\n", report.CurrentValue)
			fmt.Printf("Status:    %s\n", formatState(report.Status))
			if report.DaysUntilCross >= 0 {
				fmt.Printf("Crossing:  in %d days (predicted %g)\n", report.DaysUntilCross, report.PredictedValue)
			} else {
				fmt.Printf("Crossing:  not within the forecast horizon\n")
			}
			if report.Recommendation != "" {
				fmt.Printf("Advice:    %s\n", report.Recommendation)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&capacity, "capacity", 0, "total capacity of the resource")
	cmd.Flags().Float64Var(&thresholdPercent, "threshold", 0, "threshold as a percent of capacity (default 80)")

	_ = cmd.MarkFlagRequired("capacity")

	return cmd
}
