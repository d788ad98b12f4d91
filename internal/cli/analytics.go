package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newAnalyticsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Analyze collected telemetry",
	}

	cmd.AddCommand(newAnalyticsReportCmd())
	cmd.AddCommand(newAnalyticsAnomaliesCmd())
	cmd.AddCommand(newAnalyticsHealthCmd())

	return cmd
}

func newAnalyticsReportCmd() *cobra.Command {
	var hours int

	cmd := &cobra.Command{
		Use:   "report <host> <metric>",
		Short: "Show statistics, trend and anomalies for a metric",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			report, err := apiClient.Analytics().Report(ctx, args[0], args[1], hours)
			if err != nil {
				return fmt.Errorf("failed to get report: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(report)
			}

			fmt.Printf("Host:   %s\n", report.HostID)
			fmt.Printf("Metric: %s\n", report.MetricName)

			if s := report.Statistics; s != nil {
				fmt.Printf("\nStatistics (%d samples)\n", s.Count)
				fmt.Printf("  Mean:   %.2f\n", s.Mean)
				fmt.Printf("  Median: %.2f\n", s.Median)
				fmt.Printf("  Min:    %.2f\n", s.Min)
				fmt.Printf("  Max:    %.2f\n", s.Max)
				fmt.Printf("  StdDev: %.2f\n", s.StdDev)
			} else {
				fmt.Println("\nStatistics: not enough samples")
			}

			if t := report.Trend; t != nil {
				fmt.Printf("\nTrend\n")
				fmt.Printf("  Direction:  %s\n", t.Direction)
				fmt.Printf("  Slope/day:  %.4f\n", t.SlopePerDay)
				fmt.Printf("  Confidence: %.2f\n", t.Confidence)
			}

			if len(report.Anomalies) > 0 {
				fmt.Printf("\nAnomalies (%d)\n", len(report.Anomalies))
				for _, a := range report.Anomalies {
					fmt.Printf("  %s  value=%.2f z=%.2f %s\n",
						a.At.Format("2006-01-02 15:04"), a.Value, a.ZScore, a.Severity)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&hours, "hours", 0, "trailing window in hours (default 24)")

	return cmd
}

func newAnalyticsAnomaliesCmd() *cobra.Command {
	var hours int
	var sigma float64

	cmd := &cobra.Command{
		Use:   "anomalies <host> <metric>",
		Short: "Show the samples flagged as statistical outliers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			anomalies, err := apiClient.Analytics().Anomalies(ctx, args[0], args[1], hours, sigma)
			if err != nil {
				return fmt.Errorf("failed to get anomalies: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(anomalies)
			}

			if len(anomalies) == 0 {
				fmt.Println("No anomalies detected")
				return nil
			}

			t := NewTable("AT", "VALUE", "Z-SCORE", "MEAN", "SEVERITY")
			for _, a := range anomalies {
				t.AddRow(
					a.At.Format("2006-01-02 15:04:05"),
					fmt.Sprintf("%.2f", a.Value),
					fmt.Sprintf("%.2f", a.ZScore),
					fmt.Sprintf("%.2f", a.Mean),
					formatSeverity(a.Severity),
				)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&hours, "hours", 0, "trailing window in hours (default 24)")
	cmd.Flags().Float64Var(&sigma, "sigma", 0, "z-score threshold (default 3.0)")

	return cmd
}

func newAnalyticsHealthCmd() *cobra.Command {
	var hours int

	cmd := &cobra.Command{
		Use:   "health <host>",
		Short: "Show a host's composite health score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			health, err := apiClient.Analytics().Health(ctx, args[0], hours)
			if err != nil {
				return fmt.Errorf("failed to get health: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(health)
			}

			fmt.Printf("Host:   %s\n", health.HostID)
			fmt.Printf("Score:  %.1f / 100\n", health.Score)
			fmt.Printf("Status: %s\n", formatState(health.Status))
			fmt.Printf("Window: %dh\n", health.WindowHours)
			if len(health.SubScores) > 0 {
				fmt.Println("Sub-scores:")
				for name, score := range health.SubScores {
					fmt.Printf("  %-12s %.1f\n", name, score)
				}
			}
			if health.AnomalyCount > 0 {
				fmt.Printf("Anomalies: %d\n", health.AnomalyCount)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&hours, "hours", 0, "trailing window in hours (default 24)")

	return cmd
}
