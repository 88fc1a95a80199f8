package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/outbound-metrics/internal/metrics"
	"github.com/sells-group/outbound-metrics/internal/store"
)

var (
	metricsReport    string
	metricsRegion    string
	metricsEmpBucket string
	metricsOutput    string
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Compute a report from the latest snapshot",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
		if err != nil {
			return err
		}
		defer st.Close()

		accounts, events, snap, err := st.LoadLatest(ctx)
		if err != nil {
			return err
		}
		zap.L().Info("metrics: snapshot loaded",
			zap.String("id", snap.ID),
			zap.Int("accounts", snap.AccountCount),
			zap.Int("events", snap.EventCount),
		)

		engine, err := newEngine()
		if err != nil {
			return err
		}
		idx := metrics.BuildIndex(accounts, events)

		var report any
		switch metricsReport {
		case "coverage":
			report = engine.Coverage(idx)
		case "engagement":
			report = engine.EngagementCoverage(idx)
		case "employee-arr":
			report = engine.EmployeeBucketARR(idx)
		case "touch-timing":
			report = engine.TouchTiming(idx)
		case "arr-distribution":
			report = engine.ARRDistribution(idx)
		case "industry":
			report = engine.Industry(idx, metrics.IndustryFilter{
				Region:         metricsRegion,
				EmployeeBucket: metricsEmpBucket,
			})
		case "all":
			report, err = engine.Bundle(ctx, idx)
			if err != nil {
				return err
			}
		default:
			return eris.Errorf("metrics: unknown report %q", metricsReport)
		}

		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return eris.Wrap(err, "metrics: marshal report")
		}

		if metricsOutput != "" {
			if err := os.WriteFile(metricsOutput, data, 0o644); err != nil {
				return eris.Wrap(err, "metrics: write output")
			}
			zap.L().Info("metrics: report written", zap.String("path", metricsOutput))
			return nil
		}

		fmt.Println(string(data))
		return nil
	},
}

func init() {
	metricsCmd.Flags().StringVar(&metricsReport, "report", "all", "report: coverage, engagement, employee-arr, touch-timing, arr-distribution, industry, all")
	metricsCmd.Flags().StringVar(&metricsRegion, "region", "", "industry report: filter by region")
	metricsCmd.Flags().StringVar(&metricsEmpBucket, "emp-bucket", "", "industry report: filter by employee band label")
	metricsCmd.Flags().StringVar(&metricsOutput, "output", "", "write the report to this file instead of stdout")
	rootCmd.AddCommand(metricsCmd)
}
