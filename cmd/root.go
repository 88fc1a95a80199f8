package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/outbound-metrics/internal/config"
	"github.com/sells-group/outbound-metrics/internal/metrics"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "outbound-metrics",
	Short: "Account engagement join and aggregation engine",
	Long:  "Cleans account and outbound datasets, joins them by domain, and computes coverage, engagement, and ARR reports.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newEngine builds the metrics engine from configured bucket tables and
// thresholds.
func newEngine() (*metrics.Engine, error) {
	tables := metrics.DefaultTables()
	if cfg.Buckets.Path != "" {
		t, err := metrics.LoadTables(cfg.Buckets.Path)
		if err != nil {
			return nil, err
		}
		tables = t
	}
	thresholds := metrics.Thresholds{
		AbsMin: cfg.Metrics.LiftAbsThreshold,
		PctMin: cfg.Metrics.LiftPctThreshold,
	}
	return metrics.NewEngine(tables, thresholds), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
