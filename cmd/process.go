package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/outbound-metrics/internal/ingest"
	"github.com/sells-group/outbound-metrics/internal/store"
)

var (
	processAccountsPath string
	processOutboundPath string
	processFormat       string
	processOutputDir    string
	processDryRun       bool
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Clean and join the raw datasets, then persist a snapshot",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		accountFormat, err := ingest.DetectFormat(processFormat, processAccountsPath)
		if err != nil {
			return err
		}
		accountTable, err := ingest.ReadTable(processAccountsPath, accountFormat)
		if err != nil {
			return err
		}
		accounts, accountSummary, err := ingest.CleanAccounts(accountTable)
		if err != nil {
			return err
		}
		zap.L().Info("process: accounts cleaned",
			zap.Int("total_rows", accountSummary.TotalRows),
			zap.Int("distinct_raw_industries", accountSummary.DistinctRawIndustries),
			zap.Any("industry_buckets", accountSummary.IndustryCounts),
		)

		outboundFormat, err := ingest.DetectFormat(processFormat, processOutboundPath)
		if err != nil {
			return err
		}
		outboundTable, err := ingest.ReadTable(processOutboundPath, outboundFormat)
		if err != nil {
			return err
		}
		events, eventSummary, err := ingest.CleanEvents(outboundTable, accounts)
		if err != nil {
			return err
		}
		zap.L().Info("process: outbound cleaned and enriched",
			zap.Int("total_rows", eventSummary.TotalRows),
			zap.Int("matched_rows", eventSummary.MatchedRows),
			zap.Float64("match_rate", eventSummary.MatchRate),
			zap.Int("unique_domains", eventSummary.UniqueDomains),
			zap.Int("matched_unique_domains", eventSummary.MatchedUniqueDomains),
		)

		if processOutputDir != "" {
			if err := writeCleanedJSON(processOutputDir, accounts, events); err != nil {
				return err
			}
		}

		if processDryRun {
			zap.L().Info("process: dry run, snapshot not saved")
			return nil
		}

		st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
		if err != nil {
			return err
		}
		defer st.Close()

		snap, err := st.SaveSnapshot(ctx, accounts, events)
		if err != nil {
			return err
		}
		zap.L().Info("process: snapshot saved",
			zap.String("id", snap.ID),
			zap.Int("accounts", snap.AccountCount),
			zap.Int("events", snap.EventCount),
		)
		return nil
	},
}

// writeCleanedJSON writes the cleaned datasets as indented JSON files.
func writeCleanedJSON(dir string, accounts, events any) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrap(err, "process: create output dir")
	}
	for name, v := range map[string]any{
		"cleaned_accounts.json": accounts,
		"cleaned_outbound.json": events,
	} {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return eris.Wrapf(err, "process: marshal %s", name)
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return eris.Wrapf(err, "process: write %s", name)
		}
		zap.L().Info("process: cleaned file written", zap.String("path", path))
	}
	return nil
}

func init() {
	processCmd.Flags().StringVar(&processAccountsPath, "accounts", "", "path to raw account dataset (required)")
	processCmd.Flags().StringVar(&processOutboundPath, "outbound", "", "path to raw outbound dataset (required)")
	processCmd.Flags().StringVar(&processFormat, "format", "", "input format: csv or xlsx (default by extension)")
	processCmd.Flags().StringVar(&processOutputDir, "output-dir", "", "also write cleaned JSON files to this directory")
	processCmd.Flags().BoolVar(&processDryRun, "dry-run", false, "clean and report without saving a snapshot")
	_ = processCmd.MarkFlagRequired("accounts")
	_ = processCmd.MarkFlagRequired("outbound")
	rootCmd.AddCommand(processCmd)
}
