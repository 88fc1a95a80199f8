package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sells-group/outbound-metrics/internal/store"
)

var snapshotsLimit int

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List recent dataset snapshots",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
		if err != nil {
			return err
		}
		defer st.Close()

		snaps, err := st.ListSnapshots(ctx, snapshotsLimit)
		if err != nil {
			return err
		}
		if len(snaps) == 0 {
			fmt.Println("no snapshots; run process first")
			return nil
		}

		for _, s := range snaps {
			fmt.Printf("%s  %s  accounts=%d events=%d\n",
				s.ID, s.CreatedAt.Format(time.RFC3339), s.AccountCount, s.EventCount)
		}
		return nil
	},
}

func init() {
	snapshotsCmd.Flags().IntVar(&snapshotsLimit, "limit", 20, "maximum snapshots to list")
	rootCmd.AddCommand(snapshotsCmd)
}
