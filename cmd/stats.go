package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sfdata-tools/rentmap/internal/dataset"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dataset statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		store, err := dataset.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()

		snap, err := dataset.LoadSnapshot(ctx, store)
		if err != nil {
			return err
		}
		st := snap.Stats()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "records:             %d\n", st.Records)
		fmt.Fprintf(out, "blocks:              %d\n", st.Blocks)
		fmt.Fprintf(out, "missing coordinates: %d\n", st.MissingCoordinates)
		fmt.Fprintf(out, "missing block num:   %d\n", st.MissingBlockNum)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
