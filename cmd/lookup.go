package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sfdata-tools/rentmap/internal/aggregate"
	"github.com/sfdata-tools/rentmap/internal/dataset"
	"github.com/sfdata-tools/rentmap/internal/mapview"
	"github.com/sfdata-tools/rentmap/internal/resolve"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [query]",
	Short: "Resolve an address and print the block summary",
	Long:  `Resolves a free-text address like "100 Larkin St" to its closest rental block and prints the aggregated statistics.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var query string
		if len(args) == 1 {
			query = args[0]
		}

		store, err := dataset.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()

		snap, err := dataset.LoadSnapshot(ctx, store)
		if err != nil {
			return err
		}
		zap.L().Debug("lookup: snapshot loaded", zap.Int("records", snap.Len()))

		resolver := resolve.New(cfg.Resolver.DefaultQuery, cfg.Resolver.SimilarityThreshold)
		presenter := mapview.Presenter{DefaultQuery: cfg.Resolver.DefaultQuery}

		block, err := resolver.Resolve(snap.Records(), query)
		if err != nil {
			_, status := presenter.Present(nil, err)
			fmt.Fprintln(cmd.OutOrStdout(), status)
			return nil
		}

		summary := aggregate.Summarize(block)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", summary.BlockAddress)
		fmt.Fprintf(out, "  Total Rental Units:      %d\n", summary.TotalUnits)
		fmt.Fprintf(out, "  Average Monthly Rent:    $%.2f\n", summary.AvgMonthlyRent)
		fmt.Fprintf(out, "  Average Square Footage:  %.2f\n", summary.MedianSquareFootage)
		fmt.Fprintf(out, "  Average Bedroom Count:   %v\n", summary.MedianBedrooms)
		fmt.Fprintf(out, "  Average Bathroom Count:  %v\n", summary.MedianBathrooms)
		fmt.Fprintf(out, "  Location:                %.4f, %.4f\n", summary.Latitude, summary.Longitude)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}
