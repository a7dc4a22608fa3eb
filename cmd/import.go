package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sfdata-tools/rentmap/internal/dataset"
	"github.com/sfdata-tools/rentmap/internal/model"
)

var (
	importCSVPath     string
	importFixturePath string
	importSample      bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the rental listings dataset into the store",
	Long:  "Loads a pre-cleaned listings CSV (or a YAML fixture, or the built-in sample) and replaces the stored dataset.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		var (
			records []model.RentalRecord
			source  string
		)
		switch {
		case importSample:
			records = dataset.SampleRecords()
			source = "sample"
		case importFixturePath != "":
			recs, err := dataset.LoadFixture(importFixturePath)
			if err != nil {
				return err
			}
			records, source = recs, importFixturePath
		case importCSVPath != "":
			f, err := os.Open(importCSVPath)
			if err != nil {
				return eris.Wrapf(err, "import: open %s", importCSVPath)
			}
			defer f.Close()

			res, err := dataset.ReadCSV(ctx, f)
			if err != nil {
				return err
			}
			records, source = res.Records, importCSVPath
		default:
			return eris.New("import: one of --csv, --fixture, or --sample is required")
		}

		store, err := dataset.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Migrate(ctx); err != nil {
			return err
		}
		n, err := store.ImportRecords(ctx, records)
		if err != nil {
			return err
		}

		zap.L().Info("import complete",
			zap.Int("records", n),
			zap.String("source", source),
			zap.String("driver", cfg.Store.Driver),
		)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importCSVPath, "csv", "", "path to listings CSV")
	importCmd.Flags().StringVar(&importFixturePath, "fixture", "", "path to YAML fixture dataset")
	importCmd.Flags().BoolVar(&importSample, "sample", false, "load the built-in sample dataset")
	rootCmd.AddCommand(importCmd)
}
