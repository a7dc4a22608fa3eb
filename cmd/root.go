package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sfdata-tools/rentmap/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "rentmap",
	Short: "San Francisco rental block map",
	Long:  "Resolves free-text street addresses to the closest rental block and serves aggregated rent statistics as map markers.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		mode := "cli"
		if cmd.Name() == "serve" {
			mode = "serve"
		}
		if err := cfg.Validate(mode); err != nil {
			return err
		}

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
