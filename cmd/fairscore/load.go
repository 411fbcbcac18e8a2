package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/fairscore/internal/db"
	"github.com/gyeh/fairscore/internal/exitcode"
	"github.com/gyeh/fairscore/internal/feed"
	"github.com/gyeh/fairscore/internal/logging"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load a facility feed Parquet file into the database",
	RunE:  runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&cfg.FeedPath, "file", "", "Path to feed Parquet file (required)")
	_ = loadCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := cfg.ValidateDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	if err := cfg.ValidateFeed(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.ValidationError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	result, err := feed.Load(ctx, pool, log, cfg.FeedPath)
	if err != nil {
		log.Error().Err(err).Msg("feed load failed")
		os.Exit(exitcode.CopyError)
	}

	fmt.Printf("Load complete: %d facilities, %d procedures from %d rows (%.1fs)\n",
		result.Facilities, result.Procedures, result.RowsRead, result.Duration.Seconds())
	return nil
}
