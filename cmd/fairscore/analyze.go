package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gyeh/fairscore/internal/analysis"
	"github.com/gyeh/fairscore/internal/db"
	"github.com/gyeh/fairscore/internal/exitcode"
	"github.com/gyeh/fairscore/internal/logging"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full transparency analysis pipeline",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVar(&cfg.Parallelism, "parallelism", 0, "Concurrent facility scorers (default 8)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := cfg.ValidateDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	if configPath != "" {
		if err := cfg.LoadFromFile(configPath); err != nil {
			log.Error().Err(err).Msg("config validation failed")
			os.Exit(exitcode.ValidationError)
		}
	} else {
		cfg.ApplyDefaults()
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	summary, err := analysis.Run(ctx, pool, log, &cfg)
	if err != nil {
		var pe *analysis.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("stage", pe.Stage).Msg("analysis failed")
			if summary.Scored > 0 {
				// Earlier stages committed; the run is usable but incomplete.
				os.Exit(exitcode.PartialSuccess)
			}
			os.Exit(exitcode.StageError)
		}
		log.Error().Err(err).Msg("analysis failed")
		os.Exit(exitcode.StageError)
	}

	fmt.Printf("Analysis run %s complete: %d/%d facilities scored (%.1fs)\n",
		summary.RunID, summary.Scored, summary.TotalFacilities, summary.Duration.Seconds())
	printCounts("Cohorts", summary.Cohorts)
	printCounts("Tiers", summary.Tiers)
	printCounts("Recognitions", summary.Recognitions)
	return nil
}

func printCounts(label string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Printf("%s:\n", label)
	for _, k := range keys {
		fmt.Printf("  %-40s %d\n", k, counts[k])
	}
}
