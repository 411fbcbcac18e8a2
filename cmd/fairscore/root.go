package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/fairscore/internal/config"
)

var cfg config.Config

var configPath string

var rootCmd = &cobra.Command{
	Use:   "fairscore",
	Short: "Facility price-transparency scoring pipeline",
	Long:  "Loads facility price feeds into Postgres and runs the transparency scoring, peer grouping, accountability tier, and excellence recognition pipeline.",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("DATABASE_URL"), "Postgres connection string (or set DATABASE_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&configPath, "config", "", "Path to YAML config file (marker overrides)")
}
