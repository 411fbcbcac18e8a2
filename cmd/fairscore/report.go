package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gyeh/fairscore/internal/db"
	"github.com/gyeh/fairscore/internal/exitcode"
	"github.com/gyeh/fairscore/internal/logging"
	"github.com/gyeh/fairscore/internal/store"
)

var reportFlags struct {
	top       int
	category  string
	spotlight bool
	cohort    string
	tier      string
	facility  int64
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report on the latest analysis results",
	RunE:  runReport,
}

func init() {
	f := reportCmd.Flags()
	f.IntVar(&reportFlags.top, "top", 10, "Max rows to print for recognition listings")
	f.StringVar(&reportFlags.category, "category", "", "Filter featured recognitions by category")
	f.BoolVar(&reportFlags.spotlight, "spotlight", false, "List spotlight recognitions")
	f.StringVar(&reportFlags.cohort, "cohort", "", "List a peer cohort's members in rank order")
	f.StringVar(&reportFlags.tier, "tier", "", "List facilities in an accountability tier")
	f.Int64Var(&reportFlags.facility, "facility", 0, "Show one facility's cohort membership")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := cfg.ValidateDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	st := store.New(pool)

	switch {
	case reportFlags.facility != 0:
		return reportFacility(ctx, st)
	case reportFlags.cohort != "":
		return reportCohort(ctx, st)
	case reportFlags.tier != "":
		return reportTier(ctx, st)
	case reportFlags.spotlight:
		return reportSpotlight(ctx, st)
	default:
		return reportFeatured(ctx, st)
	}
}

func reportFeatured(ctx context.Context, st *store.Store) error {
	recs, err := st.FeaturedRecognitions(ctx, st.Pool, reportFlags.category, reportFlags.top)
	if err != nil {
		return err
	}
	fmt.Printf("Featured recognitions (%d):\n", len(recs))
	for _, r := range recs {
		fmt.Printf("  facility %-6d %-32s %-40s score %.1f\n",
			r.FacilityID, r.Category, r.Title, r.TransparencyScore)
	}
	return nil
}

func reportSpotlight(ctx context.Context, st *store.Store) error {
	recs, err := st.SpotlightRecognitions(ctx, st.Pool, reportFlags.top)
	if err != nil {
		return err
	}
	fmt.Printf("Spotlight recognitions (%d):\n", len(recs))
	for _, r := range recs {
		fmt.Printf("  facility %-6d %-40s score %.1f\n    %s\n",
			r.FacilityID, r.Title, r.TransparencyScore, strings.Join(r.Achievements, "; "))
	}
	return nil
}

func reportCohort(ctx context.Context, st *store.Store) error {
	members, err := st.MembershipsByCohort(ctx, st.Pool, reportFlags.cohort)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%d members):\n", reportFlags.cohort, len(members))
	for _, m := range members {
		fmt.Printf("  #%-4d facility %-6d percentile %5.1f  vs cohort %+.1f\n",
			m.Rank, m.FacilityID, m.Percentile, m.ScoreVsCohort)
	}
	return nil
}

func reportTier(ctx context.Context, st *store.Store) error {
	tiers, err := st.TiersByName(ctx, st.Pool, reportFlags.tier)
	if err != nil {
		return err
	}
	fmt.Printf("Tier %s (%d facilities):\n", reportFlags.tier, len(tiers))
	for _, t := range tiers {
		fmt.Printf("  facility %-6d enforcement %-8s window %dd support %s\n",
			t.FacilityID, t.EnforcementLevel, t.ComplianceWindowDays, t.SupportLevel)
	}
	return nil
}

func reportFacility(ctx context.Context, st *store.Store) error {
	m, err := st.MembershipByFacility(ctx, st.Pool, reportFlags.facility)
	if err != nil {
		return err
	}
	fmt.Printf("Facility %d: %s\n", m.FacilityID, m.CohortName)
	fmt.Printf("  rank %d of %d (percentile %.1f)\n", m.Rank, m.CohortSize, m.Percentile)
	fmt.Printf("  score vs cohort %+.1f, cost efficiency vs cohort %+.1f, community impact vs cohort %+.1f\n",
		m.ScoreVsCohort, m.CostEfficiencyVsCohort, m.CommunityImpactVsCohort)
	return nil
}
