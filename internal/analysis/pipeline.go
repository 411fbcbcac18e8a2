// Package analysis orchestrates a full scoring run: per-facility scoring,
// peer group construction, accountability tier assignment, and excellence
// recognition. Each stage persists in its own transaction; a stage failure
// rolls that stage back, marks the run failed, and skips everything
// downstream while keeping the earlier stages' committed output.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/gyeh/fairscore/internal/config"
	"github.com/gyeh/fairscore/internal/db"
	"github.com/gyeh/fairscore/internal/excellence"
	"github.com/gyeh/fairscore/internal/model"
	"github.com/gyeh/fairscore/internal/peergroup"
	"github.com/gyeh/fairscore/internal/scoring"
	"github.com/gyeh/fairscore/internal/store"
	"github.com/gyeh/fairscore/internal/tier"
)

// Pipeline stage names, recorded on the run row when a stage fails.
const (
	StageScore       = "score"
	StagePeerGroups  = "peer_groups"
	StageTiers       = "tiers"
	StageRecognition = "recognition"
)

// PipelineError wraps a stage failure with the stage that produced it.
type PipelineError struct {
	Stage string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline stage %s: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes the full pipeline against the facilities currently loaded.
// It returns the summary of what committed even when a stage fails; the
// returned error is then a *PipelineError naming the failed stage.
func Run(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, cfg *config.Config) (model.AnalysisSummary, error) {
	st := store.New(pool)
	runID := uuid.New()
	started := time.Now().UTC()

	summary := model.AnalysisSummary{
		RunID:        runID.String(),
		Cohorts:      make(map[string]int),
		Tiers:        make(map[string]int),
		Recognitions: make(map[string]int),
		StartedAt:    started,
	}

	if err := st.InsertRun(ctx, pool, runID, started); err != nil {
		return summary, &PipelineError{Stage: StageScore, Err: err}
	}

	log.Info().Str("run_id", runID.String()).Msg("analysis run started")

	facilities, err := st.ListFacilities(ctx, pool)
	if err != nil {
		return failRun(ctx, st, log, summary, runID, StageScore, err)
	}
	summary.TotalFacilities = len(facilities)

	// Stage 1: score every facility, then commit wholesale.
	scores, err := scoreAll(ctx, facilities, runID, cfg, started)
	if err != nil {
		return failRun(ctx, st, log, summary, runID, StageScore, err)
	}
	if err := db.WithTx(ctx, pool, func(tx pgx.Tx) error {
		return st.ReplaceScores(ctx, tx, scores)
	}); err != nil {
		return failRun(ctx, st, log, summary, runID, StageScore, err)
	}
	summary.Scored = len(scores)
	log.Info().Int("facilities", len(scores)).Msg("scoring stage committed")

	// Stage 2: peer groups from the committed snapshot of this run.
	snapshot, err := st.ListScoresByRun(ctx, pool, runID)
	if err != nil {
		return failRun(ctx, st, log, summary, runID, StagePeerGroups, err)
	}
	bedCounts := make(map[int64]int32, len(facilities))
	for _, f := range facilities {
		if f.BedCount != nil {
			bedCounts[f.ID] = *f.BedCount
		}
	}
	memberships := peergroup.Build(snapshot, bedCounts, started)
	if err := db.WithTx(ctx, pool, func(tx pgx.Tx) error {
		return st.ReplaceMemberships(ctx, tx, memberships)
	}); err != nil {
		return failRun(ctx, st, log, summary, runID, StagePeerGroups, err)
	}
	for _, m := range memberships {
		summary.Cohorts[m.CohortName]++
	}
	log.Info().Int("memberships", len(memberships)).Msg("peer group stage committed")

	// Stage 3: accountability tiers, size policy only.
	tiers := make([]model.AccountabilityTier, len(snapshot))
	for i, sc := range snapshot {
		tiers[i] = tier.Assign(sc.FacilityID, runID, sc.Size, started)
	}
	if err := db.WithTx(ctx, pool, func(tx pgx.Tx) error {
		return st.ReplaceTiers(ctx, tx, tiers)
	}); err != nil {
		return failRun(ctx, st, log, summary, runID, StageTiers, err)
	}
	for _, t := range tiers {
		summary.Tiers[t.Tier]++
	}
	log.Info().Int("tiers", len(tiers)).Msg("tier stage committed")

	// Stage 4: excellence recognitions, append-and-deactivate.
	recs := excellence.Select(snapshot, runID, started)
	if err := db.WithTx(ctx, pool, func(tx pgx.Tx) error {
		return st.InsertRecognitions(ctx, tx, recs)
	}); err != nil {
		return failRun(ctx, st, log, summary, runID, StageRecognition, err)
	}
	for _, r := range recs {
		summary.Recognitions[string(r.Category)]++
	}
	log.Info().Int("recognitions", len(recs)).Msg("recognition stage committed")

	summary.Duration = time.Since(started)
	if err := st.FinishRun(ctx, pool, runID, time.Now().UTC()); err != nil {
		return summary, fmt.Errorf("finish run: %w", err)
	}
	log.Info().
		Str("run_id", runID.String()).
		Dur("duration", summary.Duration).
		Msg("analysis run completed")
	return summary, nil
}

// scoreAll fans facility scoring out over a bounded worker group. Results
// land at their input index so output order is deterministic.
func scoreAll(ctx context.Context, facilities []model.Facility, runID uuid.UUID, cfg *config.Config, now time.Time) ([]model.TransparencyScore, error) {
	scores := make([]model.TransparencyScore, len(facilities))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallelism)
	for i := range facilities {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s := scoring.Compute(&facilities[i], cfg.Markers, now)
			s.RunID = runID
			scores[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

func failRun(ctx context.Context, st *store.Store, log zerolog.Logger, summary model.AnalysisSummary, runID uuid.UUID, stage string, err error) (model.AnalysisSummary, error) {
	summary.FailedStage = stage
	summary.Duration = time.Since(summary.StartedAt)
	log.Error().Err(err).Str("stage", stage).Msg("pipeline stage failed")
	if markErr := st.FailRun(ctx, st.Pool, runID, stage, time.Now().UTC()); markErr != nil {
		log.Error().Err(markErr).Msg("failed to mark run failed")
	}
	return summary, &PipelineError{Stage: stage, Err: err}
}
