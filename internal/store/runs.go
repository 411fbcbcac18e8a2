package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// InsertRun records the start of an analysis run.
func (s *Store) InsertRun(ctx context.Context, q Querier, runID uuid.UUID, startedAt time.Time) error {
	query, args, err := builder().
		Insert("fair.analysis_runs").
		Columns("run_id", "status", "started_at").
		Values(runID, "running", startedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert run: %w", err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert run %s: %w", runID, err)
	}
	return nil
}

// FinishRun marks a run completed.
func (s *Store) FinishRun(ctx context.Context, q Querier, runID uuid.UUID, finishedAt time.Time) error {
	return s.updateRun(ctx, q, runID, "completed", nil, finishedAt)
}

// FailRun marks a run failed and records the stage that failed.
func (s *Store) FailRun(ctx context.Context, q Querier, runID uuid.UUID, stage string, finishedAt time.Time) error {
	return s.updateRun(ctx, q, runID, "failed", &stage, finishedAt)
}

func (s *Store) updateRun(ctx context.Context, q Querier, runID uuid.UUID, status string, failedStage *string, finishedAt time.Time) error {
	query, args, err := builder().
		Update("fair.analysis_runs").
		Set("status", status).
		Set("failed_stage", failedStage).
		Set("finished_at", finishedAt).
		Where(sq.Eq{"run_id": runID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update run: %w", err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("update run %s: %w", runID, err)
	}
	return nil
}
