package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gyeh/fairscore/internal/model"
)

var scoreColumns = []string{
	"facility_id", "run_id", "size_category",
	"accessibility_score", "completeness_score", "accuracy_score", "recency_score",
	"weighted_accessibility", "weighted_completeness", "weighted_accuracy", "weighted_recency",
	"overall_score", "cost_per_bed", "community_impact", "satisfaction_proxy",
	"methodology", "calculated_at",
}

// ReplaceScores wholesale-replaces the transparency score table with one
// run's output. Call inside a transaction.
func (s *Store) ReplaceScores(ctx context.Context, tx pgx.Tx, scores []model.TransparencyScore) error {
	if _, err := tx.Exec(ctx, "DELETE FROM fair.transparency_scores"); err != nil {
		return fmt.Errorf("clear transparency scores: %w", err)
	}

	rows := make([][]any, len(scores))
	for i, sc := range scores {
		rows[i] = []any{
			sc.FacilityID, sc.RunID, string(sc.Size),
			sc.Accessibility, sc.Completeness, sc.Accuracy, sc.Recency,
			sc.WeightedAccessibility, sc.WeightedCompleteness, sc.WeightedAccuracy, sc.WeightedRecency,
			sc.Overall, sc.CostPerBed, sc.CommunityImpact, sc.SatisfactionProxy,
			sc.Methodology, sc.CalculatedAt,
		}
	}

	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"fair", "transparency_scores"},
		scoreColumns,
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy transparency scores: %w", err)
	}
	return nil
}

// ListScoresByRun returns one run's scores ordered by facility ID.
func (s *Store) ListScoresByRun(ctx context.Context, q Querier, runID uuid.UUID) ([]model.TransparencyScore, error) {
	query, args, err := builder().
		Select(scoreColumns...).
		From("fair.transparency_scores").
		Where(sq.Eq{"run_id": runID}).
		OrderBy("facility_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list scores: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()

	var scores []model.TransparencyScore
	for rows.Next() {
		var sc model.TransparencyScore
		var size string
		if err := rows.Scan(
			&sc.FacilityID, &sc.RunID, &size,
			&sc.Accessibility, &sc.Completeness, &sc.Accuracy, &sc.Recency,
			&sc.WeightedAccessibility, &sc.WeightedCompleteness, &sc.WeightedAccuracy, &sc.WeightedRecency,
			&sc.Overall, &sc.CostPerBed, &sc.CommunityImpact, &sc.SatisfactionProxy,
			&sc.Methodology, &sc.CalculatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		sc.Size = model.SizeCategory(size)
		scores = append(scores, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scores: %w", err)
	}
	return scores, nil
}
