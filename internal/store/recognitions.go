package store

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/gyeh/fairscore/internal/model"
)

var recognitionColumns = []string{
	"id", "facility_id", "run_id", "category", "title", "description",
	"transparency_score", "community_impact_score", "cost_efficiency_score", "satisfaction_proxy",
	"is_featured", "is_spotlight", "is_active",
	"achievements", "community_impact_details", "cost_optimization_details",
	"recognized_at",
}

// InsertRecognitions appends one run's recognitions. Prior active
// recognitions for the affected facilities are deactivated first so
// history is preserved but only the latest run's records stay active.
// Call inside a transaction.
func (s *Store) InsertRecognitions(ctx context.Context, tx pgx.Tx, recs []model.ExcellenceRecognition) error {
	if len(recs) == 0 {
		return nil
	}

	facilityIDs := make([]int64, len(recs))
	for i, r := range recs {
		facilityIDs[i] = r.FacilityID
	}

	deactivate, args, err := builder().
		Update("fair.excellence_recognitions").
		Set("is_active", false).
		Where(sq.Eq{"facility_id": facilityIDs, "is_active": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build deactivate recognitions: %w", err)
	}
	if _, err := tx.Exec(ctx, deactivate, args...); err != nil {
		return fmt.Errorf("deactivate recognitions: %w", err)
	}

	ins := builder().
		Insert("fair.excellence_recognitions").
		Columns(
			"facility_id", "run_id", "category", "title", "description",
			"transparency_score", "community_impact_score", "cost_efficiency_score", "satisfaction_proxy",
			"is_featured", "is_spotlight", "is_active",
			"achievements", "community_impact_details", "cost_optimization_details",
			"recognized_at",
		)
	for _, r := range recs {
		achievements, err := json.Marshal(r.Achievements)
		if err != nil {
			return fmt.Errorf("marshal achievements: %w", err)
		}
		ins = ins.Values(
			r.FacilityID, r.RunID, string(r.Category), r.Title, r.Description,
			r.TransparencyScore, r.CommunityImpactScore, r.CostEfficiencyScore, r.SatisfactionProxy,
			r.Featured, r.Spotlight, r.Active,
			achievements, r.CommunityImpactDetails, r.CostOptimizationDetails,
			r.RecognizedAt,
		)
	}

	query, args, err := ins.ToSql()
	if err != nil {
		return fmt.Errorf("build insert recognitions: %w", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert recognitions: %w", err)
	}
	return nil
}

// FeaturedRecognitions returns active featured recognitions, best score
// first, optionally filtered by category.
func (s *Store) FeaturedRecognitions(ctx context.Context, q Querier, category string, limit int) ([]model.ExcellenceRecognition, error) {
	b := builder().
		Select(recognitionColumns...).
		From("fair.excellence_recognitions").
		Where(sq.Eq{"is_active": true, "is_featured": true}).
		OrderBy("transparency_score DESC", "facility_id")
	if category != "" {
		b = b.Where(sq.Eq{"category": category})
	}
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	return s.queryRecognitions(ctx, q, b)
}

// SpotlightRecognitions returns active spotlight recognitions, best
// score first.
func (s *Store) SpotlightRecognitions(ctx context.Context, q Querier, limit int) ([]model.ExcellenceRecognition, error) {
	b := builder().
		Select(recognitionColumns...).
		From("fair.excellence_recognitions").
		Where(sq.Eq{"is_active": true, "is_spotlight": true}).
		OrderBy("transparency_score DESC", "facility_id")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	return s.queryRecognitions(ctx, q, b)
}

// RecognitionCounts returns the number of active recognitions per
// category.
func (s *Store) RecognitionCounts(ctx context.Context, q Querier) (map[string]int, error) {
	query, args, err := builder().
		Select("category", "COUNT(*)").
		From("fair.excellence_recognitions").
		Where(sq.Eq{"is_active": true}).
		GroupBy("category").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recognition counts: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("recognition counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("scan recognition count: %w", err)
		}
		counts[category] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recognition counts: %w", err)
	}
	return counts, nil
}

func (s *Store) queryRecognitions(ctx context.Context, q Querier, b sq.SelectBuilder) ([]model.ExcellenceRecognition, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recognitions query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recognitions: %w", err)
	}
	defer rows.Close()

	var recs []model.ExcellenceRecognition
	for rows.Next() {
		var r model.ExcellenceRecognition
		var category string
		var achievements []byte
		if err := rows.Scan(
			&r.ID, &r.FacilityID, &r.RunID, &category, &r.Title, &r.Description,
			&r.TransparencyScore, &r.CommunityImpactScore, &r.CostEfficiencyScore, &r.SatisfactionProxy,
			&r.Featured, &r.Spotlight, &r.Active,
			&achievements, &r.CommunityImpactDetails, &r.CostOptimizationDetails,
			&r.RecognizedAt,
		); err != nil {
			return nil, fmt.Errorf("scan recognition: %w", err)
		}
		r.Category = model.RecognitionCategory(category)
		if err := json.Unmarshal(achievements, &r.Achievements); err != nil {
			return nil, fmt.Errorf("unmarshal achievements: %w", err)
		}
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recognitions: %w", err)
	}
	return recs, nil
}
