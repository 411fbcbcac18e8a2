package store

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/gyeh/fairscore/internal/model"
)

var tierColumns = []string{
	"facility_id", "run_id", "tier", "enforcement_level",
	"compliance_window_days", "support_level", "enforcement_actions",
	"tier_reason", "size_factor", "resource_factor", "community_factor",
	"assigned_at",
}

// ReplaceTiers wholesale-replaces the accountability tier table with one
// run's output. Call inside a transaction.
func (s *Store) ReplaceTiers(ctx context.Context, tx pgx.Tx, tiers []model.AccountabilityTier) error {
	if _, err := tx.Exec(ctx, "DELETE FROM fair.accountability_tiers"); err != nil {
		return fmt.Errorf("clear accountability tiers: %w", err)
	}

	rows := make([][]any, len(tiers))
	for i, t := range tiers {
		actions, err := json.Marshal(t.EnforcementActions)
		if err != nil {
			return fmt.Errorf("marshal enforcement actions: %w", err)
		}
		rows[i] = []any{
			t.FacilityID, t.RunID, t.Tier, t.EnforcementLevel,
			t.ComplianceWindowDays, t.SupportLevel, actions,
			t.TierReason, t.SizeFactor, t.ResourceFactor, t.CommunityFactor,
			t.AssignedAt,
		}
	}

	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"fair", "accountability_tiers"},
		tierColumns,
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy accountability tiers: %w", err)
	}
	return nil
}

// TiersByName returns every facility assigned to the named tier,
// ordered by facility ID.
func (s *Store) TiersByName(ctx context.Context, q Querier, tier string) ([]model.AccountabilityTier, error) {
	query, args, err := builder().
		Select(tierColumns...).
		From("fair.accountability_tiers").
		Where(sq.Eq{"tier": tier}).
		OrderBy("facility_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build tiers by name: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("tiers %q: %w", tier, err)
	}
	defer rows.Close()

	var tiers []model.AccountabilityTier
	for rows.Next() {
		var t model.AccountabilityTier
		var actions []byte
		if err := rows.Scan(
			&t.FacilityID, &t.RunID, &t.Tier, &t.EnforcementLevel,
			&t.ComplianceWindowDays, &t.SupportLevel, &actions,
			&t.TierReason, &t.SizeFactor, &t.ResourceFactor, &t.CommunityFactor,
			&t.AssignedAt,
		); err != nil {
			return nil, fmt.Errorf("scan tier: %w", err)
		}
		if err := json.Unmarshal(actions, &t.EnforcementActions); err != nil {
			return nil, fmt.Errorf("unmarshal enforcement actions: %w", err)
		}
		tiers = append(tiers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tiers: %w", err)
	}
	return tiers, nil
}

// TierCounts returns the number of facilities per tier.
func (s *Store) TierCounts(ctx context.Context, q Querier) (map[string]int, error) {
	query, args, err := builder().
		Select("tier", "COUNT(*)").
		From("fair.accountability_tiers").
		GroupBy("tier").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build tier counts: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("tier counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var tier string
		var n int
		if err := rows.Scan(&tier, &n); err != nil {
			return nil, fmt.Errorf("scan tier count: %w", err)
		}
		counts[tier] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tier counts: %w", err)
	}
	return counts, nil
}
