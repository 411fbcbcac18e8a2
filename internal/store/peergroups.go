package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/gyeh/fairscore/internal/model"
)

var membershipColumns = []string{
	"facility_id", "run_id", "cohort_name", "cohort_size",
	"cohort_mean", "cohort_median", "cohort_stddev", "cohort_avg_bed_count",
	"rank", "percentile",
	"score_vs_cohort", "cost_efficiency_vs_cohort", "community_impact_vs_cohort",
	"calculated_at",
}

// ReplaceMemberships wholesale-replaces the peer group table with one
// run's output. Call inside a transaction.
func (s *Store) ReplaceMemberships(ctx context.Context, tx pgx.Tx, memberships []model.PeerGroupMembership) error {
	if _, err := tx.Exec(ctx, "DELETE FROM fair.peer_group_memberships"); err != nil {
		return fmt.Errorf("clear peer group memberships: %w", err)
	}

	rows := make([][]any, len(memberships))
	for i, m := range memberships {
		rows[i] = []any{
			m.FacilityID, m.RunID, m.CohortName, m.CohortSize,
			m.CohortMean, m.CohortMedian, m.CohortStdDev, m.CohortAvgBedCount,
			m.Rank, m.Percentile,
			m.ScoreVsCohort, m.CostEfficiencyVsCohort, m.CommunityImpactVsCohort,
			m.CalculatedAt,
		}
	}

	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"fair", "peer_group_memberships"},
		membershipColumns,
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy peer group memberships: %w", err)
	}
	return nil
}

// MembershipByFacility returns one facility's cohort membership.
func (s *Store) MembershipByFacility(ctx context.Context, q Querier, facilityID int64) (model.PeerGroupMembership, error) {
	query, args, err := builder().
		Select(membershipColumns...).
		From("fair.peer_group_memberships").
		Where(sq.Eq{"facility_id": facilityID}).
		ToSql()
	if err != nil {
		return model.PeerGroupMembership{}, fmt.Errorf("build membership by facility: %w", err)
	}

	var m model.PeerGroupMembership
	if err := scanMembership(q.QueryRow(ctx, query, args...), &m); err != nil {
		return model.PeerGroupMembership{}, fmt.Errorf("membership for facility %d: %w", facilityID, err)
	}
	return m, nil
}

// MembershipsByCohort returns a cohort's members in rank order.
func (s *Store) MembershipsByCohort(ctx context.Context, q Querier, cohortName string) ([]model.PeerGroupMembership, error) {
	query, args, err := builder().
		Select(membershipColumns...).
		From("fair.peer_group_memberships").
		Where(sq.Eq{"cohort_name": cohortName}).
		OrderBy("rank").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build memberships by cohort: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("memberships for cohort %q: %w", cohortName, err)
	}
	defer rows.Close()

	var memberships []model.PeerGroupMembership
	for rows.Next() {
		var m model.PeerGroupMembership
		if err := scanMembership(rows, &m); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate memberships: %w", err)
	}
	return memberships, nil
}

func scanMembership(row pgx.Row, m *model.PeerGroupMembership) error {
	return row.Scan(
		&m.FacilityID, &m.RunID, &m.CohortName, &m.CohortSize,
		&m.CohortMean, &m.CohortMedian, &m.CohortStdDev, &m.CohortAvgBedCount,
		&m.Rank, &m.Percentile,
		&m.ScoreVsCohort, &m.CostEfficiencyVsCohort, &m.CommunityImpactVsCohort,
		&m.CalculatedAt,
	)
}
