package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/gyeh/fairscore/internal/model"
)

// UpsertFacility inserts or updates a facility keyed by name and
// returns its ID.
func (s *Store) UpsertFacility(ctx context.Context, q Querier, f model.Facility) (int64, error) {
	query, args, err := builder().
		Insert("fair.facilities").
		Columns(
			"name", "bed_count", "facility_type", "region",
			"website", "transparency_url",
			"medicare_participant", "medicaid_participant",
			"data_quality_rating", "last_data_update",
		).
		Values(
			f.Name, f.BedCount, f.FacilityType, f.Region,
			f.Website, f.TransparencyURL,
			f.MedicareParticipant, f.MedicaidParticipant,
			f.DataQualityRating, f.LastDataUpdate,
		).
		Suffix(`ON CONFLICT (name) DO UPDATE SET
			bed_count = EXCLUDED.bed_count,
			facility_type = EXCLUDED.facility_type,
			region = EXCLUDED.region,
			website = EXCLUDED.website,
			transparency_url = EXCLUDED.transparency_url,
			medicare_participant = EXCLUDED.medicare_participant,
			medicaid_participant = EXCLUDED.medicaid_participant,
			data_quality_rating = EXCLUDED.data_quality_rating,
			last_data_update = EXCLUDED.last_data_update,
			updated_at = now()
		RETURNING id`).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build upsert facility: %w", err)
	}

	var id int64
	if err := q.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("upsert facility %q: %w", f.Name, err)
	}
	return id, nil
}

// DeleteProcedures removes all procedure records for a facility, used
// before a fresh COPY of the facility's feed rows.
func (s *Store) DeleteProcedures(ctx context.Context, q Querier, facilityID int64) error {
	query, args, err := builder().
		Delete("fair.procedure_records").
		Where(sq.Eq{"facility_id": facilityID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete procedures: %w", err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete procedures for facility %d: %w", facilityID, err)
	}
	return nil
}

// ListFacilities returns every facility with its procedure records
// attached, ordered by facility ID.
func (s *Store) ListFacilities(ctx context.Context, q Querier) ([]model.Facility, error) {
	query, args, err := builder().
		Select(
			"id", "name", "bed_count", "facility_type", "region",
			"website", "transparency_url",
			"medicare_participant", "medicaid_participant",
			"data_quality_rating", "last_data_update",
		).
		From("fair.facilities").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list facilities: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list facilities: %w", err)
	}
	defer rows.Close()

	var facilities []model.Facility
	index := make(map[int64]int)
	for rows.Next() {
		var f model.Facility
		if err := rows.Scan(
			&f.ID, &f.Name, &f.BedCount, &f.FacilityType, &f.Region,
			&f.Website, &f.TransparencyURL,
			&f.MedicareParticipant, &f.MedicaidParticipant,
			&f.DataQualityRating, &f.LastDataUpdate,
		); err != nil {
			return nil, fmt.Errorf("scan facility: %w", err)
		}
		index[f.ID] = len(facilities)
		facilities = append(facilities, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate facilities: %w", err)
	}

	if err := s.attachProcedures(ctx, q, facilities, index); err != nil {
		return nil, err
	}
	return facilities, nil
}

func (s *Store) attachProcedures(ctx context.Context, q Querier, facilities []model.Facility, index map[int64]int) error {
	if len(facilities) == 0 {
		return nil
	}

	query, args, err := builder().
		Select(
			"facility_id", "code", "name",
			"cash_price_cents", "negotiated_min_cents", "negotiated_max_cents",
			"negotiated_median_cents", "medicare_rate_cents", "medicaid_rate_cents",
		).
		From("fair.procedure_records").
		OrderBy("facility_id", "id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build list procedures: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("list procedures: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var facilityID int64
		var p model.ProcedureRecord
		if err := rows.Scan(
			&facilityID, &p.Code, &p.Name,
			&p.CashPriceCents, &p.NegotiatedMinCents, &p.NegotiatedMaxCents,
			&p.NegotiatedMedianCents, &p.MedicareRateCents, &p.MedicaidRateCents,
		); err != nil {
			return fmt.Errorf("scan procedure: %w", err)
		}
		if i, ok := index[facilityID]; ok {
			facilities[i].Procedures = append(facilities[i].Procedures, p)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate procedures: %w", err)
	}
	return nil
}
