package model

// FacilityFeedRow mirrors the Parquet schema of the structured facility
// feed: one row per procedure price line, with the owning facility's
// metadata repeated on every row. Rows without a procedure code register
// the facility alone. Money fields are float64 dollars in the feed and
// become integer cents on load.
type FacilityFeedRow struct {
	FacilityName        string   `parquet:"facility_name"`
	FacilityType        *string  `parquet:"facility_type,optional"`
	Region              *string  `parquet:"region,optional"`
	Website             *string  `parquet:"website,optional"`
	TransparencyURL     *string  `parquet:"transparency_url,optional"`
	BedCount            *int32   `parquet:"bed_count,optional"`
	MedicareParticipant bool     `parquet:"medicare_participant"`
	MedicaidParticipant bool     `parquet:"medicaid_participant"`
	DataQualityRating   *float64 `parquet:"data_quality_rating,optional"`
	LastDataUpdate      *string  `parquet:"last_data_update,optional"`

	ProcedureCode *string `parquet:"procedure_code,optional"`
	ProcedureName *string `parquet:"procedure_name,optional"`

	CashPrice        *float64 `parquet:"cash_price,optional"`
	NegotiatedMin    *float64 `parquet:"negotiated_rate_min,optional"`
	NegotiatedMax    *float64 `parquet:"negotiated_rate_max,optional"`
	NegotiatedMedian *float64 `parquet:"negotiated_rate_median,optional"`
	MedicareRate     *float64 `parquet:"medicare_rate,optional"`
	MedicaidRate     *float64 `parquet:"medicaid_rate,optional"`
}

// ProcedureCopyRow is the DB-ready procedure line for COPY into
// fair.procedure_records.
type ProcedureCopyRow struct {
	FacilityID int64
	Code       string
	Name       string

	CashPriceCents        *int64
	NegotiatedMinCents    *int64
	NegotiatedMaxCents    *int64
	NegotiatedMedianCents *int64
	MedicareRateCents     *int64
	MedicaidRateCents     *int64
}

// ProcedureColumns returns the ordered column names for COPY into
// fair.procedure_records.
func ProcedureColumns() []string {
	return []string{
		"facility_id",
		"code",
		"name",
		"cash_price_cents",
		"negotiated_min_cents",
		"negotiated_max_cents",
		"negotiated_median_cents",
		"medicare_rate_cents",
		"medicaid_rate_cents",
	}
}

// CopyValues returns the row values in ProcedureColumns order.
func (r *ProcedureCopyRow) CopyValues() []any {
	return []any{
		r.FacilityID,
		r.Code,
		r.Name,
		r.CashPriceCents,
		r.NegotiatedMinCents,
		r.NegotiatedMaxCents,
		r.NegotiatedMedianCents,
		r.MedicareRateCents,
		r.MedicaidRateCents,
	}
}
