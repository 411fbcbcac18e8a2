package model

import "time"

// SizeCategory buckets facilities by licensed bed capacity. The category
// drives factor weighting, cohort membership, and accountability policy.
type SizeCategory string

const (
	SizeSmall  SizeCategory = "small"  // <50 beds, or capacity unknown
	SizeMedium SizeCategory = "medium" // 50-199 beds
	SizeLarge  SizeCategory = "large"  // 200+ beds
)

// AllSizes lists the size categories in ascending capacity order.
var AllSizes = []SizeCategory{SizeSmall, SizeMedium, SizeLarge}

// Facility is the ingestion-owned entity the scoring pipeline reads.
// The pipeline never mutates facilities or their procedure records.
type Facility struct {
	ID                  int64
	Name                string
	BedCount            *int32
	FacilityType        string
	Region              string
	Website             string
	TransparencyURL     string
	MedicareParticipant bool
	MedicaidParticipant bool
	DataQualityRating   *float64
	LastDataUpdate      *time.Time

	Procedures []ProcedureRecord
}

// ProcedureRecord is one published procedure price line. Money values are
// integer cents; nil means the facility did not disclose that price type.
type ProcedureRecord struct {
	ID         int64
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

// MarkerSet holds the lowercase substrings used to detect rural regions,
// community-focused regions, and critical-access facility types.
type MarkerSet struct {
	Rural          []string `yaml:"rural"`
	Community      []string `yaml:"community"`
	CriticalAccess []string `yaml:"critical_access"`
}

// DefaultMarkers are the canonical marker terms, used when no config file
// overrides them.
var DefaultMarkers = MarkerSet{
	Rural:          []string{"rural"},
	Community:      []string{"community"},
	CriticalAccess: []string{"critical access"},
}
