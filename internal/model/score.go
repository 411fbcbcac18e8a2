package model

import (
	"time"

	"github.com/google/uuid"
)

// MethodologyVersion tags every score row with the scoring algorithm
// revision that produced it.
const MethodologyVersion = "v1.0"

// TransparencyScore is the one-per-facility scoring record. It is created
// wholesale on each analysis run and never partially updated; a rerun
// replaces the previous run's rows entirely.
type TransparencyScore struct {
	FacilityID int64
	RunID      uuid.UUID
	Size       SizeCategory

	// Raw factor scores, each in [0,100].
	Accessibility float64
	Completeness  float64
	Accuracy      float64
	Recency       float64

	// Size-weighted factor scores. Overall is their sum and stays in
	// [0,100] because the weights per size sum to 1.0.
	WeightedAccessibility float64
	WeightedCompleteness  float64
	WeightedAccuracy      float64
	WeightedRecency       float64
	Overall               float64

	// Auxiliary continuous metrics.
	CostPerBed      float64
	CommunityImpact float64

	// SatisfactionProxy is a capacity/region heuristic, not a measured
	// survey value. It is stored for context and feeds no decision.
	SatisfactionProxy float64

	Methodology  string
	CalculatedAt time.Time
}
