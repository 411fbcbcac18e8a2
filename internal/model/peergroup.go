package model

import (
	"time"

	"github.com/google/uuid"
)

// Fixed cohort names, one per size category.
const (
	CohortSmall  = "Small Community Hospitals"
	CohortMedium = "Medium Regional Hospitals"
	CohortLarge  = "Large Hospital Systems"
)

// CohortNameFor returns the comparison-cohort name for a size category.
func CohortNameFor(size SizeCategory) string {
	switch size {
	case SizeMedium:
		return CohortMedium
	case SizeLarge:
		return CohortLarge
	default:
		return CohortSmall
	}
}

// PeerGroupMembership records a facility's position within its size
// cohort for one analysis run. Cohort statistics are computed over a
// complete snapshot of that run's scores; rank 1 is the highest score.
type PeerGroupMembership struct {
	FacilityID int64
	RunID      uuid.UUID

	CohortName string
	CohortSize int

	CohortMean        float64
	CohortMedian      float64
	CohortStdDev      float64 // population standard deviation
	CohortAvgBedCount float64 // over members with a known bed count; 0 if none

	Rank       int
	Percentile float64

	// Signed member-minus-cohort-average deviations.
	ScoreVsCohort           float64
	CostEfficiencyVsCohort  float64
	CommunityImpactVsCohort float64

	CalculatedAt time.Time
}
