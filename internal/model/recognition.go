package model

import (
	"time"

	"github.com/google/uuid"
)

// RecognitionCategory classifies a public excellence recognition.
type RecognitionCategory string

const (
	CategorySmallHospitalExcellence  RecognitionCategory = "small_hospital_excellence"
	CategoryRuralInnovation          RecognitionCategory = "rural_innovation"
	CategoryCommunityFocus           RecognitionCategory = "community_focus"
	CategoryCriticalAccessExcellence RecognitionCategory = "critical_access_excellence"
	CategoryCommunityPartnership     RecognitionCategory = "community_partnership"
)

// AllCategories lists the recognition categories in canonical order.
var AllCategories = []RecognitionCategory{
	CategorySmallHospitalExcellence,
	CategoryRuralInnovation,
	CategoryCommunityFocus,
	CategoryCriticalAccessExcellence,
	CategoryCommunityPartnership,
}

// ExcellenceRecognition is a public-facing award record. Recognitions
// accumulate across runs: a rerun deactivates a facility's previous
// recognitions and appends a new row, preserving audit history.
type ExcellenceRecognition struct {
	ID         int64
	FacilityID int64
	RunID      uuid.UUID

	Category    RecognitionCategory
	Title       string
	Description string

	TransparencyScore    float64
	CommunityImpactScore float64
	CostEfficiencyScore  float64
	SatisfactionProxy    float64

	Featured  bool
	Spotlight bool
	Active    bool

	Achievements            []string
	CommunityImpactDetails  string
	CostOptimizationDetails string

	RecognizedAt time.Time
}
