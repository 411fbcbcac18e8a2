// Package excellence selects public recognition candidates from a run's
// completed scores. It never re-derives scores: the selector reads the
// TransparencyScore rows produced earlier in the same run.
package excellence

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gyeh/fairscore/internal/model"
)

const (
	// EligibilityThreshold is the inclusive overall-score floor for any
	// recognition.
	EligibilityThreshold = 80.0
	// SpotlightThreshold is the inclusive overall-score floor for the
	// spotlight flag.
	SpotlightThreshold = 90.0

	// Community-impact floor separating small-hospital excellence from
	// the community-focus category.
	communityImpactFloor = 70.0
)

// Classify picks the recognition category and title for an eligible
// facility. Rules are evaluated in order: small facilities split on
// community impact, medium and large each map to one category.
func Classify(size model.SizeCategory, communityImpact float64) (model.RecognitionCategory, string) {
	switch size {
	case model.SizeSmall:
		if communityImpact >= communityImpactFloor {
			return model.CategorySmallHospitalExcellence, "Small Hospital Transparency Leader"
		}
		return model.CategoryCommunityFocus, "Community Healthcare Champion"
	case model.SizeMedium:
		return model.CategoryRuralInnovation, "Regional Healthcare Innovation Leader"
	default:
		return model.CategoryCriticalAccessExcellence, "Large Hospital Transparency Excellence"
	}
}

// Select returns recognition records for every score at or above the
// eligibility threshold. Every selected candidate is featured; spotlight
// requires the higher threshold.
func Select(scores []model.TransparencyScore, runID uuid.UUID, now time.Time) []model.ExcellenceRecognition {
	var recs []model.ExcellenceRecognition
	for _, s := range scores {
		if s.Overall < EligibilityThreshold {
			continue
		}
		category, title := Classify(s.Size, s.CommunityImpact)

		recs = append(recs, model.ExcellenceRecognition{
			FacilityID: s.FacilityID,
			RunID:      runID,

			Category:    category,
			Title:       title,
			Description: "Recognized for outstanding transparency practices and community impact",

			TransparencyScore:    s.Overall,
			CommunityImpactScore: s.CommunityImpact,
			CostEfficiencyScore:  s.CostPerBed,
			SatisfactionProxy:    s.SatisfactionProxy,

			Featured:  true,
			Spotlight: s.Overall >= SpotlightThreshold,
			Active:    true,

			Achievements: []string{
				fmt.Sprintf("Transparency Score: %.1f/100", s.Overall),
				fmt.Sprintf("Community Impact: %.1f/100", s.CommunityImpact),
				fmt.Sprintf("Cost Effectiveness: %.1f per bed", s.CostPerBed),
			},
			CommunityImpactDetails:  "Demonstrates exceptional commitment to community healthcare and transparency",
			CostOptimizationDetails: fmt.Sprintf("Achieves high transparency compliance at %.1f cost per bed", s.CostPerBed),

			RecognizedAt: now,
		})
	}
	return recs
}
