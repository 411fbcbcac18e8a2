// Package tier assigns the accountability policy bucket. Assignment is
// policy, not performance: it consults only the size category, never the
// transparency score, so small and under-resourced facilities keep their
// longer compliance runways however they currently score.
package tier

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gyeh/fairscore/internal/model"
)

// Assignment is the enforcement policy tuple for one size category.
type Assignment struct {
	Tier                 string
	EnforcementLevel     string
	ComplianceWindowDays int
	SupportLevel         string
	Actions              []string
}

var bySize = map[model.SizeCategory]Assignment{
	model.SizeLarge: {
		Tier:                 "strict",
		EnforcementLevel:     "high",
		ComplianceWindowDays: 30,
		SupportLevel:         "minimal",
		Actions: []string{
			"public_compliance_monitoring",
			"regulatory_complaint_filing",
			"media_pressure_campaigns",
			"legal_action_support",
		},
	},
	model.SizeMedium: {
		Tier:                 "supportive",
		EnforcementLevel:     "medium",
		ComplianceWindowDays: 60,
		SupportLevel:         "partial",
		Actions: []string{
			"compliance_assistance",
			"gradual_improvement_timelines",
			"partnership_opportunities",
			"positive_reinforcement",
		},
	},
	model.SizeSmall: {
		Tier:                 "educational",
		EnforcementLevel:     "low",
		ComplianceWindowDays: 90,
		SupportLevel:         "full",
		Actions: []string{
			"educational_resources",
			"flexible_compliance_timelines",
			"community_partnership_promotion",
			"achievement_celebration",
		},
	},
}

// ForSize returns the policy tuple for a size category. The actions
// slice is a copy; callers may not mutate the menu.
func ForSize(size model.SizeCategory) Assignment {
	a := bySize[size]
	actions := make([]string, len(a.Actions))
	copy(actions, a.Actions)
	a.Actions = actions
	return a
}

// Assign builds the accountability tier record for one facility.
func Assign(facilityID int64, runID uuid.UUID, size model.SizeCategory, now time.Time) model.AccountabilityTier {
	a := ForSize(size)
	return model.AccountabilityTier{
		FacilityID: facilityID,
		RunID:      runID,

		Tier:                 a.Tier,
		EnforcementLevel:     a.EnforcementLevel,
		ComplianceWindowDays: a.ComplianceWindowDays,
		SupportLevel:         a.SupportLevel,
		EnforcementActions:   a.Actions,

		TierReason:      fmt.Sprintf("assigned based on facility size (%s) and resources", size),
		SizeFactor:      true,
		ResourceFactor:  true,
		CommunityFactor: size == model.SizeSmall,

		AssignedAt: now,
	}
}
