package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountabilityTier is the enforcement/support policy bucket assigned to
// a facility. Tier is a pure function of size category: small and
// under-resourced facilities get longer runways and softer enforcement
// regardless of their current transparency score.
type AccountabilityTier struct {
	FacilityID int64
	RunID      uuid.UUID

	Tier                 string // "strict" | "supportive" | "educational"
	EnforcementLevel     string // "high" | "medium" | "low"
	ComplianceWindowDays int
	SupportLevel         string // "minimal" | "partial" | "full"
	EnforcementActions   []string

	TierReason      string
	SizeFactor      bool
	ResourceFactor  bool
	CommunityFactor bool

	AssignedAt time.Time
}
