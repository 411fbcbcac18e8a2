package scoring

import (
	"math"
	"strings"
	"time"

	"github.com/gyeh/fairscore/internal/model"
)

// FactorWeights is the size-conditioned weight vector applied to the four
// raw factor scores. Each vector sums to 1.0; smaller facilities carry
// more weight on accessibility (easier to achieve with few resources) and
// less on accuracy and recency.
type FactorWeights struct {
	Accessibility float64
	Completeness  float64
	Accuracy      float64
	Recency       float64
}

var weightsBySize = map[model.SizeCategory]FactorWeights{
	model.SizeSmall:  {Accessibility: 0.40, Completeness: 0.30, Accuracy: 0.20, Recency: 0.10},
	model.SizeMedium: {Accessibility: 0.30, Completeness: 0.30, Accuracy: 0.25, Recency: 0.15},
	model.SizeLarge:  {Accessibility: 0.20, Completeness: 0.30, Accuracy: 0.30, Recency: 0.20},
}

// WeightsFor returns the weight vector for a size category.
func WeightsFor(size model.SizeCategory) FactorWeights {
	return weightsBySize[size]
}

// Sum returns the total of the four weights.
func (w FactorWeights) Sum() float64 {
	return w.Accessibility + w.Completeness + w.Accuracy + w.Recency
}

// CostPerBed estimates transparency compliance cost efficiency:
// (overall score x $100 per point) spread over licensed beds. Defined as
// 0 when capacity is unknown or zero.
func CostPerBed(overall float64, bedCount *int32) float64 {
	if bedCount == nil || *bedCount == 0 {
		return 0
	}
	return overall * 100 / float64(*bedCount)
}

// CommunityImpact scores participation in public-payer programs and
// service to rural or critical-access populations. Capped at 100.
func CommunityImpact(f *model.Facility, markers model.MarkerSet) float64 {
	var score float64

	if f.MedicaidParticipant {
		score += 25
	}
	if f.MedicareParticipant {
		score += 25
	}
	if containsAny(f.Region, markers.Rural) {
		score += 20
	}
	if containsAny(f.FacilityType, markers.CriticalAccess) {
		score += 30
	}

	return math.Min(score, 100)
}

// SatisfactionProxy is a heuristic stand-in for patient satisfaction
// derived from capacity band and region labeling. No survey data backs
// it; it is stored for context and never drives a decision.
func SatisfactionProxy(f *model.Facility, markers model.MarkerSet) float64 {
	score := 50.0

	if f.BedCount != nil {
		switch {
		case *f.BedCount < 50:
			score += 20
		case *f.BedCount < 200:
			score += 10
		}
	}
	if containsAny(f.Region, markers.Community) {
		score += 15
	}

	return math.Min(score, 100)
}

// Compute produces the complete score record for one facility at the
// given reference time.
func Compute(f *model.Facility, markers model.MarkerSet, now time.Time) model.TransparencyScore {
	size := SizeFor(f.BedCount)
	w := WeightsFor(size)

	acc := AccessibilityScore(f, now)
	comp := CompletenessScore(f.Procedures)
	accu := AccuracyScore(f)
	rec := RecencyScore(f.LastDataUpdate, now)

	s := model.TransparencyScore{
		FacilityID: f.ID,
		Size:       size,

		Accessibility: acc,
		Completeness:  comp,
		Accuracy:      accu,
		Recency:       rec,

		WeightedAccessibility: acc * w.Accessibility,
		WeightedCompleteness:  comp * w.Completeness,
		WeightedAccuracy:      accu * w.Accuracy,
		WeightedRecency:       rec * w.Recency,

		CommunityImpact:   CommunityImpact(f, markers),
		SatisfactionProxy: SatisfactionProxy(f, markers),

		Methodology:  model.MethodologyVersion,
		CalculatedAt: now,
	}
	s.Overall = s.WeightedAccessibility + s.WeightedCompleteness + s.WeightedAccuracy + s.WeightedRecency
	s.CostPerBed = CostPerBed(s.Overall, f.BedCount)

	return s
}

func containsAny(label string, markers []string) bool {
	if label == "" {
		return false
	}
	lower := strings.ToLower(label)
	for _, m := range markers {
		if m != "" && strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
