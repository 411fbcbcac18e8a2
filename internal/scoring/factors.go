package scoring

import (
	"math"
	"strings"
	"time"

	"github.com/gyeh/fairscore/internal/model"
)

var machineReadableExts = []string{".csv", ".json", ".xml"}

// AccessibilityScore measures how easy the facility's pricing data is to
// find and consume. +40 for a published disclosure URL, +30 more when the
// URL points at a machine-readable format, +20 for a public website, +10
// for a refresh within the last 30 days. Capped at 100.
func AccessibilityScore(f *model.Facility, now time.Time) float64 {
	var score float64

	if f.TransparencyURL != "" {
		score += 40
		lower := strings.ToLower(f.TransparencyURL)
		for _, ext := range machineReadableExts {
			if strings.Contains(lower, ext) {
				score += 30
				break
			}
		}
	}
	if f.Website != "" {
		score += 20
	}
	if f.LastDataUpdate != nil && daysSince(*f.LastDataUpdate, now) < 30 {
		score += 10
	}

	return math.Min(score, 100)
}

// CompletenessScore measures coverage of the published price data: a
// procedure-volume tier worth up to 40 points plus 15 points per distinct
// disclosed price type (cash, negotiated, medicare, medicaid), the latter
// capped at 60. A facility with no procedures scores 0.
func CompletenessScore(procs []model.ProcedureRecord) float64 {
	if len(procs) == 0 {
		return 0
	}

	var score float64
	switch n := len(procs); {
	case n > 1000:
		score += 40
	case n > 500:
		score += 30
	case n > 100:
		score += 20
	default:
		score += 10
	}

	var cash, negotiated, medicare, medicaid bool
	for _, p := range procs {
		cash = cash || p.CashPriceCents != nil
		negotiated = negotiated || p.NegotiatedMinCents != nil
		medicare = medicare || p.MedicareRateCents != nil
		medicaid = medicaid || p.MedicaidRateCents != nil
	}
	var priceTypes float64
	for _, present := range []bool{cash, negotiated, medicare, medicaid} {
		if present {
			priceTypes++
		}
	}
	score += math.Min(priceTypes*15, 60)

	return math.Min(score, 100)
}

// plausibleRatio bounds for cash price relative to the medicare rate.
const (
	ratioFloor   = 0.5
	ratioCeiling = 10.0
)

// AccuracyScore blends the externally supplied data-quality rating (60%)
// with the fraction of procedures whose cash price falls within a
// plausible band of the medicare rate (40%). Only procedures carrying
// both a positive cash price and a positive medicare rate enter the
// ratio; with no comparable procedures that half contributes 0.
func AccuracyScore(f *model.Facility) float64 {
	var score float64

	if f.DataQualityRating != nil {
		score += *f.DataQualityRating * 0.6
	}

	var plausible, comparable int
	for _, p := range f.Procedures {
		if p.CashPriceCents == nil || p.MedicareRateCents == nil {
			continue
		}
		if *p.CashPriceCents <= 0 || *p.MedicareRateCents <= 0 {
			continue
		}
		ratio := float64(*p.CashPriceCents) / float64(*p.MedicareRateCents)
		if ratio >= ratioFloor && ratio <= ratioCeiling {
			plausible++
		}
		comparable++
	}
	if comparable > 0 {
		score += float64(plausible) / float64(comparable) * 40
	}

	return math.Min(score, 100)
}

// RecencyScore is a step function of days since the last data refresh.
// An unknown refresh date scores 0.
func RecencyScore(lastUpdate *time.Time, now time.Time) float64 {
	if lastUpdate == nil {
		return 0
	}
	switch days := daysSince(*lastUpdate, now); {
	case days <= 7:
		return 100
	case days <= 30:
		return 80
	case days <= 90:
		return 60
	case days <= 180:
		return 40
	default:
		return 20
	}
}

func daysSince(t, now time.Time) int {
	return int(now.Sub(t).Hours() / 24)
}
