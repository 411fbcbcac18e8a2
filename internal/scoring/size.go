// Package scoring computes per-facility transparency scores: the size
// classification, the four factor scores, and the size-weighted
// aggregation. Everything here is pure and carries no cross-facility
// state, so callers may score facilities concurrently.
package scoring

import "github.com/gyeh/fairscore/internal/model"

// SizeFor maps licensed bed capacity to a size category. Unknown capacity
// defaults to small so that facilities with incomplete records are not
// held to large-system policy.
func SizeFor(bedCount *int32) model.SizeCategory {
	if bedCount == nil {
		return model.SizeSmall
	}
	switch {
	case *bedCount < 50:
		return model.SizeSmall
	case *bedCount < 200:
		return model.SizeMedium
	default:
		return model.SizeLarge
	}
}
