// Package peergroup partitions scored facilities into size cohorts and
// computes each cohort's statistics and every member's position within
// it. Build must be given a complete snapshot of one run's scores:
// mixing scores from different runs breaks the cohort invariants.
package peergroup

import (
	"sort"
	"time"

	"github.com/gyeh/fairscore/internal/model"
)

// Build partitions scores into the three fixed cohorts and computes
// mean/median/population-stddev, rank, percentile, and deviation metrics
// for every member. bedCounts maps facility ID to licensed bed count and
// may omit facilities whose capacity is unknown. Memberships are returned
// in rank order within each cohort, cohorts in small/medium/large order.
func Build(scores []model.TransparencyScore, bedCounts map[int64]int32, now time.Time) []model.PeerGroupMembership {
	bySize := make(map[model.SizeCategory][]model.TransparencyScore)
	for _, s := range scores {
		bySize[s.Size] = append(bySize[s.Size], s)
	}

	var memberships []model.PeerGroupMembership
	for _, size := range model.AllSizes {
		members := bySize[size]
		if len(members) == 0 {
			continue
		}
		memberships = append(memberships, buildCohort(model.CohortNameFor(size), members, bedCounts, now)...)
	}
	return memberships
}

func buildCohort(name string, members []model.TransparencyScore, bedCounts map[int64]int32, now time.Time) []model.PeerGroupMembership {
	// Rank order: descending overall score, ties broken by ascending
	// facility ID so reruns are deterministic regardless of input order.
	sorted := make([]model.TransparencyScore, len(members))
	copy(sorted, members)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Overall != sorted[j].Overall {
			return sorted[i].Overall > sorted[j].Overall
		}
		return sorted[i].FacilityID < sorted[j].FacilityID
	})

	overalls := make([]float64, len(sorted))
	costs := make([]float64, len(sorted))
	impacts := make([]float64, len(sorted))
	var bedSum float64
	var bedN int
	for i, s := range sorted {
		overalls[i] = s.Overall
		costs[i] = s.CostPerBed
		impacts[i] = s.CommunityImpact
		if beds, ok := bedCounts[s.FacilityID]; ok {
			bedSum += float64(beds)
			bedN++
		}
	}

	cohortMean := mean(overalls)
	cohortMedian := median(overalls)
	cohortStdDev := stdDevPop(overalls)
	avgCost := mean(costs)
	avgImpact := mean(impacts)
	avgBeds := 0.0
	if bedN > 0 {
		avgBeds = bedSum / float64(bedN)
	}

	n := len(sorted)
	out := make([]model.PeerGroupMembership, n)
	for i, s := range sorted {
		rank := i + 1
		out[i] = model.PeerGroupMembership{
			FacilityID: s.FacilityID,
			RunID:      s.RunID,

			CohortName: name,
			CohortSize: n,

			CohortMean:        cohortMean,
			CohortMedian:      cohortMedian,
			CohortStdDev:      cohortStdDev,
			CohortAvgBedCount: avgBeds,

			Rank: rank,
			// Rank 1 maps to the 100th percentile; the lowest rank
			// lands at 100/n rather than 0 so every member holds a
			// positive position.
			Percentile: float64(n-rank+1) / float64(n) * 100,

			ScoreVsCohort:           s.Overall - cohortMean,
			CostEfficiencyVsCohort:  s.CostPerBed - avgCost,
			CommunityImpactVsCohort: s.CommunityImpact - avgImpact,

			CalculatedAt: now,
		}
	}
	return out
}
