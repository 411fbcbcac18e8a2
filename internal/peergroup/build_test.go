package peergroup

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gyeh/fairscore/internal/model"
)

var buildNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func score(facilityID int64, size model.SizeCategory, overall float64) model.TransparencyScore {
	return model.TransparencyScore{
		FacilityID:      facilityID,
		Size:            size,
		Overall:         overall,
		CostPerBed:      overall * 2,
		CommunityImpact: overall / 2,
	}
}

func TestBuild_PartitionsBySize(t *testing.T) {
	scores := []model.TransparencyScore{
		score(1, model.SizeSmall, 80),
		score(2, model.SizeLarge, 70),
		score(3, model.SizeSmall, 90),
		score(4, model.SizeMedium, 60),
	}

	memberships := Build(scores, nil, buildNow)
	if len(memberships) != 4 {
		t.Fatalf("got %d memberships, want 4", len(memberships))
	}

	// Cohorts come out in small/medium/large order, members in rank order.
	wantCohorts := []string{
		model.CohortSmall, model.CohortSmall,
		model.CohortMedium, model.CohortLarge,
	}
	wantFacilities := []int64{3, 1, 4, 2}
	for i, m := range memberships {
		if m.CohortName != wantCohorts[i] {
			t.Errorf("membership %d cohort = %q, want %q", i, m.CohortName, wantCohorts[i])
		}
		if m.FacilityID != wantFacilities[i] {
			t.Errorf("membership %d facility = %d, want %d", i, m.FacilityID, wantFacilities[i])
		}
	}
}

func TestBuild_EmptyCohortsSkipped(t *testing.T) {
	scores := []model.TransparencyScore{score(1, model.SizeLarge, 70)}
	memberships := Build(scores, nil, buildNow)
	if len(memberships) != 1 {
		t.Fatalf("got %d memberships, want 1", len(memberships))
	}
	if memberships[0].CohortName != model.CohortLarge {
		t.Errorf("cohort = %q, want %q", memberships[0].CohortName, model.CohortLarge)
	}
}

func TestBuild_RankAndPercentile(t *testing.T) {
	scores := []model.TransparencyScore{
		score(1, model.SizeSmall, 60),
		score(2, model.SizeSmall, 90),
		score(3, model.SizeSmall, 75),
		score(4, model.SizeSmall, 85),
	}

	memberships := Build(scores, nil, buildNow)
	if len(memberships) != 4 {
		t.Fatalf("got %d memberships, want 4", len(memberships))
	}

	wantOrder := []int64{2, 4, 3, 1}
	wantPercentile := []float64{100, 75, 50, 25}
	for i, m := range memberships {
		if m.FacilityID != wantOrder[i] {
			t.Errorf("rank %d facility = %d, want %d", i+1, m.FacilityID, wantOrder[i])
		}
		if m.Rank != i+1 {
			t.Errorf("facility %d rank = %d, want %d", m.FacilityID, m.Rank, i+1)
		}
		if !almostEqual(m.Percentile, wantPercentile[i]) {
			t.Errorf("facility %d percentile = %v, want %v", m.FacilityID, m.Percentile, wantPercentile[i])
		}
		if m.CohortSize != 4 {
			t.Errorf("facility %d cohort size = %d, want 4", m.FacilityID, m.CohortSize)
		}
	}
}

func TestBuild_TieBreakByFacilityID(t *testing.T) {
	scores := []model.TransparencyScore{
		score(9, model.SizeSmall, 80),
		score(2, model.SizeSmall, 80),
		score(5, model.SizeSmall, 80),
	}

	memberships := Build(scores, nil, buildNow)
	wantOrder := []int64{2, 5, 9}
	for i, m := range memberships {
		if m.FacilityID != wantOrder[i] {
			t.Errorf("rank %d facility = %d, want %d", i+1, m.FacilityID, wantOrder[i])
		}
	}
}

func TestBuild_DeterministicAcrossInputOrder(t *testing.T) {
	scores := []model.TransparencyScore{
		score(1, model.SizeSmall, 70),
		score(2, model.SizeSmall, 70),
		score(3, model.SizeSmall, 95),
	}
	reversed := []model.TransparencyScore{scores[2], scores[1], scores[0]}

	a := Build(scores, nil, buildNow)
	b := Build(reversed, nil, buildNow)
	for i := range a {
		if a[i].FacilityID != b[i].FacilityID || a[i].Rank != b[i].Rank {
			t.Errorf("position %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestBuild_CohortStats(t *testing.T) {
	scores := []model.TransparencyScore{
		score(1, model.SizeMedium, 60),
		score(2, model.SizeMedium, 80),
		score(3, model.SizeMedium, 100),
	}
	bedCounts := map[int64]int32{1: 100, 2: 150}

	memberships := Build(scores, bedCounts, buildNow)
	m := memberships[0]

	if !almostEqual(m.CohortMean, 80) {
		t.Errorf("mean = %v, want 80", m.CohortMean)
	}
	if !almostEqual(m.CohortMedian, 80) {
		t.Errorf("median = %v, want 80", m.CohortMedian)
	}
	// Average bed count counts only members with known capacity.
	if !almostEqual(m.CohortAvgBedCount, 125) {
		t.Errorf("avg bed count = %v, want 125", m.CohortAvgBedCount)
	}
	// Rank 1 is facility 3 with overall 100: +20 vs the cohort mean.
	if m.FacilityID != 3 || !almostEqual(m.ScoreVsCohort, 20) {
		t.Errorf("facility %d score vs cohort = %v, want +20", m.FacilityID, m.ScoreVsCohort)
	}
}

func TestBuild_SingleMemberCohort(t *testing.T) {
	scores := []model.TransparencyScore{score(1, model.SizeLarge, 88)}
	memberships := Build(scores, nil, buildNow)

	m := memberships[0]
	if m.Rank != 1 {
		t.Errorf("rank = %d, want 1", m.Rank)
	}
	if !almostEqual(m.Percentile, 100) {
		t.Errorf("percentile = %v, want 100", m.Percentile)
	}
	if !almostEqual(m.CohortStdDev, 0) {
		t.Errorf("stddev = %v, want 0", m.CohortStdDev)
	}
	if !almostEqual(m.ScoreVsCohort, 0) {
		t.Errorf("score vs cohort = %v, want 0", m.ScoreVsCohort)
	}
}

func TestBuild_CarriesRunID(t *testing.T) {
	runID := uuid.New()
	s := score(1, model.SizeSmall, 80)
	s.RunID = runID

	memberships := Build([]model.TransparencyScore{s}, nil, buildNow)
	if memberships[0].RunID != runID {
		t.Errorf("run ID = %s, want %s", memberships[0].RunID, runID)
	}
}
