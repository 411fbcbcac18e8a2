package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/gyeh/fairscore/internal/model"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func i32(v int32) *int32 { return &v }
func i64(v int64) *int64 { return &v }
func f64(v float64) *float64 { return &v }

func daysAgo(d int) *time.Time {
	t := testNow.AddDate(0, 0, -d)
	return &t
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAccessibilityScore(t *testing.T) {
	tests := []struct {
		name string
		f    model.Facility
		want float64
	}{
		{"nothing published", model.Facility{}, 0},
		{"url only", model.Facility{TransparencyURL: "https://x.example/prices"}, 40},
		{"machine readable url", model.Facility{TransparencyURL: "https://x.example/prices.csv"}, 70},
		{"json url uppercase", model.Facility{TransparencyURL: "https://x.example/PRICES.JSON"}, 70},
		{"website only", model.Facility{Website: "https://x.example"}, 20},
		{"fresh update only", model.Facility{LastDataUpdate: daysAgo(3)}, 10},
		{"stale update no bonus", model.Facility{LastDataUpdate: daysAgo(45)}, 0},
		{
			"everything",
			model.Facility{
				TransparencyURL: "https://x.example/prices.xml",
				Website:         "https://x.example",
				LastDataUpdate:  daysAgo(3),
			},
			100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AccessibilityScore(&tt.f, testNow); !almostEqual(got, tt.want) {
				t.Errorf("AccessibilityScore = %v, want %v", got, tt.want)
			}
		})
	}
}

// procs builds n procedure records; each carries the price types selected
// by the flags.
func procs(n int, cash, negotiated, medicare, medicaid bool) []model.ProcedureRecord {
	out := make([]model.ProcedureRecord, n)
	for i := range out {
		if cash {
			out[i].CashPriceCents = i64(10000)
		}
		if negotiated {
			out[i].NegotiatedMinCents = i64(8000)
		}
		if medicare {
			out[i].MedicareRateCents = i64(9000)
		}
		if medicaid {
			out[i].MedicaidRateCents = i64(7000)
		}
	}
	return out
}

func TestCompletenessScore(t *testing.T) {
	tests := []struct {
		name  string
		procs []model.ProcedureRecord
		want  float64
	}{
		{"no procedures", nil, 0},
		{"100 procedures one price type", procs(100, true, false, false, false), 25},
		{"101 procedures one price type", procs(101, true, false, false, false), 35},
		{"500 procedures two price types", procs(500, true, true, false, false), 50},
		{"501 procedures two price types", procs(501, true, true, false, false), 60},
		{"1000 procedures four price types", procs(1000, true, true, true, true), 90},
		{"1001 procedures four price types", procs(1001, true, true, true, true), 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompletenessScore(tt.procs); !almostEqual(got, tt.want) {
				t.Errorf("CompletenessScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccuracyScore(t *testing.T) {
	plausible := model.ProcedureRecord{CashPriceCents: i64(10000), MedicareRateCents: i64(9000)}
	tooHigh := model.ProcedureRecord{CashPriceCents: i64(1000000), MedicareRateCents: i64(9000)}
	tooLow := model.ProcedureRecord{CashPriceCents: i64(1000), MedicareRateCents: i64(9000)}
	zeroPrice := model.ProcedureRecord{CashPriceCents: i64(0), MedicareRateCents: i64(9000)}
	noMedicare := model.ProcedureRecord{CashPriceCents: i64(10000)}

	tests := []struct {
		name string
		f    model.Facility
		want float64
	}{
		{"no rating no procedures", model.Facility{}, 0},
		{"rating only", model.Facility{DataQualityRating: f64(80)}, 48},
		{
			"all plausible no rating",
			model.Facility{Procedures: []model.ProcedureRecord{plausible, plausible}},
			40,
		},
		{
			"half plausible",
			model.Facility{Procedures: []model.ProcedureRecord{plausible, tooHigh}},
			20,
		},
		{
			"ratio below floor",
			model.Facility{Procedures: []model.ProcedureRecord{tooLow}},
			0,
		},
		{
			"zero prices excluded from comparison",
			model.Facility{Procedures: []model.ProcedureRecord{zeroPrice, noMedicare}},
			0,
		},
		{
			"rating and plausible blend",
			model.Facility{
				DataQualityRating: f64(90),
				Procedures:        []model.ProcedureRecord{plausible},
			},
			94,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AccuracyScore(&tt.f); !almostEqual(got, tt.want) {
				t.Errorf("AccuracyScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecencyScore(t *testing.T) {
	tests := []struct {
		name string
		last *time.Time
		want float64
	}{
		{"unknown", nil, 0},
		{"7 days", daysAgo(7), 100},
		{"8 days", daysAgo(8), 80},
		{"30 days", daysAgo(30), 80},
		{"31 days", daysAgo(31), 60},
		{"90 days", daysAgo(90), 60},
		{"91 days", daysAgo(91), 40},
		{"180 days", daysAgo(180), 40},
		{"181 days", daysAgo(181), 20},
		{"two years", daysAgo(730), 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RecencyScore(tt.last, testNow); !almostEqual(got, tt.want) {
				t.Errorf("RecencyScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeightsSumToOne(t *testing.T) {
	for _, size := range model.AllSizes {
		w := WeightsFor(size)
		if !almostEqual(w.Sum(), 1.0) {
			t.Errorf("weights for %s sum to %v, want 1.0", size, w.Sum())
		}
	}
}

func TestCostPerBed(t *testing.T) {
	if got := CostPerBed(98.8, nil); got != 0 {
		t.Errorf("nil bed count: got %v, want 0", got)
	}
	if got := CostPerBed(98.8, i32(0)); got != 0 {
		t.Errorf("zero beds: got %v, want 0", got)
	}
	if got := CostPerBed(80, i32(40)); !almostEqual(got, 200) {
		t.Errorf("CostPerBed(80, 40) = %v, want 200", got)
	}
}

func TestCommunityImpact(t *testing.T) {
	markers := model.DefaultMarkers

	tests := []struct {
		name string
		f    model.Facility
		want float64
	}{
		{"no participation", model.Facility{}, 0},
		{"medicaid only", model.Facility{MedicaidParticipant: true}, 25},
		{"both payers", model.Facility{MedicareParticipant: true, MedicaidParticipant: true}, 50},
		{"rural region", model.Facility{Region: "Rural Western County"}, 20},
		{"critical access type", model.Facility{FacilityType: "Critical Access Hospital"}, 30},
		{
			"everything capped",
			model.Facility{
				MedicareParticipant: true,
				MedicaidParticipant: true,
				Region:              "rural plains",
				FacilityType:        "critical access",
			},
			100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CommunityImpact(&tt.f, markers); !almostEqual(got, tt.want) {
				t.Errorf("CommunityImpact = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSatisfactionProxy(t *testing.T) {
	markers := model.DefaultMarkers

	tests := []struct {
		name string
		f    model.Facility
		want float64
	}{
		{"baseline", model.Facility{}, 50},
		{"small capacity", model.Facility{BedCount: i32(30)}, 70},
		{"medium capacity", model.Facility{BedCount: i32(150)}, 60},
		{"large capacity", model.Facility{BedCount: i32(400)}, 50},
		{"community region", model.Facility{Region: "Community District"}, 65},
		{"small community capped at 85", model.Facility{BedCount: i32(20), Region: "community"}, 85},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SatisfactionProxy(&tt.f, markers); !almostEqual(got, tt.want) {
				t.Errorf("SatisfactionProxy = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestCompute_SmallFacility walks a fully disclosed 40-bed facility
// through the whole calculation.
func TestCompute_SmallFacility(t *testing.T) {
	records := make([]model.ProcedureRecord, 1200)
	for i := range records {
		records[i] = model.ProcedureRecord{
			Code:               "12345",
			CashPriceCents:     i64(10000),
			NegotiatedMinCents: i64(8000),
			MedicareRateCents:  i64(9000),
			MedicaidRateCents:  i64(7000),
		}
	}
	f := model.Facility{
		ID:                  7,
		Name:                "Plainsview Community Hospital",
		BedCount:            i32(40),
		Region:              "Rural Plains",
		FacilityType:        "General Acute Care",
		Website:             "https://plainsview.example",
		TransparencyURL:     "https://plainsview.example/prices.csv",
		MedicareParticipant: true,
		MedicaidParticipant: true,
		DataQualityRating:   f64(90),
		LastDataUpdate:      daysAgo(3),
		Procedures:          records,
	}

	s := Compute(&f, model.DefaultMarkers, testNow)

	if s.Size != model.SizeSmall {
		t.Fatalf("size = %s, want small", s.Size)
	}
	if !almostEqual(s.Accessibility, 100) {
		t.Errorf("accessibility = %v, want 100", s.Accessibility)
	}
	if !almostEqual(s.Completeness, 100) {
		t.Errorf("completeness = %v, want 100", s.Completeness)
	}
	if !almostEqual(s.Accuracy, 94) {
		t.Errorf("accuracy = %v, want 94", s.Accuracy)
	}
	if !almostEqual(s.Recency, 100) {
		t.Errorf("recency = %v, want 100", s.Recency)
	}
	if !almostEqual(s.Overall, 98.8) {
		t.Errorf("overall = %v, want 98.8", s.Overall)
	}
	if !almostEqual(s.CostPerBed, 98.8*100/40) {
		t.Errorf("cost per bed = %v, want %v", s.CostPerBed, 98.8*100/40)
	}
	if !almostEqual(s.CommunityImpact, 70) {
		t.Errorf("community impact = %v, want 70", s.CommunityImpact)
	}
	if s.Methodology != model.MethodologyVersion {
		t.Errorf("methodology = %q, want %q", s.Methodology, model.MethodologyVersion)
	}

	sum := s.WeightedAccessibility + s.WeightedCompleteness + s.WeightedAccuracy + s.WeightedRecency
	if !almostEqual(s.Overall, sum) {
		t.Errorf("overall %v != weighted sum %v", s.Overall, sum)
	}
}
