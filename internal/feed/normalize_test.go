package feed

import (
	"testing"
	"time"

	"github.com/gyeh/fairscore/internal/model"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  *time.Time
	}{
		{"", nil},
		{"   ", nil},
		{"not a date", nil},
		{"2026-02-01", timePtr(2026, 2, 1)},
		{"02/01/2026", timePtr(2026, 2, 1)},
		{"2026/02/01", timePtr(2026, 2, 1)},
		{"February 1, 2026", timePtr(2026, 2, 1)},
		{"  2026-02-01  ", timePtr(2026, 2, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseDate(tt.input)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got != nil && !got.Equal(*tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func timePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestDollarsToCents(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name  string
		input *float64
		want  int64
	}{
		{"whole dollars", f(150), 15000},
		{"round up", f(19.999), 2000},
		{"round down", f(19.994), 1999},
		{"zero", f(0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DollarsToCents(tt.input)
			if got == nil || *got != tt.want {
				t.Errorf("DollarsToCents(%v) = %v, want %d", *tt.input, got, tt.want)
			}
		})
	}

	if DollarsToCents(nil) != nil {
		t.Error("DollarsToCents(nil) should be nil")
	}
}

func TestFacilityFromRow(t *testing.T) {
	typ := "Critical Access Hospital"
	update := "2026-02-01"
	beds := int32(45)
	row := model.FacilityFeedRow{
		FacilityName:        "  Plainsview Community Hospital  ",
		FacilityType:        &typ,
		BedCount:            &beds,
		MedicareParticipant: true,
		LastDataUpdate:      &update,
	}

	f := facilityFromRow(&row)
	if f.Name != "Plainsview Community Hospital" {
		t.Errorf("name = %q", f.Name)
	}
	if f.FacilityType != typ {
		t.Errorf("facility type = %q", f.FacilityType)
	}
	if f.BedCount == nil || *f.BedCount != 45 {
		t.Errorf("bed count = %v", f.BedCount)
	}
	if !f.MedicareParticipant || f.MedicaidParticipant {
		t.Errorf("participation flags wrong: %+v", f)
	}
	if f.LastDataUpdate == nil || f.LastDataUpdate.Format("2006-01-02") != "2026-02-01" {
		t.Errorf("last data update = %v", f.LastDataUpdate)
	}
}

func TestProcedureFromRow(t *testing.T) {
	code := "470"
	name := "Major joint replacement"
	cash := 12345.67
	row := model.FacilityFeedRow{
		FacilityName:  "X",
		ProcedureCode: &code,
		ProcedureName: &name,
		CashPrice:     &cash,
	}

	proc, ok := procedureFromRow(&row, 9)
	if !ok {
		t.Fatal("expected a procedure row")
	}
	if proc.FacilityID != 9 || proc.Code != "470" || proc.Name != name {
		t.Errorf("identity fields wrong: %+v", proc)
	}
	if proc.CashPriceCents == nil || *proc.CashPriceCents != 1234567 {
		t.Errorf("cash cents = %v", proc.CashPriceCents)
	}
	if proc.MedicareRateCents != nil {
		t.Errorf("absent price should stay nil: %v", proc.MedicareRateCents)
	}
}

func TestProcedureFromRow_NoCode(t *testing.T) {
	row := model.FacilityFeedRow{FacilityName: "X"}
	if _, ok := procedureFromRow(&row, 9); ok {
		t.Fatal("row without a procedure code should not produce a procedure")
	}

	blank := "   "
	row.ProcedureCode = &blank
	if _, ok := procedureFromRow(&row, 9); ok {
		t.Fatal("blank procedure code should not produce a procedure")
	}
}
