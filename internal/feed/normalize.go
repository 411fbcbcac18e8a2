package feed

import (
	"math"
	"strings"
	"time"

	"github.com/gyeh/fairscore/internal/model"
)

// Date formats seen across facility feed exports.
var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
}

// ParseDate attempts to parse a date string in multiple common formats.
// Returns nil if the input is empty or unparseable.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, fmt := range dateFormats {
		if t, err := time.Parse(fmt, s); err == nil {
			return &t
		}
	}
	return nil
}

// DollarsToCents converts a nullable float64 dollar amount to nullable
// int64 cents. Uses math.Round to avoid truncation bias.
func DollarsToCents(v *float64) *int64 {
	if v == nil {
		return nil
	}
	c := int64(math.Round(*v * 100))
	return &c
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// facilityFromRow extracts the facility metadata carried on a feed row.
func facilityFromRow(row *model.FacilityFeedRow) model.Facility {
	f := model.Facility{
		Name:                strings.TrimSpace(row.FacilityName),
		BedCount:            row.BedCount,
		FacilityType:        deref(row.FacilityType),
		Region:              deref(row.Region),
		Website:             deref(row.Website),
		TransparencyURL:     deref(row.TransparencyURL),
		MedicareParticipant: row.MedicareParticipant,
		MedicaidParticipant: row.MedicaidParticipant,
		DataQualityRating:   row.DataQualityRating,
	}
	if row.LastDataUpdate != nil {
		f.LastDataUpdate = ParseDate(*row.LastDataUpdate)
	}
	return f
}

// procedureFromRow converts a feed row's price line into a COPY-ready
// record. Returns false when the row carries no procedure.
func procedureFromRow(row *model.FacilityFeedRow, facilityID int64) (model.ProcedureCopyRow, bool) {
	code := deref(row.ProcedureCode)
	if code == "" {
		return model.ProcedureCopyRow{}, false
	}
	return model.ProcedureCopyRow{
		FacilityID: facilityID,
		Code:       code,
		Name:       deref(row.ProcedureName),

		CashPriceCents:        DollarsToCents(row.CashPrice),
		NegotiatedMinCents:    DollarsToCents(row.NegotiatedMin),
		NegotiatedMaxCents:    DollarsToCents(row.NegotiatedMax),
		NegotiatedMedianCents: DollarsToCents(row.NegotiatedMedian),
		MedicareRateCents:     DollarsToCents(row.MedicareRate),
		MedicaidRateCents:     DollarsToCents(row.MedicaidRate),
	}, true
}
