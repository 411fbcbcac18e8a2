package model

import "time"

// AnalysisSummary captures the outcome of one complete analysis run.
type AnalysisSummary struct {
	RunID           string
	TotalFacilities int
	Scored          int

	Cohorts      map[string]int // cohort name -> member count
	Tiers        map[string]int // tier name -> facility count
	Recognitions map[string]int // category -> recognition count

	// FailedStage is empty on success; otherwise the stage whose
	// transaction rolled back. Downstream stages were skipped.
	FailedStage string

	StartedAt time.Time
	Duration  time.Duration
}
