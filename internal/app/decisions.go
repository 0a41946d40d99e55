package app

import "time"

// AcceptRequest turns one of the current recommendations into a proposed
// decision. ProjectID disambiguates per-project rules that fired for
// several projects.
type AcceptRequest struct {
	RuleKey   string
	ProjectID string
	Owner     string
	Rationale string
	AsOf      *time.Time
}

type OutcomeRequest struct {
	DecisionID string
	MeasuredAt *time.Time
	KPIBefore  map[string]float64
	KPIAfter   map[string]float64
	Notes      string
}

type FeedbackRequest struct {
	RuleKey       string
	WasSuccessful bool
}

type ImportResult struct {
	Source        string
	ClientCount   int
	ProjectCount  int
	RiskCount     int
	ResourceCount int
}

type SeedResult struct {
	Created int
	Skipped int
}
