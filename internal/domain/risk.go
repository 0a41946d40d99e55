package domain

import "time"

// Risk is one entry of a project's risk register.
type Risk struct {
	ID               string
	ProjectID        string
	Category         string
	Probability      float64
	ImpactCost       float64
	ImpactDays       float64
	MitigationStatus MitigationStatus
	CreatedAt        time.Time
}

// IsHighRisk reports whether the risk is likely enough to call out in briefs.
func (r Risk) IsHighRisk() bool {
	return r.Probability > 0.6
}
