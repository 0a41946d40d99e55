package domain

import "time"

// ProcessTemplate is a reusable delivery playbook that recommendations can
// point projects at.
type ProcessTemplate struct {
	ID              string
	Name            string
	Description     string
	Checklist       []string
	AdoptionRatePct float64
	CreatedAt       time.Time
}
