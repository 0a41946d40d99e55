package domain

import (
	"fmt"
	"time"
)

// Project is an immutable snapshot of a capital project's budget, schedule
// and progress as of the time it was loaded.
type Project struct {
	ID                   string
	ClientID             string
	Client               *Client
	Name                 string
	Region               string
	Sector               string
	StartDate            time.Time
	EndDate              time.Time
	BaselineBudget       float64
	CurrentForecast      float64
	ActualSpend          float64
	BaselineScheduleDays int
	ForecastScheduleDays int
	PercentComplete      float64
	SafetyIncidents      int
	Status               ProjectStatus
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NormalizedPercentComplete returns percent complete as a 0-1 fraction.
// Values above 1 are read as percentages.
func (p *Project) NormalizedPercentComplete() float64 {
	if p.PercentComplete > 1 {
		return p.PercentComplete / 100
	}
	return p.PercentComplete
}

// Validate rejects snapshots the analytics cannot reason about.
func (p *Project) Validate() error {
	if p.EndDate.Before(p.StartDate) {
		return fmt.Errorf("project %s: end date %s is before start date %s",
			p.DisplayID(), p.EndDate.Format("2006-01-02"), p.StartDate.Format("2006-01-02"))
	}
	if p.PercentComplete < 0 || p.PercentComplete > 100 {
		return fmt.Errorf("project %s: percent complete %.2f out of range", p.DisplayID(), p.PercentComplete)
	}
	if p.BaselineScheduleDays < 0 || p.ForecastScheduleDays < 0 {
		return fmt.Errorf("project %s: schedule days must not be negative", p.DisplayID())
	}
	return nil
}

// DisplayID returns the best short identifier for display.
// It prefers Name; if empty it truncates ID to 8 characters.
func (p *Project) DisplayID() string {
	if p.Name != "" {
		return p.Name
	}
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
