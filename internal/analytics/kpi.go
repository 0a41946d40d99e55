package analytics

import (
	"math"
	"time"

	"github.com/alexanderramin/pdsops/internal/domain"
)

// KPIResult holds the earned-value metrics for one project.
type KPIResult struct {
	ProjectID string  `json:"project_id"`
	EV        float64 `json:"ev"`
	AC        float64 `json:"ac"`
	PV        float64 `json:"pv"`
	CV        float64 `json:"cv"`
	SV        float64 `json:"sv"`
	CPI       float64 `json:"cpi"`
	SPI       float64 `json:"spi"`
}

// CalculateKPI computes earned value, planned value and the derived variances
// and indices for p as of asOf (today, UTC, when nil).
//
// Planned value assumes linear burn over the baseline duration. When asOf
// precedes the start date the elapsed time is negative and so is PV.
func CalculateKPI(p *domain.Project, asOf *time.Time) KPIResult {
	now := time.Now().UTC()
	if asOf != nil {
		now = *asOf
	}

	ev := p.NormalizedPercentComplete() * p.BaselineBudget
	ac := p.ActualSpend

	elapsed := daysBetween(p.StartDate, now)
	duration := p.BaselineScheduleDays
	if duration == 0 {
		duration = max(daysBetween(p.StartDate, p.EndDate), 1)
	}
	pv := safeDiv(float64(elapsed), float64(duration)) * p.BaselineBudget

	return KPIResult{
		ProjectID: p.ID,
		EV:        ev,
		AC:        ac,
		PV:        pv,
		CV:        ev - ac,
		SV:        ev - pv,
		CPI:       safeDiv(ev, ac),
		SPI:       safeDiv(ev, pv),
	}
}

// safeDiv returns 0 instead of Inf/NaN for a zero denominator.
func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// daysBetween counts whole calendar days from a to b, ignoring time of day.
func daysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Round(db.Sub(da).Hours() / 24))
}
