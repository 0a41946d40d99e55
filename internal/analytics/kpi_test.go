package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateKPI_ReferenceScenario(t *testing.T) {
	asOf := date(2024, 3, 31)
	kpi := CalculateKPI(referenceProject(), &asOf)

	assert.Equal(t, "p-1", kpi.ProjectID)
	assert.InDelta(t, 400.0, kpi.EV, 0.005)
	assert.InDelta(t, 400.0, kpi.AC, 0.005)
	assert.InDelta(t, 0.0, kpi.CV, 0.005)
	assert.InDelta(t, 1.0, kpi.CPI, 1e-12)

	// 90 days into a 365 day baseline.
	assert.InDelta(t, 90.0/365.0*1000, kpi.PV, 1e-9)
	assert.InDelta(t, 400.0-90.0/365.0*1000, kpi.SV, 1e-9)
	assert.InDelta(t, kpi.EV-kpi.PV, kpi.SV, 1e-9)
	assert.InDelta(t, kpi.EV/kpi.PV, kpi.SPI, 1e-12)
}

func TestCalculateKPI_PercentageInput(t *testing.T) {
	p := referenceProject()
	p.PercentComplete = 40
	asOf := date(2024, 4, 1)

	kpi := CalculateKPI(p, &asOf)
	assert.InDelta(t, 400.0, kpi.EV, 1e-9)
}

func TestCalculateKPI_ZeroActualCostGivesZeroCPI(t *testing.T) {
	p := referenceProject()
	p.ActualSpend = 0
	asOf := date(2024, 4, 1)

	kpi := CalculateKPI(p, &asOf)
	assert.Equal(t, 0.0, kpi.CPI)
	assert.InDelta(t, 400.0, kpi.CV, 1e-9)
}

func TestCalculateKPI_ZeroPlannedValueGivesZeroSPI(t *testing.T) {
	p := referenceProject()
	asOf := p.StartDate

	kpi := CalculateKPI(p, &asOf)
	assert.Equal(t, 0.0, kpi.PV)
	assert.Equal(t, 0.0, kpi.SPI)
}

func TestCalculateKPI_BeforeStartYieldsNegativePV(t *testing.T) {
	p := referenceProject()
	asOf := date(2023, 12, 22)

	kpi := CalculateKPI(p, &asOf)
	assert.Less(t, kpi.PV, 0.0)
	assert.Less(t, kpi.SPI, 0.0)
}

func TestCalculateKPI_FallsBackToDateSpan(t *testing.T) {
	p := referenceProject()
	p.BaselineScheduleDays = 0
	p.StartDate = date(2024, 1, 1)
	p.EndDate = date(2024, 1, 11)
	asOf := date(2024, 1, 6)

	kpi := CalculateKPI(p, &asOf)
	assert.InDelta(t, 500.0, kpi.PV, 1e-9)
}

func TestCalculateKPI_SameDayProjectUsesOneDayFloor(t *testing.T) {
	p := referenceProject()
	p.BaselineScheduleDays = 0
	p.EndDate = p.StartDate
	asOf := p.StartDate.AddDate(0, 0, 2)

	kpi := CalculateKPI(p, &asOf)
	assert.InDelta(t, 2000.0, kpi.PV, 1e-9)
}

func TestCalculateKPI_IgnoresTimeOfDay(t *testing.T) {
	p := referenceProject()
	morning := time.Date(2024, 4, 1, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 4, 1, 23, 0, 0, 0, time.UTC)

	assert.Equal(t, CalculateKPI(p, &morning), CalculateKPI(p, &evening))
}

func TestCalculateKPI_Deterministic(t *testing.T) {
	p := referenceProject()
	asOf := date(2024, 7, 1)

	assert.Equal(t, CalculateKPI(p, &asOf), CalculateKPI(p, &asOf))
}
