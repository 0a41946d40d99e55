package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPortfolioTotals_Empty(t *testing.T) {
	totals := PortfolioTotals(nil)
	assert.Equal(t, Totals{}, totals)
	assert.Equal(t, 0.0, totals.CPI)
	assert.Equal(t, 0.0, totals.SPI)
}

func TestPortfolioTotals_Sums(t *testing.T) {
	kpis := []KPIResult{
		{EV: 400, AC: 500, PV: 300, CV: -100, SV: 100},
		{EV: 600, AC: 500, PV: 700, CV: 100, SV: -100},
	}

	totals := PortfolioTotals(kpis)
	assert.Equal(t, 1000.0, totals.EV)
	assert.Equal(t, 1000.0, totals.AC)
	assert.Equal(t, 1000.0, totals.PV)
	assert.Equal(t, 0.0, totals.CV)
	assert.Equal(t, 0.0, totals.SV)
	assert.Equal(t, 1.0, totals.CPI)
	assert.Equal(t, 1.0, totals.SPI)
}

func TestPortfolioTotals_ZeroDivisors(t *testing.T) {
	totals := PortfolioTotals([]KPIResult{{EV: 250}})
	assert.Equal(t, 250.0, totals.EV)
	assert.Equal(t, 0.0, totals.CPI)
	assert.Equal(t, 0.0, totals.SPI)
}
