package analytics

// Totals are portfolio-level sums of the per-project earned-value metrics.
type Totals struct {
	EV  float64 `json:"ev"`
	AC  float64 `json:"ac"`
	PV  float64 `json:"pv"`
	CV  float64 `json:"cv"`
	SV  float64 `json:"sv"`
	CPI float64 `json:"cpi"`
	SPI float64 `json:"spi"`
}

// PortfolioTotals sums kpis. The portfolio CPI and SPI are ratios of the sums,
// not averages of the per-project indices.
func PortfolioTotals(kpis []KPIResult) Totals {
	var t Totals
	for _, k := range kpis {
		t.EV += k.EV
		t.AC += k.AC
		t.PV += k.PV
		t.CV += k.CV
		t.SV += k.SV
	}
	t.CPI = safeDiv(t.EV, t.AC)
	t.SPI = safeDiv(t.EV, t.PV)
	return t
}
