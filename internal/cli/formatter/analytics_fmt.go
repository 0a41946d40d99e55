package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pdsops/internal/analytics"
	"github.com/alexanderramin/pdsops/internal/app"
)

var moneyAligns = []Align{AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight}

// FormatKPIs renders per-project earned-value metrics with a portfolio
// totals row.
func FormatKPIs(resp *app.KPIResponse) string {
	if len(resp.KPIs) == 0 {
		return RenderBox("KPIs", Dim("No projects in portfolio."))
	}

	headers := []string{"PROJECT", "EV", "AC", "PV", "CV", "SV", "CPI", "SPI"}
	rows := make([][]string, 0, len(resp.KPIs)+1)
	for _, k := range resp.KPIs {
		rows = append(rows, []string{
			Bold(k.ProjectName),
			FormatMoney(k.EV),
			FormatMoney(k.AC),
			FormatMoney(k.PV),
			FormatVariance(k.CV),
			FormatVariance(k.SV),
			FormatIndex(k.CPI),
			FormatIndex(k.SPI),
		})
	}
	t := resp.Totals
	rows = append(rows, []string{
		StyleHeader.Render("PORTFOLIO"),
		FormatMoney(t.EV),
		FormatMoney(t.AC),
		FormatMoney(t.PV),
		FormatVariance(t.CV),
		FormatVariance(t.SV),
		FormatIndex(t.CPI),
		FormatIndex(t.SPI),
	})

	body := Dim("as of "+FormatDate(resp.AsOf)) + "\n\n" + RenderAlignedTable(headers, moneyAligns, rows)
	return RenderBox("KPIs", body)
}

// FormatRanking renders the attention ranking, highest score first, with
// the top contributing factor for each project.
func FormatRanking(resp *app.RankingResponse) string {
	if len(resp.Ranked) == 0 {
		return RenderBox("Attention", Dim("No projects in portfolio."))
	}

	headers := []string{"#", "PROJECT", "SCORE", "CV", "SV", "EXPOSURE", "TOP FACTOR"}
	aligns := []Align{AlignRight, AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight, AlignLeft}
	rows := make([][]string, 0, len(resp.Ranked))
	for i, r := range resp.Ranked {
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", i+1)),
			Bold(r.ProjectName),
			StylePurple.Render(fmt.Sprintf("%.2f", r.AttentionScore)),
			FormatVariance(r.CV),
			FormatVariance(r.SV),
			FormatMoney(r.RiskExposure),
			topFactor(r.Factors),
		})
	}

	body := Dim("as of "+FormatDate(resp.AsOf)) + "\n\n" + RenderAlignedTable(headers, aligns, rows)
	return RenderBox("Attention", body)
}

func topFactor(factors []analytics.AttentionFactor) string {
	best := -1
	for i, f := range factors {
		if best < 0 || f.Contribution > factors[best].Contribution {
			best = i
		}
	}
	if best < 0 || factors[best].Contribution <= 0 {
		return Dim("--")
	}
	code := strings.ToLower(strings.ReplaceAll(string(factors[best].Code), "_", " "))
	return StyleYellow.Render(code)
}

// FormatScenario renders P50/P80 cost and schedule outcomes per project.
func FormatScenario(resp *app.ScenarioResponse) string {
	p := resp.Params
	seed := "random"
	if p.Seed != nil {
		seed = fmt.Sprintf("%d", *p.Seed)
	}
	paramsLine := Dim(fmt.Sprintf("%d iterations · inflation %.2f · staffing %.2f · mitigation %.2f · seed %s",
		p.Iterations, p.InflationFactor, p.StaffingCapacityFactor, p.RiskMitigationEffectiveness, seed))

	if len(resp.Results) == 0 {
		return RenderBox("Scenario", paramsLine+"\n\n"+Dim("No projects in portfolio."))
	}

	headers := []string{"PROJECT", "P50 COST", "P80 COST", "P50 DAYS", "P80 DAYS"}
	aligns := []Align{AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight}
	rows := make([][]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		name := resp.ProjectNames[r.ProjectID]
		if name == "" {
			name = TruncID(r.ProjectID)
		}
		rows = append(rows, []string{
			Bold(name),
			FormatMoney(r.P50Cost),
			StyleYellow.Render(FormatMoney(r.P80Cost)),
			FormatDays(r.P50Days),
			StyleYellow.Render(FormatDays(r.P80Days)),
		})
	}

	return RenderBox("Scenario", paramsLine+"\n\n"+RenderAlignedTable(headers, aligns, rows))
}
