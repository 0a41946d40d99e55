package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/pdsops/internal/app"
	"github.com/alexanderramin/pdsops/internal/domain"
)

// FormatDecisionList renders decisions in the order given (newest first from
// the repository).
func FormatDecisionList(decisions []*domain.Decision) string {
	if len(decisions) == 0 {
		return RenderBox("Decisions", Dim("No decisions recorded."))
	}

	headers := []string{"ID", "TYPE", "RULE", "STATUS", "OWNER", "CREATED"}
	rows := make([][]string, 0, len(decisions))
	for _, d := range decisions {
		owner := d.Owner
		if owner == "" {
			owner = Dim("--")
		}
		rows = append(rows, []string{
			TruncID(d.ID),
			Bold(d.DecisionType),
			Dim(domain.CoalesceStr(d.RuleKey, "--")),
			DecisionPill(d.Status),
			owner,
			FormatDate(d.CreatedAt),
		})
	}
	return RenderBox("Decisions", RenderTable(headers, rows))
}

// FormatDecision renders one decision's detail card.
func FormatDecision(d *domain.Decision) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n\n", StyleBold.Render(d.DecisionType), DecisionPill(d.Status))
	fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("ID       "), d.ID)
	fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("RULE     "), domain.CoalesceStr(d.RuleKey, "--"))
	fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("OWNER    "), domain.CoalesceStr(d.Owner, "--"))
	if len(d.RelatedProjectIDs) > 0 {
		fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("PROJECTS "), strings.Join(d.RelatedProjectIDs, ", "))
	}
	if impact := formatImpact(d.ExpectedImpact); impact != "" {
		fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("IMPACT   "), impact)
	}
	fmt.Fprintf(&b, "%s  %s", StyleDim.Render("RATIONALE"), StyleFg.Render(d.Rationale))
	return RenderBox("Decision", b.String())
}

// FormatOutcome renders before/after KPI deltas for a recorded outcome.
func FormatOutcome(o *domain.Outcome) string {
	keys := make(map[string]struct{}, len(o.KPIBefore)+len(o.KPIAfter))
	for k := range o.KPIBefore {
		keys[k] = struct{}{}
	}
	for k := range o.KPIAfter {
		keys[k] = struct{}{}
	}
	names := make([]string, 0, len(keys))
	for k := range keys {
		names = append(names, k)
	}
	sort.Strings(names)

	headers := []string{"KPI", "BEFORE", "AFTER", "DELTA"}
	aligns := []Align{AlignLeft, AlignRight, AlignRight, AlignRight}
	rows := make([][]string, 0, len(names))
	for _, k := range names {
		before, hasBefore := o.KPIBefore[k]
		after, hasAfter := o.KPIAfter[k]
		delta := Dim("--")
		if hasBefore && hasAfter {
			d := after - before
			style := StyleGreen
			if d < 0 {
				style = StyleRed
			}
			delta = style.Render(fmt.Sprintf("%+.2f", d))
		}
		rows = append(rows, []string{k, optionalFloat(before, hasBefore), optionalFloat(after, hasAfter), delta})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Dim("decision"), o.DecisionID)
	fmt.Fprintf(&b, "%s  %s\n", Dim("measured"), FormatDate(o.MeasuredAt))
	if o.Notes != "" {
		fmt.Fprintf(&b, "%s  %s\n", Dim("notes   "), o.Notes)
	}
	if len(rows) > 0 {
		b.WriteString("\n" + RenderAlignedTable(headers, aligns, rows))
	}
	return RenderBox("Outcome", strings.TrimRight(b.String(), "\n"))
}

func optionalFloat(v float64, ok bool) string {
	if !ok {
		return Dim("--")
	}
	return fmt.Sprintf("%.2f", v)
}

// FormatFeedback renders rule confidences with a bar per rule.
func FormatFeedback(rows []domain.RuleFeedback) string {
	if len(rows) == 0 {
		return RenderBox("Rule Feedback", Dim("No feedback recorded. All rules start at 50%."))
	}
	headers := []string{"RULE", "CONFIDENCE", "", "UPDATED"}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			Bold(r.RuleKey),
			ConfidenceBadge(r.SuccessRate),
			RenderProgress(r.SuccessRate, 12),
			FormatDate(r.UpdatedAt),
		})
	}
	return RenderBox("Rule Feedback", RenderTable(headers, out))
}

// FormatFeedbackUpdate renders the one-line result of recording feedback.
func FormatFeedbackUpdate(row *domain.RuleFeedback) string {
	return fmt.Sprintf("%s %s confidence now %s\n",
		StyleGreen.Render("✔"), Bold(row.RuleKey), ConfidenceBadge(row.SuccessRate))
}

// FormatImportResult renders the counts written by a portfolio import.
func FormatImportResult(r *app.ImportResult) string {
	line := fmt.Sprintf("%s Imported %s: %d clients, %d projects, %d risks",
		StyleGreen.Render("✔"), Bold(r.Source), r.ClientCount, r.ProjectCount, r.RiskCount)
	if r.ResourceCount > 0 {
		line += fmt.Sprintf(", %d resources", r.ResourceCount)
	}
	return line + "\n"
}

// FormatSeedResult renders the outcome of seeding process templates.
func FormatSeedResult(r *app.SeedResult) string {
	line := fmt.Sprintf("%s Seeded %d templates", StyleGreen.Render("✔"), r.Created)
	if r.Skipped > 0 {
		line += Dim(fmt.Sprintf(" (%d already present)", r.Skipped))
	}
	return line + "\n"
}
