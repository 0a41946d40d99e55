package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/pdsops/internal/app"
	"github.com/alexanderramin/pdsops/internal/recommend"
)

// FormatRecommendations renders each recommendation as a card line with
// its confidence and affected projects. names maps project IDs to display
// names; unknown IDs are shown truncated.
func FormatRecommendations(resp *app.RecommendationResponse, names map[string]string) string {
	if len(resp.Recommendations) == 0 {
		return RenderBox("Recommendations", Dim("Nothing to recommend. Portfolio is on plan."))
	}

	var b strings.Builder
	for i, rec := range resp.Recommendations {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatRecommendation(rec, names))
	}
	return RenderBox("Recommendations", strings.TrimRight(b.String(), "\n"))
}

// FormatRecommendation renders a single recommendation block.
func FormatRecommendation(rec recommend.Recommendation, names map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s\n",
		StyleBold.Render(rec.DecisionType),
		Dim(rec.RuleKey),
		ConfidenceBadge(rec.Confidence))
	fmt.Fprintf(&b, "  %s\n", StyleFg.Render(rec.Explanation))

	projects := make([]string, 0, len(rec.AffectedProjectIDs))
	for _, id := range rec.AffectedProjectIDs {
		if n := names[id]; n != "" {
			projects = append(projects, n)
		} else {
			projects = append(projects, TruncID(id))
		}
	}
	if len(projects) > 0 {
		fmt.Fprintf(&b, "  %s %s\n", Dim("projects:"), strings.Join(projects, ", "))
	}
	if impact := formatImpact(rec.ExpectedImpact); impact != "" {
		fmt.Fprintf(&b, "  %s %s\n", Dim("impact:  "), impact)
	}
	return b.String()
}

// formatImpact renders expected impact keys in sorted order.
func formatImpact(impact map[string]any) string {
	if len(impact) == 0 {
		return ""
	}
	keys := make([]string, 0, len(impact))
	for k := range impact {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := impact[k]
		if f, ok := v.(float64); ok {
			parts = append(parts, fmt.Sprintf("%s=%.2f", k, f))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(parts, " ")
}

// FormatBrief renders the executive brief headline and markdown body.
func FormatBrief(resp *app.BriefResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Dim("generated"), StyleFg.Render(resp.GeneratedAt.Format("2006-01-02 15:04 MST")))
	fmt.Fprintf(&b, "%s  %d\n", Dim("projects "), resp.Metrics.TotalProjects)
	high := fmt.Sprintf("%d", resp.Metrics.HighRisk)
	if resp.Metrics.HighRisk > 0 {
		high = StyleRed.Render(high)
	}
	fmt.Fprintf(&b, "%s  %s\n\n", Dim("high risk"), high)
	b.WriteString(strings.TrimRight(resp.Markdown, "\n"))
	return RenderBox("Executive Brief", b.String())
}
