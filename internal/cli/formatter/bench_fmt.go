package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/pdsops/internal/app"
	"github.com/alexanderramin/pdsops/internal/domain"
)

// FormatResourceList renders the bench with each person's utilization bar.
func FormatResourceList(resources []*domain.Resource) string {
	if len(resources) == 0 {
		return RenderBox("Resources", Dim("No resources. Run 'pdsops resource add' to build the bench."))
	}

	headers := []string{"ID", "NAME", "ROLE", "REGION", "SKILLS", "UTILIZATION"}
	rows := make([][]string, 0, len(resources))
	for _, r := range resources {
		skills := Dim("--")
		if len(r.SkillTags) > 0 {
			skills = strings.Join(r.SkillTags, ", ")
		}
		rows = append(rows, []string{
			TruncID(r.ID),
			Bold(r.Name),
			r.Role,
			r.Region,
			skills,
			RenderProgress(r.NormalizedUtilization(), 10),
		})
	}
	return RenderBox("Resources", RenderTable(headers, rows))
}

// FormatStaffing renders the staffing factor a scenario will use.
func FormatStaffing(s *app.StaffingResult) string {
	if s.Resources == 0 {
		return Dim("No resources recorded; staffing factor 1.00")
	}
	scope := "all regions"
	if s.Region != "" {
		scope = s.Region
	}
	return fmt.Sprintf("Staffing factor %s from %d resources in %s (avg utilization %.0f%%)",
		Bold(fmt.Sprintf("%.2f", s.Factor)), s.Resources, scope, s.AverageUtilization*100)
}

// FormatGapList renders discovery questions, open ones flagged.
func FormatGapList(gaps []*domain.Gap) string {
	if len(gaps) == 0 {
		return RenderBox("Gaps", Dim("No open questions."))
	}

	var b strings.Builder
	for i, g := range gaps {
		if i > 0 {
			b.WriteString("\n")
		}
		state := StyleGreen.Render("answered")
		if g.IsOpen() {
			state = StyleRed.Render("open")
		}
		fmt.Fprintf(&b, "%s  %s  %s  %s\n", Dim(TruncID(g.ID)), Bold(g.Category), state, Dim(FormatDate(g.CreatedAt)))
		fmt.Fprintf(&b, "  %s\n", StyleFg.Render(g.Question))
		if !g.IsOpen() {
			fmt.Fprintf(&b, "  %s %s %s\n", Dim("→"), g.Answer, Dim(fmt.Sprintf("(confidence %.0f%%)", g.Confidence*100)))
		}
		for _, name := range sortedKeys(g.Attachments) {
			fmt.Fprintf(&b, "  %s %s: %s\n", Dim("•"), name, g.Attachments[name])
		}
	}
	return RenderBox("Gaps", strings.TrimRight(b.String(), "\n"))
}

// FormatRiskList renders risks with their probability and impact.
func FormatRiskList(risks []domain.Risk, names map[string]string) string {
	if len(risks) == 0 {
		return RenderBox("Risks", Dim("No risks recorded."))
	}

	headers := []string{"ID", "PROJECT", "CATEGORY", "PROB", "COST", "DAYS", "MITIGATION"}
	rows := make([][]string, 0, len(risks))
	for _, r := range risks {
		rows = append(rows, []string{
			TruncID(r.ID),
			domain.CoalesceStr(names[r.ProjectID], TruncID(r.ProjectID)),
			Bold(r.Category),
			fmt.Sprintf("%.0f%%", r.Probability*100),
			FormatMoney(r.ImpactCost),
			FormatDays(r.ImpactDays),
			string(r.MitigationStatus),
		})
	}
	aligns := []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight, AlignLeft}
	return RenderBox("Risks", RenderAlignedTable(headers, aligns, rows))
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
