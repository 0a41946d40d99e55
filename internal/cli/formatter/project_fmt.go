package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pdsops/internal/domain"
)

// FormatProjectList renders the portfolio's projects inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	if len(projects) == 0 {
		return RenderBox("Projects", Dim("No projects. Run 'pdsops import <file>' to load a portfolio."))
	}

	headers := []string{"ID", "NAME", "CLIENT", "REGION", "STATUS", "PROGRESS", "BUDGET", "END"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		client := Dim("--")
		if p.Client != nil {
			client = p.Client.Name
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Name),
			client,
			domain.CoalesceStr(p.Region, "--"),
			StatusPill(p.Status),
			RenderProgress(p.NormalizedPercentComplete(), 10),
			FormatMoney(p.BaselineBudget),
			FormatDate(p.EndDate),
		})
	}
	aligns := []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignLeft}
	return RenderBox("Projects", RenderAlignedTable(headers, aligns, rows))
}

// FormatTemplateList renders process templates with their checklist sizes.
func FormatTemplateList(templates []domain.ProcessTemplate) string {
	if len(templates) == 0 {
		return RenderBox("Templates", Dim("No templates. Run 'pdsops seed-templates' to add the defaults."))
	}

	var b strings.Builder
	for i, t := range templates {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s  %s\n", Bold(t.Name), Dim(fmt.Sprintf("adoption %.0f%%", t.AdoptionRatePct*100)))
		if t.Description != "" {
			fmt.Fprintf(&b, "  %s\n", StyleFg.Render(t.Description))
		}
		for _, item := range t.Checklist {
			fmt.Fprintf(&b, "  %s %s\n", Dim("•"), item)
		}
	}
	return RenderBox("Templates", strings.TrimRight(b.String(), "\n"))
}
