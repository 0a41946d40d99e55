package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/pdsops/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatMoney renders an amount with thousands separators and no decimals,
// e.g. -1,250 or 100,000.
func FormatMoney(v float64) string {
	n := int64(math.Round(v))
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatDays renders a day count with one decimal.
func FormatDays(v float64) string {
	return fmt.Sprintf("%.1fd", v)
}

// FormatDate renders a calendar date, or "--" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return t.Format("2006-01-02")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// StatusPill returns a colored indicator for a project status.
func StatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectOnHold:
		return StyleYellow.Render("○ On hold")
	case domain.ProjectCompleted:
		return StyleDim.Render("✔ Completed")
	case domain.ProjectClosed:
		return StyleDim.Render("✖ Closed")
	default:
		return StyleDim.Render(string(status))
	}
}

// DecisionPill returns a colored indicator for a decision status.
func DecisionPill(status domain.DecisionStatus) string {
	switch status {
	case domain.DecisionProposed:
		return StyleYellow.Render("◌ Proposed")
	case domain.DecisionExecuted:
		return StyleGreen.Render("✔ Executed")
	case domain.DecisionRejected:
		return StyleDim.Render("✖ Rejected")
	default:
		return StyleDim.Render(string(status))
	}
}

// ConfidenceBadge renders a rule confidence as a percentage, colored by
// how far it has moved from the 0.5 default.
func ConfidenceBadge(c float64) string {
	text := fmt.Sprintf("%.0f%%", c*100)
	switch {
	case c > domain.DefaultSuccessRate:
		return StyleGreen.Render(text)
	case c < domain.DefaultSuccessRate:
		return StyleRed.Render(text)
	default:
		return StyleFg.Render(text)
	}
}
