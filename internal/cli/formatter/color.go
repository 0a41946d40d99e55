package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Performance index bands. At or above 1.0 a project is on plan; below the
// 0.9 recommendation threshold it needs attention.
const (
	indexOnPlan   = 1.0
	indexWatchout = 0.9
)

// IndexStyle colors a CPI or SPI value by band.
func IndexStyle(v float64) lipgloss.Style {
	switch {
	case v >= indexOnPlan:
		return StyleGreen
	case v >= indexWatchout:
		return StyleYellow
	default:
		return StyleRed
	}
}

// FormatIndex renders a CPI or SPI with two decimals in its band color.
func FormatIndex(v float64) string {
	return IndexStyle(v).Render(fmt.Sprintf("%.2f", v))
}

// FormatVariance renders a cost or schedule variance, red when negative.
func FormatVariance(v float64) string {
	text := FormatMoney(v)
	if v < 0 {
		return StyleRed.Render(text)
	}
	return StyleGreen.Render(text)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
