package monitor

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/cfx/internal/ui"
)

// Dashboard roles on the shared neon palette.
const (
	ColorDarkBg        = ui.ColorDeepVoid
	ColorSurfaceBg     = ui.ColorDarkSurface
	ColorBorder        = ui.ColorGlassBorder
	ColorHealthy       = ui.ColorSuccess
	ColorWarning       = ui.ColorWarning
	ColorCritical      = ui.ColorError
	ColorTextPrimary   = ui.ColorPrimary
	ColorTextSecondary = ui.ColorSecondary
	ColorTextMuted     = ui.ColorMuted
	ColorAccent        = ui.ColorNeonPink
	ColorGraph         = ui.ColorNeonCyan
)

// Ping thresholds in milliseconds.
const (
	PingWarning  = 100
	PingCritical = 200
)

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

var (
	HeaderStyle = fg(ColorTextPrimary).Background(ColorSurfaceBg).Bold(true).Padding(0, 1)
	FooterStyle = fg(ColorTextMuted).Padding(0, 1)
	InputStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorAccent).Padding(0, 1)

	ServerNameStyle   = fg(ColorTextPrimary).Bold(true)
	LabelStyle        = fg(ColorTextSecondary)
	ValueStyle        = fg(ColorTextPrimary)
	MutedStyle        = fg(ColorTextMuted)
	SelectedRowStyle  = fg(ColorAccent).Bold(true)
	FavoriteMarkStyle = fg(ColorWarning)

	borderStyle = fg(ColorBorder)
)

const (
	GlyphFavorite = "★"
	GlyphPointer  = "›"
	GlyphOnline   = "◉"
)

// MetricColor colors an occupancy percentage.
func MetricColor(percent float64) lipgloss.Color {
	return ui.OccupancyColor(percent)
}

// PingColor colors a round-trip time in milliseconds.
func PingColor(ms int) lipgloss.Color {
	switch {
	case ms >= PingCritical:
		return ColorCritical
	case ms >= PingWarning:
		return ColorWarning
	default:
		return ColorHealthy
	}
}

// NotificationStyle returns the status line style for a severity.
func NotificationStyle(s Severity) lipgloss.Style {
	switch s {
	case SeveritySuccess:
		return fg(ColorHealthy).Bold(true)
	case SeverityError:
		return fg(ColorCritical).Bold(true)
	default:
		return fg(ColorGraph)
	}
}

// ProgressBar renders percent as width segments colored by occupancy.
func ProgressBar(width int, percent float64) string {
	width = max(width, 1)
	percent = math.Max(0, math.Min(percent, 100))
	filled := int(percent / 100 * float64(width))

	bar := strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
	return fg(MetricColor(percent)).Render(bar)
}

// SectionHeader draws the top edge of a panel with the title on the left and
// value on the right:
//
//	╭─ Title ───────────── Value ╮
func SectionHeader(title, value string, width int) string {
	width = max(width, 10)
	// "╭─ " + title + " " on the left, " " + value + " ╮" on the right.
	fill := max(width-lipgloss.Width(title)-lipgloss.Width(value)-7, 1)

	return borderStyle.Render("╭─ ") +
		fg(ColorAccent).Bold(true).Render(title) +
		borderStyle.Render(" "+strings.Repeat("─", fill)+" ") +
		fg(ColorGraph).Bold(true).Render(value) +
		borderStyle.Render(" ╮")
}

// SectionContentLine draws one panel row, padding content out to the right edge.
func SectionContentLine(content string, width int) string {
	width = max(width, 4)
	pad := max(width-4-lipgloss.Width(content), 0)
	return borderStyle.Render("│") + " " + content + strings.Repeat(" ", pad) + " " + borderStyle.Render("│")
}

// SectionFooter draws the bottom edge of a panel.
func SectionFooter(width int) string {
	width = max(width, 2)
	return borderStyle.Render("╰" + strings.Repeat("─", width-2) + "╯")
}
