package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderInfo is the content of the banner printed by version and config show.
type HeaderInfo struct {
	Version string
	Tagline string
	// Detail is an optional muted line, such as the config file in use.
	Detail string
}

// HeaderWidth is the width of the divider under the banner.
const HeaderWidth = 50

// RenderHeader renders the cfx banner.
func RenderHeader(info HeaderInfo) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(ColorNeonPink).
		Bold(true)
	versionStyle := lipgloss.NewStyle().Foreground(ColorNeonCyan)
	dividerStyle := lipgloss.NewStyle().Foreground(ColorGlassBorder)

	var b strings.Builder
	b.WriteString(titleStyle.Render("cfx"))
	if info.Version != "" {
		b.WriteString(" ")
		b.WriteString(versionStyle.Render(info.Version))
	}
	b.WriteString("\n")

	if info.Tagline != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(ColorSecondary).Render(info.Tagline))
		b.WriteString("\n")
	}
	if info.Detail != "" {
		b.WriteString(MutedStyle().Render(info.Detail))
		b.WriteString("\n")
	}

	b.WriteString(dividerStyle.Render(strings.Repeat("━", HeaderWidth)))
	b.WriteString("\n")
	return b.String()
}
