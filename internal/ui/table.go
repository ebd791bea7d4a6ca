package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Column is one table column. Columns grow to fit their widest cell up to
// Max; a Max of zero means no limit. Longer cells are cut with an ellipsis.
type Column struct {
	Title string
	Max   int
}

// RenderTable renders rows under a bordered header for one-shot output.
// It returns "" when there are no rows.
func RenderTable(columns []Column, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{Title: c.Title, Width: fitWidth(c, i, rows)}
	}
	body := make([]table.Row, len(rows))
	for i, r := range rows {
		body[i] = table.Row(r)
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Bold(true).
		Foreground(ColorNeonPink).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorGlassBorder).
		BorderBottom(true)
	styles.Cell = styles.Cell.Foreground(ColorPrimary)
	// Nothing is focused in static output, so the cursor row looks like the rest.
	styles.Selected = lipgloss.NewStyle().Foreground(ColorPrimary)

	// WithHeight measures against the default one-line header, so it has to
	// run before WithStyles adds the border.
	t := table.New(
		table.WithColumns(cols),
		table.WithRows(body),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1),
		table.WithStyles(styles),
	)
	return t.View()
}

// fitWidth sizes column i to its title and widest cell, capped at c.Max.
func fitWidth(c Column, i int, rows [][]string) int {
	w := lipgloss.Width(c.Title)
	for _, r := range rows {
		if i < len(r) {
			w = max(w, lipgloss.Width(r[i]))
		}
	}
	if c.Max > 0 {
		w = min(w, c.Max)
	}
	return w
}

// RenderKeyValues renders "key  value" lines with the keys muted and aligned.
func RenderKeyValues(pairs [][2]string) string {
	keyWidth := 0
	for _, p := range pairs {
		keyWidth = max(keyWidth, lipgloss.Width(p[0]))
	}
	key := lipgloss.NewStyle().Foreground(ColorMuted).Width(keyWidth)

	var b strings.Builder
	for _, p := range pairs {
		b.WriteString(key.Render(p[0]) + "  " + p[1] + "\n")
	}
	return b.String()
}
