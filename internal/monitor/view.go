package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/cfx/internal/server"
	"github.com/rileyhilliard/cfx/internal/ui"
	"github.com/rileyhilliard/cfx/internal/util"
)

const (
	defaultWidth   = 80
	chartHeight    = 4
	maxPlayerNames = 12
	// chrome is the number of lines used outside the body: header, blank
	// line, notification, input and footer.
	chrome = 7
)

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.viewMode {
	case ViewResults:
		b.WriteString(m.renderResults())
	case ViewFavorites:
		b.WriteString(m.renderFavorites())
	case ViewRecent:
		b.WriteString(m.renderRecent())
	default:
		b.WriteString(m.renderServer())
	}

	if status := m.renderStatusLine(); status != "" {
		b.WriteString("\n")
		b.WriteString(status)
	}

	if m.inputMode != InputNone {
		b.WriteString("\n")
		b.WriteString(InputStyle.Render(m.input.View()))
	}

	if m.ShowFooter() {
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
	}

	return b.String()
}

// renderHeader renders the title bar with the watched server and refresh age.
func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("cfx")

	parts := []string{util.Count(len(m.favorites), "favorite", "favorites")}
	if m.current != nil {
		parts = append(parts, "every "+m.interval.String(), "updated "+formatAge(m.SecondsSinceUpdate()))
	}

	stats := lipgloss.NewStyle().
		Foreground(ColorTextSecondary).
		Render(" | " + strings.Join(parts, " | "))

	return HeaderStyle.Render(title + stats)
}

// renderServer renders the watched server panel.
func (m Model) renderServer() string {
	if m.current == nil {
		return LabelStyle.Render("Press / to look up a server by code, s to search, b to browse the directory")
	}

	s := *m.current
	width := m.panelWidth()

	var lines []string
	lines = append(lines, SectionHeader(m.titleFor(s), fmt.Sprintf("%d/%d", s.Players, s.MaxPlayers), width))

	lines = append(lines, SectionContentLine(LabelStyle.Render("id    ")+ValueStyle.Render(s.ID), width))
	lines = append(lines, SectionContentLine(
		LabelStyle.Render("mode  ")+ValueStyle.Render(s.Details.GameMode)+
			MutedStyle.Render("  map ")+ValueStyle.Render(s.Details.MapName), width))
	lines = append(lines, SectionContentLine(
		LabelStyle.Render("ver   ")+ValueStyle.Render(s.Details.Version)+
			MutedStyle.Render("  ping ")+lipgloss.NewStyle().Foreground(PingColor(s.Ping)).Render(fmt.Sprintf("%dms", s.Ping)), width))

	barWidth := width - 16
	if barWidth < 10 {
		barWidth = 10
	}
	occ := s.Occupancy()
	lines = append(lines, SectionContentLine(
		LabelStyle.Render("full  ")+ProgressBar(barWidth, occ)+ValueStyle.Render(fmt.Sprintf(" %3.0f%%", occ)), width))

	lines = append(lines, SectionContentLine("", width))
	lines = append(lines, m.renderChart(s, width)...)

	lines = append(lines, SectionContentLine("", width))
	lines = append(lines, SectionContentLine(LabelStyle.Render("players ")+playerNames(s.PlayerList), width))

	lines = append(lines, SectionFooter(width))
	return strings.Join(lines, "\n")
}

// renderChart renders the player history chart rows.
func (m Model) renderChart(s server.Snapshot, width int) []string {
	series := occupancySeries(m.history, s.MaxPlayers)
	if len(series) == 0 {
		return []string{SectionContentLine(MutedStyle.Render("collecting samples..."), width)}
	}

	label := MutedStyle.Render(fmt.Sprintf("last %d samples", len(series)))
	if m.Compact() {
		return []string{SectionContentLine(ui.RenderSparkline(series, width-6)+" "+label, width)}
	}

	chartWidth := (width - 4) / 2
	if chartWidth > DefaultHistorySize/2 {
		chartWidth = DefaultHistorySize / 2
	}
	chart := RenderPlayerChart(series, chartWidth, chartHeight, s.MaxPlayers > 0)

	var lines []string
	for _, row := range strings.Split(chart, "\n") {
		lines = append(lines, SectionContentLine(row, width))
	}
	lines = append(lines, SectionContentLine(label, width))
	return lines
}

// renderResults renders search or browse results.
func (m Model) renderResults() string {
	title := fmt.Sprintf("Results for %q (%d)", m.resultsQuery, len(m.results))
	if m.resultsQuery == "" {
		title = fmt.Sprintf("Directory (%d)", len(m.results))
	}
	if len(m.results) == 0 {
		return ServerNameStyle.Render(title) + "\n" + LabelStyle.Render("No servers")
	}

	rows := make([]string, len(m.results))
	for i, s := range m.results {
		rows[i] = m.serverRow(s)
	}
	return ServerNameStyle.Render(title) + "\n" + m.renderList(rows)
}

// renderFavorites renders the favorites panel.
func (m Model) renderFavorites() string {
	title := fmt.Sprintf("Favorites (%d)", len(m.favorites))
	if len(m.favorites) == 0 {
		return ServerNameStyle.Render(title) + "\n" + LabelStyle.Render("No favorites yet. Press f while viewing a server to add it.")
	}

	rows := make([]string, len(m.favorites))
	for i, s := range m.favorites {
		rows[i] = m.serverRow(s)
	}
	return ServerNameStyle.Render(title) + "\n" + m.renderList(rows)
}

// renderRecent renders the recent searches panel.
func (m Model) renderRecent() string {
	title := fmt.Sprintf("Recent searches (%d)", len(m.recent))
	if len(m.recent) == 0 {
		return ServerNameStyle.Render(title) + "\n" + LabelStyle.Render("No recent searches")
	}
	return ServerNameStyle.Render(title) + "\n" + m.renderList(m.recent)
}

// renderList renders rows with the selection pointer, windowed to the terminal height.
func (m Model) renderList(rows []string) string {
	start, end := visibleWindow(len(rows), m.selected, m.bodyHeight())

	var out []string
	for i := start; i < end; i++ {
		if i == m.selected {
			out = append(out, SelectedRowStyle.Render(GlyphPointer+" ")+rows[i])
		} else {
			out = append(out, "  "+rows[i])
		}
	}
	if start > 0 || end < len(rows) {
		out = append(out, MutedStyle.Render(fmt.Sprintf("  %d-%d of %d", start+1, end, len(rows))))
	}
	return strings.Join(out, "\n")
}

// serverRow renders one server as a list row.
func (m Model) serverRow(s server.Snapshot) string {
	name := truncate(m.titleFor(s), 40)
	count := lipgloss.NewStyle().Foreground(MetricColor(s.Occupancy())).Render(fmt.Sprintf("%d/%d", s.Players, s.MaxPlayers))
	return padRight(name, 42) + " " + padRight(count, 9) + " " + MutedStyle.Render(s.Details.GameMode)
}

// titleFor prefixes the name with a star for favorites.
func (m Model) titleFor(s server.Snapshot) string {
	for _, f := range m.favorites {
		if f.ID == s.ID {
			return FavoriteMarkStyle.Render(GlyphFavorite) + " " + s.Name
		}
	}
	return s.Name
}

// renderStatusLine renders the loading activity or the active notification.
func (m Model) renderStatusLine() string {
	if m.loading {
		return m.activity.View()
	}
	if m.note != nil {
		return NotificationStyle(m.note.Severity).Render(m.note.Message)
	}
	return ""
}

// renderFooter renders the keyboard help footer.
func (m Model) renderFooter() string {
	var hints []string
	switch {
	case m.inputMode != InputNone:
		hints = []string{"enter submit", "esc cancel"}
	case m.viewMode == ViewServer:
		hints = []string{"/ lookup", "s search", "b browse", "f favorite", "F favorites", "r refresh", "? help", "q quit"}
	default:
		hints = []string{"↑↓ select", "enter open", "esc back", "? help", "q quit"}
	}
	return FooterStyle.Render(strings.Join(hints, " | "))
}

func (m Model) panelWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	if m.width > 100 {
		return 100
	}
	return m.width - 2
}

func (m Model) bodyHeight() int {
	if m.height <= 0 {
		return 20
	}
	h := m.height - chrome
	if h < 3 {
		h = 3
	}
	return h
}

// visibleWindow returns the [start, end) slice of n rows that keeps selected
// visible within size rows.
func visibleWindow(n, selected, size int) (int, int) {
	if n <= size || size <= 0 {
		return 0, n
	}
	start := selected - size/2
	if start < 0 {
		start = 0
	}
	end := start + size
	if end > n {
		end = n
		start = n - size
	}
	return start, end
}

// playerNames renders the player list, truncated after maxPlayerNames.
func playerNames(names []string) string {
	if len(names) == 0 {
		return MutedStyle.Render("none online")
	}
	shown := names
	if len(shown) > maxPlayerNames {
		shown = shown[:maxPlayerNames]
	}
	out := ValueStyle.Render(strings.Join(shown, ", "))
	if extra := len(names) - len(shown); extra > 0 {
		out += MutedStyle.Render(fmt.Sprintf(" +%d more", extra))
	}
	return out
}

func formatAge(seconds int) string {
	switch seconds {
	case 0:
		return "just now"
	case 1:
		return "1s ago"
	default:
		return fmt.Sprintf("%ds ago", seconds)
	}
}

// padRight pads s with spaces to width display cells.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// truncate shortens s to width display cells.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
