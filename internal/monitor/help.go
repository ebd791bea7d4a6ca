package monitor

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

// HelpBinding represents a single keyboard shortcut entry.
type HelpBinding struct {
	Key  string
	Desc string
}

// helpBindings defines all keyboard shortcuts shown in the help overlay.
var helpBindings = []HelpBinding{
	{Key: "/", Desc: "Look up a server by code or cfx.re/join link"},
	{Key: "s", Desc: "Search the directory"},
	{Key: "b", Desc: "Browse the full directory, with an optional filter"},
	{Key: "f", Desc: "Add or remove the shown server from favorites"},
	{Key: "F", Desc: "Show favorites"},
	{Key: "R", Desc: "Show recent searches"},
	{Key: "r", Desc: "Refresh now"},
	{Key: "up / k", Desc: "Select previous entry"},
	{Key: "down / j", Desc: "Select next entry"},
	{Key: "Enter", Desc: "Open selected entry"},
	{Key: "Esc", Desc: "Back / close"},
	{Key: "?", Desc: "Toggle this help"},
	{Key: "q / Ctrl+C", Desc: "Quit"},
}

const helpIntro = `The watched server refreshes on a fixed interval. The chart shows the
most recent samples as a share of max players. Favorites keep the snapshot
from when they were added; opening one shows that snapshot without a new request.`

// Help overlay styles
var (
	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(0, 1)

	helpTitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			MarginBottom(1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Width(14)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)
)

// helpMarkdown builds the help page as markdown.
func helpMarkdown() string {
	var b strings.Builder
	b.WriteString("# Keyboard shortcuts\n\n")
	b.WriteString(helpIntro)
	b.WriteString("\n\n| Key | Action |\n|---|---|\n")
	for _, h := range helpBindings {
		b.WriteString("| `" + h.Key + "` | " + h.Desc + " |\n")
	}
	return b.String()
}

// renderHelpMarkdown renders the help page with glamour at the given wrap width.
func renderHelpMarkdown(width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.DarkStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(helpMarkdown())
}

// renderHelpPlain is the lipgloss fallback when markdown rendering fails.
func renderHelpPlain() string {
	var lines []string
	lines = append(lines, helpTitleStyle.Render("Keyboard Shortcuts"))
	for _, binding := range helpBindings {
		lines = append(lines, helpKeyStyle.Render(binding.Key)+helpDescStyle.Render(binding.Desc))
	}
	return strings.Join(lines, "\n")
}

// helpSize returns the help viewport dimensions for the terminal size.
func (m Model) helpSize() (int, int) {
	w, h := m.width-6, m.height-4
	if m.width <= 0 {
		w = defaultWidth - 6
	}
	if m.height <= 0 {
		h = 24
	}
	if w < 20 {
		w = 20
	}
	if h < 5 {
		h = 5
	}
	return w, h
}

// resizeHelp fits the help viewport to the terminal.
func (m *Model) resizeHelp() {
	w, h := m.helpSize()
	if !m.helpReady {
		m.helpView = viewport.New(w, h)
		m.helpReady = true
	} else {
		m.helpView.Width = w
		m.helpView.Height = h
	}
	if m.showHelp {
		m.refreshHelp()
	}
}

// refreshHelp renders the help content into the viewport.
func (m *Model) refreshHelp() {
	if !m.helpReady {
		m.resizeHelp()
	}
	content, err := renderHelpMarkdown(m.helpView.Width)
	if err != nil {
		content = renderHelpPlain()
	}
	m.helpView.SetContent(content)
	m.helpView.GotoTop()
}

// renderHelpOverlay renders a centered, scrollable help box.
func (m Model) renderHelpOverlay() string {
	box := helpBoxStyle.Render(m.helpView.View() + "\n" + MutedStyle.Render("Press ? or Esc to close"))
	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(ColorDarkBg),
	)
}
