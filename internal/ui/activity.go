package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Activity is the dashboard's "working on it" line: a spinner, a label and,
// once the wait passes a second, the elapsed time.
type Activity struct {
	spinner spinner.Model
	label   string
	started time.Time
	now     func() time.Time
}

// NewActivity starts an activity labelled label.
func NewActivity(label string) Activity {
	sp := spinner.New()
	sp.Spinner = SpinnerFrames
	sp.Style = lipgloss.NewStyle().Foreground(ColorNeonCyan)

	return Activity{spinner: sp, label: label, started: time.Now(), now: time.Now}
}

// Tick schedules the next animation frame.
func (a Activity) Tick() tea.Cmd {
	return a.spinner.Tick
}

// Update advances the animation on spinner ticks and ignores other messages.
func (a Activity) Update(msg tea.Msg) (Activity, tea.Cmd) {
	tick, ok := msg.(spinner.TickMsg)
	if !ok {
		return a, nil
	}
	var cmd tea.Cmd
	a.spinner, cmd = a.spinner.Update(tick)
	return a, cmd
}

// Label returns what the activity is waiting on.
func (a Activity) Label() string {
	return a.label
}

// View renders the current frame.
func (a Activity) View() string {
	out := a.spinner.View() + " " + a.label + "..."
	if elapsed := a.now().Sub(a.started); elapsed >= time.Second {
		out += " " + MutedStyle().Render(formatDuration(elapsed))
	}
	return out
}
