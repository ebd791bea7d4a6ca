package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/cfx/internal/server"
	"github.com/rileyhilliard/cfx/internal/store"
	"github.com/rileyhilliard/cfx/internal/ui"
)

// NotificationTTL is how long a notification stays on screen.
const NotificationTTL = 3 * time.Second

// Layout breakpoints.
const (
	BreakpointCompact = 80
	HeightMinimal     = 20
)

// Controller is the application surface the dashboard drives.
// Results come back through the Publisher events, not return values.
type Controller interface {
	Lookup(ctx context.Context, input string) (server.Snapshot, error)
	Search(ctx context.Context, query string) ([]server.Snapshot, error)
	Browse(ctx context.Context, filter string) ([]server.Snapshot, error)
	ToggleFavorite() (store.Action, error)
	ShowFavorite(id string) (server.Snapshot, bool)
	Refresh(ctx context.Context) error
}

// ModelOptions configures the dashboard.
type ModelOptions struct {
	// Interval is the refresh period shown in the header.
	Interval time.Duration
	// InitialCode is looked up on start when set.
	InitialCode string
	// Lists seeds the favorites and recent panels.
	Lists Lists
}

// Model is the Bubble Tea model for the server dashboard.
type Model struct {
	ctl    Controller
	events <-chan any
	ctx    context.Context
	cancel context.CancelFunc

	width    int
	height   int
	interval time.Duration
	initial  string

	viewMode  ViewMode
	inputMode InputMode
	input     textinput.Model
	activity  ui.Activity
	loading   bool

	current    *server.Snapshot
	history    []HistorySample
	lastUpdate time.Time

	favorites    []server.Snapshot
	recent       []string
	results      []server.Snapshot
	resultsQuery string
	selected     int

	note    *Notification
	noteSeq int

	showHelp  bool
	helpView  viewport.Model
	helpReady bool

	quitting bool
}

// clockTickMsg refreshes the "last update" label.
type clockTickMsg time.Time

// eventsClosedMsg reports that the publisher channel was closed.
type eventsClosedMsg struct{}

// opKind names a controller operation started from the dashboard.
type opKind int

const (
	opLookup opKind = iota
	opSearch
	opBrowse
	opShowFavorite
)

// opDoneMsg reports that a controller operation finished. Its outcome was
// already published as events.
type opDoneMsg struct {
	op  opKind
	err error
}

// clearNotificationMsg expires the notification with the given sequence.
type clearNotificationMsg struct {
	seq int
}

// NewModel creates a dashboard bound to ctl that renders events read from events.
func NewModel(ctl Controller, events <-chan any, opts ModelOptions) Model {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}

	in := textinput.New()
	in.CharLimit = 128
	in.Width = 40

	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		ctl:       ctl,
		events:    events,
		ctx:       ctx,
		cancel:    cancel,
		interval:  opts.Interval,
		initial:   opts.InitialCode,
		input:     in,
		favorites: opts.Lists.Favorites,
		recent:    opts.Lists.Recent,
	}
	if m.initial != "" {
		m.loading = true
		m.activity = ui.NewActivity("Looking up " + m.initial)
	}
	return m
}

// Init starts listening for events and runs the initial lookup, if any.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		waitForEvent(m.events),
		clockTickCmd(),
	}
	if m.initial != "" {
		cmds = append(cmds, m.activity.Tick(), m.lookupCmd(m.initial))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeHelp()

	case clockTickMsg:
		return m, clockTickCmd()

	case SnapshotEvent:
		snap := msg.Snapshot
		m.current = &snap
		m.history = msg.History
		m.lastUpdate = time.Now()
		return m, waitForEvent(m.events)

	case NotifyEvent:
		m.noteSeq++
		n := msg.Notification
		m.note = &n
		return m, tea.Batch(waitForEvent(m.events), expireNotificationCmd(m.noteSeq))

	case ListsEvent:
		m.favorites = msg.Favorites
		m.recent = msg.Recent
		m.clampSelection()
		return m, waitForEvent(m.events)

	case ResultsEvent:
		m.results = msg.Results
		m.resultsQuery = msg.Query
		m.setView(ViewResults)
		return m, waitForEvent(m.events)

	case eventsClosedMsg:
		return m, nil

	case opDoneMsg:
		m.loading = false
		if msg.err != nil {
			return m, nil
		}
		if msg.op == opLookup || msg.op == opShowFavorite {
			m.setView(ViewServer)
		}

	case clearNotificationMsg:
		if msg.seq == m.noteSeq {
			m.note = nil
		}

	default:
		if m.loading {
			var cmd tea.Cmd
			m.activity, cmd = m.activity.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderDashboard()
}

// Current returns the displayed snapshot.
func (m Model) Current() (server.Snapshot, bool) {
	if m.current == nil {
		return server.Snapshot{}, false
	}
	return *m.current, true
}

// Notification returns the visible notification.
func (m Model) Notification() (Notification, bool) {
	if m.note == nil {
		return Notification{}, false
	}
	return *m.note, true
}

// Mode returns the active panel.
func (m Model) Mode() ViewMode {
	return m.viewMode
}

// SecondsSinceUpdate returns how many seconds have passed since the last snapshot.
func (m Model) SecondsSinceUpdate() int {
	if m.lastUpdate.IsZero() {
		return 0
	}
	return int(time.Since(m.lastUpdate).Seconds())
}

// ShowFooter returns true if the terminal is tall enough to show the footer.
func (m Model) ShowFooter() bool {
	return m.height == 0 || m.height >= HeightMinimal
}

// Compact reports whether the terminal is too narrow for the chart.
func (m Model) Compact() bool {
	return m.width > 0 && m.width < BreakpointCompact
}

func (m *Model) quit() {
	m.quitting = true
	m.cancel()
}

func (m *Model) setView(v ViewMode) {
	if m.viewMode != v {
		m.selected = 0
	}
	m.viewMode = v
}

// listLen returns the length of the list shown by the active panel.
func (m Model) listLen() int {
	switch m.viewMode {
	case ViewResults:
		return len(m.results)
	case ViewFavorites:
		return len(m.favorites)
	case ViewRecent:
		return len(m.recent)
	default:
		return 0
	}
}

func (m *Model) clampSelection() {
	n := m.listLen()
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model) openInput(mode InputMode) tea.Cmd {
	m.inputMode = mode
	m.input.Prompt = mode.Prompt()
	m.input.SetValue("")
	return m.input.Focus()
}

func (m *Model) closeInput() {
	m.inputMode = InputNone
	m.input.Blur()
	m.input.SetValue("")
}

// submitCmd runs the controller operation for a submitted input.
func (m *Model) submitCmd(mode InputMode, value string) tea.Cmd {
	switch mode {
	case InputLookup:
		return m.startLoading("Looking up "+value, m.lookupCmd(value))
	case InputSearch:
		return m.startLoading("Searching "+value, m.searchCmd(value))
	case InputFilter:
		return m.startLoading("Loading directory", m.browseCmd(value))
	}
	return nil
}

// selectCmd acts on the highlighted list entry.
func (m *Model) selectCmd() tea.Cmd {
	switch m.viewMode {
	case ViewResults:
		if m.selected < len(m.results) {
			id := m.results[m.selected].ID
			return m.startLoading("Looking up "+id, m.lookupCmd(id))
		}
	case ViewRecent:
		if m.selected < len(m.recent) {
			code := m.recent[m.selected]
			return m.startLoading("Looking up "+code, m.lookupCmd(code))
		}
	case ViewFavorites:
		if m.selected < len(m.favorites) {
			id := m.favorites[m.selected].ID
			ctl := m.ctl
			return func() tea.Msg {
				if _, ok := ctl.ShowFavorite(id); !ok {
					return nil
				}
				return opDoneMsg{op: opShowFavorite}
			}
		}
	}
	return nil
}

func (m *Model) startLoading(label string, op tea.Cmd) tea.Cmd {
	m.loading = true
	m.activity = ui.NewActivity(label)
	return tea.Batch(m.activity.Tick(), op)
}

func (m Model) lookupCmd(code string) tea.Cmd {
	ctx, ctl := m.ctx, m.ctl
	return func() tea.Msg {
		_, err := ctl.Lookup(ctx, code)
		return opDoneMsg{op: opLookup, err: err}
	}
}

func (m Model) searchCmd(query string) tea.Cmd {
	ctx, ctl := m.ctx, m.ctl
	return func() tea.Msg {
		_, err := ctl.Search(ctx, query)
		return opDoneMsg{op: opSearch, err: err}
	}
}

func (m Model) browseCmd(filter string) tea.Cmd {
	ctx, ctl := m.ctx, m.ctl
	return func() tea.Msg {
		_, err := ctl.Browse(ctx, filter)
		return opDoneMsg{op: opBrowse, err: err}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	ctx, ctl := m.ctx, m.ctl
	return func() tea.Msg {
		_ = ctl.Refresh(ctx)
		return nil
	}
}

func (m Model) toggleFavoriteCmd() tea.Cmd {
	ctl := m.ctl
	return func() tea.Msg {
		_, _ = ctl.ToggleFavorite()
		return nil
	}
}

// waitForEvent blocks for the next published event.
func waitForEvent(events <-chan any) tea.Cmd {
	return func() tea.Msg {
		if events == nil {
			return eventsClosedMsg{}
		}
		ev, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return ev
	}
}

func clockTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

func expireNotificationCmd(seq int) tea.Cmd {
	return tea.Tick(NotificationTTL, func(time.Time) tea.Msg {
		return clearNotificationMsg{seq: seq}
	})
}
