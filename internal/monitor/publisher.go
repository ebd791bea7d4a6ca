package monitor

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/cfx/internal/server"
	"github.com/rileyhilliard/cfx/internal/ui"
	"github.com/rileyhilliard/cfx/internal/util"
)

// Publisher is the render surface the data components push to.
// Implementations are called with the poller's lock held and must not call
// back into the Poller.
type Publisher interface {
	// PublishSnapshot delivers a fresh snapshot and the server's chart history.
	PublishSnapshot(snap server.Snapshot, history []HistorySample)
	// Notify delivers a transient success or error message.
	Notify(n Notification)
	// PublishLists delivers the current favorites and recent searches.
	PublishLists(l Lists)
	// PublishResults delivers search or browse results.
	PublishResults(query string, results []server.Snapshot)
}

// NopPublisher discards everything.
type NopPublisher struct{}

func (NopPublisher) PublishSnapshot(server.Snapshot, []HistorySample) {}
func (NopPublisher) Notify(Notification)                              {}
func (NopPublisher) PublishLists(Lists)                               {}
func (NopPublisher) PublishResults(string, []server.Snapshot)         {}

// Event messages carried by ChanPublisher. Each is also a tea.Msg.
type (
	SnapshotEvent struct {
		Snapshot server.Snapshot
		History  []HistorySample
	}
	NotifyEvent struct {
		Notification
	}
	ListsEvent struct {
		Lists
	}
	ResultsEvent struct {
		Query   string
		Results []server.Snapshot
	}
)

// DefaultEventBuffer is the ChanPublisher channel capacity.
const DefaultEventBuffer = 64

// ChanPublisher forwards published data as events on a buffered channel.
// The TUI model drains it with a waiting command. Sends never block; when the
// buffer is full the event is dropped and counted.
type ChanPublisher struct {
	mu      sync.Mutex
	events  chan any
	closed  bool
	dropped int
}

// NewChanPublisher creates a publisher with the given buffer size.
func NewChanPublisher(buffer int) *ChanPublisher {
	if buffer <= 0 {
		buffer = DefaultEventBuffer
	}
	return &ChanPublisher{events: make(chan any, buffer)}
}

// Events returns the receive side of the event channel.
// The channel is closed by Close.
func (p *ChanPublisher) Events() <-chan any {
	return p.events
}

// Dropped returns how many events were discarded because the buffer was full.
func (p *ChanPublisher) Dropped() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dropped
}

// Close closes the event channel. Later publishes are ignored.
func (p *ChanPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.events)
}

func (p *ChanPublisher) PublishSnapshot(snap server.Snapshot, history []HistorySample) {
	p.send(SnapshotEvent{Snapshot: snap.Clone(), History: history})
}

func (p *ChanPublisher) Notify(n Notification) {
	p.send(NotifyEvent{Notification: n})
}

func (p *ChanPublisher) PublishLists(l Lists) {
	p.send(ListsEvent{Lists: l})
}

func (p *ChanPublisher) PublishResults(query string, results []server.Snapshot) {
	p.send(ResultsEvent{Query: query, Results: results})
}

func (p *ChanPublisher) send(ev any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	select {
	case p.events <- ev:
	default:
		p.dropped++
	}
}

// LinePublisher prints one line per event. Used when stdout is not a terminal
// and by the one-shot commands.
type LinePublisher struct {
	mu         sync.Mutex
	w          io.Writer
	chartWidth int
}

// NewLinePublisher writes to w.
func NewLinePublisher(w io.Writer) *LinePublisher {
	return &LinePublisher{w: w, chartWidth: DefaultHistorySize}
}

var (
	lineTimeStyle  = lipgloss.NewStyle().Foreground(ui.ColorMuted)
	lineNameStyle  = lipgloss.NewStyle().Bold(true)
	lineErrorStyle = lipgloss.NewStyle().Foreground(ui.ColorError)
	lineOKStyle    = lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	lineInfoStyle  = lipgloss.NewStyle().Foreground(ui.ColorInfo)
)

func (p *LinePublisher) PublishSnapshot(snap server.Snapshot, history []HistorySample) {
	p.mu.Lock()
	defer p.mu.Unlock()

	line := fmt.Sprintf("%s  %d/%d players  %dms",
		lineNameStyle.Render(snap.Name), snap.Players, snap.MaxPlayers, snap.Ping)

	if chart := ui.RenderSparkline(occupancySeries(history, snap.MaxPlayers), p.chartWidth); chart != "" {
		line += "  " + chart
	}
	if len(history) > 0 {
		ts := history[len(history)-1].Timestamp.Format("15:04:05")
		line = lineTimeStyle.Render(ts) + "  " + line
	}
	fmt.Fprintln(p.w, line)
}

func (p *LinePublisher) Notify(n Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch n.Severity {
	case SeverityError:
		fmt.Fprintln(p.w, lineErrorStyle.Render(ui.SymbolFail+" "+n.Message))
	case SeveritySuccess:
		fmt.Fprintln(p.w, lineOKStyle.Render(ui.SymbolSuccess+" "+n.Message))
	default:
		fmt.Fprintln(p.w, lineInfoStyle.Render(n.Message))
	}
}

func (p *LinePublisher) PublishLists(l Lists) {
	p.mu.Lock()
	defer p.mu.Unlock()

	names := make([]string, len(l.Favorites))
	for i, f := range l.Favorites {
		names[i] = f.Name
	}
	fmt.Fprintf(p.w, "favorites: %s\n", util.JoinOrNone(names))
	fmt.Fprintf(p.w, "recent: %s\n", util.JoinOrNone(l.Recent))
}

func (p *LinePublisher) PublishResults(query string, results []server.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.w, RenderResultsTable(results))
}

// RenderResultsTable renders search or browse results as a plain table.
func RenderResultsTable(results []server.Snapshot) string {
	if len(results) == 0 {
		return "No servers"
	}
	cols := []ui.Column{
		{Title: "ID"},
		{Title: "NAME", Max: 40},
		{Title: "PLAYERS"},
		{Title: "MODE", Max: 16},
	}
	rows := make([][]string, len(results))
	for i, s := range results {
		rows[i] = []string{
			s.ID,
			s.Name,
			fmt.Sprintf("%d/%d", s.Players, s.MaxPlayers),
			s.Details.GameMode,
		}
	}
	return ui.RenderTable(cols, rows)
}

// occupancySeries converts samples to percentages of maxPlayers for charting.
// Raw counts are returned when maxPlayers is unknown.
func occupancySeries(history []HistorySample, maxPlayers int) []float64 {
	if len(history) == 0 {
		return nil
	}
	out := make([]float64, len(history))
	for i, s := range history {
		if maxPlayers > 0 {
			out[i] = float64(s.Players) / float64(maxPlayers) * 100
		} else {
			out[i] = float64(s.Players)
		}
	}
	return out
}
