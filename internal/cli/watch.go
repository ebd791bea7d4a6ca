package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/cfx/internal/app"
	"github.com/rileyhilliard/cfx/internal/errors"
	"github.com/rileyhilliard/cfx/internal/monitor"
	"github.com/rileyhilliard/cfx/internal/server"
)

// watchCommand opens the dashboard on a terminal, or streams one line per
// refresh otherwise.
func watchCommand(ctx context.Context, w io.Writer, input string) error {
	if interactive() {
		return watchDashboard(input)
	}

	if input == "" {
		return errors.New(errors.ErrEmptyInput,
			"A server code is required when output is not a terminal",
			"Usage: cfx watch <code|cfx.re/join/code>")
	}

	var pub monitor.Publisher = monitor.NewLinePublisher(w)
	if machineMode {
		pub = newJSONPublisher(w)
	}

	sess, err := newSession(pub)
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watchLines(ctx, sess.app, input)
}

// watchLines starts a session and blocks until ctx is done.
func watchLines(ctx context.Context, a *app.App, input string) error {
	if _, err := a.Lookup(ctx, input); err != nil {
		return err
	}
	<-ctx.Done()
	a.Close()
	return nil
}

// watchDashboard runs the full-screen dashboard until the user quits.
func watchDashboard(input string) error {
	pub := monitor.NewChanPublisher(0)
	sess, err := newSession(pub)
	if err != nil {
		return err
	}

	model := monitor.NewModel(sess.app, pub.Events(), monitor.ModelOptions{
		Interval:    sess.app.Interval(),
		InitialCode: input,
		Lists:       sess.app.Lists(),
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()

	// Stop the poller before closing the channel it publishes to
	sess.Close()
	pub.Close()
	if dropped := pub.Dropped(); dropped > 0 {
		sess.log.Warn("dashboard dropped %d events", dropped)
	}
	return err
}

// watchEvent is one line of --json watch output.
type watchEvent struct {
	Event        string                  `json:"event"`
	Time         time.Time               `json:"time"`
	Server       *server.Snapshot        `json:"server,omitempty"`
	History      []monitor.HistorySample `json:"history,omitempty"`
	Message      string                  `json:"message,omitempty"`
	Severity     string                  `json:"severity,omitempty"`
	Query        string                  `json:"query,omitempty"`
	Results      []server.Snapshot       `json:"results,omitempty"`
	Favorites    []server.Snapshot       `json:"favorites,omitempty"`
	RecentSearch []string                `json:"recent,omitempty"`
}

// jsonPublisher writes each event as a compact JSON envelope per line.
type jsonPublisher struct {
	mu  sync.Mutex
	enc *json.Encoder
	now func() time.Time
}

func newJSONPublisher(w io.Writer) *jsonPublisher {
	return &jsonPublisher{enc: json.NewEncoder(w), now: time.Now}
}

func (p *jsonPublisher) PublishSnapshot(snap server.Snapshot, history []monitor.HistorySample) {
	p.write(watchEvent{Event: "snapshot", Server: &snap, History: history})
}

func (p *jsonPublisher) Notify(n monitor.Notification) {
	p.write(watchEvent{Event: "notification", Message: n.Message, Severity: n.Severity.String()})
}

func (p *jsonPublisher) PublishLists(l monitor.Lists) {
	p.write(watchEvent{Event: "lists", Favorites: l.Favorites, RecentSearch: l.Recent})
}

func (p *jsonPublisher) PublishResults(query string, results []server.Snapshot) {
	p.write(watchEvent{Event: "results", Query: query, Results: results})
}

func (p *jsonPublisher) write(ev watchEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ev.Time = p.now()
	_ = p.enc.Encode(JSONEnvelope{Success: ev.Severity != monitor.SeverityError.String(), Data: ev})
}
