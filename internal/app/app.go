// Package app is the application context for cfx. It owns the directory
// client, the history cache, the poller and the persisted lists, and
// implements the lookup, search, browse and favorite flows on top of them.
// Everything the user should see is pushed to the injected Publisher.
package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rileyhilliard/cfx/internal/directory"
	"github.com/rileyhilliard/cfx/internal/errors"
	"github.com/rileyhilliard/cfx/internal/logger"
	"github.com/rileyhilliard/cfx/internal/monitor"
	"github.com/rileyhilliard/cfx/internal/server"
	"github.com/rileyhilliard/cfx/internal/store"
)

// ErrNoServer is returned by ToggleFavorite when nothing is displayed.
const ErrNoServer = "NO_SERVER"

// Notification messages for favorite toggles.
const (
	MsgFavoriteAdded   = "Added to favorites"
	MsgFavoriteRemoved = "Removed from favorites"
)

// Directory is the server directory the app reads from.
// *directory.Client satisfies it.
type Directory interface {
	monitor.Fetcher
	SearchMany(ctx context.Context, query string) ([]server.Snapshot, error)
	ListAll(ctx context.Context) ([]server.Snapshot, error)
}

// Options configures an App. Zero values fall back to package defaults.
type Options struct {
	Directory    Directory
	Store        store.Store
	Publisher    monitor.Publisher
	Logger       logger.Logger
	Interval     time.Duration
	ChartPoints  int
	MaxRecent    int
	MaxFavorites int
	Now          func() time.Time
}

// App wires the data components together. Safe for concurrent use.
type App struct {
	dir       Directory
	history   *monitor.History
	poller    *monitor.Poller
	recent    *store.Recent
	favorites *store.Favorites
	pub       monitor.Publisher
	log       logger.Logger
	now       func() time.Time

	mu sync.Mutex
	// shown is the favorite on display while no session is active.
	shown *server.Snapshot
}

// New creates an App and loads the persisted lists.
func New(opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	if opts.Publisher == nil {
		opts.Publisher = monitor.NopPublisher{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	history := monitor.NewHistory(opts.ChartPoints)
	return &App{
		dir:     opts.Directory,
		history: history,
		poller: monitor.NewPoller(opts.Directory, history, opts.Publisher, monitor.PollerOptions{
			Interval: opts.Interval,
			Logger:   opts.Logger,
			Now:      opts.Now,
		}),
		recent:    store.NewRecent(opts.Store, opts.MaxRecent, opts.Logger),
		favorites: store.NewFavorites(opts.Store, opts.MaxFavorites, opts.Logger),
		pub:       opts.Publisher,
		log:       opts.Logger,
		now:       opts.Now,
	}
}

// Interval returns the refresh period of watched servers.
func (a *App) Interval() time.Duration {
	return a.poller.Interval()
}

// Lookup parses input as a join code or link and starts watching it.
// On success the code is added to the recent searches.
func (a *App) Lookup(ctx context.Context, input string) (server.Snapshot, error) {
	code, err := directory.ParseCode(input)
	if err != nil {
		a.notifyError(err)
		return server.Snapshot{}, err
	}

	snap, err := a.poller.Start(ctx, code)
	if err != nil {
		return server.Snapshot{}, err
	}

	a.mu.Lock()
	a.shown = nil
	a.mu.Unlock()

	a.recent.Add(code)
	a.publishLists()
	return snap, nil
}

// FetchOnce looks up a server without starting a session. Used by the
// one-shot lookup command. The sample is still recorded and the code added
// to the recent searches.
func (a *App) FetchOnce(ctx context.Context, input string) (server.Snapshot, error) {
	code, err := directory.ParseCode(input)
	if err != nil {
		return server.Snapshot{}, err
	}

	snap, err := a.dir.FetchOne(ctx, code)
	if err != nil {
		return server.Snapshot{}, err
	}

	a.history.Record(historyKey(snap, code), snap.Players, a.now())
	a.recent.Add(code)
	return snap, nil
}

// Search runs a free-text directory search and publishes the results.
// Nothing is published on failure except the error notification.
func (a *App) Search(ctx context.Context, query string) ([]server.Snapshot, error) {
	q, err := directory.ParseQuery(query)
	if err != nil {
		a.notifyError(err)
		return nil, err
	}

	results, err := a.dir.SearchMany(ctx, q)
	if err != nil {
		a.notifyError(err)
		return nil, err
	}

	a.log.Info("search %q: %d results", q, len(results))
	a.pub.PublishResults(q, results)
	return results, nil
}

// Browse fetches the full directory, filters it by name or game mode and
// publishes the matches. An empty filter publishes everything.
func (a *App) Browse(ctx context.Context, filter string) ([]server.Snapshot, error) {
	all, err := a.dir.ListAll(ctx)
	if err != nil {
		a.notifyError(err)
		return nil, err
	}

	filter = strings.TrimSpace(filter)
	matches := directory.Filter(all, filter)
	a.log.Info("browse %q: %d of %d servers", filter, len(matches), len(all))
	a.pub.PublishResults(filter, matches)
	return matches, nil
}

// ToggleFavorite adds the displayed server to favorites, or removes it if it
// is already there.
func (a *App) ToggleFavorite() (store.Action, error) {
	snap, ok := a.Displayed()
	if !ok {
		err := errors.New(ErrNoServer, "No server to favorite", "Look up a server first")
		a.notifyError(err)
		return 0, err
	}

	action := a.favorites.Toggle(snap)
	msg := MsgFavoriteAdded
	if action == store.ActionRemoved {
		msg = MsgFavoriteRemoved
	}
	a.log.Info("favorite %s %s", snap.ID, action)

	a.pub.Notify(monitor.Notification{Message: msg, Severity: monitor.SeveritySuccess, Time: a.now()})
	a.publishLists()
	return action, nil
}

// ShowFavorite stops any active session and displays the stored snapshot of
// favorite id, with whatever history was collected for it this run.
// No request is made.
func (a *App) ShowFavorite(id string) (server.Snapshot, bool) {
	snap, ok := a.favorites.Get(id)
	if !ok {
		a.notifyError(errors.New(errors.ErrNotFound,
			fmt.Sprintf("Favorite '%s' not found", id), ""))
		return server.Snapshot{}, false
	}

	a.poller.Stop()

	a.mu.Lock()
	a.shown = &snap
	a.mu.Unlock()

	a.pub.PublishSnapshot(snap, a.history.Get(snap.ID))
	return snap, true
}

// Refresh fetches the watched server immediately.
func (a *App) Refresh(ctx context.Context) error {
	err := a.poller.Refresh(ctx)
	if errors.IsCode(err, monitor.ErrIdle) {
		a.pub.Notify(monitor.Notification{
			Message:  errors.UserMessage(err),
			Severity: monitor.SeverityInfo,
			Time:     a.now(),
		})
	}
	return err
}

// Displayed returns the server on display: the watched server, or the
// favorite being shown.
func (a *App) Displayed() (server.Snapshot, bool) {
	if snap, ok := a.poller.Current(); ok {
		return snap, true
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.shown == nil {
		return server.Snapshot{}, false
	}
	return a.shown.Clone(), true
}

// Watching returns the code of the active session.
func (a *App) Watching() (string, bool) {
	return a.poller.Active()
}

// History returns the samples collected for a server id.
func (a *App) History(id string) []monitor.HistorySample {
	return a.history.Get(id)
}

// Lists returns the current favorites and recent searches.
func (a *App) Lists() monitor.Lists {
	return monitor.Lists{
		Favorites: a.favorites.Items(),
		Recent:    a.recent.Items(),
	}
}

// AddFavorite looks up input and adds it to favorites unless already present.
func (a *App) AddFavorite(ctx context.Context, input string) (server.Snapshot, bool, error) {
	code, err := directory.ParseCode(input)
	if err != nil {
		return server.Snapshot{}, false, err
	}

	snap, err := a.dir.FetchOne(ctx, code)
	if err != nil {
		return server.Snapshot{}, false, err
	}
	if a.favorites.Contains(snap.ID) {
		return snap, false, nil
	}

	a.favorites.Toggle(snap)
	a.publishLists()
	return snap, true, nil
}

// RemoveFavorite removes the favorite with id. Reports whether it existed.
func (a *App) RemoveFavorite(id string) bool {
	removed := a.favorites.Remove(id)
	if removed {
		a.publishLists()
	}
	return removed
}

// ClearFavorites removes every favorite.
func (a *App) ClearFavorites() {
	a.favorites.Clear()
	a.publishLists()
}

// ClearRecent forgets every recent search.
func (a *App) ClearRecent() {
	a.recent.Clear()
	a.publishLists()
}

// Close stops the active session. Lookups still running, and any made
// afterwards, fail without starting a new one.
func (a *App) Close() {
	a.poller.Close()
}

func (a *App) publishLists() {
	a.pub.PublishLists(a.Lists())
}

func (a *App) notifyError(err error) {
	switch {
	case errors.IsInput(err):
		a.log.Debug("rejected input: %v", err)
	case errors.IsFetch(err):
		a.log.Warn("%v", err)
	default:
		a.log.Info("%v", err)
	}
	a.pub.Notify(monitor.Notification{
		Message:  errors.UserMessage(err),
		Severity: monitor.SeverityError,
		Time:     a.now(),
	})
}

func historyKey(snap server.Snapshot, code string) string {
	if snap.ID != "" {
		return snap.ID
	}
	return code
}

var _ monitor.Controller = (*App)(nil)
