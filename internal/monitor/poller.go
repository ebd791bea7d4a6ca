package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rileyhilliard/cfx/internal/errors"
	"github.com/rileyhilliard/cfx/internal/logger"
	"github.com/rileyhilliard/cfx/internal/server"
)

// DefaultInterval is the refresh period for the watched server (UPDATE_INTERVAL).
const DefaultInterval = 30 * time.Second

// Error codes returned by the poller.
const (
	// ErrIdle is returned by Refresh when no session is active.
	ErrIdle = "IDLE"
	// ErrSuperseded is returned by Start when a Stop or another Start
	// replaced it while the initial fetch was in flight.
	ErrSuperseded = "SUPERSEDED"
	// ErrClosed is returned by Start once the poller is closed.
	ErrClosed = "CLOSED"
)

// Fetcher retrieves one server's live snapshot.
// *directory.Client satisfies it.
type Fetcher interface {
	FetchOne(ctx context.Context, code string) (server.Snapshot, error)
}

// PollerOptions configures a Poller. Zero values fall back to defaults.
type PollerOptions struct {
	Interval time.Duration
	Logger   logger.Logger
	// Now is the clock used to timestamp samples.
	Now func() time.Time
}

// Poller owns at most one repeating fetch for the currently watched server.
// Starting a new session cancels the previous one before the new initial
// fetch is issued, so there is never more than one live ticker.
type Poller struct {
	fetcher   Fetcher
	history   *History
	publisher Publisher
	interval  time.Duration
	log       logger.Logger
	now       func() time.Time

	mu      sync.Mutex
	gen     uint64
	closed  bool
	session *session
}

// session is one Idle -> Polling binding to a server code.
type session struct {
	id      string
	code    string
	key     string // history key pinned at start
	current server.Snapshot
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewPoller creates an idle poller.
func NewPoller(fetcher Fetcher, history *History, publisher Publisher, opts PollerOptions) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &Poller{
		fetcher:   fetcher,
		history:   history,
		publisher: publisher,
		interval:  opts.Interval,
		log:       opts.Logger,
		now:       opts.Now,
	}
}

// Interval returns the refresh period.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Start cancels any active session, performs the initial lookup for code,
// records and publishes it, then schedules a refresh every interval.
//
// A failed initial lookup is published as an error notification and
// returned; the poller is left idle. If another Start or Stop happens while
// the initial fetch is in flight, Start returns an ErrSuperseded error and
// the result is neither recorded nor published. After Close it returns
// ErrClosed without fetching.
func (p *Poller) Start(ctx context.Context, code string) (server.Snapshot, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return server.Snapshot{}, errors.New(ErrClosed,
			fmt.Sprintf("Not watching '%s': monitoring has shut down", code), "")
	}
	old := p.detachLocked()
	p.gen++
	gen := p.gen
	p.mu.Unlock()

	// The previous ticker must be fully gone before the new fetch goes out.
	if old != nil {
		<-old.done
		p.log.Debug("stopped session %s for %s", old.id, old.code)
	}

	snap, err := p.fetcher.FetchOne(ctx, code)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.gen != gen {
		p.log.Debug("lookup for %s superseded (fetch error: %v)", code, err)
		return server.Snapshot{}, errors.New(ErrSuperseded,
			fmt.Sprintf("Lookup for '%s' was replaced", code), "")
	}
	if err != nil {
		p.log.Warn("lookup for %s failed: %v", code, err)
		p.publisher.Notify(errorNotification(err, p.now()))
		return server.Snapshot{}, err
	}

	key := snap.ID
	if key == "" {
		key = code
	}

	// The session outlives the request context it was started from.
	sctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s := &session{
		id:      uuid.NewString(),
		code:    code,
		key:     key,
		current: snap,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	p.session = s

	p.history.Record(key, snap.Players, p.now())
	p.publisher.PublishSnapshot(snap, p.history.Get(key))

	p.log.Info("session %s watching %s every %s", s.id, code, p.interval)
	go p.run(sctx, s)

	return snap, nil
}

// Stop cancels the active session, if any. Safe to call repeatedly.
func (p *Poller) Stop() {
	p.halt(false)
}

// Close stops the active session and makes every later Start fail with
// ErrClosed. A Start still fetching returns ErrSuperseded.
func (p *Poller) Close() {
	p.halt(true)
}

func (p *Poller) halt(closing bool) {
	p.mu.Lock()
	old := p.detachLocked()
	p.gen++
	if closing {
		p.closed = true
	}
	p.mu.Unlock()

	if old != nil {
		<-old.done
		p.log.Info("session %s for %s stopped", old.id, old.code)
	}
}

// Refresh performs an immediate out-of-schedule tick for the active session.
// The ticker keeps its own schedule.
func (p *Poller) Refresh(ctx context.Context) error {
	p.mu.Lock()
	s := p.session
	p.mu.Unlock()

	if s == nil {
		return errors.New(ErrIdle, "Nothing to refresh", "Look up a server first")
	}
	return p.tick(ctx, s)
}

// Active reports the code being polled.
func (p *Poller) Active() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session == nil {
		return "", false
	}
	return p.session.code, true
}

// Current returns the latest snapshot of the active session.
func (p *Poller) Current() (server.Snapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session == nil {
		return server.Snapshot{}, false
	}
	return p.session.current.Clone(), true
}

// historyKey returns the key samples are recorded under for the active session.
func (p *Poller) historyKey() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session == nil {
		return "", false
	}
	return p.session.key, true
}

// sessionID returns the active session's id, empty when idle.
func (p *Poller) sessionID() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session == nil {
		return ""
	}
	return p.session.id
}

// detachLocked cancels and clears the active session and returns it so the
// caller can wait for its goroutine after releasing the lock.
// Must be called with p.mu held.
func (p *Poller) detachLocked() *session {
	s := p.session
	if s == nil {
		return nil
	}
	s.cancel()
	p.session = nil
	return s
}

// run drives one session's ticks until its context is cancelled.
// Ticks run one after another; a slow fetch delays the next tick.
func (p *Poller) run(ctx context.Context, s *session) {
	defer close(s.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Failures are already notified and logged inside tick.
			_ = p.tick(ctx, s)
		}
	}
}

// tick fetches a fresh snapshot for s and publishes it if s is still the
// active session. A fetch failure is published as a notification and the
// schedule is left untouched.
func (p *Poller) tick(ctx context.Context, s *session) error {
	snap, err := p.fetcher.FetchOne(ctx, s.code)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session != s {
		return nil
	}
	if err != nil {
		p.log.Warn("refresh of %s failed: %v", s.code, err)
		p.publisher.Notify(errorNotification(err, p.now()))
		return err
	}

	if snap.ID != "" && snap.ID != s.key {
		p.log.Warn("server %s now reports id %s, recording under %s", s.code, snap.ID, s.key)
	}

	s.current = snap
	p.history.Record(s.key, snap.Players, p.now())
	p.publisher.PublishSnapshot(snap, p.history.Get(s.key))
	p.log.Debug("refreshed %s: %d/%d players", s.code, snap.Players, snap.MaxPlayers)

	return nil
}

// errorNotification turns a fetch error into a user-facing notification.
func errorNotification(err error, at time.Time) Notification {
	return Notification{
		Message:  errors.UserMessage(err),
		Severity: SeverityError,
		Time:     at,
	}
}
