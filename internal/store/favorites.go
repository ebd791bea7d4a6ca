package store

import (
	"sync"

	"github.com/rileyhilliard/cfx/internal/logger"
	"github.com/rileyhilliard/cfx/internal/server"
)

// KeyFavorites is the storage key for favorites.
const KeyFavorites = "favorites"

// DefaultMaxFavorites is how many favorites are kept.
const DefaultMaxFavorites = 10

// Action reports what a toggle did.
type Action int

const (
	ActionAdded Action = iota
	ActionRemoved
)

// String returns a human-readable action label.
func (a Action) String() string {
	switch a {
	case ActionAdded:
		return "added"
	case ActionRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Favorites is the bounded list of saved server snapshots, newest first,
// unique by ID. When full, adding evicts the oldest (tail) entry.
type Favorites struct {
	mu    sync.Mutex
	list  *List[server.Snapshot]
	items []server.Snapshot
	max   int
	log   logger.Logger
}

// NewFavorites loads favorites from s.
func NewFavorites(s Store, max int, log logger.Logger) *Favorites {
	if max <= 0 {
		max = DefaultMaxFavorites
	}
	if log == nil {
		log = logger.Default()
	}
	list := NewList[server.Snapshot](s, KeyFavorites, log)

	f := &Favorites{list: list, max: max, log: log}
	f.items = f.sanitize(list.LoadOrEmpty())
	return f
}

// Toggle removes the favorite with snap's ID if present, otherwise inserts
// snap at the head, evicting the tail first when at capacity.
func (f *Favorites) Toggle(snap server.Snapshot) Action {
	f.mu.Lock()
	defer f.mu.Unlock()

	if idx := f.indexOf(snap.ID); idx >= 0 {
		f.items = append(f.items[:idx], f.items[idx+1:]...)
		f.persist()
		return ActionRemoved
	}

	if len(f.items) >= f.max {
		f.items = f.items[:f.max-1]
	}
	next := make([]server.Snapshot, 0, len(f.items)+1)
	next = append(next, snap.Clone())
	next = append(next, f.items...)
	f.items = next
	f.persist()

	return ActionAdded
}

// Remove deletes the favorite with id. Returns false if it wasn't present.
func (f *Favorites) Remove(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.indexOf(id)
	if idx < 0 {
		return false
	}
	f.items = append(f.items[:idx], f.items[idx+1:]...)
	f.persist()
	return true
}

// Contains reports whether a favorite with id exists.
func (f *Favorites) Contains(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.indexOf(id) >= 0
}

// Get returns the stored snapshot for id.
func (f *Favorites) Get(id string) (server.Snapshot, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.indexOf(id)
	if idx < 0 {
		return server.Snapshot{}, false
	}
	return f.items[idx].Clone(), true
}

// Items returns a copy of the favorites, newest first.
func (f *Favorites) Items() []server.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]server.Snapshot, len(f.items))
	for i, s := range f.items {
		out[i] = s.Clone()
	}
	return out
}

// Len returns the number of favorites.
func (f *Favorites) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

// Clear removes all favorites.
func (f *Favorites) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = []server.Snapshot{}
	f.persist()
}

// Must be called with f.mu held.
func (f *Favorites) indexOf(id string) int {
	for i, s := range f.items {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Must be called with f.mu held.
func (f *Favorites) persist() {
	if err := f.list.SaveAll(f.items); err != nil {
		f.log.Warn("saving favorites: %v", err)
	}
}

// sanitize drops entries without an ID and duplicates, fills defaults and
// enforces capacity on loaded data.
func (f *Favorites) sanitize(loaded []server.Snapshot) []server.Snapshot {
	seen := make(map[string]bool, len(loaded))
	out := make([]server.Snapshot, 0, f.max)
	for _, s := range loaded {
		if s.ID == "" || seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		out = append(out, s.Normalize())
		if len(out) == f.max {
			break
		}
	}
	return out
}
