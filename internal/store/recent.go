package store

import (
	"sync"

	"github.com/rileyhilliard/cfx/internal/logger"
)

// KeyRecent is the storage key for recent searches.
const KeyRecent = "recentSearches"

// DefaultMaxRecent is how many recent codes are kept.
const DefaultMaxRecent = 5

// Recent is the list of recently looked-up server codes, newest first.
// Codes are unique. Loaded once on construction and rewritten on every change.
type Recent struct {
	mu    sync.Mutex
	list  *List[string]
	items []string
	max   int
	log   logger.Logger
}

// NewRecent loads recent searches from s.
func NewRecent(s Store, max int, log logger.Logger) *Recent {
	if max <= 0 {
		max = DefaultMaxRecent
	}
	if log == nil {
		log = logger.Default()
	}
	list := NewList[string](s, KeyRecent, log)

	r := &Recent{list: list, max: max, log: log}
	r.items = r.sanitize(list.LoadOrEmpty())
	return r
}

// Add moves code to the front, dropping any earlier occurrence and
// truncating to capacity. Returns the updated list.
func (r *Recent) Add(code string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]string, 0, r.max)
	next = append(next, code)
	for _, c := range r.items {
		if c != code {
			next = append(next, c)
		}
	}
	if len(next) > r.max {
		next = next[:r.max]
	}
	r.items = next
	r.persist()

	return r.copyItems()
}

// Items returns a copy of the current list.
func (r *Recent) Items() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.copyItems()
}

// Clear empties the list.
func (r *Recent) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = []string{}
	r.persist()
}

// persist writes the list. Failures are logged; the in-memory list keeps working.
// Must be called with r.mu held.
func (r *Recent) persist() {
	if err := r.list.SaveAll(r.items); err != nil {
		r.log.Warn("saving recent searches: %v", err)
	}
}

// Must be called with r.mu held.
func (r *Recent) copyItems() []string {
	out := make([]string, len(r.items))
	copy(out, r.items)
	return out
}

// sanitize drops blanks and duplicates from loaded data and enforces capacity.
func (r *Recent) sanitize(loaded []string) []string {
	seen := make(map[string]bool, len(loaded))
	out := make([]string, 0, r.max)
	for _, c := range loaded {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
		if len(out) == r.max {
			break
		}
	}
	return out
}
