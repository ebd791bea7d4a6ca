package store

import (
	"encoding/json"
	"fmt"

	"github.com/rileyhilliard/cfx/internal/errors"
	"github.com/rileyhilliard/cfx/internal/logger"
)

// List is an ordered list of T stored as a JSON array under one key.
type List[T any] struct {
	store Store
	key   string
	log   logger.Logger
}

// NewList binds a list to key in s.
func NewList[T any](s Store, key string, log logger.Logger) *List[T] {
	if log == nil {
		log = logger.Default()
	}
	return &List[T]{store: s, key: key, log: log}
}

// Key returns the storage key.
func (l *List[T]) Key() string {
	return l.key
}

// LoadOrEmpty returns the stored items, or an empty slice when the key is
// absent or its content can't be read or parsed. It never fails the caller.
func (l *List[T]) LoadOrEmpty() []T {
	data, ok, err := l.store.Get(l.key)
	if err != nil {
		l.log.Warn("loading %s: %v", l.key, err)
		return []T{}
	}
	if !ok || len(data) == 0 {
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		l.log.Warn("%s is unparsable, starting empty: %v", l.key, err)
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// SaveAll overwrites the stored content with items.
func (l *List[T]) SaveAll(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrUnwritable,
			fmt.Sprintf("Couldn't encode %s", l.key), "")
	}
	return l.store.Set(l.key, data)
}
