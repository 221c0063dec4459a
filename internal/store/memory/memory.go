package memory

import (
	"context"
	"sync"

	"moneybook/internal/store"
)

// Store keeps slots in process memory. Nothing survives a restart.
type Store struct {
	mu    sync.Mutex
	items map[string]string
}

var _ store.Backend = (*Store)(nil)

func New() *Store {
	return &Store{items: make(map[string]string)}
}

// NewWithValues seeds the store, mainly for tests.
func NewWithValues(values map[string]string) *Store {
	s := New()
	for k, v := range values {
		s.items[k] = v
	}
	return s
}

func (s *Store) Slot(key string) store.Slot {
	return &slot{store: s, key: key}
}

func (s *Store) Close() error { return nil }

type slot struct {
	store *Store
	key   string
}

func (sl *slot) Load(_ context.Context) (string, bool, error) {
	if sl.key == "" {
		return "", false, store.ErrEmptyKey
	}
	sl.store.mu.Lock()
	defer sl.store.mu.Unlock()
	v, ok := sl.store.items[sl.key]
	return v, ok, nil
}

func (sl *slot) Save(_ context.Context, value string) error {
	if sl.key == "" {
		return store.ErrEmptyKey
	}
	sl.store.mu.Lock()
	defer sl.store.mu.Unlock()
	sl.store.items[sl.key] = value
	return nil
}

func (sl *slot) Clear(_ context.Context) error {
	if sl.key == "" {
		return store.ErrEmptyKey
	}
	sl.store.mu.Lock()
	defer sl.store.mu.Unlock()
	delete(sl.store.items, sl.key)
	return nil
}
