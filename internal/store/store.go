// Package store defines the single-value persistence slots the engine owns
// (credential token, theme) and an observable in-memory value that
// presentation code can read, subscribe to, and mutate.
package store

import (
	"context"
	"errors"
)

// Slot names.
const (
	TokenSlot = "token"
	ThemeSlot = "theme"
)

var ErrEmptyKey = errors.New("empty slot key")

// Slot is one durable string value. Load reports ok=false when the slot is empty.
type Slot interface {
	Load(ctx context.Context) (value string, ok bool, err error)
	Save(ctx context.Context, value string) error
	Clear(ctx context.Context) error
}

// Backend hands out named slots.
type Backend interface {
	Slot(key string) Slot
	Close() error
}
