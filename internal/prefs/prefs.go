// Package prefs holds the persisted user interface preferences.
package prefs

import (
	"context"
	"fmt"
	"strings"

	"moneybook/internal/log"
	"moneybook/internal/store"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ParseTheme maps a persisted value to a theme. Anything unknown is light.
func ParseTheme(s string) Theme {
	if Theme(strings.ToLower(strings.TrimSpace(s))) == Dark {
		return Dark
	}
	return Light
}

func (t Theme) Toggled() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

func (t Theme) String() string { return string(t) }

// Preferences keeps the theme in memory and mirrors every change to its slot.
type Preferences struct {
	slot   store.Slot
	theme  *store.Value[Theme]
	logger *log.Logger
}

func New(slot store.Slot, logger *log.Logger) *Preferences {
	if logger == nil {
		logger = log.Discard()
	}
	return &Preferences{
		slot:   slot,
		theme:  store.NewValue(Light),
		logger: logger.WithComponent(log.ComponentPrefs),
	}
}

// Load reads the persisted theme. An empty slot leaves the light default.
func (p *Preferences) Load(ctx context.Context) (Theme, error) {
	v, ok, err := p.slot.Load(ctx)
	if err != nil {
		return p.theme.Get(), fmt.Errorf("load theme: %w", err)
	}
	t := Light
	if ok {
		t = ParseTheme(v)
	}
	p.theme.Set(t)
	return t, nil
}

func (p *Preferences) Theme() Theme {
	return p.theme.Get()
}

// Toggle flips between light and dark and persists the result.
func (p *Preferences) Toggle(ctx context.Context) (Theme, error) {
	next := p.theme.Get().Toggled()
	if err := p.set(ctx, next); err != nil {
		return p.theme.Get(), err
	}
	return next, nil
}

func (p *Preferences) SetLight(ctx context.Context) error { return p.set(ctx, Light) }

func (p *Preferences) SetDark(ctx context.Context) error { return p.set(ctx, Dark) }

func (p *Preferences) Subscribe(fn func(Theme)) (unsubscribe func()) {
	return p.theme.Subscribe(fn)
}

func (p *Preferences) set(ctx context.Context, t Theme) error {
	if err := p.slot.Save(ctx, t.String()); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	p.theme.Set(t)
	p.logger.DebugContext(ctx, "Theme changed", log.FieldTheme, t.String())
	return nil
}
