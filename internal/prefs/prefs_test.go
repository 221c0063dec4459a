package prefs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneybook/internal/store"
	"moneybook/internal/store/memory"
)

func TestParseTheme(t *testing.T) {
	assert.Equal(t, Dark, ParseTheme("dark"))
	assert.Equal(t, Dark, ParseTheme(" DARK "))
	assert.Equal(t, Light, ParseTheme("light"))
	assert.Equal(t, Light, ParseTheme("solarized"))
	assert.Equal(t, Light, ParseTheme(""))
}

func TestLoadDefaultsToLight(t *testing.T) {
	p := New(memory.New().Slot(store.ThemeSlot), nil)
	theme, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Light, theme)
}

func TestTogglePersists(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()
	p := New(backend.Slot(store.ThemeSlot), nil)

	theme, err := p.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, Dark, theme)

	reloaded := New(backend.Slot(store.ThemeSlot), nil)
	theme, err = reloaded.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Dark, theme)

	theme, err = reloaded.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, Light, theme)
}

func TestSetAndSubscribe(t *testing.T) {
	ctx := context.Background()
	p := New(memory.New().Slot(store.ThemeSlot), nil)

	var seen []Theme
	unsubscribe := p.Subscribe(func(t Theme) { seen = append(seen, t) })
	require.NoError(t, p.SetDark(ctx))
	require.NoError(t, p.SetLight(ctx))
	unsubscribe()
	require.NoError(t, p.SetDark(ctx))

	assert.Equal(t, []Theme{Dark, Light}, seen)
	assert.Equal(t, Dark, p.Theme())
}

type brokenSlot struct{}

func (brokenSlot) Load(context.Context) (string, bool, error) { return "", false, errors.New("boom") }
func (brokenSlot) Save(context.Context, string) error         { return errors.New("boom") }
func (brokenSlot) Clear(context.Context) error                { return errors.New("boom") }

func TestFailedSaveKeepsTheme(t *testing.T) {
	p := New(brokenSlot{}, nil)
	_, err := p.Toggle(context.Background())
	assert.Error(t, err)
	assert.Equal(t, Light, p.Theme())

	_, err = p.Load(context.Background())
	assert.Error(t, err)
}
