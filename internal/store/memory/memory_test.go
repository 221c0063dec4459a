package memory

import (
	"context"
	"testing"

	"moneybook/internal/store"
)

func TestSlotLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()
	token := s.Slot(store.TokenSlot)

	if _, ok, err := token.Load(ctx); err != nil || ok {
		t.Fatalf("expected empty slot, ok=%v err=%v", ok, err)
	}
	if err := token.Save(ctx, "abc"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if v, ok, _ := s.Slot(store.TokenSlot).Load(ctx); !ok || v != "abc" {
		t.Fatalf("expected abc, got %q ok=%v", v, ok)
	}
	if v, ok, _ := s.Slot(store.ThemeSlot).Load(ctx); ok {
		t.Fatalf("theme slot must be independent, got %q", v)
	}
	if err := token.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := token.Load(ctx); ok {
		t.Fatalf("expected slot cleared")
	}
}

func TestEmptyKey(t *testing.T) {
	if err := New().Slot("").Save(context.Background(), "x"); err != store.ErrEmptyKey {
		t.Fatalf("expected ErrEmptyKey, got %v", err)
	}
}
