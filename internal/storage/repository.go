package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"moneybook/internal/store"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists slots in a single sqlite table.
type SQLiteStore struct {
	db      *sql.DB
	queries *Queries
}

var _ store.Backend = (*SQLiteStore)(nil)

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{
		db:      db,
		queries: New(db),
	}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Slot implements store.Backend
func (s *SQLiteStore) Slot(key string) store.Slot {
	return &sqliteSlot{queries: s.queries, key: key}
}

type sqliteSlot struct {
	queries *Queries
	key     string
}

func (sl *sqliteSlot) Load(ctx context.Context) (string, bool, error) {
	if sl.key == "" {
		return "", false, store.ErrEmptyKey
	}
	value, err := sl.queries.GetSlot(ctx, sl.key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get slot %s: %w", sl.key, err)
	}
	return value, true, nil
}

func (sl *sqliteSlot) Save(ctx context.Context, value string) error {
	if sl.key == "" {
		return store.ErrEmptyKey
	}
	if err := sl.queries.UpsertSlot(ctx, sl.key, value); err != nil {
		return fmt.Errorf("save slot %s: %w", sl.key, err)
	}
	slog.DebugContext(ctx, "Slot saved", "key", sl.key)
	return nil
}

func (sl *sqliteSlot) Clear(ctx context.Context) error {
	if sl.key == "" {
		return store.ErrEmptyKey
	}
	if err := sl.queries.DeleteSlot(ctx, sl.key); err != nil {
		return fmt.Errorf("clear slot %s: %w", sl.key, err)
	}
	slog.DebugContext(ctx, "Slot cleared", "key", sl.key)
	return nil
}
