package backend

import (
	"context"

	"moneybook/internal/sheets"
	"moneybook/internal/store"
)

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// StoreResult contains the slot backend and its cleanup function.
type StoreResult struct {
	Store   store.Backend
	Cleanup CleanupFunc
}

// Factory builds the persistence and export backends from configuration.
type Factory interface {
	// CreateStore opens the slot backend selected by config.
	CreateStore(ctx context.Context, config Config) (*StoreResult, error)
	// CreateExporter returns the snapshot writer: Google Sheets when a
	// spreadsheet is configured, otherwise an in-memory writer.
	CreateExporter(ctx context.Context, config Config) (sheets.SnapshotWriter, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// Google Sheets export
	GoogleSpreadsheetID      string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string
}

// BackendType is the slot storage engine.
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
