package backend

import (
	"context"
	"fmt"

	"moneybook/internal/log"
	"moneybook/internal/sheets"
	gsheet "moneybook/internal/sheets/google"
	sheetsmem "moneybook/internal/sheets/memory"
	"moneybook/internal/storage"
	"moneybook/internal/store/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{logger: logger.WithComponent(log.ComponentBackend)}
}

func (f *DefaultFactory) CreateStore(ctx context.Context, config Config) (*StoreResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		s, err := storage.NewSQLiteStore(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
		}
		f.logger.InfoContext(ctx, "Initialized SQLite slot store", "db_path", config.SQLiteDBPath)
		return &StoreResult{Store: s, Cleanup: s.Close}, nil
	case MemoryBackend:
		s := memory.New()
		f.logger.InfoContext(ctx, "Initialized memory slot store; nothing persists across runs")
		return &StoreResult{Store: s, Cleanup: s.Close}, nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) CreateExporter(ctx context.Context, config Config) (sheets.SnapshotWriter, error) {
	if config.GoogleSpreadsheetID == "" {
		f.logger.InfoContext(ctx, "No spreadsheet configured, exporting to memory")
		return sheetsmem.New(1), nil
	}

	c, err := gsheet.New(ctx, config.GoogleSpreadsheetID, gsheet.Credentials{
		JSON: config.GoogleServiceAccountJSON,
		File: config.GoogleServiceAccountFile,
	}, gsheet.WithLogger(f.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}
	f.logger.InfoContext(ctx, "Initialized Google Sheets exporter")
	return c, nil
}
