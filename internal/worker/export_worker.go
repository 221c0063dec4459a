package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"moneybook/internal/amqp"
	"moneybook/internal/cache"
	"moneybook/internal/dashboard"
	"moneybook/internal/log"
	"moneybook/internal/sheets"
)

// seenEventsTTL bounds how long a delivered event id is remembered for
// redelivery detection.
const seenEventsTTL = 10 * time.Minute

// Loader produces the current derived ledger view.
type Loader interface {
	Load(ctx context.Context) (dashboard.View, error)
}

// ExportWorker writes ledger snapshots to a spreadsheet, on change events
// and on a fixed interval.
type ExportWorker struct {
	loader Loader
	writer sheets.SnapshotWriter
	seen   *cache.LRUCache[struct{}]
	now    func() time.Time
	logger *log.Logger

	// exports never overlap
	mu sync.Mutex
}

func NewExportWorker(loader Loader, writer sheets.SnapshotWriter, logger *log.Logger) *ExportWorker {
	if logger == nil {
		logger = log.Discard()
	}
	return &ExportWorker{
		loader: loader,
		writer: writer,
		seen:   cache.NewLRUCache[struct{}](1024, seenEventsTTL),
		now:    time.Now,
		logger: logger.WithComponent(log.ComponentWorker),
	}
}

// SeenEvents exposes the redelivery cache so the process can sweep it.
func (w *ExportWorker) SeenEvents() cache.Cleaner {
	return w.seen
}

// HandleLedgerChanged exports once per event id. A failed export is
// returned so the delivery is requeued, and the id is not remembered.
func (w *ExportWorker) HandleLedgerChanged(ctx context.Context, msg *amqp.LedgerChangedMessage) error {
	if msg.EventID != "" {
		if _, dup := w.seen.Get(msg.EventID); dup {
			w.logger.DebugContext(ctx, "Skipping redelivered ledger change", "event_id", msg.EventID)
			return nil
		}
	}

	w.logger.InfoContext(ctx, "Processing ledger change",
		log.FieldTransactionID, msg.TransactionID,
		"event_id", msg.EventID,
		"change", msg.Operation)

	if err := w.Export(ctx); err != nil {
		return err
	}
	if msg.EventID != "" {
		w.seen.Set(msg.EventID, struct{}{})
	}
	return nil
}

// Export loads the ledger and writes one snapshot.
func (w *ExportWorker) Export(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	start := w.now()
	view, err := w.loader.Load(ctx)
	if err != nil {
		w.logger.ErrorContext(ctx, "Failed to load ledger for export",
			log.FieldOperation, log.OpExport, log.FieldError, err)
		return fmt.Errorf("load ledger: %w", err)
	}

	snap := sheets.Snapshot{
		GeneratedAt:  start,
		Summary:      view.Summary,
		Breakdown:    view.Breakdown,
		Transactions: view.Transactions,
	}
	if err := w.writer.WriteSnapshot(ctx, snap); err != nil {
		w.logger.ErrorContext(ctx, "Failed to write snapshot",
			log.FieldOperation, log.OpExport, log.FieldError, err)
		return fmt.Errorf("write snapshot: %w", err)
	}

	w.logger.InfoContext(ctx, "Ledger exported",
		log.FieldOperation, log.OpExport,
		log.FieldCount, len(view.Transactions),
		log.FieldDuration, w.now().Sub(start).Milliseconds())
	return nil
}

// RunPeriodic exports immediately and then every interval until ctx is
// done. Export failures are logged and retried on the next tick.
func (w *ExportWorker) RunPeriodic(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("invalid export interval %v", interval)
	}
	_ = w.Export(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			_ = w.Export(ctx)
		}
	}
}
