package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneybook/internal/amqp"
	"moneybook/internal/core"
	"moneybook/internal/dashboard"
	"moneybook/internal/ledger"
	sheetsmem "moneybook/internal/sheets/memory"
)

type fakeLoader struct {
	calls atomic.Int32
	err   error
	txs   []core.Transaction
}

func (f *fakeLoader) Load(context.Context) (dashboard.View, error) {
	f.calls.Add(1)
	if f.err != nil {
		return dashboard.View{}, f.err
	}
	return dashboard.Build(ledger.NewReducer(), f.txs, nil), nil
}

func sampleLedger() []core.Transaction {
	return []core.Transaction{
		{ID: "1", Type: core.Income, Category: "Salary", Amount: decimal.NewFromInt(100), Date: core.NewDate(2024, 2, 1)},
		{ID: "2", Type: core.Expense, Category: "Food", Amount: decimal.NewFromInt(30), Date: core.NewDate(2024, 2, 2)},
	}
}

func TestExport(t *testing.T) {
	loader := &fakeLoader{txs: sampleLedger()}
	store := sheetsmem.New(5)
	w := NewExportWorker(loader, store, nil)

	require.NoError(t, w.Export(context.Background()))

	snap, ok := store.Latest()
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(70).Equal(snap.Summary.Balance))
	assert.Len(t, snap.Transactions, 2)
	require.Len(t, snap.Breakdown.Expenses, 1)
	assert.False(t, snap.GeneratedAt.IsZero())
}

func TestExportLoadFailureWritesNothing(t *testing.T) {
	store := sheetsmem.New(5)
	w := NewExportWorker(&fakeLoader{err: errors.New("401")}, store, nil)

	assert.Error(t, w.Export(context.Background()))
	assert.Equal(t, 0, store.Count())
}

func TestHandleLedgerChangedDeduplicates(t *testing.T) {
	loader := &fakeLoader{txs: sampleLedger()}
	store := sheetsmem.New(5)
	w := NewExportWorker(loader, store, nil)
	msg := amqp.NewLedgerChangedMessage("2", amqp.OperationCreated)

	require.NoError(t, w.HandleLedgerChanged(context.Background(), msg))
	require.NoError(t, w.HandleLedgerChanged(context.Background(), msg))
	assert.Equal(t, int32(1), loader.calls.Load())

	other := amqp.NewLedgerChangedMessage("2", amqp.OperationUpdated)
	require.NoError(t, w.HandleLedgerChanged(context.Background(), other))
	assert.Equal(t, int32(2), loader.calls.Load())
}

func TestHandleLedgerChangedFailureIsRetried(t *testing.T) {
	loader := &fakeLoader{err: errors.New("down")}
	w := NewExportWorker(loader, sheetsmem.New(1), nil)
	msg := amqp.NewLedgerChangedMessage("2", amqp.OperationCreated)

	require.Error(t, w.HandleLedgerChanged(context.Background(), msg))

	loader.err = nil
	require.NoError(t, w.HandleLedgerChanged(context.Background(), msg))
	assert.Equal(t, int32(2), loader.calls.Load(), "a failed event is not remembered")
}

func TestRunPeriodic(t *testing.T) {
	loader := &fakeLoader{txs: sampleLedger()}
	store := sheetsmem.New(10)
	w := NewExportWorker(loader, store, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.RunPeriodic(ctx, 10*time.Millisecond) }()

	require.Eventually(t, func() bool { return loader.calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("RunPeriodic did not stop")
	}

	assert.Error(t, w.RunPeriodic(context.Background(), 0))
}
