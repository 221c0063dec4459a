package services

import (
	"context"
	"errors"
	"fmt"

	"moneybook/internal/amqp"
	"moneybook/internal/core"
	"moneybook/internal/log"
)

// Ledger is the remote store of record for transactions.
type Ledger interface {
	GetTransaction(ctx context.Context, id string) (core.Transaction, error)
	AddTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, tx core.Transaction) (core.Transaction, error)
}

// Publisher announces ledger writes to other processes.
type Publisher interface {
	PublishLedgerChanged(ctx context.Context, transactionID, operation string) error
	Close() error
}

// TransactionService validates entries, writes them through the API and
// publishes a change event.
type TransactionService struct {
	ledger    Ledger
	publisher Publisher
	today     func() core.Date
	logger    *log.Logger
}

// NewTransactionService wires the service. publisher may be nil when no
// event bus is configured.
func NewTransactionService(ledger Ledger, publisher Publisher, logger *log.Logger) *TransactionService {
	if logger == nil {
		logger = log.Discard()
	}
	return &TransactionService{
		ledger:    ledger,
		publisher: publisher,
		today:     core.Today,
		logger:    logger.WithComponent(log.ComponentService),
	}
}

// AddTransaction validates e and creates it remotely.
func (s *TransactionService) AddTransaction(ctx context.Context, e core.Entry) (core.Transaction, error) {
	tx, err := core.ParseEntry(e, s.today())
	if err != nil {
		s.logger.DebugContext(ctx, "Rejected transaction entry",
			log.FieldOperation, log.OpCreate, log.FieldError, err, log.FieldErrorType, log.ErrorTypeValidation)
		return core.Transaction{}, fmt.Errorf("validate transaction: %w", err)
	}

	created, err := s.ledger.AddTransaction(ctx, tx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}

	s.logger.InfoContext(ctx, "Transaction added",
		log.NewFields().WithOperation(log.OpCreate).
			WithTransaction(created.ID, created.Type.String(), created.Category, core.FormatAmount(created.Amount)).ToSlice()...)

	s.publish(ctx, created.ID, amqp.OperationCreated)
	return created, nil
}

// UpdateTransaction applies e to the stored transaction id. The stored
// type is kept whatever e.Type says.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id string, e core.Entry) (core.Transaction, error) {
	if id == "" {
		return core.Transaction{}, errors.New("transaction id is required")
	}
	existing, err := s.ledger.GetTransaction(ctx, id)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("load transaction %s: %w", id, err)
	}

	tx, err := core.ParseUpdate(existing, e, s.today())
	if err != nil {
		return core.Transaction{}, fmt.Errorf("validate transaction: %w", err)
	}

	updated, err := s.ledger.UpdateTransaction(ctx, id, tx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction %s: %w", id, err)
	}

	s.logger.InfoContext(ctx, "Transaction updated",
		log.NewFields().WithOperation(log.OpUpdate).
			WithTransaction(updated.ID, updated.Type.String(), updated.Category, core.FormatAmount(updated.Amount)).ToSlice()...)

	s.publish(ctx, id, amqp.OperationUpdated)
	return updated, nil
}

// publish is best effort: the write already succeeded.
func (s *TransactionService) publish(ctx context.Context, id, operation string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishLedgerChanged(ctx, id, operation); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish ledger change",
			log.FieldTransactionID, id, log.FieldError, err, log.FieldErrorType, log.ErrorTypeNetwork)
	}
}

// Close releases the publisher.
func (s *TransactionService) Close() error {
	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.Close(); err != nil {
		return fmt.Errorf("close transaction service: amqp: %w", err)
	}
	return nil
}
