// Package dashboard assembles the overview screen from the remote ledger.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"moneybook/internal/core"
	"moneybook/internal/ledger"
	"moneybook/internal/log"
)

// RecentLimit is the number of transactions shown on the overview.
const RecentLimit = 5

// Source is the remote ledger as seen by the dashboard.
type Source interface {
	GetSummary(ctx context.Context) (*core.ServerSummary, error)
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
}

type Totals struct {
	Expenses   decimal.Decimal
	LoansGiven decimal.Decimal
}

// View is everything the overview renders. Transactions is the full
// snapshot it was derived from.
type View struct {
	Summary      core.Summary
	Breakdown    ledger.Breakdown
	Recent       []core.Transaction
	Totals       Totals
	Transactions []core.Transaction
}

type Service struct {
	source   Source
	reducer  *ledger.Reducer
	tieBreak ledger.TieBreak
	logger   *log.Logger
}

type Option func(*Service)

func WithReducer(r *ledger.Reducer) Option {
	return func(s *Service) { s.reducer = r }
}

// WithTieBreak sets the tie-break used when a listing query leaves it empty.
func WithTieBreak(tb ledger.TieBreak) Option {
	return func(s *Service) { s.tieBreak = tb }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l.WithComponent(log.ComponentDashboard) }
}

func NewService(source Source, opts ...Option) *Service {
	s := &Service{
		source:   source,
		reducer:  ledger.NewReducer(),
		tieBreak: ledger.TieBreakStable,
		logger:   log.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches the server summary and the transaction list concurrently.
// Either failure fails the whole load and nothing is derived.
func (s *Service) Load(ctx context.Context) (View, error) {
	start := time.Now()

	var (
		server *core.ServerSummary
		txs    []core.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		server, err = s.source.GetSummary(gctx)
		if err != nil {
			return fmt.Errorf("fetch summary: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		txs, err = s.source.ListTransactions(gctx)
		if err != nil {
			return fmt.Errorf("fetch transactions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "Dashboard load failed",
			log.FieldOperation, log.OpRead, log.FieldError, err)
		return View{}, err
	}

	view := Build(s.reducer, txs, server)
	s.logger.DebugContext(ctx, "Dashboard loaded",
		log.FieldCount, len(txs),
		log.FieldDuration, time.Since(start).Milliseconds())
	return view, nil
}

// Build derives a view from an already fetched snapshot.
func Build(r *ledger.Reducer, txs []core.Transaction, server *core.ServerSummary) View {
	breakdown := ledger.Aggregate(txs)
	return View{
		Summary:   ledger.Merge(r.Reduce(txs), server),
		Breakdown: breakdown,
		Recent:    ledger.Recent(txs, RecentLimit),
		Totals: Totals{
			Expenses:   breakdown.ExpenseTotal(),
			LoansGiven: breakdown.LoanGivenTotal(),
		},
		Transactions: txs,
	}
}

// List fetches the ledger and applies q.
func (s *Service) List(ctx context.Context, q ledger.Query) ([]core.Transaction, error) {
	txs, err := s.source.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}
	if q.TieBreak == "" {
		q.TieBreak = s.tieBreak
	}
	return ledger.FilterAndSort(txs, q), nil
}

// Breakdown fetches the ledger and aggregates it.
func (s *Service) Breakdown(ctx context.Context) (ledger.Breakdown, error) {
	txs, err := s.source.ListTransactions(ctx)
	if err != nil {
		return ledger.Breakdown{}, fmt.Errorf("fetch transactions: %w", err)
	}
	return ledger.Aggregate(txs), nil
}
