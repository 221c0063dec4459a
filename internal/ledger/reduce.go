package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"moneybook/internal/core"
)

// Effect is the signed contribution of one transaction type to each total,
// expressed as a multiplier of the amount (-1, 0 or +1).
type Effect struct {
	Balance   int64
	LoanTaken int64
	LoanGiven int64
}

// SettlementPolicy selects how SETTLEMENT entries are folded.
type SettlementPolicy string

const (
	// SettlementIgnore leaves SETTLEMENT out of every total.
	SettlementIgnore SettlementPolicy = "ignore"
	// SettlementRepay treats SETTLEMENT as paying back a loan taken.
	SettlementRepay SettlementPolicy = "repay"
)

// ParseSettlementPolicy validates a policy name.
func ParseSettlementPolicy(s string) (SettlementPolicy, error) {
	switch p := SettlementPolicy(s); p {
	case SettlementIgnore, SettlementRepay:
		return p, nil
	default:
		return "", fmt.Errorf("unknown settlement policy %q", s)
	}
}

var defaultEffects = map[core.TransactionType]Effect{
	core.Income:    {Balance: 1},
	core.Expense:   {Balance: -1},
	core.LoanTaken: {Balance: 1, LoanTaken: 1},
	core.LoanGiven: {Balance: -1, LoanGiven: 1},
	core.Recovery:  {Balance: 1, LoanGiven: -1},
}

// Reducer folds transactions into a Summary. The zero value is not usable;
// build one with NewReducer.
type Reducer struct {
	effects map[core.TransactionType]Effect
}

type ReducerOption func(*Reducer)

// WithSettlementPolicy changes how SETTLEMENT entries contribute.
func WithSettlementPolicy(p SettlementPolicy) ReducerOption {
	return func(r *Reducer) {
		switch p {
		case SettlementRepay:
			r.effects[core.Settlement] = Effect{Balance: -1, LoanTaken: -1}
		default:
			delete(r.effects, core.Settlement)
		}
	}
}

func NewReducer(opts ...ReducerOption) *Reducer {
	r := &Reducer{effects: make(map[core.TransactionType]Effect, len(defaultEffects)+1)}
	for t, e := range defaultEffects {
		r.effects[t] = e
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultReducer = NewReducer()

// Reduce folds transactions with the default rules.
func Reduce(txs []core.Transaction) core.Summary {
	return defaultReducer.Reduce(txs)
}

// Reduce computes the summary. Addition is exact, so the result does not
// depend on input order. Types without a rule contribute nothing.
func (r *Reducer) Reduce(txs []core.Transaction) core.Summary {
	s := core.Summary{
		Balance:   decimal.Zero,
		LoanTaken: decimal.Zero,
		LoanGiven: decimal.Zero,
	}
	for _, tx := range txs {
		e, ok := r.effects[tx.Type]
		if !ok {
			continue
		}
		s.Balance = s.Balance.Add(tx.Amount.Mul(decimal.NewFromInt(e.Balance)))
		s.LoanTaken = s.LoanTaken.Add(tx.Amount.Mul(decimal.NewFromInt(e.LoanTaken)))
		s.LoanGiven = s.LoanGiven.Add(tx.Amount.Mul(decimal.NewFromInt(e.LoanGiven)))
	}
	return s
}

// Merge overlays an authoritative summary on a reduced one, field by field.
// A present server field wins; an absent one keeps the reduced value.
func Merge(reduced core.Summary, server *core.ServerSummary) core.Summary {
	if server == nil {
		return reduced
	}
	out := reduced
	if server.Balance != nil {
		out.Balance = *server.Balance
	}
	if server.LoanTaken != nil {
		out.LoanTaken = *server.LoanTaken
	}
	if server.LoanGiven != nil {
		out.LoanGiven = *server.LoanGiven
	}
	return out
}
