package ledger

import (
	"github.com/shopspring/decimal"

	"moneybook/internal/core"
)

// UnknownCounterparty labels loan-given buckets whose counterparty is empty.
const UnknownCounterparty = "Unknown"

type BucketKind string

const (
	KindExpense   BucketKind = "Expense"
	KindLoanGiven BucketKind = "Loan Given"
)

// Bucket is one named aggregate of a breakdown view.
type Bucket struct {
	Label string
	Value decimal.Decimal
	Kind  BucketKind
}

// Breakdown holds the expense buckets (by category) and the loan-given
// buckets (by counterparty). Buckets appear in first-seen order; callers
// that need a display order sort them.
type Breakdown struct {
	Expenses   []Bucket
	LoansGiven []Bucket
}

// All returns expense buckets followed by loan-given buckets.
func (b Breakdown) All() []Bucket {
	out := make([]Bucket, 0, len(b.Expenses)+len(b.LoansGiven))
	out = append(out, b.Expenses...)
	return append(out, b.LoansGiven...)
}

// ExpenseTotal is the sum of all expense buckets.
func (b Breakdown) ExpenseTotal() decimal.Decimal {
	return sumBuckets(b.Expenses)
}

// LoanGivenTotal is the sum of all loan-given buckets.
func (b Breakdown) LoanGivenTotal() decimal.Decimal {
	return sumBuckets(b.LoansGiven)
}

// IsEmpty reports whether there is nothing to chart.
func (b Breakdown) IsEmpty() bool {
	return len(b.Expenses) == 0 && len(b.LoansGiven) == 0
}

// Aggregate groups EXPENSE amounts by category and LOAN_GIVEN amounts by
// counterparty. Every other type is ignored.
func Aggregate(txs []core.Transaction) Breakdown {
	expenses := newGrouper(KindExpense)
	loans := newGrouper(KindLoanGiven)
	for _, tx := range txs {
		switch tx.Type {
		case core.Expense:
			expenses.add(tx.Category, tx.Amount)
		case core.LoanGiven:
			label := tx.Counterparty
			if label == "" {
				label = UnknownCounterparty
			}
			loans.add(label, tx.Amount)
		}
	}
	return Breakdown{Expenses: expenses.buckets(), LoansGiven: loans.buckets()}
}

type grouper struct {
	kind  BucketKind
	index map[string]int
	out   []Bucket
}

func newGrouper(kind BucketKind) *grouper {
	return &grouper{kind: kind, index: make(map[string]int)}
}

func (g *grouper) add(label string, amount decimal.Decimal) {
	if i, ok := g.index[label]; ok {
		g.out[i].Value = g.out[i].Value.Add(amount)
		return
	}
	g.index[label] = len(g.out)
	g.out = append(g.out, Bucket{Label: label, Value: amount, Kind: g.kind})
}

func (g *grouper) buckets() []Bucket {
	if len(g.out) == 0 {
		return nil
	}
	return g.out
}

func sumBuckets(bs []Bucket) decimal.Decimal {
	total := decimal.Zero
	for _, b := range bs {
		total = total.Add(b.Value)
	}
	return total
}
