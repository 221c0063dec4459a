package ledger

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"moneybook/internal/core"
)

// TypeAll disables type filtering.
const TypeAll core.TransactionType = "ALL"

type SortOrder string

const (
	// SortNone orders by date, most recent first.
	SortNone    SortOrder = "NONE"
	SortHighLow SortOrder = "HIGH_LOW"
	SortLowHigh SortOrder = "LOW_HIGH"
)

// TieBreak decides the order of entries equal on the active sort key.
type TieBreak string

const (
	// TieBreakStable keeps equal entries in input order.
	TieBreakStable TieBreak = "stable"
	// TieBreakID orders equal entries by ascending id.
	TieBreakID TieBreak = "id"
)

// Query narrows and orders a transaction listing. The zero value passes
// everything through in date-descending order.
type Query struct {
	Type     core.TransactionType // empty or TypeAll passes every type
	From     core.Date            // inclusive, zero means unbounded
	To       core.Date            // inclusive through end of day, zero means unbounded
	Sort     SortOrder
	TieBreak TieBreak
}

func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToUpper(strings.TrimSpace(s))); o {
	case "", SortNone:
		return SortNone, nil
	case SortHighLow, SortLowHigh:
		return o, nil
	default:
		return "", fmt.Errorf("unknown sort order %q", s)
	}
}

func ParseTieBreak(s string) (TieBreak, error) {
	switch t := TieBreak(strings.ToLower(strings.TrimSpace(s))); t {
	case "", TieBreakStable:
		return TieBreakStable, nil
	case TieBreakID:
		return t, nil
	default:
		return "", fmt.Errorf("unknown tie break %q", s)
	}
}

// ParseTypeFilter accepts ALL or one of the transaction types.
func ParseTypeFilter(s string) (core.TransactionType, error) {
	if s == "" || strings.EqualFold(s, string(TypeAll)) {
		return TypeAll, nil
	}
	return core.ParseTransactionType(s)
}

// FilterAndSort returns a new slice holding the transactions that pass q,
// ordered by q. Filters apply before sorting; txs is left untouched.
func FilterAndSort(txs []core.Transaction, q Query) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if q.matches(tx) {
			out = append(out, tx)
		}
	}
	slices.SortStableFunc(out, q.compare)
	return out
}

func (q Query) matches(tx core.Transaction) bool {
	if q.Type != "" && q.Type != TypeAll && tx.Type != q.Type {
		return false
	}
	if !q.From.IsZero() && tx.Date.Before(q.From.StartOfDay()) {
		return false
	}
	if !q.To.IsZero() && tx.Date.After(q.To.EndOfDay()) {
		return false
	}
	return true
}

func (q Query) compare(a, b core.Transaction) int {
	var c int
	switch q.Sort {
	case SortHighLow:
		c = b.Amount.Cmp(a.Amount)
	case SortLowHigh:
		c = a.Amount.Cmp(b.Amount)
	default:
		c = b.Date.Compare(a.Date.Time)
	}
	if c == 0 && q.TieBreak == TieBreakID {
		c = cmp.Compare(a.ID, b.ID)
	}
	return c
}

// Recent returns the n most recent transactions, newest first.
func Recent(txs []core.Transaction, n int) []core.Transaction {
	out := FilterAndSort(txs, Query{})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
