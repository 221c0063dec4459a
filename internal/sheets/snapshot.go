// Package sheets exports ledger snapshots to spreadsheets.
package sheets

import (
	"time"

	"moneybook/internal/core"
	"moneybook/internal/ledger"
)

// Snapshot is one export of the derived ledger state.
type Snapshot struct {
	GeneratedAt  time.Time
	Summary      core.Summary
	Breakdown    ledger.Breakdown
	Transactions []core.Transaction
}

// SummaryRows renders the totals with a header row. Amounts are fixed
// two-decimal strings throughout.
func (s Snapshot) SummaryRows() [][]any {
	return [][]any{
		{"Metric", "Amount"},
		{"Balance", core.FormatAmount(s.Summary.Balance)},
		{"Loan Taken", core.FormatAmount(s.Summary.LoanTaken)},
		{"Loan Given", core.FormatAmount(s.Summary.LoanGiven)},
		{"Generated At", s.GeneratedAt.UTC().Format(time.RFC3339)},
	}
}

// BreakdownRows renders every bucket with its kind.
func (s Snapshot) BreakdownRows() [][]any {
	rows := [][]any{{"Kind", "Label", "Amount"}}
	for _, b := range s.Breakdown.All() {
		rows = append(rows, []any{string(b.Kind), b.Label, core.FormatAmount(b.Value)})
	}
	return rows
}

// TransactionRows renders the snapshot newest first with signed amounts.
func (s Snapshot) TransactionRows() [][]any {
	rows := [][]any{{"ID", "Date", "Type", "Category", "Counterparty", "Amount", "Description"}}
	for _, tx := range ledger.FilterAndSort(s.Transactions, ledger.Query{TieBreak: ledger.TieBreakID}) {
		rows = append(rows, []any{
			tx.ID,
			tx.Date.String(),
			tx.Type.String(),
			tx.Category,
			tx.Counterparty,
			core.FormatAmount(tx.SignedAmount()),
			tx.Description,
		})
	}
	return rows
}
