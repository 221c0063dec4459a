package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"moneybook/internal/core"
	"moneybook/internal/ledger"
)

type listFlags struct {
	Type     string
	From     string
	To       string
	Sort     string
	TieBreak string
}

// query parses the flags. An empty tie-break is left empty so the
// configured default applies.
func (f listFlags) query() (ledger.Query, error) {
	var q ledger.Query
	var err error

	if q.Type, err = ledger.ParseTypeFilter(f.Type); err != nil {
		return ledger.Query{}, fmt.Errorf("--type %q: %w", f.Type, err)
	}
	if q.Sort, err = ledger.ParseSortOrder(f.Sort); err != nil {
		return ledger.Query{}, fmt.Errorf("--sort: %w", err)
	}
	if strings.TrimSpace(f.TieBreak) != "" {
		if q.TieBreak, err = ledger.ParseTieBreak(f.TieBreak); err != nil {
			return ledger.Query{}, fmt.Errorf("--tie-break: %w", err)
		}
	}
	if f.From != "" {
		if q.From, err = core.ParseDate(f.From); err != nil {
			return ledger.Query{}, fmt.Errorf("--from: %w", err)
		}
	}
	if f.To != "" {
		if q.To, err = core.ParseDate(f.To); err != nil {
			return ledger.Query{}, fmt.Errorf("--to: %w", err)
		}
	}
	if !q.From.IsZero() && !q.To.IsZero() && q.To.Before(q.From.Time) {
		return ledger.Query{}, fmt.Errorf("--to %s is before --from %s", q.To, q.From)
	}
	return q, nil
}

type entryFlags struct {
	core.Entry
}

func (f *entryFlags) register(cmd *cobra.Command, withType bool) {
	if withType {
		cmd.Flags().StringVar(&f.Type, "type", "", "INCOME, EXPENSE, LOAN_TAKEN, LOAN_GIVEN, RECOVERY or SETTLEMENT")
	}
	cmd.Flags().StringVar(&f.Category, "category", "", "category")
	cmd.Flags().StringVar(&f.Amount, "amount", "", "amount of zero or more, e.g. 12.50 or 12,50")
	cmd.Flags().StringVar(&f.Counterparty, "counterparty", "", "other party of a loan, recovery or settlement")
	cmd.Flags().StringVar(&f.Date, "date", "", "transaction date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&f.Description, "description", "", "free-form note")
}

func (f *entryFlags) entry() core.Entry {
	return f.Entry
}

// overlay starts from existing and replaces the fields whose flag was set.
func (f *entryFlags) overlay(changed func(name string) bool, existing core.Transaction) core.Entry {
	e := core.Entry{
		Type:         existing.Type.String(),
		Category:     existing.Category,
		Amount:       existing.Amount.String(),
		Counterparty: existing.Counterparty,
		Date:         existing.Date.String(),
		Description:  existing.Description,
	}
	if changed("category") {
		e.Category = f.Category
	}
	if changed("amount") {
		e.Amount = f.Amount
	}
	if changed("counterparty") {
		e.Counterparty = f.Counterparty
	}
	if changed("date") {
		e.Date = f.Date
	}
	if changed("description") {
		e.Description = f.Description
	}
	return e
}
