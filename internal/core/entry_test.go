package core

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseEntry(t *testing.T) {
	today := NewDate(2025, 4, 20)

	tx, err := ParseEntry(Entry{
		Type:         "loan_given",
		Category:     " Friends ",
		Amount:       "200,50",
		Counterparty: " Bob ",
		Date:         "2025-04-19",
	}, today)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if tx.Type != LoanGiven || tx.Category != "Friends" || tx.Counterparty != "Bob" {
		t.Fatalf("unexpected transaction %+v", tx)
	}
	if !tx.Amount.Equal(decimal.RequireFromString("200.50")) {
		t.Fatalf("unexpected amount %s", tx.Amount)
	}

	tx, err = ParseEntry(Entry{Type: "INCOME", Category: "Salary", Amount: "1000"}, today)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if !tx.Date.Equal(today.Time) {
		t.Fatalf("empty date should default to today, got %v", tx.Date)
	}

	bads := []struct {
		e    Entry
		want error
	}{
		{Entry{Type: "", Category: "c", Amount: "1"}, ErrInvalidType},
		{Entry{Type: "EXPENSE", Category: "c", Amount: "x"}, ErrInvalidAmount},
		{Entry{Type: "RECOVERY", Category: "c", Amount: "1", Counterparty: "  "}, ErrMissingCounterparty},
		{Entry{Type: "EXPENSE", Category: "c", Amount: "1", Date: "2025-04-21"}, ErrFutureDate},
		{Entry{Type: "EXPENSE", Category: "c", Amount: "1", Date: "tomorrow"}, ErrInvalidDate},
	}
	for i, tc := range bads {
		if _, err := ParseEntry(tc.e, today); !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestParseUpdateKeepsType(t *testing.T) {
	today := NewDate(2025, 4, 20)
	existing := Transaction{ID: "42", Type: LoanTaken, Category: "Bank", Amount: decimal.NewFromInt(500), Counterparty: "A", Date: today}

	updated, err := ParseUpdate(existing, Entry{Type: "INCOME", Category: "Bank", Amount: "450", Counterparty: "A"}, today)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if updated.ID != "42" || updated.Type != LoanTaken {
		t.Fatalf("update must keep id and type, got %+v", updated)
	}

	if _, err := ParseUpdate(existing, Entry{Category: "Bank", Amount: "450"}, today); !errors.Is(err, ErrMissingCounterparty) {
		t.Fatalf("expected ErrMissingCounterparty, got %v", err)
	}
}

func TestParseEntryAcceptsZeroAmount(t *testing.T) {
	today := NewDate(2025, 4, 20)
	for _, amount := range []string{"0", "0.00", "0,00"} {
		tx, err := ParseEntry(Entry{Type: "EXPENSE", Category: "Food", Amount: amount, Date: "2025-01-01"}, today)
		if err != nil {
			t.Fatalf("%q: expected ok, got %v", amount, err)
		}
		if !tx.Amount.IsZero() {
			t.Fatalf("%q: expected zero amount, got %s", amount, tx.Amount)
		}
	}
	if _, err := ParseEntry(Entry{Type: "EXPENSE", Category: "Food", Amount: "-0.01"}, today); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestParseUpdateOfZeroAmountTransaction(t *testing.T) {
	today := NewDate(2025, 4, 20)
	existing := Transaction{ID: "9", Type: Expense, Category: "Food", Amount: decimal.Zero, Date: NewDate(2025, 4, 1)}

	updated, err := ParseUpdate(existing, Entry{Category: "Groceries", Amount: existing.Amount.String(), Date: "2025-04-01"}, today)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if updated.Category != "Groceries" || !updated.Amount.IsZero() {
		t.Fatalf("unexpected update %+v", updated)
	}
}

func TestParseUpdateKeepsStoredPrecision(t *testing.T) {
	today := NewDate(2025, 4, 20)
	existing := Transaction{ID: "3", Type: Income, Category: "Interest", Amount: decimal.RequireFromString("10.125"), Date: today}

	updated, err := ParseUpdate(existing, Entry{Category: "Savings", Amount: "10.125"}, today)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if !updated.Amount.Equal(existing.Amount) {
		t.Fatalf("stored amount should be kept, got %s", updated.Amount)
	}

	retyped, err := ParseUpdate(existing, Entry{Category: "Savings", Amount: "10,125"}, today)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if !retyped.Amount.Equal(decimal.RequireFromString("10.13")) {
		t.Fatalf("typed amount should be rounded, got %s", retyped.Amount)
	}
}
