package core

import (
	"fmt"
	"strings"
)

// Entry is raw, user-typed transaction input. ParseEntry is the only way
// an Entry becomes a Transaction.
type Entry struct {
	Type         string
	Category     string
	Amount       string
	Counterparty string
	Date         string
	Description  string
}

// ParseEntry parses and validates raw input. An empty date means today.
func ParseEntry(e Entry, today Date) (Transaction, error) {
	typ, err := ParseTransactionType(e.Type)
	if err != nil {
		return Transaction{}, fmt.Errorf("type %q: %w", e.Type, err)
	}
	return parseFields(typ, e, today)
}

// ParseUpdate parses input for an existing transaction. The stored type is
// kept, whatever e.Type says, and decides whether a counterparty is required.
// An amount given exactly as stored keeps its full precision.
func ParseUpdate(existing Transaction, e Entry, today Date) (Transaction, error) {
	tx, err := parseFields(existing.Type, e, today)
	if err != nil {
		return Transaction{}, err
	}
	if strings.TrimSpace(e.Amount) == existing.Amount.String() {
		tx.Amount = existing.Amount
	}
	tx.ID = existing.ID
	return tx, nil
}

func parseFields(typ TransactionType, e Entry, today Date) (Transaction, error) {
	amount, err := ParseAmount(e.Amount)
	if err != nil {
		return Transaction{}, fmt.Errorf("amount %q: %w", e.Amount, err)
	}

	date := today
	if strings.TrimSpace(e.Date) != "" {
		date, err = ParseDate(e.Date)
		if err != nil {
			return Transaction{}, err
		}
	}

	tx := Transaction{
		Type:         typ,
		Category:     strings.TrimSpace(e.Category),
		Amount:       amount,
		Counterparty: strings.TrimSpace(e.Counterparty),
		Date:         date,
		Description:  strings.TrimSpace(e.Description),
	}
	if err := tx.Validate(today); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}
