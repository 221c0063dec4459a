package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income     TransactionType = "INCOME"
	Expense    TransactionType = "EXPENSE"
	LoanTaken  TransactionType = "LOAN_TAKEN"
	LoanGiven  TransactionType = "LOAN_GIVEN"
	Recovery   TransactionType = "RECOVERY"
	Settlement TransactionType = "SETTLEMENT"
)

const maxDescriptionLen = 200

type (
	// TransactionType is the closed set of ledger entry kinds. Values outside
	// the set can still arrive from the wire and are carried through untouched.
	TransactionType string

	Transaction struct {
		ID           string          `json:"id"`
		Type         TransactionType `json:"type"`
		Category     string          `json:"category"`
		Amount       decimal.Decimal `json:"amount"`
		Counterparty string          `json:"counterparty,omitempty"`
		Date         Date            `json:"transactionDate"`
		Description  string          `json:"description,omitempty"`
	}

	// Summary holds the derived totals of a ledger snapshot.
	Summary struct {
		Balance   decimal.Decimal `json:"balance"`
		LoanTaken decimal.Decimal `json:"loanTaken"`
		LoanGiven decimal.Decimal `json:"loanGiven"`
	}

	// ServerSummary is an authoritative summary where every field may be absent.
	ServerSummary struct {
		Balance   *decimal.Decimal
		LoanTaken *decimal.Decimal
		LoanGiven *decimal.Decimal
	}
)

var (
	ErrInvalidType         = errors.New("invalid transaction type")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrEmptyCategory       = errors.New("empty category")
	ErrMissingCounterparty = errors.New("counterparty required for loan, recovery and settlement transactions")
	ErrFutureDate          = errors.New("transaction date is in the future")
	ErrDescriptionTooLong  = errors.New("description too long (max 200 characters)")
)

func init() {
	// Amounts travel as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// TransactionTypes lists every known type in display order.
func TransactionTypes() []TransactionType {
	return []TransactionType{Income, Expense, LoanTaken, LoanGiven, Recovery, Settlement}
}

// ParseTransactionType accepts the canonical name, case-insensitively.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", ErrInvalidType
	}
	return t, nil
}

func (t TransactionType) IsValid() bool {
	switch t {
	case Income, Expense, LoanTaken, LoanGiven, Recovery, Settlement:
		return true
	default:
		return false
	}
}

// RequiresCounterparty reports whether entries of this type must name the other party.
func (t TransactionType) RequiresCounterparty() bool {
	switch t {
	case LoanTaken, LoanGiven, Recovery, Settlement:
		return true
	default:
		return false
	}
}

// IsOutflow reports whether the type is shown with a minus sign.
func (t TransactionType) IsOutflow() bool {
	return t == Expense || t == LoanGiven || t == Settlement
}

// Label is the human form, e.g. "LOAN TAKEN".
func (t TransactionType) Label() string {
	return strings.ReplaceAll(string(t), "_", " ")
}

func (t TransactionType) String() string {
	return string(t)
}

// Validate checks the invariants a producer must uphold before handing a
// transaction to the ledger. today bounds the transaction date.
func (t Transaction) Validate(today Date) error {
	if !t.Type.IsValid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.Amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	if t.Type.RequiresCounterparty() && strings.TrimSpace(t.Counterparty) == "" {
		return ErrMissingCounterparty
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if t.Date.After(today.Time) {
		return ErrFutureDate
	}
	if len(t.Description) > maxDescriptionLen {
		return ErrDescriptionTooLong
	}
	return nil
}

// SignedAmount returns the amount with the display sign of its type.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type.IsOutflow() {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Today returns the current local calendar date, stored as midnight UTC.
func Today() Date {
	return DateOf(time.Now())
}
