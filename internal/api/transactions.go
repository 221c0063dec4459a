package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"moneybook/internal/core"
)

// transactionRequest is the body accepted by POST and PUT /transactions.
type transactionRequest struct {
	Type         core.TransactionType `json:"type"`
	Category     string               `json:"category"`
	Amount       decimal.Decimal      `json:"amount"`
	Description  string               `json:"description,omitempty"`
	Counterparty string               `json:"counterparty,omitempty"`
	Date         core.Date            `json:"transactionDate"`
}

func newTransactionRequest(tx core.Transaction) transactionRequest {
	return transactionRequest{
		Type:         tx.Type,
		Category:     tx.Category,
		Amount:       tx.Amount,
		Description:  tx.Description,
		Counterparty: tx.Counterparty,
		Date:         tx.Date,
	}
}

// summaryResponse accepts both spellings of the loan totals.
type summaryResponse struct {
	Balance        *decimal.Decimal `json:"balance"`
	LoanTaken      *decimal.Decimal `json:"loanTaken"`
	LoanGiven      *decimal.Decimal `json:"loanGiven"`
	TotalLoanTaken *decimal.Decimal `json:"totalLoanTaken"`
	TotalLoanGiven *decimal.Decimal `json:"totalLoanGiven"`
}

func (r summaryResponse) serverSummary() *core.ServerSummary {
	s := &core.ServerSummary{Balance: r.Balance, LoanTaken: r.LoanTaken, LoanGiven: r.LoanGiven}
	if s.LoanTaken == nil {
		s.LoanTaken = r.TotalLoanTaken
	}
	if s.LoanGiven == nil {
		s.LoanGiven = r.TotalLoanGiven
	}
	return s
}

// ListTransactions returns the caller's ledger snapshot in server order.
func (c *Client) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	var txs []core.Transaction
	if err := c.get(ctx, pathTransactions, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// GetSummary returns the server's totals. A null or empty body yields a
// summary with every field absent.
func (c *Client) GetSummary(ctx context.Context) (*core.ServerSummary, error) {
	var resp *summaryResponse
	if err := c.get(ctx, pathSummary, &resp); err != nil {
		return nil, err
	}
	if resp == nil {
		return &core.ServerSummary{}, nil
	}
	return resp.serverSummary(), nil
}

func (c *Client) ListTypes(ctx context.Context) ([]core.TransactionType, error) {
	var types []core.TransactionType
	if err := c.get(ctx, pathTypes, &types); err != nil {
		return nil, err
	}
	return types, nil
}

func (c *Client) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	if id == "" {
		return core.Transaction{}, errors.New("transaction id is required")
	}
	var tx core.Transaction
	if err := c.get(ctx, pathTransactions+"/"+url.PathEscape(id), &tx); err != nil {
		return core.Transaction{}, err
	}
	return tx, nil
}

// AddTransaction creates tx and returns the stored record.
func (c *Client) AddTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	var created core.Transaction
	if err := c.send(ctx, http.MethodPost, pathTransactions, newTransactionRequest(tx), &created); err != nil {
		return core.Transaction{}, err
	}
	return created, nil
}

// UpdateTransaction replaces the editable fields of the transaction id.
func (c *Client) UpdateTransaction(ctx context.Context, id string, tx core.Transaction) (core.Transaction, error) {
	if id == "" {
		return core.Transaction{}, errors.New("transaction id is required")
	}
	var updated core.Transaction
	if err := c.send(ctx, http.MethodPut, pathTransactions+"/"+url.PathEscape(id), newTransactionRequest(tx), &updated); err != nil {
		return core.Transaction{}, err
	}
	return updated, nil
}
