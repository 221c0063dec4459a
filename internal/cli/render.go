package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"moneybook/internal/core"
	"moneybook/internal/dashboard"
	"moneybook/internal/ledger"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// SignedString renders tx's amount with its display sign, e.g. "+10.00" or "-4.50".
func SignedString(tx core.Transaction) string {
	signed := tx.SignedAmount()
	if signed.Sign() > 0 {
		return "+" + core.FormatAmount(signed)
	}
	return core.FormatAmount(signed)
}

func (s Styles) amount(d decimal.Decimal) string {
	text := core.FormatAmount(d)
	if d.Sign() < 0 {
		return s.Negative.Render(text)
	}
	return s.Positive.Render(text)
}

// RenderDashboard writes the overview: summary figures, totals and the most
// recent transactions.
func RenderDashboard(w io.Writer, s Styles, v dashboard.View) error {
	fmt.Fprintln(w, s.FormatTitle("Summary"))
	fmt.Fprintf(w, "  Balance       %s\n", s.amount(v.Summary.Balance))
	fmt.Fprintf(w, "  Loans taken   %s\n", core.FormatAmount(v.Summary.LoanTaken))
	fmt.Fprintf(w, "  Loans given   %s\n", core.FormatAmount(v.Summary.LoanGiven))
	fmt.Fprintln(w)

	fmt.Fprintln(w, s.FormatTitle("Totals"))
	fmt.Fprintf(w, "  Expenses      %s\n", core.FormatAmount(v.Totals.Expenses))
	fmt.Fprintf(w, "  Loans given   %s\n", core.FormatAmount(v.Totals.LoansGiven))
	fmt.Fprintln(w)

	fmt.Fprintln(w, s.FormatTitle("Recent transactions"))
	return RenderTransactions(w, s, v.Recent)
}

// RenderTransactions writes txs as an aligned table in the given order.
func RenderTransactions(w io.Writer, s Styles, txs []core.Transaction) error {
	if len(txs) == 0 {
		fmt.Fprintln(w, s.Subtle.Render("No transactions found"))
		return nil
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDATE\tTYPE\tCATEGORY\tCOUNTERPARTY\tAMOUNT")
	for _, tx := range txs {
		counterparty := tx.Counterparty
		if counterparty == "" {
			counterparty = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID, tx.Date, tx.Type.Label(), tx.Category, counterparty, SignedString(tx))
	}
	return tw.Flush()
}

// RenderTransaction writes a single transaction as labelled fields.
func RenderTransaction(w io.Writer, s Styles, tx core.Transaction) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID\t%s\n", tx.ID)
	fmt.Fprintf(tw, "Date\t%s\n", tx.Date)
	fmt.Fprintf(tw, "Type\t%s\n", tx.Type.Label())
	fmt.Fprintf(tw, "Category\t%s\n", tx.Category)
	fmt.Fprintf(tw, "Amount\t%s\n", SignedString(tx))
	if tx.Counterparty != "" {
		fmt.Fprintf(tw, "Counterparty\t%s\n", tx.Counterparty)
	}
	if tx.Description != "" {
		fmt.Fprintf(tw, "Description\t%s\n", tx.Description)
	}
	return tw.Flush()
}

// RenderBreakdown writes the expense and loan-given buckets with each
// bucket's share of its group.
func RenderBreakdown(w io.Writer, s Styles, b ledger.Breakdown) error {
	if b.IsEmpty() {
		fmt.Fprintln(w, s.Subtle.Render("Nothing to break down"))
		return nil
	}
	if err := renderBuckets(w, s, "Expenses by category", b.Expenses, b.ExpenseTotal()); err != nil {
		return err
	}
	return renderBuckets(w, s, "Loans given by counterparty", b.LoansGiven, b.LoanGivenTotal())
}

func renderBuckets(w io.Writer, s Styles, title string, buckets []ledger.Bucket, total decimal.Decimal) error {
	if len(buckets) == 0 {
		return nil
	}
	fmt.Fprintln(w, s.FormatTitle(title))
	tw := newTable(w)
	for _, b := range buckets {
		fmt.Fprintf(tw, "  %s\t%s\t%s%%\n", b.Label, core.FormatAmount(b.Value), share(b.Value, total))
	}
	fmt.Fprintf(tw, "  %s\t%s\t\n", "Total", core.FormatAmount(total))
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}

func share(part, total decimal.Decimal) string {
	if total.IsZero() {
		return "0.0"
	}
	return part.Div(total).Mul(decimal.NewFromInt(100)).StringFixed(1)
}
