package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"moneybook/internal/cli"
)

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "summary",
		Aliases: []string{"dashboard"},
		Short:   "Show balance, loan positions and recent transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a := application
			if err := a.requireSession(); err != nil {
				return err
			}

			view, err := a.dashboard.Load(ctx)
			if err != nil {
				return a.apiError(ctx, err)
			}
			return cli.RenderDashboard(a.out, a.styles(), view)
		},
	}
}

func listCmd() *cobra.Command {
	var f listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions with optional filters",
		Long: `List transactions, most recent first unless a sort is given.

Dates are inclusive and use YYYY-MM-DD. Sort accepts NONE, HIGH_LOW and LOW_HIGH.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a := application
			if err := a.requireSession(); err != nil {
				return err
			}

			q, err := f.query()
			if err != nil {
				return err
			}
			txs, err := a.dashboard.List(ctx, q)
			if err != nil {
				return a.apiError(ctx, err)
			}
			return cli.RenderTransactions(a.out, a.styles(), txs)
		},
	}

	cmd.Flags().StringVar(&f.Type, "type", "ALL", "transaction type or ALL")
	cmd.Flags().StringVar(&f.From, "from", "", "earliest date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.To, "to", "", "latest date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.Sort, "sort", "NONE", "sort by amount: NONE, HIGH_LOW or LOW_HIGH")
	cmd.Flags().StringVar(&f.TieBreak, "tie-break", "", "order of equal entries: stable or id (default from SORT_TIE_BREAK)")
	return cmd
}

func breakdownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "breakdown",
		Short: "Group expenses by category and loans given by counterparty",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a := application
			if err := a.requireSession(); err != nil {
				return err
			}

			b, err := a.dashboard.Breakdown(ctx)
			if err != nil {
				return a.apiError(ctx, err)
			}
			return cli.RenderBreakdown(a.out, a.styles(), b)
		},
	}
}

func typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the transaction types the server accepts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a := application
			if err := a.requireSession(); err != nil {
				return err
			}

			types, err := a.client.ListTypes(ctx)
			if err != nil {
				return a.apiError(ctx, err)
			}
			for _, t := range types {
				fmt.Fprintln(a.out, t)
			}
			return nil
		},
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a single transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a := application
			if err := a.requireSession(); err != nil {
				return err
			}

			tx, err := a.client.GetTransaction(ctx, args[0])
			if err != nil {
				return a.apiError(ctx, err)
			}
			return cli.RenderTransaction(a.out, a.styles(), tx)
		},
	}
}

func addCmd() *cobra.Command {
	var f entryFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new transaction",
		Long: `Record a new transaction.

Loans, recoveries and settlements need a counterparty. The date defaults to today
and cannot be in the future.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a := application
			if err := a.requireSession(); err != nil {
				return err
			}

			created, err := a.transactions.AddTransaction(ctx, f.entry())
			if err != nil {
				return a.apiError(ctx, err)
			}
			s := a.styles()
			fmt.Fprintln(a.out, s.FormatSuccess("Transaction added"))
			return cli.RenderTransaction(a.out, s, created)
		},
	}

	f.register(cmd, true)
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func editCmd() *cobra.Command {
	var f entryFlags

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change an existing transaction",
		Long: `Change an existing transaction. Only the flags given are changed;
the transaction type cannot be changed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a := application
			if err := a.requireSession(); err != nil {
				return err
			}

			existing, err := a.client.GetTransaction(ctx, args[0])
			if err != nil {
				return a.apiError(ctx, err)
			}
			entry := f.overlay(cmd.Flags().Changed, existing)

			updated, err := a.transactions.UpdateTransaction(ctx, args[0], entry)
			if err != nil {
				return a.apiError(ctx, err)
			}
			s := a.styles()
			fmt.Fprintln(a.out, s.FormatSuccess("Transaction updated"))
			return cli.RenderTransaction(a.out, s, updated)
		},
	}

	f.register(cmd, false)
	return cmd
}
