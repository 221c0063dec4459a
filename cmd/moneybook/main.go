package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"moneybook/internal/cli"
	"moneybook/internal/log"
	"moneybook/internal/prefs"
)

var (
	version = "dev"

	application *app

	rootCmd = &cobra.Command{
		Use:   "moneybook",
		Short: "Personal ledger of income, expenses and loans",
		Long: `moneybook talks to a remote ledger API and derives balances, loan
positions and category breakdowns from your transactions.

Configuration is read from the environment and an optional .env file.`,
		SilenceUsage:      true,
		PersistentPreRunE: initApp,
	}
)

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error); overrides LOG_LEVEL")
	rootCmd.Version = version

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(breakdownCmd())
	rootCmd.AddCommand(typesCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(editCmd())
	rootCmd.AddCommand(themeCmd())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if application != nil {
		if cerr := application.Close(); cerr != nil {
			application.logger.Error("Failed to release resources", log.FieldError, cerr)
		}
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.NewStyles(themeOrDefault()).FormatError(err.Error()))
		os.Exit(1)
	}
}

func initApp(cmd *cobra.Command, _ []string) error {
	cli.LoadEnvFile()
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		_ = os.Setenv("LOG_LEVEL", level)
	}

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	application = a
	return nil
}

func themeOrDefault() prefs.Theme {
	if application == nil {
		return prefs.Light
	}
	return application.prefs.Theme()
}
