package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"moneybook/internal/api"
)

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session for later commands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a := application

			if password == "" {
				p, err := prompt(cmd.InOrStdin(), a.out, "Password: ")
				if err != nil {
					return err
				}
				password = p
			}

			token, err := a.client.Login(ctx, email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			claims, err := a.session.Login(ctx, token)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			fmt.Fprintln(a.out, a.styles().FormatSuccess("Logged in as "+claims.DisplayName()))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func registerCmd() *cobra.Command {
	var reg api.Registration

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a := application

			if reg.Password == "" {
				p, err := prompt(cmd.InOrStdin(), a.out, "Password: ")
				if err != nil {
					return err
				}
				reg.Password = p
			}

			if err := a.client.Register(ctx, reg); err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}
			fmt.Fprintln(a.out, a.styles().FormatSuccess("Account created, you can now log in"))
			return nil
		},
	}

	cmd.Flags().StringVar(&reg.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&reg.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&reg.Email, "email", "", "account email")
	cmd.Flags().StringVar(&reg.Password, "password", "", "account password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := application
			if err := a.session.Logout(cmd.Context()); err != nil {
				return err
			}
			a.client.Invalidate()
			fmt.Fprintln(a.out, a.styles().FormatSuccess("Logged out"))
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(_ *cobra.Command, _ []string) error {
			a := application
			claims, ok := a.session.Claims()
			if !ok {
				return errNotLoggedIn
			}
			s := a.styles()
			fmt.Fprintln(a.out, s.Bold.Render(claims.DisplayName()))
			fmt.Fprintf(a.out, "  subject  %s\n", claims.SubjectID)
			fmt.Fprintf(a.out, "  expires  %s\n", s.Subtle.Render(claims.Expiry().Local().Format(time.RFC1123)))
			return nil
		},
	}
}

func prompt(in io.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
