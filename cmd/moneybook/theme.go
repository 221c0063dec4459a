package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func themeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [toggle|light|dark]",
		Short:     "Show or change the color theme",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"toggle", "light", "dark"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a := application

			if len(args) == 1 {
				var err error
				switch args[0] {
				case "toggle":
					_, err = a.prefs.Toggle(ctx)
				case "light":
					err = a.prefs.SetLight(ctx)
				case "dark":
					err = a.prefs.SetDark(ctx)
				}
				if err != nil {
					return fmt.Errorf("save theme: %w", err)
				}
			}

			s := a.styles()
			fmt.Fprintln(a.out, s.Title.Render("Theme: "+s.Theme.String()))
			return nil
		},
	}
}
