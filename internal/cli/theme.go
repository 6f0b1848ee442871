package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mithrel/mdnotes/internal/prefs"
)

func newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "theme [toggle|light|dark]",
		Short:             "Show or change the saved theme",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeWords("toggle", "light", "dark"),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			ctx := cmd.Context()
			var theme prefs.Theme
			var err error
			switch {
			case len(args) == 0:
				theme, err = app.Themes.Load(ctx)
			case args[0] == "toggle":
				theme, err = app.Themes.Toggle(ctx)
			default:
				theme, err = prefs.ParseTheme(args[0])
				if err == nil {
					err = app.Themes.Save(ctx, theme)
				}
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), theme)
			return nil
		},
	}
	return cmd
}
