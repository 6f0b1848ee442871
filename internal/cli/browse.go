package cli

import (
	"github.com/spf13/cobra"

	"github.com/mithrel/mdnotes/internal/present/tui"
	"github.com/mithrel/mdnotes/internal/wire"
)

func newBrowseCmd() *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse, search and edit notes interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			return tui.Browse(cmd.Context(), browseOptions(app, search))
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "initial search text")
	cmd.Flags().Bool("fuzzy", false, "rank by fuzzy match instead of substring filtering")
	return cmd
}

func browseOptions(app *wire.App, search string) tui.Options {
	return tui.Options{
		Store:       app.Notes,
		Themes:      app.Themes,
		Renderer:    app.Renderer,
		Debounce:    app.PreviewDebounce(),
		Fuzzy:       app.Cfg.GetBool("search.fuzzy"),
		DeleteEmpty: app.Cfg.GetBool("editor.delete_empty"),
		Search:      search,
		Logger:      app.Log,
	}
}
