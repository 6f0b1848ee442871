package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mithrel/mdnotes/internal/present"
	"github.com/mithrel/mdnotes/internal/present/tui"
	"github.com/mithrel/mdnotes/internal/util"
	"github.com/mithrel/mdnotes/pkg/api"
)

func newNoteListCmd() *cobra.Command {
	var search, since, until, outputMode string
	var limit int
	var noHeaders bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, pinned first then newest",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			mode, ok := present.ParseMode(strings.ToLower(outputMode))
			if !ok || mode == present.ModePretty {
				return fmt.Errorf("invalid --output: %s", outputMode)
			}
			if limit < 0 {
				return errors.New("--limit must not be negative")
			}
			from, to, err := util.TimeRange(since, until, time.Now())
			if err != nil {
				return err
			}
			q := api.ListQuery{
				Search: search,
				Fuzzy:  app.Cfg.GetBool("search.fuzzy"),
				Since:  from,
				Until:  to,
				Limit:  limit,
			}
			if mode == present.ModeTUI {
				return tui.Browse(cmd.Context(), browseOptions(app, search))
			}
			list := app.Notes.List(q)
			opts := present.Options{Mode: mode, Headers: !noHeaders, Renderer: app.Renderer}
			return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
				return present.RenderNotes(w, list, opts)
			})
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "only notes whose title or content contains this text")
	cmd.Flags().Bool("fuzzy", false, "rank by fuzzy match instead of substring filtering")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of notes (0 = all)")
	cmd.Flags().StringVar(&since, "since", "", "updated at or after: 2h, 3d, 2025-10-26 or RFC3339")
	cmd.Flags().StringVar(&until, "until", "", "updated at or before: 2h, 3d, 2025-10-26 or RFC3339")
	cmd.Flags().StringVarP(&outputMode, "output", "o", "plain", "output mode: plain|json|ndjson|html|tui")
	cmd.Flags().BoolVar(&noHeaders, "noheaders", false, "hide column headers (plain)")
	_ = cmd.RegisterFlagCompletionFunc("output", completeWords("plain", "json", "ndjson", "html", "tui"))
	return cmd
}
