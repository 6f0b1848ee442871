package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/mdnotes/internal/logging"
	"github.com/mithrel/mdnotes/internal/present"
)

func newNoteShowCmd() *cobra.Command {
	var outputMode string
	cmd := &cobra.Command{
		Use:               "show <id>",
		Short:             "Display a note",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeNoteIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			mode, ok := present.ParseMode(strings.ToLower(outputMode))
			if !ok || mode == present.ModeTUI || mode == present.ModeNDJSON {
				return fmt.Errorf("invalid --output: %s", outputMode)
			}
			n, err := app.Notes.Resolve(args[0])
			if err != nil {
				return err
			}
			_ = app.Notes.Select(n.ID)
			theme, err := app.Themes.Load(cmd.Context())
			if err != nil {
				app.Log.Warn("theme unavailable", logging.FieldError, err)
			}
			opts := present.Options{
				Mode:       mode,
				JSONIndent: true,
				Theme:      theme,
				Width:      terminalWidth(cmd.OutOrStdout()),
				Renderer:   app.Renderer,
			}
			return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
				return present.RenderNote(w, n, opts)
			})
		},
	}
	cmd.Flags().StringVarP(&outputMode, "output", "o", "plain", "output mode: plain|pretty|json|html")
	_ = cmd.RegisterFlagCompletionFunc("output", completeWords("plain", "pretty", "json", "html"))
	return cmd
}
