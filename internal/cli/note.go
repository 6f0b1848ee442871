package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/mdnotes/internal/editor"
	"github.com/mithrel/mdnotes/internal/wire"
	"github.com/mithrel/mdnotes/pkg/api"
)

// newNoteCmd defines the parent "note" command.
func newNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Work with notes",
	}

	cmd.AddCommand(newNoteNewCmd())
	cmd.AddCommand(newNoteListCmd())
	cmd.AddCommand(newNoteShowCmd())
	cmd.AddCommand(newNoteEditCmd())
	cmd.AddCommand(newNotePinCmd())
	cmd.AddCommand(newNoteDeleteCmd())

	return cmd
}

// newNoteNewCmd creates a note. With a title argument the note is created
// directly; otherwise $EDITOR opens on an empty note.
func newNoteNewCmd() *cobra.Command {
	var content string
	cmd := &cobra.Command{
		Use:   "new [title]",
		Short: "Create a note",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			title := strings.TrimSpace(strings.Join(args, " "))
			if title != "" || cmd.Flags().Changed("content") {
				n := app.Notes.Create(cmd.Context(), title, content)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", n.ID, n.Title)
				return nil
			}

			n := app.Notes.Create(cmd.Context(), "", "")
			saved, err := editNote(cmd, app, n, true)
			if err != nil {
				return err
			}
			if saved != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", saved.ID, saved.Title)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&content, "content", "c", "", "note content (skips the editor)")
	return cmd
}

func newNoteEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "edit <id>",
		Short:             "Edit a note in $EDITOR",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeNoteIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			n, err := app.Notes.Resolve(args[0])
			if err != nil {
				return err
			}
			saved, err := editNote(cmd, app, n, false)
			if err != nil {
				return err
			}
			if saved != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", saved.ID, saved.Title)
			}
			return nil
		},
	}
	return cmd
}

// editNote runs the editor on n and saves the result. A nil note means
// nothing was saved. Fresh notes left empty are deleted when
// editor.delete_empty is set.
func editNote(cmd *cobra.Command, app *wire.App, n api.Note, fresh bool) (*api.Note, error) {
	ctx := cmd.Context()
	deleteEmpty := app.Cfg.GetBool("editor.delete_empty")
	discard := func(msg string) (*api.Note, error) {
		if fresh && deleteEmpty {
			_ = app.Notes.Delete(ctx, n.ID)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil, nil
	}

	path, err := editor.PathForID(n.ID)
	if err != nil {
		return nil, err
	}
	title := n.Title
	if fresh {
		title = ""
	}
	out, changed, err := editor.OpenAt(path, []byte(editor.ComposeContent(title, n.Content)))
	if err != nil {
		return nil, err
	}
	if !changed {
		return discard("No edits; note unchanged.")
	}
	newTitle, body := editor.ParseEditedNote(string(out))
	if newTitle == "" && body == "" {
		return discard("Note aborted: empty content.")
	}
	if newTitle == "" {
		newTitle = editor.FirstLine(body)
	}
	saved, err := app.Notes.Update(ctx, n.ID, api.Patch{Title: &newTitle, Content: &body})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func newNotePinCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "pin <id>",
		Short:             "Pin or unpin a note",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeNoteIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			n, err := app.Notes.Resolve(args[0])
			if err != nil {
				return err
			}
			n, err = app.Notes.TogglePin(cmd.Context(), n.ID)
			if err != nil {
				return err
			}
			state := "unpinned"
			if n.Pinned {
				state = "pinned"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", n.ID, state)
			return nil
		},
	}
}
