package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/mdnotes/internal/config"
	"github.com/mithrel/mdnotes/internal/logging"
	"github.com/mithrel/mdnotes/internal/util"
	"github.com/mithrel/mdnotes/internal/wire"
	"github.com/mithrel/mdnotes/pkg/api"
)

const maxCompletions = 20

// completeNoteIDs offers note ids for the first argument. Ids starting with
// the typed text come first; otherwise titles are ranked by fuzzy match.
// Each candidate carries its title as the description.
func completeNoteIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	app, ok := appFrom(cmd)
	if !ok || app.Notes == nil {
		// shell completion skips the persistent pre-run hooks
		var err error
		app, err = completionApp(cmd)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		defer app.Close()
	}

	notes := app.Notes.List(api.ListQuery{})
	out := make([]string, 0, maxCompletions)
	for _, n := range notes {
		if toComplete != "" && strings.HasPrefix(n.ID, toComplete) {
			out = append(out, n.ID+"\t"+n.DisplayTitle())
		}
	}
	if len(out) == 0 {
		titles := make([]string, len(notes))
		for i, n := range notes {
			titles[i] = n.DisplayTitle()
		}
		idx := util.RankIndexes(toComplete, titles)
		if toComplete == "" {
			idx = make([]int, len(notes))
			for i := range idx {
				idx[i] = i
			}
		}
		for _, i := range idx {
			out = append(out, notes[i].ID+"\t"+titles[i])
		}
	}
	if len(out) > maxCompletions {
		out = out[:maxCompletions]
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeWords ranks fixed flag or argument values against the typed text.
func completeWords(words ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return util.ScoreCompletions(toComplete, words, 0), cobra.ShellCompDirectiveNoFileComp
	}
}

func completionApp(cmd *cobra.Command) (*wire.App, error) {
	v := viper.New()
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		v.SetConfigFile(p)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := config.Load(ctx, v); err != nil {
		return nil, err
	}
	applyConfigFlagOverrides(cmd, v, flagKeys)
	// completion output must stay clean
	ctx = logging.WithLogger(ctx, logging.Discard())
	v.Set("seed.welcome", false)
	return wire.BuildApp(ctx, v)
}
