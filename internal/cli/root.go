package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/mdnotes/internal/config"
	"github.com/mithrel/mdnotes/internal/logging"
	"github.com/mithrel/mdnotes/internal/wire"
)

type ctxKey string

const appKey ctxKey = "app"

// skipApp marks commands that run without opening storage.
const skipApp = "mdnotes/skip-app"

// Execute builds the root command and runs it.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the Cobra root command and wires dependencies.
func NewRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:           "mdnotes",
		Short:         "mdnotes: Markdown notes in the terminal",
		SilenceUsage:  true, // don't show usage on runtime errors
		SilenceErrors: true, // let main print errors once
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			if err := config.Load(cmd.Context(), v); err != nil {
				return err
			}
			applyConfigFlagOverrides(cmd, v, flagKeys)
			if err := config.CheckConfigValidity(v); err != nil {
				return err
			}

			logger := logging.NewWriter(cmd.ErrOrStderr(), v.GetString("log.level"))
			logging.SetDefault(logger)
			ctx := logging.WithLogger(cmd.Context(), logger)
			if _, ok := cmd.Annotations[skipApp]; ok {
				cmd.SetContext(context.WithValue(ctx, appKey, &wire.App{Cfg: v, Log: logger}))
				return nil
			}

			// Wire up the app and stash it in context for subcommands.
			app, err := wire.BuildApp(ctx, v)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(ctx, appKey, app))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app, ok := appFrom(cmd); ok {
				return app.Close()
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (toml)")
	cmd.PersistentFlags().String("dsn", "", "storage backend (mem://, sqlite://path or a file path)")
	cmd.PersistentFlags().String("log-level", "", "log level: debug|info|warn|error")

	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newNoteCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newImportCmd())
	cmd.AddCommand(newThemeCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newBrowseCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newCompletionCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return cmd
}

func appFrom(cmd *cobra.Command) (*wire.App, bool) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, false
	}
	app, ok := ctx.Value(appKey).(*wire.App)
	return app, ok && app != nil
}

func getApp(cmd *cobra.Command) *wire.App {
	app, ok := appFrom(cmd)
	if !ok {
		fmt.Fprintln(os.Stderr, "internal error: app not initialized")
		os.Exit(1)
	}
	return app
}

// errAborted is returned when the user declines a confirmation.
var errAborted = errors.New("aborted")
