package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mithrel/mdnotes/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered notes over HTTP on localhost",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			srv := server.New(app.Notes, app.Themes, app.Renderer, app.Log)
			return srv.ListenAndServe(ctx, app.Cfg.GetString("serve.addr"))
		},
	}
	cmd.Flags().String("addr", "", "listen address (default from serve.addr)")
	return cmd
}
