package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mithrel/mdnotes/internal/exchange"
	"github.com/mithrel/mdnotes/internal/logging"
)

func newExportCmd() *cobra.Command {
	var out, formatName string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all notes to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			name := formatName
			if name == "" {
				name = app.Cfg.GetString("export.format")
			}
			f, err := exchange.ParseFormat(name)
			if err != nil {
				return err
			}
			if out == "" {
				out = exchange.DefaultFileName(time.Now(), f)
			} else if formatName == "" {
				f = exchange.FormatForPath(out, f)
			}
			all := app.Notes.All()
			if err := exchange.ExportFile(cmd.Context(), all, out, f); err != nil {
				return err
			}
			app.Log.Debug("exported notes", logging.FieldPath, out, logging.FieldFormat, f, logging.FieldCount, len(all))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d notes to %s\n", len(all), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output path (default notes-<unixms>.<ext>)")
	cmd.Flags().StringVar(&formatName, "format", "", "json|ndjson|yaml (default from export.format or the file extension)")
	_ = cmd.RegisterFlagCompletionFunc("format", completeWords("json", "ndjson", "yaml"))
	return cmd
}

func newImportCmd() *cobra.Command {
	var file, formatName string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace all notes with the contents of a file",
		Long: `Replace all notes with the contents of an exported file.
The file is read and validated completely first; on any error nothing changes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(file) == "" {
				return fmt.Errorf("--file is required")
			}
			app := getApp(cmd)
			f := exchange.FormatForPath(file, exchange.JSON)
			if formatName != "" {
				var err error
				if f, err = exchange.ParseFormat(formatName); err != nil {
					return err
				}
			}
			res, err := exchange.ImportFile(cmd.Context(), app.Notes, file, f, time.Now())
			if err != nil {
				return err
			}
			app.Log.Debug("imported notes", logging.FieldPath, file, logging.FieldCount, res.Imported)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported: %d\nUnchanged: %d\n", res.Imported, res.Unchanged)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "input file")
	cmd.Flags().StringVar(&formatName, "format", "", "json|ndjson|yaml (default from the file extension)")
	_ = cmd.RegisterFlagCompletionFunc("format", completeWords("json", "ndjson", "yaml"))
	return cmd
}
