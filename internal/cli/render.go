package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/mdnotes/internal/markup"
	"github.com/mithrel/mdnotes/internal/prefs"
	"github.com/mithrel/mdnotes/internal/present/format"
)

func newRenderCmd() *cobra.Command {
	var outFormat string
	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render note markup from a file or stdin",
		Long: `Render note markup to HTML, to an indented node tree, or styled for the terminal.
Reads stdin when no file is given or the file is "-".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			src, err := io.ReadAll(in)
			if err != nil {
				return err
			}
			doc := app.Renderer.Parse(string(src))
			out := cmd.OutOrStdout()

			switch strings.ToLower(outFormat) {
			case "html":
				if err := markup.WriteHTML(out, doc); err != nil {
					return err
				}
				_, err = io.WriteString(out, "\n")
				return err
			case "tree":
				return writeTree(out, doc)
			case "term":
				theme, err := app.Themes.Load(cmd.Context())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, format.RenderTerm(doc, terminalWidth(out), theme == prefs.Dark))
				return err
			}
			return fmt.Errorf("invalid --format: %s", outFormat)
		},
	}
	cmd.Flags().StringVarP(&outFormat, "format", "f", "html", "output format: html|tree|term")
	_ = cmd.RegisterFlagCompletionFunc("format", completeWords("html", "tree", "term"))
	return cmd
}

// writeTree prints one node per line, indented by depth.
func writeTree(w io.Writer, doc *markup.Node) error {
	var walk func(n *markup.Node, depth int) error
	walk = func(n *markup.Node, depth int) error {
		line := strings.Repeat("  ", depth) + n.Kind.String()
		switch n.Kind {
		case markup.KindHeading:
			line += fmt.Sprintf(" level=%d", n.Level)
		case markup.KindCodeBlock:
			if n.Lang != "" {
				line += " lang=" + n.Lang
			}
			line += fmt.Sprintf(" %q", n.Text)
		case markup.KindText, markup.KindCode:
			line += fmt.Sprintf(" %q", n.Text)
		case markup.KindLink:
			line += fmt.Sprintf(" target=%q", n.Target)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		for _, c := range n.Children {
			if err := walk(c, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(doc, 0)
}
