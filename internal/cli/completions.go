package cli

import (
	"github.com/spf13/cobra"
)

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "completion",
		Short:       "Generate shell completion scripts",
		Annotations: map[string]string{skipApp: ""},
	}

	gen := func(use, short string, run func(cmd *cobra.Command) error) *cobra.Command {
		return &cobra.Command{
			Use:         use,
			Short:       short,
			Args:        cobra.NoArgs,
			Annotations: map[string]string{skipApp: ""},
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd)
			},
		}
	}
	cmd.AddCommand(gen("bash", "Generate Bash completions", func(cmd *cobra.Command) error {
		return cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
	}))
	cmd.AddCommand(gen("zsh", "Generate Zsh completions", func(cmd *cobra.Command) error {
		return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
	}))
	cmd.AddCommand(gen("fish", "Generate Fish completions", func(cmd *cobra.Command) error {
		return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
	}))

	return cmd
}
