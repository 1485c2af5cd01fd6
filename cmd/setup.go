package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/ui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive first-run configuration",
	Long: `Walk through backend selection and credentials. Safe to re-run;
the config file is rewritten each time.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := ui.RunSetupWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
