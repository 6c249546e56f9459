package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coloringbook",
		Short: "Coloring book page generator with AI-suggested themes",
		Long: `Coloringbook is a web tool for generating children's coloring book pages.

Bring your own OpenAI API key, pick one of the suggested themes, and
download the generated line art as a ZIP archive or a print-ready PDF.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newServeCmd())

	return cmd
}
