package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "idlens",
		Short: "ID document field extraction service backed by a vision LLM",
		Long: `Idlens extracts structured fields (name, ID number, date of birth, expiry
dates, passport number, occupation) from uploaded identification document
images by delegating the visual analysis to the Gemini generateContent API.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newEvalCmd())

	return cmd
}
