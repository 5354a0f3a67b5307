package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/AndreaCatalan/automated-email/internal/logging"
)

var verbose bool

// rootCmd represents the base command for the automated-email application
var rootCmd = &cobra.Command{
	Use:   "automated-email",
	Short: "Turns a status spreadsheet into a Gmail draft",
	Long: `automated-email reads your daily status rows from a Google Sheet,
composes a status report email with Gemini, and files it as a Gmail
draft for review.

Credentials (your Gemini API key and Google OAuth tokens) are kept
encrypted in a local SQLite database. Run "automated-email login" once
per account, then "automated-email report draft" each day.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose)
	},
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "automated-email version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newUsersCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newDraftsCmd())
	rootCmd.AddCommand(newVersionCmd())
}
