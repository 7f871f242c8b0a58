package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	noEmail bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "swingdash",
	Short: "Swing trade dashboard service",
	Long: `Swingdash fetches market data for a tracked instrument universe,
scores each instrument for swing trade opportunity, assembles a two-sheet
xlsx dashboard, emails it, and serves the latest snapshot over HTTP.

Usage:
  go run ./cmd/swingdash [command]

Examples:
  go run ./cmd/swingdash serve
  go run ./cmd/swingdash serve --web-only
  go run ./cmd/swingdash once --no-email`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noEmail, "no-email", false, "skip email delivery of generated dashboards")
}
