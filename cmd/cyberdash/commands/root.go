package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cyberdash",
	Short: "Cybersecurity investing dashboard backend",
	Long: `cyberdash scores a fixed watchlist of cybersecurity companies on
quality, growth, profitability and relative valuation from their financial
statements.

Usage:
  go run ./cmd/cyberdash [command]

Examples:
  go run ./cmd/cyberdash analyze CRWD
  go run ./cmd/cyberdash refresh
  go run ./cmd/cyberdash api
  go run ./cmd/cyberdash scheduler start`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
