package commands

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "stockcast",
	Short: "Stockcast - stock trend web application",
	Long: `Stockcast serves a multi-user web application that fetches recent
price history for a stock symbol, computes a 20-day moving average and a
projected next price, and records each request.

Usage:
  stockcast serve
  stockcast stats`,
}

// Execute runs the root command. Called by main.main().
func Execute() error {
	return rootCmd.Execute()
}
