package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "housing-credit",
	Short: "Housing credit feasibility planner",
	Long: "Find the first savings plan and loan term that lets a household buy a home\n" +
		"within the down payment and payment-to-income rules.",
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "",
		"Config file (default $HOUSING_CREDIT_CONFIG or ./housing-credit.toml)")
}
