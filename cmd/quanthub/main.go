package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "quanthub",
	Short: "QuantHub - strategy sharing and backtesting demo",
	Long: `QuantHub serves a demo front-end for a trading-strategy platform:
a strategy listing, strategy details, a code editor and a backtest report,
all backed by built-in sample data.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
