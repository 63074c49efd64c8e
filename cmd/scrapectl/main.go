package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:     "scrapectl",
	Short:   "Football golden-dataset scraper",
	Long:    `scrapectl drives the scrape/compare/retry cycle that turns noisy per-run football scrapes into a corroborated golden dataset.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(checkConsensusCmd)
	rootCmd.AddCommand(buildGoldenCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
