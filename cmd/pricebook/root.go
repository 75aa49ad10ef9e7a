package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"llmprice-hq/pricebook/pkg/cli"
	"llmprice-hq/pricebook/pkg/config"
	"llmprice-hq/pricebook/pkg/pricing"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pricebook",
	Short: "pricebook - compare LLM API prices in one currency",
	Long: `pricebook renders a catalogue of LLM API prices as a sortable,
filterable table with every price converted into one display currency.

Prices are read from one JSON file per provider. The blended price weights
input tokens three to one against output tokens and is computed after
conversion.

The table is available as an HTML page, a JSON API and in the terminal.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "pricebook.yaml", "config file path (defaults apply when missing)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig initializes the global configuration from --config.
func loadConfig() (*config.Config, error) {
	if err := config.Initialize(cfgFile); err != nil {
		if cerr := cli.ConfigErrorFrom(err); cerr != err {
			return nil, cerr
		}
		return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	return config.GetConfig(), nil
}

// newNormalizer builds the normalizer for the configured rates and weights.
func newNormalizer(cfg *config.Config) (*pricing.Normalizer, error) {
	table, err := cfg.Currency.Table()
	if err != nil {
		return nil, cli.NewConfigError("currency.rates", err.Error())
	}
	return pricing.NewNormalizer(table, cfg.Pricing.Blend.Weights()), nil
}
