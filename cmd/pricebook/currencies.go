package main

import (
	"github.com/spf13/cobra"

	"llmprice-hq/pricebook/pkg/cli"
)

var currenciesFlags struct {
	format string
}

var currenciesCmd = &cobra.Command{
	Use:   "currencies",
	Short: "List supported display currencies",
	Long: `List the supported currencies in selector order with their fixed rate
against the reference currency. The default display currency is marked.`,
	RunE: runCurrencies,
}

func init() {
	rootCmd.AddCommand(currenciesCmd)

	currenciesCmd.Flags().StringVar(&currenciesFlags.format, "format", "text", "output format: text, json, csv")
}

func runCurrencies(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	table, err := cfg.Currency.Table()
	if err != nil {
		return cli.NewConfigError("currency.rates", err.Error())
	}

	format, err := cli.ParseOutputFormat(currenciesFlags.format)
	if err != nil {
		return cli.NewCommandError("currencies", err)
	}
	formatter, err := cli.NewFormatter(format)
	if err != nil {
		return cli.NewCommandError("currencies", err)
	}

	data := &cli.CurrencyTable{Table: table, Default: cfg.Currency.DefaultCode()}
	if err := formatter.FormatTo(cmd.OutOrStdout(), data); err != nil {
		return cli.NewCommandError("currencies", err)
	}
	return nil
}
