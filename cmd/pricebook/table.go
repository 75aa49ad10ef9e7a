package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"llmprice-hq/pricebook/pkg/catalogue"
	"llmprice-hq/pricebook/pkg/cli"
	"llmprice-hq/pricebook/pkg/currency"
	"llmprice-hq/pricebook/pkg/i18n"
	"llmprice-hq/pricebook/pkg/pricing"
)

var tableFlags struct {
	currency string
	sort     string
	order    string
	model    string
	format   string
	lang     string
	data     string
}

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the price table",
	Long: `Print the price catalogue converted into one display currency.

Rows that cannot be converted (malformed prices or a currency missing from
the conversion table) are left out and counted on stderr.

Examples:
  # Default currency, cheapest blended price first
  pricebook table

  # Chinese headers, prices in CNY
  pricebook table --lang zh --currency CNY

  # Most expensive output tokens among GPT models, as CSV
  pricebook table --model gpt --sort output --order desc --format csv`,
	RunE: runTable,
}

func init() {
	rootCmd.AddCommand(tableCmd)

	tableCmd.Flags().StringVar(&tableFlags.currency, "currency", "", "display currency (uses currency.default if not specified)")
	tableCmd.Flags().StringVar(&tableFlags.sort, "sort", "", "sort field: blend, input, output")
	tableCmd.Flags().StringVar(&tableFlags.order, "order", "", "sort order: asc, desc")
	tableCmd.Flags().StringVar(&tableFlags.model, "model", "", "only show models whose name contains this text")
	tableCmd.Flags().StringVar(&tableFlags.format, "format", "text", "output format: text, json, csv")
	tableCmd.Flags().StringVar(&tableFlags.lang, "lang", i18n.DefaultLocale, "header language: en, zh")
	tableCmd.Flags().StringVar(&tableFlags.data, "data", "", "catalogue directory (uses catalogue.dir if not specified)")
}

func runTable(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	normalizer, err := newNormalizer(cfg)
	if err != nil {
		return err
	}

	query, err := tableQuery(normalizer.Table(), cfg.Currency.DefaultCode(), cfg.Pricing.DefaultSort, cfg.Pricing.DefaultOrder)
	if err != nil {
		return cli.NewCommandError("table", err)
	}

	locale := tableFlags.lang
	if locale == "" {
		locale = i18n.DefaultLocale
	}
	if !i18n.IsSupported(locale) {
		return cli.NewCommandError("table", fmt.Errorf("unsupported language %q", locale))
	}

	format, err := cli.ParseOutputFormat(tableFlags.format)
	if err != nil {
		return cli.NewCommandError("table", err)
	}
	formatter, err := cli.NewFormatter(format)
	if err != nil {
		return cli.NewCommandError("table", err)
	}

	bundle, err := i18n.LoadBundle()
	if err != nil {
		return cli.NewCommandError("table", err)
	}

	dir := tableFlags.data
	if dir == "" {
		dir = cfg.Catalogue.Dir
	}
	records, _, err := catalogue.LoadDir(dir)
	if err != nil {
		return cli.NewCommandError("table", err)
	}

	proj, err := normalizer.Run(records, query)
	if err != nil {
		return cli.NewCommandError("table", err)
	}

	if err := formatter.FormatTo(cmd.OutOrStdout(), cli.NewPriceTable(proj, bundle.Dictionary(locale), locale)); err != nil {
		return cli.NewCommandError("table", err)
	}

	if n := len(proj.Rejected); n > 0 && format != cli.FormatJSON {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d rows excluded; run 'pricebook validate' for details\n", n)
	}
	return nil
}

// tableQuery turns the table flags into a query, filling unset flags from
// configuration. An unsupported currency is an error here; the terminal has
// no preference to fall back on.
func tableQuery(table *currency.Table, def currency.Code, defSort, defOrder string) (pricing.Query, error) {
	display := def
	if tableFlags.currency != "" {
		display = currency.Parse(tableFlags.currency)
		if !table.Supports(display) {
			return pricing.Query{}, &currency.UnsupportedError{Code: display}
		}
	}

	sortValue := tableFlags.sort
	if sortValue == "" {
		sortValue = defSort
	}
	field, err := pricing.ParseField(sortValue)
	if err != nil {
		return pricing.Query{}, err
	}

	orderValue := tableFlags.order
	if orderValue == "" {
		orderValue = defOrder
	}
	order, err := pricing.ParseOrder(orderValue)
	if err != nil {
		return pricing.Query{}, err
	}

	return pricing.Query{
		Currency: display,
		Field:    field,
		Order:    order,
		Model:    tableFlags.model,
	}, nil
}
