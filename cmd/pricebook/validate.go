package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"llmprice-hq/pricebook/pkg/catalogue"
	"llmprice-hq/pricebook/pkg/cli"
	"llmprice-hq/pricebook/pkg/pricing"
)

var validateFlags struct {
	data string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the price catalogue",
	Long: `Load every provider file and check each price row.

A row is invalid when a price is negative or not a number, the model or
provider name is empty, or its currency is missing from the conversion
table. The command exits non-zero when a file cannot be parsed, when any
row is invalid, or when the catalogue is empty.

Examples:
  # Validate the configured catalogue
  pricebook validate

  # Validate another directory
  pricebook validate --data ./staging-data`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlags.data, "data", "", "catalogue directory (uses catalogue.dir if not specified)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	normalizer, err := newNormalizer(cfg)
	if err != nil {
		return err
	}

	dir := validateFlags.data
	if dir == "" {
		dir = cfg.Catalogue.Dir
	}

	out := cmd.OutOrStdout()

	records, files, err := catalogue.LoadDir(dir)
	if err != nil {
		var lerr *catalogue.LoadError
		if errors.As(err, &lerr) {
			fmt.Fprintf(out, "✗ %s: %v\n", lerr.Path, lerr.Err)
		}
		return cli.NewCommandError("validate", err)
	}

	if verbose {
		for _, f := range files {
			fmt.Fprintf(out, "  %s\n", f)
		}
	}

	if len(records) == 0 {
		return cli.NewCommandError("validate", fmt.Errorf("no price records found in %s", dir))
	}

	proj, err := normalizer.Project(records, normalizer.Table().Reference())
	if err != nil {
		return cli.NewCommandError("validate", err)
	}

	for _, rej := range proj.Rejected {
		fmt.Fprintf(out, "✗ %s/%s [%s]: %v\n",
			rej.Record.Provider, rej.Record.Model, pricing.RejectReason(rej.Err), rej.Err)
	}

	if n := len(proj.Rejected); n > 0 {
		return cli.NewCommandError("validate", fmt.Errorf("%d of %d records are invalid", n, len(records)))
	}

	fmt.Fprintf(out, "✓ %d records in %d files are valid\n", len(records), len(files))
	return nil
}
