/*
Package cli provides command-line helpers used by the pricebook command.

Output Formatting:

Command results implement Tabular and are rendered as a terminal table
(lipgloss), JSON or CSV:

	formatter, err := cli.NewFormatter(cli.FormatText)
	if err != nil {
		return err
	}
	table := cli.NewPriceTable(projection, dict, "en")
	if err := formatter.FormatTo(os.Stdout, table); err != nil {
		return err
	}

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()
*/
package cli
