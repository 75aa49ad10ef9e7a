package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is a terminal table (default).
	FormatText OutputFormat = "text"
	// FormatJSON is JSON output.
	FormatJSON OutputFormat = "json"
	// FormatCSV is CSV output.
	FormatCSV OutputFormat = "csv"
)

// ParseOutputFormat validates a --format flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or csv)", s)
}

// Tabular is data that can be laid out as rows and columns.
type Tabular interface {
	// Header returns the column titles.
	Header() []string

	// Rows returns the cells. Raw rows carry machine-readable values
	// (plain numbers); display rows carry formatted ones.
	Rows(raw bool) [][]string

	// NumericColumns lists the columns that are right-aligned.
	NumericColumns() []int
}

// Formatter formats command output.
type Formatter interface {
	FormatTo(w io.Writer, data any) error
}

// TextFormatter renders Tabular data as a bordered terminal table and
// anything else with %v.
type TextFormatter struct {
	HeaderStyle lipgloss.Style
	BorderStyle lipgloss.Style
}

// FormatTo writes data to writer in text format.
func (f *TextFormatter) FormatTo(w io.Writer, data any) error {
	tab, ok := data.(Tabular)
	if !ok {
		_, err := fmt.Fprintf(w, "%v\n", data)
		return err
	}

	numeric := make(map[int]bool)
	for _, c := range tab.NumericColumns() {
		numeric[c] = true
	}
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(f.BorderStyle).
		Headers(tab.Header()...).
		Rows(tab.Rows(false)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := cell
			if row == table.HeaderRow {
				s = f.HeaderStyle.Padding(0, 1)
			}
			if numeric[col] {
				s = s.Align(lipgloss.Right)
			}
			return s
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// JSONFormatter formats output as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatTo writes data to writer in JSON format.
func (f *JSONFormatter) FormatTo(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// CSVFormatter formats Tabular data as CSV with raw values.
type CSVFormatter struct{}

// FormatTo writes data to writer in CSV format.
func (f *CSVFormatter) FormatTo(w io.Writer, data any) error {
	tab, ok := data.(Tabular)
	if !ok {
		return fmt.Errorf("CSV output is not available for %T", data)
	}

	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(tab.Header()); err != nil {
		return err
	}
	if err := csvWriter.WriteAll(tab.Rows(true)); err != nil {
		return err
	}
	return csvWriter.Error()
}

// NewFormatter creates a new formatter for the specified format.
func NewFormatter(format OutputFormat) (Formatter, error) {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}, nil
	case FormatCSV:
		return &CSVFormatter{}, nil
	case FormatText, "":
		return &TextFormatter{
			HeaderStyle: lipgloss.NewStyle().Bold(true),
			BorderStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}
