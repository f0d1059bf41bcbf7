package main

import (
	"fmt"
	"io"
	"os"

	"github.com/LiamCoop/timetracker/internal/domain/quote"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var quotesCmd = &cobra.Command{
	Use:   "quotes",
	Short: "Manage daily quotes",
}

var quotesImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import quotes from a YAML file",
	Long: `Import quotes from a YAML list such as:

  - text: Well begun is half done.
    author: Aristotle
    category: motivation`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		quotes, err := readQuotes(f)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		ctx := cmd.Context()
		a, err := newApp(ctx, os.Stderr)
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.quotes.Import(ctx, quotes)
		if err != nil {
			return err
		}
		color.Green("Imported %d quotes\n", n)
		if skipped := len(quotes) - n; skipped > 0 {
			color.Yellow("Skipped %d blank quotes\n", skipped)
		}
		return nil
	},
}

func readQuotes(r io.Reader) ([]quote.Quote, error) {
	var quotes []quote.Quote
	if err := yaml.NewDecoder(r).Decode(&quotes); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode quotes: %w", err)
	}
	return quotes, nil
}

func init() {
	quotesCmd.AddCommand(quotesImportCmd)
}
