package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		// newApp migrates on open.
		a, err := newApp(cmd.Context(), os.Stderr)
		if err != nil {
			return err
		}
		defer a.Close()

		color.Green("Database is up to date (%s)\n", a.cfg.DB.Driver)
		return nil
	},
}
