package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "timetracker",
	Short: "Personal time tracker server",
	Long: `timetracker records time spent on projects and reports daily, weekly and
monthly totals over a JSON API and the Model Context Protocol.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (default $TIMETRACKER_CONFIG_PATH)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(apikeyCmd)
	rootCmd.AddCommand(quotesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
