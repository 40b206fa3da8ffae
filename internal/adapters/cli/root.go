package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "zoneplanner",
		Short: "ZonePlanner CLI - Optimize multi-zone factory production plans",
		Long: `ZonePlanner computes profit-maximizing production plans across factory
zones connected through a shared logistics pool.

Examples:
  zoneplanner catalog seed --file data/catalog.json
  zoneplanner zone add --id z1 --name "Main" --output-ports 10 --input-ports 10 --throughput 30
  zoneplanner solve --target iron_ingot=30 --mode balanced
  zoneplanner solve --target circuit=60 --limit iron_ore=120 --save best-plan
  zoneplanner layout list`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	// Add command groups
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewZoneCommand())
	rootCmd.AddCommand(NewSolveCommand())
	rootCmd.AddCommand(NewLayoutCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
