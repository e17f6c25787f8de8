// =============================================================================
// Sales Bonus Analyzer - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command
// is the base that the other commands (analyze, inspect, version) are
// attached to, and owns the global flags and logger setup.
//
// COBRA CLI STRUCTURE:
//   rootCmd (salesbonus)
//   ├── analyzeCmd (salesbonus analyze)
//   ├── inspectCmd (salesbonus inspect)
//   └── versionCmd (salesbonus version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/eshel-dev/salesbonus/internal/config"
)

// cfgFile holds the path to the configuration file.
// Overridden with the --config flag.
var cfgFile string

// verbose enables debug logging when set.
var verbose bool

// rootCmd represents the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "salesbonus",
	Short: "Sales Bonus Analyzer - Compute employee bonuses from register exports",
	Long: `Sales Bonus Analyzer ingests the XLSX or CSV export produced by the
store's register software, finds the header row wherever it hides,
reconstructs invoice-level transactions from raw line items, and computes
per-employee performance bonuses using the store's tiered rule set.

Key Features:
  - Automatic header row detection in messy exports
  - Invoice-level grouping of line items into transactions
  - Tiered per-transaction and daily-average bonus rules
  - Deterministic text reports plus tabular summaries
  - Lenient row handling: malformed rows are logged and skipped

Example Usage:
  salesbonus analyze                     # Analyze all exports in the input directory
  salesbonus analyze --file export.xlsx  # Analyze a single file
  salesbonus inspect --file export.xlsx  # Show the detected header row`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and runs it.
// Called once from main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// loadConfig loads the configuration and wires the logger level from the
// --verbose flag and the configured log level.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	level := parseLevel(cfg.LogLevel)
	if verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	return cfg, logger, nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
