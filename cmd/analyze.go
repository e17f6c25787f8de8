// =============================================================================
// Sales Bonus Analyzer - Analyze Command
// =============================================================================
//
// This file defines the 'analyze' command, the main command of the tool.
// It discovers register exports, runs the analysis pipeline on each, and
// writes the bonus reports.
//
// COMMAND USAGE:
//   salesbonus analyze [flags]
//
// FLAGS:
//   --file      : Analyze a single file instead of scanning the input directory
//   --stdout    : Print the report to stdout instead of writing files
//   --dry-run   : Run the analysis without writing reports or archiving
//
// PROCESSING PIPELINE:
//   1. Load the configuration
//   2. Discover export files in the input directory (or take --file)
//   3. For each file (concurrently):
//      a. Read the sheet and locate the header row
//      b. Aggregate line items into per-employee daily statistics
//      c. Apply the bonus rules
//      d. Write the report and skipped-row log, archive the input
//   4. Print a summary
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/eshel-dev/salesbonus/internal/analyzer"
	"github.com/eshel-dev/salesbonus/internal/config"
	"github.com/eshel-dev/salesbonus/internal/header"
	"github.com/eshel-dev/salesbonus/pkg/utils"
)

// filePath is a single file to analyze instead of scanning the input dir.
var filePath string

// toStdout prints the report instead of writing output files.
var toStdout bool

// dryRun runs the analysis without writing or archiving anything.
var dryRun bool

// analyzeCmd represents the 'analyze' command.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze register exports and compute employee bonuses",
	Long: `The analyze command scans the input directory for register export files
(XLSX or CSV), locates the header row in each, reconstructs invoice-level
transactions, applies the bonus rules, and writes one text report per
export.

Files are analyzed concurrently and independently: an error in one file
does not affect the others. Rows that cannot be decoded (bad dates,
missing employee or price) are skipped and listed in a skipped-row log —
partial success is the normal mode of operation with real exports, not a
failure.

On success the report lands in the output directory and the export is
moved to the input archive. On error the export stays where it is.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze()
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(
		&filePath,
		"file",
		"",
		"Analyze a single file instead of scanning the input directory",
	)

	analyzeCmd.Flags().BoolVar(
		&toStdout,
		"stdout",
		false,
		"Print the report to stdout instead of writing output files",
	)

	analyzeCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Run the analysis without writing reports or archiving inputs",
	)
}

// runAnalyze orchestrates the analysis of all discovered files.
func runAnalyze() error {
	startTime := time.Now()

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	inputFiles, err := collectInputFiles(cfg)
	if err != nil {
		return err
	}
	if len(inputFiles) == 0 {
		fmt.Println("No export files found in the input directory.")
		return nil
	}

	logger.Info("analyzing export files", "count", len(inputFiles))

	// Analyze files concurrently, bounded by the configured concurrency.
	var wg sync.WaitGroup
	sem := make(chan struct{}, cfg.MaxConcurrency)
	results := make(chan analyzer.Result, len(inputFiles))

	for _, file := range inputFiles {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			a := analyzer.New(path, cfg, logger)
			a.SetDryRun(dryRun || toStdout)
			results <- a.Run()
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// Collect results and print the per-file outcome.
	var successCount, errorCount, skippedRows int
	for result := range results {
		if result.Success {
			successCount++
			skippedRows += result.Stats.RowsSkipped
			if toStdout {
				fmt.Print(result.Analysis.Report)
			} else {
				fmt.Printf("  ✓ %s -> %s (%d transactions, %d employees)\n",
					filepath.Base(result.FilePath),
					filepath.Base(result.ReportFile),
					result.Stats.Transactions,
					result.Stats.Employees)
			}
			continue
		}

		errorCount++
		var notFound *header.NotFoundError
		if errors.As(result.Error, &notFound) {
			// Header errors get their own wording: the file was readable,
			// its columns just were not the expected ones.
			fmt.Printf("  ✗ %s: %v\n", filepath.Base(result.FilePath), notFound)
		} else {
			fmt.Printf("  ✗ %s: %v\n", filepath.Base(result.FilePath), result.Error)
		}
	}

	if !toStdout {
		fmt.Println("\n=== Analysis Complete ===")
		fmt.Printf("Total files:     %d\n", len(inputFiles))
		fmt.Printf("Successful:      %d\n", successCount)
		fmt.Printf("Errors:          %d\n", errorCount)
		fmt.Printf("Skipped rows:    %d\n", skippedRows)
		fmt.Printf("Time elapsed:    %s\n", time.Since(startTime))
	}

	if errorCount > 0 {
		return fmt.Errorf("%d file(s) failed to analyze", errorCount)
	}
	return nil
}

// collectInputFiles returns the files to analyze: the --file argument
// when given, otherwise everything discovered in the input directory.
func collectInputFiles(cfg *config.Config) ([]string, error) {
	if filePath != "" {
		return []string{filePath}, nil
	}

	fm := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir)
	if err := fm.EnsureDirectories(); err != nil {
		return nil, err
	}
	return fm.DiscoverInputFiles()
}
