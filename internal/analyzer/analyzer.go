// =============================================================================
// Sales Bonus Analyzer - Analysis Pipeline
// =============================================================================
//
// This module orchestrates the full analysis of a single export file:
//
//   1. Read the sheet (workbook or CSV, by extension)
//   2. Locate the header row
//   3. Aggregate line items into per-employee daily statistics
//   4. Apply the bonus rules
//   5. Build the text report
//   6. Write the report file and skipped-row log
//   7. Archive the processed export
//
// Each analysis run owns its own maps and lists; nothing is shared
// between runs, so any number of files can be analyzed concurrently.
//
// ERROR BEHAVIOUR:
//   A missing header row and an unreadable file are run-fatal and land in
//   Result.Error (the header case as a typed *header.NotFoundError).
//   Skipped data rows are the designed degradation path: they appear in
//   the stats and the skipped-row log, never as an error.
//
// =============================================================================

package analyzer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/eshel-dev/salesbonus/internal/aggregate"
	"github.com/eshel-dev/salesbonus/internal/bonus"
	"github.com/eshel-dev/salesbonus/internal/config"
	"github.com/eshel-dev/salesbonus/internal/header"
	"github.com/eshel-dev/salesbonus/internal/report"
	"github.com/eshel-dev/salesbonus/internal/sheet"
	"github.com/eshel-dev/salesbonus/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURES
// =============================================================================

// Result represents the outcome of analyzing a single file.
type Result struct {
	// FilePath is the input file that was analyzed.
	FilePath string

	// ReportFile is the path of the generated report. Empty when the
	// analysis failed or ran in dry-run mode.
	ReportFile string

	// Success indicates whether the analysis completed.
	Success bool

	// Error holds the failure when Success is false.
	Error error

	// Stats contains processing statistics.
	Stats Stats

	// Analysis holds the computed results when Success is true.
	Analysis *Analysis
}

// Stats contains statistics about one analysis run.
type Stats struct {
	// RowsScanned is the number of data rows inspected below the header.
	RowsScanned int

	// RowsSkipped is the number of data rows dropped during the scan.
	RowsSkipped int

	// Transactions is the number of distinct invoices found.
	Transactions int

	// Employees is the number of employees with at least one transaction.
	Employees int

	// ProcessingTime is the time taken to analyze the file.
	ProcessingTime time.Duration
}

// Analysis holds the computed in-memory results of one run, for
// consumption by whatever presents them.
type Analysis struct {
	// Totals is the per-employee total bonus.
	Totals bonus.Totals

	// Breakdown is the per-employee, per-category bonus breakdown.
	Breakdown bonus.Breakdown

	// Daily is the aggregated per-employee, per-day statistics.
	Daily *aggregate.DailyStats

	// Report is the rendered text report.
	Report string
}

// =============================================================================
// ANALYZER
// =============================================================================

// Analyzer runs the analysis pipeline for a single export file.
type Analyzer struct {
	path   string
	cfg    *config.Config
	files  *utils.FileManager
	log    *slog.Logger
	dryRun bool
}

// New creates an Analyzer for one file.
func New(path string, cfg *config.Config, log *slog.Logger) *Analyzer {
	if log == nil {
		log = slog.Default()
	}
	return &Analyzer{
		path:  path,
		cfg:   cfg,
		files: utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir),
		log:   log.With("file", filepath.Base(path)),
	}
}

// SetDryRun disables report writing and archival; the analysis itself
// still runs in full.
func (a *Analyzer) SetDryRun(dryRun bool) {
	a.dryRun = dryRun
}

// Run executes the analysis pipeline and never panics on malformed
// input; every failure lands in Result.Error.
func (a *Analyzer) Run() Result {
	startTime := time.Now()
	result := Result{FilePath: a.path}

	analysis, stats, err := a.Analyze()
	result.Stats = stats
	if err != nil {
		result.Error = err
		result.Stats.ProcessingTime = time.Since(startTime)
		return result
	}
	result.Analysis = analysis

	if !a.dryRun {
		reportPath, err := a.writeOutputs(analysis)
		if err != nil {
			result.Error = err
			result.Stats.ProcessingTime = time.Since(startTime)
			return result
		}
		result.ReportFile = reportPath

		if _, err := a.files.ArchiveInputFile(a.path); err != nil {
			// Archival failure is not worth failing a finished analysis.
			a.log.Warn("failed to archive input file", "error", err)
		}
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)
	return result
}

// Analyze performs the computation steps without touching the output or
// archive directories.
func (a *Analyzer) Analyze() (*Analysis, Stats, error) {
	var stats Stats

	s, err := readSheet(a.path, a.cfg.Delimiter())
	if err != nil {
		return nil, stats, err
	}
	a.log.Debug("read sheet", "sheet", s.Name, "rows", len(s.Rows))

	headerRow, cols, err := header.Locate(s, a.cfg.Columns.Required())
	if err != nil {
		return nil, stats, err
	}
	a.log.Debug("located header row", "row", headerRow, "columns", len(cols))

	daily := aggregate.Aggregate(s, headerRow, cols, a.cfg.Columns)
	stats.RowsScanned = daily.RowsScanned
	stats.RowsSkipped = len(daily.Skipped)
	stats.Transactions = daily.TransactionCount()
	stats.Employees = len(daily.Totals)
	a.log.Debug("aggregated transactions",
		"transactions", stats.Transactions,
		"employees", stats.Employees,
		"skipped_rows", stats.RowsSkipped)

	engine := bonus.NewEngine(bonus.FromConfig(a.cfg.Rules))
	totals, breakdown := engine.Calculate(daily)

	text := report.BuildText(totals, breakdown, daily, a.cfg.CurrencySymbol, a.cfg.Report)

	return &Analysis{
		Totals:    totals,
		Breakdown: breakdown,
		Daily:     daily,
		Report:    text,
	}, stats, nil
}

// writeOutputs writes the report file and, when rows were skipped, the
// skipped-row log.
func (a *Analyzer) writeOutputs(analysis *Analysis) (string, error) {
	if err := a.files.EnsureDirectories(); err != nil {
		return "", err
	}

	name := utils.GenerateReportFileName(a.cfg.ReportNameFormat, a.path)
	reportPath := filepath.Join(a.cfg.OutputDir, name)
	if err := writeFile(reportPath, analysis.Report); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	a.log.Info("wrote report", "report", reportPath)

	if len(analysis.Daily.Skipped) > 0 {
		entries := make([]utils.SkippedRowEntry, len(analysis.Daily.Skipped))
		for i, skip := range analysis.Daily.Skipped {
			entries[i] = utils.SkippedRowEntry{Row: skip.Row, Reason: skip.Reason}
		}
		logPath, err := utils.WriteSkippedRowLog(entries, a.cfg.OutputDir, a.path)
		if err != nil {
			a.log.Warn("failed to write skipped-row log", "error", err)
		} else {
			a.log.Info("wrote skipped-row log", "log", logPath, "rows", len(entries))
		}
	}

	return reportPath, nil
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

// readSheet picks the reader by file extension.
func readSheet(path string, delimiter rune) (*sheet.Sheet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return sheet.ReadCSV(path, delimiter)
	default:
		return sheet.ReadXLSX(path)
	}
}
