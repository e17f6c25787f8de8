// =============================================================================
// Sales Bonus Analyzer - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Sales Bonus Analyzer CLI. It
// initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   salesbonus analyze       - Analyze export files and write bonus reports
//   salesbonus inspect       - Show the detected header row of one file
//   salesbonus version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Core pipeline (sheet, header, aggregate, bonus, report)
//   - pkg/       : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/eshel-dev/salesbonus/cmd"
)

func main() {
	cmd.Execute()
}
