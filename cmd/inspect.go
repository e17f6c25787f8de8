// =============================================================================
// Sales Bonus Analyzer - Inspect Command
// =============================================================================
//
// This file defines the 'inspect' command, a diagnostic that shows where
// the header row was detected in one export and how the required columns
// mapped, without computing any bonuses. Useful when the register
// software changes its export layout and the analyze command starts
// rejecting files.
//
// COMMAND USAGE:
//   salesbonus inspect --file <path>
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eshel-dev/salesbonus/internal/header"
	"github.com/eshel-dev/salesbonus/internal/sheet"
)

// inspectFile is the file to inspect.
var inspectFile string

// inspectCmd represents the 'inspect' command.
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the detected header row and column mapping of an export",
	Long: `The inspect command reads one export file, runs header detection, and
prints the detected header row index together with the resolved column
mapping. No bonuses are computed and nothing is written or archived.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect()
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVar(
		&inspectFile,
		"file",
		"",
		"Path to the export file to inspect",
	)
	inspectCmd.MarkFlagRequired("file")
}

func runInspect() error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	s, err := readInspectSheet(cfg.Delimiter())
	if err != nil {
		return err
	}

	required := cfg.Columns.Required()
	rowIdx, cols, err := header.Locate(s, required)
	if err != nil {
		return err
	}

	fmt.Printf("Sheet:       %s\n", s.Name)
	fmt.Printf("Total rows:  %d\n", len(s.Rows))
	fmt.Printf("Header row:  %d (1-based: %d)\n", rowIdx, rowIdx+1)
	fmt.Printf("Data rows:   %d\n", len(s.Rows)-rowIdx-1)
	fmt.Println("\nColumn mapping:")

	labels := make([]string, 0, len(cols))
	for label := range cols {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return cols[labels[i]] < cols[labels[j]] })

	requiredSet := make(map[string]bool, len(required))
	for _, label := range required {
		requiredSet[label] = true
	}

	for _, label := range labels {
		marker := " "
		switch {
		case requiredSet[label]:
			marker = "*"
		case label == cfg.Columns.Quantity:
			marker = "+"
		}
		fmt.Printf("  %s column %2d: %s\n", marker, cols[label], label)
	}
	fmt.Println("\n  * required column    + optional quantity column")

	return nil
}

func readInspectSheet(delimiter rune) (*sheet.Sheet, error) {
	if strings.EqualFold(filepath.Ext(inspectFile), ".csv") {
		return sheet.ReadCSV(inspectFile, delimiter)
	}
	return sheet.ReadXLSX(inspectFile)
}
