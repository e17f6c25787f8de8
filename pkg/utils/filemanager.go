// =============================================================================
// Sales Bonus Analyzer - File Manager Utility
// =============================================================================
//
// This module provides file management for the analyzer:
//   - Input discovery (workbook and CSV exports)
//   - Report file naming
//   - Archival of processed exports
//   - Skipped-row log generation
//   - Directory management
//
// ARCHIVAL STRATEGY:
//   - Input files are moved to the input archive after successful analysis
//   - Failed files remain in place so the next run retries them
//   - Skipped-row logs are created next to the report in the output
//     directory
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// inputExtensions are the export formats the analyzer accepts.
var inputExtensions = []string{".xlsx", ".csv"}

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the analyzer.
type FileManager struct {
	// InputDir is the directory where export files are placed.
	InputDir string

	// OutputDir is the directory where report files are placed.
	OutputDir string

	// InputArchiveDir is the directory for archived export files.
	InputArchiveDir string

	// UseTimestampSubdirs creates date-based subdirectories in the
	// archive, e.g. input_archive/2026/08/31/export.xlsx.
	UseTimestampSubdirs bool

	// ArchiveOnSuccess determines whether processed exports are moved to
	// the archive.
	ArchiveOnSuccess bool
}

// NewFileManager creates a FileManager with the specified directories.
func NewFileManager(inputDir, outputDir, inputArchiveDir string) *FileManager {
	return &FileManager{
		InputDir:         inputDir,
		OutputDir:        outputDir,
		InputArchiveDir:  inputArchiveDir,
		ArchiveOnSuccess: true,
	}
}

// EnsureDirectories creates all required directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{fm.InputDir, fm.OutputDir, fm.InputArchiveDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles scans the input directory for export files.
func (fm *FileManager) DiscoverInputFiles() ([]string, error) {
	entries, err := os.ReadDir(fm.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if isInputFile(entry.Name()) {
			files = append(files, filepath.Join(fm.InputDir, entry.Name()))
		}
	}
	return files, nil
}

// DiscoverInputFilesRecursive scans the input directory recursively.
func (fm *FileManager) DiscoverInputFilesRecursive() ([]string, error) {
	var files []string

	err := filepath.Walk(fm.InputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if isInputFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk input directory: %w", err)
	}

	return files, nil
}

// isInputFile reports whether the file name carries an accepted export
// extension. Office temp files ("~$...") are ignored.
func isInputFile(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, "~$") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(base))
	for _, accepted := range inputExtensions {
		if ext == accepted {
			return true
		}
	}
	return false
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveInputFile moves a processed export to the archive directory and
// returns the archived path.
func (fm *FileManager) ArchiveInputFile(filePath string) (string, error) {
	if !fm.ArchiveOnSuccess {
		return filePath, nil
	}

	archivePath := fm.archivePath(filePath)
	if err := os.MkdirAll(filepath.Dir(archivePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := os.Rename(filePath, archivePath); err != nil {
		// Rename fails across devices; fall back to copy and delete.
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

// archivePath constructs the archive destination for a file.
func (fm *FileManager) archivePath(filePath string) string {
	fileName := filepath.Base(filePath)

	if fm.UseTimestampSubdirs {
		now := time.Now()
		subDir := filepath.Join(
			fm.InputArchiveDir,
			fmt.Sprintf("%d", now.Year()),
			fmt.Sprintf("%02d", now.Month()),
			fmt.Sprintf("%02d", now.Day()),
		)
		return filepath.Join(subDir, fileName)
	}

	return filepath.Join(fm.InputArchiveDir, fileName)
}

// copyFile copies src to dst, preserving contents but not metadata.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// =============================================================================
// REPORT FILE NAMING
// =============================================================================

// GenerateReportFileName generates a unique report file name from a
// format string.
//
// Placeholders:
//   {uuid}      - A random UUID
//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//   {date}      - Current date (YYYYMMDD)
//   {time}      - Current time (HHMMSS)
//   {original}  - The source file name without extension
func GenerateReportFileName(format, sourcePath string) string {
	now := time.Now()
	original := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
		"{original}":  original,
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if !strings.HasSuffix(strings.ToLower(result), ".txt") {
		result += ".txt"
	}

	return result
}

// =============================================================================
// SKIPPED-ROW LOG
// =============================================================================

// SkippedRowEntry describes one data row that the aggregation dropped.
type SkippedRowEntry struct {
	// Row is the zero-based row index in the source sheet.
	Row int

	// Reason explains why the row was dropped.
	Reason string
}

// WriteSkippedRowLog writes the skipped-row entries for a source file to
// a log in the output directory and returns the log path. With no
// entries, no file is written.
func WriteSkippedRowLog(entries []SkippedRowEntry, outputDir, sourcePath string) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}

	original := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	logPath := filepath.Join(outputDir,
		fmt.Sprintf("skipped_%s_%s.txt", original, time.Now().Format("20060102_150405")))

	file, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create skipped-row log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	fmt.Fprintf(writer, "Skipped rows for %s\n", filepath.Base(sourcePath))
	fmt.Fprintf(writer, "Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(writer, "Total skipped: %d\n", len(entries))
	fmt.Fprintln(writer, strings.Repeat("=", 60))

	for _, entry := range entries {
		// Report 1-based row numbers, matching what a spreadsheet
		// application displays.
		fmt.Fprintf(writer, "row %d: %s\n", entry.Row+1, entry.Reason)
	}

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to write skipped-row log: %w", err)
	}
	return logPath, nil
}
