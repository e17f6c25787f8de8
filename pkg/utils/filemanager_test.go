package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("touch %s: %v", path, err)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	fm := NewFileManager(
		filepath.Join(base, "in"),
		filepath.Join(base, "out"),
		filepath.Join(base, "archive"),
	)

	if err := fm.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{fm.InputDir, fm.OutputDir, fm.InputArchiveDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("directory %s not created", dir)
		}
	}
}

func TestDiscoverInputFiles(t *testing.T) {
	base := t.TempDir()
	fm := NewFileManager(base, base, base)

	touch(t, filepath.Join(base, "sales.xlsx"))
	touch(t, filepath.Join(base, "export.CSV"))
	touch(t, filepath.Join(base, "~$sales.xlsx"))
	touch(t, filepath.Join(base, "notes.txt"))
	if err := os.Mkdir(filepath.Join(base, "sub.xlsx"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := fm.DiscoverInputFiles()
	if err != nil {
		t.Fatalf("DiscoverInputFiles: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("discovered %d files, want 2: %v", len(files), files)
	}
	for _, f := range files {
		base := filepath.Base(f)
		if base != "sales.xlsx" && base != "export.CSV" {
			t.Errorf("unexpected file discovered: %s", base)
		}
	}
}

func TestDiscoverInputFilesRecursive(t *testing.T) {
	base := t.TempDir()
	fm := NewFileManager(base, base, base)

	sub := filepath.Join(base, "february")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	touch(t, filepath.Join(base, "top.xlsx"))
	touch(t, filepath.Join(sub, "nested.csv"))

	files, err := fm.DiscoverInputFilesRecursive()
	if err != nil {
		t.Fatalf("DiscoverInputFilesRecursive: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("discovered %d files, want 2: %v", len(files), files)
	}
}

func TestIsInputFile(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"sales.xlsx", true},
		{"sales.XLSX", true},
		{"export.csv", true},
		{"~$sales.xlsx", false},
		{"report.txt", false},
		{"sales.xls", false},
		{"noext", false},
	}

	for _, tc := range cases {
		if got := isInputFile(tc.name); got != tc.want {
			t.Errorf("isInputFile(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestArchiveInputFile(t *testing.T) {
	base := t.TempDir()
	fm := NewFileManager(
		filepath.Join(base, "in"),
		filepath.Join(base, "out"),
		filepath.Join(base, "archive"),
	)
	if err := fm.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}

	src := filepath.Join(fm.InputDir, "sales.xlsx")
	touch(t, src)

	archived, err := fm.ArchiveInputFile(src)
	if err != nil {
		t.Fatalf("ArchiveInputFile: %v", err)
	}
	if archived != filepath.Join(fm.InputArchiveDir, "sales.xlsx") {
		t.Errorf("archived path = %s", archived)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source file should be gone after archival")
	}
	if _, err := os.Stat(archived); err != nil {
		t.Errorf("archived file missing: %v", err)
	}
}

func TestArchiveInputFileDisabled(t *testing.T) {
	base := t.TempDir()
	fm := NewFileManager(base, base, filepath.Join(base, "archive"))
	fm.ArchiveOnSuccess = false

	src := filepath.Join(base, "sales.xlsx")
	touch(t, src)

	got, err := fm.ArchiveInputFile(src)
	if err != nil {
		t.Fatalf("ArchiveInputFile: %v", err)
	}
	if got != src {
		t.Errorf("disabled archival should return the source path, got %s", got)
	}
	if _, err := os.Stat(src); err != nil {
		t.Error("source file must stay in place when archival is disabled")
	}
}

func TestArchiveInputFileTimestampSubdirs(t *testing.T) {
	base := t.TempDir()
	fm := NewFileManager(base, base, filepath.Join(base, "archive"))
	fm.UseTimestampSubdirs = true

	src := filepath.Join(base, "sales.xlsx")
	touch(t, src)

	archived, err := fm.ArchiveInputFile(src)
	if err != nil {
		t.Fatalf("ArchiveInputFile: %v", err)
	}

	rel, err := filepath.Rel(fm.InputArchiveDir, archived)
	if err != nil {
		t.Fatal(err)
	}
	// archive/<year>/<month>/<day>/sales.xlsx
	matched, _ := regexp.MatchString(`^\d{4}[/\\]\d{2}[/\\]\d{2}[/\\]sales\.xlsx$`, rel)
	if !matched {
		t.Errorf("archive path %q lacks date subdirectories", rel)
	}
}

func TestGenerateReportFileName(t *testing.T) {
	name := GenerateReportFileName("{original}_{timestamp}_{uuid}.txt", "/data/in/sales.xlsx")

	if !strings.HasPrefix(name, "sales_") {
		t.Errorf("name %q should start with the original base name", name)
	}
	if !strings.HasSuffix(name, ".txt") {
		t.Errorf("name %q should end with .txt", name)
	}
	if strings.Contains(name, "{") {
		t.Errorf("name %q contains an unresolved placeholder", name)
	}

	pattern := `^sales_\d{8}_\d{6}_[0-9a-f-]{36}\.txt$`
	if matched, _ := regexp.MatchString(pattern, name); !matched {
		t.Errorf("name %q does not match %s", name, pattern)
	}
}

func TestGenerateReportFileNameAppendsExtension(t *testing.T) {
	name := GenerateReportFileName("{original}", "sales.csv")
	if name != "sales.txt" {
		t.Errorf("name = %q, want sales.txt", name)
	}
}

func TestGenerateReportFileNameUnique(t *testing.T) {
	a := GenerateReportFileName("{uuid}", "sales.xlsx")
	b := GenerateReportFileName("{uuid}", "sales.xlsx")
	if a == b {
		t.Error("uuid-based names should differ between calls")
	}
}

func TestWriteSkippedRowLog(t *testing.T) {
	out := t.TempDir()
	entries := []SkippedRowEntry{
		{Row: 4, Reason: "unparseable date"},
		{Row: 9, Reason: "missing employee"},
	}

	logPath, err := WriteSkippedRowLog(entries, out, "/data/in/sales.xlsx")
	if err != nil {
		t.Fatalf("WriteSkippedRowLog: %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "sales.xlsx") {
		t.Error("log should name the source file")
	}
	if !strings.Contains(content, "Total skipped: 2") {
		t.Error("log should state the skip count")
	}
	// Rows are reported 1-based.
	if !strings.Contains(content, "row 5: unparseable date") {
		t.Errorf("log missing 1-based row entry:\n%s", content)
	}
	if !strings.Contains(content, "row 10: missing employee") {
		t.Errorf("log missing 1-based row entry:\n%s", content)
	}
}

func TestWriteSkippedRowLogNoEntries(t *testing.T) {
	out := t.TempDir()

	logPath, err := WriteSkippedRowLog(nil, out, "sales.xlsx")
	if err != nil {
		t.Fatalf("WriteSkippedRowLog: %v", err)
	}
	if logPath != "" {
		t.Errorf("no entries should produce no log, got %q", logPath)
	}

	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Error("output directory should stay empty")
	}
}
