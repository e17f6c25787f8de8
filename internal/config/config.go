// =============================================================================
// Sales Bonus Analyzer - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration. A single YAML file covers:
//   - Directory layout (input, output, archive)
//   - The column labels expected in the point-of-sale export
//   - The bonus rule tiers (thresholds, amounts, category labels)
//   - Report wording and the currency symbol
//
// The configuration is optional: when no config file exists, the built-in
// defaults match the export format produced by the store's register
// software, including its Hebrew column labels.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// Config holds the full application configuration.
type Config struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is the directory scanned for point-of-sale export files.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory where generated report files are placed.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir is the directory where processed export files are moved.
	// Files are only moved here after successful processing.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of files analyzed concurrently.
	// Set to 1 for sequential processing.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// CSVDelimiter is the field separator used when the input is a CSV
	// export rather than a workbook.
	// Default: ","
	CSVDelimiter string `yaml:"csv_delimiter"`

	// ReportNameFormat defines the naming of generated report files.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {original}  - Input file name without extension
	// Default: "{original}_{timestamp}_{uuid}.txt"
	ReportNameFormat string `yaml:"report_name_format"`

	// =========================================================================
	// DOMAIN SETTINGS
	// =========================================================================

	// Columns holds the column labels expected in the export's header row.
	// Labels are matched exactly after trimming whitespace.
	Columns ColumnLabels `yaml:"columns"`

	// CurrencySymbol is appended to every amount in the report.
	// Default: "₪"
	CurrencySymbol string `yaml:"currency_symbol"`

	// Report holds the wording used for report section titles and table
	// headers.
	Report ReportStrings `yaml:"report"`

	// Rules holds the bonus rule tiers.
	Rules BonusRules `yaml:"bonus_rules"`
}

// ColumnLabels names the columns resolved from the located header row.
// The labels default to the register software's export headers.
type ColumnLabels struct {
	// Invoice is the invoice identifier column. Line items sharing an
	// invoice number are summed into one transaction.
	Invoice string `yaml:"invoice"`

	// Employee is the salesperson column.
	Employee string `yaml:"employee"`

	// Date is the transaction date column.
	Date string `yaml:"date"`

	// UnitPrice is the net unit price column.
	UnitPrice string `yaml:"unit_price"`

	// Quantity is the quantity column. The column is optional in the
	// export; when it is missing every line item counts as quantity 1.
	Quantity string `yaml:"quantity"`
}

// Required returns the labels that must all appear in the header row.
// The quantity column is deliberately not part of this set.
func (c ColumnLabels) Required() []string {
	return []string{c.Invoice, c.Employee, c.Date, c.UnitPrice}
}

// ReportStrings holds the report wording.
type ReportStrings struct {
	// SummaryTitle heads the overall bonus summary section.
	SummaryTitle string `yaml:"summary_title"`

	// DateHeader, AverageHeader and TotalHeader are the per-employee
	// daily table column headers.
	DateHeader    string `yaml:"date_header"`
	AverageHeader string `yaml:"average_header"`
	TotalHeader   string `yaml:"total_header"`
}

// BonusRules configures the tiered bonus rule set.
type BonusRules struct {
	// TransactionTiers are evaluated independently for every transaction
	// total. Multiple tiers may fire for the same transaction.
	TransactionTiers []TierConfig `yaml:"transaction_tiers"`

	// AverageTiers are evaluated against the daily average transaction
	// value. Only the highest matching tier fires.
	AverageTiers []TierConfig `yaml:"average_tiers"`

	// AverageCategory is the breakdown category all average tiers
	// accumulate into.
	AverageCategory string `yaml:"average_category"`
}

// TierConfig is a single threshold rule. The bonus fires when the
// evaluated value is strictly greater than Threshold.
type TierConfig struct {
	Threshold float64 `yaml:"threshold"`
	Amount    float64 `yaml:"amount"`

	// Category is the breakdown bucket for this tier. Average tiers leave
	// it empty and share BonusRules.AverageCategory instead.
	Category string `yaml:"category,omitempty"`
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// Load reads the configuration from a YAML file. A missing file is not an
// error: the built-in defaults are returned so the tool works out of the
// box against the standard register export.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.InputDir == "" {
		cfg.InputDir = "./input"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.InputArchiveDir == "" {
		cfg.InputArchiveDir = "./input_archive"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.MaxConcurrency == 0 {
		cfg.MaxConcurrency = 4
	}
	if cfg.CSVDelimiter == "" {
		cfg.CSVDelimiter = ","
	}
	if cfg.ReportNameFormat == "" {
		cfg.ReportNameFormat = "{original}_{timestamp}_{uuid}.txt"
	}

	// Column labels as produced by the register software's export.
	if cfg.Columns.Invoice == "" {
		cfg.Columns.Invoice = "מספר חשבונית"
	}
	if cfg.Columns.Employee == "" {
		cfg.Columns.Employee = "מוכרן"
	}
	if cfg.Columns.Date == "" {
		cfg.Columns.Date = "תאריך"
	}
	if cfg.Columns.UnitPrice == "" {
		cfg.Columns.UnitPrice = "מחיר נטו ליחידה"
	}
	if cfg.Columns.Quantity == "" {
		cfg.Columns.Quantity = "כמות"
	}

	if cfg.CurrencySymbol == "" {
		cfg.CurrencySymbol = "₪"
	}

	if cfg.Report.SummaryTitle == "" {
		cfg.Report.SummaryTitle = "סיכום בונוסים כללי"
	}
	if cfg.Report.DateHeader == "" {
		cfg.Report.DateHeader = "תאריך"
	}
	if cfg.Report.AverageHeader == "" {
		cfg.Report.AverageHeader = "ממוצע עסקה"
	}
	if cfg.Report.TotalHeader == "" {
		cfg.Report.TotalHeader = "סך מכירות"
	}

	if len(cfg.Rules.TransactionTiers) == 0 {
		cfg.Rules.TransactionTiers = []TierConfig{
			{Threshold: 400, Amount: 20, Category: "בונוס על עסקאות מעל 400"},
			{Threshold: 700, Amount: 10, Category: "בונוס על עסקאות מעל 700"},
		}
	}
	if len(cfg.Rules.AverageTiers) == 0 {
		cfg.Rules.AverageTiers = []TierConfig{
			{Threshold: 130, Amount: 20},
			{Threshold: 140, Amount: 25},
			{Threshold: 150, Amount: 35},
		}
	}
	if cfg.Rules.AverageCategory == "" {
		cfg.Rules.AverageCategory = "בונוס על ממוצע עסקה"
	}
}

// validate checks the configuration for values the pipeline cannot work
// with. Directory creation is handled by the file manager, not here.
func validate(cfg *Config) error {
	if cfg.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1, got %d", cfg.MaxConcurrency)
	}
	if len([]rune(cfg.CSVDelimiter)) != 1 {
		return fmt.Errorf("csv_delimiter must be a single character, got %q", cfg.CSVDelimiter)
	}
	for _, label := range cfg.Columns.Required() {
		if label == "" {
			return fmt.Errorf("all required column labels must be set")
		}
	}
	for _, tier := range cfg.Rules.TransactionTiers {
		if tier.Category == "" {
			return fmt.Errorf("transaction tier with threshold %v has no category label", tier.Threshold)
		}
	}
	return nil
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	return []rune(c.CSVDelimiter)[0]
}
