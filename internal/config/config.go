// =============================================================================
// Boleto Utils - Configuration Module
// =============================================================================
//
// Loads the optional YAML configuration file. Every key has a default, so the
// tool runs without any file at all.
//
// EXAMPLE (config.yaml):
//   bancos_file: ./dados/bancos.xlsx
//   convenios_file: ./dados/convenios.csv
//   output_format: json
//   log_level: info
//   lote:
//     output_dir: ./output
//     file_name_format: "lote_{timestamp}_{uuid}.xlsx"
//     column: 0
//     sheet: Boletos
//     max_concurrency: 4
//     csv_settings:
//       delimiter: ";"
//       header_rows: 1
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when --config is not given.
const DefaultPath = "boleto.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// BancosFile is a CSV or XLSX table of bank codes and names. Empty means
	// the embedded table.
	BancosFile string `yaml:"bancos_file"`

	// ConveniosFile is a CSV or XLSX table of convênios. Empty means the
	// embedded table.
	ConveniosFile string `yaml:"convenios_file"`

	// OutputFormat is the report format of info and digito-verificador.
	// Valid values: "text", "json", "yaml", "xml"
	// Default: "text"
	OutputFormat string `yaml:"output_format"`

	// LogLevel is the minimum zap level: "debug", "info", "warn" or "error".
	// --verbose forces debug. Default: "info"
	LogLevel string `yaml:"log_level"`

	// Lote holds the batch command settings.
	Lote LoteConfig `yaml:"lote"`
}

// LoteConfig holds the settings of batch decoding.
type LoteConfig struct {
	// OutputDir is where reports are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// FileNameFormat names the report. The extension (.xlsx or .csv) selects
	// the report format.
	// Placeholders are {uuid}, {timestamp}, {date}, {time} and {input}, the
	// input file name without extension.
	// Default: "lote_{timestamp}_{uuid}.xlsx"
	FileNameFormat string `yaml:"file_name_format"`

	// Column is the zero-based column holding the codes.
	// Default: 0
	Column int `yaml:"column"`

	// Sheet is the XLSX sheet to read. Empty means the first sheet.
	Sheet string `yaml:"sheet"`

	// MaxConcurrency is the number of rows decoded in parallel.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// CSVSettings controls how CSV input is read.
	CSVSettings CSVSettings `yaml:"csv_settings"`
}

// CSVSettings contains settings for reading CSV files.
type CSVSettings struct {
	// Delimiter is the field separator. Accepts a single character or one of
	// "comma", "tab", "pipe", "semicolon".
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// HeaderRows is the number of rows skipped before the data. Batch runs
	// apply it to XLSX input too.
	// Default: 0
	HeaderRows int `yaml:"header_rows"`
}

// Comma resolves Delimiter to the separator rune used by CSV readers and
// report writers.
func (s CSVSettings) Comma() (rune, error) {
	switch strings.ToLower(s.Delimiter) {
	case "", ",", "comma":
		return ',', nil
	case "\t", "\\t", "tab":
		return '\t', nil
	case "|", "pipe":
		return '|', nil
	case ";", "semicolon":
		return ';', nil
	}

	r, size := utf8.DecodeRuneInString(s.Delimiter)
	if size != len(s.Delimiter) || r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("delimiter %q must be a single character or one of comma, tab, pipe, semicolon", s.Delimiter)
	}
	return r, nil
}

// =============================================================================
// LOADING FUNCTIONS
// =============================================================================

// Default returns the configuration used when no file exists.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// Load reads, defaults and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
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

// LoadOptional behaves like Load but returns Default when path does not
// exist. Use it for the implicit default path only.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// applyDefaults sets default values for any unset option.
func applyDefaults(cfg *Config) {
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Lote.OutputDir == "" {
		cfg.Lote.OutputDir = "./output"
	}
	if cfg.Lote.FileNameFormat == "" {
		cfg.Lote.FileNameFormat = "lote_{timestamp}_{uuid}.xlsx"
	}
	if cfg.Lote.MaxConcurrency == 0 {
		cfg.Lote.MaxConcurrency = 4
	}
	if cfg.Lote.CSVSettings.Delimiter == "" {
		cfg.Lote.CSVSettings.Delimiter = ","
	}
}

// validate rejects values the commands cannot work with.
func validate(cfg *Config) error {
	switch cfg.OutputFormat {
	case "text", "json", "yaml", "xml":
	default:
		return fmt.Errorf("output_format %q must be one of text, json, yaml, xml", cfg.OutputFormat)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q must be one of debug, info, warn, error", cfg.LogLevel)
	}

	if cfg.Lote.Column < 0 {
		return fmt.Errorf("lote.column must not be negative")
	}
	if cfg.Lote.MaxConcurrency < 1 {
		return fmt.Errorf("lote.max_concurrency must be at least 1")
	}
	if cfg.Lote.CSVSettings.HeaderRows < 0 {
		return fmt.Errorf("lote.csv_settings.header_rows must not be negative")
	}
	if _, err := cfg.Lote.CSVSettings.Comma(); err != nil {
		return fmt.Errorf("lote.csv_settings: %w", err)
	}

	switch strings.ToLower(filepath.Ext(cfg.Lote.FileNameFormat)) {
	case ".xlsx", ".csv":
	default:
		return fmt.Errorf("lote.file_name_format %q must end in .xlsx or .csv", cfg.Lote.FileNameFormat)
	}

	return nil
}
