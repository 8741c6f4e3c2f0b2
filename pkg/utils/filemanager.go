// =============================================================================
// Boleto Utils - File Manager Utility
// =============================================================================
//
// Helpers for the files written by batch runs:
//   - Output directory management
//   - Report file naming
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// now is replaced in tests.
var now = time.Now

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDir creates dir and its parents if they don't exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists reports whether path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName expands the placeholders of a report name.
//
// Placeholders:
//
//	{uuid}      a random UUID
//	{timestamp} current time as YYYYMMDD_HHMMSS
//	{date}      current date as YYYYMMDD
//	{time}      current time as HHMMSS
//	{input}     input file name without extension, when given in params
//
// Any other key of params is available as {key}. The extension of format is
// kept as is, since it selects the report format.
//
// Example:
//
//	GenerateOutputFileName("lote_{input}_{date}.xlsx", map[string]string{"input": "julho"})
//	=> "lote_julho_20260512.xlsx"
func GenerateOutputFileName(format string, params map[string]string) string {
	t := now()

	replacements := map[string]string{
		"{timestamp}": t.Format("20060102_150405"),
		"{date}":      t.Format("20060102"),
		"{time}":      t.Format("150405"),
	}
	if strings.Contains(format, "{uuid}") {
		replacements["{uuid}"] = uuid.New().String()
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	return result
}

// BaseName returns the file name of path without directory or extension.
func BaseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
