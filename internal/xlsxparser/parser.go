// =============================================================================
// Boleto Utils - XLSX Parser Module
// =============================================================================
//
// Reads one sheet of an XLSX workbook into rows. Used for reference tables
// maintained in spreadsheets and for batch input exported from ERPs.
//
// SHEET SELECTION:
//   An empty sheet name selects the first sheet of the workbook. A named
//   sheet that does not exist is an error.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/boleto-utils/internal/types"
)

// Parse reads the data rows of a sheet, skipping headerRows leading rows and
// any empty row.
func Parse(filePath, sheet string, headerRows int) ([]types.Row, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return parseSheet(f, sheet, headerRows)
}

// ParseReader reads the data rows of a sheet from r.
func ParseReader(r io.Reader, sheet string, headerRows int) ([]types.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return parseSheet(f, sheet, headerRows)
}

// parseSheet reads a single sheet from an open workbook.
func parseSheet(f *excelize.File, sheet string, headerRows int) ([]types.Row, error) {
	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("workbook has no sheets")
		}
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found", sheet)
	}

	all, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	var rows []types.Row
	for i := headerRows; i < len(all); i++ {
		if isRowEmpty(all[i]) {
			continue
		}
		rows = append(rows, types.Row{Number: i + 1, Cells: all[i]})
	}

	return rows, nil
}

// isRowEmpty reports whether every cell is blank.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
