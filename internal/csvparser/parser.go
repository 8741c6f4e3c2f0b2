// =============================================================================
// Boleto Utils - CSV Parser Module
// =============================================================================
//
// Reads CSV files into rows for the reference tables and for batch input.
// Files are small enough for Parse to load at once; StreamingParser serves
// batch files of arbitrary size.
//
// FEATURES:
//   - Configurable delimiter (comma, semicolon, pipe, tab)
//   - Leading header rows skipped
//   - Empty rows ignored, row numbers kept for error messages
//   - Variable number of fields per row
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/boleto-utils/internal/config"
	"github.com/ginjaninja78/boleto-utils/internal/types"
)

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads every data row of a CSV file.
func Parse(filePath string, settings config.CSVSettings) ([]types.Row, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer file.Close()

	return ParseReader(file, settings)
}

// ParseReader reads every data row from r.
func ParseReader(r io.Reader, settings config.CSVSettings) ([]types.Row, error) {
	p, err := newStreamingParser(r, nil, settings)
	if err != nil {
		return nil, err
	}

	var rows []types.Row
	for p.Next() {
		rows = append(rows, p.Row())
	}
	if err := p.Err(); err != nil {
		return nil, err
	}

	return rows, nil
}

func configureReader(reader *csv.Reader, settings config.CSVSettings) error {
	comma, err := settings.Comma()
	if err != nil {
		return err
	}
	reader.Comma = comma

	// Spreadsheets exported by hand rarely keep a constant column count.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	return nil
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

// =============================================================================
// STREAMING
// =============================================================================

// StreamingParser yields data rows one at a time, in the bufio.Scanner
// style: loop on Next, read Row, then check Err once Next returns false.
type StreamingParser struct {
	closer     io.Closer
	reader     *csv.Reader
	current    types.Row
	rowNumber  int
	headerRows int
	err        error
}

// NewStreamingParser opens a CSV file for row-by-row reading.
func NewStreamingParser(filePath string, settings config.CSVSettings) (*StreamingParser, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}

	p, err := newStreamingParser(file, file, settings)
	if err != nil {
		file.Close()
		return nil, err
	}
	return p, nil
}

func newStreamingParser(r io.Reader, closer io.Closer, settings config.CSVSettings) (*StreamingParser, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	if err := configureReader(reader, settings); err != nil {
		return nil, err
	}

	return &StreamingParser{
		closer:     closer,
		reader:     reader,
		headerRows: settings.HeaderRows,
	}, nil
}

// Next advances to the next non-empty data row. Returns false when there are
// no more rows or an error occurred.
func (p *StreamingParser) Next() bool {
	if p.err != nil {
		return false
	}

	for {
		record, err := p.reader.Read()
		if err == io.EOF {
			return false
		}
		p.rowNumber++
		if err != nil {
			p.err = fmt.Errorf("error reading record %d: %w", p.rowNumber, err)
			return false
		}

		if p.rowNumber <= p.headerRows || isRowEmpty(record) {
			continue
		}

		// encoding/csv drops blank lines, so the record count is not the
		// line number.
		line, _ := p.reader.FieldPos(0)
		p.current = types.Row{Number: line, Cells: record}
		return true
	}
}

// Row returns the current row.
func (p *StreamingParser) Row() types.Row {
	return p.current
}

// Err returns the first error encountered while reading.
func (p *StreamingParser) Err() error {
	return p.err
}

// Close releases the underlying file.
func (p *StreamingParser) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}
