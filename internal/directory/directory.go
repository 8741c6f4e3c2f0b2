// =============================================================================
// Boleto Utils - Reference Directories
// =============================================================================
//
// Bank and convênio name tables. Tables are read from CSV or XLSX files, or
// from the copies embedded in the binary. They are built once and never
// modified afterwards, so a loaded table is safe for concurrent lookups.
//
// TABLE LAYOUTS (first row is a header and is skipped):
//   bancos:    codigo, nome
//   convenios: segmento, codigo, nome
//
// =============================================================================

package directory

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/ginjaninja78/boleto-utils/internal/config"
	"github.com/ginjaninja78/boleto-utils/internal/csvparser"
	"github.com/ginjaninja78/boleto-utils/internal/types"
	"github.com/ginjaninja78/boleto-utils/internal/xlsxparser"
)

var (
	//go:embed data/bancos.csv
	bancosCSV []byte

	//go:embed data/convenios.csv
	conveniosCSV []byte
)

// =============================================================================
// BANKS
// =============================================================================

// Bancos maps bank codes to names.
type Bancos struct {
	nomes map[int]string
}

// NewBancos builds a table from a code to name map.
func NewBancos(nomes map[int]string) *Bancos {
	b := &Bancos{nomes: make(map[int]string, len(nomes))}
	for codigo, nome := range nomes {
		b.nomes[codigo] = nome
	}
	return b
}

// NomeBanco implements types.BankDirectory.
func (b *Bancos) NomeBanco(codigo int) (string, bool) {
	nome, ok := b.nomes[codigo]
	return nome, ok
}

// Len returns the number of banks.
func (b *Bancos) Len() int {
	return len(b.nomes)
}

// =============================================================================
// CONVÊNIOS
// =============================================================================

type convenioKey struct {
	segmento int
	codigo   int
}

// Convenios maps (segment, convênio code) pairs to names.
type Convenios struct {
	nomes map[convenioKey]string
}

// NomeConvenio implements types.AgreementDirectory.
func (c *Convenios) NomeConvenio(segmento, codigo int) (string, bool) {
	nome, ok := c.nomes[convenioKey{segmento, codigo}]
	return nome, ok
}

// Len returns the number of convênios.
func (c *Convenios) Len() int {
	return len(c.nomes)
}

// =============================================================================
// LOADERS
// =============================================================================

// LoadBancos reads a bank table from a .csv or .xlsx file.
func LoadBancos(path string) (*Bancos, error) {
	rows, err := readTable(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load banks from %s: %w", path, err)
	}
	b, err := parseBancos(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to load banks from %s: %w", path, err)
	}
	return b, nil
}

// LoadConvenios reads a convênio table from a .csv or .xlsx file.
func LoadConvenios(path string) (*Convenios, error) {
	rows, err := readTable(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load convênios from %s: %w", path, err)
	}
	c, err := parseConvenios(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to load convênios from %s: %w", path, err)
	}
	return c, nil
}

// readTable picks the reader from the file extension.
func readTable(path string) ([]types.Row, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return csvparser.Parse(path, config.CSVSettings{Delimiter: ",", HeaderRows: 1})
	case ".xlsx":
		return xlsxparser.Parse(path, "", 1)
	default:
		return nil, fmt.Errorf("unsupported file extension %q", filepath.Ext(path))
	}
}

func parseBancos(rows []types.Row) (*Bancos, error) {
	b := &Bancos{nomes: make(map[int]string, len(rows))}
	for _, row := range rows {
		codigo, err := parseID(row, 0, "codigo")
		if err != nil {
			return nil, err
		}
		b.nomes[codigo] = row.Cell(1)
	}
	return b, nil
}

func parseConvenios(rows []types.Row) (*Convenios, error) {
	c := &Convenios{nomes: make(map[convenioKey]string, len(rows))}
	for _, row := range rows {
		segmento, err := parseID(row, 0, "segmento")
		if err != nil {
			return nil, err
		}
		codigo, err := parseID(row, 1, "codigo")
		if err != nil {
			return nil, err
		}
		c.nomes[convenioKey{segmento, codigo}] = row.Cell(2)
	}
	return c, nil
}

func parseID(row types.Row, col int, name string) (int, error) {
	v, err := strconv.Atoi(row.Cell(col))
	if err != nil || v < 0 {
		return 0, fmt.Errorf("row %d: invalid %s %q", row.Number, name, row.Cell(col))
	}
	return v, nil
}

// =============================================================================
// EMBEDDED DEFAULTS
// =============================================================================

var (
	defaultOnce      sync.Once
	defaultBancos    *Bancos
	defaultConvenios *Convenios
)

// Default returns the tables embedded in the binary. They are parsed on the
// first call only.
func Default() (*Bancos, *Convenios) {
	defaultOnce.Do(func() {
		settings := config.CSVSettings{Delimiter: ",", HeaderRows: 1}

		rows, err := csvparser.ParseReader(bytes.NewReader(bancosCSV), settings)
		if err == nil {
			defaultBancos, err = parseBancos(rows)
		}
		if err != nil {
			panic(fmt.Sprintf("directory: embedded bank table: %v", err))
		}

		rows, err = csvparser.ParseReader(bytes.NewReader(conveniosCSV), settings)
		if err == nil {
			defaultConvenios, err = parseConvenios(rows)
		}
		if err != nil {
			panic(fmt.Sprintf("directory: embedded convênio table: %v", err))
		}
	})
	return defaultBancos, defaultConvenios
}
