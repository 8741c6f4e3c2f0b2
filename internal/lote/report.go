package lote

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/boleto-utils/internal/boleto"
	"github.com/ginjaninja78/boleto-utils/internal/config"
)

const (
	sheetBoletos = "Boletos"
	sheetResumo  = "Resumo"
)

// Columns of the report, in order.
var reportHeader = []string{
	"Linha",
	"Entrada",
	"Status",
	"Tipo",
	"Código de barras",
	"Linha digitável",
	"Valor",
	"Vencimento",
	"Emissor",
	"Erro",
}

// WriteReport writes resultados to path as XLSX or CSV, by extension.
func WriteReport(path string, resultados []Resultado, settings config.CSVSettings) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		err = writeXLSX(path, resultados)
	case ".csv":
		err = writeCSV(path, resultados, settings)
	default:
		err = fmt.Errorf("unsupported report extension %q", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

// =============================================================================
// ROW CONTENT
// =============================================================================

func reportRow(r Resultado) []string {
	row := make([]string, len(reportHeader))
	row[0] = fmt.Sprint(r.Linha)
	row[1] = r.Codigo

	if !r.OK() {
		row[2] = "Inválido"
		row[9] = r.Err.Error()
		return row
	}

	b := r.Boleto
	row[2] = "OK"
	row[3] = b.Tipo.Label()
	row[4] = b.CodBarras()
	row[5] = b.LinhaDigitavel()

	switch {
	case b.Cobranca != nil:
		c := b.Cobranca
		if c.Valor.Valid {
			row[6] = c.Valor.Decimal.StringFixed(2)
		}
		if c.TemVencimento() {
			row[7] = c.DataVencimento.Format("2006-01-02")
		}
		row[8] = fmt.Sprintf("[%s] %s", c.CodBanco, orUnknown(c.NomeBanco))
	case b.Arrecadacao != nil:
		a := b.Arrecadacao
		if a.Valor.Valid {
			row[6] = a.Valor.Decimal.StringFixed(2)
		}
		row[8] = emissorArrecadacao(b)
	}
	return row
}

func emissorArrecadacao(b *boleto.Boleto) string {
	a := b.Arrecadacao
	if a.Convenio.Carne {
		return fmt.Sprintf("%s: Carnê %s", a.Segmento, a.Convenio.Codigo)
	}
	return fmt.Sprintf("%s: [%s] %s", a.Segmento, a.Convenio.Codigo, orUnknown(a.Convenio.Nome))
}

func orUnknown(nome string) string {
	if nome == "" {
		return "desconhecido"
	}
	return nome
}

// =============================================================================
// CSV
// =============================================================================

func writeCSV(path string, resultados []Resultado, settings config.CSVSettings) error {
	comma, err := settings.Comma()
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	w.Comma = comma

	if err := w.Write(reportHeader); err != nil {
		return err
	}
	for _, r := range resultados {
		if err := w.Write(reportRow(r)); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return file.Close()
}

// =============================================================================
// XLSX
// =============================================================================

func writeXLSX(path string, resultados []Resultado) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetBoletos); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(sheetBoletos)
	if err != nil {
		return err
	}

	// Widths must be set before the first row.
	for i, name := range reportHeader {
		width := float64(len(name) + 4)
		switch i {
		case 4, 5:
			width = 52
		case 9:
			width = 40
		}
		if width < 12 {
			width = 12
		}
		if err := sw.SetColWidth(i+1, i+1, width); err != nil {
			return err
		}
	}

	if err := sw.SetRow("A1", toCells(reportHeader), excelize.RowOpts{StyleID: bold}); err != nil {
		return err
	}
	for i, r := range resultados {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := toCells(reportRow(r))
		values[0] = r.Linha
		if err := sw.SetRow(cell, values); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}

	if err := writeResumo(f, summarize(resultados), bold); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func writeResumo(f *excelize.File, s Stats, bold int) error {
	if _, err := f.NewSheet(sheetResumo); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Total", s.Total},
		{"Válidos", s.Validos},
		{"Inválidos", s.Invalidos},
		{"Cobrança", s.Cobranca},
		{"Arrecadação", s.Arrecadacao},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetResumo, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SetCellStyle(sheetResumo, "A1", fmt.Sprintf("A%d", len(rows)), bold); err != nil {
		return err
	}
	return f.SetColWidth(sheetResumo, "A", "A", 16)
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
