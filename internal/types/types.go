// =============================================================================
// Boleto Utils - Shared Types
// =============================================================================
//
// This package contains types shared by the decoding pipelines to avoid import
// cycles. Types defined here are used by:
//   - cobranca
//   - arrecadacao
//   - boleto
//   - directory
//   - csvparser, xlsxparser and lote
//
// =============================================================================

package types

import "strings"

// =============================================================================
// REFERENCE DATA LOOKUPS
// =============================================================================

// BankDirectory resolves a bank code (the first three digits of a cobrança
// barcode) to the bank's display name.
//
// A missing entry is a normal "unknown" result, never an error.
type BankDirectory interface {
	NomeBanco(codigo int) (string, bool)
}

// AgreementDirectory resolves a convênio code of an arrecadação barcode to
// the name of the issuing agency or utility. Codes are only unique within a
// segment, so the segment digit is part of the key.
type AgreementDirectory interface {
	NomeConvenio(segmento, codigo int) (string, bool)
}

// =============================================================================
// FAMILY TAG
// =============================================================================

// Tipo identifies which of the two slip families a code belongs to.
type Tipo int

const (
	TipoCobranca Tipo = iota + 1
	TipoArrecadacao
)

// String returns the tag used in structured output.
func (t Tipo) String() string {
	switch t {
	case TipoCobranca:
		return "cobranca"
	case TipoArrecadacao:
		return "arrecadacao"
	default:
		return "desconhecido"
	}
}

// Label returns the human-readable name of the family.
func (t Tipo) Label() string {
	switch t {
	case TipoCobranca:
		return "Cobrança"
	case TipoArrecadacao:
		return "Arrecadação"
	default:
		return "Desconhecido"
	}
}

// TipoFromInput picks the family from the leading byte of a raw code.
// Arrecadação codes always start with '8'.
func TipoFromInput(input []byte) Tipo {
	if len(input) > 0 && input[0] == '8' {
		return TipoArrecadacao
	}
	return TipoCobranca
}

// OnlyDigits reports whether every byte of b is an ASCII digit.
func OnlyDigits(b []byte) bool {
	for _, c := range b {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// ParseDigits converts a run of ASCII digits to its integer value. Callers
// must have validated the input with OnlyDigits.
func ParseDigits(b []byte) int {
	n := 0
	for _, c := range b {
		n = n*10 + int(c-'0')
	}
	return n
}

// =============================================================================
// TABULAR INPUT
// =============================================================================

// Row is one non-empty row read from a CSV file or an XLSX sheet.
type Row struct {
	// Number is the 1-based row number in the source, for error messages.
	Number int
	Cells  []string
}

// Cell returns the trimmed cell at index i, or "" when the row is shorter.
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return strings.TrimSpace(r.Cells[i])
}
