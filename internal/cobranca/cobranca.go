// =============================================================================
// Boleto Utils - Cobrança Record Parser
// =============================================================================
//
// Decodes a bank collection slip, given either as a 44-digit barcode or as a
// 47-digit digitable line, into a Cobranca record.
//
// PARSING STEPS:
//   1. Validate length, digits and family tag
//   2. Derive the missing representation through the field codec
//   3. Decode bank, currency, due-date factor and amount
//   4. Check the general check digit (modulo 11)
//   5. Check the three per-field check digits (modulo 10)
//   6. Resolve the due date and the bank name
//
// Any failure stops parsing; no partial record is returned.
//
// =============================================================================

package cobranca

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/boleto-utils/internal/types"
	"github.com/ginjaninja78/boleto-utils/internal/vencimento"
)

// =============================================================================
// FIELD TYPES
// =============================================================================

// CodigoMoeda is the currency digit at barcode position 3.
type CodigoMoeda byte

const (
	// MoedaReal is encoded as '9'.
	MoedaReal CodigoMoeda = '9'
	// MoedaOutras is encoded as '0'.
	MoedaOutras CodigoMoeda = '0'
)

// ParseCodigoMoeda decodes a currency digit.
func ParseCodigoMoeda(b byte) (CodigoMoeda, error) {
	switch CodigoMoeda(b) {
	case MoedaReal, MoedaOutras:
		return CodigoMoeda(b), nil
	default:
		return 0, types.ErrInvalidCodigoMoeda
	}
}

// String returns the currency name.
func (m CodigoMoeda) String() string {
	switch m {
	case MoedaReal:
		return "Real"
	case MoedaOutras:
		return "Outras"
	default:
		return "Inválida"
	}
}

// CodBanco is the 3-digit bank code.
type CodBanco uint16

// String returns the zero-padded code.
func (c CodBanco) String() string {
	return fmt.Sprintf("%03d", uint16(c))
}

// =============================================================================
// RECORD
// =============================================================================

// Cobranca is a decoded bank collection slip.
type Cobranca struct {
	CodBarras      CodBarras
	LinhaDigitavel LinhaDigitavel

	CodBanco CodBanco
	// NomeBanco is empty when the bank directory has no entry for CodBanco.
	NomeBanco string

	CodMoeda          CodigoMoeda
	DigitoVerificador byte

	// FatorVencimento is 0 when the slip has no due date, in which case
	// DataVencimento is the zero time.
	FatorVencimento int
	DataVencimento  time.Time

	// Valor is invalid (Valid == false) when the amount field is all zeros.
	Valor decimal.NullDecimal
}

// TemVencimento reports whether the slip carries a due date.
func (c *Cobranca) TemVencimento() bool {
	return c.FatorVencimento != 0
}

// CampoLivre returns the 25-digit issuer-specific free field.
func (c *Cobranca) CampoLivre() string {
	return string(c.CodBarras[19:44])
}

// =============================================================================
// PARSER
// =============================================================================

// Parser decodes cobrança codes. The zero value works and leaves bank names
// unresolved.
type Parser struct {
	bancos types.BankDirectory
}

// NewParser creates a Parser that resolves bank names through bancos, which
// may be nil.
func NewParser(bancos types.BankDirectory) *Parser {
	return &Parser{bancos: bancos}
}

// Parse decodes a barcode or a digitable line.
func Parse(input []byte) (*Cobranca, error) {
	return NewParser(nil).Parse(input)
}

// Parse decodes a barcode or a digitable line.
func (p *Parser) Parse(input []byte) (*Cobranca, error) {
	var (
		cb CodBarras
		ld LinhaDigitavel
	)

	switch len(input) {
	case CodBarrasLength:
		var err error
		if cb, err = NewCodBarras(input); err != nil {
			return nil, err
		}
		ld = cb.LinhaDigitavel()
	case LinhaDigitavelLength:
		var err error
		if ld, err = NewLinhaDigitavel(input); err != nil {
			return nil, err
		}
		cb = ld.CodBarras()
	default:
		return nil, types.ErrInvalidLength
	}

	return p.decode(cb, ld)
}

// decode extracts the fields of a validated pair and checks every digit.
func (p *Parser) decode(cb CodBarras, ld LinhaDigitavel) (*Cobranca, error) {
	moeda, err := ParseCodigoMoeda(cb[3])
	if err != nil {
		return nil, err
	}

	fator := types.ParseDigits(cb[5:9])
	if fator > 0 && fator < vencimento.MinFator {
		return nil, types.ErrInvalidFatorVencimento
	}

	dv := cb.DigitoVerificador()
	if dv != cb[posDV]-'0' {
		return nil, types.ErrInvalidDigitoVerificadorGeral
	}

	if ld.DigitosCampos() != cb.DigitosCampos() {
		return nil, types.ErrInvalidDigitoVerificadorCampos
	}

	rec := &Cobranca{
		CodBarras:         cb,
		LinhaDigitavel:    ld,
		CodBanco:          CodBanco(types.ParseDigits(cb[0:3])),
		CodMoeda:          moeda,
		DigitoVerificador: dv,
		FatorVencimento:   fator,
		Valor:             parseValor(cb[9:19]),
	}

	if date, ok := vencimento.ToDate(fator); ok {
		rec.DataVencimento = date
	}

	if p.bancos != nil {
		if nome, ok := p.bancos.NomeBanco(int(rec.CodBanco)); ok {
			rec.NomeBanco = nome
		}
	}

	return rec, nil
}

// parseValor reads a fixed-point amount with two implied decimals. An all-zero
// field means no amount was given.
func parseValor(digits []byte) decimal.NullDecimal {
	v, err := decimal.NewFromString(string(digits))
	if err != nil || v.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(v.Shift(-2))
}
