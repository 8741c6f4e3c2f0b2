package cobranca

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/boleto-utils/internal/types"
	"github.com/ginjaninja78/boleto-utils/internal/vencimento"
)

// Builder errors.
var (
	ErrMissingCodBanco   = errors.New("código do banco não informado")
	ErrMissingCodMoeda   = errors.New("código da moeda não informado")
	ErrInvalidCodBanco   = errors.New("código do banco deve estar entre 0 e 999")
	ErrInvalidValor      = errors.New("valor deve ser positivo e caber em 10 dígitos")
	ErrInvalidCampoLivre = errors.New("campo livre deve conter 25 dígitos")
)

// maxValor is the largest amount the 10-digit field can carry.
var maxValor = decimal.RequireFromString("99999999.99")

// Builder accumulates the fields of a cobrança slip and assembles a barcode
// with a valid general check digit. Bank and currency are required.
type Builder struct {
	codBanco   *int
	codMoeda   *CodigoMoeda
	valor      *decimal.Decimal
	vencimento *time.Time
	campoLivre string
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// CodBanco sets the bank code.
func (b *Builder) CodBanco(codigo int) *Builder {
	b.codBanco = &codigo
	return b
}

// CodMoeda sets the currency.
func (b *Builder) CodMoeda(moeda CodigoMoeda) *Builder {
	b.codMoeda = &moeda
	return b
}

// Valor sets the amount. Fractions below one centavo are truncated.
func (b *Builder) Valor(valor decimal.Decimal) *Builder {
	b.valor = &valor
	return b
}

// Vencimento sets the due date.
func (b *Builder) Vencimento(date time.Time) *Builder {
	b.vencimento = &date
	return b
}

// CampoLivre sets the 25-digit free field. It is zero-filled by default.
func (b *Builder) CampoLivre(digits string) *Builder {
	b.campoLivre = digits
	return b
}

// Build assembles the barcode and parses it with p, so the result satisfies
// the same invariants as decoded input. p may be nil.
func (b *Builder) Build(p *Parser) (*Cobranca, error) {
	barcode, err := b.Barcode()
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = NewParser(nil)
	}
	return p.Parse(barcode[:])
}

// Barcode assembles the barcode without decoding it.
func (b *Builder) Barcode() (CodBarras, error) {
	var cb CodBarras

	if b.codBanco == nil {
		return cb, ErrMissingCodBanco
	}
	if *b.codBanco < 0 || *b.codBanco > 999 {
		return cb, ErrInvalidCodBanco
	}
	if b.codMoeda == nil {
		return cb, ErrMissingCodMoeda
	}
	if _, err := ParseCodigoMoeda(byte(*b.codMoeda)); err != nil {
		return cb, err
	}

	fator := 0
	if b.vencimento != nil {
		var err error
		if fator, err = vencimento.FromDate(*b.vencimento); err != nil {
			return cb, err
		}
	}

	centavos := int64(0)
	if b.valor != nil {
		v := b.valor.Truncate(2)
		if v.IsNegative() || v.GreaterThan(maxValor) {
			return cb, ErrInvalidValor
		}
		centavos = v.Shift(2).IntPart()
	}

	campoLivre := b.campoLivre
	if campoLivre == "" {
		campoLivre = "0000000000000000000000000"
	}
	if len(campoLivre) != 25 || !types.OnlyDigits([]byte(campoLivre)) {
		return cb, ErrInvalidCampoLivre
	}

	raw := fmt.Sprintf("%03d%c0%04d%010d%s", *b.codBanco, byte(*b.codMoeda), fator, centavos, campoLivre)
	copy(cb[:], raw)

	return cb.WithDigitoVerificador(), nil
}
