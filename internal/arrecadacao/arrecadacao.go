// =============================================================================
// Boleto Utils - Arrecadação Record Parser
// =============================================================================
//
// Decodes a utility or tax collection slip, given either as a 44-digit
// barcode or as a 48-digit digitable line, into an Arrecadacao record.
//
// PARSING STEPS:
//   1. Validate length, digits and the '8' tag
//   2. Derive the missing representation through the field codec
//   3. Decode the value type, which selects the checksum family
//   4. Decode the segment and the convênio
//   5. Decode the amount for currency-valued types
//   6. Check the general check digit and the four block check digits
//
// =============================================================================

package arrecadacao

import (
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/boleto-utils/internal/checksum"
	"github.com/ginjaninja78/boleto-utils/internal/types"
)

// =============================================================================
// FIELD TYPES
// =============================================================================

// Segmento identifies the kind of issuer, encoded at barcode position 1.
type Segmento byte

const (
	Prefeituras          Segmento = '1'
	Saneamento           Segmento = '2'
	EnergiaEletricaEGas  Segmento = '3'
	Telecomunicacoes     Segmento = '4'
	OrgaosGovernamentais Segmento = '5'
	Carnes               Segmento = '6'
	MultasTransito       Segmento = '7'
	ExclusivoDoBanco     Segmento = '9'
)

// ParseSegmento decodes a segment digit. '8' is unassigned.
func ParseSegmento(b byte) (Segmento, error) {
	switch s := Segmento(b); s {
	case Prefeituras, Saneamento, EnergiaEletricaEGas, Telecomunicacoes,
		OrgaosGovernamentais, Carnes, MultasTransito, ExclusivoDoBanco:
		return s, nil
	default:
		return 0, types.ErrInvalidSegmento
	}
}

// Codigo returns the numeric segment code.
func (s Segmento) Codigo() int {
	return int(s - '0')
}

func (s Segmento) String() string {
	switch s {
	case Prefeituras:
		return "Prefeituras"
	case Saneamento:
		return "Saneamento"
	case EnergiaEletricaEGas:
		return "Energia elétrica e gás"
	case Telecomunicacoes:
		return "Telecomunicações"
	case OrgaosGovernamentais:
		return "Órgãos governamentais"
	case Carnes:
		return "Carnês"
	case MultasTransito:
		return "Multas de Trânsito"
	case ExclusivoDoBanco:
		return "Uso exclusivo do banco emissor"
	default:
		return "Inválido"
	}
}

// TipoValor tells how to read the amount field and which checksum protects
// the slip. It is encoded at barcode position 2.
type TipoValor byte

const (
	ValorReaisMod10 TipoValor = '6'
	QtdeMoedaMod10  TipoValor = '7'
	ValorReaisMod11 TipoValor = '8'
	QtdeMoedaMod11  TipoValor = '9'
)

// ParseTipoValor decodes a value type digit.
func ParseTipoValor(b byte) (TipoValor, error) {
	switch t := TipoValor(b); t {
	case ValorReaisMod10, QtdeMoedaMod10, ValorReaisMod11, QtdeMoedaMod11:
		return t, nil
	default:
		return 0, types.ErrInvalidTipoValor
	}
}

// EmReais reports whether the amount field holds a value in reais. The other
// types carry a quantity of an index currency instead.
func (t TipoValor) EmReais() bool {
	return t == ValorReaisMod10 || t == ValorReaisMod11
}

// Modulo10 reports whether the slip is protected by modulo 10.
func (t TipoValor) Modulo10() bool {
	return t == ValorReaisMod10 || t == QtdeMoedaMod10
}

func (t TipoValor) String() string {
	switch t {
	case ValorReaisMod10:
		return "Valor em reais (módulo 10)"
	case QtdeMoedaMod10:
		return "Quantidade de moeda (módulo 10)"
	case ValorReaisMod11:
		return "Valor em reais (módulo 11)"
	case QtdeMoedaMod11:
		return "Quantidade de moeda (módulo 11)"
	default:
		return "Inválido"
	}
}

// digito applies the checksum selected by the value type.
func (t TipoValor) digito(parts ...[]byte) byte {
	if t.Modulo10() {
		return checksum.Mod10(parts...)
	}
	return checksum.Mod11Or(0, parts...)
}

// Convenio identifies the agreement between the issuer and the collecting
// bank.
type Convenio struct {
	// Carne is set for the Carnês segment, whose 8-digit identifier has no
	// reference data and is never resolved.
	Carne bool
	// Codigo holds barcode positions 15..18, or 15..22 for carnês.
	Codigo string
	// Nome is empty when the directory has no entry.
	Nome string
}

// Resolvido reports whether the convênio name is known.
func (c Convenio) Resolvido() bool {
	return c.Nome != ""
}

// =============================================================================
// RECORD
// =============================================================================

// Arrecadacao is a decoded utility or tax collection slip.
type Arrecadacao struct {
	CodBarras      CodBarras
	LinhaDigitavel LinhaDigitavel

	Segmento          Segmento
	TipoValor         TipoValor
	DigitoVerificador byte

	// Valor is invalid when the type carries a quantity or the field is all
	// zeros.
	Valor decimal.NullDecimal

	Convenio Convenio
}

// CampoLivre returns the issuer-specific free field after the convênio.
func (a *Arrecadacao) CampoLivre() string {
	if a.Convenio.Carne {
		return string(a.CodBarras[23:])
	}
	return string(a.CodBarras[19:])
}

// =============================================================================
// PARSER
// =============================================================================

// Parser decodes arrecadação codes. Convênio names are resolved through an
// optional directory.
type Parser struct {
	convenios types.AgreementDirectory
}

// NewParser creates a Parser. convenios may be nil.
func NewParser(convenios types.AgreementDirectory) *Parser {
	return &Parser{convenios: convenios}
}

// Parse decodes a barcode or a digitable line without resolving convênios.
func Parse(input []byte) (*Arrecadacao, error) {
	return NewParser(nil).Parse(input)
}

// Parse decodes a barcode or a digitable line.
func (p *Parser) Parse(input []byte) (*Arrecadacao, error) {
	var (
		cb  CodBarras
		ld  LinhaDigitavel
		err error
	)

	switch len(input) {
	case CodBarrasLength:
		cb, err = NewCodBarras(input)
	case LinhaDigitavelLength:
		if ld, err = NewLinhaDigitavel(input); err == nil {
			cb = ld.CodBarras()
		}
	default:
		return nil, types.ErrInvalidLength
	}
	if err != nil {
		return nil, err
	}

	tipo, err := cb.TipoValor()
	if err != nil {
		return nil, err
	}
	if len(input) == CodBarrasLength {
		ld = cb.LinhaDigitavel(tipo)
	}

	segmento, err := cb.Segmento()
	if err != nil {
		return nil, err
	}

	rec := &Arrecadacao{
		CodBarras:      cb,
		LinhaDigitavel: ld,
		Segmento:       segmento,
		TipoValor:      tipo,
		Convenio:       p.convenio(cb, segmento),
	}
	if tipo.EmReais() {
		rec.Valor = parseValor(cb[4:15])
	}

	dv := cb.DigitoVerificador(tipo)
	if dv != cb[posDV]-'0' {
		return nil, types.ErrInvalidDigitoVerificador
	}
	rec.DigitoVerificador = dv

	if ld.DigitosCampos() != cb.DigitosCampos(tipo) {
		return nil, types.ErrInvalidDigitoVerificador
	}

	return rec, nil
}

func (p *Parser) convenio(cb CodBarras, segmento Segmento) Convenio {
	if segmento == Carnes {
		return Convenio{Carne: true, Codigo: string(cb[15:23])}
	}

	c := Convenio{Codigo: string(cb[15:19])}
	if p.convenios != nil {
		if nome, ok := p.convenios.NomeConvenio(segmento.Codigo(), types.ParseDigits(cb[15:19])); ok {
			c.Nome = nome
		}
	}
	return c
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
