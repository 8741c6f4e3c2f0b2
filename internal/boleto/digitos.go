package boleto

import (
	"go.uber.org/zap"

	"github.com/ginjaninja78/boleto-utils/internal/arrecadacao"
	"github.com/ginjaninja78/boleto-utils/internal/cobranca"
	"github.com/ginjaninja78/boleto-utils/internal/types"
)

// Verificacao holds recomputed check digits and both representations with
// every check digit position overwritten.
type Verificacao struct {
	Tipo types.Tipo

	DVGeral byte
	// DVCampos has three entries for cobrança and four for arrecadação.
	DVCampos []byte

	CodBarras      string
	LinhaDigitavel string
}

// CalcularDigitos recomputes the check digits of input. Only length, digits,
// family tag and, for arrecadação, the value type are validated; the other
// fields may hold anything. It is meant for codes whose check digits are
// unknown or placeholders.
func CalcularDigitos(input []byte) (*Verificacao, error) {
	if len(input) == 0 {
		return nil, types.ErrInvalidLength
	}
	if types.TipoFromInput(input) == types.TipoArrecadacao {
		return digitosArrecadacao(input)
	}
	return digitosCobranca(input)
}

// CalcularDigitos recomputes the check digits of input.
func (d *Decoder) CalcularDigitos(input []byte) (*Verificacao, error) {
	v, err := CalcularDigitos(input)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("check digits computed",
		zap.Stringer("tipo", v.Tipo),
		zap.Uint8("dv_geral", v.DVGeral))
	return v, nil
}

func digitosCobranca(input []byte) (*Verificacao, error) {
	var cb cobranca.CodBarras

	switch len(input) {
	case cobranca.CodBarrasLength:
		var err error
		if cb, err = cobranca.NewCodBarras(input); err != nil {
			return nil, err
		}
	case cobranca.LinhaDigitavelLength:
		ld, err := cobranca.NewLinhaDigitavel(input)
		if err != nil {
			return nil, err
		}
		cb = ld.CodBarras()
	default:
		return nil, types.ErrInvalidLength
	}

	cb = cb.WithDigitoVerificador()
	campos := cb.DigitosCampos()

	return &Verificacao{
		Tipo:           types.TipoCobranca,
		DVGeral:        cb[4] - '0',
		DVCampos:       campos[:],
		CodBarras:      cb.String(),
		LinhaDigitavel: cb.LinhaDigitavel().String(),
	}, nil
}

func digitosArrecadacao(input []byte) (*Verificacao, error) {
	var cb arrecadacao.CodBarras

	switch len(input) {
	case arrecadacao.CodBarrasLength:
		var err error
		if cb, err = arrecadacao.NewCodBarras(input); err != nil {
			return nil, err
		}
	case arrecadacao.LinhaDigitavelLength:
		ld, err := arrecadacao.NewLinhaDigitavel(input)
		if err != nil {
			return nil, err
		}
		cb = ld.CodBarras()
	default:
		return nil, types.ErrInvalidLength
	}

	tipo, err := cb.TipoValor()
	if err != nil {
		return nil, err
	}

	// The general digit sits inside block 1, so it goes in before the block
	// digits are computed.
	cb = cb.WithDigitoVerificador(tipo)
	campos := cb.DigitosCampos(tipo)

	return &Verificacao{
		Tipo:           types.TipoArrecadacao,
		DVGeral:        cb[3] - '0',
		DVCampos:       campos[:],
		CodBarras:      cb.String(),
		LinhaDigitavel: cb.LinhaDigitavel(tipo).String(),
	}, nil
}
