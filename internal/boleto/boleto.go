// =============================================================================
// Boleto Utils - Dispatcher
// =============================================================================
//
// Entry point for decoding any boleto code. The family is chosen from the
// leading digit alone: '8' selects the arrecadação pipeline, anything else
// selects the cobrança pipeline. Errors from the pipelines are returned
// unchanged, so callers can match them with errors.Is against the sentinels
// in the types package.
//
// CONCURRENCY:
//   A Decoder holds no mutable state after construction and can be shared
//   between goroutines as long as its directories are read-only.
//
// =============================================================================

package boleto

import (
	"strings"

	"go.uber.org/zap"

	"github.com/ginjaninja78/boleto-utils/internal/arrecadacao"
	"github.com/ginjaninja78/boleto-utils/internal/cobranca"
	"github.com/ginjaninja78/boleto-utils/internal/types"
)

// =============================================================================
// RECORD
// =============================================================================

// Boleto is a decoded code of either family. Exactly one of Cobranca and
// Arrecadacao is set, matching Tipo.
type Boleto struct {
	Tipo        types.Tipo
	Cobranca    *cobranca.Cobranca
	Arrecadacao *arrecadacao.Arrecadacao
}

// CodBarras returns the barcode digits.
func (b *Boleto) CodBarras() string {
	if b.Tipo == types.TipoArrecadacao {
		return b.Arrecadacao.CodBarras.String()
	}
	return b.Cobranca.CodBarras.String()
}

// LinhaDigitavel returns the digitable line digits.
func (b *Boleto) LinhaDigitavel() string {
	if b.Tipo == types.TipoArrecadacao {
		return b.Arrecadacao.LinhaDigitavel.String()
	}
	return b.Cobranca.LinhaDigitavel.String()
}

// =============================================================================
// DECODER
// =============================================================================

// Decoder dispatches codes to the family parsers.
type Decoder struct {
	cobranca    *cobranca.Parser
	arrecadacao *arrecadacao.Parser

	// resolving is set when a directory is configured, so that misses are
	// worth logging.
	resolvingBancos    bool
	resolvingConvenios bool

	logger *zap.Logger
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Decoder) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDecoder creates a Decoder. Either directory may be nil, in which case
// names are left unresolved.
func NewDecoder(bancos types.BankDirectory, convenios types.AgreementDirectory, opts ...Option) *Decoder {
	d := &Decoder{
		cobranca:           cobranca.NewParser(bancos),
		arrecadacao:        arrecadacao.NewParser(convenios),
		resolvingBancos:    bancos != nil,
		resolvingConvenios: convenios != nil,
		logger:             zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Parse decodes input with a Decoder that has no directories.
func Parse(input []byte) (*Boleto, error) {
	return NewDecoder(nil, nil).Parse(input)
}

// Parse decodes a barcode or a digitable line of either family.
func (d *Decoder) Parse(input []byte) (*Boleto, error) {
	if len(input) == 0 {
		return nil, types.ErrInvalidLength
	}

	tipo := types.TipoFromInput(input)
	d.logger.Debug("decoding boleto",
		zap.Stringer("tipo", tipo),
		zap.Int("length", len(input)))

	switch tipo {
	case types.TipoArrecadacao:
		rec, err := d.arrecadacao.Parse(input)
		if err != nil {
			return nil, err
		}
		if d.resolvingConvenios && !rec.Convenio.Carne && !rec.Convenio.Resolvido() {
			d.logger.Debug("convênio not found",
				zap.Int("segmento", rec.Segmento.Codigo()),
				zap.String("codigo", rec.Convenio.Codigo))
		}
		return &Boleto{Tipo: tipo, Arrecadacao: rec}, nil

	default:
		rec, err := d.cobranca.Parse(input)
		if err != nil {
			return nil, err
		}
		if d.resolvingBancos && rec.NomeBanco == "" {
			d.logger.Debug("bank not found", zap.Stringer("codigo", rec.CodBanco))
		}
		return &Boleto{Tipo: tipo, Cobranca: rec}, nil
	}
}

// Gerar builds a cobrança slip with b and decodes it with the bank directory
// of d.
func (d *Decoder) Gerar(b *cobranca.Builder) (*Boleto, error) {
	rec, err := b.Build(d.cobranca)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("boleto generated", zap.String("cod_barras", rec.CodBarras.String()))
	return &Boleto{Tipo: types.TipoCobranca, Cobranca: rec}, nil
}

// =============================================================================
// INPUT NORMALIZATION
// =============================================================================

// Normalize removes the separators people type or copy along with a
// digitable line ("23790.12345 60000.000000 ..."). Any other non-digit byte is
// kept, so the parsers still reject it.
func Normalize(input string) []byte {
	return []byte(strings.Map(func(r rune) rune {
		switch r {
		case ' ', '.', '-', '\t', '\n', '\r':
			return -1
		}
		return r
	}, input))
}
