package boleto

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ginjaninja78/boleto-utils/internal/arrecadacao"
	"github.com/ginjaninja78/boleto-utils/internal/cobranca"
	"github.com/ginjaninja78/boleto-utils/internal/types"
)

type fakeBancos map[int]string

func (f fakeBancos) NomeBanco(codigo int) (string, bool) {
	nome, ok := f[codigo]
	return nome, ok
}

type fakeConvenios map[[2]int]string

func (f fakeConvenios) NomeConvenio(segmento, codigo int) (string, bool) {
	nome, ok := f[[2]int{segmento, codigo}]
	return nome, ok
}

func TestParseScenarios(t *testing.T) {
	t.Run("cobranca barcode", func(t *testing.T) {
		b, err := Parse([]byte("11191444455555555556666666666666666666666666"))
		require.NoError(t, err)
		require.Equal(t, types.TipoCobranca, b.Tipo)
		require.NotNil(t, b.Cobranca)
		assert.Nil(t, b.Arrecadacao)

		c := b.Cobranca
		assert.Equal(t, cobranca.CodBanco(111), c.CodBanco)
		assert.Equal(t, cobranca.MoedaReal, c.CodMoeda)
		assert.True(t, decimal.RequireFromString("55555555.55").Equal(c.Valor.Decimal))
		assert.Equal(t, 4444, c.FatorVencimento)
		assert.Equal(t, time.Date(2034, 7, 29, 0, 0, 0, 0, time.UTC), c.DataVencimento)
		assert.Equal(t, byte(1), c.DigitoVerificador)
	})

	t.Run("cobranca with digitable line", func(t *testing.T) {
		b, err := Parse([]byte("75696903800002500001434301033723400014933001"))
		require.NoError(t, err)
		assert.Equal(t, 9038, b.Cobranca.FatorVencimento)
		assert.Equal(t, byte(6), b.Cobranca.DigitoVerificador)
		assert.Equal(t, "75691434360103372340200149330011690380000250000", b.LinhaDigitavel())
		assert.Equal(t, "75696903800002500001434301033723400014933001", b.CodBarras())
	})

	t.Run("arrecadacao", func(t *testing.T) {
		b, err := Parse([]byte("81675555555555566667777777777777777777777777"))
		require.NoError(t, err)
		require.Equal(t, types.TipoArrecadacao, b.Tipo)
		require.NotNil(t, b.Arrecadacao)
		assert.Nil(t, b.Cobranca)
		assert.Equal(t, arrecadacao.Prefeituras, b.Arrecadacao.Segmento)
		assert.Equal(t, "816755555553555566667773777777777775777777777775", b.LinhaDigitavel())

		back, err := Parse([]byte(b.LinhaDigitavel()))
		require.NoError(t, err)
		assert.Equal(t, "81675555555555566667777777777777777777777777", back.CodBarras())
	})

	t.Run("letters", func(t *testing.T) {
		_, err := Parse([]byte(strings.Repeat("A", 44)))
		assert.ErrorIs(t, err, types.ErrNumbersOnly)
	})

	t.Run("45 zeros", func(t *testing.T) {
		_, err := Parse([]byte(strings.Repeat("0", 45)))
		assert.ErrorIs(t, err, types.ErrInvalidLength)
	})
}

func TestParseRejectsBadLengths(t *testing.T) {
	for _, n := range []int{0, 1, 43, 45, 46, 49} {
		_, err := Parse([]byte(strings.Repeat("1", n)))
		assert.ErrorIs(t, err, types.ErrInvalidLength, "cobranca length %d", n)

		if n > 0 {
			_, err = Parse([]byte("8" + strings.Repeat("6", n-1)))
			assert.ErrorIs(t, err, types.ErrInvalidLength, "arrecadacao length %d", n)
		}
	}

	// 47 digits only exist for cobrança and 48 only for arrecadação.
	_, err := Parse([]byte("8" + strings.Repeat("6", 46)))
	assert.ErrorIs(t, err, types.ErrInvalidLength)
	_, err = Parse([]byte(strings.Repeat("1", 48)))
	assert.ErrorIs(t, err, types.ErrInvalidLength)
}

func TestDecoderResolvesNames(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	d := NewDecoder(
		fakeBancos{756: "Sicoob"},
		fakeConvenios{{1, 6666}: "Prefeitura de Teste"},
		WithLogger(zap.New(core)),
	)

	b, err := d.Parse([]byte("75696903800002500001434301033723400014933001"))
	require.NoError(t, err)
	assert.Equal(t, "Sicoob", b.Cobranca.NomeBanco)

	b, err = d.Parse([]byte("81675555555555566667777777777777777777777777"))
	require.NoError(t, err)
	assert.Equal(t, "Prefeitura de Teste", b.Arrecadacao.Convenio.Nome)

	assert.Zero(t, logs.FilterMessage("bank not found").Len())
	assert.Zero(t, logs.FilterMessage("convênio not found").Len())

	_, err = d.Parse([]byte("11191444455555555556666666666666666666666666"))
	require.NoError(t, err)
	_, err = d.Parse([]byte("82665555555555566667777777777777777777777777"))
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("bank not found").Len())
	assert.Equal(t, 1, logs.FilterMessage("convênio not found").Len())
	assert.Equal(t, 4, logs.FilterMessage("decoding boleto").Len())
}

func TestDecoderWithoutDirectoriesDoesNotLogMisses(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	d := NewDecoder(nil, nil, WithLogger(zap.New(core)))

	_, err := d.Parse([]byte("11191444455555555556666666666666666666666666"))
	require.NoError(t, err)
	assert.Zero(t, logs.FilterMessage("bank not found").Len())
}

func TestParseReturnsPipelineErrorsUnchanged(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"11181444455555555556666666666666666666666666", types.ErrInvalidCodigoMoeda},
		{"75697903800002500001434301033723400014933001", types.ErrInvalidDigitoVerificadorGeral},
		{"75691434370103372340200149330011690380000250000", types.ErrInvalidDigitoVerificadorCampos},
		{"11196000155555555556666666666666666666666666", types.ErrInvalidFatorVencimento},
		{"81685555555555566667777777777777777777777777", types.ErrInvalidDigitoVerificador},
		{"88605555555555566667777777777777777777777777", types.ErrInvalidSegmento},
		{"86105555555555566667777777777777777777777777", types.ErrInvalidTipoValor},
	}
	for _, tt := range tests {
		_, err := Parse([]byte(tt.input))
		assert.Equal(t, tt.want, err, tt.input)
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize("75691.43436 01033.723402 00149.330011 6 90380000250000\n")
	assert.Equal(t, "75691434360103372340200149330011690380000250000", string(got))

	b, err := Parse(got)
	require.NoError(t, err)
	assert.Equal(t, types.TipoCobranca, b.Tipo)

	// Letters survive so the parser can reject them.
	assert.Equal(t, "12A4", string(Normalize("12-A.4")))
}

func TestGerar(t *testing.T) {
	d := NewDecoder(fakeBancos{301: "Banco Teste"}, nil)

	b, err := d.Gerar(cobranca.NewBuilder().
		CodBanco(301).
		CodMoeda(cobranca.MoedaReal).
		Valor(decimal.RequireFromString("99999999.99")).
		Vencimento(time.Date(2023, 7, 29, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, types.TipoCobranca, b.Tipo)
	assert.Equal(t, "30198942699999999990000000000000000000000000", b.CodBarras())
	assert.Equal(t, "Banco Teste", b.Cobranca.NomeBanco)

	_, err = d.Gerar(cobranca.NewBuilder().CodMoeda(cobranca.MoedaReal))
	assert.ErrorIs(t, err, cobranca.ErrMissingCodBanco)
}
