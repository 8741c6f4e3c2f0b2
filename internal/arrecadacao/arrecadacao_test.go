package arrecadacao

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/boleto-utils/internal/types"
)

type fakeConvenios map[[2]int]string

func (f fakeConvenios) NomeConvenio(segmento, codigo int) (string, bool) {
	nome, ok := f[[2]int{segmento, codigo}]
	return nome, ok
}

func TestParseSegmento(t *testing.T) {
	tests := []struct {
		barcode string
		line    string
		want    Segmento
	}{
		{"81675555555555566667777777777777777777777777", "816755555553555566667773777777777775777777777775", Prefeituras},
		{"82665555555555566667777777777777777777777777", "826655555553555566667773777777777775777777777775", Saneamento},
		{"83655555555555566667777777777777777777777777", "836555555553555566667773777777777775777777777775", EnergiaEletricaEGas},
		{"84645555555555566667777777777777777777777777", "846455555553555566667773777777777775777777777775", Telecomunicacoes},
		{"85635555555555566667777777777777777777777777", "856355555553555566667773777777777775777777777775", OrgaosGovernamentais},
		{"86625555555555566667777777777777777777777777", "866255555553555566667773777777777775777777777775", Carnes},
		{"87615555555555566667777777777777777777777777", "876155555553555566667773777777777775777777777775", MultasTransito},
		{"89695555555555566667777777777777777777777777", "896955555553555566667773777777777775777777777775", ExclusivoDoBanco},
	}
	for _, tt := range tests {
		rec, err := Parse([]byte(tt.barcode))
		require.NoError(t, err, tt.barcode)
		assert.Equal(t, tt.want, rec.Segmento)

		rec, err = Parse([]byte(tt.line))
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.want, rec.Segmento)
	}

	for _, invalid := range []string{
		"88605555555555566667777777777777777777777777",
		"886055555553555566667773777777777775777777777775",
	} {
		_, err := Parse([]byte(invalid))
		assert.ErrorIs(t, err, types.ErrInvalidSegmento, invalid)
	}
}

func TestSegmentoNames(t *testing.T) {
	assert.Equal(t, "Prefeituras", Prefeituras.String())
	assert.Equal(t, "Energia elétrica e gás", EnergiaEletricaEGas.String())
	assert.Equal(t, "Uso exclusivo do banco emissor", ExclusivoDoBanco.String())
	assert.Equal(t, 9, ExclusivoDoBanco.Codigo())
	assert.Equal(t, 1, Prefeituras.Codigo())
}

func TestParseTipoValor(t *testing.T) {
	tests := []struct {
		input string
		want  TipoValor
	}{
		{"86625555555555566667777777777777777777777777", ValorReaisMod10},
		{"86705555555555566667777777777777777777777777", QtdeMoedaMod10},
		{"86805555555555566667777777777777777777777777", ValorReaisMod11},
		{"86995555555555566667777777777777777777777777", QtdeMoedaMod11},
		{"866255555553555566667773777777777775777777777775", ValorReaisMod10},
		{"867055555553555566667773777777777775777777777775", QtdeMoedaMod10},
		{"868055555551555566667770777777777773777777777773", ValorReaisMod11},
		{"869955555556555566667770777777777773777777777773", QtdeMoedaMod11},
	}
	for _, tt := range tests {
		rec, err := Parse([]byte(tt.input))
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, rec.TipoValor, tt.input)
	}

	for _, invalid := range []string{
		"86105555555555566667777777777777777777777777",
		"86205555555555566667777777777777777777777777",
		"86305555555555566667777777777777777777777777",
		"86405555555555566667777777777777777777777777",
		"86505555555555566667777777777777777777777777",
		"861055555553555566667773777777777775777777777775",
		"862055555553555566667773777777777775777777777775",
		"863055555553555566667773777777777775777777777775",
		"864055555553555566667773777777777775777777777775",
		"865055555553555566667773777777777775777777777775",
	} {
		_, err := Parse([]byte(invalid))
		assert.ErrorIs(t, err, types.ErrInvalidTipoValor, invalid)
	}
}

func TestTipoValorProperties(t *testing.T) {
	assert.True(t, ValorReaisMod10.EmReais())
	assert.True(t, ValorReaisMod11.EmReais())
	assert.False(t, QtdeMoedaMod10.EmReais())
	assert.False(t, QtdeMoedaMod11.EmReais())

	assert.True(t, ValorReaisMod10.Modulo10())
	assert.True(t, QtdeMoedaMod10.Modulo10())
	assert.False(t, ValorReaisMod11.Modulo10())
	assert.False(t, QtdeMoedaMod11.Modulo10())
}

func TestParseValor(t *testing.T) {
	tests := []struct {
		barcode string
		want    string
	}{
		{"86625555555555566667777777777777777777777777", "555555555.55"},
		{"86689999999999966667777777777777777777777777", "999999999.99"},
		{"86651000000000166667777777777777777777777777", "100000000.01"},
		{"86660000000000166667777777777777777777777777", "0.01"},
		{"86660000000010066667777777777777777777777777", "1"},
		{"86691234567890166667777777777777777777777777", "123456789.01"},
		{"83800000000570100310200140444030700008190320", "57.01"},
		{"83680000002158200060000010120204236635162731", "215.82"},
	}
	for _, tt := range tests {
		rec, err := Parse([]byte(tt.barcode))
		require.NoError(t, err, tt.barcode)
		require.True(t, rec.Valor.Valid, tt.barcode)
		assert.True(t, decimal.RequireFromString(tt.want).Equal(rec.Valor.Decimal), "got %s", rec.Valor.Decimal)
	}

	// Quantity types carry no amount in reais.
	rec, err := Parse([]byte("86670000000000066667777777777777777777777777"))
	require.NoError(t, err)
	assert.False(t, rec.Valor.Valid)

	rec, err = Parse([]byte("86995555555555566667777777777777777777777777"))
	require.NoError(t, err)
	assert.False(t, rec.Valor.Valid)
}

func TestParseConvenio(t *testing.T) {
	p := NewParser(fakeConvenios{
		{1, 6666}: "Prefeitura de Teste",
		{3, 31}:   "Companhia de Energia",
	})

	rec, err := p.Parse([]byte("81675555555555566667777777777777777777777777"))
	require.NoError(t, err)
	assert.Equal(t, Convenio{Codigo: "6666", Nome: "Prefeitura de Teste"}, rec.Convenio)
	assert.True(t, rec.Convenio.Resolvido())
	assert.Equal(t, "7777777777777777777777777", rec.CampoLivre())

	rec, err = p.Parse([]byte("83800000000570100310200140444030700008190320"))
	require.NoError(t, err)
	assert.Equal(t, "0031", rec.Convenio.Codigo)
	assert.Equal(t, "Companhia de Energia", rec.Convenio.Nome)

	// Same code under another segment is a different convênio.
	rec, err = p.Parse([]byte("82665555555555566667777777777777777777777777"))
	require.NoError(t, err)
	assert.False(t, rec.Convenio.Resolvido())
	assert.Equal(t, "6666", rec.Convenio.Codigo)

	rec, err = p.Parse([]byte("86625555555555566667777777777777777777777777"))
	require.NoError(t, err)
	assert.Equal(t, Convenio{Carne: true, Codigo: "66667777"}, rec.Convenio)
	assert.Equal(t, "777777777777777777777", rec.CampoLivre())
}

func TestParseDigitoVerificador(t *testing.T) {
	tests := []struct {
		barcode string
		want    byte
	}{
		{"83800000000570100310200140444030700008190320", 0},
		{"83680000002158200060000010120204236635162731", 8},
		{"84640000000959900820899988923054118633769199", 4},
		{"83650000000520801380013194136151108052494658", 5},
		{"81675555555555566667777777777777777777777777", 7},
	}
	for _, tt := range tests {
		rec, err := Parse([]byte(tt.barcode))
		require.NoError(t, err, tt.barcode)
		assert.Equal(t, tt.want, rec.DigitoVerificador, tt.barcode)
	}
}

func TestParseChecksumMismatch(t *testing.T) {
	for _, input := range []string{
		// general digit 7 changed to 8
		"81685555555555566667777777777777777777777777",
		// same change seen through the line
		"816855555553555566667773777777777775777777777775",
		// block 1 digit 3 changed to 4
		"816755555554555566667773777777777775777777777775",
		// block 4 digit 5 changed to 0
		"816755555553555566667773777777777775777777777770",
		// modulo 11 slip carrying the modulo 10 digit of block 2
		"868055555551555566667773777777777773777777777773",
	} {
		_, err := Parse([]byte(input))
		assert.ErrorIs(t, err, types.ErrInvalidDigitoVerificador, input)
	}
}

func TestParseInputValidation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"letters", strings.Repeat("A", 44), types.ErrNumbersOnly},
		{"letters line", strings.Repeat("A", 48), types.ErrNumbersOnly},
		{"cobranca tag", "75696903800002500001434301033723400014933001", types.ErrInvalidArrecadacaoBarcode},
		{"cobranca tag line", strings.Repeat("1", 48), types.ErrInvalidArrecadacaoBarcode},
		{"cobranca line length", "75691434360103372340200149330011690380000250000", types.ErrInvalidLength},
		{"empty", "", types.ErrInvalidLength},
		{"43", "8" + strings.Repeat("6", 42), types.ErrInvalidLength},
		{"45", "8" + strings.Repeat("6", 44), types.ErrInvalidLength},
		{"49", "8" + strings.Repeat("6", 48), types.ErrInvalidLength},
		{"trailing letter", "8167555555555556666777777777777777777777777X", types.ErrNumbersOnly},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseScenarioThree(t *testing.T) {
	rec, err := Parse([]byte("81675555555555566667777777777777777777777777"))
	require.NoError(t, err)

	assert.Equal(t, "816755555553555566667773777777777775777777777775", rec.LinhaDigitavel.String())
	assert.Equal(t, Prefeituras, rec.Segmento)
	assert.Equal(t, ValorReaisMod10, rec.TipoValor)
	assert.True(t, decimal.RequireFromString("555555555.55").Equal(rec.Valor.Decimal))
}

func TestParseIsIdempotentAcrossRepresentations(t *testing.T) {
	for _, in := range []string{
		"83800000000570100310200140444030700008190320",
		"81685555555555566667777777777777777777777777",
		"88605555555555566667777777777777777777777777",
		"86995555555555566667777777777777777777777777",
	} {
		line, err := ToLinhaDigitavel([]byte(in))
		require.NoError(t, err)

		fromBarcode, errBarcode := Parse([]byte(in))
		fromLine, errLine := Parse(line)
		assert.Equal(t, errBarcode, errLine, in)
		assert.Equal(t, fromBarcode, fromLine, in)
	}
}
