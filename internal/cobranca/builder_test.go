package cobranca

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/boleto-utils/internal/vencimento"
)

func TestBuilderBasic(t *testing.T) {
	rec, err := NewBuilder().
		CodMoeda(MoedaReal).
		CodBanco(301).
		Valor(decimal.RequireFromString("99999999.99")).
		Vencimento(date(2023, 7, 29)).
		Build(nil)
	require.NoError(t, err)

	assert.Equal(t, "30198942699999999990000000000000000000000000", rec.CodBarras.String())
	assert.Equal(t, 9426, rec.FatorVencimento)
	assert.Equal(t, date(2023, 7, 29), rec.DataVencimento)
}

func TestBuilderWithoutDate(t *testing.T) {
	rec, err := NewBuilder().
		CodBanco(1).
		CodMoeda(MoedaReal).
		Valor(decimal.RequireFromString("214.03")).
		Build(NewParser(fakeBancos{1: "Banco do Brasil S.A."}))
	require.NoError(t, err)

	assert.Equal(t, "00191000000000214030000000000000000000000000", rec.CodBarras.String())
	assert.Equal(t, "00190000090000000000000000000000100000000021403", rec.LinhaDigitavel.String())
	assert.Equal(t, 0, rec.FatorVencimento)
	assert.False(t, rec.TemVencimento())
	assert.Equal(t, "Banco do Brasil S.A.", rec.NomeBanco)
}

func TestBuilderCampoLivreAndTruncation(t *testing.T) {
	rec, err := NewBuilder().
		CodBanco(237).
		CodMoeda(MoedaReal).
		Valor(decimal.RequireFromString("1500.009")).
		Vencimento(date(2026, 5, 12)).
		CampoLivre("1234567890123456789012345").
		Build(nil)
	require.NoError(t, err)

	assert.Equal(t, "23795144400001500001234567890123456789012345", rec.CodBarras.String())
	assert.Equal(t, "1234567890123456789012345", rec.CampoLivre())
}

func TestBuilderNoAmount(t *testing.T) {
	rec, err := NewBuilder().CodBanco(341).CodMoeda(MoedaOutras).Build(nil)
	require.NoError(t, err)

	assert.Equal(t, "34107000000000000000000000000000000000000000", rec.CodBarras.String())
	assert.False(t, rec.Valor.Valid)
}

func TestBuilderErrors(t *testing.T) {
	tests := []struct {
		name    string
		builder *Builder
		want    error
	}{
		{"missing bank", NewBuilder().CodMoeda(MoedaReal), ErrMissingCodBanco},
		{"missing currency", NewBuilder().CodBanco(1), ErrMissingCodMoeda},
		{"bank too large", NewBuilder().CodBanco(1000).CodMoeda(MoedaReal), ErrInvalidCodBanco},
		{"negative amount", NewBuilder().CodBanco(1).CodMoeda(MoedaReal).Valor(decimal.NewFromInt(-1)), ErrInvalidValor},
		{"amount too large", NewBuilder().CodBanco(1).CodMoeda(MoedaReal).Valor(decimal.NewFromInt(100000000)), ErrInvalidValor},
		{"short free field", NewBuilder().CodBanco(1).CodMoeda(MoedaReal).CampoLivre("123"), ErrInvalidCampoLivre},
		{"date out of range", NewBuilder().CodBanco(1).CodMoeda(MoedaReal).Vencimento(time.Date(2005, 1, 1, 0, 0, 0, 0, time.UTC)), vencimento.ErrForaDaFaixa},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build(nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBuilderOutputAlwaysParses(t *testing.T) {
	for banco := 0; banco < 800; banco += 37 {
		for _, v := range []string{"0.01", "1", "123.45", "99999999.99"} {
			cb, err := NewBuilder().
				CodBanco(banco).
				CodMoeda(MoedaReal).
				Valor(decimal.RequireFromString(v)).
				Vencimento(date(2027, 1, 15)).
				Barcode()
			require.NoError(t, err)

			rec, err := Parse(cb[:])
			require.NoError(t, err, cb.String())
			assert.Equal(t, CodBanco(banco), rec.CodBanco)
			assert.True(t, decimal.RequireFromString(v).Equal(rec.Valor.Decimal))
		}
	}
}
