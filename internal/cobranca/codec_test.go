package cobranca

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/boleto-utils/internal/types"
)

// pairs of digitable line and barcode for the same slip.
var codecPairs = []struct {
	linha   string
	barcode string
}{
	{"75691434360103372340200149330011690380000250000", "75696903800002500001434301033723400014933001"},
	{"00190000090265697301993624706185166790000243479", "00191667900002434790000002656973019362470618"},
	{"00190000090246420601618160730182558620000077352", "00195586200000773520000002464206011816073018"},
	{"75590003318985076125825434759848289670000378700", "75592896700003787000003389850761252543475984"},
	{"23792028296970594417671052052207167200000324905", "23791672000003249052028269705944177105205220"},
	{"23792028036000702461975002490003167200000309790", "23791672000003097902028060007024617500249000"},
	{"00000000000000000000000000000000000000000000000", "00000000000000000000000000000000000000000000"},
}

func TestToLinhaDigitavel(t *testing.T) {
	for _, p := range codecPairs {
		got, err := ToLinhaDigitavel([]byte(p.barcode))
		require.NoError(t, err)
		assert.Equal(t, p.linha, string(got))
	}
}

func TestToCodBarras(t *testing.T) {
	for _, p := range codecPairs {
		got, err := ToCodBarras([]byte(p.linha))
		require.NoError(t, err)
		assert.Equal(t, p.barcode, string(got))
	}
}

func TestCodecRoundTrip(t *testing.T) {
	for _, p := range codecPairs {
		line, err := ToLinhaDigitavel([]byte(p.barcode))
		require.NoError(t, err)
		back, err := ToCodBarras(line)
		require.NoError(t, err)
		assert.Equal(t, p.barcode, string(back))

		barcode, err := ToCodBarras([]byte(p.linha))
		require.NoError(t, err)
		line, err = ToLinhaDigitavel(barcode)
		require.NoError(t, err)
		assert.Equal(t, p.linha, string(line))
	}
}

func TestCodecRejectsWrongLength(t *testing.T) {
	for _, n := range []int{0, 1, 43, 45, 47} {
		_, err := ToLinhaDigitavel(make([]byte, n))
		assert.ErrorIs(t, err, types.ErrInvalidLength, "barcode length %d", n)
	}
	for _, n := range []int{0, 1, 44, 46, 48} {
		_, err := ToCodBarras(make([]byte, n))
		assert.ErrorIs(t, err, types.ErrInvalidLength, "line length %d", n)
	}
}

func TestTypedRepresentations(t *testing.T) {
	cb, err := NewCodBarras([]byte("75696903800002500001434301033723400014933001"))
	require.NoError(t, err)

	ld := cb.LinhaDigitavel()
	assert.Equal(t, "75691434360103372340200149330011690380000250000", ld.String())
	assert.Equal(t, cb, ld.CodBarras())
	assert.Equal(t, [3]byte{6, 2, 1}, ld.DigitosCampos())
	assert.Equal(t, cb.DigitosCampos(), ld.DigitosCampos())
	assert.Equal(t, byte(6), cb.DigitoVerificador())

	_, err = NewCodBarras([]byte("81675555555555566667777777777777777777777777"))
	assert.ErrorIs(t, err, types.ErrInvalidCobrancaBarcode)

	_, err = NewLinhaDigitavel([]byte("75696903800002500001434301033723400014933001"))
	assert.ErrorIs(t, err, types.ErrInvalidLength)
}

func TestWithDigitoVerificador(t *testing.T) {
	cb, err := NewCodBarras([]byte("75690903800002500001434301033723400014933001"))
	require.NoError(t, err)

	fixed := cb.WithDigitoVerificador()
	assert.Equal(t, "75696903800002500001434301033723400014933001", fixed.String())
	// the receiver is a value and stays untouched
	assert.Equal(t, byte('0'), cb[4])
}
