// =============================================================================
// Boleto Utils - Arrecadação Field Codec
// =============================================================================
//
// Byte-offset mapping between the 44-digit barcode and the 48-digit digitable
// line of utility and tax collection slips.
//
// BARCODE LAYOUT:
//   00000000001 11111111122 22222222333 33333334444
//   01234567890 12345678901 23456789012 34567890123
//   ASTDVVVVVVV VVVVCCCCLLL LLLLLLLLLLL LLLLLLLLLLL
//
// DIGITABLE LINE LAYOUT:
//   00000000001-1 11111111222-2 22222233333-3 33334444444-4
//   01234567890-1 23456789012-3 45678901234-5 67890123456-7
//   ASTDVVVVVVV-W VVVVCCCCLLL-X LLLLLLLLLLL-Y LLLLLLLLLLL-Z
//
//   A = '8', S = segment, T = value type, D = general check digit,
//   V = amount, C = convênio, L = free field, W/X/Y/Z = block check digits.
//
// The value type selects the checksum used for every check digit of the
// slip: modulo 10 for types 6 and 7, modulo 11 (undefined => 0) for 8 and 9.
// The barcode to line direction therefore needs a valid value type.
//
// =============================================================================

package arrecadacao

import (
	"github.com/ginjaninja78/boleto-utils/internal/checksum"
	"github.com/ginjaninja78/boleto-utils/internal/types"
)

const (
	// CodBarrasLength is the length of an arrecadação barcode.
	CodBarrasLength = 44
	// LinhaDigitavelLength is the length of an arrecadação digitable line.
	LinhaDigitavelLength = 48

	posSegmento = 1
	posTipo     = 2
	posDV       = 3

	blockLength = 11
)

// Offsets of the block check digits inside the digitable line.
var posDVCampos = [4]int{11, 23, 35, 47}

// =============================================================================
// RAW CODEC
// =============================================================================

// ToLinhaDigitavel maps a barcode to its digitable line, computing the four
// block check digits with the checksum selected by the value type.
func ToLinhaDigitavel(barcode []byte) ([]byte, error) {
	if len(barcode) != CodBarrasLength {
		return nil, types.ErrInvalidLength
	}
	tipo, err := ParseTipoValor(barcode[posTipo])
	if err != nil {
		return nil, err
	}

	line := make([]byte, LinhaDigitavelLength)
	for i := 0; i < 4; i++ {
		src := barcode[i*blockLength : (i+1)*blockLength]
		dst := i * (blockLength + 1)
		copy(line[dst:dst+blockLength], src)
		line[dst+blockLength] = checksum.ASCII(tipo.digito(src))
	}

	return line, nil
}

// ToCodBarras maps a digitable line back to its barcode by dropping the block
// check digits. Only the length is checked.
func ToCodBarras(line []byte) ([]byte, error) {
	if len(line) != LinhaDigitavelLength {
		return nil, types.ErrInvalidLength
	}

	barcode := make([]byte, CodBarrasLength)
	for i := 0; i < 4; i++ {
		src := i * (blockLength + 1)
		copy(barcode[i*blockLength:(i+1)*blockLength], line[src:src+blockLength])
	}

	return barcode, nil
}

// =============================================================================
// VALIDATED REPRESENTATIONS
// =============================================================================

// CodBarras is a 44-digit arrecadação barcode. Values built by NewCodBarras
// only contain ASCII digits and start with '8'.
type CodBarras [CodBarrasLength]byte

// NewCodBarras validates input as an arrecadação barcode.
func NewCodBarras(input []byte) (CodBarras, error) {
	var cb CodBarras
	if err := validate(input, CodBarrasLength); err != nil {
		return cb, err
	}
	copy(cb[:], input)
	return cb, nil
}

func (cb CodBarras) String() string {
	return string(cb[:])
}

// TipoValor decodes the value type digit.
func (cb CodBarras) TipoValor() (TipoValor, error) {
	return ParseTipoValor(cb[posTipo])
}

// Segmento decodes the segment digit.
func (cb CodBarras) Segmento() (Segmento, error) {
	return ParseSegmento(cb[posSegmento])
}

// DigitoVerificador computes the general check digit over every position
// except 3.
func (cb CodBarras) DigitoVerificador(tipo TipoValor) byte {
	return tipo.digito(cb[:posDV], cb[posDV+1:])
}

// DigitosCampos computes the four block check digits.
func (cb CodBarras) DigitosCampos(tipo TipoValor) [4]byte {
	var out [4]byte
	for i := range out {
		out[i] = tipo.digito(cb[i*blockLength : (i+1)*blockLength])
	}
	return out
}

// WithDigitoVerificador returns a copy of the barcode with the general check
// digit recomputed.
func (cb CodBarras) WithDigitoVerificador(tipo TipoValor) CodBarras {
	cb[posDV] = checksum.ASCII(cb.DigitoVerificador(tipo))
	return cb
}

// LinhaDigitavel derives the digitable line.
func (cb CodBarras) LinhaDigitavel(tipo TipoValor) LinhaDigitavel {
	var ld LinhaDigitavel
	digits := cb.DigitosCampos(tipo)
	for i := 0; i < 4; i++ {
		dst := i * (blockLength + 1)
		copy(ld[dst:dst+blockLength], cb[i*blockLength:(i+1)*blockLength])
		ld[dst+blockLength] = checksum.ASCII(digits[i])
	}
	return ld
}

// LinhaDigitavel is a 48-digit arrecadação digitable line.
type LinhaDigitavel [LinhaDigitavelLength]byte

// NewLinhaDigitavel validates input as an arrecadação digitable line.
func NewLinhaDigitavel(input []byte) (LinhaDigitavel, error) {
	var ld LinhaDigitavel
	if err := validate(input, LinhaDigitavelLength); err != nil {
		return ld, err
	}
	copy(ld[:], input)
	return ld, nil
}

func (ld LinhaDigitavel) String() string {
	return string(ld[:])
}

// CodBarras derives the barcode.
func (ld LinhaDigitavel) CodBarras() CodBarras {
	var cb CodBarras
	raw, _ := ToCodBarras(ld[:])
	copy(cb[:], raw)
	return cb
}

// DigitosCampos returns the four block check digits stored in the line.
func (ld LinhaDigitavel) DigitosCampos() [4]byte {
	var out [4]byte
	for i, pos := range posDVCampos {
		out[i] = ld[pos] - '0'
	}
	return out
}

func validate(input []byte, length int) error {
	if len(input) != length {
		return types.ErrInvalidLength
	}
	if !types.OnlyDigits(input) {
		return types.ErrNumbersOnly
	}
	if input[0] != '8' {
		return types.ErrInvalidArrecadacaoBarcode
	}
	return nil
}
