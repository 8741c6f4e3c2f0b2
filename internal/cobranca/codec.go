// =============================================================================
// Boleto Utils - Cobrança Field Codec
// =============================================================================
//
// Byte-offset mapping between the 44-digit barcode and the 47-digit digitable
// line of bank collection slips.
//
// BARCODE LAYOUT:
//   00000000001111111111222222222233333333334444
//   01234567890123456789012345678901234567890123
//   AAABKUUUUVVVVVVVVVVCCCCCDDDDDDDDDDEEEEEEEEEE
//
// DIGITABLE LINE LAYOUT:
//   00000 00000 11111 111112 22222 222233 3 33333334444444
//   01234.56789 01234.567890 12345.678901 2 34567890123456
//   AAABC.CCCCX DDDDD.DDDDDY EEEEE.EEEEEZ K UUUUVVVVVVVVVV
//
//   A = bank, B = currency, K = general check digit, U = due-date factor,
//   V = amount, C/D/E = free field, X/Y/Z = per-field check digits.
//
// =============================================================================

package cobranca

import (
	"github.com/ginjaninja78/boleto-utils/internal/checksum"
	"github.com/ginjaninja78/boleto-utils/internal/types"
)

const (
	// CodBarrasLength is the length of a cobrança barcode.
	CodBarrasLength = 44
	// LinhaDigitavelLength is the length of a cobrança digitable line.
	LinhaDigitavelLength = 47

	posDV = 4
)

// Offsets of the per-field check digits inside the digitable line.
var posDVCampos = [3]int{9, 20, 31}

// =============================================================================
// RAW CODEC
// =============================================================================

// ToLinhaDigitavel maps a barcode to its digitable line, computing the three
// per-field check digits. Only the length is checked.
func ToLinhaDigitavel(barcode []byte) ([]byte, error) {
	if len(barcode) != CodBarrasLength {
		return nil, types.ErrInvalidLength
	}

	line := make([]byte, LinhaDigitavelLength)

	// Campo 1
	copy(line[0:4], barcode[0:4])
	copy(line[4:9], barcode[19:24])
	line[9] = checksum.ASCII(checksum.Mod10(line[0:9]))

	// Campo 2
	copy(line[10:20], barcode[24:34])
	line[20] = checksum.ASCII(checksum.Mod10(line[10:20]))

	// Campo 3
	copy(line[21:31], barcode[34:44])
	line[31] = checksum.ASCII(checksum.Mod10(line[21:31]))

	// DV geral
	line[32] = barcode[posDV]

	// Campo 4
	copy(line[33:47], barcode[5:19])

	return line, nil
}

// ToCodBarras maps a digitable line back to its barcode. The per-field check
// digits are dropped; only the length is checked.
func ToCodBarras(line []byte) ([]byte, error) {
	if len(line) != LinhaDigitavelLength {
		return nil, types.ErrInvalidLength
	}

	barcode := make([]byte, CodBarrasLength)
	copy(barcode[0:4], line[0:4])
	copy(barcode[4:19], line[32:47])
	copy(barcode[19:24], line[4:9])
	copy(barcode[24:34], line[10:20])
	copy(barcode[34:44], line[21:31])

	return barcode, nil
}

// =============================================================================
// VALIDATED REPRESENTATIONS
// =============================================================================

// CodBarras is a 44-digit cobrança barcode. Values built by NewCodBarras only
// contain ASCII digits and never start with '8'.
type CodBarras [CodBarrasLength]byte

// NewCodBarras validates input as a cobrança barcode.
func NewCodBarras(input []byte) (CodBarras, error) {
	var cb CodBarras
	if err := validate(input, CodBarrasLength); err != nil {
		return cb, err
	}
	copy(cb[:], input)
	return cb, nil
}

// String returns the barcode digits.
func (cb CodBarras) String() string {
	return string(cb[:])
}

// DigitoVerificador computes the general check digit: modulo 11 over every
// position except 4, with 1 when the result is undefined.
func (cb CodBarras) DigitoVerificador() byte {
	return checksum.Mod11Or(1, cb[:posDV], cb[posDV+1:])
}

// DigitosCampos computes the three per-field check digits of the matching
// digitable line.
func (cb CodBarras) DigitosCampos() [3]byte {
	line := cb.LinhaDigitavel()
	return [3]byte{
		checksum.Mod10(line[0:9]),
		checksum.Mod10(line[10:20]),
		checksum.Mod10(line[21:31]),
	}
}

// WithDigitoVerificador returns a copy of the barcode with the general check
// digit recomputed.
func (cb CodBarras) WithDigitoVerificador() CodBarras {
	cb[posDV] = checksum.ASCII(cb.DigitoVerificador())
	return cb
}

// LinhaDigitavel derives the digitable line.
func (cb CodBarras) LinhaDigitavel() LinhaDigitavel {
	var ld LinhaDigitavel
	raw, _ := ToLinhaDigitavel(cb[:])
	copy(ld[:], raw)
	return ld
}

// LinhaDigitavel is a 47-digit cobrança digitable line. Values built by
// NewLinhaDigitavel only contain ASCII digits and never start with '8'.
type LinhaDigitavel [LinhaDigitavelLength]byte

// NewLinhaDigitavel validates input as a cobrança digitable line.
func NewLinhaDigitavel(input []byte) (LinhaDigitavel, error) {
	var ld LinhaDigitavel
	if err := validate(input, LinhaDigitavelLength); err != nil {
		return ld, err
	}
	copy(ld[:], input)
	return ld, nil
}

// String returns the digitable line digits.
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

// DigitosCampos returns the three per-field check digits stored in the line.
func (ld LinhaDigitavel) DigitosCampos() [3]byte {
	var out [3]byte
	for i, pos := range posDVCampos {
		out[i] = ld[pos] - '0'
	}
	return out
}

// validate applies the checks shared by both representations: length, digits
// only, then the family tag.
func validate(input []byte, length int) error {
	if len(input) != length {
		return types.ErrInvalidLength
	}
	if !types.OnlyDigits(input) {
		return types.ErrNumbersOnly
	}
	if input[0] == '8' {
		return types.ErrInvalidCobrancaBarcode
	}
	return nil
}
