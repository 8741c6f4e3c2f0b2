// =============================================================================
// Boleto Utils - Checksum Engine
// =============================================================================
//
// Weighted-digit check digit algorithms used by both slip families.
//
// Both functions take the digits as one or more byte slices of ASCII digits.
// The slices are treated as a single concatenated sequence, which lets callers
// skip the check digit position without copying (e.g. barcode[:4] and
// barcode[5:]). Digits are weighted from the rightmost one.
//
// The returned check digits are numeric values (0-9), not ASCII.
//
// =============================================================================

package checksum

// Mod10 computes the modulo-10 check digit.
//
// Weights alternate 2,1,2,1,... starting at 2 for the rightmost digit. A
// weighted product above 9 contributes the sum of its decimal digits. The
// result is (10 - sum%10) % 10, so Mod10 always yields a digit.
func Mod10(parts ...[]byte) byte {
	sum := 0
	weight := 2

	forEachFromRight(parts, func(d int) {
		p := d * weight
		if p > 9 {
			p -= 9
		}
		sum += p

		if weight == 2 {
			weight = 1
		} else {
			weight = 2
		}
	})

	return byte((10 - sum%10) % 10)
}

// Mod11 computes the modulo-11 check digit.
//
// Weights cycle 2,3,...,9,2,3,... starting at 2 for the rightmost digit. The
// raw result is 11 - sum%11. Raw results of 10 and 11 have no check digit and
// ok is false; callers substitute their own default (the cobrança general
// digit uses 1, per-field digits use 0).
func Mod11(parts ...[]byte) (digit byte, ok bool) {
	sum := 0
	weight := 2

	forEachFromRight(parts, func(d int) {
		sum += d * weight

		weight++
		if weight > 9 {
			weight = 2
		}
	})

	raw := 11 - sum%11
	if raw >= 10 {
		return 0, false
	}
	return byte(raw), true
}

// Mod11Or returns Mod11 of parts, or fallback when the result is undefined.
func Mod11Or(fallback byte, parts ...[]byte) byte {
	if d, ok := Mod11(parts...); ok {
		return d
	}
	return fallback
}

// ASCII converts a numeric check digit into its ASCII form.
func ASCII(d byte) byte {
	return '0' + d
}

// forEachFromRight visits every digit of the concatenated parts, last part
// first and each part right to left.
func forEachFromRight(parts [][]byte, fn func(d int)) {
	for i := len(parts) - 1; i >= 0; i-- {
		part := parts[i]
		for j := len(part) - 1; j >= 0; j-- {
			fn(int(part[j] - '0'))
		}
	}
}
