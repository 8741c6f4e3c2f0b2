// Package vencimento converts between the 4-digit due-date factor carried by
// cobrança barcodes and calendar dates.
//
// The factor counts days from a base date. It ran out at 9999 (2025-02-21)
// and restarted at 1000 the next day, so two bases are in use:
//
//	factor 1000..4468  days since 2022-05-29  (2025-02-22 .. 2034-08-22)
//	factor 4469..9999  days since 1997-10-07  (2010-01-01 .. 2025-02-21)
//
// Factor 0 means "no due date"; 1..999 are never valid.
package vencimento

import (
	"errors"
	"time"
)

const (
	// MinFator is the lowest valid non-zero factor.
	MinFator = 1000
	// MaxFator is the highest factor representable in four digits.
	MaxFator = 9999
	// fatorVirada is the first factor decoded against the older base.
	fatorVirada = 4469
)

var (
	baseAntiga = time.Date(1997, time.October, 7, 0, 0, 0, 0, time.UTC)
	baseNova   = time.Date(2022, time.May, 29, 0, 0, 0, 0, time.UTC)
)

// ErrForaDaFaixa is returned by FromDate for dates no factor can represent.
var ErrForaDaFaixa = errors.New("data de vencimento fora da faixa representável")

// ToDate returns the due date for a factor. ok is false for factor 0 and for
// factors outside 1000..9999.
func ToDate(fator int) (date time.Time, ok bool) {
	switch {
	case fator < MinFator || fator > MaxFator:
		return time.Time{}, false
	case fator < fatorVirada:
		return baseNova.AddDate(0, 0, fator), true
	default:
		return baseAntiga.AddDate(0, 0, fator), true
	}
}

// FromDate returns the factor for a due date. Only the calendar day of date
// is considered.
func FromDate(date time.Time) (int, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	if fator := daysBetween(baseAntiga, day); fator >= fatorVirada && fator <= MaxFator {
		return fator, nil
	}
	if fator := daysBetween(baseNova, day); fator >= MinFator && fator < fatorVirada {
		return fator, nil
	}
	return 0, ErrForaDaFaixa
}

// daysBetween counts whole days from a to b. Both are UTC midnights, so the
// division is exact.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
