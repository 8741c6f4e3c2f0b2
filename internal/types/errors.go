package types

import "errors"

// =============================================================================
// DECODING ERRORS
// =============================================================================
// Every error below describes malformed or inconsistent input. None of them
// is transient, so callers should never retry. Compare with errors.Is.

var (
	// ErrNumbersOnly is returned when the input contains a non-digit byte.
	ErrNumbersOnly = errors.New("deve conter apenas números")

	// ErrInvalidLength is returned when the input length matches neither the
	// barcode nor the digitable line of the selected family.
	ErrInvalidLength = errors.New("tamanho inválido")

	// ErrInvalidCodigoMoeda is returned when a cobrança currency digit is
	// neither '9' nor '0'.
	ErrInvalidCodigoMoeda = errors.New("código moeda inválido")

	// ErrInvalidDigitoVerificadorGeral is returned when the general check
	// digit of a cobrança barcode does not match.
	ErrInvalidDigitoVerificadorGeral = errors.New("dígito verificador geral inválido")

	// ErrInvalidDigitoVerificadorCampos is returned when one of the three
	// per-field check digits of a cobrança digitable line does not match.
	ErrInvalidDigitoVerificadorCampos = errors.New("dígito verificador de campos inválido")

	// ErrInvalidDigitoVerificador is returned when any arrecadação check
	// digit, general or per-field, does not match.
	ErrInvalidDigitoVerificador = errors.New("dígito verificador inválido")

	// ErrInvalidFatorVencimento is returned for due-date factors in 1..999.
	ErrInvalidFatorVencimento = errors.New("fator de vencimento inválido")

	// ErrInvalidCobrancaBarcode is returned when a code handed to the
	// cobrança pipeline carries the arrecadação tag.
	ErrInvalidCobrancaBarcode = errors.New("código de barras de cobrança inválido")

	// ErrInvalidArrecadacaoBarcode is returned when a code handed to the
	// arrecadação pipeline does not start with '8'.
	ErrInvalidArrecadacaoBarcode = errors.New("código de barras de arrecadação inválido")

	// ErrInvalidSegmento is returned for an unknown arrecadação segment digit.
	ErrInvalidSegmento = errors.New("segmento inválido")

	// ErrInvalidTipoValor is returned for an unknown arrecadação value type.
	ErrInvalidTipoValor = errors.New("tipo de valor inválido")
)
