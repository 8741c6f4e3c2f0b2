// =============================================================================
// Boleto Utils - Main Entry Point
// =============================================================================
//
// USAGE:
//   boleto info <codigo>                - Decode and validate a slip
//   boleto digito-verificador <codigo>  - Compute check digits
//   boleto gerar --banco N ...          - Assemble a cobrança barcode
//   boleto lote <arquivo>               - Decode a CSV or XLSX file of codes
//   boleto version                      - Display the application version
//
// ARCHITECTURE:
//   - cmd/      : CLI command definitions (Cobra)
//   - internal/ : codecs, parsers, directories, rendering and batch logic
//   - pkg/      : shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/boleto-utils/cmd"
)

func main() {
	cmd.Execute()
}
