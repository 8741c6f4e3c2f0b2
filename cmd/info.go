// =============================================================================
// Boleto Utils - Info and Check Digit Commands
// =============================================================================
//
// COMMAND USAGE:
//   boleto info <codigo> [--format text|json|yaml|xml]
//   boleto digito-verificador <codigo> [--format ...]
//
// The code may be typed with the usual separators ("75691.43436 01033...")
// and even split over several arguments; they are joined and normalized.
//
// =============================================================================

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/boleto-utils/internal/boleto"
	"github.com/ginjaninja78/boleto-utils/internal/render"
)

func newInfoCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "info <codigo>",
		Aliases: []string{"i"},
		Short:   "Decode a barcode or digitable line",
		Long: `Decode a barcode or digitable line of either slip family and print
its fields. Every check digit is verified; a code with a wrong digit is
rejected.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.outputFormat(format)
			if err != nil {
				return err
			}

			b, err := a.decoder.Parse(codigo(args))
			if err != nil {
				return err
			}
			return render.Boleto(cmd.OutOrStdout(), f, b)
		},
	}

	addFormatFlag(cmd, &format)
	return cmd
}

func newDigitoCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "digito-verificador <codigo>",
		Aliases: []string{"dv"},
		Short:   "Compute the check digits of a code",
		Long: `Compute the general and per-field check digits of a barcode or
digitable line, and print both representations with the digits filled in.

Only the length, the digits and the family are validated, so codes with
placeholder check digits are accepted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.outputFormat(format)
			if err != nil {
				return err
			}

			v, err := a.decoder.CalcularDigitos(codigo(args))
			if err != nil {
				return err
			}
			return render.Verificacao(cmd.OutOrStdout(), f, v)
		},
	}

	addFormatFlag(cmd, &format)
	return cmd
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func addFormatFlag(cmd *cobra.Command, format *string) {
	cmd.Flags().StringVarP(
		format,
		"format",
		"f",
		"",
		"Output format: "+strings.Join(render.Formats, ", ")+" (default from config)",
	)
}

// outputFormat returns flag, or the configured format when flag is empty.
func (a *app) outputFormat(flag string) (string, error) {
	if flag == "" {
		return a.cfg.OutputFormat, nil
	}
	if !render.ValidFormat(flag) {
		return "", fmt.Errorf("formato %q inválido, use um de: %s", flag, strings.Join(render.Formats, ", "))
	}
	return flag, nil
}

// codigo joins and normalizes the code arguments.
func codigo(args []string) []byte {
	return boleto.Normalize(strings.Join(args, ""))
}
