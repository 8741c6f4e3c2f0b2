// =============================================================================
// Boleto Utils - Generate Command
// =============================================================================
//
// Assembles a cobrança slip from its fields, with every check digit computed.
//
// COMMAND USAGE:
//   boleto gerar --banco 1 --moeda real --valor 214.03 --vencimento 2022-05-10
//
// FLAGS:
//   --banco       : Bank code, 0..999 (required)
//   --moeda       : "real" or "outras"
//   --valor       : Amount, truncated to centavos ("1500.50" or "1500,50")
//   --vencimento  : Due date, YYYY-MM-DD
//   --campo-livre : 25-digit free field (default: zeros)
//
// =============================================================================

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/boleto-utils/internal/cobranca"
	"github.com/ginjaninja78/boleto-utils/internal/render"
)

type gerarFlags struct {
	banco      int
	moeda      string
	valor      string
	vencimento string
	campoLivre string
	format     string
}

func newGerarCmd(a *app) *cobra.Command {
	var flags gerarFlags

	cmd := &cobra.Command{
		Use:   "gerar",
		Short: "Generate a cobrança barcode from its fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.outputFormat(flags.format)
			if err != nil {
				return err
			}

			builder, err := flags.builder()
			if err != nil {
				return err
			}

			b, err := a.decoder.Gerar(builder)
			if err != nil {
				return err
			}
			return render.Boleto(cmd.OutOrStdout(), f, b)
		},
	}

	cmd.Flags().IntVar(&flags.banco, "banco", 0, "Bank code (required)")
	cmd.Flags().StringVar(&flags.moeda, "moeda", "real", `Currency: "real" or "outras"`)
	cmd.Flags().StringVar(&flags.valor, "valor", "", "Amount in reais")
	cmd.Flags().StringVar(&flags.vencimento, "vencimento", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.campoLivre, "campo-livre", "", "25-digit free field")
	addFormatFlag(cmd, &flags.format)
	_ = cmd.MarkFlagRequired("banco")

	return cmd
}

// builder translates the flags into a cobranca.Builder.
func (f gerarFlags) builder() (*cobranca.Builder, error) {
	b := cobranca.NewBuilder().CodBanco(f.banco)

	switch strings.ToLower(f.moeda) {
	case "real":
		b.CodMoeda(cobranca.MoedaReal)
	case "outras":
		b.CodMoeda(cobranca.MoedaOutras)
	default:
		return nil, fmt.Errorf("moeda %q inválida, use real ou outras", f.moeda)
	}

	if f.valor != "" {
		s := f.valor
		if strings.Contains(s, ",") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		}
		v, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("valor %q inválido: %w", f.valor, err)
		}
		b.Valor(v)
	}

	if f.vencimento != "" {
		d, err := time.Parse("2006-01-02", f.vencimento)
		if err != nil {
			return nil, fmt.Errorf("vencimento %q inválido, use AAAA-MM-DD", f.vencimento)
		}
		b.Vencimento(d)
	}

	if f.campoLivre != "" {
		b.CampoLivre(f.campoLivre)
	}

	return b, nil
}
