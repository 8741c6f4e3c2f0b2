// =============================================================================
// Boleto Utils - Batch Command
// =============================================================================
//
// This file defines the 'lote' command, which decodes every code of a CSV or
// XLSX file and writes a report.
//
// COMMAND USAGE:
//   boleto lote <arquivo.csv|arquivo.xlsx> [flags]
//
// FLAGS:
//   --coluna    : Zero-based column holding the codes
//   --planilha  : XLSX sheet (default: first sheet)
//   --saida     : Output directory for the report
//
// Unset flags fall back to the lote section of the configuration file.
//
// OUTCOME:
//   Rows that fail to decode are listed with their error and kept in the
//   report. The command fails only when a file cannot be read or written.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/boleto-utils/internal/lote"
)

func newLoteCmd(a *app) *cobra.Command {
	var (
		coluna   int
		planilha string
		saida    string
	)

	cmd := &cobra.Command{
		Use:   "lote <arquivo>",
		Short: "Decode every code of a CSV or XLSX file",
		Long: `Decode every code of a CSV or XLSX file and write a report with one
row per input row. The report is an XLSX or CSV file, as selected by the
extension of lote.file_name_format in the configuration.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Lote
			if cmd.Flags().Changed("coluna") {
				if coluna < 0 {
					return fmt.Errorf("coluna deve ser maior ou igual a zero")
				}
				cfg.Column = coluna
			}
			if cmd.Flags().Changed("planilha") {
				cfg.Sheet = planilha
			}
			if cmd.Flags().Changed("saida") {
				cfg.OutputDir = saida
			}

			p := lote.NewProcessor(a.decoder, cfg, lote.WithLogger(a.logger))
			report, err := p.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printReport(cmd, report)
			if report.Stats.Invalidos > 0 {
				a.logger.Warn("batch had invalid rows", zap.Int("invalidos", report.Stats.Invalidos))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&coluna, "coluna", 0, "Zero-based column holding the codes")
	cmd.Flags().StringVar(&planilha, "planilha", "", "XLSX sheet to read")
	cmd.Flags().StringVar(&saida, "saida", "", "Output directory for the report")

	return cmd
}

// printReport writes the run summary and the rejected rows.
func printReport(cmd *cobra.Command, report *lote.Report) {
	out := cmd.OutOrStdout()

	for _, r := range report.Resultados {
		if !r.OK() {
			fmt.Fprintf(out, "  ✗ linha %d: %v\n", r.Linha, r.Err)
		}
	}

	fmt.Fprintf(out, "Arquivo:     %s\n", report.InputFile)
	fmt.Fprintf(out, "Relatório:   %s\n", report.OutputFile)
	fmt.Fprintf(out, "Total:       %d\n", report.Stats.Total)
	fmt.Fprintf(out, "Válidos:     %d\n", report.Stats.Validos)
	fmt.Fprintf(out, "Inválidos:   %d\n", report.Stats.Invalidos)
	fmt.Fprintf(out, "Tempo:       %s\n", report.Stats.Duration)
}
