package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ginjaninja78/boleto-utils/internal/arrecadacao"
	"github.com/ginjaninja78/boleto-utils/internal/boleto"
	"github.com/ginjaninja78/boleto-utils/internal/cobranca"
)

// labelWidth fits the longest label, "Código de barras". fmt pads by rune
// count, so accented labels line up.
const labelWidth = 16

type line struct {
	label string
	value string
}

func writeText(w io.Writer, lines []line) error {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		fmt.Fprintf(bw, "%*s: %s\n", labelWidth, l.label, l.value)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func boletoText(b *boleto.Boleto) []line {
	if b.Cobranca != nil {
		return cobrancaText(b.Cobranca)
	}
	return arrecadacaoText(b.Arrecadacao)
}

func cobrancaText(c *cobranca.Cobranca) []line {
	valor := "Sem valor"
	if c.Valor.Valid {
		valor = c.Valor.Decimal.StringFixed(2)
	}
	data := "Sem vencimento"
	if c.TemVencimento() {
		data = c.DataVencimento.Format(dateLayout)
	}

	return []line{
		{"Tipo", "Cobrança"},
		{"Código de barras", c.CodBarras.String()},
		{"Linha digitável", c.LinhaDigitavel.String()},
		{"Banco", fmt.Sprintf("[%s] %s", c.CodBanco, nomeOuDesconhecido(c.NomeBanco))},
		{"Moeda", c.CodMoeda.String()},
		{"Valor", valor},
		{"Data Vencimento", data},
	}
}

func arrecadacaoText(a *arrecadacao.Arrecadacao) []line {
	valor := "Sem valor informado"
	if a.Valor.Valid {
		valor = a.Valor.Decimal.StringFixed(2)
	}

	convenio := "Carnê"
	if !a.Convenio.Carne {
		convenio = fmt.Sprintf("[%s] %s", a.Convenio.Codigo, nomeOuDesconhecido(a.Convenio.Nome))
	}

	return []line{
		{"Tipo", "Arrecadação"},
		{"Código de barras", a.CodBarras.String()},
		{"Linha digitável", a.LinhaDigitavel.String()},
		{"Segmento", a.Segmento.String()},
		{"Tipo valor", a.TipoValor.String()},
		{"Valor", valor},
		{"Convênio", convenio},
	}
}

func verificacaoText(v *boleto.Verificacao) []line {
	campos := make([]string, len(v.DVCampos))
	for i, d := range v.DVCampos {
		campos[i] = fmt.Sprint(d)
	}

	return []line{
		{"Tipo", v.Tipo.Label()},
		{"DV geral", fmt.Sprint(v.DVGeral)},
		{"DV campos", strings.Join(campos, " | ")},
		{"Código de barras", v.CodBarras},
		{"Linha digitável", v.LinhaDigitavel},
	}
}

func nomeOuDesconhecido(nome string) string {
	if nome == "" {
		return "desconhecido"
	}
	return nome
}
