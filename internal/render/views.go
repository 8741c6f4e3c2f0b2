package render

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/boleto-utils/internal/arrecadacao"
	"github.com/ginjaninja78/boleto-utils/internal/boleto"
	"github.com/ginjaninja78/boleto-utils/internal/cobranca"
	"github.com/ginjaninja78/boleto-utils/internal/xmlwriter"
)

const dateLayout = "2006-01-02"

// =============================================================================
// COBRANÇA
// =============================================================================

type bancoView struct {
	Codigo string  `json:"codigo" yaml:"codigo"`
	Nome   *string `json:"nome" yaml:"nome"`
}

type cobrancaView struct {
	CodBarras         string    `json:"codigo_barras" yaml:"codigo_barras"`
	LinhaDigitavel    string    `json:"linha_digitavel" yaml:"linha_digitavel"`
	Banco             bancoView `json:"banco" yaml:"banco"`
	Moeda             string    `json:"moeda" yaml:"moeda"`
	DigitoVerificador int       `json:"digito_verificador" yaml:"digito_verificador"`
	FatorVencimento   int       `json:"fator_vencimento" yaml:"fator_vencimento"`
	DataVencimento    *string   `json:"data_vencimento" yaml:"data_vencimento"`
	Valor             *string   `json:"valor" yaml:"valor"`
	CampoLivre        string    `json:"campo_livre" yaml:"campo_livre"`
}

func newCobrancaView(c *cobranca.Cobranca) cobrancaView {
	v := cobrancaView{
		CodBarras:         c.CodBarras.String(),
		LinhaDigitavel:    c.LinhaDigitavel.String(),
		Banco:             bancoView{Codigo: c.CodBanco.String(), Nome: optional(c.NomeBanco)},
		Moeda:             c.CodMoeda.String(),
		DigitoVerificador: int(c.DigitoVerificador),
		FatorVencimento:   c.FatorVencimento,
		Valor:             valor(c.Valor),
		CampoLivre:        c.CampoLivre(),
	}
	if c.TemVencimento() {
		v.DataVencimento = optional(c.DataVencimento.Format(dateLayout))
	}
	return v
}

func (v cobrancaView) element() xmlwriter.Element {
	return xmlwriter.Node("dados",
		xmlwriter.Text("codigo_barras", v.CodBarras),
		xmlwriter.Text("linha_digitavel", v.LinhaDigitavel),
		xmlwriter.Node("banco",
			xmlwriter.Text("codigo", v.Banco.Codigo),
			xmlwriter.Text("nome", deref(v.Banco.Nome)),
		),
		xmlwriter.Text("moeda", v.Moeda),
		xmlwriter.Text("digito_verificador", strconv.Itoa(v.DigitoVerificador)),
		xmlwriter.Text("fator_vencimento", strconv.Itoa(v.FatorVencimento)),
		xmlwriter.Text("data_vencimento", deref(v.DataVencimento)),
		xmlwriter.Text("valor", deref(v.Valor)),
		xmlwriter.Text("campo_livre", v.CampoLivre),
	)
}

// =============================================================================
// ARRECADAÇÃO
// =============================================================================

type segmentoView struct {
	Codigo int    `json:"codigo" yaml:"codigo"`
	Nome   string `json:"nome" yaml:"nome"`
}

type tipoValorView struct {
	Codigo    int    `json:"codigo" yaml:"codigo"`
	Descricao string `json:"descricao" yaml:"descricao"`
}

type convenioView struct {
	Carne  bool    `json:"carne" yaml:"carne"`
	Codigo string  `json:"codigo" yaml:"codigo"`
	Nome   *string `json:"nome" yaml:"nome"`
}

type arrecadacaoView struct {
	CodBarras         string        `json:"codigo_barras" yaml:"codigo_barras"`
	LinhaDigitavel    string        `json:"linha_digitavel" yaml:"linha_digitavel"`
	Segmento          segmentoView  `json:"segmento" yaml:"segmento"`
	TipoValor         tipoValorView `json:"tipo_valor" yaml:"tipo_valor"`
	DigitoVerificador int           `json:"digito_verificador" yaml:"digito_verificador"`
	Valor             *string       `json:"valor" yaml:"valor"`
	Convenio          convenioView  `json:"convenio" yaml:"convenio"`
	CampoLivre        string        `json:"campo_livre" yaml:"campo_livre"`
}

func newArrecadacaoView(a *arrecadacao.Arrecadacao) arrecadacaoView {
	return arrecadacaoView{
		CodBarras:         a.CodBarras.String(),
		LinhaDigitavel:    a.LinhaDigitavel.String(),
		Segmento:          segmentoView{Codigo: a.Segmento.Codigo(), Nome: a.Segmento.String()},
		TipoValor:         tipoValorView{Codigo: int(a.TipoValor - '0'), Descricao: a.TipoValor.String()},
		DigitoVerificador: int(a.DigitoVerificador),
		Valor:             valor(a.Valor),
		Convenio: convenioView{
			Carne:  a.Convenio.Carne,
			Codigo: a.Convenio.Codigo,
			Nome:   optional(a.Convenio.Nome),
		},
		CampoLivre: a.CampoLivre(),
	}
}

func (v arrecadacaoView) element() xmlwriter.Element {
	return xmlwriter.Node("dados",
		xmlwriter.Text("codigo_barras", v.CodBarras),
		xmlwriter.Text("linha_digitavel", v.LinhaDigitavel),
		xmlwriter.Node("segmento",
			xmlwriter.Text("codigo", strconv.Itoa(v.Segmento.Codigo)),
			xmlwriter.Text("nome", v.Segmento.Nome),
		),
		xmlwriter.Node("tipo_valor",
			xmlwriter.Text("codigo", strconv.Itoa(v.TipoValor.Codigo)),
			xmlwriter.Text("descricao", v.TipoValor.Descricao),
		),
		xmlwriter.Text("digito_verificador", strconv.Itoa(v.DigitoVerificador)),
		xmlwriter.Text("valor", deref(v.Valor)),
		xmlwriter.Node("convenio",
			xmlwriter.Text("carne", strconv.FormatBool(v.Convenio.Carne)),
			xmlwriter.Text("codigo", v.Convenio.Codigo),
			xmlwriter.Text("nome", deref(v.Convenio.Nome)),
		),
		xmlwriter.Text("campo_livre", v.CampoLivre),
	)
}

// =============================================================================
// CHECK DIGITS
// =============================================================================

type verificacaoView struct {
	DVGeral        int    `json:"dv_geral" yaml:"dv_geral"`
	DVCampos       []int  `json:"dv_campos" yaml:"dv_campos,flow"`
	CodBarras      string `json:"codigo_barras" yaml:"codigo_barras"`
	LinhaDigitavel string `json:"linha_digitavel" yaml:"linha_digitavel"`
}

func newVerificacaoView(v *boleto.Verificacao) verificacaoView {
	// []byte would be encoded as base64 by encoding/json.
	campos := make([]int, len(v.DVCampos))
	for i, d := range v.DVCampos {
		campos[i] = int(d)
	}
	return verificacaoView{
		DVGeral:        int(v.DVGeral),
		DVCampos:       campos,
		CodBarras:      v.CodBarras,
		LinhaDigitavel: v.LinhaDigitavel,
	}
}

func (v verificacaoView) element() xmlwriter.Element {
	campos := make([]xmlwriter.Element, len(v.DVCampos))
	for i, d := range v.DVCampos {
		campos[i] = xmlwriter.Text("dv", strconv.Itoa(d)).WithAttr("campo", strconv.Itoa(i+1))
	}
	return xmlwriter.Node("dados",
		xmlwriter.Text("dv_geral", strconv.Itoa(v.DVGeral)),
		xmlwriter.Node("dv_campos", campos...),
		xmlwriter.Text("codigo_barras", v.CodBarras),
		xmlwriter.Text("linha_digitavel", v.LinhaDigitavel),
	)
}

// =============================================================================
// HELPERS
// =============================================================================

func valor(v decimal.NullDecimal) *string {
	if !v.Valid {
		return nil
	}
	s := v.Decimal.StringFixed(2)
	return &s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
