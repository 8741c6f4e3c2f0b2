// =============================================================================
// Boleto Utils - Report Rendering
// =============================================================================
//
// Turns decoded slips and check-digit results into reports.
//
// FORMATS:
//   text  aligned Portuguese labels, one field per line
//   json  envelope {"tipo": ..., "dados": {...}}, indented
//   yaml  same envelope as json
//   xml   <boleto tipo="..."> with one child per field
//
// Structured formats share the view structs in views.go, so field names stay
// the same across json, yaml and xml. Amounts are rendered as strings with two
// decimals to keep them exact.
//
// =============================================================================

package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/boleto-utils/internal/boleto"
	"github.com/ginjaninja78/boleto-utils/internal/xmlwriter"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatXML  = "xml"
)

// Formats lists the accepted format names.
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatXML}

// ValidFormat reports whether format is one of Formats.
func ValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// envelope wraps every structured report.
type envelope struct {
	Tipo  string      `json:"tipo" yaml:"tipo"`
	Dados interface{} `json:"dados" yaml:"dados"`
}

// =============================================================================
// ENTRY POINTS
// =============================================================================

// Boleto writes the report of a decoded slip.
func Boleto(w io.Writer, format string, b *boleto.Boleto) error {
	if b == nil || (b.Cobranca == nil && b.Arrecadacao == nil) {
		return fmt.Errorf("nothing to render")
	}

	if format == FormatText {
		return writeText(w, boletoText(b))
	}

	var (
		dados interface{}
		xmlEl xmlwriter.Element
	)
	if b.Cobranca != nil {
		v := newCobrancaView(b.Cobranca)
		dados, xmlEl = v, v.element()
	} else {
		v := newArrecadacaoView(b.Arrecadacao)
		dados, xmlEl = v, v.element()
	}

	return writeStructured(w, format, envelope{Tipo: b.Tipo.String(), Dados: dados}, xmlEl)
}

// Verificacao writes the result of a check-digit computation.
func Verificacao(w io.Writer, format string, v *boleto.Verificacao) error {
	if v == nil {
		return fmt.Errorf("nothing to render")
	}

	if format == FormatText {
		return writeText(w, verificacaoText(v))
	}

	view := newVerificacaoView(v)
	return writeStructured(w, format, envelope{Tipo: v.Tipo.String(), Dados: view}, view.element())
}

// writeStructured encodes env in one of the structured formats. The xml tree
// is built by the caller because it cannot be derived from struct tags alone.
func writeStructured(w io.Writer, format string, env envelope, dados xmlwriter.Element) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(env); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(env); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return nil

	case FormatXML:
		root := xmlwriter.Node("boleto", dados.Children...).WithAttr("tipo", env.Tipo)
		if err := xmlwriter.Write(w, root, xmlwriter.DefaultOptions()); err != nil {
			return fmt.Errorf("failed to encode XML: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
