// =============================================================================
// Boleto Utils - XML Writer Module
// =============================================================================
//
// Writes a tree of elements as an indented XML document. The renderer builds
// the tree from decoded slips; this package only knows about elements.
//
// XML STRUCTURE:
//   <?xml version="1.0" encoding="UTF-8"?>
//   <boleto tipo="cobranca">           <!-- Root element with attributes -->
//     <codigo_barras>...</codigo_barras>
//     <banco>                          <!-- Nested element -->
//       <codigo>001</codigo>
//       <nome/>                        <!-- Empty value, self-closing -->
//     </banco>
//   </boleto>
//
// =============================================================================

package xmlwriter

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options controls the document prologue and indentation.
type Options struct {
	// Indent is repeated once per nesting level.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration writes the <?xml ...?> prologue.
	// Default: true
	IncludeXMLDeclaration bool

	// Default: "1.0"
	XMLVersion string

	// Default: "UTF-8"
	Encoding string
}

// DefaultOptions returns the options used by the renderer.
func DefaultOptions() Options {
	return Options{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		XMLVersion:            "1.0",
		Encoding:              "UTF-8",
	}
}

// =============================================================================
// ELEMENTS
// =============================================================================

// Element is a node of the document. An element holds either a text value or
// children, never both; when both are set the children win.
type Element struct {
	Name       string
	Attributes []xml.Attr
	Value      string
	Children   []Element
}

// Text creates a leaf element.
func Text(name, value string) Element {
	return Element{Name: name, Value: value}
}

// Node creates an element wrapping children.
func Node(name string, children ...Element) Element {
	return Element{Name: name, Children: children}
}

// WithAttr returns a copy of e with one more attribute.
func (e Element) WithAttr(name, value string) Element {
	attrs := make([]xml.Attr, len(e.Attributes), len(e.Attributes)+1)
	copy(attrs, e.Attributes)
	e.Attributes = append(attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
	return e
}

// =============================================================================
// WRITING
// =============================================================================

// Write serialises root to w.
func Write(w io.Writer, root Element, opts Options) error {
	if root.Name == "" {
		return fmt.Errorf("root element has no name")
	}

	bw := bufio.NewWriter(w)

	if opts.IncludeXMLDeclaration {
		fmt.Fprintf(bw, "<?xml version=\"%s\" encoding=\"%s\"?>\n", opts.XMLVersion, opts.Encoding)
	}

	if err := writeElement(bw, root, opts.Indent, 0); err != nil {
		return err
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write XML: %w", err)
	}
	return nil
}

// writeElement writes an element and its subtree at the given depth.
func writeElement(w *bufio.Writer, e Element, indent string, level int) error {
	if e.Name == "" {
		return fmt.Errorf("element without name at depth %d", level)
	}

	pad := strings.Repeat(indent, level)

	w.WriteString(pad)
	w.WriteString("<")
	w.WriteString(e.Name)
	for _, attr := range e.Attributes {
		w.WriteString(" ")
		w.WriteString(attr.Name.Local)
		w.WriteString(`="`)
		w.WriteString(escapeXML(attr.Value))
		w.WriteString(`"`)
	}

	switch {
	case len(e.Children) > 0:
		w.WriteString(">\n")
		for _, child := range e.Children {
			if err := writeElement(w, child, indent, level+1); err != nil {
				return err
			}
		}
		w.WriteString(pad)
	case e.Value != "":
		w.WriteString(">")
		w.WriteString(escapeXML(e.Value))
	default:
		w.WriteString("/>\n")
		return nil
	}

	w.WriteString("</")
	w.WriteString(e.Name)
	w.WriteString(">\n")
	return nil
}

// escapeXML escapes text for both character data and attribute values.
func escapeXML(s string) string {
	var sb strings.Builder
	// EscapeText only fails when the writer does.
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
