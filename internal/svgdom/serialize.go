package svgdom

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Any element without children is written self-closed. SVG itself has
// no true void elements, but self-closing a childless element
// (<path d="..." />) is the idiomatic form and avoids emitting an empty
// <path></path>.

// Serialize writes the element tree rooted at e to w as a single,
// self-contained SVG fragment: no XML declaration, no DOCTYPE, no
// inserted indentation or newlines beyond whatever Text nodes carry
// explicitly. Writer errors abort the walk and are returned unwrapped.
func Serialize(w io.Writer, e *Element) error {
	return writeElement(w, e)
}

func writeElement(w io.Writer, e *Element) error {
	if _, err := io.WriteString(w, "<"+e.Tag); err != nil {
		return err
	}
	for _, a := range e.Attrs {
		if _, err := fmt.Fprintf(w, ` %s="%s"`, a.Name, escapeAttr(a.Value)); err != nil {
			return err
		}
	}
	if len(e.Children) == 0 {
		_, err := io.WriteString(w, " />")
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	for _, c := range e.Children {
		if err := writeNode(w, c); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</"+e.Tag+">")
	return err
}

func writeNode(w io.Writer, n Node) error {
	switch v := n.(type) {
	case *Element:
		return writeElement(w, v)
	case Text:
		_, err := io.WriteString(w, escapeText(string(v)))
		return err
	default:
		return fmt.Errorf("svgdom: unknown node type %T", n)
	}
}

// Text content only needs &, < and > escaped; attribute values use
// attrEscapes, which also replaces " and ' (all five predefined XML
// entities).
var textEscapes = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var attrEscapes = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeText(s string) string {
	return textEscapes.Replace(s)
}

func escapeAttr(s string) string {
	return attrEscapes.Replace(s)
}

// FormatNumber renders f with up to six fractional digits, trimming
// trailing zeros and a trailing decimal point, per the emitter's fixed-
// precision attribute contract.
func FormatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'f', 6, 64)
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-" || s == "-0" {
		return "0"
	}
	return s
}
