// Package svgdom builds an SVG element tree and serializes it to bytes
// without ever routing through encoding/xml: xml.Encoder is free to
// re-indent or re-space text nodes, which would silently change the
// rendered width of extracted text. Every tag is written out by hand
// instead, the same manual-construction approach other_examples'
// asciitosvg package uses for exactly this reason.
package svgdom

// Node is anything that can appear as a child of an Element: another
// Element or a Text run.
type Node interface {
	isNode()
}

// Attr is one name="value" pair on an Element. A slice (not a map) keeps
// attributes in the order they were set, which matters for golden-file
// style comparisons and for matching how a human would write the tag.
type Attr struct {
	Name  string
	Value string
}

// Element is one SVG tag with its attributes and children.
type Element struct {
	Tag      string
	Attrs    []Attr
	Children []Node
}

func (*Element) isNode() {}

// NewElement creates an empty element with the given tag name.
func NewElement(tag string) *Element {
	return &Element{Tag: tag}
}

// SetAttr sets (or overwrites) an attribute, returning the element so
// calls can be chained while building a tag.
func (e *Element) SetAttr(name, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// Attr returns the value of the named attribute and whether it is set.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AppendChild appends n to e's children and returns e for chaining.
func (e *Element) AppendChild(n Node) *Element {
	e.Children = append(e.Children, n)
	return e
}

// AppendText appends a raw text node, preserving s exactly as given —
// no trimming, no collapsing of runs of whitespace.
func (e *Element) AppendText(s string) *Element {
	e.Children = append(e.Children, Text(s))
	return e
}

// Text is a raw character-data child node. Its content is escaped on
// serialization (&, < and > only) but never reflowed or
// trimmed, since whitespace inside <text>/<tspan> is significant.
type Text string

func (Text) isNode() {}
