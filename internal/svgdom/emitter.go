package svgdom

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
)

// Paint carries the fill/stroke attributes of a single path draw call.
// An empty Fill/Stroke means "none"; FillRule is "nonzero" or
// "evenodd".
type Paint struct {
	Fill          string
	FillOpacity   float64
	Stroke        string
	StrokeOpacity float64
	StrokeWidth   float64
	FillRule      string
	LineCap       string
	LineJoin      string
	DashArray     string
	ClipPathID    string
}

// TextRun is one contiguous run of text sharing the same font and
// fill, as emitted inside a single <text> element's <tspan> children.
type TextRun struct {
	Content    string
	FontFamily string
	FontSize   float64
	Fill       string
	DX         float64 // additional horizontal offset (TJ number adjustment), in text space
}

// Emitter receives the interpreter's structured draw calls (§4.7:
// beginGroup/path/text/image/endGroup) and builds the corresponding
// SVG element tree, writing new nodes under whichever group is
// currently open.
type Emitter struct {
	root       *Element
	defs       *DefsPool
	groupStack []*Element
}

// NewEmitter creates the <svg> root (width/height/viewBox already
// resolved by the caller from the page's MediaBox/CropBox/Rotate) with
// an empty <defs> as its first child.
func NewEmitter(width, height float64) *Emitter {
	root := NewElement("svg")
	root.SetAttr("xmlns", "http://www.w3.org/2000/svg")
	root.SetAttr("xmlns:xlink", "http://www.w3.org/1999/xlink")
	root.SetAttr("width", FormatNumber(width))
	root.SetAttr("height", FormatNumber(height))
	root.SetAttr("viewBox", fmt.Sprintf("0 0 %s %s", FormatNumber(width), FormatNumber(height)))

	e := &Emitter{root: root, defs: NewDefsPool()}
	root.AppendChild(e.defs.Root())
	e.groupStack = []*Element{root}
	return e
}

func (e *Emitter) top() *Element {
	return e.groupStack[len(e.groupStack)-1]
}

// Defs returns the shared resource pool, for interning clip paths,
// gradients, and patterns.
func (e *Emitter) Defs() *DefsPool {
	return e.defs
}

// EmbedFontFace registers an embedded font program as an inline
// @font-face rule, base64-encoded into a data URL, so the SVG carries
// the glyph program itself rather than depending on an installed
// system font. format is the sfnt flavor ("truetype" or "opentype").
// The <style> rule is interned into the shared defs pool by content
// hash, so the same font program used by multiple text runs (or
// multiple pages sharing one Emitter) contributes only one rule.
//
// Returns the CSS font-family name this font program was registered
// under; callers combine it with a fallback stack when setting
// TextRun.FontFamily; base64's alphabet (A-Za-z0-9+/=) contains none of
// textEscapes' escaped characters, so the rule's Text content never
// needs XML escaping.
func (e *Emitter) EmbedFontFace(format string, data []byte) string {
	family := fontFaceFamily(data)
	encoded := base64.StdEncoding.EncodeToString(data)
	rule := fmt.Sprintf(
		`@font-face{font-family:"%s";src:url(data:font/%s;base64,%s) format('%s');}`,
		family, format, encoded, format,
	)

	style := NewElement("style")
	style.AppendText(rule)
	e.defs.Intern("font-face", style)

	return family
}

// fontFaceFamily derives a stable, collision-resistant font-family name
// from the font program's own bytes, so the same embedded font always
// gets the same name (and therefore dedupes in EmbedFontFace) without
// needing an external identifier.
func fontFaceFamily(data []byte) string {
	sum := sha256.Sum256(data)
	return "pdf-embed-" + hex.EncodeToString(sum[:6])
}

// BeginGroup opens a new <g>, nested under the currently open group,
// and makes it the target of subsequent draw calls until EndGroup.
// transform and clipID may be empty; opacity of 1 is omitted.
func (e *Emitter) BeginGroup(transform, clipID string, opacity float64) {
	g := NewElement("g")
	if transform != "" {
		g.SetAttr("transform", transform)
	}
	if clipID != "" {
		g.SetAttr("clip-path", "url(#"+clipID+")")
	}
	if opacity != 1 && opacity >= 0 {
		g.SetAttr("opacity", FormatNumber(opacity))
	}
	e.top().AppendChild(g)
	e.groupStack = append(e.groupStack, g)
}

// EndGroup closes the most recently opened group. Calling it more
// times than BeginGroup was called is a no-op: the root group is never
// popped, so a malformed content stream with unbalanced q/Q cannot
// corrupt the tree structure.
func (e *Emitter) EndGroup() {
	if len(e.groupStack) > 1 {
		e.groupStack = e.groupStack[:len(e.groupStack)-1]
	}
}

// Path appends a <path> with the given data and paint to the current
// group.
func (e *Emitter) Path(d string, paint Paint) {
	p := NewElement("path")
	p.SetAttr("d", d)
	applyPaint(p, paint)
	e.top().AppendChild(p)
}

// applyPaint writes fill/stroke attributes shared by <path> and other
// paintable shapes.
func applyPaint(el *Element, paint Paint) {
	if paint.Fill == "" {
		el.SetAttr("fill", "none")
	} else {
		el.SetAttr("fill", paint.Fill)
		if paint.FillOpacity != 0 && paint.FillOpacity != 1 {
			el.SetAttr("fill-opacity", FormatNumber(paint.FillOpacity))
		}
	}
	if paint.FillRule == "evenodd" {
		el.SetAttr("fill-rule", "evenodd")
	}
	if paint.Stroke == "" {
		el.SetAttr("stroke", "none")
	} else {
		el.SetAttr("stroke", paint.Stroke)
		el.SetAttr("stroke-width", FormatNumber(paint.StrokeWidth))
		if paint.StrokeOpacity != 0 && paint.StrokeOpacity != 1 {
			el.SetAttr("stroke-opacity", FormatNumber(paint.StrokeOpacity))
		}
		if paint.LineCap != "" {
			el.SetAttr("stroke-linecap", paint.LineCap)
		}
		if paint.LineJoin != "" {
			el.SetAttr("stroke-linejoin", paint.LineJoin)
		}
		if paint.DashArray != "" {
			el.SetAttr("stroke-dasharray", paint.DashArray)
		}
	}
	if paint.ClipPathID != "" {
		el.SetAttr("clip-path", "url(#"+paint.ClipPathID+")")
	}
}

// Text appends one <text> element positioned by transform (a full SVG
// matrix(...) string baked from the text rendering matrix), with one
// <tspan> per run so each run can carry its own font/fill without
// touching the whitespace of adjacent runs' Content.
func (e *Emitter) Text(runs []TextRun, transform string) {
	if len(runs) == 0 {
		return
	}
	t := NewElement("text")
	if transform != "" {
		t.SetAttr("transform", transform)
	}
	t.SetAttr("x", "0")
	t.SetAttr("y", "0")
	for _, r := range runs {
		span := NewElement("tspan")
		if r.FontFamily != "" {
			span.SetAttr("font-family", r.FontFamily)
		}
		if r.FontSize != 0 {
			span.SetAttr("font-size", FormatNumber(r.FontSize))
		}
		if r.Fill != "" {
			span.SetAttr("fill", r.Fill)
		}
		if r.DX != 0 {
			span.SetAttr("dx", FormatNumber(r.DX))
		}
		span.AppendText(r.Content)
		t.AppendChild(span)
	}
	e.top().AppendChild(t)
}

// Image appends an <image> referencing an inline data URL, positioned
// by a unit square transform (the caller bakes width/height scaling
// into transform so the element itself always spans [0,1]x[0,1]).
func (e *Emitter) Image(dataURL, transform string) {
	img := NewElement("image")
	if transform != "" {
		img.SetAttr("transform", transform)
	}
	img.SetAttr("x", "0")
	img.SetAttr("y", "0")
	img.SetAttr("width", "1")
	img.SetAttr("height", "1")
	img.SetAttr("preserveAspectRatio", "none")
	img.SetAttr("xlink:href", dataURL)
	e.top().AppendChild(img)
}

// Root returns the <svg> root element, once all draw calls have been
// issued, for serialization or further inspection.
func (e *Emitter) Root() *Element {
	return e.root
}

// WriteTo serializes the complete document to w.
func (e *Emitter) WriteTo(w io.Writer) error {
	return Serialize(w, e.root)
}
