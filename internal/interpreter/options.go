package interpreter

import "context"

// FontDescriptor summarizes a font resource's /FontDescriptor entries
// relevant to substitution: a caller-supplied FontResolver sees this,
// not the raw PDF dictionary.
type FontDescriptor struct {
	BaseFont    string
	Bold        bool
	Italic      bool
	Serif       bool
	FixedPitch  bool
	ItalicAngle float64
}

// Substitute is what a FontResolver returns: a CSS font-family value
// to use in place of the built-in name-based guess.
type Substitute struct {
	FontFamily string
}

// FontResolver lets a caller override which system/installed font
// family stands in for a PDF font whose program is not embedded in
// the SVG output (see fontcache.go's cssFontFamily for the built-in
// default).
type FontResolver func(FontDescriptor) (Substitute, error)

// Options configures one page conversion, mirroring spec.md 4.9's
// enumerated option set.
type Options struct {
	// IncludeHiddenText emits text painted with Tr 3 (invisible) or
	// under a /OC optional-content group marked hidden. Off by
	// default, matching what a sighted rendering would show.
	IncludeHiddenText bool

	// FontResolver is consulted once per font resource; a nil
	// resolver (or one returning an error) falls back to the
	// name-based CSS family guess.
	FontResolver FontResolver

	// MinStrokeWidth floors every stroke-width attribute (in
	// user-space units, before CTM scaling), so hairline rules drawn
	// with w=0 (PDF's "thinnest renderable line" convention) remain
	// visible in SVG, which has no equivalent convention.
	MinStrokeWidth float64

	// Cancel is checked between content-stream operators and between
	// top-level object parses; a canceled context aborts the
	// conversion with ctx.Err().
	Cancel context.Context
}

// ctx returns a non-nil context for internal checks even when the
// caller left Cancel unset.
func (o Options) ctx() context.Context {
	if o.Cancel != nil {
		return o.Cancel
	}
	return context.Background()
}
