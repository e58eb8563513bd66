package gxpdf

import (
	"context"

	"github.com/coregx/gxpdf/internal/interpreter"
)

// FontDescriptor summarizes a font resource's /FontDescriptor entries
// relevant to substitution, passed to a FontResolver.
type FontDescriptor = interpreter.FontDescriptor

// Substitute is what a FontResolver returns: a CSS font-family value to
// use in place of the built-in name-based guess.
type Substitute = interpreter.Substitute

// FontResolver lets a caller override which installed font family
// stands in for a PDF font whose program is not embedded in the SVG
// output.
type FontResolver = interpreter.FontResolver

// Options configures one page's SVG conversion.
type Options struct {
	// IncludeHiddenText emits text painted with Tr 3 (invisible) or
	// under a hidden optional-content group. Off by default, matching
	// what a sighted rendering would show.
	IncludeHiddenText bool

	// FontResolver is consulted once per font resource; a nil resolver
	// (or one returning an error) falls back to a name-based CSS
	// family guess.
	FontResolver FontResolver

	// MinStrokeWidth floors every stroke-width attribute (in user-space
	// units), so hairline rules drawn with PDF's zero-width convention
	// remain visible in SVG.
	MinStrokeWidth float64

	// Cancel is checked between content-stream operators and between
	// page parses; a done context aborts the conversion with
	// ErrCancelled wrapping ctx.Err().
	Cancel context.Context
}

// DefaultOptions returns the conversion options used when none are
// supplied: visible text only, no font substitution hook, a 1-point
// minimum stroke width.
func DefaultOptions() Options {
	return Options{MinStrokeWidth: 1}
}

func (o Options) toInterpreter() interpreter.Options {
	return interpreter.Options{
		IncludeHiddenText: o.IncludeHiddenText,
		FontResolver:      o.FontResolver,
		MinStrokeWidth:    o.MinStrokeWidth,
		Cancel:            o.Cancel,
	}
}
