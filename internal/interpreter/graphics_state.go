package interpreter

import (
	"image/color"

	"github.com/coregx/gxpdf/internal/svgdom"
)

// RGBColor is a resolved DeviceRGB color, already converted from
// whatever color space the content stream actually used.
type RGBColor struct {
	R, G, B float64 // 0..1
}

// Black is the PDF default fill/stroke color.
var Black = RGBColor{0, 0, 0}

// Hex renders the color as a "#rrggbb" string for SVG fill/stroke
// attributes.
func (c RGBColor) Hex() string {
	clamp := func(v float64) int {
		i := int(v*255 + 0.5)
		if i < 0 {
			return 0
		}
		if i > 255 {
			return 255
		}
		return i
	}
	const hexDigits = "0123456789abcdef"
	r, g, b := clamp(c.R), clamp(c.G), clamp(c.B)
	buf := [7]byte{'#'}
	buf[1], buf[2] = hexDigits[r>>4], hexDigits[r&0xF]
	buf[3], buf[4] = hexDigits[g>>4], hexDigits[g&0xF]
	buf[5], buf[6] = hexDigits[b>>4], hexDigits[b&0xF]
	return string(buf[:])
}

// stdColor converts to the standard library's color.Color, for handing
// a stencil mask's paint color to internal/imagedecode.
func (c RGBColor) stdColor() color.Color {
	clamp := func(v float64) uint8 {
		i := int(v*255 + 0.5)
		if i < 0 {
			return 0
		}
		if i > 255 {
			return 255
		}
		return uint8(i)
	}
	return color.NRGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: 0xFF}
}

// ClipPath is the graphics state's current clipping path: a path's
// data plus the fill rule it was declared with (nonzero vs even-odd).
// PDF postpones clip application until after the next painting
// operator, so W/W* never install this directly: clipState.apply does,
// when paintPath runs.
type ClipPath struct {
	D       string
	EvenOdd bool

	// Parent, when non-nil, is an outer clip this one nests inside:
	// SVG's clipPath element supports a clip-path attribute of its own,
	// so a chain of ClipPaths renders as a chain of clipPath elements
	// each clipping the next, approximating PDF's clip-intersection
	// semantics without needing true path-boolean intersection.
	Parent *ClipPath
}

// GraphicsState is the complete q/Q-saved graphics state this
// interpreter tracks: CTM, path-painting parameters, color, text
// state, the current font, and the active clip (a pending W/W* clip
// lives on the Interpreter's clipState until the next painting
// operator) — the full record spec.md 4.5 requires.
type GraphicsState struct {
	CTM Matrix

	LineWidth  float64
	LineCap    int // 0 butt, 1 round, 2 square
	LineJoin   int // 0 miter, 1 round, 2 bevel
	DashArray  []float64
	DashPhase  float64

	FillColor       RGBColor
	StrokeColor     RGBColor
	FillColorSpace  *ColorSpace
	StrokeColorSpace *ColorSpace
	FillAlpha       float64
	StrokeAlpha     float64

	Clip *ClipPath

	Text *TextState

	// CharSpace/FontSize etc. live on Text; Font is the
	// currently loaded font resource, kept alongside Text because
	// Tf names a resource, not a raw size.
	Font *LoadedFont
}

// NewGraphicsState returns the initial state a content stream starts
// in: identity CTM, black fill/stroke, full opacity, 1-unit line
// width, no clip.
func NewGraphicsState() *GraphicsState {
	return &GraphicsState{
		CTM:         Identity(),
		LineWidth:   1,
		FillColor:   Black,
		StrokeColor: Black,
		FillAlpha:   1,
		StrokeAlpha: 1,
		Text:        NewTextState(),
	}
}

// Clone returns a deep-enough copy for q/Q save/restore: value fields
// copy naturally, and the two pointer fields that are ever mutated
// in place (Text, DashArray) are copied so a pop doesn't alias the
// popped frame's mutable state.
func (gs *GraphicsState) Clone() *GraphicsState {
	clone := *gs
	if gs.DashArray != nil {
		clone.DashArray = append([]float64(nil), gs.DashArray...)
	}
	if gs.Text != nil {
		text := *gs.Text
		clone.Text = &text
	}
	return &clone
}

// svgTransform renders the CTM as an SVG matrix(...) attribute value.
func (m Matrix) svgTransform() string {
	return "matrix(" +
		svgdom.FormatNumber(m.A) + " " +
		svgdom.FormatNumber(m.B) + " " +
		svgdom.FormatNumber(m.C) + " " +
		svgdom.FormatNumber(m.D) + " " +
		svgdom.FormatNumber(m.E) + " " +
		svgdom.FormatNumber(m.F) + ")"
}

// SVGTransform is the exported form of svgTransform, for internal/coordinator
// to render the page-level transform it builds from /CropBox and /Rotate.
func (m Matrix) SVGTransform() string {
	return m.svgTransform()
}

// lineCapName/lineJoinName map PDF's integer line cap/join codes to
// the SVG stroke-linecap/stroke-linejoin keyword they correspond to.
func lineCapName(v int) string {
	switch v {
	case 1:
		return "round"
	case 2:
		return "square"
	default:
		return "butt"
	}
}

func lineJoinName(v int) string {
	switch v {
	case 1:
		return "round"
	case 2:
		return "bevel"
	default:
		return "miter"
	}
}
