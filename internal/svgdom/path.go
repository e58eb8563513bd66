package svgdom

import "strings"

// PathOp identifies one path-construction command, mirroring the PDF
// operators that produce it (m, l, c, h, re) after flattening the
// shorthand curve forms (v, y) into full cubic control points.
type PathOp int

const (
	MoveTo PathOp = iota
	LineTo
	CurveTo
	ClosePath
	Rect
)

// PathSegment is one element of a path, in the coordinate space the
// caller already transformed it into (the emitter does not transform
// coordinates itself).
type PathSegment struct {
	Op          PathOp
	X, Y        float64 // endpoint, for MoveTo/LineTo/CurveTo/Rect's origin
	X1, Y1      float64 // first control point, for CurveTo
	X2, Y2      float64 // second control point, for CurveTo
	Width, Height float64 // for Rect
}

// BuildPathData renders segs as an SVG path data string, applying the
// PDF-to-SVG operator mapping from spec.md 4.7: m -> M, l -> L, c -> C,
// re -> M...h v h Z (rectangle via relative horizontal/vertical lines), h ->
// Z. Numbers use the emitter's fixed six-digit trimmed precision.
func BuildPathData(segs []PathSegment) string {
	var b strings.Builder
	for i, s := range segs {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch s.Op {
		case MoveTo:
			b.WriteString("M ")
			b.WriteString(FormatNumber(s.X))
			b.WriteByte(' ')
			b.WriteString(FormatNumber(s.Y))
		case LineTo:
			b.WriteString("L ")
			b.WriteString(FormatNumber(s.X))
			b.WriteByte(' ')
			b.WriteString(FormatNumber(s.Y))
		case CurveTo:
			b.WriteString("C ")
			b.WriteString(FormatNumber(s.X1))
			b.WriteByte(' ')
			b.WriteString(FormatNumber(s.Y1))
			b.WriteByte(' ')
			b.WriteString(FormatNumber(s.X2))
			b.WriteByte(' ')
			b.WriteString(FormatNumber(s.Y2))
			b.WriteByte(' ')
			b.WriteString(FormatNumber(s.X))
			b.WriteByte(' ')
			b.WriteString(FormatNumber(s.Y))
		case ClosePath:
			b.WriteString("Z")
		case Rect:
			b.WriteString("M ")
			b.WriteString(FormatNumber(s.X))
			b.WriteByte(' ')
			b.WriteString(FormatNumber(s.Y))
			b.WriteString(" h ")
			b.WriteString(FormatNumber(s.Width))
			b.WriteString(" v ")
			b.WriteString(FormatNumber(s.Height))
			b.WriteString(" h ")
			b.WriteString(FormatNumber(-s.Width))
			b.WriteString(" Z")
		}
	}
	return b.String()
}
