package interpreter

import "github.com/coregx/gxpdf/internal/svgdom"

// PathBuilder accumulates path-construction operators (m, l, c, v, y,
// h, re) between BT/ET-unrelated path operators and the painting
// operator that consumes them. Per PDF 1.7 8.5.2.1, a path's
// coordinates are recorded in unadorned user space; the CTM in effect
// when the path is *painted* (not when it was built) is what maps it
// into device space, so PathBuilder deliberately stores raw operand
// values and leaves transformation to transformSegments at paint time.
type PathBuilder struct {
	segs       []svgdom.PathSegment
	curX, curY float64
	startX, startY float64
	hasStart   bool
}

// NewPathBuilder returns an empty path.
func NewPathBuilder() *PathBuilder {
	return &PathBuilder{}
}

// Empty reports whether any construction operator has run yet.
func (p *PathBuilder) Empty() bool {
	return len(p.segs) == 0
}

// Reset clears the path, for use after a painting operator consumes it.
func (p *PathBuilder) Reset() {
	*p = PathBuilder{}
}

func (p *PathBuilder) MoveTo(x, y float64) {
	p.segs = append(p.segs, svgdom.PathSegment{Op: svgdom.MoveTo, X: x, Y: y})
	p.curX, p.curY = x, y
	p.startX, p.startY = x, y
	p.hasStart = true
}

func (p *PathBuilder) LineTo(x, y float64) {
	p.segs = append(p.segs, svgdom.PathSegment{Op: svgdom.LineTo, X: x, Y: y})
	p.curX, p.curY = x, y
}

// CurveTo handles the full "c" operator: two explicit control points.
func (p *PathBuilder) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	p.segs = append(p.segs, svgdom.PathSegment{Op: svgdom.CurveTo, X1: x1, Y1: y1, X2: x2, Y2: y2, X: x3, Y: y3})
	p.curX, p.curY = x3, y3
}

// CurveToV handles "v": the first control point coincides with the
// current point.
func (p *PathBuilder) CurveToV(x2, y2, x3, y3 float64) {
	p.CurveTo(p.curX, p.curY, x2, y2, x3, y3)
}

// CurveToY handles "y": the second control point coincides with the
// curve's endpoint.
func (p *PathBuilder) CurveToY(x1, y1, x3, y3 float64) {
	p.CurveTo(x1, y1, x3, y3, x3, y3)
}

// ClosePath handles "h": draws a straight line back to the current
// subpath's starting point and marks the subpath closed.
func (p *PathBuilder) ClosePath() {
	if !p.hasStart {
		return
	}
	p.segs = append(p.segs, svgdom.PathSegment{Op: svgdom.ClosePath})
	p.curX, p.curY = p.startX, p.startY
}

// Rect handles "re": appends a complete closed rectangle subpath and
// leaves the current point at its origin corner, per PDF 1.7 8.5.2.1.
func (p *PathBuilder) Rect(x, y, w, h float64) {
	p.segs = append(p.segs, svgdom.PathSegment{Op: svgdom.Rect, X: x, Y: y, Width: w, Height: h})
	p.curX, p.curY = x, y
	p.startX, p.startY = x, y
	p.hasStart = true
}

// CurrentPoint returns the path's current point, used by the `v`/`y`
// shorthand curve operators and by callers that need to know where the
// next subpath would begin.
func (p *PathBuilder) CurrentPoint() (float64, float64) {
	return p.curX, p.curY
}

// transformSegments maps every coordinate in segs through m, producing
// the device-space segments the SVG emitter and clip-path interning
// actually consume. A Rect segment under a general affine transform is
// no longer axis-aligned in the common case (rotation/skew), so it is
// flattened to four explicit line segments rather than kept as
// svgdom.Rect, which only knows how to emit an axis-aligned h/v
// rectangle.
func transformSegments(segs []svgdom.PathSegment, m Matrix) []svgdom.PathSegment {
	out := make([]svgdom.PathSegment, 0, len(segs))
	for _, s := range segs {
		switch s.Op {
		case svgdom.MoveTo, svgdom.LineTo:
			x, y := m.Transform(s.X, s.Y)
			out = append(out, svgdom.PathSegment{Op: s.Op, X: x, Y: y})
		case svgdom.CurveTo:
			x1, y1 := m.Transform(s.X1, s.Y1)
			x2, y2 := m.Transform(s.X2, s.Y2)
			x, y := m.Transform(s.X, s.Y)
			out = append(out, svgdom.PathSegment{Op: svgdom.CurveTo, X1: x1, Y1: y1, X2: x2, Y2: y2, X: x, Y: y})
		case svgdom.ClosePath:
			out = append(out, s)
		case svgdom.Rect:
			x0, y0 := m.Transform(s.X, s.Y)
			x1, y1 := m.Transform(s.X+s.Width, s.Y)
			x2, y2 := m.Transform(s.X+s.Width, s.Y+s.Height)
			x3, y3 := m.Transform(s.X, s.Y+s.Height)
			out = append(out,
				svgdom.PathSegment{Op: svgdom.MoveTo, X: x0, Y: y0},
				svgdom.PathSegment{Op: svgdom.LineTo, X: x1, Y: y1},
				svgdom.PathSegment{Op: svgdom.LineTo, X: x2, Y: y2},
				svgdom.PathSegment{Op: svgdom.LineTo, X: x3, Y: y3},
				svgdom.PathSegment{Op: svgdom.ClosePath},
			)
		}
	}
	return out
}
