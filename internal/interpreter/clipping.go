package interpreter

import "github.com/coregx/gxpdf/internal/svgdom"

// clipState tracks the pending clip set by W/W*: PDF 1.7 8.5.4 says the
// clipping-path operators do not themselves modify the clip; they only
// record which fill rule to use, and the current path keeps accumulating
// until the painting operator that follows actually consumes it. Only
// at that point does the new clip (current path intersected with the
// old one) take effect, starting with the *next* path object.
type clipState struct {
	pending   bool
	evenOdd   bool
}

// setPending marks that the clip begun by the path under construction
// should be applied once the current painting operator runs. Called by
// the W/W* operator handlers.
func (c *clipState) setPending(evenOdd bool) {
	c.pending = true
	c.evenOdd = evenOdd
}

// apply is called by every painting operator (S, s, f, F, f*, B, B*, b,
// b*, and even the no-op n) after the path has been painted (or, for n,
// instead of being painted). If W/W* ran first, it intersects the
// current path — transformed by the CTM in effect now, at paint time,
// per PDF 1.7 8.5.2.1 — into gs.Clip, then clears the pending flag so a
// later painting operator with no intervening W/W* leaves the clip
// alone.
func (c *clipState) apply(gs *GraphicsState, segs []svgdom.PathSegment, ctm Matrix) {
	if !c.pending {
		return
	}
	c.pending = false

	transformed := transformSegments(segs, ctm)
	newClip := &ClipPath{
		D:       svgdom.BuildPathData(transformed),
		EvenOdd: c.evenOdd,
	}
	gs.Clip = intersectClip(gs.Clip, newClip)
}

// intersectClip combines an existing clip with a newly-declared one.
// SVG has no native path-intersection primitive usable from static
// path data, so a nested clip is approximated the way nested clipPath
// references are commonly composed: the new clip's <clipPath> element
// itself carries a clip-path reference to the old one (wired by the
// caller via DefsPool), and ClipPath.D/EvenOdd here describe only the
// new, innermost shape. The outer shape is preserved by keeping a
// pointer to it rather than discarding it.
func intersectClip(old, new *ClipPath) *ClipPath {
	if old == nil {
		return new
	}
	new.Parent = old
	return new
}

// internClip registers clip (and, recursively, any outer clip it
// nests inside) as <clipPath> elements in defs, returning the id to
// use as a BeginGroup clip-path argument. A nil clip returns "".
func internClip(defs *svgdom.DefsPool, clip *ClipPath) string {
	if clip == nil {
		return ""
	}
	path := svgdom.NewElement("path")
	path.SetAttr("d", clip.D)
	if clip.EvenOdd {
		path.SetAttr("clip-rule", "evenodd")
	}

	el := svgdom.NewElement("clipPath")
	el.AppendChild(path)
	if clip.Parent != nil {
		if parentID := internClip(defs, clip.Parent); parentID != "" {
			el.SetAttr("clip-path", "url(#"+parentID+")")
		}
	}
	return defs.Intern("clip", el)
}
