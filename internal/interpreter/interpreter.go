package interpreter

import (
	"fmt"

	"github.com/coregx/gxpdf/internal/parser"
	"github.com/coregx/gxpdf/internal/svgdom"
	"github.com/coregx/gxpdf/logging"
)

// Interpreter walks one page's content stream (and any Form XObjects it
// invokes) and issues structured draw calls to an svgdom.Emitter. It
// holds exactly the mutable state a content stream can observe: the
// graphics-state stack, the path under construction, the pending clip,
// marked-content nesting, and the resource-dictionary stack Form
// XObjects push/pop as they're entered/left.
type Interpreter struct {
	reader    *parser.Reader
	emitter   *svgdom.Emitter
	fontCache *FontCache
	opts      Options

	gs      *GraphicsState
	gsStack []*GraphicsState

	path *PathBuilder
	clip clipState
	mc   markedContentState

	resourcesStack []*parser.Dictionary
	xobjectDepth   int
}

// New creates an Interpreter for one page (or, recursively, one Form
// XObject's content stream). resources is the page's own /Resources
// dictionary; initialCTM is the page-level transform (CropBox
// translation + Rotate) the content stream's own coordinates compose
// into, computed by internal/coordinator before the content stream has
// drawn anything.
func New(reader *parser.Reader, emitter *svgdom.Emitter, fontCache *FontCache, resources *parser.Dictionary, initialCTM Matrix, opts Options) *Interpreter {
	gs := NewGraphicsState()
	gs.CTM = initialCTM
	return &Interpreter{
		reader:         reader,
		emitter:        emitter,
		fontCache:      fontCache,
		opts:           opts,
		gs:             gs,
		path:           NewPathBuilder(),
		resourcesStack: []*parser.Dictionary{resources},
	}
}

// Run parses content and executes every operator in order, checking
// opts.Cancel between operators (spec.md 5's suspension-point
// requirement for long-running conversions).
func (ip *Interpreter) Run(content []byte) error {
	ops, err := NewContentParser(content).ParseOperators()
	if err != nil {
		return fmt.Errorf("interpreter: parsing content stream: %w", err)
	}
	return ip.execute(ops)
}

func (ip *Interpreter) execute(ops []*Operator) error {
	ctx := ip.opts.ctx()
	for _, op := range ops {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		handler, known := operatorTable[op.Name]
		if !known {
			// Unrecognized operators are skipped, not fatal: a malformed
			// or forward-versioned content stream should still render
			// everything it can. BX/EX exists precisely to bracket
			// operators a reader might not know, so this is the correct
			// behavior whether or not mc.inCompat() is true.
			if !ip.mc.inCompat() {
				logging.Logger().Debug("skipping unrecognized operator", "operator", op.Name)
			}
			continue
		}
		if err := handler(ip, op.Operands); err != nil {
			return fmt.Errorf("interpreter: operator %q: %w", op.Name, err)
		}
	}
	return nil
}

func (ip *Interpreter) pushState() {
	ip.gsStack = append(ip.gsStack, ip.gs)
	ip.gs = ip.gs.Clone()
}

func (ip *Interpreter) popState() error {
	if len(ip.gsStack) == 0 {
		logging.Logger().Warn("unbalanced Q: graphics state stack already empty")
		return nil // unbalanced Q: ignore rather than abort the page
	}
	ip.gs = ip.gsStack[len(ip.gsStack)-1]
	ip.gsStack = ip.gsStack[:len(ip.gsStack)-1]
	return nil
}

func (ip *Interpreter) currentResources() *parser.Dictionary {
	return ip.resourcesStack[len(ip.resourcesStack)-1]
}

// resourceSubdict resolves one of the current resource dictionary's
// subdictionaries (Font, XObject, ExtGState, ColorSpace, Properties).
func (ip *Interpreter) resourceSubdict(name string) (*parser.Dictionary, bool) {
	res := ip.currentResources()
	if res == nil {
		return nil, false
	}
	dict, ok := ip.reader.Resolve(res.Get(name)).(*parser.Dictionary)
	return dict, ok
}

func (ip *Interpreter) hiddenDrawing() bool {
	return ip.mc.hidden()
}

// paintPath runs the painting step common to S/s/f/F/f*/B/B*/b/b*/n:
// unless the path is empty or drawing is suppressed, emit it with the
// requested fill/stroke (n omits both), then apply any pending clip so
// it takes effect from the next path onward.
func (ip *Interpreter) paintPath(fill, stroke, evenOdd bool) error {
	segs := append([]svgdom.PathSegment(nil), ip.path.segs...)
	defer ip.path.Reset()

	ctm := ip.gs.CTM
	defer ip.clip.apply(ip.gs, segs, ctm)

	if len(segs) == 0 || ip.hiddenDrawing() {
		return nil
	}
	if !fill && !stroke {
		return nil
	}

	transformed := transformSegments(segs, ctm)
	d := svgdom.BuildPathData(transformed)

	paint := svgdom.Paint{}
	if fill {
		paint.Fill = ip.gs.FillColor.Hex()
		paint.FillOpacity = ip.gs.FillAlpha
		if evenOdd {
			paint.FillRule = "evenodd"
		} else {
			paint.FillRule = "nonzero"
		}
	}
	if stroke {
		paint.Stroke = ip.gs.StrokeColor.Hex()
		paint.StrokeOpacity = ip.gs.StrokeAlpha
		width := ip.gs.LineWidth
		if width < ip.opts.MinStrokeWidth {
			width = ip.opts.MinStrokeWidth
		}
		paint.StrokeWidth = width
		paint.LineCap = lineCapName(ip.gs.LineCap)
		paint.LineJoin = lineJoinName(ip.gs.LineJoin)
		paint.DashArray = dashArrayString(ip.gs.DashArray)
	}

	ip.emitWithClip(func() {
		ip.emitter.Path(d, paint)
	})
	return nil
}

// emitWithClip wraps draw() in a clipped group when the graphics state
// carries an active clip, so every shape type (path, text, image) gets
// the same clip handling without threading a ClipPathID through each
// emitter call individually.
func (ip *Interpreter) emitWithClip(draw func()) {
	if ip.gs.Clip == nil {
		draw()
		return
	}
	clipID := internClip(ip.emitter.Defs(), ip.gs.Clip)
	ip.emitter.BeginGroup("", clipID, 1)
	draw()
	ip.emitter.EndGroup()
}

func dashArrayString(dashes []float64) string {
	if len(dashes) == 0 {
		return ""
	}
	s := ""
	for i, d := range dashes {
		if i > 0 {
			s += ","
		}
		s += svgdom.FormatNumber(d)
	}
	return s
}

// loadCurrentFont resolves /Font's entry named fontName in the current
// resources and loads it via the shared FontCache, installing it as
// gs.Font for subsequent text-showing operators.
func (ip *Interpreter) loadCurrentFont(fontName string) error {
	fontDicts, ok := ip.resourceSubdict("Font")
	if !ok {
		return nil
	}
	dict, ok := ip.reader.Resolve(fontDicts.Get(fontName)).(*parser.Dictionary)
	if !ok {
		return nil
	}
	font, err := ip.fontCache.Load(dict)
	if err != nil {
		logging.Logger().Warn("font load failed, text using this resource will not render", "font", fontName, "error", err)
		return nil // a font the cache can't build degrades to no text, not a failed page
	}
	ip.gs.Font = font
	return nil
}
