package interpreter

import (
	"fmt"

	"github.com/coregx/gxpdf/internal/parser"
)

// opHandler runs one content-stream operator against the interpreter's
// current state. Operands arrive in the order the content stream wrote
// them (PDF operands precede their operator, so by the time the
// dispatcher sees them they are already in natural left-to-right
// order, not reversed).
type opHandler func(ip *Interpreter, operands []parser.PdfObject) error

// operatorTable maps every operator name spec.md 4.5 enumerates to its
// handler, grounded on the metadata-table dispatch pattern
// other_examples' seehuhn-go-pdf graphics package uses for the same
// purpose (there keyed to a richer per-operator struct carrying
// PDF-version gating this converter has no use for).
var operatorTable = map[string]opHandler{
	// General graphics state.
	"q":  (*Interpreter).opSaveState,
	"Q":  (*Interpreter).opRestoreState,
	"cm": (*Interpreter).opConcatMatrix,
	"w":  (*Interpreter).opLineWidth,
	"J":  (*Interpreter).opLineCap,
	"j":  (*Interpreter).opLineJoin,
	"M":  (*Interpreter).opMiterLimit,
	"d":  (*Interpreter).opDashPattern,
	"ri": (*Interpreter).opNoop,
	"i":  (*Interpreter).opNoop,
	"gs": (*Interpreter).opExtGState,

	// Path construction.
	"m":  (*Interpreter).opMoveTo,
	"l":  (*Interpreter).opLineTo,
	"c":  (*Interpreter).opCurveTo,
	"v":  (*Interpreter).opCurveToV,
	"y":  (*Interpreter).opCurveToY,
	"h":  (*Interpreter).opClosePath,
	"re": (*Interpreter).opRect,

	// Path painting.
	"S":  (*Interpreter).opStroke,
	"s":  (*Interpreter).opCloseStroke,
	"f":  (*Interpreter).opFillNonzero,
	"F":  (*Interpreter).opFillNonzero,
	"f*": (*Interpreter).opFillEvenOdd,
	"B":  (*Interpreter).opFillStrokeNonzero,
	"B*": (*Interpreter).opFillStrokeEvenOdd,
	"b":  (*Interpreter).opCloseFillStrokeNonzero,
	"b*": (*Interpreter).opCloseFillStrokeEvenOdd,
	"n":  (*Interpreter).opEndPath,

	// Clipping.
	"W":  (*Interpreter).opClipNonzero,
	"W*": (*Interpreter).opClipEvenOdd,

	// Color.
	"CS": (*Interpreter).opSetStrokeColorSpace,
	"cs": (*Interpreter).opSetFillColorSpace,
	"SC": (*Interpreter).opSetStrokeColor,
	"sc": (*Interpreter).opSetFillColor,
	"SCN": (*Interpreter).opSetStrokeColor,
	"scn": (*Interpreter).opSetFillColor,
	"G":  (*Interpreter).opSetStrokeGray,
	"g":  (*Interpreter).opSetFillGray,
	"RG": (*Interpreter).opSetStrokeRGB,
	"rg": (*Interpreter).opSetFillRGB,
	"K":  (*Interpreter).opSetStrokeCMYK,
	"k":  (*Interpreter).opSetFillCMYK,

	// Text objects.
	"BT": (*Interpreter).opBeginText,
	"ET": (*Interpreter).opEndText,

	// Text state.
	"Tc": (*Interpreter).opCharSpace,
	"Tw": (*Interpreter).opWordSpace,
	"Tz": (*Interpreter).opHorizScale,
	"TL": (*Interpreter).opLeading,
	"Tf": (*Interpreter).opSetFont,
	"Tr": (*Interpreter).opRenderMode,
	"Ts": (*Interpreter).opRise,

	// Text positioning.
	"Td": (*Interpreter).opTextMove,
	"TD": (*Interpreter).opTextMoveSetLeading,
	"Tm": (*Interpreter).opSetTextMatrix,
	"T*": (*Interpreter).opNextLine,

	// Text showing.
	"Tj": (*Interpreter).opShowText,
	"'":  (*Interpreter).opNextLineShowText,
	"\"": (*Interpreter).opNextLineShowTextWithSpacing,
	"TJ": (*Interpreter).opShowTextArray,

	// XObjects.
	"Do": (*Interpreter).opDoXObject,

	// Marked content.
	"BMC": (*Interpreter).opBeginMarkedContent,
	"BDC": (*Interpreter).opBeginMarkedContentWithProps,
	"EMC": (*Interpreter).opEndMarkedContent,
	"MP":  (*Interpreter).opNoop,
	"DP":  (*Interpreter).opNoop,

	// Compatibility.
	"BX": (*Interpreter).opBeginCompat,
	"EX": (*Interpreter).opEndCompat,

	// Inline images: ID's raw binary payload cannot survive this
	// tokenizer's keyword/operand model intact, so inline images are
	// recognized (to avoid an "unknown operator" abort) and skipped
	// rather than rendered. BI/EI bracket one image each; any operands
	// captured between them are simply discarded.
	"BI": (*Interpreter).opNoop,
	"ID": (*Interpreter).opNoop,
	"EI": (*Interpreter).opNoop,
}

func (ip *Interpreter) opNoop(_ []parser.PdfObject) error { return nil }

func (ip *Interpreter) opSaveState(_ []parser.PdfObject) error {
	ip.pushState()
	return nil
}

func (ip *Interpreter) opRestoreState(_ []parser.PdfObject) error {
	return ip.popState()
}

func (ip *Interpreter) opConcatMatrix(ops []parser.PdfObject) error {
	m, err := matrixFromOperands(ops)
	if err != nil {
		return err
	}
	// cm replaces CTM with M x CTM (PDF 1.7 8.3.4): a point maps by the
	// new local matrix first, then by the previously-established CTM.
	// Matrix.Multiply(other) composes as "other first, then receiver",
	// so the old CTM (receiver) must be multiplied by m (other).
	ip.gs.CTM = ip.gs.CTM.Multiply(m)
	return nil
}

func (ip *Interpreter) opLineWidth(ops []parser.PdfObject) error {
	if len(ops) < 1 {
		return nil
	}
	ip.gs.LineWidth = asFloat(ops[0])
	return nil
}

func (ip *Interpreter) opLineCap(ops []parser.PdfObject) error {
	if len(ops) < 1 {
		return nil
	}
	ip.gs.LineCap = int(asInt(ops[0]))
	return nil
}

func (ip *Interpreter) opLineJoin(ops []parser.PdfObject) error {
	if len(ops) < 1 {
		return nil
	}
	ip.gs.LineJoin = int(asInt(ops[0]))
	return nil
}

func (ip *Interpreter) opMiterLimit(_ []parser.PdfObject) error { return nil }

func (ip *Interpreter) opDashPattern(ops []parser.PdfObject) error {
	if len(ops) < 2 {
		return nil
	}
	arr, ok := ops[0].(*parser.Array)
	if !ok {
		return nil
	}
	dashes := make([]float64, arr.Len())
	for i := 0; i < arr.Len(); i++ {
		dashes[i] = asFloat(arr.Get(i))
	}
	ip.gs.DashArray = dashes
	ip.gs.DashPhase = asFloat(ops[1])
	return nil
}

// opExtGState handles gs: the only /ExtGState entries this converter
// consults are /ca, /CA (fill/stroke alpha) and /LW; blend modes and
// soft masks on graphics state (distinct from an image's own /SMask)
// are left at their default, per spec.md's Non-goals around blending.
func (ip *Interpreter) opExtGState(ops []parser.PdfObject) error {
	if len(ops) < 1 {
		return nil
	}
	name, ok := ops[0].(*parser.Name)
	if !ok {
		return nil
	}
	extGStates, ok := ip.resourceSubdict("ExtGState")
	if !ok {
		return nil
	}
	dict, ok := ip.reader.Resolve(extGStates.Get(name.Value())).(*parser.Dictionary)
	if !ok {
		return nil
	}
	if dict.Has("ca") {
		ip.gs.FillAlpha = dict.GetReal("ca")
	}
	if dict.Has("CA") {
		ip.gs.StrokeAlpha = dict.GetReal("CA")
	}
	if dict.Has("LW") {
		ip.gs.LineWidth = dict.GetReal("LW")
	}
	return nil
}

func (ip *Interpreter) opMoveTo(ops []parser.PdfObject) error {
	if len(ops) < 2 {
		return nil
	}
	ip.path.MoveTo(asFloat(ops[0]), asFloat(ops[1]))
	return nil
}

func (ip *Interpreter) opLineTo(ops []parser.PdfObject) error {
	if len(ops) < 2 {
		return nil
	}
	ip.path.LineTo(asFloat(ops[0]), asFloat(ops[1]))
	return nil
}

func (ip *Interpreter) opCurveTo(ops []parser.PdfObject) error {
	if len(ops) < 6 {
		return nil
	}
	ip.path.CurveTo(asFloat(ops[0]), asFloat(ops[1]), asFloat(ops[2]), asFloat(ops[3]), asFloat(ops[4]), asFloat(ops[5]))
	return nil
}

func (ip *Interpreter) opCurveToV(ops []parser.PdfObject) error {
	if len(ops) < 4 {
		return nil
	}
	ip.path.CurveToV(asFloat(ops[0]), asFloat(ops[1]), asFloat(ops[2]), asFloat(ops[3]))
	return nil
}

func (ip *Interpreter) opCurveToY(ops []parser.PdfObject) error {
	if len(ops) < 4 {
		return nil
	}
	ip.path.CurveToY(asFloat(ops[0]), asFloat(ops[1]), asFloat(ops[2]), asFloat(ops[3]))
	return nil
}

func (ip *Interpreter) opClosePath(_ []parser.PdfObject) error {
	ip.path.ClosePath()
	return nil
}

func (ip *Interpreter) opRect(ops []parser.PdfObject) error {
	if len(ops) < 4 {
		return nil
	}
	ip.path.Rect(asFloat(ops[0]), asFloat(ops[1]), asFloat(ops[2]), asFloat(ops[3]))
	return nil
}

func (ip *Interpreter) opStroke(_ []parser.PdfObject) error          { return ip.paintPath(false, true, false) }
func (ip *Interpreter) opCloseStroke(_ []parser.PdfObject) error     { ip.path.ClosePath(); return ip.paintPath(false, true, false) }
func (ip *Interpreter) opFillNonzero(_ []parser.PdfObject) error     { return ip.paintPath(true, false, false) }
func (ip *Interpreter) opFillEvenOdd(_ []parser.PdfObject) error     { return ip.paintPath(true, false, true) }
func (ip *Interpreter) opFillStrokeNonzero(_ []parser.PdfObject) error { return ip.paintPath(true, true, false) }
func (ip *Interpreter) opFillStrokeEvenOdd(_ []parser.PdfObject) error { return ip.paintPath(true, true, true) }
func (ip *Interpreter) opCloseFillStrokeNonzero(_ []parser.PdfObject) error {
	ip.path.ClosePath()
	return ip.paintPath(true, true, false)
}
func (ip *Interpreter) opCloseFillStrokeEvenOdd(_ []parser.PdfObject) error {
	ip.path.ClosePath()
	return ip.paintPath(true, true, true)
}
func (ip *Interpreter) opEndPath(_ []parser.PdfObject) error { return ip.paintPath(false, false, false) }

func (ip *Interpreter) opClipNonzero(_ []parser.PdfObject) error {
	ip.clip.setPending(false)
	return nil
}

func (ip *Interpreter) opClipEvenOdd(_ []parser.PdfObject) error {
	ip.clip.setPending(true)
	return nil
}

func (ip *Interpreter) opSetStrokeColorSpace(ops []parser.PdfObject) error {
	if len(ops) < 1 {
		return nil
	}
	ip.gs.StrokeColorSpace = ip.resolveOperandColorSpace(ops[0])
	ip.gs.StrokeColor = Black
	return nil
}

func (ip *Interpreter) opSetFillColorSpace(ops []parser.PdfObject) error {
	if len(ops) < 1 {
		return nil
	}
	ip.gs.FillColorSpace = ip.resolveOperandColorSpace(ops[0])
	ip.gs.FillColor = Black
	return nil
}

// resolveOperandColorSpace resolves a CS/cs operand, which per PDF 1.7
// 8.6.5.5 is a name that is either one of the device families directly
// or a key into the resources' /ColorSpace dictionary.
func (ip *Interpreter) resolveOperandColorSpace(obj parser.PdfObject) *ColorSpace {
	csResources, _ := ip.resourceSubdict("ColorSpace")
	return resolveColorSpace(ip.reader, csResources, obj)
}

func componentsFromOperands(ops []parser.PdfObject) []float64 {
	out := make([]float64, 0, len(ops))
	for _, o := range ops {
		if _, isName := o.(*parser.Name); isName {
			continue // SCN/scn's trailing pattern-name operand
		}
		out = append(out, asFloat(o))
	}
	return out
}

func (ip *Interpreter) opSetStrokeColor(ops []parser.PdfObject) error {
	cs := ip.gs.StrokeColorSpace
	if cs == nil {
		cs = DeviceGrayCS
	}
	ip.gs.StrokeColor = cs.ToRGB(componentsFromOperands(ops))
	return nil
}

func (ip *Interpreter) opSetFillColor(ops []parser.PdfObject) error {
	cs := ip.gs.FillColorSpace
	if cs == nil {
		cs = DeviceGrayCS
	}
	ip.gs.FillColor = cs.ToRGB(componentsFromOperands(ops))
	return nil
}

func (ip *Interpreter) opSetStrokeGray(ops []parser.PdfObject) error {
	ip.gs.StrokeColorSpace = DeviceGrayCS
	ip.gs.StrokeColor = DeviceGrayCS.ToRGB(componentsFromOperands(ops))
	return nil
}

func (ip *Interpreter) opSetFillGray(ops []parser.PdfObject) error {
	ip.gs.FillColorSpace = DeviceGrayCS
	ip.gs.FillColor = DeviceGrayCS.ToRGB(componentsFromOperands(ops))
	return nil
}

func (ip *Interpreter) opSetStrokeRGB(ops []parser.PdfObject) error {
	ip.gs.StrokeColorSpace = DeviceRGBCS
	ip.gs.StrokeColor = DeviceRGBCS.ToRGB(componentsFromOperands(ops))
	return nil
}

func (ip *Interpreter) opSetFillRGB(ops []parser.PdfObject) error {
	ip.gs.FillColorSpace = DeviceRGBCS
	ip.gs.FillColor = DeviceRGBCS.ToRGB(componentsFromOperands(ops))
	return nil
}

func (ip *Interpreter) opSetStrokeCMYK(ops []parser.PdfObject) error {
	ip.gs.StrokeColorSpace = DeviceCMYKCS
	ip.gs.StrokeColor = DeviceCMYKCS.ToRGB(componentsFromOperands(ops))
	return nil
}

func (ip *Interpreter) opSetFillCMYK(ops []parser.PdfObject) error {
	ip.gs.FillColorSpace = DeviceCMYKCS
	ip.gs.FillColor = DeviceCMYKCS.ToRGB(componentsFromOperands(ops))
	return nil
}

func (ip *Interpreter) opBeginText(_ []parser.PdfObject) error {
	ip.gs.Text.Reset()
	return nil
}

func (ip *Interpreter) opEndText(_ []parser.PdfObject) error { return nil }

func (ip *Interpreter) opCharSpace(ops []parser.PdfObject) error {
	if len(ops) < 1 {
		return nil
	}
	ip.gs.Text.CharSpace = asFloat(ops[0])
	return nil
}

func (ip *Interpreter) opWordSpace(ops []parser.PdfObject) error {
	if len(ops) < 1 {
		return nil
	}
	ip.gs.Text.WordSpace = asFloat(ops[0])
	return nil
}

func (ip *Interpreter) opHorizScale(ops []parser.PdfObject) error {
	if len(ops) < 1 {
		return nil
	}
	ip.gs.Text.HorizScale = asFloat(ops[0])
	return nil
}

func (ip *Interpreter) opLeading(ops []parser.PdfObject) error {
	if len(ops) < 1 {
		return nil
	}
	ip.gs.Text.Leading = asFloat(ops[0])
	return nil
}

func (ip *Interpreter) opSetFont(ops []parser.PdfObject) error {
	if len(ops) < 2 {
		return nil
	}
	name, ok := ops[0].(*parser.Name)
	if !ok {
		return nil
	}
	ip.gs.Text.SetFont(name.Value(), asFloat(ops[1]))
	return ip.loadCurrentFont(name.Value())
}

func (ip *Interpreter) opRenderMode(ops []parser.PdfObject) error {
	if len(ops) < 1 {
		return nil
	}
	ip.gs.Text.RenderMode = int(asInt(ops[0]))
	return nil
}

func (ip *Interpreter) opRise(ops []parser.PdfObject) error {
	if len(ops) < 1 {
		return nil
	}
	ip.gs.Text.Rise = asFloat(ops[0])
	return nil
}

func (ip *Interpreter) opTextMove(ops []parser.PdfObject) error {
	if len(ops) < 2 {
		return nil
	}
	ip.gs.Text.Translate(asFloat(ops[0]), asFloat(ops[1]))
	return nil
}

func (ip *Interpreter) opTextMoveSetLeading(ops []parser.PdfObject) error {
	if len(ops) < 2 {
		return nil
	}
	ip.gs.Text.TranslateSetLeading(asFloat(ops[0]), asFloat(ops[1]))
	return nil
}

func (ip *Interpreter) opSetTextMatrix(ops []parser.PdfObject) error {
	if len(ops) < 6 {
		return nil
	}
	ip.gs.Text.SetTextMatrix(asFloat(ops[0]), asFloat(ops[1]), asFloat(ops[2]), asFloat(ops[3]), asFloat(ops[4]), asFloat(ops[5]))
	return nil
}

func (ip *Interpreter) opNextLine(_ []parser.PdfObject) error {
	ip.gs.Text.MoveToNextLine()
	return nil
}

func (ip *Interpreter) opShowText(ops []parser.PdfObject) error {
	if len(ops) < 1 {
		return nil
	}
	s, ok := ops[0].(*parser.String)
	if !ok {
		return nil
	}
	return ip.showText(s.Bytes())
}

func (ip *Interpreter) opNextLineShowText(ops []parser.PdfObject) error {
	ip.gs.Text.MoveToNextLine()
	return ip.opShowText(ops)
}

func (ip *Interpreter) opNextLineShowTextWithSpacing(ops []parser.PdfObject) error {
	if len(ops) < 3 {
		return nil
	}
	ip.gs.Text.WordSpace = asFloat(ops[0])
	ip.gs.Text.CharSpace = asFloat(ops[1])
	ip.gs.Text.MoveToNextLine()
	s, ok := ops[2].(*parser.String)
	if !ok {
		return nil
	}
	return ip.showText(s.Bytes())
}

func (ip *Interpreter) opShowTextArray(ops []parser.PdfObject) error {
	if len(ops) < 1 {
		return nil
	}
	arr, ok := ops[0].(*parser.Array)
	if !ok {
		return nil
	}
	for i := 0; i < arr.Len(); i++ {
		switch v := arr.Get(i).(type) {
		case *parser.String:
			if err := ip.showText(v.Bytes()); err != nil {
				return err
			}
		case *parser.Integer:
			ip.adjustTextPosition(float64(v.Value()))
		case *parser.Real:
			ip.adjustTextPosition(v.Value())
		}
	}
	return nil
}

func (ip *Interpreter) opDoXObject(ops []parser.PdfObject) error {
	if len(ops) < 1 {
		return nil
	}
	name, ok := ops[0].(*parser.Name)
	if !ok {
		return nil
	}
	return ip.doXObject(name.Value())
}

func (ip *Interpreter) opBeginMarkedContent(_ []parser.PdfObject) error {
	ip.mc.begin(ip.reader, nil, nil, ip.opts.IncludeHiddenText)
	return nil
}

func (ip *Interpreter) opBeginMarkedContentWithProps(ops []parser.PdfObject) error {
	propResources, _ := ip.resourceSubdict("Properties")
	var props parser.PdfObject
	if len(ops) >= 2 {
		props = ops[1]
	}
	ip.mc.begin(ip.reader, propResources, props, ip.opts.IncludeHiddenText)
	return nil
}

func (ip *Interpreter) opEndMarkedContent(_ []parser.PdfObject) error {
	ip.mc.end()
	return nil
}

func (ip *Interpreter) opBeginCompat(_ []parser.PdfObject) error {
	ip.mc.beginCompat()
	return nil
}

func (ip *Interpreter) opEndCompat(_ []parser.PdfObject) error {
	ip.mc.endCompat()
	return nil
}

func matrixFromOperands(ops []parser.PdfObject) (Matrix, error) {
	if len(ops) < 6 {
		return Identity(), fmt.Errorf("interpreter: matrix operator needs 6 operands, got %d", len(ops))
	}
	return NewMatrix(asFloat(ops[0]), asFloat(ops[1]), asFloat(ops[2]), asFloat(ops[3]), asFloat(ops[4]), asFloat(ops[5])), nil
}

func arrayToMatrix(reader *parser.Reader, arr *parser.Array) Matrix {
	vals := make([]float64, 6)
	for i := 0; i < 6 && i < arr.Len(); i++ {
		vals[i] = asFloat(reader.Resolve(arr.Get(i)))
	}
	return NewMatrix(vals[0], vals[1], vals[2], vals[3], vals[4], vals[5])
}
