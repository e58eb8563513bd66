package interpreter

import (
	"strings"

	"github.com/coregx/gxpdf/internal/svgdom"
)

// decodeCodes splits a show-text string into character codes: two
// bytes per code for Type0/CID fonts (the overwhelming majority of
// which use Identity-H/Identity-V, a fixed 2-byte encoding), one byte
// per code otherwise.
func decodeCodes(data []byte, font *LoadedFont) []uint32 {
	if font != nil && font.Is2Byte {
		codes := make([]uint32, 0, len(data)/2)
		for i := 0; i+1 < len(data); i += 2 {
			codes = append(codes, uint32(data[i])<<8|uint32(data[i+1]))
		}
		return codes
	}
	codes := make([]uint32, len(data))
	for i, b := range data {
		codes[i] = uint32(b)
	}
	return codes
}

// showText implements Tj (and the string-showing portion of ', ", and
// TJ): decode the string's character codes through the current font's
// CharMap, accumulate one <text>/<tspan> run for the whole string (PDF
// inter-glyph advances are not reproduced in the SVG — the browser's
// own font metrics lay the run out, which the example corpus's own
// text-extraction-only CharMap mode already commits to), then advance
// the text matrix by the string's total glyph-space width exactly as a
// real PDF renderer would (PDF 1.7 9.4.3).
func (ip *Interpreter) showText(data []byte) error {
	font := ip.gs.Font
	ts := ip.gs.Text
	codes := decodeCodes(data, font)

	var text strings.Builder
	var totalAdvance float64
	th := ts.HorizScale / 100
	if th == 0 {
		th = 1
	}

	for _, code := range codes {
		r, notdef := lookupRune(font, code)
		if !notdef {
			text.WriteRune(r)
		}

		w0 := glyphWidth(font, code) / 1000
		tx := w0*ts.FontSize + ts.CharSpace
		if code == 0x20 && (font == nil || !font.Is2Byte) {
			tx += ts.WordSpace
		}
		totalAdvance += tx * th
	}

	if !ip.hiddenDrawing() && (ts.RenderMode != 3 || ip.opts.IncludeHiddenText) && text.Len() > 0 {
		paramMatrix := NewMatrix(th, 0, 0, 1, 0, ts.Rise)
		trm := ip.gs.CTM.Multiply(ts.Tm.Multiply(paramMatrix))
		run := svgdom.TextRun{
			Content:    text.String(),
			FontFamily: fontFamily(font),
			FontSize:   ts.FontSize,
			Fill:       textFillColor(ip.gs, ts.RenderMode),
		}
		ip.emitWithClip(func() {
			ip.emitter.Text([]svgdom.TextRun{run}, trm.svgTransform())
		})
	}

	ts.AdvanceX(totalAdvance)
	return nil
}

// adjustTextPosition implements a TJ array's numeric adjustments: a
// positive number moves left, scaled by -1/1000 of the font size and
// horizontal scaling (PDF 1.7 9.4.3).
func (ip *Interpreter) adjustTextPosition(amount float64) {
	ts := ip.gs.Text
	th := ts.HorizScale / 100
	if th == 0 {
		th = 1
	}
	ts.AdvanceX(-amount / 1000 * ts.FontSize * th)
}

func lookupRune(font *LoadedFont, code uint32) (rune, bool) {
	if font == nil || font.CharMap == nil {
		return 0xFFFD, true
	}
	entry, ok := font.CharMap.Lookup(code)
	if !ok || entry.NotDef {
		return 0xFFFD, true
	}
	return entry.Unicode, false
}

func glyphWidth(font *LoadedFont, code uint32) float64 {
	if font == nil {
		return 500
	}
	if w, ok := font.Widths[code]; ok {
		return w
	}
	return font.DefaultWidth
}

func fontFamily(font *LoadedFont) string {
	if font == nil || font.FontFamily == "" {
		return "Helvetica, Arial, sans-serif"
	}
	return font.FontFamily
}

// textFillColor picks the color a render mode paints with: mode 1
// (stroke only) uses the stroke color and every other mode, including
// 2 (fill+stroke), the fill color, since this converter only ever emits
// a single flat-color tspan per run, not a separately stroked glyph
// outline.
func textFillColor(gs *GraphicsState, renderMode int) string {
	if renderMode == 1 {
		return gs.StrokeColor.Hex()
	}
	return gs.FillColor.Hex()
}
