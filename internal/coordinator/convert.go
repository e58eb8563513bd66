// Package coordinator wires the xref/filter/interpreter/font/image
// layers together into one page-conversion entry point, the way the
// teacher's document.go/page.go delegate each public method to an
// application-layer service.
package coordinator

import (
	"bytes"
	"context"
	"fmt"

	"github.com/coregx/gxpdf/internal/interpreter"
	"github.com/coregx/gxpdf/internal/parser"
	"github.com/coregx/gxpdf/internal/svgdom"
)

// ConvertPage renders the pageIndex-th page (0-based) of reader's
// document into a complete SVG element tree: it resolves the page's
// effective /CropBox (falling back to /MediaBox) and /Rotate, builds
// the page-level transform spec.md 4.7 calls for, loads the page's own
// font cache and resources, and runs the content-stream interpreter
// over the page's (possibly multi-stream) /Contents.
func ConvertPage(reader *parser.Reader, pageIndex int, opts interpreter.Options) (*svgdom.Emitter, error) {
	ctx := opts.Cancel
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	pageDict, err := reader.GetPage(pageIndex)
	if err != nil {
		return nil, fmt.Errorf("coordinator: %w", err)
	}

	b := effectiveBox(reader, pageDict)
	rotate := normalizeRotate(pageDict.GetInteger("Rotate"))
	width, height := b.width(), b.height()
	if rotate == 90 || rotate == 270 {
		width, height = height, width
	}

	emitter := svgdom.NewEmitter(width, height)

	resources, _ := reader.Resolve(pageDict.Get("Resources")).(*parser.Dictionary)
	fontCache := interpreter.NewFontCache(reader, opts.FontResolver, emitter)

	ip := interpreter.New(reader, emitter, fontCache, resources, pageTransform(b, rotate), opts)

	content, err := pageContent(reader, pageDict)
	if err != nil {
		return nil, fmt.Errorf("coordinator: reading page content: %w", err)
	}
	if err := ip.Run(content); err != nil {
		return nil, fmt.Errorf("coordinator: %w", err)
	}
	return emitter, nil
}

// pageContent concatenates a page's /Contents, which PDF 1.7 7.8.2
// permits as either a single stream or an array of streams (treated as
// if their decoded bytes were concatenated with a separating newline,
// so a token never straddles two streams' boundary incorrectly).
func pageContent(reader *parser.Reader, pageDict *parser.Dictionary) ([]byte, error) {
	switch v := reader.Resolve(pageDict.Get("Contents")).(type) {
	case *parser.Stream:
		return v.Decode()
	case *parser.Array:
		var buf bytes.Buffer
		for i := 0; i < v.Len(); i++ {
			stream, ok := reader.Resolve(v.Get(i)).(*parser.Stream)
			if !ok {
				continue
			}
			data, err := stream.Decode()
			if err != nil {
				return nil, err
			}
			buf.Write(data)
			buf.WriteByte('\n')
		}
		return buf.Bytes(), nil
	default:
		return nil, nil
	}
}

// box is a page's MediaBox/CropBox in PDF point space, not yet
// normalized for a possibly-reversed corner order.
type box struct {
	x0, y0, x1, y1 float64
}

func normalize(b box) box {
	if b.x1 < b.x0 {
		b.x0, b.x1 = b.x1, b.x0
	}
	if b.y1 < b.y0 {
		b.y0, b.y1 = b.y1, b.y0
	}
	return b
}

func (b box) width() float64  { return b.x1 - b.x0 }
func (b box) height() float64 { return b.y1 - b.y0 }

// usLetter is the fallback box (PDF 1.7 7.7.3.3 leaves /MediaBox
// inheritance undefined if no ancestor ever set one; no real PDF omits
// it, but a fallback keeps a malformed page from crashing rather than
// failing the whole conversion).
var usLetter = box{0, 0, 612, 792}

func effectiveBox(reader *parser.Reader, dict *parser.Dictionary) box {
	if b, ok := resolveBox(reader, dict, "CropBox"); ok {
		return normalize(b)
	}
	if b, ok := resolveBox(reader, dict, "MediaBox"); ok {
		return normalize(b)
	}
	return usLetter
}

func resolveBox(reader *parser.Reader, dict *parser.Dictionary, key string) (box, bool) {
	arr, ok := reader.Resolve(dict.Get(key)).(*parser.Array)
	if !ok || arr.Len() != 4 {
		return box{}, false
	}
	vals := [4]float64{}
	for i := range vals {
		vals[i] = asFloat(reader.Resolve(arr.Get(i)))
	}
	return box{vals[0], vals[1], vals[2], vals[3]}, true
}

func asFloat(obj parser.PdfObject) float64 {
	switch v := obj.(type) {
	case *parser.Integer:
		return float64(v.Value())
	case *parser.Real:
		return v.Value()
	default:
		return 0
	}
}

// normalizeRotate folds /Rotate into {0, 90, 180, 270}; PDF requires a
// multiple of 90, but a malformed value is rounded down to the nearest
// one rather than rejected.
func normalizeRotate(raw int64) int {
	r := int(raw) % 360
	if r < 0 {
		r += 360
	}
	return (r / 90) * 90
}

// pageTransform builds the single outer transform spec.md 4.7 and
// spec.md line 98 describe: translate the CropBox's origin to (0,0),
// flip PDF's upward y-axis to SVG's downward one, then rotate for
// display per /Rotate (which also swaps the viewBox's width/height for
// 90/270). Composed via Matrix.Multiply's "apply the argument first,
// then the receiver" convention (text_state.go), so the three stages
// read right-to-left in application order: cropShift, then flip, then
// rotate.
func pageTransform(b box, rotate int) interpreter.Matrix {
	cropShift := interpreter.Translation(-b.x0, -b.y0)
	flip := interpreter.NewMatrix(1, 0, 0, -1, 0, b.height())
	rot := rotationMatrix(rotate, b.width(), b.height())
	return rot.Multiply(flip.Multiply(cropShift))
}

// rotationMatrix maps the unrotated, already-flipped w x h rectangle
// onto the rotated viewBox (swapped to h x w for 90/270), derived by
// tracking where each corner of the unrotated rectangle lands after a
// clockwise rotation by the given number of degrees.
func rotationMatrix(rotate int, w, h float64) interpreter.Matrix {
	switch rotate {
	case 90:
		return interpreter.NewMatrix(0, 1, -1, 0, h, 0)
	case 180:
		return interpreter.NewMatrix(-1, 0, 0, -1, w, h)
	case 270:
		return interpreter.NewMatrix(0, -1, 1, 0, 0, w)
	default:
		return interpreter.Identity()
	}
}
