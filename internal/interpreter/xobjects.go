package interpreter

import (
	"fmt"

	"github.com/coregx/gxpdf/internal/imagedecode"
	"github.com/coregx/gxpdf/internal/parser"
	"github.com/coregx/gxpdf/internal/svgdom"
)

// maxXObjectDepth guards against a Form XObject that (directly, or via
// a cycle of several) invokes itself, which would otherwise recurse the
// interpreter forever; no legitimate PDF nests this deep.
const maxXObjectDepth = 16

// doXObject implements the Do operator: look up name in the current
// resource dictionary's /XObject subdictionary and dispatch on its
// /Subtype.
func (ip *Interpreter) doXObject(name string) error {
	if ip.xobjectDepth >= maxXObjectDepth {
		return fmt.Errorf("interpreter: XObject nesting exceeds %d, likely a cycle", maxXObjectDepth)
	}

	xobjDict, ok := ip.resourceSubdict("XObject")
	if !ok {
		return nil
	}
	obj := ip.reader.Resolve(xobjDict.Get(name))
	stream, ok := obj.(*parser.Stream)
	if !ok {
		return nil
	}

	dict := stream.Dictionary()
	subtype := dict.GetName("Subtype")
	if subtype == nil {
		return nil
	}

	switch subtype.Value() {
	case "Form":
		return ip.runFormXObject(stream)
	case "Image":
		return ip.drawImageXObject(stream)
	default:
		return nil
	}
}

// runFormXObject executes a Form XObject's own content stream as a
// nested q/.../Q block: the caller's graphics state is saved, the
// form's /Matrix premultiplies the CTM, a /BBox clips the result, and
// the form's own /Resources (falling back to the caller's, per PDF 1.7
// 8.10.2) takes over resource lookups for the duration. A /Group
// /S /Transparency entry is not modeled as a distinct isolated/
// knockout compositing group — it just renders as a plain nested
// group, since blending itself is out of scope.
func (ip *Interpreter) runFormXObject(stream *parser.Stream) error {
	dict := stream.Dictionary()
	content, err := stream.Decode()
	if err != nil {
		return fmt.Errorf("interpreter: form xobject: %w", err)
	}

	ip.pushState()
	defer ip.popState()

	if arr, ok := ip.reader.Resolve(dict.Get("Matrix")).(*parser.Array); ok && arr.Len() == 6 {
		ip.gs.CTM = ip.gs.CTM.Multiply(arrayToMatrix(ip.reader, arr))
	}

	if bbox, ok := ip.reader.Resolve(dict.Get("BBox")).(*parser.Array); ok && bbox.Len() == 4 {
		ip.clipToBBox(bbox)
	}

	resources, _ := ip.reader.Resolve(dict.Get("Resources")).(*parser.Dictionary)
	if resources == nil {
		resources = ip.currentResources()
	}
	ip.resourcesStack = append(ip.resourcesStack, resources)
	ip.xobjectDepth++
	defer func() {
		ip.xobjectDepth--
		ip.resourcesStack = ip.resourcesStack[:len(ip.resourcesStack)-1]
	}()

	ops, err := NewContentParser(content).ParseOperators()
	if err != nil {
		return fmt.Errorf("interpreter: form xobject content: %w", err)
	}
	return ip.execute(ops)
}

// clipToBBox intersects the graphics state's clip with the form's
// bounding box, transformed by the CTM (already updated with /Matrix).
func (ip *Interpreter) clipToBBox(bbox *parser.Array) {
	x0 := asFloat(ip.reader.Resolve(bbox.Get(0)))
	y0 := asFloat(ip.reader.Resolve(bbox.Get(1)))
	x1 := asFloat(ip.reader.Resolve(bbox.Get(2)))
	y1 := asFloat(ip.reader.Resolve(bbox.Get(3)))

	pb := NewPathBuilder()
	pb.Rect(x0, y0, x1-x0, y1-y0)
	transformed := transformSegments(pb.segs, ip.gs.CTM)
	clip := &ClipPath{D: svgdom.BuildPathData(transformed)}
	ip.gs.Clip = intersectClip(ip.gs.Clip, clip)
}

// drawImageXObject decodes an Image XObject's samples and emits it as
// an <image> element positioned by the unit-square convention PDF
// defines for image space (PDF 1.7 8.9.5.2: the image occupies the
// unit square under the CTM regardless of its pixel dimensions).
func (ip *Interpreter) drawImageXObject(stream *parser.Stream) error {
	if ip.hiddenDrawing() {
		return nil
	}
	dict := stream.Dictionary()
	width := int(dict.GetInteger("Width"))
	height := int(dict.GetInteger("Height"))

	data, err := stream.Decode()
	if err != nil {
		return fmt.Errorf("interpreter: image xobject: %w", err)
	}

	var result *imagedecode.Result
	if isImageMask(dict) {
		invert := decodeArrayStartsWithOne(ip.reader, dict)
		result, err = imagedecode.DecodeStencilMask(data, width, height, invert, ip.gs.FillColor.stdColor())
	} else {
		bpc := int(dict.GetInteger("BitsPerComponent"))
		filterName := lastFilterName(dict)
		cs := ip.colorSpaceInfo(dict.Get("ColorSpace"))
		smask := ip.decodeSMask(dict)
		result, err = imagedecode.Decode(data, width, height, bpc, filterName, cs, smask)
	}
	if err != nil {
		return fmt.Errorf("interpreter: image xobject: %w", err)
	}

	ip.emitWithClip(func() {
		ip.emitter.Image(result.DataURL, ip.gs.CTM.svgTransform())
	})
	return nil
}

func isImageMask(dict *parser.Dictionary) bool {
	b, ok := dict.Get("ImageMask").(*parser.Boolean)
	return ok && b.Value()
}

func decodeArrayStartsWithOne(reader *parser.Reader, dict *parser.Dictionary) bool {
	arr, ok := reader.Resolve(dict.Get("Decode")).(*parser.Array)
	if !ok || arr.Len() == 0 {
		return false
	}
	n, ok := reader.Resolve(arr.Get(0)).(*parser.Integer)
	return ok && n.Value() == 1
}

func lastFilterName(dict *parser.Dictionary) string {
	switch f := dict.Get("Filter").(type) {
	case *parser.Name:
		return f.Value()
	case *parser.Array:
		if f.Len() == 0 {
			return ""
		}
		if n, ok := f.Get(f.Len() - 1).(*parser.Name); ok {
			return n.Value()
		}
	}
	return ""
}

// colorSpaceInfo converts this interpreter's resolved ColorSpace into
// the generic shape internal/imagedecode understands; that package
// must not import internal/interpreter; it is also reusable on its own
// for standalone image extraction.
func (ip *Interpreter) colorSpaceInfo(obj parser.PdfObject) imagedecode.ColorSpaceInfo {
	csResources, _ := ip.reader.Resolve(ip.currentResources().Get("ColorSpace")).(*parser.Dictionary)
	cs := resolveColorSpace(ip.reader, csResources, obj)
	return toColorSpaceInfo(cs)
}

func toColorSpaceInfo(cs *ColorSpace) imagedecode.ColorSpaceInfo {
	info := imagedecode.ColorSpaceInfo{Family: cs.Family, N: cs.N}
	if cs.Family == "Indexed" && cs.Base != nil {
		base := toColorSpaceInfo(cs.Base)
		info.Base = &base
		info.Lookup = cs.Lookup
	}
	return info
}

// decodeSMask resolves /SMask (PDF 1.7 11.6.5.3): a separate
// DeviceGray image XObject supplying this image's per-pixel alpha.
func (ip *Interpreter) decodeSMask(dict *parser.Dictionary) *imagedecode.SMask {
	smaskStream, ok := ip.reader.Resolve(dict.Get("SMask")).(*parser.Stream)
	if !ok {
		return nil
	}
	smaskDict := smaskStream.Dictionary()
	width := int(smaskDict.GetInteger("Width"))
	height := int(smaskDict.GetInteger("Height"))
	if width <= 0 || height <= 0 {
		return nil
	}
	data, err := smaskStream.Decode()
	if err != nil || lastFilterName(smaskDict) != "" {
		// A filtered (e.g. JPEG) soft mask is rare enough in practice
		// to skip rather than add a second JPEG-to-gray decode path;
		// the base image still renders, just without transparency.
		return nil
	}
	bpc := int(smaskDict.GetInteger("BitsPerComponent"))
	gray := imagedecode.UnpackGray(data, width, height, bpc)
	return &imagedecode.SMask{Gray: gray, Width: width, Height: height}
}
