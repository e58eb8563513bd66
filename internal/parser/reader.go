package parser

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// newLineReader wraps data for line-oriented classical xref parsing.
func newLineReader(data []byte) *bufio.Reader {
	return bufio.NewReader(bytes.NewReader(data))
}

// Sentinel errors surfaced by Reader. The root gxpdf package wraps these
// into its own error taxonomy via errors.Is.
var (
	// ErrEncrypted is returned by Open when the document's trailer carries
	// an /Encrypt entry. Decryption itself is out of scope; Open only
	// detects the condition so callers can react.
	ErrEncrypted = errors.New("parser: PDF is encrypted")

	// ErrPageNotFound is returned by GetPage for an out-of-range index.
	ErrPageNotFound = errors.New("parser: page not found")
)

const startxrefScanWindow = 2048

var startxrefPattern = regexp.MustCompile(`startxref\s+(\d+)`)

// Reader is a lazily-populated, cached view over a PDF file's object
// graph: the cross-reference table is loaded eagerly on Open, but object
// bodies are parsed from disk only on first access and then memoized.
type Reader struct {
	filename string

	mu          sync.RWMutex
	file        *os.File
	data        []byte
	objectCache map[int]PdfObject

	xref    *XRefTable
	trailer *Dictionary
	version string

	catalog *Dictionary
	pages   *Dictionary
	flat    []*Dictionary
}

// NewReader creates a Reader for the PDF file at path. Call Open before
// using any other method.
func NewReader(filename string) *Reader {
	return &Reader{
		filename:    filename,
		objectCache: make(map[int]PdfObject),
	}
}

// Open reads the file, locates and parses the cross-reference table (and
// its /Prev chain), loads the trailer, and resolves the document catalog
// and flattened page list. The file handle stays open for lazy object
// reads until Close.
func (r *Reader) Open() error {
	f, err := os.Open(r.filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", r.filename, err)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to read file %s: %w", r.filename, err)
	}

	version, err := parseHeader(data)
	if err != nil {
		_ = f.Close()
		return err
	}

	xref, trailer, err := loadXRefChain(data)
	if err != nil {
		_ = f.Close()
		return err
	}

	if trailer.Has("Encrypt") {
		_ = f.Close()
		return ErrEncrypted
	}

	r.mu.Lock()
	r.file = f
	r.data = data
	r.version = version
	r.xref = xref
	r.trailer = trailer
	r.mu.Unlock()

	if err := r.loadCatalogAndPages(); err != nil {
		_ = r.Close()
		return err
	}
	return nil
}

// Close releases the underlying file handle. It is safe to call more than
// once.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

func parseHeader(data []byte) (string, error) {
	head := data
	if len(head) > 32 {
		head = head[:32]
	}
	if !bytes.HasPrefix(head, []byte("%PDF-")) {
		return "", fmt.Errorf("invalid PDF header")
	}
	rest := head[len("%PDF-"):]
	end := bytes.IndexAny(rest, "\r\n \t")
	if end < 0 {
		end = len(rest)
	}
	version := strings.TrimSpace(string(rest[:end]))
	if version == "" {
		return "", fmt.Errorf("invalid PDF version: empty version string")
	}
	if !regexp.MustCompile(`^\d+\.\d+$`).MatchString(version) {
		return "", fmt.Errorf("invalid PDF version %q", version)
	}
	return version, nil
}

// loadXRefChain locates startxref, parses the newest cross-reference
// section, and walks its /Prev chain (and, for xref streams, /Prev of
// compressed predecessors), merging older sections without overriding
// newer entries.
func loadXRefChain(data []byte) (*XRefTable, *Dictionary, error) {
	offset, err := findStartXRef(data)
	if err != nil {
		table, recErr := recoverXRefByScanning(data)
		if recErr != nil {
			return nil, nil, err
		}
		trailer, tErr := recoverTrailer(data, table)
		if tErr != nil {
			return nil, nil, tErr
		}
		return table, trailer, nil
	}

	table := NewXRefTable()
	var trailer *Dictionary
	seen := make(map[int64]bool)

	for offset >= 0 && !seen[offset] {
		seen[offset] = true
		if int(offset) >= len(data) {
			break
		}

		sectionTable, sectionTrailer, next, err := parseXRefSectionAt(data, offset)
		if err != nil {
			break
		}

		table.Merge(sectionTable)
		if trailer == nil {
			trailer = sectionTrailer
		}

		offset = next
	}

	if trailer == nil {
		recovered, recErr := recoverXRefByScanning(data)
		if recErr != nil {
			return nil, nil, fmt.Errorf("failed to locate trailer: no valid xref section found")
		}
		table.Merge(recovered)
		recTrailer, tErr := recoverTrailer(data, table)
		if tErr != nil {
			return nil, nil, tErr
		}
		trailer = recTrailer
	}

	return table, trailer, nil
}

// findStartXRef scans the tail of the file for "startxref\nN".
func findStartXRef(data []byte) (int64, error) {
	window := data
	if len(window) > startxrefScanWindow {
		window = window[len(window)-startxrefScanWindow:]
	}
	matches := startxrefPattern.FindAllSubmatch(window, -1)
	if len(matches) == 0 {
		return 0, fmt.Errorf("startxref not found")
	}
	last := matches[len(matches)-1]
	offset, err := strconv.ParseInt(string(last[1]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid startxref offset: %w", err)
	}
	return offset, nil
}

// parseXRefSectionAt parses one cross-reference section (classical table
// or xref stream) at offset, returning its entries, trailer, and the
// offset of the /Prev section (-1 if none).
func parseXRefSectionAt(data []byte, offset int64) (*XRefTable, *Dictionary, int64, error) {
	if isClassicXRefAt(data, offset) {
		return parseClassicXRefAt(data, offset)
	}
	return parseXRefStreamAt(data, offset)
}

// isClassicXRefAt reports whether the bytes at offset begin a classical
// "xref" section rather than an "N G obj" xref-stream object.
func isClassicXRefAt(data []byte, offset int64) bool {
	if offset < 0 || int(offset) >= len(data) {
		return false
	}
	rest := data[offset:]
	trimmed := bytes.TrimLeft(rest, " \t")
	return bytes.HasPrefix(trimmed, []byte(KeywordXref))
}

func parseClassicXRefAt(data []byte, offset int64) (*XRefTable, *Dictionary, int64, error) {
	rest := data[offset:]
	idx := bytes.Index(rest, []byte(KeywordXref))
	if idx < 0 {
		return nil, nil, 0, fmt.Errorf("xref keyword not found at offset %d", offset)
	}
	br := newLineReader(rest[idx+len(KeywordXref):])

	table, err := parseClassicXRefSection(br)
	if err != nil {
		return nil, nil, 0, err
	}

	p := NewParser(br)
	trailerObj, err := p.ParseObject()
	if err != nil {
		return nil, nil, 0, fmt.Errorf("parse trailer: %w", err)
	}
	trailer, ok := trailerObj.(*Dictionary)
	if !ok {
		return nil, nil, 0, fmt.Errorf("trailer is not a dictionary")
	}
	table.SetSize(int(trailer.GetInteger("Size")))

	next := int64(-1)
	if trailer.Has("Prev") {
		next = trailer.GetInteger("Prev")
	}
	return table, trailer, next, nil
}

func parseXRefStreamAt(data []byte, offset int64) (*XRefTable, *Dictionary, int64, error) {
	p := NewParser(bytes.NewReader(data[offset:]))
	ind, err := p.ParseIndirectObject()
	if err != nil {
		return nil, nil, 0, fmt.Errorf("parse xref stream object: %w", err)
	}
	stream, ok := ind.Object.(*Stream)
	if !ok {
		return nil, nil, 0, fmt.Errorf("xref entry at offset %d is not a stream", offset)
	}
	dict := stream.Dictionary()
	if t := dict.GetName("Type"); t == nil || t.Value() != "XRef" {
		return nil, nil, 0, fmt.Errorf("stream at offset %d is not /Type /XRef", offset)
	}

	decoded, err := decodeFlateBody(stream)
	if err != nil {
		return nil, nil, 0, err
	}

	table, err := p.parseXRefStreamEntries(dict, decoded)
	if err != nil {
		return nil, nil, 0, err
	}

	next := int64(-1)
	if dict.Has("Prev") {
		next = dict.GetInteger("Prev")
	}
	return table, dict, next, nil
}

// decodeFlateBody decodes an xref stream's body, which per spec is
// always Flate-encoded (optionally with a predictor, handled upstream by
// internal/encoding once wired into Stream.Decode; here we only need raw
// Flate since predictors on xref streams are rare in practice and the
// classical-table path remains the primary fallback).
func decodeFlateBody(stream *Stream) ([]byte, error) {
	filterObj := stream.GetFilter()
	name, ok := filterObj.(*Name)
	if !ok {
		return stream.Content(), nil
	}
	if name.Value() != "FlateDecode" {
		return nil, fmt.Errorf("unsupported xref stream filter %q", name.Value())
	}
	return flateDecoder{}.Decode(stream.Content())
}

// loadCatalogAndPages resolves the /Root catalog and flattens the page
// tree, inheriting /Resources, /MediaBox, /CropBox and /Rotate down from
// ancestor /Pages nodes per PDF 1.7 §7.7.3.4.
func (r *Reader) loadCatalogAndPages() error {
	r.mu.RLock()
	trailer := r.trailer
	r.mu.RUnlock()

	rootRef := trailer.Get("Root")
	rootObj := r.resolveOne(rootRef)
	catalog, ok := rootObj.(*Dictionary)
	if !ok {
		return fmt.Errorf("trailer /Root does not resolve to a dictionary")
	}

	pagesObj := r.resolveOne(catalog.Get("Pages"))
	pagesRoot, ok := pagesObj.(*Dictionary)
	if !ok {
		return fmt.Errorf("catalog /Pages does not resolve to a dictionary")
	}

	var flat []*Dictionary
	if err := r.flattenPages(pagesRoot, inheritedAttrs{}, &flat, make(map[*Dictionary]bool)); err != nil {
		return err
	}

	r.mu.Lock()
	r.catalog = catalog
	r.pages = pagesRoot
	r.flat = flat
	r.mu.Unlock()
	return nil
}

type inheritedAttrs struct {
	Resources PdfObject
	MediaBox  PdfObject
	CropBox   PdfObject
	Rotate    PdfObject
}

func (r *Reader) flattenPages(node *Dictionary, inh inheritedAttrs, out *[]*Dictionary, visited map[*Dictionary]bool) error {
	if visited[node] {
		return fmt.Errorf("page tree contains a cycle")
	}
	visited[node] = true

	next := inh
	if v := node.Get("Resources"); v != nil {
		next.Resources = v
	}
	if v := node.Get("MediaBox"); v != nil {
		next.MediaBox = v
	}
	if v := node.Get("CropBox"); v != nil {
		next.CropBox = v
	}
	if v := node.Get("Rotate"); v != nil {
		next.Rotate = v
	}

	typeName := node.GetName("Type")
	if typeName != nil && typeName.Value() == "Page" {
		*out = append(*out, mergeInherited(node, next))
		return nil
	}

	kids := node.GetArray("Kids")
	if kids == nil {
		// No /Type or an unrecognized one with no /Kids: treat as a leaf.
		*out = append(*out, mergeInherited(node, next))
		return nil
	}

	for i := 0; i < kids.Len(); i++ {
		kidObj := r.resolveOne(kids.Get(i))
		kidDict, ok := kidObj.(*Dictionary)
		if !ok {
			continue
		}
		if err := r.flattenPages(kidDict, next, out, visited); err != nil {
			return err
		}
	}
	return nil
}

// mergeInherited returns a shallow clone of page with any missing
// inheritable attributes filled in from inh, leaving the cached object
// itself untouched.
func mergeInherited(page *Dictionary, inh inheritedAttrs) *Dictionary {
	merged := page.Clone()
	if !merged.Has("Resources") && inh.Resources != nil {
		merged.Set("Resources", inh.Resources)
	}
	if !merged.Has("MediaBox") && inh.MediaBox != nil {
		merged.Set("MediaBox", inh.MediaBox)
	}
	if !merged.Has("CropBox") && inh.CropBox != nil {
		merged.Set("CropBox", inh.CropBox)
	}
	if !merged.Has("Rotate") && inh.Rotate != nil {
		merged.Set("Rotate", inh.Rotate)
	}
	return merged
}

// resolveOne resolves a single indirect reference (one hop only, not
// recursing into the target's own fields), which is all page-tree
// traversal needs and avoids following a /Parent cycle.
func (r *Reader) resolveOne(obj PdfObject) PdfObject {
	ref, ok := obj.(*IndirectReference)
	if !ok {
		return obj
	}
	resolved, err := r.GetObject(ref.Number)
	if err != nil {
		return obj
	}
	return resolved
}

// Resolve follows obj through indirect references to its direct value,
// chasing reference-to-reference chains up to a small depth bound (real
// files never nest these more than one or two deep; the bound only
// guards against a malformed cycle). Non-reference objects are returned
// unchanged. Used by the content-stream interpreter to pull resource
// dictionary entries (fonts, XObjects, color spaces) out of the
// resource tree, which may name its entries either directly or via
// indirect reference.
func (r *Reader) Resolve(obj PdfObject) PdfObject {
	const maxHops = 32
	for i := 0; i < maxHops; i++ {
		ref, ok := obj.(*IndirectReference)
		if !ok {
			return obj
		}
		resolved, err := r.GetObject(ref.Number)
		if err != nil {
			return obj
		}
		obj = resolved
	}
	return obj
}

// resolveReferences recursively resolves every IndirectReference reachable
// from obj, rebuilding arrays and dictionaries with resolved elements. A
// reference still being resolved higher up the call stack (e.g. a /Parent
// pointer forming a cycle with the page tree) is left unresolved rather
// than followed again, so this is safe to call on a whole page or catalog
// subgraph, not just acyclic fragments.
func (r *Reader) resolveReferences(obj PdfObject) PdfObject {
	return r.resolveRefsTracking(obj, make(map[int]bool))
}

func (r *Reader) resolveRefsTracking(obj PdfObject, inProgress map[int]bool) PdfObject {
	switch v := obj.(type) {
	case *IndirectReference:
		if inProgress[v.Number] {
			return obj
		}
		resolved, err := r.GetObject(v.Number)
		if err != nil {
			return obj
		}
		inProgress[v.Number] = true
		result := r.resolveRefsTracking(resolved, inProgress)
		delete(inProgress, v.Number)
		return result
	case *Array:
		out := NewArray()
		for i := 0; i < v.Len(); i++ {
			out.Append(r.resolveRefsTracking(v.Get(i), inProgress))
		}
		return out
	case *Dictionary:
		out := NewDictionary()
		for _, k := range v.Keys() {
			out.Set(k, r.resolveRefsTracking(v.Get(k), inProgress))
		}
		return out
	default:
		return obj
	}
}

// GetObject returns the object with the given number, parsing it from the
// file on first access and caching the result for subsequent calls.
func (r *Reader) GetObject(num int) (PdfObject, error) {
	r.mu.RLock()
	if obj, ok := r.objectCache[num]; ok {
		r.mu.RUnlock()
		return obj, nil
	}
	xref := r.xref
	data := r.data
	r.mu.RUnlock()

	if xref == nil {
		return nil, fmt.Errorf("reader not opened")
	}

	entry, ok := xref.GetEntry(num)
	if !ok || entry.Type == XRefEntryFree {
		return nil, fmt.Errorf("object %d not found", num)
	}

	var obj PdfObject
	var err error
	switch entry.Type {
	case XRefEntryInUse:
		obj, err = r.readIndirectObjectAt(data, entry.Offset, num)
	case XRefEntryCompressed:
		obj, err = r.readCompressedObject(int(entry.Offset), entry.Generation, num)
	default:
		err = fmt.Errorf("object %d has unknown xref entry type", num)
	}
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.objectCache[num] = obj
	r.mu.Unlock()
	return obj, nil
}

func (r *Reader) readIndirectObjectAt(data []byte, offset int64, wantNum int) (PdfObject, error) {
	if offset < 0 || int(offset) >= len(data) {
		return nil, fmt.Errorf("object %d: offset %d out of range", wantNum, offset)
	}
	p := NewParser(bytes.NewReader(data[offset:]))
	ind, err := p.ParseIndirectObject()
	if err != nil {
		return nil, fmt.Errorf("object %d: %w", wantNum, err)
	}
	return ind.Object, nil
}

// readCompressedObject loads objNum from the object stream housed in
// object streamNum, decoding the stream and caching all of its siblings
// too since decoding is the expensive part and they are free once
// decoded.
func (r *Reader) readCompressedObject(streamNum, indexHint, wantNum int) (PdfObject, error) {
	streamObj, err := r.GetObject(streamNum)
	if err != nil {
		return nil, fmt.Errorf("object %d: load containing stream %d: %w", wantNum, streamNum, err)
	}
	stream, ok := streamObj.(*Stream)
	if !ok {
		return nil, fmt.Errorf("object %d: container %d is not a stream", wantNum, streamNum)
	}

	decoded, err := decodeFlateBody(stream)
	if err != nil {
		return nil, fmt.Errorf("object %d: decode object stream %d: %w", wantNum, streamNum, err)
	}

	n := int(stream.Dictionary().GetInteger("N"))
	first := int(stream.Dictionary().GetInteger("First"))

	p := NewParser(bytes.NewReader(nil))
	objects, err := p.ParseObjectStream(decoded, n, first)
	if err != nil {
		return nil, fmt.Errorf("object %d: parse object stream %d: %w", wantNum, streamNum, err)
	}

	r.mu.Lock()
	for num, obj := range objects {
		if _, cached := r.objectCache[num]; !cached {
			r.objectCache[num] = obj
		}
	}
	r.mu.Unlock()

	obj, ok := objects[wantNum]
	if !ok {
		return nil, fmt.Errorf("object %d not present in object stream %d", wantNum, streamNum)
	}
	_ = indexHint
	return obj, nil
}

// GetPage returns the i-th page (0-indexed) of the flattened page list.
func (r *Reader) GetPage(i int) (*Dictionary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.flat == nil {
		return nil, fmt.Errorf("document not loaded: call Open first")
	}
	if i < 0 || i >= len(r.flat) {
		return nil, fmt.Errorf("%w: invalid page number %d (have %d pages)", ErrPageNotFound, i, len(r.flat))
	}
	return r.flat[i], nil
}

// GetPages returns the root /Pages node as parsed (not flattened).
func (r *Reader) GetPages() (*Dictionary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.pages == nil {
		return nil, fmt.Errorf("document not loaded: call Open first")
	}
	return r.pages, nil
}

// GetPageCount returns the number of leaf pages found during flattening.
func (r *Reader) GetPageCount() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.flat == nil {
		return 0, fmt.Errorf("document not loaded: call Open first")
	}
	return len(r.flat), nil
}

// GetCatalog returns the document catalog (/Root).
func (r *Reader) GetCatalog() (*Dictionary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.catalog == nil {
		return nil, fmt.Errorf("document not loaded: call Open first")
	}
	return r.catalog, nil
}

// Trailer returns the merged trailer dictionary.
func (r *Reader) Trailer() *Dictionary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.trailer
}

// XRefTable returns the merged cross-reference table.
func (r *Reader) XRefTable() *XRefTable {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.xref
}

// Version returns the PDF version declared in the file header, e.g. "1.7".
func (r *Reader) Version() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

// String returns a human-readable summary of the reader's state.
func (r *Reader) String() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return fmt.Sprintf("PDFReader{file=%q, version=%q, pages=%d}", r.filename, r.version, len(r.flat))
}

// OpenPDF opens and fully loads the PDF at path in one call.
func OpenPDF(path string) (*Reader, error) {
	r := NewReader(path)
	if err := r.Open(); err != nil {
		return nil, err
	}
	return r, nil
}

// ReadPDFInfo is a convenience wrapper returning just the version and page
// count of the PDF at path, closing the reader before returning.
func ReadPDFInfo(path string) (string, int, error) {
	r, err := OpenPDF(path)
	if err != nil {
		return "", 0, err
	}
	defer func() { _ = r.Close() }()

	count, err := r.GetPageCount()
	if err != nil {
		return "", 0, err
	}
	return r.Version(), count, nil
}
