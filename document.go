package gxpdf

import (
	"context"
	"time"

	"github.com/coregx/gxpdf/internal/parser"
)

// Document represents an opened PDF document.
//
// It must be closed after use to release the underlying file handle.
type Document struct {
	reader *parser.Reader
	ctx    context.Context
	path   string
}

// Close closes the document and releases resources. Safe to call more
// than once.
func (d *Document) Close() error {
	if d.reader != nil {
		return d.reader.Close()
	}
	return nil
}

// Path returns the file path the document was opened from.
func (d *Document) Path() string {
	return d.path
}

// PageCount returns the total number of pages in the document.
func (d *Document) PageCount() int {
	count, err := d.reader.GetPageCount()
	if err != nil {
		return 0
	}
	return count
}

// Page returns the page at the given index (0-based), or nil if the
// index is out of bounds.
func (d *Document) Page(index int) *Page {
	if index < 0 || index >= d.PageCount() {
		return nil
	}
	return &Page{doc: d, index: index}
}

// Pages returns every page in the document, in order.
func (d *Document) Pages() []*Page {
	count := d.PageCount()
	pages := make([]*Page, count)
	for i := 0; i < count; i++ {
		pages[i] = &Page{doc: d, index: i}
	}
	return pages
}

// Version returns the PDF version declared in the file header (e.g. "1.7").
func (d *Document) Version() string {
	return d.reader.Version()
}

// Title returns the document title from the trailer's /Info dictionary,
// or "" if absent.
func (d *Document) Title() string {
	return d.infoString("Title")
}

// Author returns the document author.
func (d *Document) Author() string {
	return d.infoString("Author")
}

// Subject returns the document subject.
func (d *Document) Subject() string {
	return d.infoString("Subject")
}

// Keywords returns the document keywords.
func (d *Document) Keywords() string {
	return d.infoString("Keywords")
}

// Producer returns the PDF producer (the application that generated
// the file's bytes, as distinct from /Creator, the authoring
// application).
func (d *Document) Producer() string {
	return d.infoString("Producer")
}

// CreationDate returns the document's /CreationDate, parsed per PDF 1.7
// 7.9.4. ok is false when the entry is absent or unparseable.
func (d *Document) CreationDate() (t time.Time, ok bool) {
	return parser.ParsePDFDate(d.infoString("CreationDate"))
}

// IsEncrypted reports whether the trailer carries an /Encrypt entry.
func (d *Document) IsEncrypted() bool {
	return d.reader.Trailer() != nil && d.reader.Trailer().Has("Encrypt")
}

func (d *Document) infoString(key string) string {
	trailer := d.reader.Trailer()
	if trailer == nil {
		return ""
	}
	info, ok := d.reader.Resolve(trailer.Get("Info")).(*parser.Dictionary)
	if !ok {
		return ""
	}
	return decodeTextString(info.GetString(key))
}

// decodeTextString interprets a PDF text string (PDF 1.7 7.9.2): either
// PDFDocEncoding (approximated here as Latin-1, which agrees with
// PDFDocEncoding on the ASCII range covering the overwhelming majority
// of real document metadata) or UTF-16BE with a leading byte-order
// mark.
func decodeTextString(s string) string {
	b := []byte(s)
	if len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF {
		runes := make([]rune, 0, (len(b)-2)/2)
		for i := 2; i+1 < len(b); i += 2 {
			runes = append(runes, rune(uint16(b[i])<<8|uint16(b[i+1])))
		}
		return string(runes)
	}
	return s
}
