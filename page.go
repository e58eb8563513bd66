package gxpdf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/coregx/gxpdf/internal/coordinator"
)

// Page represents a single page in a PDF document.
type Page struct {
	doc   *Document
	index int
}

// Index returns the page index (0-based).
func (p *Page) Index() int {
	return p.index
}

// Number returns the page number (1-based, for display).
func (p *Page) Number() int {
	return p.index + 1
}

// ToSvg converts the page to an SVG 1.1 fragment and returns it as a
// string.
func (p *Page) ToSvg(opts Options) (string, error) {
	var buf bytes.Buffer
	if err := p.SaveSvg(&buf, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SaveSvg converts the page to SVG and writes it to w.
func (p *Page) SaveSvg(w io.Writer, opts Options) error {
	if w == nil {
		return fmt.Errorf("gxpdf: SaveSvg: %w: nil writer", ErrInvalidArgument)
	}
	iopts := opts.toInterpreter()
	if iopts.Cancel == nil {
		iopts.Cancel = p.doc.ctx
	}

	emitter, err := coordinator.ConvertPage(p.doc.reader, p.index, iopts)
	if err != nil {
		if iopts.Cancel != nil && iopts.Cancel.Err() != nil {
			return fmt.Errorf("gxpdf: page %d: %w: %w", p.Number(), ErrCancelled, err)
		}
		return fmt.Errorf("gxpdf: page %d: %w", p.Number(), err)
	}
	return emitter.WriteTo(w)
}
