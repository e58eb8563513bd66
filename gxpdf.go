// Package gxpdf converts PDF pages to SVG.
//
// # Quick Start
//
// Open a PDF and convert a page to an SVG string:
//
//	doc, err := gxpdf.Open("invoice.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer doc.Close()
//
//	svg, err := doc.Page(0).ToSvg(gxpdf.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(svg)
//
// # Architecture
//
//   - Root package for the public API (gxpdf.Open, gxpdf.Document, gxpdf.Page)
//   - internal/parser reads the object graph lazily, with an xref recovery
//     scan when the cross-reference table is itself damaged
//   - internal/interpreter walks a page's content stream and issues
//     structured draw calls to internal/svgdom
//   - internal/fonts and internal/imagedecode resolve font substitution
//     and image data respectively
//
// # Thread Safety
//
// A Document (and any Page obtained from it) is safe for concurrent
// ToSvg/SaveSvg calls once opened; the underlying Reader serializes its
// own lazy object reads internally.
package gxpdf

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/coregx/gxpdf/internal/parser"
)

// Version is the current version of the gxpdf library.
const Version = "0.1.0-alpha"

// Open opens a PDF file and returns a Document for reading.
//
// This is the main entry point for reading PDF files.
// The returned Document must be closed after use.
//
// Example:
//
//	doc, err := gxpdf.Open("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer doc.Close()
//
//	fmt.Printf("Pages: %d\n", doc.PageCount())
func Open(path string) (*Document, error) {
	return OpenWithContext(context.Background(), path)
}

// OpenWithContext opens a PDF file with a custom context.
//
// The context can be used for cancellation and timeouts.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//	defer cancel()
//
//	doc, err := gxpdf.OpenWithContext(ctx, "large-document.pdf")
func OpenWithContext(ctx context.Context, path string) (*Document, error) {
	reader, err := parser.OpenPDF(path)
	if errors.Is(err, parser.ErrEncrypted) {
		return nil, fmt.Errorf("gxpdf: %s: %w: %w", path, ErrEncrypted, err)
	}
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("gxpdf: %s: %w: %w", path, ErrInvalidArgument, err)
	}
	if err != nil {
		return nil, fmt.Errorf("gxpdf: %s: %w: %w", path, ErrCorrupted, err)
	}

	return &Document{
		reader: reader,
		ctx:    ctx,
		path:   path,
	}, nil
}

// MustOpen opens a PDF file and panics on error.
//
// This is useful for initialization in tests or when the file is known to exist.
//
// Example:
//
//	doc := gxpdf.MustOpen("known-good.pdf")
//	defer doc.Close()
func MustOpen(path string) *Document {
	doc, err := Open(path)
	if err != nil {
		panic(err)
	}
	return doc
}
