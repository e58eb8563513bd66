package gxpdf

import "errors"

// Sentinel errors returned by gxpdf functions, matching the error kinds
// spec.md 7 enumerates. Use errors.Is to test for a specific kind
// through any wrapping.
var (
	// ErrInvalidPDF is returned when the file has no recognizable PDF
	// header at all.
	ErrInvalidPDF = errors.New("gxpdf: not a PDF file")

	// ErrCorrupted is returned when the PDF's object structure cannot
	// be recovered even after the xref recovery scan (malformed-pdf).
	ErrCorrupted = errors.New("gxpdf: PDF structure is corrupted")

	// ErrEncrypted is returned when the trailer carries an /Encrypt
	// entry. Decryption is out of scope; this only reports the
	// condition.
	ErrEncrypted = errors.New("gxpdf: PDF is encrypted")

	// ErrPageNotFound is returned when the requested page index does
	// not exist.
	ErrPageNotFound = errors.New("gxpdf: page not found")

	// ErrUnsupportedFeature is returned when a required core path (a
	// color space or font program a page cannot render without) uses
	// something this converter does not implement.
	ErrUnsupportedFeature = errors.New("gxpdf: unsupported PDF feature")

	// ErrCancelled is returned when the context passed via Options.Cancel
	// is done before or during conversion.
	ErrCancelled = errors.New("gxpdf: conversion cancelled")

	// ErrInvalidArgument is returned for a caller-supplied argument
	// that is malformed before any work begins (a nil writer, an
	// out-of-range page index passed directly rather than discovered
	// through Document.Page).
	ErrInvalidArgument = errors.New("gxpdf: invalid argument")
)

// IsEncrypted returns true if err indicates an encrypted PDF.
func IsEncrypted(err error) bool {
	return errors.Is(err, ErrEncrypted)
}

// IsCorrupted returns true if err indicates a corrupted PDF.
func IsCorrupted(err error) bool {
	return errors.Is(err, ErrCorrupted)
}

// IsCancelled returns true if err indicates a cancelled conversion.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
