// Package logging provides the structured logger every package in this
// module calls through, so a caller can redirect or silence gxpdf's
// diagnostics (recoverable xref errors, skipped image filters,
// font-substitution fallbacks) without gxpdf reaching for os.Stderr
// directly.
package logging

import (
	"io"
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// Logger returns the process-wide logger. Unconfigured, it discards
// everything: a library has no business writing to a caller's stderr
// by default.
func Logger() *slog.Logger {
	return logger.Load()
}

// SetLogger replaces the process-wide logger, e.g. with
// slog.New(slog.NewJSONHandler(os.Stderr, nil)) to see gxpdf's
// diagnostics during development.
func SetLogger(l *slog.Logger) {
	if l == nil {
		return
	}
	logger.Store(l)
}
