package gxpdf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testdataPath(name string) string {
	return "testdata/pdfs/" + name
}

func TestOpen_MinimalPDF(t *testing.T) {
	doc, err := Open(testdataPath("minimal.pdf"))
	require.NoError(t, err)
	defer doc.Close()

	assert.Equal(t, 1, doc.PageCount())
	assert.Equal(t, "1.7", doc.Version())
}

func TestOpen_NonExistentFile(t *testing.T) {
	_, err := Open("testdata/pdfs/does-not-exist.pdf")
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestOpenWithContext_PropagatesContext(t *testing.T) {
	ctx := context.Background()
	doc, err := OpenWithContext(ctx, testdataPath("minimal.pdf"))
	require.NoError(t, err)
	defer doc.Close()

	assert.NotNil(t, doc)
}

func TestMustOpen_PanicsOnMissingFile(t *testing.T) {
	assert.Panics(t, func() {
		MustOpen("testdata/pdfs/does-not-exist.pdf")
	})
}

func TestMustOpen_Success(t *testing.T) {
	var doc *Document
	assert.NotPanics(t, func() {
		doc = MustOpen(testdataPath("minimal.pdf"))
	})
	defer doc.Close()
	assert.Equal(t, 1, doc.PageCount())
}
