package gxpdf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.False(t, opts.IncludeHiddenText)
	assert.Nil(t, opts.FontResolver)
	assert.Equal(t, 1.0, opts.MinStrokeWidth)
	assert.Nil(t, opts.Cancel)
}

func TestOptions_ToInterpreter(t *testing.T) {
	ctx := context.Background()
	opts := Options{
		IncludeHiddenText: true,
		MinStrokeWidth:    2.5,
		Cancel:            ctx,
	}

	iopts := opts.toInterpreter()
	assert.True(t, iopts.IncludeHiddenText)
	assert.Equal(t, 2.5, iopts.MinStrokeWidth)
	assert.Equal(t, ctx, iopts.Cancel)
}
