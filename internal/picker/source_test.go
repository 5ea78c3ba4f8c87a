package picker

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderSource_Lines(t *testing.T) {
	src := &ReaderSource{R: strings.NewReader("a\n\n  \nb\x1b[1m!\x1b[0m\nc\n")}
	lines, err := src.Lines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b!", "c"}, lines)
}

func TestReaderSource_UniqueKeepsLast(t *testing.T) {
	src := &ReaderSource{R: strings.NewReader("x\ny\nx\nz\ny\n"), Unique: true}
	lines, err := src.Lines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "z", "y"}, lines)
}

func TestReaderSource_Limit(t *testing.T) {
	src := &ReaderSource{R: strings.NewReader("1\n2\n3\n4\n"), Limit: 2}
	lines, err := src.Lines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "4"}, lines)
}

func TestReaderSource_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&ReaderSource{R: strings.NewReader("a\n")}).Lines(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
