package dicom

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenscan/dicomcore/pkg/dicom/direrr"
)

func TestByteCursorSlice(t *testing.T) {
	c := NewByteCursor([]byte("hello world"), 0)
	b, err := c.Slice(6, 5)
	require.NoError(t, err)
	assert.Equal(t, "world", string(b))
}

func TestByteCursorSliceOutOfBounds(t *testing.T) {
	c := NewByteCursor([]byte("hi"), 0)
	_, err := c.Slice(0, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, direrr.ErrOutOfBounds))
}

func TestByteCursorSliceAtAdvances(t *testing.T) {
	c := NewByteCursor([]byte("abcdef"), 2)
	b, err := c.SliceAt(3)
	require.NoError(t, err)
	assert.Equal(t, "cde", string(b))
	assert.Equal(t, 5, c.Pos())
}

func TestByteCursorRemaining(t *testing.T) {
	c := NewByteCursor([]byte("abcdef"), 0)
	assert.Equal(t, 6, c.Remaining(0))
	assert.Equal(t, 2, c.Remaining(4))
	assert.Equal(t, -1, c.Remaining(7))
}
