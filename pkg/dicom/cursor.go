package dicom

import "github.com/lumenscan/dicomcore/pkg/dicom/direrr"

// ByteCursor is a thin, read-only view over an immutable byte buffer with a
// current position. It never copies the buffer and never mutates it; every
// slice it returns aliases the original bytes.
type ByteCursor struct {
	buf []byte
	pos int
}

// NewByteCursor wraps buf starting at position pos.
func NewByteCursor(buf []byte, pos int) *ByteCursor {
	return &ByteCursor{buf: buf, pos: pos}
}

// Pos returns the cursor's current position.
func (c *ByteCursor) Pos() int {
	return c.pos
}

// Len returns the total length of the underlying buffer.
func (c *ByteCursor) Len() int {
	return len(c.buf)
}

// Seek moves the cursor to an absolute position.
func (c *ByteCursor) Seek(pos int) {
	c.pos = pos
}

// Advance moves the cursor forward by n bytes.
func (c *ByteCursor) Advance(n int) {
	c.pos += n
}

// Remaining returns how many bytes lie between from and the end of the
// buffer. A negative result means from is already past the end.
func (c *ByteCursor) Remaining(from int) int {
	return len(c.buf) - from
}

// Slice returns length bytes starting at start, aliasing the underlying
// buffer. It fails with direrr.ErrOutOfBounds when the requested range
// would run past the end of the buffer or start is negative.
func (c *ByteCursor) Slice(start, length int) ([]byte, error) {
	if start < 0 || length < 0 || start+length > len(c.buf) {
		return nil, direrr.NewBoundsError(start, length, len(c.buf))
	}
	return c.buf[start : start+length], nil
}

// SliceAt is Slice anchored at the cursor's current position, and advances
// the cursor past the returned slice on success.
func (c *ByteCursor) SliceAt(length int) ([]byte, error) {
	b, err := c.Slice(c.pos, length)
	if err != nil {
		return nil, err
	}
	c.pos += length
	return b, nil
}
