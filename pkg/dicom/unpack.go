package dicom

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/lumenscan/dicomcore/pkg/dicom/direrr"
)

// Unpack decodes data according to a struct-style pattern string: the first
// character selects byte order ('<' little-endian, '>' big-endian), and
// each token after it is one of:
//
//	H   an unsigned 16-bit integer
//	L   an unsigned 32-bit integer
//	Ns  an N-byte ASCII field (e.g. "2s" reads 2 bytes as a string)
//
// It returns one value per token, in order, as `any` — the element headers
// this reader decodes only ever ask for uint16, uint32, or string, so
// callers type-assert the results they expect. Unpack fails with
// direrr.ErrOutOfBounds if data is shorter than the pattern demands.
func Unpack(pattern string, data []byte) ([]any, error) {
	if pattern == "" {
		return nil, fmt.Errorf("dicom: empty unpack pattern")
	}
	var order binary.ByteOrder
	switch pattern[0] {
	case '<':
		order = binary.LittleEndian
	case '>':
		order = binary.BigEndian
	default:
		return nil, fmt.Errorf("dicom: unpack pattern must start with '<' or '>', got %q", pattern)
	}

	var out []any
	off := 0
	tokens := pattern[1:]
	for i := 0; i < len(tokens); {
		c := tokens[i]
		switch {
		case c == 'H':
			b, err := take(data, off, 2)
			if err != nil {
				return nil, err
			}
			out = append(out, order.Uint16(b))
			off += 2
			i++
		case c == 'L':
			b, err := take(data, off, 4)
			if err != nil {
				return nil, err
			}
			out = append(out, order.Uint32(b))
			off += 4
			i++
		case c >= '0' && c <= '9':
			j := i
			for j < len(tokens) && tokens[j] >= '0' && tokens[j] <= '9' {
				j++
			}
			if j >= len(tokens) || tokens[j] != 's' {
				return nil, fmt.Errorf("dicom: unpack pattern %q: expected 's' after digit run", pattern)
			}
			n, err := strconv.Atoi(tokens[i:j])
			if err != nil {
				return nil, err
			}
			b, err := take(data, off, n)
			if err != nil {
				return nil, err
			}
			out = append(out, string(b))
			off += n
			i = j + 1
		default:
			return nil, fmt.Errorf("dicom: unpack pattern %q: unrecognized token %q", pattern, string(c))
		}
	}
	return out, nil
}

func take(data []byte, off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off+n > len(data) {
		return nil, direrr.NewBoundsError(off, n, len(data))
	}
	return data[off : off+n], nil
}

// endianPrefix renders the '<' or '>' prefix Unpack expects for a given
// little-endian flag, so callers building a pattern don't have to spell it
// out inline.
func endianPrefix(littleEndian bool) string {
	if littleEndian {
		return "<"
	}
	return ">"
}

// byteOrder mirrors endianPrefix for callers that want a binary.ByteOrder
// directly (the Converter works against raw value bytes rather than
// patterns).
func byteOrder(littleEndian bool) binary.ByteOrder {
	if littleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}
