package dicom

import (
	"github.com/lumenscan/dicomcore/pkg/dicom/tag"
	"github.com/lumenscan/dicomcore/pkg/dicom/vr"
)

// UndefinedLength is the sentinel length (0xFFFFFFFF) that marks a
// sequence or encapsulated-pixel-data element whose payload has no
// declared byte count. This core recognizes but does not decode it.
const UndefinedLength uint32 = 0xFFFFFFFF

// Element is one parsed data element: its tag, the VR it was read or
// resolved with, the raw payload bytes exactly as they appeared on the
// wire, the decoded value, and the dictionary metadata that named it.
type Element struct {
	Tag      tag.Tag
	VR       vr.VR
	Length   uint32
	RawValue []byte
	Value    any

	Keyword string
	Name    string
	VM      string
	Retired bool
}

// elementHeader is the result of decoding one element header: the tag, the
// VR (vr.None in implicit-VR mode, resolved later by the caller), the
// declared length, and how many bytes the header itself occupied.
type elementHeader struct {
	Tag        tag.Tag
	VR         vr.VR
	Length     uint32
	HeaderSize int
}

// ParseElementHeader decodes one element header at cursor. In implicit-VR
// mode it reads the 8-byte (group, element, length32) form. In explicit-VR
// mode it reads the 8-byte (group, element, VR, length16) form; if the two
// VR bytes are not both uppercase ASCII letters it falls back to treating
// the element as implicit after all (a defensive recovery for files that
// intermix modes), and if the VR names one of the ExtraLengthVRs it reads
// a further 4-byte length, bringing the header to 12 bytes.
func ParseElementHeader(buf []byte, cursor int, implicitVR, littleEndian bool) (elementHeader, error) {
	head, err := sliceBounds(buf, cursor, 8)
	if err != nil {
		return elementHeader{}, err
	}

	if implicitVR {
		vals, err := Unpack(endianPrefix(littleEndian)+"HHL", head)
		if err != nil {
			return elementHeader{}, err
		}
		group, elem, length := vals[0].(uint16), vals[1].(uint16), vals[2].(uint32)
		return elementHeader{Tag: tag.New(group, elem), VR: vr.None, Length: length, HeaderSize: 8}, nil
	}

	vals, err := Unpack(endianPrefix(littleEndian)+"HH2sH", head)
	if err != nil {
		return elementHeader{}, err
	}
	group, elem := vals[0].(uint16), vals[1].(uint16)
	vrStr, length16 := vals[2].(string), vals[3].(uint16)

	if !isUpperASCIILetters(vrStr) {
		// Not a real VR after all — re-read as implicit.
		vals, err := Unpack(endianPrefix(littleEndian)+"HHL", head)
		if err != nil {
			return elementHeader{}, err
		}
		group, elem, length := vals[0].(uint16), vals[1].(uint16), vals[2].(uint32)
		return elementHeader{Tag: tag.New(group, elem), VR: vr.None, Length: length, HeaderSize: 8}, nil
	}

	v := vr.VR(vrStr)
	if v.HasExtraLength() {
		extra, err := sliceBounds(buf, cursor+8, 4)
		if err != nil {
			return elementHeader{}, err
		}
		vals, err := Unpack(endianPrefix(littleEndian)+"L", extra)
		if err != nil {
			return elementHeader{}, err
		}
		length := vals[0].(uint32)
		return elementHeader{Tag: tag.New(group, elem), VR: v, Length: length, HeaderSize: 12}, nil
	}

	return elementHeader{Tag: tag.New(group, elem), VR: v, Length: uint32(length16), HeaderSize: 8}, nil
}

// isUpperASCIILetters reports whether s is exactly two uppercase ASCII
// letters (0x41-0x5A), the test that distinguishes a genuine VR from two
// bytes of an implicit-VR length field that merely look like one.
func isUpperASCIILetters(s string) bool {
	if len(s) != 2 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 0x41 || s[i] > 0x5A {
			return false
		}
	}
	return true
}

// sliceBounds applies ByteCursor's bounds-checked slice against an
// arbitrary buffer and offset, for callers like ParseElementHeader that
// are stateless over the caller-supplied buffer+offset rather than owning
// a cursor.
func sliceBounds(buf []byte, start, length int) ([]byte, error) {
	c := ByteCursor{buf: buf}
	return c.Slice(start, length)
}
