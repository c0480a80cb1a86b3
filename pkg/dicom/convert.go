package dicom

import (
	"math"
	"strconv"
	"strings"

	"github.com/lumenscan/dicomcore/pkg/dicom/tag"
	"github.com/lumenscan/dicomcore/pkg/dicom/vr"
)

// TagRef is the decoded value of an AT element: a tag reference carried as
// a pair of uint16s in the element's own payload.
type TagRef struct {
	Group   uint16
	Element uint16
}

// Convert decodes raw element bytes into a typed Go value according to v.
// String VRs are split on backslash and trimmed of trailing NULs/spaces;
// numeric VRs are decoded as fixed-width arrays. When exactly one value
// results, Convert returns it unwrapped rather than as a one-element slice
// — callers that always want a slice should type-switch accordingly.
//
// SQ is a sentinel: sequences are out of scope for this core, so Convert
// returns nil for SQ without attempting to walk nested items.
func Convert(v vr.VR, raw []byte, littleEndian bool) any {
	switch v {
	case vr.SQ:
		return nil

	case vr.OB, vr.OW, vr.OF, vr.UN, vr.None:
		return append([]byte(nil), raw...)

	case vr.IS:
		return convertInts(raw)

	case vr.DS:
		return convertFloats(raw)

	case vr.US:
		return scalarOrListU16(convertU16Array(raw, littleEndian))

	case vr.SS:
		return scalarOrListI16(convertS16Array(raw, littleEndian))

	case vr.UL:
		return scalarOrListU32(convertU32Array(raw, littleEndian))

	case vr.SL:
		return scalarOrListI32(convertS32Array(raw, littleEndian))

	case vr.FL:
		return scalarOrListF32(convertF32Array(raw, littleEndian))

	case vr.FD:
		return scalarOrListF64(convertF64Array(raw, littleEndian))

	case vr.AT:
		return convertTagRefs(raw, littleEndian)

	default:
		if v.IsString() {
			return convertStrings(raw)
		}
		// Unrecognized VR: retain the bytes verbatim rather than fail —
		// an unknown VR is not an error, just an unconverted value.
		return append([]byte(nil), raw...)
	}
}

// trimElementText strips the padding bytes the standard allows on textual
// values: trailing NUL for UI, trailing space for everything else.
func trimElementText(s string) string {
	s = strings.TrimRight(s, "\x00")
	return strings.TrimRight(s, " ")
}

func convertStrings(raw []byte) any {
	parts := strings.Split(string(raw), "\\")
	for i := range parts {
		parts[i] = trimElementText(parts[i])
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return parts
}

func convertInts(raw []byte) any {
	parts := strings.Split(trimElementText(string(raw)), "\\")
	vals := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.ParseInt(p, 10, 64)
		if err == nil {
			vals = append(vals, n)
		}
	}
	if len(vals) == 1 {
		return vals[0]
	}
	return vals
}

func convertFloats(raw []byte) any {
	parts := strings.Split(trimElementText(string(raw)), "\\")
	vals := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		f, err := strconv.ParseFloat(p, 64)
		if err == nil {
			vals = append(vals, f)
		}
	}
	if len(vals) == 1 {
		return vals[0]
	}
	return vals
}

func convertU16Array(raw []byte, littleEndian bool) []uint16 {
	order := byteOrder(littleEndian)
	n := len(raw) / 2
	out := make([]uint16, 0, n)
	for i := 0; i+2 <= len(raw); i += 2 {
		out = append(out, order.Uint16(raw[i:i+2]))
	}
	return out
}

func convertS16Array(raw []byte, littleEndian bool) []int16 {
	u := convertU16Array(raw, littleEndian)
	out := make([]int16, len(u))
	for i, v := range u {
		out[i] = int16(v)
	}
	return out
}

func convertU32Array(raw []byte, littleEndian bool) []uint32 {
	order := byteOrder(littleEndian)
	n := len(raw) / 4
	out := make([]uint32, 0, n)
	for i := 0; i+4 <= len(raw); i += 4 {
		out = append(out, order.Uint32(raw[i:i+4]))
	}
	return out
}

func convertS32Array(raw []byte, littleEndian bool) []int32 {
	u := convertU32Array(raw, littleEndian)
	out := make([]int32, len(u))
	for i, v := range u {
		out[i] = int32(v)
	}
	return out
}

func convertF32Array(raw []byte, littleEndian bool) []float32 {
	order := byteOrder(littleEndian)
	n := len(raw) / 4
	out := make([]float32, 0, n)
	for i := 0; i+4 <= len(raw); i += 4 {
		bits := order.Uint32(raw[i : i+4])
		out = append(out, math.Float32frombits(bits))
	}
	return out
}

func convertF64Array(raw []byte, littleEndian bool) []float64 {
	order := byteOrder(littleEndian)
	n := len(raw) / 8
	out := make([]float64, 0, n)
	for i := 0; i+8 <= len(raw); i += 8 {
		bits := order.Uint64(raw[i : i+8])
		out = append(out, math.Float64frombits(bits))
	}
	return out
}

func convertTagRefs(raw []byte, littleEndian bool) any {
	order := byteOrder(littleEndian)
	var refs []TagRef
	for i := 0; i+4 <= len(raw); i += 4 {
		refs = append(refs, TagRef{
			Group:   order.Uint16(raw[i : i+2]),
			Element: order.Uint16(raw[i+2 : i+4]),
		})
	}
	if len(refs) == 1 {
		return refs[0]
	}
	return refs
}

func scalarOrListU16(v []uint16) any {
	if len(v) == 1 {
		return v[0]
	}
	return v
}

func scalarOrListI16(v []int16) any {
	if len(v) == 1 {
		return v[0]
	}
	return v
}

func scalarOrListU32(v []uint32) any {
	if len(v) == 1 {
		return v[0]
	}
	return v
}

func scalarOrListI32(v []int32) any {
	if len(v) == 1 {
		return v[0]
	}
	return v
}

func scalarOrListF32(v []float32) any {
	if len(v) == 1 {
		return v[0]
	}
	return v
}

func scalarOrListF64(v []float64) any {
	if len(v) == 1 {
		return v[0]
	}
	return v
}

// resolveVR picks the effective VR for an element whose header carried
// vr.None (implicit-VR mode): group-length elements always get UL, and
// every other tag is resolved through the dictionary.
func resolveVR(t tag.Tag, headerVR vr.VR) vr.VR {
	if headerVR != vr.None {
		return headerVR
	}
	if t.IsGroupLength() {
		return vr.UL
	}
	return tag.Lookup(t).VR
}
