package dicom

import "encoding/binary"

// explicitShort builds an 8-byte explicit-VR short header (group, elem, VR,
// length16) followed by value, little-endian.
func explicitShort(group, elem uint16, v string, value []byte) []byte {
	out := make([]byte, 8, 8+len(value))
	binary.LittleEndian.PutUint16(out[0:2], group)
	binary.LittleEndian.PutUint16(out[2:4], elem)
	out[4], out[5] = v[0], v[1]
	binary.LittleEndian.PutUint16(out[6:8], uint16(len(value)))
	return append(out, value...)
}

// explicitExtended builds a 12-byte explicit-VR extended header (group,
// elem, VR, reserved, length32) followed by value, little-endian.
func explicitExtended(group, elem uint16, v string, value []byte) []byte {
	out := make([]byte, 12, 12+len(value))
	binary.LittleEndian.PutUint16(out[0:2], group)
	binary.LittleEndian.PutUint16(out[2:4], elem)
	out[4], out[5] = v[0], v[1]
	binary.LittleEndian.PutUint32(out[8:12], uint32(len(value)))
	return append(out, value...)
}

// implicitHeader builds an 8-byte implicit-VR header (group, elem,
// length32) followed by value, little-endian.
func implicitHeader(group, elem uint16, value []byte) []byte {
	out := make([]byte, 8, 8+len(value))
	binary.LittleEndian.PutUint16(out[0:2], group)
	binary.LittleEndian.PutUint16(out[2:4], elem)
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(value)))
	return append(out, value...)
}

// pad returns s padded to an even length with a trailing space, as DICOM
// string VRs require.
func pad(s string) []byte {
	b := []byte(s)
	if len(b)%2 != 0 {
		b = append(b, ' ')
	}
	return b
}

// explicitShortBigEndian builds an 8-byte explicit-VR short header with
// group/elem/length16 encoded big-endian, as Explicit VR Big Endian
// requires.
func explicitShortBigEndian(group, elem uint16, v string, value []byte) []byte {
	out := make([]byte, 8, 8+len(value))
	binary.BigEndian.PutUint16(out[0:2], group)
	binary.BigEndian.PutUint16(out[2:4], elem)
	out[4], out[5] = v[0], v[1]
	binary.BigEndian.PutUint16(out[6:8], uint16(len(value)))
	return append(out, value...)
}

// u16le encodes v as a 2-byte little-endian value, the payload form of a US
// element.
func u16le(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}
