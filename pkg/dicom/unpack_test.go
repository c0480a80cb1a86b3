package dicom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnpackImplicitHeaderLittleEndian(t *testing.T) {
	data := []byte{0x08, 0x00, 0x18, 0x00, 0x04, 0x00, 0x00, 0x00}
	vals, err := Unpack("<HHL", data)
	require.NoError(t, err)
	require.Len(t, vals, 3)
	assert.Equal(t, uint16(0x0008), vals[0])
	assert.Equal(t, uint16(0x0018), vals[1])
	assert.Equal(t, uint32(4), vals[2])
}

func TestUnpackExplicitShortHeader(t *testing.T) {
	data := []byte{0x08, 0x00, 0x18, 0x00, 'U', 'I', 0x04, 0x00}
	vals, err := Unpack("<HH2sH", data)
	require.NoError(t, err)
	require.Len(t, vals, 4)
	assert.Equal(t, "UI", vals[2])
	assert.Equal(t, uint16(4), vals[3])
}

func TestUnpackBigEndian(t *testing.T) {
	data := []byte{0x00, 0x08, 0x00, 0x18}
	vals, err := Unpack(">HH", data)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0008), vals[0])
	assert.Equal(t, uint16(0x0018), vals[1])
}

func TestUnpackTruncated(t *testing.T) {
	_, err := Unpack("<HHL", []byte{0x01, 0x02})
	require.Error(t, err)
}

func TestUnpackBadPrefix(t *testing.T) {
	_, err := Unpack("HHL", []byte{0, 0, 0, 0})
	require.Error(t, err)
}
