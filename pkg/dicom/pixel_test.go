package dicom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPixelsIdentityWindow(t *testing.T) {
	// 16-bit unsigned, highBit+1==bitsStored (the common case), a window
	// wide enough to pass every value through unclamped.
	p := PixelParams{
		BitsAllocated:             16,
		BitsStored:                16,
		HighBit:                   15,
		PixelRepresentation:       0,
		PhotometricInterpretation: "MONOCHROME2",
		WindowCenter:              127.5,
		WindowWidth:               256,
		RescaleSlope:              1,
		RescaleIntercept:          0,
	}
	// stored little-endian: 0x0000, 0x00FF (=255), 0x0080 (=128)
	raw := []byte{0x00, 0x00, 0xFF, 0x00, 0x80, 0x00}
	colors, err := RenderPixels(raw, p)
	require.NoError(t, err)
	require.Len(t, colors, 3)
	// R=G=B always, by construction (pixel.go's Sprintf uses the same byte
	// three times) — lo=-0.5, hi=255.5, scale=255/256.
	assert.Equal(t, "#000000", colors[0])
	assert.Equal(t, "#FEFEFE", colors[1])
	assert.Equal(t, "#7F7F7F", colors[2])
}

// TestRenderPixelsSpecLiteralIdentityWindow uses the exact
// windowCenter=128/windowWidth=256 identity-window inputs documented as a
// testable property: 0/128/255 are claimed to map to #000000/#808080/
// #FFFFFF. The literal step-5 formula (scale = 255/(|lo|+|hi|), floor)
// actually produces #000000/#7F7F7F/#FEFEFE here — one unit low on the
// non-zero inputs, a floor-rounding artifact of that formula rather than
// of the sign-range caveat already flagged for it. See DESIGN.md for why
// this is preserved as-is rather than "corrected" to match the documented
// worked example.
func TestRenderPixelsSpecLiteralIdentityWindow(t *testing.T) {
	p := PixelParams{
		BitsAllocated:             16,
		BitsStored:                16,
		HighBit:                   15,
		PixelRepresentation:       0,
		PhotometricInterpretation: "MONOCHROME2",
		WindowCenter:              128,
		WindowWidth:               256,
		RescaleSlope:              1,
		RescaleIntercept:          0,
	}
	raw := []byte{0x00, 0x00, 0x80, 0x00, 0xFF, 0x00}
	colors, err := RenderPixels(raw, p)
	require.NoError(t, err)
	require.Len(t, colors, 3)
	assert.Equal(t, "#000000", colors[0])
	assert.Equal(t, "#7F7F7F", colors[1])
	assert.Equal(t, "#FEFEFE", colors[2])
}

// TestRenderPixelsSpecLiteralScenario6 reproduces the "Pixel path"
// end-to-end scenario's raw bytes and window parameters directly against
// RenderPixels. The documented expected output is
// ["#808080","#FFFFFF","#FFFFFF"]; the literal formula yields
// ["#7F7F7F","#FFFFFF","#FFFFFF"] — the same one-unit floor deviation on
// the v=0 sample as TestRenderPixelsSpecLiteralIdentityWindow, confirmed
// here against the full scenario rather than the isolated property.
func TestRenderPixelsSpecLiteralScenario6(t *testing.T) {
	p := PixelParams{
		BitsAllocated:             16,
		BitsStored:                16,
		HighBit:                   15,
		PixelRepresentation:       0,
		PhotometricInterpretation: "MONOCHROME2",
		WindowCenter:              0,
		WindowWidth:               2,
		RescaleSlope:              1,
		RescaleIntercept:          0,
	}
	raw := []byte{0x00, 0x00, 0x01, 0x00, 0x02, 0x00}
	colors, err := RenderPixels(raw, p)
	require.NoError(t, err)
	assert.Equal(t, []string{"#7F7F7F", "#FFFFFF", "#FFFFFF"}, colors)
}

func TestRenderPixelsMonochrome1Inverts(t *testing.T) {
	p := PixelParams{
		BitsAllocated:             16,
		BitsStored:                16,
		HighBit:                   15,
		PixelRepresentation:       0,
		PhotometricInterpretation: "MONOCHROME1",
		WindowCenter:              127.5,
		WindowWidth:               256,
		RescaleSlope:              1,
		RescaleIntercept:          0,
	}
	raw := []byte{0x00, 0x00}
	colors, err := RenderPixels(raw, p)
	require.NoError(t, err)
	assert.Equal(t, "#FFFFFF", colors[0])
}

func TestRenderPixelsSignedSpecialCase(t *testing.T) {
	// 0x8000 in a 16-bit two's-complement field must decode to -32768.
	assert.Equal(t, -32768.0, rawToSigned(0x8000, 2, 1))
}

func TestRenderPixelsSignedPositive(t *testing.T) {
	assert.Equal(t, 100.0, rawToSigned(100, 2, 1))
}

func TestRenderPixelsUnsignedPassesThrough(t *testing.T) {
	assert.Equal(t, 65535.0, rawToSigned(0xFFFF, 2, 0))
}

func TestRenderPixelsInvalidBitsAllocated(t *testing.T) {
	_, err := RenderPixels([]byte{0x01}, PixelParams{BitsAllocated: 0})
	require.Error(t, err)
}

func TestFindPreset(t *testing.T) {
	p, ok := FindPreset("bone")
	require.True(t, ok)
	assert.Equal(t, 400.0, p.Center)

	_, ok = FindPreset("nonexistent")
	assert.False(t, ok)
}

func TestPixelParamsFromDatasetMissingField(t *testing.T) {
	ds := NewDataset()
	_, err := PixelParamsFromDataset(ds)
	require.Error(t, err)
}

func TestPixelParamsFromDatasetDefaults(t *testing.T) {
	ds := NewDataset()
	ds.put("BitsAllocated-1", &Element{Keyword: "BitsAllocated", Value: uint16(16)})
	ds.put("BitsStored-1", &Element{Keyword: "BitsStored", Value: uint16(16)})
	ds.put("HighBit-1", &Element{Keyword: "HighBit", Value: uint16(15)})
	ds.put("PixelRepresentation-1", &Element{Keyword: "PixelRepresentation", Value: uint16(0)})
	ds.put("PhotometricInterpretation-1", &Element{Keyword: "PhotometricInterpretation", Value: "MONOCHROME2"})

	p, err := PixelParamsFromDataset(ds)
	require.NoError(t, err)
	assert.Equal(t, 610.0, p.WindowCenter)
	assert.Equal(t, 1221.0, p.WindowWidth)
	assert.Equal(t, 1.0, p.RescaleSlope)
}
