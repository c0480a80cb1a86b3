package dicom

import (
	"fmt"
	"math"
	"strings"

	"github.com/lumenscan/dicomcore/pkg/dicom/direrr"
)

// PixelParams carries the 0x0028-group attributes (plus the two optional
// windowing values) that PixelPipeline needs to turn raw PixelData bytes
// into displayable colors. WindowCenter/WindowWidth/RescaleSlope/
// RescaleIntercept default per the standard when the dataset omits them.
type PixelParams struct {
	BitsAllocated              int
	BitsStored                 int
	HighBit                    int
	PixelRepresentation        int // 0 = unsigned, 1 = two's-complement signed
	PhotometricInterpretation  string
	WindowCenter               float64
	WindowWidth                float64
	RescaleSlope               float64
	RescaleIntercept           float64
}

// Preset is a named window/level pair offered as an alternative to a
// dataset's own WindowCenter/WindowWidth, adapted from the teacher's CT
// viewing-window table.
type Preset struct {
	Name   string
	Center float64
	Width  float64
}

// Presets are the CT viewing windows the pixelpreview CLI's --preset flag
// can select instead of the dataset's own windowing values.
var Presets = []Preset{
	{Name: "SOFT_TISSUE", Center: 40, Width: 400},
	{Name: "BONE", Center: 400, Width: 2000},
	{Name: "LUNG", Center: -600, Width: 1500},
	{Name: "BRAIN", Center: 50, Width: 350},
}

// FindPreset looks up a Preset by name, case-insensitively.
func FindPreset(name string) (Preset, bool) {
	for _, p := range Presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

// DefaultPixelParams returns the windowing/rescale defaults used when a
// dataset doesn't carry its own WindowCenter/WindowWidth/RescaleSlope/
// RescaleIntercept values.
func DefaultPixelParams() PixelParams {
	return PixelParams{
		WindowCenter:     610,
		WindowWidth:      1221,
		RescaleSlope:     1,
		RescaleIntercept: 0,
	}
}

// PixelParamsFromDataset reads BitsAllocated, BitsStored, HighBit,
// PixelRepresentation and PhotometricInterpretation from ds (all
// mandatory — absence is reported as an error) and overlays WindowCenter,
// WindowWidth, RescaleSlope and RescaleIntercept on top of
// DefaultPixelParams when present.
func PixelParamsFromDataset(ds *Dataset) (PixelParams, error) {
	p := DefaultPixelParams()

	bitsAllocated, ok := firstInt(ds, "BitsAllocated")
	if !ok {
		return p, fmt.Errorf("BitsAllocated: %w", direrr.ErrMissingPixelInput)
	}
	bitsStored, ok := firstInt(ds, "BitsStored")
	if !ok {
		return p, fmt.Errorf("BitsStored: %w", direrr.ErrMissingPixelInput)
	}
	highBit, ok := firstInt(ds, "HighBit")
	if !ok {
		return p, fmt.Errorf("HighBit: %w", direrr.ErrMissingPixelInput)
	}
	pixelRep, ok := firstInt(ds, "PixelRepresentation")
	if !ok {
		return p, fmt.Errorf("PixelRepresentation: %w", direrr.ErrMissingPixelInput)
	}
	photo, ok := firstString(ds, "PhotometricInterpretation")
	if !ok {
		return p, fmt.Errorf("PhotometricInterpretation: %w", direrr.ErrMissingPixelInput)
	}

	p.BitsAllocated = bitsAllocated
	p.BitsStored = bitsStored
	p.HighBit = highBit
	p.PixelRepresentation = pixelRep
	p.PhotometricInterpretation = photo

	if v, ok := firstFloat(ds, "WindowCenter"); ok {
		p.WindowCenter = v
	}
	if v, ok := firstFloat(ds, "WindowWidth"); ok {
		p.WindowWidth = v
	}
	if v, ok := firstFloat(ds, "RescaleSlope"); ok {
		p.RescaleSlope = v
	}
	if v, ok := firstFloat(ds, "RescaleIntercept"); ok {
		p.RescaleIntercept = v
	}
	return p, nil
}

// RenderPixels runs the full PixelPipeline over rawValue (the PixelData
// element's raw bytes) under p, returning one "#RRGGBB" color string per
// pixel in row-major source order. No geometry (rows/columns) is applied —
// callers that need a 2D image reshape the returned slice themselves using
// the dataset's Rows/Columns.
func RenderPixels(rawValue []byte, p PixelParams) ([]string, error) {
	bytesPerPixel := (p.BitsAllocated + 7) / 8
	if bytesPerPixel <= 0 {
		return nil, fmt.Errorf("dicom: invalid BitsAllocated %d", p.BitsAllocated)
	}

	reverseBytes := p.HighBit+1 == p.BitsStored

	lo := p.WindowCenter - p.WindowWidth/2
	hi := p.WindowCenter + p.WindowWidth/2
	scale := 255.0 / (math.Abs(lo) + math.Abs(hi))
	invert := p.PhotometricInterpretation == "MONOCHROME1"

	n := len(rawValue) / bytesPerPixel
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		chunk := rawValue[i*bytesPerPixel : (i+1)*bytesPerPixel]
		raw := decodeChunk(chunk, reverseBytes)

		v := rawToSigned(raw, bytesPerPixel, p.PixelRepresentation)
		scaled := p.RescaleSlope*v + p.RescaleIntercept

		clamped := scaled
		if clamped < lo {
			clamped = lo
		}
		if clamped > hi {
			clamped = hi
		}
		if lo < 0 {
			clamped -= lo
		}
		gray := math.Floor(clamped * scale)

		b := int(gray)
		if invert {
			b = 255 - b
		}
		if b < 0 {
			b = 0
		}
		if b > 255 {
			b = 255
		}
		out = append(out, fmt.Sprintf("#%02X%02X%02X", b, b, b))
	}
	return out, nil
}

// decodeChunk renders chunk as a hex string and parses it as a single
// big-endian integer, exactly as if the bytes were concatenated into one
// hex string and read MSB-first. When reverseBytes is set (HighBit+1 ==
// BitsStored — the common case for little-endian-stored samples), the
// chunk's byte order is reversed first, turning the little-endian storage
// order into the big-endian order this step always parses.
func decodeChunk(chunk []byte, reverseBytes bool) uint64 {
	ordered := chunk
	if reverseBytes {
		ordered = make([]byte, len(chunk))
		for i, b := range chunk {
			ordered[len(chunk)-1-i] = b
		}
	}
	var v uint64
	for _, b := range ordered {
		v = v<<8 | uint64(b)
	}
	return v
}

// rawToSigned interprets raw as unsigned (pixelRepresentation == 0) or as a
// two's-complement signed integer over bytesPerPixel*8 bits
// (pixelRepresentation == 1), returned as a float64 ready for rescaling.
func rawToSigned(raw uint64, bytesPerPixel, pixelRepresentation int) float64 {
	if pixelRepresentation == 0 {
		return float64(raw)
	}
	bits := bytesPerPixel * 8
	signBit := uint64(1) << (bits - 1)
	full := uint64(1) << bits
	if raw&signBit != 0 {
		return float64(raw) - float64(full)
	}
	return float64(raw)
}

func firstInt(ds *Dataset, keyword string) (int, bool) {
	e := findByKeywordPrefix(ds, keyword)
	if e == nil {
		return 0, false
	}
	switch v := e.Value.(type) {
	case int64:
		return int(v), true
	case uint16:
		return int(v), true
	case int16:
		return int(v), true
	case uint32:
		return int(v), true
	case int32:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

func firstFloat(ds *Dataset, keyword string) (float64, bool) {
	e := findByKeywordPrefix(ds, keyword)
	if e == nil {
		return 0, false
	}
	switch v := e.Value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case uint16:
		return float64(v), true
	case int16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case int32:
		return float64(v), true
	}
	return 0, false
}

func firstString(ds *Dataset, keyword string) (string, bool) {
	e := findByKeywordPrefix(ds, keyword)
	if e == nil {
		return "", false
	}
	if s, ok := e.Value.(string); ok {
		return s, true
	}
	return "", false
}

// findByKeywordPrefix scans the dataset for the first element whose
// Keyword matches keyword exactly (the safe key suffix is ignored).
func findByKeywordPrefix(ds *Dataset, keyword string) *Element {
	var found *Element
	ds.Each(func(_ string, e *Element) {
		if found != nil {
			return
		}
		if e.Keyword == keyword {
			found = e
		}
	})
	return found
}
