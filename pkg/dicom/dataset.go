package dicom

import (
	"fmt"
	"log/slog"

	"github.com/lumenscan/dicomcore/pkg/dicom/direrr"
	"github.com/lumenscan/dicomcore/pkg/dicom/tag"
)

// Dataset is an ordered mapping from a disambiguated "safe key" to the
// Element parsed under it. Ordering is insertion order — the order
// elements were encountered in the byte stream. A Dataset is built once
// during parsing and never mutated afterward.
type Dataset struct {
	order []string
	elems map[string]*Element
}

// NewDataset returns an empty, ready-to-populate Dataset.
func NewDataset() *Dataset {
	return &Dataset{elems: make(map[string]*Element)}
}

// Get looks up an element by its exact safe key (e.g. "PatientName-1").
func (ds *Dataset) Get(key string) (*Element, bool) {
	e, ok := ds.elems[key]
	return e, ok
}

// Keys returns the safe keys in insertion order.
func (ds *Dataset) Keys() []string {
	return ds.order
}

// Len returns the number of elements in the dataset.
func (ds *Dataset) Len() int {
	return len(ds.order)
}

// Each calls fn for every element in insertion order.
func (ds *Dataset) Each(fn func(key string, e *Element)) {
	for _, k := range ds.order {
		fn(k, ds.elems[k])
	}
}

// FindByTag returns the first element matching t, scanning insertion
// order. It is the (group, element) counterpart to the keyword-indexed
// Get.
func (ds *Dataset) FindByTag(t tag.Tag) (*Element, bool) {
	for _, k := range ds.order {
		e := ds.elems[k]
		if e.Tag == t {
			return e, true
		}
	}
	return nil, false
}

func (ds *Dataset) put(key string, e *Element) {
	if _, exists := ds.elems[key]; !exists {
		ds.order = append(ds.order, key)
	}
	ds.elems[key] = e
}

// safeKey returns the first "keyword-N" (N starting at 1) not already
// present in ds. The scheme always appends a numeric suffix, even for the
// very first occurrence of a keyword — there is never a bare "keyword"
// key. This mirrors the reference implementation's disambiguation scheme
// exactly.
func safeKey(ds *Dataset, keyword string) string {
	n := 1
	for {
		k := fmt.Sprintf("%s-%d", keyword, n)
		if _, exists := ds.elems[k]; !exists {
			return k
		}
		n++
	}
}

// ReadDataset drives ElementParser in a loop starting at startCursor,
// producing an ordered Dataset. isImplicitVRAssumed and isLittleEndian set
// the initial decoding mode; ModeDetector may still override the
// implicit/explicit call per IsImplicitVR's probe. stopWhen, if non-nil, is
// consulted before every header is consumed and halts the read without
// consuming that header — this is how the File Meta and Command Set
// blocks are bounded to their respective groups.
//
// ReadDataset never returns an error: on any recoverable failure (a
// truncated header, a value that would run past the buffer, an
// undefined-length element, or — preserved verbatim from the reference
// algorithm — a zero-length element) it logs the condition and returns
// everything parsed so far, along with the cursor position just past the
// last element header it consumed (and past that element's value when the
// value was read). A header that stopWhen rejects is not consumed.
func ReadDataset(buf []byte, startCursor int, isImplicitVRAssumed, isLittleEndian bool, stopWhen StopFunc) (*Dataset, int) {
	ds := NewDataset()
	isImplicitVR := IsImplicitVR(buf, startCursor, isImplicitVRAssumed, isLittleEndian, true, stopWhen)

	d := 0
	for {
		if (&ByteCursor{buf: buf}).Remaining(startCursor+d) < 8 {
			break
		}

		header, err := ParseElementHeader(buf, startCursor+d, isImplicitVR, isLittleEndian)
		if err != nil {
			slog.Warn("dicom: truncated element header, stopping dataset read",
				"offset", startCursor+d, "error", err)
			break
		}

		if stopWhen != nil && stopWhen(header.Tag.Group, header.VR, header.Length) {
			break
		}
		d += header.HeaderSize

		if header.Length != UndefinedLength && header.Length > 0 {
			raw, err := sliceBounds(buf, startCursor+d, int(header.Length))
			if err != nil {
				slog.Warn("dicom: value runs past end of buffer, stopping dataset read",
					"tag", header.Tag.String(), "declared_length", header.Length, "error", err)
				break
			}
			d += int(header.Length)

			if header.Length%2 != 0 {
				slog.Debug("dicom: odd-length element (tolerated)", "tag", header.Tag.String(), "length", header.Length)
			}

			effVR := resolveVR(header.Tag, header.VR)
			entry := tag.Lookup(header.Tag)
			elem := &Element{
				Tag:      header.Tag,
				VR:       effVR,
				Length:   header.Length,
				RawValue: raw,
				Value:    Convert(effVR, raw, isLittleEndian),
				Keyword:  entry.Keyword,
				Name:     entry.Name,
				VM:       entry.VM,
				Retired:  entry.Retired,
			}
			ds.put(safeKey(ds, elem.Keyword), elem)
			continue
		}

		// Undefined length (sequence / encapsulated pixel data, out of
		// scope) or zero length: both terminate the read here, preserved
		// verbatim from the reference algorithm rather than special-cased
		// — see DESIGN.md.
		if header.Length == UndefinedLength {
			slog.Warn("dicom: sequences/encapsulated data not decoded",
				"tag", header.Tag.String(), "error", direrr.ErrUndefinedLength)
		} else {
			slog.Debug("dicom: zero-length element, stopping dataset read", "tag", header.Tag.String())
		}
		break
	}

	return ds, startCursor + d
}
