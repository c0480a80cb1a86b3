package dicom

import (
	"fmt"
	"strings"

	"github.com/lumenscan/dicomcore/pkg/dicom/tag"
)

// GetTagValue finds the first element in ds matching id and returns it, or
// nil if no element matches. id may be:
//
//   - [2]int{group, element} — matched by tag value;
//   - [2]string{hexGroup, hexElement} — matched case-insensitively against
//     the 4-hex-digit group/element strings;
//   - string — matched case-insensitively against the element's Name,
//     Keyword, or canonical tag string, after stripping spaces, "(", ")"
//     and ",".
func GetTagValue(ds *Dataset, id any) *Element {
	switch v := id.(type) {
	case [2]int:
		t := tag.New(uint16(v[0]), uint16(v[1]))
		if e, ok := ds.FindByTag(t); ok {
			return e
		}
		return nil

	case [2]string:
		wantGroup := strings.ToLower(v[0])
		wantElem := strings.ToLower(v[1])
		var found *Element
		ds.Each(func(_ string, e *Element) {
			if found != nil {
				return
			}
			if strings.ToLower(fmt.Sprintf("%04x", e.Tag.Group)) == wantGroup &&
				strings.ToLower(fmt.Sprintf("%04x", e.Tag.Element)) == wantElem {
				found = e
			}
		})
		return found

	case string:
		want := normalizeLookupID(v)
		var found *Element
		ds.Each(func(_ string, e *Element) {
			if found != nil {
				return
			}
			if normalizeLookupID(e.Name) == want ||
				normalizeLookupID(e.Keyword) == want ||
				normalizeLookupID(e.Tag.CanonicalKey()) == want {
				found = e
			}
		})
		return found

	default:
		return nil
	}
}

// normalizeLookupID lower-cases s and strips spaces, "(", ")" and ",", the
// normalization GetTagValue applies to both the query and each candidate
// field so that "(0008,0018)", "0008,0018" and "00080018" all match.
func normalizeLookupID(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "(", "")
	s = strings.ReplaceAll(s, ")", "")
	s = strings.ReplaceAll(s, ",", "")
	return s
}

// GetTagsGroup returns the subset of ds's elements whose group matches
// hexGroup (a 4-hex-digit string, case-insensitive), re-keyed by the
// element's Keyword with the lowercase-first-letter ("camelCase") form.
func GetTagsGroup(ds *Dataset, hexGroup string) map[string]*Element {
	want := strings.ToLower(hexGroup)
	out := make(map[string]*Element)
	ds.Each(func(_ string, e *Element) {
		if strings.ToLower(fmt.Sprintf("%04x", e.Tag.Group)) != want {
			return
		}
		out[lowerFirst(e.Keyword)] = e
	})
	return out
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// GetPixelData returns the dataset's PixelData element, or nil if absent.
func GetPixelData(ds *Dataset) *Element {
	if e, ok := ds.FindByTag(tag.PixelData); ok {
		return e
	}
	return nil
}

// QuickValidate performs a lightweight structural check of a dataset: it
// does not attempt full standard compliance, only the handful of fields
// any real reader depends on.
//
// Checks:
//   - SOPClassUID and SOPInstanceUID are present
//   - TransferSyntaxUID is present (meta block)
//   - if PixelData is present, Rows and Columns are also present and nonzero
//
// Returns an empty slice if valid, or a slice of errors describing issues.
func QuickValidate(full *FullDataset) []error {
	var errs []error

	if _, ok := full.Combined().FindByTag(tag.SOPClassUID); !ok {
		errs = append(errs, fmt.Errorf("missing required element: SOPClassUID (0008,0016)"))
	}
	if _, ok := full.Combined().FindByTag(tag.SOPInstanceUID); !ok {
		errs = append(errs, fmt.Errorf("missing required element: SOPInstanceUID (0008,0018)"))
	}
	if _, ok := full.Meta.FindByTag(tag.TransferSyntaxUID); !ok {
		errs = append(errs, fmt.Errorf("missing required element: TransferSyntaxUID (0002,0010)"))
	}

	if pixelElem := GetPixelData(full.Main); pixelElem != nil {
		rows, rowsOK := firstInt(full.Main, "Rows")
		cols, colsOK := firstInt(full.Main, "Columns")
		if !rowsOK || rows == 0 {
			errs = append(errs, fmt.Errorf("pixel data present but Rows (0028,0010) is missing or zero"))
		}
		if !colsOK || cols == 0 {
			errs = append(errs, fmt.Errorf("pixel data present but Columns (0028,0011) is missing or zero"))
		}
	}

	return errs
}
