// Package tag defines the DICOM tag identifier and the small set of
// standard tags this reader needs to name by constant rather than by
// raw (group, element) pair.
package tag

import "fmt"

// Tag is the (group, element) pair that identifies a data element.
type Tag struct {
	Group   uint16
	Element uint16
}

// New builds a Tag from its group and element.
func New(group, element uint16) Tag {
	return Tag{Group: group, Element: element}
}

// String renders the tag in the conventional "(gggg,eeee)" display form.
func (t Tag) String() string {
	return fmt.Sprintf("(%04x,%04x)", t.Group, t.Element)
}

// CanonicalKey renders the tag as the lowercase, zero-padded 8-hex-digit
// string used internally by the dictionary and by dataset lookups, e.g.
// (0x0002, 0x0010) -> "00020010".
func (t Tag) CanonicalKey() string {
	return fmt.Sprintf("%04x%04x", t.Group, t.Element)
}

// IsPrivate reports whether the tag belongs to a private (odd group)
// block. Private tags never consult the dictionary.
func (t Tag) IsPrivate() bool {
	return t.Group%2 == 1
}

// IsGroupLength reports whether this tag is a per-group length element
// (element == 0x0000), which always resolves to the synthetic
// GroupLength dictionary entry regardless of group.
func (t Tag) IsGroupLength() bool {
	return t.Element == 0x0000
}

// Well-known File Meta Information tags (group 0x0002).
var (
	FileMetaInformationGroupLength = New(0x0002, 0x0000)
	MediaStorageSOPClassUID        = New(0x0002, 0x0002)
	MediaStorageSOPInstanceUID     = New(0x0002, 0x0003)
	TransferSyntaxUID              = New(0x0002, 0x0010)
	ImplementationClassUID         = New(0x0002, 0x0012)
	ImplementationVersionName      = New(0x0002, 0x0013)
)

// Well-known Command Set tags (group 0x0000).
var (
	CommandGroupLength = New(0x0000, 0x0000)
	CommandField       = New(0x0000, 0x0100)
	MessageID          = New(0x0000, 0x0110)
)

// Commonly referenced dataset tags.
var (
	SpecificCharacterSet = New(0x0008, 0x0005)
	SOPClassUID          = New(0x0008, 0x0016)
	SOPInstanceUID       = New(0x0008, 0x0018)
	Modality             = New(0x0008, 0x0060)
	PatientName          = New(0x0010, 0x0010)
	PatientID            = New(0x0010, 0x0020)
	PatientBirthDate     = New(0x0010, 0x0030)
	PatientSex           = New(0x0010, 0x0040)
	StudyInstanceUID     = New(0x0020, 0x000D)
	SeriesInstanceUID    = New(0x0020, 0x000E)

	Rows                       = New(0x0028, 0x0010)
	Columns                    = New(0x0028, 0x0011)
	BitsAllocated              = New(0x0028, 0x0100)
	BitsStored                 = New(0x0028, 0x0101)
	HighBit                    = New(0x0028, 0x0102)
	PixelRepresentation        = New(0x0028, 0x0103)
	PhotometricInterpretation  = New(0x0028, 0x0004)
	WindowCenter               = New(0x0028, 0x1050)
	WindowWidth                = New(0x0028, 0x1051)
	RescaleIntercept           = New(0x0028, 0x1052)
	RescaleSlope               = New(0x0028, 0x1053)

	PixelData = New(0x7FE0, 0x0010)
)

// SequenceItem and SequenceDelimitation mark the boundaries of a sequence
// item under undefined length; this reader recognizes but does not
// descend into them (sequences are out of scope for the core).
var (
	SequenceItem          = New(0xFFFE, 0xE000)
	SequenceItemDelimiter = New(0xFFFE, 0xE00D)
	SequenceDelimiter     = New(0xFFFE, 0xE0DD)
)
