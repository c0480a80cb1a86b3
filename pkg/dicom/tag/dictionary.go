package tag

import (
	"encoding/csv"
	"strings"
	"sync"

	"github.com/lumenscan/dicomcore/pkg/dicom/vr"
)

// Entry is one row of the tag dictionary: the VR, multiplicity, human name,
// keyword and retirement status the standard assigns to a tag.
type Entry struct {
	VR      vr.VR
	VM      string
	Name    string
	Keyword string
	Retired bool
}

// GroupLengthEntry is returned for any tag whose element is 0x0000,
// regardless of group — the per-group byte-count element defined for every
// group in the standard.
var GroupLengthEntry = Entry{VR: vr.UL, VM: "1", Name: "Group Length", Keyword: "GroupLength"}

// unknownEntry is returned for a non-private tag absent from the table.
var unknownEntry = Entry{VR: vr.UN, VM: "1", Name: "Unknown", Keyword: "Unknown"}

// privateEntry is returned for any tag in an odd (private) group; the
// dictionary is never consulted for these.
var privateEntry = Entry{VR: vr.UN, VM: "1", Name: "Private Tag", Keyword: "Unknown-PrivateTag"}

// dictData is the static tag table, tab-separated as
// tag<TAB>VR<TAB>VM<TAB>retired(Y/N)<TAB>name<TAB>keyword
//
// This is a representative slice of the full standard dictionary (supplied
// in production as a generated, externally maintained table); it covers
// File Meta, the common Patient/Study/Series/Equipment modules, and the
// Image Pixel module this reader's pixel pipeline depends on.
const dictData = `00020000	UL	1	N	File Meta Information Group Length	FileMetaInformationGroupLength
00020001	OB	1	N	File Meta Information Version	FileMetaInformationVersion
00020002	UI	1	N	Media Storage SOP Class UID	MediaStorageSOPClassUID
00020003	UI	1	N	Media Storage SOP Instance UID	MediaStorageSOPInstanceUID
00020010	UI	1	N	Transfer Syntax UID	TransferSyntaxUID
00020012	UI	1	N	Implementation Class UID	ImplementationClassUID
00020013	SH	1	N	Implementation Version Name	ImplementationVersionName
00020016	AE	1	N	Source Application Entity Title	SourceApplicationEntityTitle
00000000	UL	1	N	Command Group Length	CommandGroupLength
00000100	US	1	N	Command Field	CommandField
00000110	US	1	N	Message ID	MessageID
00000800	US	1	N	Command Data Set Type	CommandDataSetType
00080005	CS	1-n	N	Specific Character Set	SpecificCharacterSet
00080008	CS	2-n	N	Image Type	ImageType
00080016	UI	1	N	SOP Class UID	SOPClassUID
00080018	UI	1	N	SOP Instance UID	SOPInstanceUID
00080020	DA	1	N	Study Date	StudyDate
00080021	DA	1	N	Series Date	SeriesDate
00080030	TM	1	N	Study Time	StudyTime
00080031	TM	1	N	Series Time	SeriesTime
00080050	SH	1	N	Accession Number	AccessionNumber
00080060	CS	1	N	Modality	Modality
00080070	LO	1	N	Manufacturer	Manufacturer
00080080	LO	1	N	Institution Name	InstitutionName
00080090	PN	1	N	Referring Physician's Name	ReferringPhysicianName
00081030	LO	1	N	Study Description	StudyDescription
0008103E	LO	1	N	Series Description	SeriesDescription
00081090	LO	1	N	Manufacturer's Model Name	ManufacturerModelName
00100010	PN	1	N	Patient's Name	PatientName
00100020	LO	1	N	Patient ID	PatientID
00100030	DA	1	N	Patient's Birth Date	PatientBirthDate
00100040	CS	1	N	Patient's Sex	PatientSex
00101010	AS	1	N	Patient's Age	PatientAge
00180050	DS	1	N	Slice Thickness	SliceThickness
00180060	DS	1	N	KVP	KVP
00181151	IS	1	N	X-Ray Tube Current	XRayTubeCurrent
00181152	IS	1	N	Exposure	Exposure
0020000D	UI	1	N	Study Instance UID	StudyInstanceUID
0020000E	UI	1	N	Series Instance UID	SeriesInstanceUID
00200010	SH	1	N	Study ID	StudyID
00200011	IS	1	N	Series Number	SeriesNumber
00200013	IS	1	N	Instance Number	InstanceNumber
00200032	DS	3	N	Image Position (Patient)	ImagePositionPatient
00200037	DS	6	N	Image Orientation (Patient)	ImageOrientationPatient
00200052	UI	1	N	Frame of Reference UID	FrameOfReferenceUID
00280002	US	1	N	Samples per Pixel	SamplesPerPixel
00280004	CS	1	N	Photometric Interpretation	PhotometricInterpretation
00280008	IS	1	N	Number of Frames	NumberOfFrames
00280010	US	1	N	Rows	Rows
00280011	US	1	N	Columns	Columns
00280030	DS	2	N	Pixel Spacing	PixelSpacing
00280100	US	1	N	Bits Allocated	BitsAllocated
00280101	US	1	N	Bits Stored	BitsStored
00280102	US	1	N	High Bit	HighBit
00280103	US	1	N	Pixel Representation	PixelRepresentation
00281050	DS	1-n	N	Window Center	WindowCenter
00281051	DS	1-n	N	Window Width	WindowWidth
00281052	DS	1	N	Rescale Intercept	RescaleIntercept
00281053	DS	1	N	Rescale Slope	RescaleSlope
00281054	LO	1	N	Rescale Type	RescaleType
7FE00010	OW	1	N	Pixel Data	PixelData
FFFEE000		1	N	Item	Item
FFFEE00D		1	N	Item Delimitation Item	ItemDelimitationItem
FFFEE0DD		1	N	Sequence Delimitation Item	SequenceDelimitationItem
`

var (
	dict     map[string]Entry
	dictOnce sync.Once
)

func loadDict() map[string]Entry {
	m := make(map[string]Entry, 64)
	r := csv.NewReader(strings.NewReader(dictData))
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	for {
		rec, err := r.Read()
		if err != nil {
			break
		}
		if len(rec) < 6 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(rec[0]))
		m[key] = Entry{
			VR:      vr.VR(strings.TrimSpace(rec[1])),
			VM:      strings.TrimSpace(rec[2]),
			Retired: strings.EqualFold(strings.TrimSpace(rec[3]), "Y"),
			Name:    strings.TrimSpace(rec[4]),
			Keyword: strings.TrimSpace(rec[5]),
		}
	}
	return m
}

// Lookup resolves a tag against the static dictionary. Private tags never
// reach the table: they short-circuit to privateEntry. Group-length
// elements (element == 0x0000) always resolve to GroupLengthEntry. Unknown
// non-private tags resolve to unknownEntry.
func Lookup(t Tag) Entry {
	if t.IsPrivate() {
		return privateEntry
	}
	if t.IsGroupLength() {
		return GroupLengthEntry
	}
	dictOnce.Do(func() { dict = loadDict() })
	if e, ok := dict[strings.ToLower(t.CanonicalKey())]; ok {
		return e
	}
	return unknownEntry
}
