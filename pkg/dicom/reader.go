package dicom

import (
	"log/slog"

	"github.com/lumenscan/dicomcore/pkg/dicom/direrr"
	"github.com/lumenscan/dicomcore/pkg/dicom/tag"
	"github.com/lumenscan/dicomcore/pkg/dicom/transfer"
)

// FullDataset is the union of the main Dataset, the File Meta Information
// block and the Command Set block produced by one ReadFile call, plus the
// decoding mode the main dataset was read under.
type FullDataset struct {
	Preamble []byte
	Meta     *Dataset
	Command  *Dataset
	Main     *Dataset

	IsImplicitVR bool
	IsLittleEndian bool
}

// Combined returns the three blocks merged into a single Dataset, with key
// collisions resolved in favor of Main, then Meta, then Command — the
// precedence order named in the data model.
func (f *FullDataset) Combined() *Dataset {
	out := NewDataset()
	for _, k := range f.Command.Keys() {
		e, _ := f.Command.Get(k)
		out.put(k, e)
	}
	for _, k := range f.Meta.Keys() {
		e, _ := f.Meta.Get(k)
		out.put(k, e)
	}
	for _, k := range f.Main.Keys() {
		e, _ := f.Main.Get(k)
		out.put(k, e)
	}
	return out
}

// ReadPreamble reads the 132-byte header block at the start of buf: 128
// bytes of opaque preamble followed by the 4-byte "DICM" magic. On a magic
// mismatch it logs the condition and returns (nil, 0) — a permissive
// recovery that lets the caller retry parsing from offset 0 rather than
// fail outright, matching the reference reader's own tolerance of files
// missing a conformant preamble.
func ReadPreamble(buf []byte) (preamble []byte, newCursor int) {
	block, err := sliceBounds(buf, 0, 132)
	if err != nil {
		slog.Warn("dicom: input shorter than the 132-byte preamble block", "error", err)
		return nil, 0
	}
	if string(block[128:132]) != "DICM" {
		slog.Warn("dicom: preamble recovery, retrying from offset 0", "error", direrr.ErrPreambleMismatch)
		return nil, 0
	}
	return append([]byte(nil), block[0:128]...), 132
}

// ReadFile parses buf as a DICOM Part 10 file: preamble, File Meta
// Information (group 0x0002, always Explicit VR Little Endian), an
// optional Command Set (group 0x0000), and the main Dataset, whose
// encoding is taken from the Meta block's TransferSyntaxUID.
//
// ReadFile never returns an error for a structurally recoverable file —
// every condition in the error taxonomy is logged and parsing continues
// with whatever was decoded so far. The one fatal case is an empty input.
func ReadFile(buf []byte) (*FullDataset, error) {
	if len(buf) == 0 {
		return nil, direrr.ErrEmptyInput
	}

	preamble, cursor := ReadPreamble(buf)

	meta, cursor := ReadDataset(buf, cursor, false, true, StopAtGroup(0x0002))

	var command *Dataset
	command, cursor = ReadDataset(buf, cursor, false, true, StopAtGroup(0x0000))

	tsElem, _ := meta.FindByTag(tag.TransferSyntaxUID)
	if tsElem != nil {
		uid, _ := tsElem.Value.(string)
		syn := transfer.FromUID(uid)
		if syn.IsDeflated() {
			slog.Warn("dicom: deflated payload not inflated, reading main dataset as implicit VR little endian", "transfer_syntax", uid, "error", direrr.ErrDeflatedTransferSyntax)
		}
		if syn.IsEncapsulated() {
			slog.Warn("dicom: pixel data will not be decoded", "transfer_syntax", uid, "name", syn.Name(), "error", direrr.ErrEncapsulatedPixelData)
		}
	}

	isImplicitVR, isLittleEndian := DetectMode(buf, cursor, tsElem)
	main, _ := ReadDataset(buf, cursor, isImplicitVR, isLittleEndian, nil)

	return &FullDataset{
		Preamble:       preamble,
		Meta:           meta,
		Command:        command,
		Main:           main,
		IsImplicitVR:   isImplicitVR,
		IsLittleEndian: isLittleEndian,
	}, nil
}
