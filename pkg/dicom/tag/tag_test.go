package tag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumenscan/dicomcore/pkg/dicom/tag"
	"github.com/lumenscan/dicomcore/pkg/dicom/vr"
)

func TestTagString(t *testing.T) {
	tg := tag.New(0x0008, 0x0018)
	assert.Equal(t, "(0008,0018)", tg.String())
}

func TestCanonicalKey(t *testing.T) {
	tg := tag.New(0x0002, 0x0010)
	assert.Equal(t, "00020010", tg.CanonicalKey())
}

func TestIsPrivate(t *testing.T) {
	assert.True(t, tag.New(0x0009, 0x0010).IsPrivate())
	assert.False(t, tag.New(0x0008, 0x0010).IsPrivate())
}

func TestIsGroupLength(t *testing.T) {
	assert.True(t, tag.New(0x0008, 0x0000).IsGroupLength())
	assert.False(t, tag.New(0x0008, 0x0010).IsGroupLength())
}

func TestLookupGroupLength(t *testing.T) {
	e := tag.Lookup(tag.New(0x0018, 0x0000))
	assert.Equal(t, "GroupLength", e.Keyword)
	assert.Equal(t, vr.UL, e.VR)
}

func TestLookupPrivateTag(t *testing.T) {
	e := tag.Lookup(tag.New(0x0009, 0x0010))
	assert.Equal(t, "Unknown-PrivateTag", e.Keyword)
}

func TestLookupKnownTag(t *testing.T) {
	e := tag.Lookup(tag.PatientName)
	assert.Equal(t, "PatientName", e.Keyword)
	assert.Equal(t, vr.PN, e.VR)
}

func TestLookupUnknownTag(t *testing.T) {
	e := tag.Lookup(tag.New(0x0009, 0x1234)) // odd group -> private before reaching "unknown"
	assert.Equal(t, "Unknown-PrivateTag", e.Keyword)

	e = tag.Lookup(tag.New(0x0008, 0x9999))
	assert.Equal(t, "Unknown", e.Keyword)
}

func TestLookupSequenceBoundaryTags(t *testing.T) {
	e := tag.Lookup(tag.SequenceItem)
	assert.Equal(t, "Item", e.Keyword)
}
