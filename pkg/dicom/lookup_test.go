package dicom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenscan/dicomcore/pkg/dicom/tag"
)

func buildLookupDataset() *Dataset {
	var buf []byte
	buf = append(buf, explicitShort(0x0008, 0x0016, "UI", pad("1.2.840.10008.5.1.4.1.1.2"))...)
	buf = append(buf, explicitShort(0x0009, 0x0010, "LO", pad("PRIVATE"))...) // private, odd group
	ds, _ := ReadDataset(buf, 0, false, true, nil)
	return ds
}

func TestGetTagValueByPair(t *testing.T) {
	ds := buildLookupDataset()
	e := GetTagValue(ds, [2]int{0x0008, 0x0016})
	require.NotNil(t, e)
	assert.Equal(t, tag.SOPClassUID, e.Tag)
}

func TestGetTagValueByHexStringPair(t *testing.T) {
	ds := buildLookupDataset()
	e := GetTagValue(ds, [2]string{"0008", "0016"})
	require.NotNil(t, e)
}

func TestGetTagValueByKeyword(t *testing.T) {
	ds := buildLookupDataset()
	e := GetTagValue(ds, "SOPClassUID")
	require.NotNil(t, e)
}

func TestGetTagValueByParenthesizedTagString(t *testing.T) {
	ds := buildLookupDataset()
	e := GetTagValue(ds, "(0008,0016)")
	require.NotNil(t, e)
}

func TestGetTagValueMissing(t *testing.T) {
	ds := buildLookupDataset()
	assert.Nil(t, GetTagValue(ds, "NoSuchKeyword"))
}

func TestGetTagsGroup(t *testing.T) {
	ds := buildLookupDataset()
	group := GetTagsGroup(ds, "0008")
	require.Len(t, group, 1)
	_, ok := group["sOPClassUID"] // lowerFirst only lowers the first rune
	assert.True(t, ok)
	_, ok = group["sopClassUID"]
	assert.False(t, ok)
}

func TestPrivateTagPassthrough(t *testing.T) {
	ds := buildLookupDataset()
	e, ok := ds.FindByTag(tag.New(0x0009, 0x0010))
	require.True(t, ok)
	assert.Equal(t, "Unknown-PrivateTag", e.Keyword)
	assert.Equal(t, []byte("PRIVATE "), e.RawValue)
}

func TestQuickValidateMissingRequiredElements(t *testing.T) {
	full := &FullDataset{Main: NewDataset(), Meta: NewDataset(), Command: NewDataset()}
	errs := QuickValidate(full)
	assert.GreaterOrEqual(t, len(errs), 3)
}
