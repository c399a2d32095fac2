package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func ptrLabel(l Label) *Label          { return &l }
func ptrCategory(c Category) *Category { return &c }

func TestParseLabel(t *testing.T) {
	l, err := ParseLabel("Keep")
	require.NoError(t, err)
	require.Equal(t, LabelKeep, *l)

	l, err = ParseLabel("none")
	require.NoError(t, err)
	require.Nil(t, l)

	_, err = ParseLabel("burn")
	require.Error(t, err)
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" games ")
	require.NoError(t, err)
	require.Equal(t, CategoryGames, *c)

	c, err = ParseCategory("")
	require.NoError(t, err)
	require.Nil(t, c)

	_, err = ParseCategory("hobby")
	require.Error(t, err)
}

func TestShort(t *testing.T) {
	var none *Label
	require.Equal(t, "-", none.Short())
	require.Equal(t, "Organize", ptrLabel(LabelOrganize).Short())
	require.Equal(t, "Study", ptrCategory(CategoryStudy).Short())
}

func TestSummarizeFiles(t *testing.T) {
	files := []FileRecord{
		{Path: "a", UserLabel: ptrLabel(LabelTrash), UserCategory: ptrCategory(CategoryWork)},
		{Path: "b", UserLabel: ptrLabel(LabelTrash)},
		{Path: "c"},
	}
	s := SummarizeFiles(files)
	require.Equal(t, 3, s.TotalRecords)
	require.Equal(t, 2, s.LabeledRecords)
	require.Equal(t, 1, s.CategorizedRecords)
	require.Equal(t, map[string]int{"trash": 2, NoneKey: 1}, s.Labels)
	require.Equal(t, map[string]int{"work": 1, NoneKey: 2}, s.Categories)
	require.Equal(t, "trash", *s.TopLabel)
	require.Equal(t, NoneKey, *s.TopCategory)
}

func TestSummarizeFilesEmpty(t *testing.T) {
	s := SummarizeFiles(nil)
	require.Zero(t, s.TotalRecords)
	require.Equal(t, NoneKey, *s.TopLabel)
}

func TestTotalSize(t *testing.T) {
	require.Equal(t, int64(60), TotalSize([]FileRecord{{SizeBytes: 10}, {SizeBytes: 50}}))
	require.Zero(t, TotalSize(nil))
}
