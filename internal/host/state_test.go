package host

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"desktopcleaner/internal/model"
	"desktopcleaner/internal/scan"
)

func newTestState(t *testing.T, now time.Time) *StateFile {
	t.Helper()
	s := NewStateFile(filepath.Join(t.TempDir(), "data", stateFileName))
	s.now = func() time.Time { return now }
	return s
}

func TestUpdateSeen(t *testing.T) {
	first := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	s := newTestState(t, first)
	entries := []scan.Entry{
		{Path: "/d/a.txt", Size: 10, ModTime: first.Add(-time.Hour)},
		{Path: "/d/b.zip", Size: 20, ModTime: first.Add(-time.Hour)},
	}

	recs, err := s.UpdateSeen(entries)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, 1, recs["/d/a.txt"].SeenCount)
	require.Equal(t, "2026-09-01T08:00:00Z", recs["/d/a.txt"].FirstSeenAt)

	s.now = func() time.Time { return first.Add(48 * time.Hour) }
	recs, err = s.UpdateSeen(entries[:1])
	require.NoError(t, err)
	rec := recs["/d/a.txt"]
	require.Equal(t, 2, rec.SeenCount)
	require.Equal(t, "2026-09-01T08:00:00Z", rec.FirstSeenAt)
	require.Equal(t, "2026-09-03T08:00:00Z", rec.LastSeenAt)

	// b.zip left the desktop but its record stays
	require.Equal(t, []string{"/d/a.txt", "/d/b.zip"}, s.Paths())
}

func TestLabelsSurviveRescan(t *testing.T) {
	s := newTestState(t, time.Now())
	trash := model.LabelTrash
	require.NoError(t, s.SetLabel("/d/a.txt", &trash))

	recs, err := s.UpdateSeen([]scan.Entry{{Path: "/d/a.txt"}})
	require.NoError(t, err)
	require.Equal(t, &trash, recs["/d/a.txt"].Label)

	require.NoError(t, s.SetLabel("/d/a.txt", nil))
	rec, ok := s.Lookup("/d/a.txt")
	require.True(t, ok)
	require.Nil(t, rec.Label)
}

func TestSummary(t *testing.T) {
	s := newTestState(t, time.Now())
	trash, keep := model.LabelTrash, model.LabelKeep
	work := model.CategoryWork
	require.NoError(t, s.SetLabel("/d/1", &trash))
	require.NoError(t, s.SetLabel("/d/2", &trash))
	require.NoError(t, s.SetLabel("/d/3", &keep))
	require.NoError(t, s.SetCategory("/d/3", &work))
	_, err := s.UpdateSeen([]scan.Entry{{Path: "/d/4"}})
	require.NoError(t, err)

	sum := s.Summary()
	require.Equal(t, 1, sum.Version)
	require.Equal(t, 4, sum.TotalRecords)
	require.Equal(t, 3, sum.LabeledRecords)
	require.Equal(t, 1, sum.CategorizedRecords)
	require.Equal(t, map[string]int{"trash": 2, "keep": 1}, sum.Labels)
	require.Equal(t, "trash", *sum.TopLabel)
	require.Equal(t, "work", *sum.TopCategory)
}

func TestSummaryEmpty(t *testing.T) {
	sum := newTestState(t, time.Now()).Summary()
	require.Zero(t, sum.TotalRecords)
	require.Nil(t, sum.TopLabel)
	require.Nil(t, sum.TopCategory)
}

func TestStateToleratesBadFile(t *testing.T) {
	s := newTestState(t, time.Now())
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))

	require.NoError(t, os.WriteFile(s.Path(), []byte("not json"), 0o644))
	require.Zero(t, s.Summary().TotalRecords)

	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"version":7,"files":{"/d/a":{"seen_count":"x"},"/d/b":{"seen_count":3}}}`), 0o644))
	rec, ok := s.Lookup("/d/a")
	require.True(t, ok)
	require.Zero(t, rec.SeenCount)
	rec, _ = s.Lookup("/d/b")
	require.Equal(t, 3, rec.SeenCount)

	keep := model.LabelKeep
	require.NoError(t, s.SetLabel("/d/b", &keep))
	b, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	require.Contains(t, string(b), `"version": 1`)
}
