package host

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"desktopcleaner/internal/model"
)

var scoreNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func daysAgo(d int) string {
	return scoreNow.Add(-time.Duration(d) * 24 * time.Hour).Format(time.RFC3339)
}

func TestScore(t *testing.T) {
	keep := model.LabelKeep
	cases := []struct {
		name    string
		file    model.FileRecord
		rec     Record
		score   float64
		reasons []string
	}{
		{
			name:    "fresh",
			file:    model.FileRecord{Name: "plan.txt", Ext: ".txt", LastModified: daysAgo(1)},
			score:   0,
			reasons: []string{"no_strong_signals"},
		},
		{
			name:    "temporary",
			file:    model.FileRecord{Name: "x.crdownload", Ext: ".CRDOWNLOAD", LastModified: daysAgo(400)},
			score:   0.95,
			reasons: []string{"temporary_extension:.crdownload"},
		},
		{
			name:    "kept wins over temporary",
			file:    model.FileRecord{Name: "x.tmp", Ext: ".tmp"},
			rec:     Record{Label: &keep},
			score:   0,
			reasons: []string{"user_marked_important"},
		},
		{
			name:    "old installer on desktop",
			file:    model.FileRecord{Name: "setup.exe", Ext: ".exe", LastModified: daysAgo(100)},
			rec:     Record{FirstSeenAt: daysAgo(20)},
			score:   0.60,
			reasons: []string{"not_modified_100d", "on_desktop_20d", "old_installer"},
		},
		{
			name:    "huge old archive copy",
			file:    model.FileRecord{Name: "backup (2).zip", Ext: ".zip", LastModified: daysAgo(200), SizeBytes: 600 * 1024 * 1024},
			rec:     Record{FirstSeenAt: daysAgo(200)},
			score:   0.88,
			reasons: []string{"not_modified_200d", "on_desktop_200d", "old_archive", "name_looks_like_duplicate", "very_large_old_payload"},
		},
		{
			name:    "month old duplicate",
			file:    model.FileRecord{Name: "Report FINAL.docx", Ext: ".docx", LastModified: daysAgo(31)},
			score:   0.27,
			reasons: []string{"not_modified_31d", "name_looks_like_duplicate"},
		},
		{
			name:    "zone-less stamp",
			file:    model.FileRecord{Name: "a.pdf", Ext: ".pdf", LastModified: "2026-01-01T00:00:00"},
			score:   0.35,
			reasons: []string{"not_modified_288d"},
		},
		{
			name:    "unparseable stamp",
			file:    model.FileRecord{Name: "a.pdf", Ext: ".pdf", LastModified: "yesterday"},
			score:   0,
			reasons: []string{"no_strong_signals"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, reasons := Score(tc.file, tc.rec, scoreNow)
			require.InDelta(t, tc.score, score, 1e-9)
			require.Equal(t, tc.reasons, reasons)
		})
	}
}

func TestScoreRoundsSums(t *testing.T) {
	f := model.FileRecord{Name: "new copy (1).msi", Ext: ".msi", LastModified: daysAgo(365), SizeBytes: 1 << 30}
	score, reasons := Score(f, Record{FirstSeenAt: daysAgo(365)}, scoreNow)
	require.Equal(t, 0.95, score)
	require.Len(t, reasons, 5)
}
