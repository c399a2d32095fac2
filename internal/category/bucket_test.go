package category

import (
	"testing"

	"desktopcleaner/internal/model"
)

func TestOf(t *testing.T) {
	cases := map[string]Bucket{
		".png":  Images,
		".JPG":  Images,
		"jpeg":  Images,
		".pdf":  Documents,
		".docx": Documents,
		".zip":  Archives,
		".7Z":   Archives,
		".exe":  Other,
		"":      Other,
	}
	for ext, want := range cases {
		if got := Of(ext); got != want {
			t.Fatalf("Of(%q) = %q want %q", ext, got, want)
		}
	}
}

func TestHistogram(t *testing.T) {
	files := []model.FileRecord{
		{Path: "a.exe", Ext: ".exe"},
		{Path: "b.png", Ext: ".png"},
		{Path: "c.PNG", Ext: ".PNG"},
		{Path: "d.pdf", Ext: ".pdf"},
		{Path: "e.msi", Ext: ".msi"},
	}
	got := Histogram(files)
	want := []Count{{Other, 2}, {Images, 2}, {Documents, 1}}
	if len(got) != len(want) {
		t.Fatalf("len mismatch: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("bucket %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestHistogramEmpty(t *testing.T) {
	if got := Histogram(nil); len(got) != 0 {
		t.Fatalf("expected empty histogram, got %v", got)
	}
}
