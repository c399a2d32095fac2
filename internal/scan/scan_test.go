package scan

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestListDesktop(t *testing.T) {
	root := t.TempDir()
	mustWriteSized(t, filepath.Join(root, "Report.PDF"), 10)
	mustWriteSized(t, filepath.Join(root, "notes"), 3)
	mustWriteSized(t, filepath.Join(root, "Projects", "deep.zip"), 99)

	old := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	if err := os.Chtimes(filepath.Join(root, "Report.PDF"), old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if err := os.Symlink(filepath.Join(root, "notes"), filepath.Join(root, "link")); err != nil {
		t.Logf("symlink unsupported: %v", err)
	}

	got, err := ListDesktop(root)
	if err != nil {
		t.Fatalf("ListDesktop error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("entry count mismatch: got %d want 2 (%v)", len(got), got)
	}
	if got[0].Name != "Report.PDF" || got[0].Ext != ".pdf" || got[0].Size != 10 {
		t.Fatalf("unexpected first entry: %+v", got[0])
	}
	if !got[0].ModTime.Equal(old) {
		t.Fatalf("mtime mismatch: got %v want %v", got[0].ModTime, old)
	}
	if got[0].Path != filepath.Join(root, "Report.PDF") {
		t.Fatalf("path mismatch: %s", got[0].Path)
	}
	if got[1].Name != "notes" || got[1].Ext != "" {
		t.Fatalf("unexpected second entry: %+v", got[1])
	}
}

func TestListDesktopMissing(t *testing.T) {
	if _, err := ListDesktop(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("expected error for missing folder")
	}
}

func TestIgnored(t *testing.T) {
	patterns := []string{"desktop.ini", "*.LNK", " "}
	cases := map[string]bool{
		"desktop.ini":     true,
		"Desktop.INI":     true,
		"Chrome.lnk":      true,
		"report.pdf":      false,
		"desktop.ini.bak": false,
	}
	for name, want := range cases {
		if got := Ignored(name, patterns); got != want {
			t.Fatalf("Ignored(%q)=%v want %v", name, got, want)
		}
	}
}

func TestHeaviest(t *testing.T) {
	entries := []Entry{
		{Path: "a", Size: 5},
		{Path: "b", Size: 50},
		{Path: "c", Size: 20},
		{Path: "d", Size: 50},
	}
	top := Heaviest(entries, 3)
	if len(top) != 3 {
		t.Fatalf("top len mismatch: got %d want 3", len(top))
	}
	if top[0].Path != "b" || top[1].Path != "d" || top[2].Path != "c" {
		t.Fatalf("unexpected order: %+v", top)
	}
	if len(Heaviest(entries, 0)) != 0 {
		t.Fatalf("zero limit should keep nothing")
	}
}

func TestFolders(t *testing.T) {
	root := t.TempDir()
	mustWriteSized(t, filepath.Join(root, "Videos", "a.mp4"), 10)
	mustWriteSized(t, filepath.Join(root, "Videos", "nested", "b.mkv"), 30)
	mustWriteSized(t, filepath.Join(root, "Downloads", "c.zip"), 20)
	mustWriteSized(t, filepath.Join(root, "Empty", ".keep"), 0)
	mustWriteSized(t, filepath.Join(root, "note.txt"), 5)

	stats, err := Folders(root)
	if err != nil {
		t.Fatalf("Folders error: %v", err)
	}
	if stats.Total != 60 {
		t.Fatalf("total mismatch: got %d want 60", stats.Total)
	}
	if stats.Files != 4 {
		t.Fatalf("file count mismatch: got %d want 4", stats.Files)
	}
	if stats.ByChild["Videos"] != 40 {
		t.Fatalf("Videos total mismatch: got %d want 40", stats.ByChild["Videos"])
	}
	want := []string{"Videos", "Downloads", "Empty"}
	for i, name := range want {
		if stats.Names[i] != name {
			t.Fatalf("names mismatch: got %v want %v", stats.Names, want)
		}
	}
}

func mustWriteSized(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	b := make([]byte, size)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}
