package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"desktopcleaner/internal/model"
	"desktopcleaner/internal/settings"
)

type env struct {
	desktop string
	data    string
}

func newEnv(t *testing.T) env {
	t.Helper()
	e := env{desktop: t.TempDir(), data: t.TempDir()}
	write := func(rel string, size int) {
		p := filepath.Join(e.desktop, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, bytes.Repeat([]byte("x"), size), 0o644))
	}
	write("notes.txt", 10)
	write("setup.exe", 3000)
	write("Projects/big.bin", 5000)
	return e
}

func (e env) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--desktop", e.desktop, "--data-dir", e.data, "--no-color", "--no-emoji"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestScanCommand(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "scan")
	require.NoError(t, err)
	require.Contains(t, out, "notes.txt")
	require.Contains(t, out, "setup.exe")
	require.NotContains(t, out, "big.bin", "folders are not listed")
	require.Contains(t, out, "2 files")
	require.Contains(t, out, " 96%")

	out, err = e.run(t, "scan", "--json")
	require.NoError(t, err)
	var p model.FilesPayload
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	require.Len(t, p.Files, 2)
	require.Nil(t, p.Error)
}

func TestScanMissingDesktop(t *testing.T) {
	e := env{desktop: filepath.Join(t.TempDir(), "gone"), data: t.TempDir()}
	_, err := e.run(t, "scan")
	require.Error(t, err)
}

func TestIgnoreListFromSettings(t *testing.T) {
	e := newEnv(t)
	st := settings.NewStore(filepath.Join(e.data, settingsFile))
	require.NoError(t, st.Save(settings.Settings{Lang: settings.LangEN, CleanupThreshold: 30, IgnoreList: []string{"*.exe"}}))

	out, err := e.run(t, "scan")
	require.NoError(t, err)
	require.NotContains(t, out, "setup.exe")
	require.Contains(t, out, "1 files")
}

func TestLabelCategoryAndProfile(t *testing.T) {
	e := newEnv(t)
	_, err := e.run(t, "label", "notes.txt", "keep")
	require.NoError(t, err)
	_, err = e.run(t, "category", "notes.txt", "work")
	require.NoError(t, err)
	_, err = e.run(t, "label", "setup.exe", "bogus")
	require.Error(t, err)

	out, err := e.run(t, "profile", "--json")
	require.NoError(t, err)
	var p model.ProfileSummary
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	require.Equal(t, 1, p.LabeledRecords)
	require.Equal(t, 1, p.Labels["keep"])
	require.Equal(t, 1, p.Categories["work"])

	out, err = e.run(t, "profile")
	require.NoError(t, err)
	require.Contains(t, out, "top label: keep")

	out, err = e.run(t, "scan")
	require.NoError(t, err)
	require.Contains(t, out, "user_marked_important")
}

func TestStatsCommand(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "stats", "-n", "1")
	require.NoError(t, err)
	require.Contains(t, out, "TOP FILES:")
	require.Contains(t, out, "setup.exe")
	require.Contains(t, out, "Projects")
	require.Contains(t, out, "FOLDERS (total: 4.9 KB, 1 files)")
}

func TestVersionCommand(t *testing.T) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	require.Equal(t, "desktopcleaner "+Version+"\n", out.String())
}

func TestUnknownAutorunArg(t *testing.T) {
	e := newEnv(t)
	_, err := e.run(t, "autorun", "maybe")
	require.Error(t, err)
}

func TestExecuteReportsFailure(t *testing.T) {
	require.Equal(t, 1, Execute([]string{"no-such-command"}))
}

func TestOrganizeCommand(t *testing.T) {
	e := newEnv(t)
	home := t.TempDir()
	_, err := e.run(t, "label", "notes.txt", "organize")
	require.NoError(t, err)

	out, err := e.run(t, "organize", "--home", home, "--dry-run")
	require.NoError(t, err)
	require.Contains(t, out, "would move")
	require.FileExists(t, filepath.Join(e.desktop, "notes.txt"))

	out, err = e.run(t, "organize", "--home", home)
	require.NoError(t, err)
	require.Contains(t, out, "1 of 1 files moved")
	require.FileExists(t, filepath.Join(home, "Documents", "notes.txt"))
	require.NoFileExists(t, filepath.Join(e.desktop, "notes.txt"))
}
