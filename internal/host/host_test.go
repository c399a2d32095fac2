package host

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"desktopcleaner/internal/bridge"
	"desktopcleaner/internal/dashboard"
	"desktopcleaner/internal/model"
)

func newTestLocal(t *testing.T, opts ...Option) (*Local, string) {
	t.Helper()
	desk := t.TempDir()
	state := NewStateFile(filepath.Join(t.TempDir(), stateFileName))
	return New(desk, state, opts...), desk
}

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func TestLocalScan(t *testing.T) {
	h, desk := newTestLocal(t, WithIgnore(func() []string { return []string{"desktop.ini"} }))
	writeFile(t, filepath.Join(desk, "a.tmp"), 4)
	writeFile(t, filepath.Join(desk, "B.PNG"), 8)
	writeFile(t, filepath.Join(desk, "desktop.ini"), 1)
	writeFile(t, filepath.Join(desk, "folder", "inner.txt"), 1)

	p := h.Scan()
	require.Nil(t, p.Error)
	require.Len(t, p.Files, 2)
	require.Equal(t, "B.PNG", p.Files[0].Name)
	require.Equal(t, ".png", p.Files[0].Ext)
	require.Equal(t, 1, p.Files[0].SeenCount)
	require.NotEmpty(t, p.Files[0].FirstSeenAt)
	require.NotNil(t, p.Files[1].TrashScore)
	require.Equal(t, 0.95, *p.Files[1].TrashScore)

	p = h.Scan()
	require.Equal(t, 2, p.Files[0].SeenCount)
}

func TestLocalScanMissingDesktop(t *testing.T) {
	h := New(filepath.Join(t.TempDir(), "gone"), NewStateFile(filepath.Join(t.TempDir(), stateFileName)))
	p := h.Scan()
	require.NotNil(t, p.Error)
	require.Empty(t, p.Files)

	b, err := json.Marshal(p)
	require.NoError(t, err)
	require.Contains(t, string(b), `"files":[]`)
}

func TestLocalLabelAndCategory(t *testing.T) {
	h, desk := newTestLocal(t)
	path := filepath.Join(desk, "setup.exe")
	writeFile(t, path, 1)

	label := "pinned"
	require.NoError(t, h.LabelFile(path, &label))
	bad := "bogus"
	require.Error(t, h.LabelFile(path, &bad))
	games := "games"
	require.NoError(t, h.SetCategory(path, &games))

	p := h.Scan()
	require.Equal(t, model.LabelPinned, *p.Files[0].UserLabel)
	require.Equal(t, model.CategoryGames, *p.Files[0].UserCategory)
	require.Equal(t, 0.0, *p.Files[0].TrashScore)

	none := "none"
	require.NoError(t, h.LabelFile(path, &none))
	require.Nil(t, h.Scan().Files[0].UserLabel)
}

func TestBridgeSlots(t *testing.T) {
	h, desk := newTestLocal(t)
	path := filepath.Join(desk, "a.txt")
	writeFile(t, path, 1)
	b := h.Bridge()

	caps := b.Caps()
	require.True(t, caps.Scan)
	require.True(t, caps.LabelFile)
	require.False(t, caps.SetAutorun, "no autorun configured")

	ctx := context.Background()
	ok, err := bridge.Call[bool](b.LabelFile, path, "trash").Await(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = bridge.Call[bool](b.LabelFile, path, "bogus").Await(ctx)
	require.Error(t, err)

	ok, err = bridge.Call[bool](b.SetCategory, path, nil).Await(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	raw, err := bridge.Call[string](b.GetProfileSummary).Await(ctx)
	require.NoError(t, err)
	var sum model.ProfileSummary
	require.NoError(t, json.Unmarshal([]byte(raw), &sum))
	require.Equal(t, 1, sum.LabeledRecords)
	require.Equal(t, "trash", *sum.TopLabel)
}

// The local host driven end to end by the dashboard store.
func TestDashboardOverLocalHost(t *testing.T) {
	h, desk := newTestLocal(t)
	for _, name := range []string{"a.txt", "b.zip", "c.png"} {
		writeFile(t, filepath.Join(desk, name), 10)
	}

	store := dashboard.NewStore(dashboard.WithProgressInterval(time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = store.Run(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	err := store.Connect(ctx, func() (*bridge.Host, bool) { return h.Bridge(), true }, nil, 0, 1)
	require.NoError(t, err)

	store.Dispatch(dashboard.StartScan{})
	require.Eventually(t, func() bool { return store.State().Scan.FilesCount == 3 }, 2*time.Second, 5*time.Millisecond)

	st := store.State()
	require.Equal(t, int64(30), st.Scan.TotalSize)
	require.Equal(t, 94, st.Weekly.Points()[0].Value)

	keep := model.LabelKeep
	store.Dispatch(dashboard.ToggleSelect{Path: st.Files[0].Path})
	store.Dispatch(dashboard.SetBulkLabel{Label: &keep})
	store.Dispatch(dashboard.ApplyBulk{})
	require.Eventually(t, func() bool {
		s := store.State()
		return !s.Labeling && len(s.Files) == 3 && s.Files[0].UserLabel != nil
	}, 2*time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		p := store.State().Profile
		return p != nil && p.LabeledRecords == 1
	}, 2*time.Second, 5*time.Millisecond)
}
