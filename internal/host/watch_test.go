package host

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchDebouncesRescans(t *testing.T) {
	h, desk := newTestLocal(t, WithIgnore(func() []string { return []string{"*.part"} }))
	var scans atomic.Int32
	h.Updates().Connect(func(string) { scans.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- h.Watch(ctx, 100*time.Millisecond) }()
	// give the watcher time to register
	time.Sleep(50 * time.Millisecond)

	for i := 0; i < 5; i++ {
		writeFile(t, filepath.Join(desk, "burst.txt"), i)
	}
	require.Eventually(t, func() bool { return scans.Load() == 1 }, 3*time.Second, 10*time.Millisecond)

	writeFile(t, filepath.Join(desk, "chunk.part"), 1)
	time.Sleep(300 * time.Millisecond)
	require.Equal(t, int32(1), scans.Load(), "ignored names do not trigger scans")

	cancel()
	require.NoError(t, <-errc)
}

func TestWatchMissingDesktop(t *testing.T) {
	h := New(filepath.Join(t.TempDir(), "gone"), NewStateFile(filepath.Join(t.TempDir(), stateFileName)))
	require.Error(t, h.Watch(context.Background(), time.Millisecond))
}
