//go:build !windows

package host

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"desktopcleaner/internal/bridge"
)

func TestAutorunXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	a := &Autorun{Name: "DesktopCleaner", Target: "/opt/desktop cleaner/bin", Args: []string{"watch"}, dir: autostartDir()}

	require.False(t, a.Enabled())
	require.Equal(t, StatusNotFound, a.Set(false))
	require.Equal(t, StatusAdded, a.Set(true))
	require.True(t, a.Enabled())
	require.Equal(t, StatusAlready, a.Set(true))

	b, err := os.ReadFile(filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "autostart", "desktopcleaner.desktop"))
	require.NoError(t, err)
	require.Contains(t, string(b), `Exec="/opt/desktop cleaner/bin" watch`)

	require.Equal(t, StatusRemoved, a.Set(false))
	require.False(t, a.Enabled())
}

func TestAutorunErrorStatus(t *testing.T) {
	dir := t.TempDir()
	// a file where the autostart folder should be
	blocker := filepath.Join(dir, "autostart")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	a := &Autorun{Name: "DesktopCleaner", Target: "/bin/true", dir: blocker}

	status := a.Set(true)
	require.True(t, strings.HasPrefix(status, StatusErrorPrefix), status)
}

func TestBridgeAutorunSlots(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	a := &Autorun{Name: "DesktopCleanerTest", Target: "cleaner", dir: filepath.Join(t.TempDir(), "autostart")}
	h, _ := newTestLocal(t, WithAutorun(a))
	b := h.Bridge()
	require.Equal(t, bridge.StyleCallback, b.GetAutorunEnabled.StyleFor(0))

	ctx := context.Background()
	on, err := bridge.Call[bool](b.GetAutorunEnabled).Await(ctx)
	require.NoError(t, err)
	require.False(t, on)

	status, err := bridge.Call[string](b.SetAutorun, true).Await(ctx)
	require.NoError(t, err)
	require.Equal(t, StatusAdded, status)
}
