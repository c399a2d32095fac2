//go:build windows

package host

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/windows/registry"
)

const shellFoldersKey = `Software\Microsoft\Windows\CurrentVersion\Explorer\User Shell Folders`

// platformDesktop honors a desktop folder redirected to OneDrive or another drive.
func platformDesktop(home string) string {
	fallback := filepath.Join(home, "Desktop")
	k, err := registry.OpenKey(registry.CURRENT_USER, shellFoldersKey, registry.QUERY_VALUE)
	if err != nil {
		return fallback
	}
	defer k.Close()

	v, _, err := k.GetStringValue("Desktop")
	if err != nil || strings.TrimSpace(v) == "" {
		return fallback
	}
	v = os.ExpandEnv(v)
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return filepath.Clean(v)
}
