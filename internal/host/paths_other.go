//go:build !windows

package host

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// platformDesktop reads XDG_DESKTOP_DIR from user-dirs.dirs when present.
func platformDesktop(home string) string {
	fallback := filepath.Join(home, "Desktop")
	cfg := os.Getenv("XDG_CONFIG_HOME")
	if cfg == "" {
		cfg = filepath.Join(home, ".config")
	}
	f, err := os.Open(filepath.Join(cfg, "user-dirs.dirs"))
	if err != nil {
		return fallback
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		v, ok := strings.CutPrefix(line, "XDG_DESKTOP_DIR=")
		if !ok {
			continue
		}
		v = strings.Trim(v, `"`)
		v = strings.ReplaceAll(v, "$HOME", home)
		if strings.TrimSpace(v) == "" {
			return fallback
		}
		return filepath.Clean(v)
	}
	return fallback
}
