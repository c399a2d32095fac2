// Package host is the local desktop host: it lists the desktop, keeps the
// per-file state record, scores files and manages the autorun entry. It
// exposes all of that to the dashboard as a bridge.Host.
package host

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Laisky/errors/v2"
)

const (
	appDirName    = "DesktopCleaner"
	appDirUnix    = ".desktopcleaner"
	stateFileName = "file_state.json"
)

// AppDir returns the data folder for state, settings and logs, creating it.
// A non-empty override wins; then %APPDATA%\DesktopCleaner; then
// ~/.desktopcleaner.
func AppDir(override string) (string, error) {
	dir := strings.TrimSpace(override)
	if dir == "" {
		if appdata := strings.TrimSpace(os.Getenv("APPDATA")); appdata != "" {
			dir = filepath.Join(appdata, appDirName)
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", errors.Wrap(err, "resolve home folder")
			}
			dir = filepath.Join(home, appDirUnix)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "create %s", dir)
	}
	return dir, nil
}

// StatePath is the location of the per-file state record inside dataDir.
func StatePath(dataDir string) string {
	return filepath.Join(dataDir, stateFileName)
}

// DesktopDir returns the folder to scan. A non-empty override wins; then the
// platform desktop folder if it exists; then the home folder.
func DesktopDir(override string) string {
	if dir := strings.TrimSpace(override); dir != "" {
		return filepath.Clean(expandHome(dir))
	}
	home, _ := os.UserHomeDir()
	if strings.TrimSpace(home) == "" {
		home = "."
	}
	if dir := platformDesktop(home); dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return home
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	return filepath.Join(home, p[2:])
}
