//go:build !windows

package host

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Laisky/errors/v2"
)

func autostartDir() string {
	cfg := os.Getenv("XDG_CONFIG_HOME")
	if cfg == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		cfg = filepath.Join(home, ".config")
	}
	return filepath.Join(cfg, "autostart")
}

func (a *Autorun) entryPath() (string, error) {
	if a.dir == "" {
		return "", errors.New("no autostart folder")
	}
	return filepath.Join(a.dir, strings.ToLower(a.Name)+".desktop"), nil
}

func (a *Autorun) exists() (bool, error) {
	p, err := a.entryPath()
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrap(err, "stat autostart entry")
	}
	return true, nil
}

func (a *Autorun) install() error {
	p, err := a.entryPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return errors.Wrap(err, "create autostart folder")
	}
	entry := fmt.Sprintf("[Desktop Entry]\nType=Application\nName=%s\nExec=%s\nX-GNOME-Autostart-enabled=true\nNoDisplay=true\n",
		a.Name, a.commandLine())
	if err := os.WriteFile(p, []byte(entry), 0o644); err != nil {
		return errors.Wrap(err, "write autostart entry")
	}
	return nil
}

func (a *Autorun) remove() error {
	p, err := a.entryPath()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		return errors.Wrap(err, "remove autostart entry")
	}
	return nil
}
