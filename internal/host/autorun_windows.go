//go:build windows

package host

import (
	"github.com/Laisky/errors/v2"
	"golang.org/x/sys/windows/registry"
)

const runKey = `Software\Microsoft\Windows\CurrentVersion\Run`

func autostartDir() string { return "" }

func (a *Autorun) exists() (bool, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return false, nil
		}
		return false, errors.Wrap(err, "open run key")
	}
	defer k.Close()

	if _, _, err := k.GetStringValue(a.Name); err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return false, nil
		}
		return false, errors.Wrap(err, "read run value")
	}
	return true, nil
}

func (a *Autorun) install() error {
	k, _, err := registry.CreateKey(registry.CURRENT_USER, runKey, registry.SET_VALUE)
	if err != nil {
		return errors.Wrap(err, "open run key")
	}
	defer k.Close()
	if err := k.SetStringValue(a.Name, a.commandLine()); err != nil {
		return errors.Wrap(err, "write run value")
	}
	return nil
}

func (a *Autorun) remove() error {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.SET_VALUE)
	if err != nil {
		return errors.Wrap(err, "open run key")
	}
	defer k.Close()
	if err := k.DeleteValue(a.Name); err != nil {
		return errors.Wrap(err, "delete run value")
	}
	return nil
}
