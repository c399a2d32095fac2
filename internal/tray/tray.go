// Package tray puts the watcher in the system notification area.
package tray

import "github.com/Laisky/errors/v2"

var ErrUnsupported = errors.New("tray icon is not supported on this platform")

// Actions are the menu callbacks; nil entries are ignored.
type Actions struct {
	Scan     func()
	OpenData func()
	Quit     func()
}
