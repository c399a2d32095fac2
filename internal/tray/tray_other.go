//go:build !windows

package tray

type Tray struct{}

// Start reports ErrUnsupported; the watch command then runs headless.
func Start(string, Actions) (*Tray, error) {
	return nil, ErrUnsupported
}

func (t *Tray) Close() {}
