//go:build windows

package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

type Tray struct {
	quit chan struct{}
	once sync.Once
}

// Start shows the notification area icon. Menu clicks run on their own goroutine.
func Start(title string, a Actions) (*Tray, error) {
	t := &Tray{quit: make(chan struct{})}
	go systray.Run(func() {
		systray.SetTooltip(title)
		systray.SetTitle(title)
		scanItem := systray.AddMenuItem("Scan now", "Rescan the desktop")
		openItem := systray.AddMenuItem("Open data folder", "Show where state is kept")
		systray.AddSeparator()
		exitItem := systray.AddMenuItem("Exit", "Stop watching")
		if a.OpenData == nil {
			openItem.Hide()
		}
		go func() {
			for {
				select {
				case <-scanItem.ClickedCh:
					if a.Scan != nil {
						a.Scan()
					}
				case <-openItem.ClickedCh:
					a.OpenData()
				case <-exitItem.ClickedCh:
					if a.Quit != nil {
						a.Quit()
					}
					t.Close()
					return
				case <-t.quit:
					return
				}
			}
		}()
	}, func() {})
	return t, nil
}

func (t *Tray) Close() {
	t.once.Do(func() {
		close(t.quit)
		systray.Quit()
	})
}
