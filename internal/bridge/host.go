package bridge

import (
	"context"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
)

// ErrorStatusPrefix marks a failed status string returned by the host.
const ErrorStatusPrefix = "error_autorun:"

// ErrUnavailable is returned when no host is connected.
var ErrUnavailable = errors.New("desktop bridge is not available")

// Host is the capability surface a desktop host exposes to the dashboard.
// Any slot may be missing; callers check Available before relying on it.
type Host struct {
	ScanDesktop       Slot
	SetAutorun        Slot
	GetAutorunEnabled Slot
	LabelFile         Slot
	SetCategory       Slot
	GetProfileSummary Slot

	// FilesUpdated carries the serialized scan result.
	FilesUpdated *Signal[string]
}

// Caps is a snapshot of which capabilities a host offers.
type Caps struct {
	Scan           bool
	FilesUpdated   bool
	SetAutorun     bool
	GetAutorun     bool
	LabelFile      bool
	SetCategory    bool
	ProfileSummary bool
}

func (h *Host) Caps() Caps {
	if h == nil {
		return Caps{}
	}
	return Caps{
		Scan:           h.ScanDesktop.Available(),
		FilesUpdated:   h.FilesUpdated != nil,
		SetAutorun:     h.SetAutorun.Available(),
		GetAutorun:     h.GetAutorunEnabled.Available(),
		LabelFile:      h.LabelFile.Available(),
		SetCategory:    h.SetCategory.Available(),
		ProfileSummary: h.GetProfileSummary.Available(),
	}
}

// Connected reports whether any host is present.
func (c Caps) Connected() bool {
	return c != (Caps{})
}

// IsErrorStatus reports whether a host status string signals failure.
func IsErrorStatus(status string) bool {
	return strings.HasPrefix(status, ErrorStatusPrefix)
}

// WaitReady polls probe every interval until it returns a host, the ready
// channel fires, attempts run out or ctx ends. attempts <= 0 means no limit.
// Every probe, including one prompted by ready, counts as an attempt.
func WaitReady(ctx context.Context, probe func() (*Host, bool), ready <-chan struct{}, interval time.Duration, attempts int) (*Host, error) {
	if h, ok := probe(); ok {
		return h, nil
	}
	tried := 1
	if attempts > 0 && tried >= attempts {
		return nil, errors.Wrapf(ErrUnavailable, "gave up after %d attempts", tried)
	}
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ready:
			if h, ok := probe(); ok {
				return h, nil
			}
			// a ready signal with nothing behind it is not retried again
			ready = nil
			tried++
			if attempts > 0 && tried >= attempts {
				return nil, errors.Wrapf(ErrUnavailable, "gave up after %d attempts", tried)
			}
		case <-ticker.C:
			if h, ok := probe(); ok {
				return h, nil
			}
			tried++
			if attempts > 0 && tried >= attempts {
				return nil, errors.Wrapf(ErrUnavailable, "gave up after %d attempts", tried)
			}
		}
	}
}
