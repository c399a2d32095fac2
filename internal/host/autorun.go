package host

import (
	"os"
	"strings"

	"github.com/Laisky/errors/v2"

	"desktopcleaner/internal/bridge"
)

// Autorun status strings reported to the dashboard.
const (
	StatusAdded        = "added_to_startup"
	StatusAlready      = "already_in_startup"
	StatusRemoved      = "removed_from_startup"
	StatusNotFound     = "shortcut_not_found"
	StatusErrorPrefix  = bridge.ErrorStatusPrefix
	defaultAutorunName = "DesktopCleaner"
)

// Autorun toggles starting the app at login for the current user.
type Autorun struct {
	Name string
	// Target and Args form the command line started at login.
	Target string
	Args   []string

	// autostart folder for XDG desktop entries, unused on Windows
	dir string
}

// NewAutorun targets the running executable with args.
func NewAutorun(args ...string) (*Autorun, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, errors.Wrap(err, "resolve executable")
	}
	return &Autorun{
		Name:   defaultAutorunName,
		Target: exe,
		Args:   args,
		dir:    autostartDir(),
	}, nil
}

// Enabled reports whether the entry exists. Read errors count as disabled.
func (a *Autorun) Enabled() bool {
	ok, err := a.exists()
	return err == nil && ok
}

// Set installs or removes the entry and returns a status string; failures
// are reported as StatusErrorPrefix followed by the error text.
func (a *Autorun) Set(enable bool) string {
	ok, err := a.exists()
	if err != nil {
		return errorStatus(err)
	}
	if enable {
		if ok {
			return StatusAlready
		}
		if err := a.install(); err != nil {
			return errorStatus(err)
		}
		return StatusAdded
	}
	if !ok {
		return StatusNotFound
	}
	if err := a.remove(); err != nil {
		return errorStatus(err)
	}
	return StatusRemoved
}

func (a *Autorun) commandLine() string {
	parts := make([]string, 0, len(a.Args)+1)
	parts = append(parts, quoteArg(a.Target))
	for _, arg := range a.Args {
		parts = append(parts, quoteArg(arg))
	}
	return strings.Join(parts, " ")
}

func quoteArg(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"") {
		return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}
	return s
}

func errorStatus(err error) string {
	return StatusErrorPrefix + err.Error()
}
