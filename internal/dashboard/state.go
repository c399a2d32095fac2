// Package dashboard holds the UI state of the cleanup dashboard and the
// reducer that drives it. All bridge side effects are expressed as Commands
// and executed by Store.
package dashboard

import (
	"time"

	"desktopcleaner/internal/bridge"
	"desktopcleaner/internal/category"
	"desktopcleaner/internal/model"
	"desktopcleaner/internal/settings"
	"desktopcleaner/internal/weekly"
)

type View int

const (
	ViewHome View = iota
	ViewSettings
	ViewStats
	ViewTrash
	ViewProfile
)

func (v View) String() string {
	switch v {
	case ViewSettings:
		return "settings"
	case ViewStats:
		return "stats"
	case ViewTrash:
		return "trash"
	case ViewProfile:
		return "profile"
	default:
		return "home"
	}
}

// TrashEntry is a file staged in the local trash.
type TrashEntry struct {
	ID      string
	File    model.FileRecord
	AddedAt time.Time
}

type ScanStatus struct {
	Running      bool
	PanelVisible bool
	// Progress is cosmetic: it creeps to 90 while running and jumps to 100.
	Progress   int
	FilesCount int
	TotalSize  int64
}

// State is owned by the Store loop. Reduce never mutates its input.
type State struct {
	Files    []model.FileRecord
	Selected []string
	Weekly   weekly.Window
	Trash    []TrashEntry

	Settings         settings.Settings
	SettingsHydrated bool

	Autorun bool
	Scan    ScanStatus
	Error   string
	Profile *model.ProfileSummary

	Labeling     bool
	BulkLabel    *model.Label
	BulkCategory *model.Category

	View         View
	LangMenuOpen bool
	Caps         bridge.Caps
}

func New() State {
	return State{Settings: settings.Defaults()}
}

func (s State) IsSelected(path string) bool {
	for _, p := range s.Selected {
		if p == path {
			return true
		}
	}
	return false
}

func (s State) AllSelected() bool {
	return len(s.Files) > 0 && len(s.Selected) == len(s.Files)
}

func (s State) TotalSize() int64 {
	return model.TotalSize(s.Files)
}

// Cleanliness is the live gauge value for the current file list.
func (s State) Cleanliness() float64 {
	return weekly.Percent(len(s.Files))
}

func (s State) CategoryChart() []category.Count {
	return category.Histogram(s.Files)
}

// ProfileSummary returns the host summary when one was loaded, otherwise a
// summary of the currently visible files only. The fallback does not see
// files that were trashed or never scanned.
func (s State) ProfileSummary() model.ProfileSummary {
	if s.Profile != nil {
		return *s.Profile
	}
	return model.SummarizeFiles(s.Files)
}

func (s State) TrashEntry(id string) (TrashEntry, bool) {
	for _, e := range s.Trash {
		if e.ID == id {
			return e, true
		}
	}
	return TrashEntry{}, false
}
