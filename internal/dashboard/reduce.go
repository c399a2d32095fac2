package dashboard

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Laisky/errors/v2"

	"desktopcleaner/internal/bridge"
	"desktopcleaner/internal/i18n"
	"desktopcleaner/internal/model"
)

const (
	progressStep = 2
	progressCap  = 90
)

// trashStamp is the timestamp layout embedded in trash entry ids.
const trashStamp = "2006-01-02T15:04:05.000Z07:00"

// Reduce applies ev to s and returns the next state with the side effects
// the transition requires. s is not modified.
func Reduce(s State, ev Event) (State, []Command) {
	texts := i18n.For(s.Settings.Lang)

	switch ev := ev.(type) {
	case BridgeConnected:
		s.Caps = ev.Caps
		var cmds []Command
		if s.Caps.GetAutorun {
			cmds = append(cmds, SyncAutorunCmd{})
		}
		return loadProfile(s, cmds)

	case BridgeFailed:
		s.Caps = bridge.Caps{}
		s.Error = texts.BridgeUnavailable
		return s, nil

	case SettingsLoaded:
		s.Settings = ev.Partial.Apply(s.Settings)
		s.SettingsHydrated = true
		return s, nil

	case StartScan:
		if !s.Caps.Scan {
			s.Error = texts.BridgeUnavailable
			return s, nil
		}
		s.Error = ""
		s.Scan = ScanStatus{Running: true, PanelVisible: true}
		s.LangMenuOpen = false
		return s, []Command{ScanCmd{}, StartProgressCmd{}}

	case ScanTick:
		if s.Scan.Running && s.Scan.Progress < progressCap {
			s.Scan.Progress += progressStep
		}
		return s, nil

	case ScanFailed:
		s.Error = texts.ErrorFallback
		s.Scan.Running = false
		return s, []Command{StopProgressCmd{}}

	case CloseScanPanel:
		s.Scan.PanelVisible = false
		return s, nil

	case FilesUpdated:
		return filesUpdated(s, ev, texts)

	case ToggleSelect:
		if s.IsSelected(ev.Path) {
			s.Selected = without(s.Selected, ev.Path)
		} else {
			s.Selected = append(clone(s.Selected), ev.Path)
		}
		return s, nil

	case ToggleSelectAll:
		if len(s.Files) == 0 || len(s.Selected) == len(s.Files) {
			s.Selected = nil
			return s, nil
		}
		next := make([]string, 0, len(s.Files))
		for _, f := range s.Files {
			next = append(next, f.Path)
		}
		s.Selected = next
		return s, nil

	case MoveSelectedToTrash:
		if len(s.Selected) == 0 {
			return s, nil
		}
		return moveToTrash(s, clone(s.Selected), ev.At), nil

	case MoveToTrash:
		if len(ev.Paths) == 0 {
			return s, nil
		}
		return moveToTrash(s, ev.Paths, ev.At), nil

	case RestoreFromTrash:
		entry, ok := s.TrashEntry(ev.ID)
		if !ok {
			return s, nil
		}
		s.Files = append([]model.FileRecord{entry.File}, s.Files...)
		s.Trash = dropTrash(s.Trash, ev.ID)
		return s, nil

	case DeleteFromTrash:
		s.Trash = dropTrash(s.Trash, ev.ID)
		return s, nil

	case ClearTrash:
		s.Trash = nil
		return s, nil

	case SetBulkLabel:
		s.BulkLabel = ev.Label
		return s, nil

	case SetBulkCategory:
		s.BulkCategory = ev.Category
		return s, nil

	case ApplyBulk:
		if !s.Caps.Connected() {
			s.Error = texts.BridgeUnavailable
			return s, nil
		}
		if len(s.Selected) == 0 {
			return s, nil
		}
		s.Labeling = true
		return s, []Command{ApplyBulkCmd{
			Paths:    clone(s.Selected),
			Label:    s.BulkLabel,
			Category: s.BulkCategory,
		}}

	case BulkApplied:
		s.Labeling = false
		if ev.Err != nil {
			s.Error = texts.ErrorFallback
		}
		return s, nil

	case ToggleAutorun:
		if !s.Caps.SetAutorun {
			s.Error = texts.BridgeUnavailable
			return s, nil
		}
		prev := s.Autorun
		s.Autorun = ev.Enabled
		return s, []Command{SetAutorunCmd{Enabled: ev.Enabled, Prev: prev}}

	case AutorunFailed:
		s.Autorun = ev.Prev
		if bridge.IsErrorStatus(ev.Status) {
			s.Error = ev.Status
		} else {
			s.Error = texts.ErrorFallback
		}
		return s, nil

	case AutorunSynced:
		s.Autorun = ev.Enabled
		return s, nil

	case OpenView:
		s.View = ev.View
		s.LangMenuOpen = false
		if ev.View == ViewProfile {
			return loadProfile(s, nil)
		}
		return s, nil

	case CloseView:
		s.View = ViewHome
		return s, nil

	case ToggleLangMenu:
		s.LangMenuOpen = !s.LangMenuOpen
		return s, nil

	case SelectLang:
		s.LangMenuOpen = false
		if !ev.Lang.Valid() || ev.Lang == s.Settings.Lang {
			return s, nil
		}
		s.Settings.Lang = ev.Lang
		return s, persist(s)

	case SetThreshold:
		if ev.Days == s.Settings.CleanupThreshold {
			return s, nil
		}
		s.Settings.CleanupThreshold = ev.Days
		return s, persist(s)

	case LoadProfile:
		return loadProfile(s, nil)

	case ProfileLoaded:
		if ev.Err != nil {
			s.Profile = &model.ProfileSummary{Error: texts.ProfileFailed}
			return s, nil
		}
		// nil means the host has no summary; views fall back to the files
		s.Profile = ev.Summary
		return s, nil
	}
	return s, nil
}

func filesUpdated(s State, ev FilesUpdated, texts i18n.Texts) (State, []Command) {
	cmds := []Command{StopProgressCmd{}}
	s.Scan.Progress = 100
	s.Scan.Running = false

	files, backendErr, err := parseFilesPayload(ev.Payload)
	if err != nil {
		s.Error = texts.ErrorFallback
		s.Files = nil
		s.Selected = nil
		s.Scan.FilesCount = 0
		s.Scan.TotalSize = 0
		return s, cmds
	}

	s.Files = files
	s.Selected = nil
	s.Scan.FilesCount = len(files)
	s.Scan.TotalSize = model.TotalSize(files)
	s.Error = backendErr
	s.Weekly.RecordToday(len(files), ev.At)

	return loadProfile(s, cmds)
}

// parseFilesPayload decodes a filesUpdated payload. A payload that is not a
// JSON object fails; a files field that is not a list counts as empty.
// List elements that do not decode are dropped, and a non-empty list with
// no decodable element fails.
func parseFilesPayload(payload string) ([]model.FileRecord, string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, "", err
	}
	if raw == nil {
		return nil, "", errors.New("payload is not an object")
	}

	files := []model.FileRecord{}
	if v, ok := raw["files"]; ok {
		var elems []json.RawMessage
		if err := json.Unmarshal(v, &elems); err == nil {
			for _, e := range elems {
				var f model.FileRecord
				if json.Unmarshal(e, &f) == nil {
					files = append(files, f)
				}
			}
			if len(elems) > 0 && len(files) == 0 {
				return nil, "", errors.New("no readable file records in payload")
			}
		}
	}
	var backendErr string
	if v, ok := raw["error"]; ok {
		_ = json.Unmarshal(v, &backendErr)
	}
	return files, backendErr, nil
}

func loadProfile(s State, cmds []Command) (State, []Command) {
	if !s.Caps.ProfileSummary {
		s.Profile = nil
		return s, cmds
	}
	return s, append(cmds, LoadProfileCmd{})
}

func persist(s State) []Command {
	if !s.SettingsHydrated {
		return nil
	}
	return []Command{PersistSettingsCmd{Settings: s.Settings}}
}

func moveToTrash(s State, paths []string, at time.Time) State {
	want := make(map[string]bool, len(paths))
	for _, p := range paths {
		want[p] = true
	}
	stamp := at.UTC().Format(trashStamp)

	taken := make(map[string]bool, len(s.Trash))
	for _, e := range s.Trash {
		taken[e.ID] = true
	}

	var entries []TrashEntry
	kept := make([]model.FileRecord, 0, len(s.Files))
	for _, f := range s.Files {
		if !want[f.Path] {
			kept = append(kept, f)
			continue
		}
		id := fmt.Sprintf("%s-%s-%d", f.Path, stamp, len(entries))
		for n := 1; taken[id]; n++ {
			id = fmt.Sprintf("%s-%s-%d.%d", f.Path, stamp, len(entries), n)
		}
		taken[id] = true
		entries = append(entries, TrashEntry{ID: id, File: f, AddedAt: at})
	}

	s.Trash = append(entries, s.Trash...)
	s.Files = kept
	next := make([]string, 0, len(s.Selected))
	for _, p := range s.Selected {
		if !want[p] {
			next = append(next, p)
		}
	}
	s.Selected = next
	return s
}

func dropTrash(entries []TrashEntry, id string) []TrashEntry {
	out := make([]TrashEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

func without(paths []string, path string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p != path {
			out = append(out, p)
		}
	}
	return out
}

func clone(paths []string) []string {
	return append([]string(nil), paths...)
}
