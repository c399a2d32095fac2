package host

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/Laisky/errors/v2"

	"desktopcleaner/internal/model"
	"desktopcleaner/internal/scan"
)

const stateVersion = 1

// Record is what the host remembers about one desktop path across scans.
type Record struct {
	FirstSeenAt  string          `json:"first_seen_at,omitempty"`
	LastSeenAt   string          `json:"last_seen_at,omitempty"`
	SeenCount    int             `json:"seen_count"`
	LastModified string          `json:"last_modified,omitempty"`
	SizeBytes    int64           `json:"size_bytes"`
	Label        *model.Label    `json:"label"`
	Category     *model.Category `json:"category"`
}

type stateDoc struct {
	Version int                `json:"version"`
	Files   map[string]*Record `json:"files"`
}

// StateFile is the JSON record of every path ever seen on the desktop.
// Each operation loads the file, applies one change and writes it back.
type StateFile struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func NewStateFile(path string) *StateFile {
	return &StateFile{path: path, now: time.Now}
}

func (s *StateFile) Path() string { return s.path }

// UpdateSeen stamps every entry as seen now and returns the updated records
// keyed by path. Records for paths no longer on the desktop are kept.
func (s *StateFile) UpdateSeen(entries []scan.Entry) (map[string]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.loadLocked()
	now := s.now().UTC().Format(time.RFC3339Nano)
	out := make(map[string]Record, len(entries))
	for _, e := range entries {
		rec := doc.record(e.Path)
		if rec.FirstSeenAt == "" {
			rec.FirstSeenAt = now
		}
		rec.LastSeenAt = now
		rec.SeenCount++
		rec.LastModified = e.ModTime.UTC().Format(time.RFC3339Nano)
		rec.SizeBytes = e.Size
		out[e.Path] = *rec
	}
	if err := s.saveLocked(doc); err != nil {
		return out, err
	}
	return out, nil
}

// SetLabel stores or clears the user label for path.
func (s *StateFile) SetLabel(path string, label *model.Label) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.loadLocked()
	doc.record(path).Label = label
	return s.saveLocked(doc)
}

// SetCategory stores or clears the user category for path.
func (s *StateFile) SetCategory(path string, cat *model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.loadLocked()
	doc.record(path).Category = cat
	return s.saveLocked(doc)
}

// Lookup returns the stored record for path.
func (s *StateFile) Lookup(path string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.loadLocked().Files[path]
	if !ok || rec == nil {
		return Record{}, false
	}
	return *rec, true
}

// Summary aggregates labels and categories over every stored record,
// including paths that have left the desktop. Unlabeled records are not
// counted in the histograms.
func (s *StateFile) Summary() model.ProfileSummary {
	s.mu.Lock()
	doc := s.loadLocked()
	s.mu.Unlock()

	out := model.ProfileSummary{
		Version:    doc.Version,
		Labels:     map[string]int{},
		Categories: map[string]int{},
	}
	for _, rec := range doc.Files {
		if rec == nil {
			continue
		}
		out.TotalRecords++
		if rec.Label != nil && *rec.Label != "" {
			out.Labels[string(*rec.Label)]++
			out.LabeledRecords++
		}
		if rec.Category != nil && *rec.Category != "" {
			out.Categories[string(*rec.Category)]++
			out.CategorizedRecords++
		}
	}
	if len(out.Labels) > 0 {
		top := model.TopKey(out.Labels)
		out.TopLabel = &top
	}
	if len(out.Categories) > 0 {
		top := model.TopKey(out.Categories)
		out.TopCategory = &top
	}
	return out
}

// Paths lists every stored path in lexical order.
func (s *StateFile) Paths() []string {
	s.mu.Lock()
	doc := s.loadLocked()
	s.mu.Unlock()

	out := make([]string, 0, len(doc.Files))
	for p := range doc.Files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (d *stateDoc) record(path string) *Record {
	rec := d.Files[path]
	if rec == nil {
		rec = &Record{}
		d.Files[path] = rec
	}
	return rec
}

// loadLocked never fails: a missing or unreadable file yields an empty doc.
func (s *StateFile) loadLocked() *stateDoc {
	doc := &stateDoc{Version: stateVersion, Files: map[string]*Record{}}
	b, err := os.ReadFile(s.path)
	if err != nil {
		return doc
	}
	var raw struct {
		Files map[string]json.RawMessage `json:"files"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return doc
	}
	for p, v := range raw.Files {
		var rec Record
		if err := json.Unmarshal(v, &rec); err != nil {
			// a malformed entry starts over
			rec = Record{}
		}
		doc.Files[p] = &rec
	}
	return doc
}

func (s *StateFile) saveLocked(doc *stateDoc) error {
	doc.Version = stateVersion
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode file state")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(err, "create state folder")
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return errors.Wrap(err, "write file state")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "replace file state")
	}
	return nil
}
