// Package settings persists the small user settings record.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/Laisky/errors/v2"
)

// Key is the fixed key the record is stored under.
const Key = "desktopcleaner.settings.v1"

type Lang string

const (
	LangUK Lang = "uk"
	LangRU Lang = "ru"
	LangEN Lang = "en"
)

var Langs = []Lang{LangUK, LangRU, LangEN}

func (l Lang) Valid() bool {
	return l == LangUK || l == LangRU || l == LangEN
}

const DefaultThreshold = 30

type Settings struct {
	Lang             Lang     `json:"lang"`
	CleanupThreshold int      `json:"cleanupThreshold"`
	IgnoreList       []string `json:"ignoreList,omitempty"`
}

func Defaults() Settings {
	return Settings{Lang: LangUK, CleanupThreshold: DefaultThreshold}
}

// Partial holds only the fields that were present and valid on load.
type Partial struct {
	Lang             *Lang
	CleanupThreshold *int
	IgnoreList       []string
}

// Apply overlays the loaded fields on s.
func (p Partial) Apply(s Settings) Settings {
	if p.Lang != nil {
		s.Lang = *p.Lang
	}
	if p.CleanupThreshold != nil {
		s.CleanupThreshold = *p.CleanupThreshold
	}
	if p.IgnoreList != nil {
		s.IgnoreList = append([]string(nil), p.IgnoreList...)
	}
	return s
}

// Store is a JSON key-value file holding the settings record under Key.
// Other keys in the file are preserved on save.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load never fails: unreadable or malformed data yields an empty Partial.
func (s *Store) Load() Partial {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.readLocked()
	if err != nil {
		return Partial{}
	}
	raw, ok := all[Key]
	if !ok {
		return Partial{}
	}
	return decode(raw)
}

func (s *Store) Save(next Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.readLocked()
	if err != nil {
		all = map[string]json.RawMessage{}
	}
	b, err := json.Marshal(next)
	if err != nil {
		return errors.Wrap(err, "marshal settings")
	}
	all[Key] = b
	return s.writeLocked(all)
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.readLocked()
	if err != nil {
		return nil
	}
	if _, ok := all[Key]; !ok {
		return nil
	}
	delete(all, Key)
	return s.writeLocked(all)
}

func (s *Store) readLocked() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", s.path)
	}
	all := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, errors.Wrapf(err, "parse %s", s.path)
	}
	return all, nil
}

func (s *Store) writeLocked(all map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal settings file")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(err, "create settings dir")
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "write settings")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "replace settings")
	}
	return nil
}

func decode(raw json.RawMessage) Partial {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return Partial{}
	}
	var out Partial

	var lang string
	if v, ok := obj["lang"]; ok && json.Unmarshal(v, &lang) == nil && Lang(lang).Valid() {
		l := Lang(lang)
		out.Lang = &l
	}

	var threshold float64
	if v, ok := obj["cleanupThreshold"]; ok && json.Unmarshal(v, &threshold) == nil {
		n := int(threshold)
		out.CleanupThreshold = &n
	}

	var ignore []string
	if v, ok := obj["ignoreList"]; ok && json.Unmarshal(v, &ignore) == nil && ignore != nil {
		out.IgnoreList = ignore
	}
	return out
}
