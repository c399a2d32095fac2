package host

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/Laisky/errors/v2"
	"go.uber.org/zap"

	"desktopcleaner/internal/bridge"
	"desktopcleaner/internal/model"
	"desktopcleaner/internal/scan"
)

// Local serves the dashboard from the local machine.
type Local struct {
	log     *zap.Logger
	desktop string
	state   *StateFile
	autorun *Autorun
	ignore  func() []string
	now     func() time.Time

	updates *bridge.Signal[string]
	// one listing at a time; overlapping requests queue up
	scanMu sync.Mutex
}

type Option func(*Local)

func WithLogger(l *zap.Logger) Option {
	return func(h *Local) { h.log = l }
}

// WithAutorun enables the autorun slots.
func WithAutorun(a *Autorun) Option {
	return func(h *Local) { h.autorun = a }
}

// WithIgnore supplies the file name patterns left out of every scan.
func WithIgnore(fn func() []string) Option {
	return func(h *Local) { h.ignore = fn }
}

func WithClock(now func() time.Time) Option {
	return func(h *Local) { h.now = now }
}

func New(desktop string, state *StateFile, opts ...Option) *Local {
	h := &Local{
		log:     zap.NewNop(),
		desktop: desktop,
		state:   state,
		ignore:  func() []string { return nil },
		now:     time.Now,
		updates: bridge.NewSignal[string](),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Local) Desktop() string { return h.desktop }

func (h *Local) State() *StateFile { return h.state }

// Updates carries every scan result as a serialized FilesPayload.
func (h *Local) Updates() *bridge.Signal[string] { return h.updates }

// Scan lists the desktop, refreshes the state record and scores each file.
// A listing failure is reported in the payload, never as an error.
func (h *Local) Scan() model.FilesPayload {
	h.scanMu.Lock()
	defer h.scanMu.Unlock()

	start := h.now()
	entries, err := scan.ListDesktop(h.desktop)
	if err != nil {
		h.log.Error("list desktop", zap.String("dir", h.desktop), zap.Error(err))
		msg := err.Error()
		return model.FilesPayload{Files: []model.FileRecord{}, Error: &msg}
	}

	patterns := h.ignore()
	kept := entries[:0]
	for _, e := range entries {
		if !scan.Ignored(e.Name, patterns) {
			kept = append(kept, e)
		}
	}

	records, err := h.state.UpdateSeen(kept)
	if err != nil {
		// the listing is still useful without persisted history
		h.log.Warn("update file state", zap.String("path", h.state.Path()), zap.Error(err))
	}

	now := h.now()
	files := make([]model.FileRecord, 0, len(kept))
	for _, e := range kept {
		rec := records[e.Path]
		f := model.FileRecord{
			Name:         e.Name,
			Path:         e.Path,
			Ext:          e.Ext,
			SizeBytes:    e.Size,
			LastModified: e.ModTime.UTC().Format(time.RFC3339),
			LastAccess:   e.AccessTime.UTC().Format(time.RFC3339),
			FirstSeenAt:  rec.FirstSeenAt,
			LastSeenAt:   rec.LastSeenAt,
			SeenCount:    rec.SeenCount,
			UserLabel:    rec.Label,
			UserCategory: rec.Category,
		}
		score, reasons := Score(f, rec, now)
		f.TrashScore = &score
		f.TrashReasons = reasons
		files = append(files, f)
	}

	h.log.Debug("desktop scanned",
		zap.Int("files", len(files)),
		zap.Int("ignored", len(entries)-len(kept)),
		zap.Duration("took", h.now().Sub(start)))
	return model.FilesPayload{Files: files}
}

// ScanDesktop starts a scan in the background and emits its result on Updates.
func (h *Local) ScanDesktop() {
	go h.emitScan()
}

func (h *Local) emitScan() {
	payload := h.Scan()
	b, err := json.Marshal(payload)
	if err != nil {
		h.log.Error("encode scan payload", zap.Error(err))
		return
	}
	h.updates.Emit(string(b))
}

// LabelFile stores the user label for path; label "none" or nil clears it.
func (h *Local) LabelFile(path string, label *string) error {
	var raw string
	if label != nil {
		raw = *label
	}
	l, err := model.ParseLabel(raw)
	if err != nil {
		return err
	}
	if err := h.state.SetLabel(path, l); err != nil {
		return errors.Wrapf(err, "label %s", path)
	}
	h.log.Info("file labeled", zap.String("path", path), zap.String("label", l.Short()))
	return nil
}

// SetCategory stores the user category for path; "none" or nil clears it.
func (h *Local) SetCategory(path string, cat *string) error {
	var raw string
	if cat != nil {
		raw = *cat
	}
	c, err := model.ParseCategory(raw)
	if err != nil {
		return err
	}
	if err := h.state.SetCategory(path, c); err != nil {
		return errors.Wrapf(err, "categorize %s", path)
	}
	h.log.Info("file categorized", zap.String("path", path), zap.String("category", c.Short()))
	return nil
}

// ProfileSummary aggregates every record the host has stored.
func (h *Local) ProfileSummary() model.ProfileSummary {
	return h.state.Summary()
}

// Bridge exposes the host to the dashboard. Slots deliberately mix the
// callback and return styles a desktop shell may use.
func (h *Local) Bridge() *bridge.Host {
	bh := &bridge.Host{
		ScanDesktop: bridge.Sync(h.ScanDesktop),
		LabelFile: bridge.Callback(func(path string, label *string, done func(bool)) error {
			if err := h.LabelFile(path, label); err != nil {
				return err
			}
			done(true)
			return nil
		}),
		SetCategory: bridge.Auto(func(path string, cat *string) (bool, error) {
			if err := h.SetCategory(path, cat); err != nil {
				return false, err
			}
			return true, nil
		}),
		GetProfileSummary: bridge.Sync(func() (string, error) {
			b, err := json.Marshal(h.ProfileSummary())
			if err != nil {
				return "", errors.Wrap(err, "encode profile summary")
			}
			return string(b), nil
		}),
		FilesUpdated: h.updates,
	}
	if h.autorun != nil {
		bh.SetAutorun = bridge.Callback(func(enable bool, done func(string)) {
			status := h.autorun.Set(enable)
			h.log.Info("autorun", zap.Bool("enable", enable), zap.String("status", status))
			done(status)
		})
		bh.GetAutorunEnabled = bridge.Auto(func(done func(bool)) {
			done(h.autorun.Enabled())
		})
	}
	return bh
}
