package dashboard

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Laisky/errors/v2"
	"go.uber.org/zap"

	"desktopcleaner/internal/bridge"
	"desktopcleaner/internal/model"
	"desktopcleaner/internal/settings"
)

const DefaultProgressInterval = 150 * time.Millisecond

// SettingsStore persists the settings record.
type SettingsStore interface {
	Load() settings.Partial
	Save(settings.Settings) error
}

type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

func WithSettings(st SettingsStore) Option {
	return func(s *Store) { s.settings = st }
}

func WithProgressInterval(d time.Duration) Option {
	return func(s *Store) { s.progressEvery = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store runs the reducer on a single goroutine and executes the commands it
// emits. Command goroutines talk back to the loop only through Dispatch.
type Store struct {
	log           *zap.Logger
	settings      SettingsStore
	progressEvery time.Duration
	now           func() time.Time

	events chan Event
	done   chan struct{}

	mu        sync.RWMutex
	state     State
	host      *bridge.Host
	sub       bridge.Subscription
	listeners []func(State)

	// loop goroutine only
	progressStop chan struct{}
	ctx          context.Context
	inflight     sync.WaitGroup
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		log:           zap.NewNop(),
		progressEvery: DefaultProgressInterval,
		now:           time.Now,
		events:        make(chan Event, 64),
		done:          make(chan struct{}),
		state:         New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers fn to run on the loop goroutine after every event.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Dispatch queues ev. It is a no-op once Run has returned.
func (s *Store) Dispatch(ev Event) {
	select {
	case s.events <- ev:
	case <-s.done:
	}
}

// Attach connects the store to a host and subscribes to its notifications.
func (s *Store) Attach(h *bridge.Host) {
	s.mu.Lock()
	if s.host != nil && s.host.FilesUpdated != nil {
		s.host.FilesUpdated.Disconnect(s.sub)
	}
	s.host = h
	if h != nil && h.FilesUpdated != nil {
		s.sub = h.FilesUpdated.Connect(func(payload string) {
			s.Dispatch(FilesUpdated{Payload: payload, At: s.now()})
		})
	}
	s.mu.Unlock()

	s.Dispatch(BridgeConnected{Caps: h.Caps()})
}

// Connect waits for a host with bounded retries and attaches it.
func (s *Store) Connect(ctx context.Context, probe func() (*bridge.Host, bool), ready <-chan struct{}, interval time.Duration, attempts int) error {
	h, err := bridge.WaitReady(ctx, probe, ready, interval, attempts)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.Dispatch(BridgeFailed{Err: err})
		}
		return errors.Wrap(err, "wait for desktop bridge")
	}
	s.Attach(h)
	return nil
}

func (s *Store) bridgeHost() *bridge.Host {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.host
}

// Run processes events until ctx ends, then tears down timers and the
// notification subscription.
func (s *Store) Run(ctx context.Context) error {
	s.ctx = ctx
	defer s.teardown()

	if s.settings != nil {
		s.apply(SettingsLoaded{Partial: s.settings.Load()})
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-s.events:
			s.apply(ev)
		}
	}
}

func (s *Store) apply(ev Event) {
	s.mu.Lock()
	next, cmds := Reduce(s.state, ev)
	s.state = next
	listeners := make([]func(State), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, cmd := range cmds {
		s.exec(cmd)
	}
	for _, fn := range listeners {
		fn(next)
	}
}

func (s *Store) teardown() {
	s.stopProgress()
	close(s.done)

	s.mu.Lock()
	if s.host != nil && s.host.FilesUpdated != nil {
		s.host.FilesUpdated.Disconnect(s.sub)
	}
	s.mu.Unlock()

	s.inflight.Wait()
}

func (s *Store) exec(cmd Command) {
	switch cmd := cmd.(type) {
	case StartProgressCmd:
		s.startProgress()
	case StopProgressCmd:
		s.stopProgress()
	case PersistSettingsCmd:
		if s.settings == nil {
			return
		}
		if err := s.settings.Save(cmd.Settings); err != nil {
			s.log.Warn("save settings", zap.Error(err))
		}
	default:
		h := s.bridgeHost()
		s.inflight.Add(1)
		go func() {
			defer s.inflight.Done()
			s.run(s.ctx, h, cmd)
		}()
	}
}

func (s *Store) run(ctx context.Context, h *bridge.Host, cmd Command) {
	if h == nil {
		s.log.Warn("bridge command without host", zap.String("command", commandName(cmd)))
		return
	}
	switch cmd := cmd.(type) {
	case ScanCmd:
		if _, err := bridge.Call[any](h.ScanDesktop).Await(ctx); err != nil && ctx.Err() == nil {
			s.log.Error("scan desktop", zap.Error(err))
			s.Dispatch(ScanFailed{Err: err})
		}

	case SyncAutorunCmd:
		s.syncAutorun(ctx, h)

	case SetAutorunCmd:
		status, err := bridge.Call[string](h.SetAutorun, cmd.Enabled).Await(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			s.log.Error("set autorun", zap.Bool("enabled", cmd.Enabled), zap.Error(err))
			s.Dispatch(AutorunFailed{Prev: cmd.Prev, Err: err})
			return
		}
		if bridge.IsErrorStatus(status) {
			s.log.Warn("set autorun rejected", zap.String("status", status))
			s.Dispatch(AutorunFailed{Prev: cmd.Prev, Status: status})
			return
		}
		s.log.Info("autorun updated", zap.Bool("enabled", cmd.Enabled), zap.String("status", status))
		s.syncAutorun(ctx, h)

	case LoadProfileCmd:
		payload, err := bridge.Call[string](h.GetProfileSummary).Await(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			s.log.Warn("load profile summary", zap.Error(err))
			s.Dispatch(ProfileLoaded{Err: err})
			return
		}
		// JSON null leaves summary nil, which selects the visible-files fallback
		var summary *model.ProfileSummary
		if err := json.Unmarshal([]byte(payload), &summary); err != nil {
			s.log.Warn("parse profile summary", zap.Error(err))
			s.Dispatch(ProfileLoaded{Err: err})
			return
		}
		s.Dispatch(ProfileLoaded{Summary: summary})

	case ApplyBulkCmd:
		err := applyBulk(ctx, h, cmd)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			s.log.Error("apply labels", zap.Int("files", len(cmd.Paths)), zap.Error(err))
		} else {
			s.log.Info("labels applied", zap.Int("files", len(cmd.Paths)))
		}
		s.Dispatch(BulkApplied{Err: err})
	}
}

func (s *Store) syncAutorun(ctx context.Context, h *bridge.Host) {
	if !h.GetAutorunEnabled.Available() {
		return
	}
	enabled, err := bridge.Call[bool](h.GetAutorunEnabled).Await(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.log.Debug("read autorun state", zap.Error(err))
		}
		return
	}
	s.Dispatch(AutorunSynced{Enabled: enabled})
}

// applyBulk issues one call per path and awaits each before the next.
// Labels go first, then categories, then a rescan is requested.
func applyBulk(ctx context.Context, h *bridge.Host, cmd ApplyBulkCmd) error {
	var label, cat any
	if cmd.Label != nil {
		label = string(*cmd.Label)
	}
	if cmd.Category != nil {
		cat = string(*cmd.Category)
	}

	if h.LabelFile.Available() {
		for _, p := range cmd.Paths {
			if _, err := bridge.Call[bool](h.LabelFile, p, label).Await(ctx); err != nil {
				return errors.Wrapf(err, "label %s", p)
			}
		}
	}
	if h.SetCategory.Available() {
		for _, p := range cmd.Paths {
			if _, err := bridge.Call[bool](h.SetCategory, p, cat).Await(ctx); err != nil {
				return errors.Wrapf(err, "categorize %s", p)
			}
		}
	}
	if h.ScanDesktop.Available() {
		if _, err := bridge.Call[any](h.ScanDesktop).Await(ctx); err != nil {
			return errors.Wrap(err, "rescan")
		}
	}
	return nil
}

func (s *Store) startProgress() {
	if s.progressStop != nil {
		return
	}
	stop := make(chan struct{})
	s.progressStop = stop
	every := s.progressEvery
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				select {
				case s.events <- ScanTick{}:
				case <-stop:
					return
				case <-s.done:
					return
				}
			}
		}
	}()
}

func (s *Store) stopProgress() {
	if s.progressStop == nil {
		return
	}
	close(s.progressStop)
	s.progressStop = nil
}

func commandName(cmd Command) string {
	switch cmd.(type) {
	case ScanCmd:
		return "scan"
	case SetAutorunCmd:
		return "set_autorun"
	case SyncAutorunCmd:
		return "sync_autorun"
	case LoadProfileCmd:
		return "load_profile"
	case ApplyBulkCmd:
		return "apply_bulk"
	default:
		return "other"
	}
}
