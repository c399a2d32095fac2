package dashboard

import (
	"time"

	"desktopcleaner/internal/bridge"
	"desktopcleaner/internal/model"
	"desktopcleaner/internal/settings"
)

// Event is an input to Reduce.
type Event interface{ event() }

type (
	BridgeConnected struct{ Caps bridge.Caps }
	BridgeFailed    struct{ Err error }

	SettingsLoaded struct{ Partial settings.Partial }

	StartScan      struct{}
	ScanTick       struct{}
	ScanFailed     struct{ Err error }
	CloseScanPanel struct{}
	FilesUpdated   struct {
		Payload string
		At      time.Time
	}

	ToggleSelect    struct{ Path string }
	ToggleSelectAll struct{}

	MoveSelectedToTrash struct{ At time.Time }
	MoveToTrash         struct {
		Paths []string
		At    time.Time
	}
	RestoreFromTrash struct{ ID string }
	DeleteFromTrash  struct{ ID string }
	ClearTrash       struct{}

	SetBulkLabel    struct{ Label *model.Label }
	SetBulkCategory struct{ Category *model.Category }
	ApplyBulk       struct{}
	BulkApplied     struct{ Err error }

	ToggleAutorun struct{ Enabled bool }
	AutorunFailed struct {
		Prev   bool
		Status string
		Err    error
	}
	AutorunSynced struct{ Enabled bool }

	OpenView       struct{ View View }
	CloseView      struct{}
	ToggleLangMenu struct{}
	SelectLang     struct{ Lang settings.Lang }
	SetThreshold   struct{ Days int }

	LoadProfile   struct{}
	ProfileLoaded struct {
		Summary *model.ProfileSummary
		Err     error
	}
)

func (BridgeConnected) event()     {}
func (BridgeFailed) event()        {}
func (SettingsLoaded) event()      {}
func (StartScan) event()           {}
func (ScanTick) event()            {}
func (ScanFailed) event()          {}
func (CloseScanPanel) event()      {}
func (FilesUpdated) event()        {}
func (ToggleSelect) event()        {}
func (ToggleSelectAll) event()     {}
func (MoveSelectedToTrash) event() {}
func (MoveToTrash) event()         {}
func (RestoreFromTrash) event()    {}
func (DeleteFromTrash) event()     {}
func (ClearTrash) event()          {}
func (SetBulkLabel) event()        {}
func (SetBulkCategory) event()     {}
func (ApplyBulk) event()           {}
func (BulkApplied) event()         {}
func (ToggleAutorun) event()       {}
func (AutorunFailed) event()       {}
func (AutorunSynced) event()       {}
func (OpenView) event()            {}
func (CloseView) event()           {}
func (ToggleLangMenu) event()      {}
func (SelectLang) event()          {}
func (SetThreshold) event()        {}
func (LoadProfile) event()         {}
func (ProfileLoaded) event()       {}

// Command is a side effect requested by Reduce and run by Store.
type Command interface{ command() }

type (
	ScanCmd          struct{}
	StartProgressCmd struct{}
	StopProgressCmd  struct{}
	SetAutorunCmd    struct {
		Enabled bool
		Prev    bool
	}
	SyncAutorunCmd struct{}
	LoadProfileCmd struct{}
	ApplyBulkCmd   struct {
		Paths    []string
		Label    *model.Label
		Category *model.Category
	}
	PersistSettingsCmd struct{ Settings settings.Settings }
)

func (ScanCmd) command()            {}
func (StartProgressCmd) command()   {}
func (StopProgressCmd) command()    {}
func (SetAutorunCmd) command()      {}
func (SyncAutorunCmd) command()     {}
func (LoadProfileCmd) command()     {}
func (ApplyBulkCmd) command()       {}
func (PersistSettingsCmd) command() {}
