// Package tui is the terminal front-end of the cleanup dashboard.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"desktopcleaner/internal/category"
	"desktopcleaner/internal/dashboard"
	"desktopcleaner/internal/i18n"
	"desktopcleaner/internal/model"
	"desktopcleaner/internal/settings"
	"desktopcleaner/internal/ui"
)

// Dispatcher accepts dashboard events; *dashboard.Store satisfies it.
type Dispatcher interface {
	Dispatch(dashboard.Event)
}

// StateMsg carries a new dashboard state into the program.
type StateMsg dashboard.State

type Model struct {
	d   Dispatcher
	st  dashboard.State
	now func() time.Time

	files table.Model
	trash table.Model
	spin  spinner.Model
	bar   progress.Model

	width  int
	height int
}

func New(d Dispatcher, initial dashboard.State) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		d:   d,
		st:  initial,
		now: time.Now,
		files: table.New(
			table.WithFocused(true),
			table.WithHeight(12),
			table.WithKeyMap(tableKeys),
		),
		trash: table.New(
			table.WithFocused(true),
			table.WithHeight(12),
			table.WithKeyMap(tableKeys),
		),
		spin: sp,
		bar:  progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.spin.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StateMsg:
		m.st = dashboard.State(msg)
		m.refresh()
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h := msg.Height - 14
		if h < 4 {
			h = 4
		}
		m.files.SetHeight(h)
		m.trash.SetHeight(h)
		m.files.SetWidth(msg.Width - 2)
		m.trash.SetWidth(msg.Width - 2)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Back):
		switch {
		case m.st.LangMenuOpen:
			m.d.Dispatch(dashboard.ToggleLangMenu{})
		case m.st.Scan.PanelVisible && !m.st.Scan.Running:
			m.d.Dispatch(dashboard.CloseScanPanel{})
		case m.st.View != dashboard.ViewHome:
			m.d.Dispatch(dashboard.CloseView{})
		}
		return m, nil
	case key.Matches(msg, keys.Home):
		m.d.Dispatch(dashboard.CloseView{})
		return m, nil
	case key.Matches(msg, keys.Settings):
		m.d.Dispatch(dashboard.OpenView{View: dashboard.ViewSettings})
		return m, nil
	case key.Matches(msg, keys.Stats):
		m.d.Dispatch(dashboard.OpenView{View: dashboard.ViewStats})
		return m, nil
	case key.Matches(msg, keys.Trash):
		m.d.Dispatch(dashboard.OpenView{View: dashboard.ViewTrash})
		return m, nil
	case key.Matches(msg, keys.Profile):
		m.d.Dispatch(dashboard.OpenView{View: dashboard.ViewProfile})
		return m, nil
	case key.Matches(msg, keys.Scan):
		m.d.Dispatch(dashboard.StartScan{})
		return m, nil
	}

	switch m.st.View {
	case dashboard.ViewHome:
		return m.homeKey(msg)
	case dashboard.ViewTrash:
		return m.trashKey(msg)
	case dashboard.ViewSettings:
		return m.settingsKey(msg)
	}
	return m, nil
}

func (m Model) homeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Select):
		if f, ok := m.cursorFile(); ok {
			m.d.Dispatch(dashboard.ToggleSelect{Path: f.Path})
		}
	case key.Matches(msg, keys.SelectAll):
		m.d.Dispatch(dashboard.ToggleSelectAll{})
	case key.Matches(msg, keys.Discard):
		m.d.Dispatch(dashboard.MoveSelectedToTrash{At: m.now()})
	case key.Matches(msg, keys.Label):
		m.d.Dispatch(dashboard.SetBulkLabel{Label: nextLabel(m.st.BulkLabel)})
	case key.Matches(msg, keys.Category):
		m.d.Dispatch(dashboard.SetBulkCategory{Category: nextCategory(m.st.BulkCategory)})
	case key.Matches(msg, keys.Apply):
		m.d.Dispatch(dashboard.ApplyBulk{})
	case key.Matches(msg, keys.Autorun):
		m.d.Dispatch(dashboard.ToggleAutorun{Enabled: !m.st.Autorun})
	default:
		var cmd tea.Cmd
		m.files, cmd = m.files.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) trashKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Restore):
		if e, ok := m.cursorTrash(); ok {
			m.d.Dispatch(dashboard.RestoreFromTrash{ID: e.ID})
		}
	case key.Matches(msg, keys.Delete):
		if e, ok := m.cursorTrash(); ok {
			m.d.Dispatch(dashboard.DeleteFromTrash{ID: e.ID})
		}
	case key.Matches(msg, keys.Clear):
		m.d.Dispatch(dashboard.ClearTrash{})
	default:
		var cmd tea.Cmd
		m.trash, cmd = m.trash.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) settingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.st.LangMenuOpen {
		s := msg.String()
		for i, l := range settings.Langs {
			if s == string(rune('1'+i)) {
				m.d.Dispatch(dashboard.SelectLang{Lang: l})
				return m, nil
			}
		}
	}
	switch {
	case key.Matches(msg, keys.Lang):
		m.d.Dispatch(dashboard.ToggleLangMenu{})
	case key.Matches(msg, keys.More):
		m.d.Dispatch(dashboard.SetThreshold{Days: m.st.Settings.CleanupThreshold + 1})
	case key.Matches(msg, keys.Less):
		if m.st.Settings.CleanupThreshold > 1 {
			m.d.Dispatch(dashboard.SetThreshold{Days: m.st.Settings.CleanupThreshold - 1})
		}
	case key.Matches(msg, keys.Autorun):
		m.d.Dispatch(dashboard.ToggleAutorun{Enabled: !m.st.Autorun})
	}
	return m, nil
}

func (m Model) cursorFile() (model.FileRecord, bool) {
	i := m.files.Cursor()
	if i < 0 || i >= len(m.st.Files) {
		return model.FileRecord{}, false
	}
	return m.st.Files[i], true
}

func (m Model) cursorTrash() (dashboard.TrashEntry, bool) {
	i := m.trash.Cursor()
	if i < 0 || i >= len(m.st.Trash) {
		return dashboard.TrashEntry{}, false
	}
	return m.st.Trash[i], true
}

// refresh rebuilds table rows from the current state.
func (m *Model) refresh() {
	texts := i18n.For(m.st.Settings.Lang)

	m.files.SetColumns([]table.Column{
		{Title: " ", Width: 2},
		{Title: "Name", Width: 32},
		{Title: texts.TotalSize, Width: 12},
		{Title: "Type", Width: 12},
		{Title: "Score", Width: 6},
		{Title: "Label", Width: 9},
		{Title: "Category", Width: 9},
	})
	rows := make([]table.Row, 0, len(m.st.Files))
	for _, f := range m.st.Files {
		mark := ""
		if m.st.IsSelected(f.Path) {
			mark = "✓"
		}
		score := "-"
		if f.TrashScore != nil {
			score = ui.Theme{NoColor: true}.Score(*f.TrashScore)
		}
		rows = append(rows, table.Row{
			mark,
			f.Name,
			ui.FormatSize(f.SizeBytes),
			texts.Bucket(category.Of(f.Ext)),
			score,
			f.UserLabel.Short(),
			f.UserCategory.Short(),
		})
	}
	m.files.SetRows(rows)
	if c := m.files.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.files.SetCursor(len(rows) - 1)
	}

	m.trash.SetColumns([]table.Column{
		{Title: "Name", Width: 32},
		{Title: texts.TotalSize, Width: 12},
		{Title: "Added", Width: 20},
	})
	trows := make([]table.Row, 0, len(m.st.Trash))
	for _, e := range m.st.Trash {
		trows = append(trows, table.Row{e.File.Name, ui.FormatSize(e.File.SizeBytes), e.AddedAt.Local().Format("2006-01-02 15:04")})
	}
	m.trash.SetRows(trows)
	if c := m.trash.Cursor(); c >= len(trows) && len(trows) > 0 {
		m.trash.SetCursor(len(trows) - 1)
	}
}

func nextLabel(cur *model.Label) *model.Label {
	if cur == nil {
		l := model.Labels[0]
		return &l
	}
	for i, l := range model.Labels {
		if l == *cur && i+1 < len(model.Labels) {
			next := model.Labels[i+1]
			return &next
		}
	}
	return nil
}

func nextCategory(cur *model.Category) *model.Category {
	if cur == nil {
		c := model.Categories[0]
		return &c
	}
	for i, c := range model.Categories {
		if c == *cur && i+1 < len(model.Categories) {
			next := model.Categories[i+1]
			return &next
		}
	}
	return nil
}
