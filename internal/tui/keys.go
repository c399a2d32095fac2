package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
)

type keyMap struct {
	Quit key.Binding
	Back key.Binding

	Home     key.Binding
	Settings key.Binding
	Stats    key.Binding
	Trash    key.Binding
	Profile  key.Binding

	Scan      key.Binding
	Select    key.Binding
	SelectAll key.Binding
	Discard   key.Binding
	Label     key.Binding
	Category  key.Binding
	Apply     key.Binding
	Autorun   key.Binding

	Restore key.Binding
	Delete  key.Binding
	Clear   key.Binding

	Lang key.Binding
	More key.Binding
	Less key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Back: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),

	Home:     key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "home")),
	Settings: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "settings")),
	Stats:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "stats")),
	Trash:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "trash")),
	Profile:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "profile")),

	Scan:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "scan")),
	Select:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "select")),
	SelectAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
	Discard:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "to trash")),
	Label:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "label")),
	Category:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
	Apply:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
	Autorun:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "autorun")),

	Restore: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "restore")),
	Delete:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	Clear:   key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "empty trash")),

	Lang: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "language")),
	More: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "threshold up")),
	Less: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "threshold down")),
}

// tableKeys keeps only cursor movement so table bindings never shadow ours.
var tableKeys = table.KeyMap{
	LineUp:     key.NewBinding(key.WithKeys("up", "k")),
	LineDown:   key.NewBinding(key.WithKeys("down", "j")),
	PageUp:     key.NewBinding(key.WithKeys("pgup")),
	PageDown:   key.NewBinding(key.WithKeys("pgdown")),
	GotoTop:    key.NewBinding(key.WithKeys("home")),
	GotoBottom: key.NewBinding(key.WithKeys("end")),
}

func helpLine(bs ...key.Binding) string {
	out := ""
	for i, b := range bs {
		if i > 0 {
			out += " • "
		}
		h := b.Help()
		out += h.Key + " " + h.Desc
	}
	return out
}
