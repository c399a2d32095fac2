package tui

import (
	"context"

	"github.com/Laisky/errors/v2"
	tea "github.com/charmbracelet/bubbletea"

	"desktopcleaner/internal/dashboard"
)

// Run shows the dashboard until the user quits or ctx ends.
func Run(ctx context.Context, store *dashboard.Store) error {
	p := tea.NewProgram(New(store, store.State()), tea.WithAltScreen(), tea.WithContext(ctx))
	store.Subscribe(func(s dashboard.State) {
		p.Send(StateMsg(s))
	})
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.Wrap(err, "run dashboard")
	}
	return nil
}
