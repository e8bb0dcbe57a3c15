package tui

import (
	"context"

	"deck-of-cards-go/internal/deck"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive terminal client and blocks until the user
// quits or ctx is cancelled.
func Run(ctx context.Context, svc *deck.Service) error {
	changes, unsubscribe := Watch(svc)
	defer unsubscribe()

	p := tea.NewProgram(New(svc, changes), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
