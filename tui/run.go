package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dasdy/nuhxboard/board"
)

// Run draws the board in the terminal until the user quits or ctx is done.
func Run(ctx context.Context, b *board.Board, title string) error {
	m := NewModel(b, title)
	defer m.unsubscribe()

	// Keys are read from the terminal itself so that stdin stays free for the event source.
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx), tea.WithInputTTY())

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}

		return fmt.Errorf("could not run terminal view: %w", err)
	}

	return nil
}
