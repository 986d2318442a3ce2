package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/engine"
)

// RunBoard opens the daily mission board for the active crew member.
func RunBoard(ctx context.Context, svc *engine.Service, day int, out io.Writer) error {
	m := newBoardModel(ctx, svc, day)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
