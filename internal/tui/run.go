package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nordskill/medialib/internal/library"
)

// RunBrowser launches the interactive asset browser and blocks until
// the operator quits.
func RunBrowser(ctx context.Context, ctrl *library.Controller) error {
	p := tea.NewProgram(NewBrowser(ctx, ctrl), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// RunPicker launches the modal picker and returns the ids confirmed
// with enter. An empty slice means the operator backed out.
func RunPicker(ctx context.Context, ctrl *library.Controller) ([]string, error) {
	p := tea.NewProgram(newPicker(ctx, ctrl), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running TUI: %w", err)
	}
	if m, ok := final.(BrowserModel); ok {
		return m.picked, nil
	}
	return nil, nil
}
