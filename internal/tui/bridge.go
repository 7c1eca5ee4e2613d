package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nordskill/medialib/internal/library"
)

// engineMsg wraps one engine event for the bubbletea update loop.
type engineMsg struct {
	event library.Event
}

// subscribeEngine bridges controller events onto a channel the update
// loop can drain. Engine callbacks run on whatever goroutine produced
// them; the channel hands them to bubbletea's single-threaded loop.
func subscribeEngine(ctrl *library.Controller) (chan library.Event, func()) {
	ch := make(chan library.Event, 64)
	unsub := ctrl.Subscribe(func(ev library.Event) {
		select {
		case ch <- ev:
		default:
			// A full buffer means the UI is far behind; drop rather
			// than block the engine.
		}
	})
	return ch, unsub
}

// waitForEngine returns a command that delivers the next engine event.
// The update loop re-issues it after each engineMsg.
func waitForEngine(ch chan library.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return engineMsg{event: ev}
	}
}
