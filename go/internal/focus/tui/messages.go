package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mcdev12/focusroom/go/internal/focus/timer"
)

// TransitionMsg wraps a controller transition delivered to the UI loop.
type TransitionMsg struct {
	Transition timer.Transition
	bridge     *sessionBridge
}

// ClearStatusMsg clears the status line after a timeout.
type ClearStatusMsg struct {
	seq int
}

// sessionBridge carries transitions from the controller goroutines into
// bubbletea. One bridge exists per room visit.
type sessionBridge struct {
	transitions chan timer.Transition
	done        chan struct{}
	once        sync.Once
}

func newSessionBridge() *sessionBridge {
	return &sessionBridge{
		transitions: make(chan timer.Transition, 64),
		done:        make(chan struct{}),
	}
}

// forward is the controller's OnChange. It only waits while the buffer is full
// and gives up once the bridge is closed.
func (b *sessionBridge) forward(t timer.Transition) {
	select {
	case b.transitions <- t:
	case <-b.done:
	}
}

func (b *sessionBridge) close() {
	b.once.Do(func() { close(b.done) })
}

// waitForTransitionCmd reads the next transition from the bridge.
func waitForTransitionCmd(b *sessionBridge) tea.Cmd {
	return func() tea.Msg {
		select {
		case t := <-b.transitions:
			return TransitionMsg{Transition: t, bridge: b}
		case <-b.done:
			return nil
		}
	}
}
