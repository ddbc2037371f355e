package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultSearchDelay is the pause after the last keystroke before a
// filter commit fires.
const DefaultSearchDelay = 300 * time.Millisecond

// debounceMsg closes one debounce window. Carries the sequence it was
// opened for; only the newest sequence is acted upon, so rapid typing
// keeps pushing the commit forward.
type debounceMsg struct {
	id  string
	seq int
}

// debounce schedules a debounceMsg after delay.
func debounce(id string, seq int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return debounceMsg{id: id, seq: seq}
	})
}
