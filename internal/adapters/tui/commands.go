// Package tui draws a live progress view of a metadata run.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vito/progrock"
)

// TapeSource is an interface for reading progrock updates.
type TapeSource interface {
	Read() (*progrock.StatusUpdate, error)
}

// WaitForTape returns a Bubble Tea command that reads the next update from the tape.
// It returns MsgTapeUpdate on success or MsgTapeEnded on EOF or error.
func WaitForTape(tape TapeSource) tea.Cmd {
	return func() tea.Msg {
		update, err := tape.Read()
		if err != nil {
			return MsgTapeEnded{}
		}
		return MsgTapeUpdate{Update: update}
	}
}
