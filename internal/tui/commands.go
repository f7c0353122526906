// Package tui renders live resolution progress, one line per package lookup.
package tui

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vito/progrock"
)

// TapeSource is an interface for reading progrock updates.
// Since *progrock.Tape does not implement Read(), the caller provides a
// source, e.g. a channel-backed feed.
type TapeSource interface {
	Read() (*progrock.StatusUpdate, error)
}

// WaitForTape returns a Bubble Tea command that reads the next update from
// the source. It returns MsgTapeUpdate on success or MsgTapeEnded on EOF.
func WaitForTape(tape TapeSource) tea.Cmd {
	return func() tea.Msg {
		update, err := tape.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return MsgTapeEnded{}
			}
			// Treat other errors as end of stream.
			return MsgTapeEnded{}
		}
		return MsgTapeUpdate{Update: update}
	}
}
