package tui

import (
	"context"
	"errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/darkmagic/internal/core/ports"
	"golang.org/x/term"
)

var _ ports.ProgressView = (*Progress)(nil)

// Progress draws a Model to a terminal while a run is in flight.
type Progress struct {
	feed Feed
	out  io.Writer
}

// Feed is a TapeSource that starts queueing updates once activated.
type Feed interface {
	TapeSource
	Activate()
}

// NewProgress creates a Progress drawing updates from feed to standard error.
func NewProgress(feed Feed) *Progress {
	return &Progress{feed: feed, out: os.Stderr}
}

// SetOutput sets the writer the view draws to.
func (p *Progress) SetOutput(w io.Writer) {
	p.out = w
}

// Interactive reports whether the output is a terminal outside of CI.
func (p *Progress) Interactive() bool {
	ci := os.Getenv("CI")
	if ci == "true" || ci == "1" {
		return false
	}
	f, ok := p.out.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}

// Start activates the feed and runs the view in the background.
func (p *Progress) Start(ctx context.Context) func() error {
	p.feed.Activate()

	program := tea.NewProgram(
		NewModel(p.feed),
		tea.WithContext(ctx),
		tea.WithOutput(p.out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)

	done := make(chan error, 1)
	go func() {
		_, err := program.Run()
		done <- err
	}()

	return func() error {
		err := <-done
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	}
}
