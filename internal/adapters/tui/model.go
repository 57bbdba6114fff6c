package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vito/progrock"
)

// FileStatus is the state of one file in the view.
type FileStatus string

const (
	// StatusRunning indicates the file is being read.
	StatusRunning FileStatus = "Running"
	// StatusDone indicates the metadata was extracted.
	StatusDone FileStatus = "Done"
	// StatusCached indicates the metadata came from the cache.
	StatusCached FileStatus = "Cached"
	// StatusError indicates the file could not be read.
	StatusError FileStatus = "Error"
)

// FileState is a single file in the view.
type FileState struct {
	ID     string
	Name   string
	Status FileStatus
	Err    string
}

// Model is the Bubble Tea model for the progress view.
type Model struct {
	tape    TapeSource
	files   []FileState
	index   map[string]int
	height  int
	spinner spinner.Model
}

// NewModel creates a new model reading from tape.
func NewModel(tape TapeSource) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = fileRunningStyle

	return &Model{
		tape:    tape,
		index:   make(map[string]int),
		spinner: s,
	}
}

// Files returns the files seen so far in the order they started.
func (m *Model) Files() []FileState {
	return m.files
}

// Init starts reading from the tape.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		WaitForTape(m.tape),
		m.spinner.Tick,
	)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case MsgTapeUpdate:
		for _, v := range msg.Update.Vertexes {
			m.updateOrAddFile(v)
		}
		return m, WaitForTape(m.tape)
	case MsgTapeEnded:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateOrAddFile(v *progrock.Vertex) {
	i, ok := m.index[v.Id]
	if !ok {
		i = len(m.files)
		m.index[v.Id] = i
		m.files = append(m.files, FileState{ID: v.Id, Name: v.Name, Status: StatusRunning})
	}

	switch {
	case v.Completed == nil:
		return
	case v.Error != nil:
		m.files[i].Status = StatusError
		m.files[i].Err = *v.Error
	case v.Cached:
		m.files[i].Status = StatusCached
	default:
		m.files[i].Status = StatusDone
	}
}

// View renders the file list, tailing it to the terminal height.
func (m *Model) View() string {
	var s strings.Builder

	var done, cached, failed int
	for _, f := range m.files {
		switch f.Status {
		case StatusDone:
			done++
		case StatusCached:
			cached++
		case StatusError:
			failed++
		case StatusRunning:
		}
	}

	// One line is reserved for the summary.
	start := 0
	if m.height > 1 && len(m.files) > m.height-1 {
		start = len(m.files) - (m.height - 1)
	}

	for _, f := range m.files[start:] {
		var icon string
		var style lipgloss.Style
		switch f.Status {
		case StatusDone:
			icon, style = "✓", fileDoneStyle
		case StatusCached:
			icon, style = "⚡", fileCachedStyle
		case StatusError:
			icon, style = "✗", fileErrorStyle
		default:
			icon, style = m.spinner.View(), fileRunningStyle
		}

		line := fmt.Sprintf("%s %s", style.Render(icon), f.Name)
		if f.Err != "" {
			line += " " + fileErrorStyle.Render(f.Err)
		}
		s.WriteString(line + "\n")
	}

	s.WriteString(summaryStyle.Render(fmt.Sprintf(
		"%d files: %d read, %d cached, %d failed", len(m.files), done, cached, failed)) + "\n")
	return s.String()
}
