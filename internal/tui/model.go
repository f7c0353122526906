package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vito/progrock"
)

const (
	statusRunning   = "running"
	statusCompleted = "completed"
	statusCached    = "cached"
	statusFailed    = "failed"
)

// VertexState represents the current state of one package lookup in the TUI.
type VertexState struct {
	ID     string
	Name   string
	Status string
}

type styles struct {
	running   lipgloss.Style
	completed lipgloss.Style
	cached    lipgloss.Style
	failed    lipgloss.Style
}

// Model is the Bubble Tea model for the progress view, managing lookup
// vertices and tape updates.
type Model struct {
	tape     TapeSource
	vertices []VertexState
	width    int
	height   int
	spinner  spinner.Model
	styles   styles
}

// NewModel creates a new progress model with the given tape source.
func NewModel(tape TapeSource) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))

	return &Model{
		tape:    tape,
		spinner: s,
		styles: styles{
			running:   lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")),
			completed: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),  // Green
			cached:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),  // Blue
			failed:    lipgloss.NewStyle().Foreground(lipgloss.Color("160")), // Red
		},
	}
}

// Init initializes the model and starts reading from the tape.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		WaitForTape(m.tape),
		m.spinner.Tick,
	)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case MsgTapeUpdate:
		m.processVertexUpdates(msg.Update)
		return m, WaitForTape(m.tape)
	case MsgTapeEnded:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) processVertexUpdates(update *progrock.StatusUpdate) {
	for _, v := range update.Vertexes {
		m.updateOrAddVertex(v)
	}
}

// updateOrAddVertex updates an existing vertex or adds a new one.
func (m *Model) updateOrAddVertex(v *progrock.Vertex) {
	for i, existing := range m.vertices {
		if existing.ID == v.Id {
			m.vertices[i].Status = vertexStatus(v)
			return
		}
	}
	m.vertices = append(m.vertices, VertexState{
		ID:     v.Id,
		Name:   v.Name,
		Status: vertexStatus(v),
	})
}

func vertexStatus(v *progrock.Vertex) string {
	switch {
	case v.Error != nil:
		return statusFailed
	case v.Cached:
		return statusCached
	case v.Completed != nil:
		return statusCompleted
	}
	return statusRunning
}

// View renders the current state of the model as a string.
func (m *Model) View() string {
	var s strings.Builder

	// Keep the newest lookups visible when they outgrow the window.
	start := 0
	if len(m.vertices) > m.height && m.height > 0 {
		start = len(m.vertices) - m.height
	}

	for i := start; i < len(m.vertices); i++ {
		v := m.vertices[i]

		var icon string
		var style lipgloss.Style
		switch v.Status {
		case statusRunning:
			icon = m.spinner.View()
			style = m.styles.running
		case statusCached:
			icon = "≡"
			style = m.styles.cached
		case statusFailed:
			icon = "✗"
			style = m.styles.failed
		default:
			icon = "✓"
			style = m.styles.completed
		}

		s.WriteString(fmt.Sprintf("%s %s\n", style.Render(icon), v.Name))
	}

	return s.String()
}
