//nolint:testpackage // Test needs access to unexported fields
package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestView_RendersOneLinePerVertex(t *testing.T) {
	m := NewModel(&stubTapeSource{})
	m.vertices = []VertexState{
		{ID: "1", Name: "resolve Django", Status: statusCompleted},
		{ID: "2", Name: "resolve Pygments", Status: statusCached},
		{ID: "3", Name: "resolve micawber", Status: statusFailed},
	}

	view := m.View()
	assert.Contains(t, view, "resolve Django")
	assert.Contains(t, view, "resolve Pygments")
	assert.Contains(t, view, "resolve micawber")
	assert.Equal(t, 3, strings.Count(view, "\n"))
}

func TestView_ScrollsToNewestWhenOverflowing(t *testing.T) {
	m := NewModel(&stubTapeSource{})
	m.height = 2
	m.vertices = []VertexState{
		{ID: "1", Name: "resolve Django", Status: statusCompleted},
		{ID: "2", Name: "resolve Pygments", Status: statusCompleted},
		{ID: "3", Name: "resolve micawber", Status: statusRunning},
	}

	view := m.View()
	assert.NotContains(t, view, "resolve Django")
	assert.Contains(t, view, "resolve Pygments")
	assert.Contains(t, view, "resolve micawber")
}

func TestView_EmptyModel(t *testing.T) {
	m := NewModel(&stubTapeSource{})
	assert.Empty(t, m.View())
}
