package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpModel_ListsBindings(t *testing.T) {
	out := NewHelpModel().View()

	assert.Contains(t, out, "pgup / ctrl+u")
	assert.Contains(t, out, "copy sequence")
	assert.Contains(t, out, "all/scaffold/staple")
	assert.Contains(t, out, "N marks an unassigned base")
}

func TestHelpModel_Close(t *testing.T) {
	m := NewHelpModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.IsType(t, SwitchToListMsg{}, cmd())
}
