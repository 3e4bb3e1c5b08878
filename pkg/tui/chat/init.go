package chat

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

func (m chatModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink, m.hydrateCmd()}
	if m.renders.Math != nil {
		cmds = append(cmds, waitForMath(m.renders.Math.Updates()))
	}
	return tea.Batch(cmds...)
}
