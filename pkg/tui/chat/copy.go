package chat

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/banterhq/banter/pkg/logger"
)

// writeClipboard is swapped out in tests; the real one talks to the
// system clipboard.
var writeClipboard = clipboard.WriteAll

// startCopy begins the ctrl+y flow: one block copies outright, several
// ask for a pick.
func (m chatModel) startCopy() (tea.Model, tea.Cmd) {
	switch len(m.bindings) {
	case 0:
		return m.flash("Nothing to copy.", true)
	case 1:
		return m.copyBlock(0)
	default:
		m.copyPick = true
		n := len(m.bindings)
		if n > 9 {
			n = 9
		}
		return m.flash(fmt.Sprintf("Copy which block? 1-%d", n), false)
	}
}

func (m chatModel) handleCopyPick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.copyPick = false

	key := msg.String()
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		if i := int(key[0] - '1'); i < len(m.bindings) {
			return m.copyBlock(i)
		}
	}
	return m.flash("Copy cancelled.", false)
}

// copyBlock puts a block's original source on the clipboard, exactly as
// it arrived on the wire.
func (m chatModel) copyBlock(i int) (tea.Model, tea.Cmd) {
	source := m.bindings[i].block.Source
	if err := writeClipboard(source); err != nil {
		logger.Error("Clipboard write failed: %v", err)
		return m.flash("Clipboard unavailable.", true)
	}
	return m.flash(fmt.Sprintf("Copied %d characters", len(source)), false)
}
