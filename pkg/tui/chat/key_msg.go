package chat

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/banterhq/banter/pkg/tui/chat/status"
)

func handleKeyMsg(m chatModel, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Pick mode owns the next key outright.
	if m.copyPick {
		return m.handleCopyPick(msg)
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyCtrlY:
		return m.startCopy()

	case tea.KeyEscape:
		m.numEscPress++
		if m.numEscPress == 2 {
			m.resetInput()
			m.numEscPress = 0
		}
		return m, nil

	case tea.KeyEnter:
		if msg.Alt {
			// Alt+Enter adds a newline
			break
		}
		return m.handleSubmit()
	}
	m.numEscPress = 0

	// Let the textarea handle the key.
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)

	newHeight := m.calculateTextAreaHeight()
	if m.textarea.Height() != newHeight {
		m.textarea.SetHeight(newHeight)
		m.updateViewportHeight()
	}

	return m, cmd
}

func (m chatModel) handleSubmit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.textarea.Value())
	if text == "" {
		return m, nil
	}
	if strings.HasPrefix(text, "/") {
		return m.handleSlashCommand(text)
	}
	if m.session.Busy() {
		return m.flash("Still answering. Wait for the stream to finish.", true)
	}

	files := m.attached
	m.attached = nil
	m.resetInput()

	m.statusBar, _ = m.statusBar.Update(status.SetAttachmentsMsg{})
	var statusCmd tea.Cmd
	m.statusBar, statusCmd = m.statusBar.Update(status.StartMsg{Label: "sending"})
	return m, tea.Batch(statusCmd, m.submitCmd(text, files))
}

func (m chatModel) handleSlashCommand(text string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(text)
	switch fields[0] {
	case "/new":
		m.resetInput()
		return m, m.clearCmd()

	case "/clear":
		m.resetInput()
		m.clearLocal()
		return m, m.recountTokens()

	case "/files":
		m.resetInput()
		return m, m.filesCmd()

	case "/attach":
		if len(fields) != 2 {
			return m.flash("usage: /attach <file>", true)
		}
		m.resetInput()
		return m, m.attachCmd(fields[1])

	default:
		return m.flash("Unknown command: "+fields[0], true)
	}
}

// flash shows a transient status notice and schedules its removal.
func (m chatModel) flash(text string, isErr bool) (chatModel, tea.Cmd) {
	m.statusBar, _ = m.statusBar.Update(status.FlashMsg{Text: text, IsError: isErr})
	return m, clearFlashAfter()
}

func (m *chatModel) resetInput() {
	m.textarea.Reset()
	m.textarea.SetHeight(1)
	m.updateViewportHeight()
}
