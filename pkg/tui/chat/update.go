package chat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/banterhq/banter/pkg/api"
	"github.com/banterhq/banter/pkg/chat"
	"github.com/banterhq/banter/pkg/controllers"
	"github.com/banterhq/banter/pkg/stream"
	"github.com/banterhq/banter/pkg/tui/chat/status"
)

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleWindowResize(msg.Width, msg.Height)
		m.statusBar, _ = m.statusBar.Update(msg)

	case tea.KeyMsg:
		return handleKeyMsg(m, msg)

	case errMsg:
		return m.flash(describeFailure(msg), true)

	case hydratedMsg:
		if msg.err != nil {
			m.notice(chat.NewErrorMessage("Could not load history: " + describeFailure(msg.err)))
		} else {
			m.updateViewportContent()
		}
		return m, m.recountTokens()

	case streamOpenedMsg:
		m.updates = msg.updates
		var statusCmd tea.Cmd
		m.statusBar, statusCmd = m.statusBar.Update(status.SetLabelMsg{Label: "streaming"})
		return m, tea.Batch(statusCmd, waitForUpdate(m.updates))

	case streamUpdateMsg:
		return m.handleStreamUpdate(msg)

	case mathReadyMsg:
		// Typeset results only ever land in prose that is already on
		// screen, so drop every cached render and repaint.
		m.cache = make(map[string]renderedNode)
		m.updateViewportContent()
		return m, waitForMath(m.renders.Math.Updates())

	case clearFlashMsg:
		m.statusBar, _ = m.statusBar.Update(status.ClearFlashMsg{})
		return m, nil

	case filesListedMsg:
		if msg.err != nil {
			m.notice(chat.NewErrorMessage("Could not list files: " + describeFailure(msg.err)))
		} else if len(msg.files) == 0 {
			m.notice(chat.NewSystemMessage("The server has no files to attach."))
		} else {
			m.notice(chat.NewSystemMessage("Server files: " + strings.Join(msg.files, ", ") + ". Attach one with /attach <name>."))
		}
		return m, nil

	case attachCheckedMsg:
		switch {
		case msg.err != nil:
			m.notice(chat.NewErrorMessage("Could not check files: " + describeFailure(msg.err)))
		case !msg.found:
			m.notice(chat.NewErrorMessage("No such file on the server: " + msg.name))
		default:
			m.attached = append(m.attached, msg.name)
			m.statusBar, _ = m.statusBar.Update(status.SetAttachmentsMsg{Names: m.attached})
			m.notice(chat.NewSystemMessage("Attached " + msg.name + ". It goes out with your next prompt."))
		}
		return m, nil

	case clearedMsg:
		if msg.err != nil {
			m.notice(chat.NewErrorMessage("Could not clear the conversation: " + describeFailure(msg.err)))
			return m, nil
		}
		m.cache = make(map[string]renderedNode)
		m.attached = nil
		m.statusBar, _ = m.statusBar.Update(status.SetAttachmentsMsg{})
		m.notice(chat.NewSystemMessage("Conversation cleared."))
		return m, m.recountTokens()

	case spinner.TickMsg:
		if m.renderDirty && m.limiter.Allow() {
			m.updateViewportContent()
		}
		var statusCmd tea.Cmd
		m.statusBar, statusCmd = m.statusBar.Update(msg)
		return m, statusCmd

	default:
		var statusCmd tea.Cmd
		m.statusBar, statusCmd = m.statusBar.Update(msg)
		cmds = append(cmds, statusCmd)

		var tiCmd tea.Cmd
		m.textarea, tiCmd = m.textarea.Update(msg)
		cmds = append(cmds, tiCmd)

		var vpCmd tea.Cmd
		m.viewport, vpCmd = m.viewport.Update(msg)
		cmds = append(cmds, vpCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m chatModel) handleStreamUpdate(msg streamUpdateMsg) (tea.Model, tea.Cmd) {
	if !msg.open {
		m.updates = nil
		m.updateViewportContent()
		var statusCmd tea.Cmd
		m.statusBar, statusCmd = m.statusBar.Update(status.StopMsg{})
		return m, tea.Batch(statusCmd, m.recountTokens())
	}

	if msg.update.Err != nil {
		m.notice(chat.NewErrorMessage(describeFailure(msg.update.Err)))
		return m, waitForUpdate(m.updates)
	}

	if m.limiter.Allow() {
		m.updateViewportContent()
	} else {
		m.renderDirty = true
	}
	return m, waitForUpdate(m.updates)
}

// notice appends a locally generated message to the conversation and
// repaints.
func (m *chatModel) notice(msg chat.Message) {
	m.session.Store().Apply(msg)
	m.updateViewportContent()
}

// clearLocal wipes the screen-side conversation only. The server keeps
// its history; /new drops that too.
func (m *chatModel) clearLocal() {
	m.session.Store().Clear()
	m.cache = make(map[string]renderedNode)
	m.attached = nil
	m.statusBar, _ = m.statusBar.Update(status.SetAttachmentsMsg{})
	m.notice(chat.NewSystemMessage("Conversation cleared locally. /new also clears the server."))
}

// recountTokens refreshes the status bar's conversation total.
func (m chatModel) recountTokens() tea.Cmd {
	messages := m.session.Store().Messages()
	total := 0
	if len(messages) > 0 {
		total = m.counter.CountMessages(messages)
	}
	return func() tea.Msg {
		return status.SetTokensMsg{Total: total}
	}
}

// describeFailure turns wire errors into sentences fit for the screen.
func describeFailure(err error) string {
	var statusErr *api.StatusError
	switch {
	case errors.As(err, &statusErr):
		return fmt.Sprintf("The server rejected the request (%d): %s", statusErr.StatusCode, statusErr.Body)
	case errors.Is(err, stream.ErrMalformedLine):
		return fmt.Sprintf("The response stream was corrupted: %v", err)
	case errors.Is(err, controllers.ErrBusy):
		return "A submission is already in flight."
	default:
		return fmt.Sprintf("Could not reach the server: %v", err)
	}
}
