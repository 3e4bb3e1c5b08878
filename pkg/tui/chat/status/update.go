package status

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m StatusModel) Update(msg tea.Msg) (StatusModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StartMsg:
		m.isActive = true
		m.startTime = time.Now()
		m.timer = 0
		m.label = msg.Label
		return m, tea.Batch(
			m.spinner.Tick,
			tickEvery(),
		)

	case SetLabelMsg:
		m.label = msg.Label
		return m, nil

	case StopMsg:
		m.isActive = false
		m.label = ""
		m.timer = 0
		return m, nil

	case FlashMsg:
		m.flash = msg.Text
		m.flashErr = msg.IsError
		return m, nil

	case ClearFlashMsg:
		m.flash = ""
		m.flashErr = false
		return m, nil

	case SetTokensMsg:
		m.tokens = msg.Total
		return m, nil

	case SetAttachmentsMsg:
		m.attached = msg.Names
		return m, nil

	case TickMsg:
		if m.isActive {
			m.timer = time.Since(m.startTime)
			return m, tickEvery()
		}
		return m, nil
	}

	return m, nil
}

// tickEvery returns a command that sends a tick message every second
func tickEvery() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
