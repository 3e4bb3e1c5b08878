package status

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"
)

const idleHint = "enter send · alt+enter newline · ctrl+y copy · esc esc clear input · ctrl+c quit"

func (m StatusModel) View() string {
	if m.width == 0 {
		return ""
	}

	var components []string

	if m.isActive {
		components = append(components, m.spinner.View())
		if m.label != "" {
			components = append(components, m.styles.StatusText.Render(m.label))
		}
		if m.timer > 0 {
			minutes := int(m.timer.Minutes())
			seconds := int(m.timer.Seconds()) % 60
			components = append(components, m.styles.StatusDim.Render(fmt.Sprintf("%02d:%02d", minutes, seconds)))
		}
	}

	if len(m.attached) > 0 {
		components = append(components, m.styles.StatusText.Render("attach: "+strings.Join(m.attached, ", ")))
	}

	if m.flash != "" {
		style := m.styles.StatusFlash
		if m.flashErr {
			style = m.styles.StatusError
		}
		components = append(components, style.Render(m.flash))
	} else if !m.isActive {
		components = append(components, m.styles.StatusDim.Render(idleHint))
	}

	if m.tokens > 0 {
		components = append(components, m.styles.StatusDim.Render(fmt.Sprintf("%d tokens", m.tokens)))
	}

	separator := m.styles.StatusDim.Render(" | ")
	statusLine := ""
	for i, component := range components {
		if i > 0 {
			statusLine += separator
		}
		statusLine += component
	}

	// The bar is exactly one line; the layout above it depends on that.
	if m.width > 2 {
		statusLine = truncate.StringWithTail(statusLine, uint(m.width-2), "…")
	}
	return m.styles.StatusBar.Width(m.width).Render(statusLine)
}
