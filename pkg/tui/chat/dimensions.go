package chat

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// calculateTextAreaHeight determines the visual height of the textarea
// based on its content and wrapping
func (m *chatModel) calculateTextAreaHeight() int {
	content := m.textarea.Value()
	if content == "" {
		return 1
	}

	lines := strings.Split(content, "\n")
	totalVisualLines := 0

	textWidth := m.textarea.Width()
	if textWidth <= 0 {
		textWidth = m.width - 4
		if textWidth <= 0 {
			textWidth = 80 // fallback
		}
	}

	for _, line := range lines {
		if line == "" {
			totalVisualLines++
			continue
		}
		// Display width via runewidth so wide runes wrap where the
		// terminal actually wraps them.
		lineWidth := runewidth.StringWidth(line)
		visualLines := (lineWidth + textWidth - 1) / textWidth
		if visualLines < 1 {
			visualLines = 1
		}
		totalVisualLines += visualLines
	}

	maxHeight := 10
	if totalVisualLines > maxHeight {
		return maxHeight
	}
	if totalVisualLines < 1 {
		return 1
	}

	return totalVisualLines
}

// updateViewportHeight adjusts the viewport height to what the textarea
// and status bar leave over.
func (m *chatModel) updateViewportHeight() {
	if m.height > 0 {
		m.viewport.Height = m.height - m.calculateTextAreaHeight() - 2
	}
}

// handleWindowResize updates all dimensions when window size changes
func (m *chatModel) handleWindowResize(width, height int) {
	m.width = width
	m.height = height

	m.textarea.SetWidth(width - 4)

	textAreaHeight := m.calculateTextAreaHeight()
	m.textarea.SetHeight(textAreaHeight)

	m.viewport.Width = width
	m.viewport.Height = height - textAreaHeight - 2

	// Cached renders are wrap-width specific; repaint at the new width.
	if m.session.Store().Len() > 0 {
		m.updateViewportContent()
	}
}
