package status

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/banterhq/banter/pkg/tui/theme"
)

// StatusModel is the one-line bar between the conversation and the
// input: session activity while a stream is open, key hints when idle,
// transient flashes for things like copy confirmations.
type StatusModel struct {
	spinner   spinner.Model
	styles    *theme.Styles
	label     string
	flash     string
	flashErr  bool
	tokens    int
	attached  []string
	timer     time.Duration
	startTime time.Time
	isActive  bool
	width     int
}

// NewStatusModel creates a new status bar model
func NewStatusModel() StatusModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.ColorViolet)

	return StatusModel{
		spinner: s,
		styles:  theme.DefaultStyles(),
	}
}

// Flashing reports whether a transient notice is on screen.
func (m StatusModel) Flashing() bool {
	return m.flash != ""
}
