package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Base16 color palette with orange, brown, yellow, and pink tones
// Based on Autumn theme with warm earth tones
var (
	// Base colors (backgrounds and text)
	ColorBase00 = lipgloss.Color("#1a1816") // Dark background
	ColorBase01 = lipgloss.Color("#282420") // Lighter background
	ColorBase02 = lipgloss.Color("#36302a") // Selection background
	ColorBase03 = lipgloss.Color("#5c5044") // Comments, invisibles
	ColorBase04 = lipgloss.Color("#83715f") // Dark foreground
	ColorBase05 = lipgloss.Color("#ab937b") // Default foreground
	ColorBase06 = lipgloss.Color("#d3b597") // Light foreground

	// Accent colors
	ColorRed    = lipgloss.Color("#d95f5f")
	ColorOrange = lipgloss.Color("#eb8755")
	ColorYellow = lipgloss.Color("#f5b761")
	ColorGreen  = lipgloss.Color("#93b56b")
	ColorCyan   = lipgloss.Color("#61afaf")
	ColorBlue   = lipgloss.Color("#6b93b5")
	ColorPurple = lipgloss.Color("#976bb5")
	ColorViolet = lipgloss.Color("#6c71c4")

	ColorError = ColorRed
	ColorMuted = ColorBase03
)

// Styles defines the Lipgloss styles for the TUI components
type Styles struct {
	// Speaker labels above each message
	UserLabel   lipgloss.Style
	ModelLabel  lipgloss.Style
	SystemLabel lipgloss.Style
	ErrorLabel  lipgloss.Style

	// Local notice bodies; streamed content styles itself
	SystemMessage lipgloss.Style
	ErrorMessage  lipgloss.Style

	// Status bar
	StatusBar   lipgloss.Style
	StatusText  lipgloss.Style
	StatusDim   lipgloss.Style
	StatusFlash lipgloss.Style
	StatusError lipgloss.Style
}

// DefaultStyles returns the default Lipgloss styles
func DefaultStyles() *Styles {
	return &Styles{
		UserLabel: lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true),

		ModelLabel: lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true),

		SystemLabel: lipgloss.NewStyle().
			Foreground(ColorPurple).
			Bold(true),

		ErrorLabel: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),

		SystemMessage: lipgloss.NewStyle().
			Foreground(ColorBase04),

		ErrorMessage: lipgloss.NewStyle().
			Foreground(ColorError),

		StatusBar: lipgloss.NewStyle().
			Background(ColorBase01).
			Padding(0, 1),

		StatusText: lipgloss.NewStyle().
			Foreground(ColorBase05),

		StatusDim: lipgloss.NewStyle().
			Foreground(ColorBase04),

		StatusFlash: lipgloss.NewStyle().
			Foreground(ColorYellow),

		StatusError: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),
	}
}
