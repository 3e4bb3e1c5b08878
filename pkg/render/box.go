package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const minBoxWidth = 24

var (
	boxBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	boxLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	boxHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

// box frames pre-rendered lines with a labeled top border and an
// optional hint on the right. The frame is drawn by hand: body lines
// may carry ANSI color sequences, and a width-constrained style render
// would reflow them mid-escape. Body lines get a left border only, so
// their own styling never has to account for the frame.
func box(lines []string, label, hint string, width int) string {
	if width < minBoxWidth {
		width = minBoxWidth
	}

	labelText := ""
	if label != "" {
		labelText = " " + label + " "
	}
	hintText := ""
	if hint != "" {
		hintText = " " + hint + " "
	}

	// ╭─ label ───── hint ─╮ with the dashes absorbing leftover width.
	used := 2 + 1 + lipgloss.Width(labelText) + lipgloss.Width(hintText) + 1
	fill := width - used
	if fill < 1 {
		fill = 1
	}

	var b strings.Builder
	b.WriteString(boxBorderStyle.Render("╭─"))
	b.WriteString(boxLabelStyle.Render(labelText))
	b.WriteString(boxBorderStyle.Render(strings.Repeat("─", fill)))
	b.WriteString(boxHintStyle.Render(hintText))
	b.WriteString(boxBorderStyle.Render("─╮"))
	b.WriteString("\n")

	side := boxBorderStyle.Render("│") + " "
	for _, line := range lines {
		b.WriteString(side)
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(boxBorderStyle.Render("╰" + strings.Repeat("─", width-2) + "╯"))
	return b.String()
}
