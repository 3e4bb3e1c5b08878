package render

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"github.com/banterhq/banter/pkg/logger"
)

// MarkdownRenderer turns prose into styled terminal text with glamour.
// Renderers are cached per wrap width because glamour fixes word wrap
// at construction time and the viewport resizes.
type MarkdownRenderer struct {
	stylePath string

	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
}

// NewMarkdownRenderer resolves the style name once. "auto" picks dark
// or light from the terminal background, which only works before the
// alternate screen takes over, so call this during startup.
func NewMarkdownRenderer(style string) *MarkdownRenderer {
	if style == "" || style == "auto" {
		if termenv.HasDarkBackground() {
			style = "dark"
		} else {
			style = "light"
		}
	}
	return &MarkdownRenderer{
		stylePath: style,
		renderers: make(map[int]*glamour.TermRenderer),
	}
}

// Render returns content styled for the given width. Markdown that
// glamour cannot process displays as plain wrapped text rather than
// disappearing.
func (m *MarkdownRenderer) Render(content string, width int) string {
	if width < 1 {
		width = 80
	}

	// Glamour renders literal tabs as full tab stops, which wrecks
	// wrapping at narrow widths.
	content = strings.ReplaceAll(content, "\t", "  ")

	renderer, err := m.rendererFor(width)
	if err != nil {
		logger.Debug("Markdown renderer unavailable: %v", err)
		return wordwrap.String(content, width)
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		logger.Debug("Markdown render failed: %v", err)
		return wordwrap.String(content, width)
	}
	return strings.Trim(rendered, "\n")
}

func (m *MarkdownRenderer) rendererFor(width int) (*glamour.TermRenderer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r, ok := m.renderers[width]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(m.stylePath),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		return nil, err
	}
	m.renderers[width] = r
	return r, nil
}
