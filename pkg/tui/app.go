// Package tui wires the terminal client together and runs it.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/banterhq/banter/pkg/api"
	chatstore "github.com/banterhq/banter/pkg/chat"
	"github.com/banterhq/banter/pkg/config"
	"github.com/banterhq/banter/pkg/controllers"
	"github.com/banterhq/banter/pkg/logger"
	"github.com/banterhq/banter/pkg/render"
	"github.com/banterhq/banter/pkg/tokens"
	"github.com/banterhq/banter/pkg/tui/chat"
)

// StartApp builds the session against the configured server and runs
// the program until the user quits.
func StartApp() error {
	settings := config.Get()

	client := api.NewClientWithTimeout(settings.Server.URL, settings.Server.Timeout)
	session := controllers.NewSubmission(client, chatstore.NewStore())

	// Style detection must happen before the alternate screen opens.
	renders := &render.Context{
		Markdown:       render.NewMarkdownRenderer(settings.Render.MarkdownStyle),
		Highlight:      render.NewHighlighter(settings.Render.CodeStyle),
		Diagrams:       render.EdgeListRenderer{},
		Math:           render.NewMathCache(render.UnicodeTypesetter{}),
		EnableMath:     settings.Render.Math,
		EnableDiagrams: settings.Render.Diagrams,
	}

	counter, err := tokens.NewCounter(settings.Tokens.Encoding)
	if err != nil {
		logger.Warn("Token counter unavailable, falling back to estimates: %v", err)
	}

	model := chat.NewChatModel(session, renders, counter)
	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("Starting session against %s", settings.Server.URL)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
