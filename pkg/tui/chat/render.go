package chat

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/banterhq/banter/pkg/chat"
	"github.com/banterhq/banter/pkg/render"
)

// updateViewportContent repaints the conversation. The reader's scroll
// position survives unless they were already at the bottom, in which
// case the view follows the newest content.
func (m *chatModel) updateViewportContent() {
	wasAtBottom := m.viewport.AtBottom()

	text, bindings := m.renderNodes()
	m.viewport.SetContent(text)
	m.bindings = bindings

	if wasAtBottom {
		m.viewport.GotoBottom()
	}
	m.renderDirty = false
}

func (m *chatModel) renderNodes() (string, []binding) {
	messages := m.session.Store().Messages()
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}

	var rendered []string
	var bindings []binding

	for _, msg := range messages {
		node, ok := m.cache[msg.Timestamp]
		if !ok || node.content != msg.Content || node.width != width {
			node = m.renderNode(msg, width)
			m.cache[msg.Timestamp] = node
		}

		for _, block := range node.blocks {
			bindings = append(bindings, binding{messageID: msg.Timestamp, block: block})
		}

		rendered = append(rendered, m.renderHeader(msg)+"\n"+node.text)
	}

	return strings.Join(rendered, "\n\n"), bindings
}

// renderNode runs one message through the pipeline. Local notices skip
// it: they are plain sentences, and markdown styling would mangle
// things like file names with underscores.
func (m *chatModel) renderNode(msg chat.Message, width int) renderedNode {
	if msg.IsSystem() || msg.IsError() {
		style := m.styles.SystemMessage
		if msg.IsError() {
			style = m.styles.ErrorMessage
		}
		return renderedNode{
			content: msg.Content,
			width:   width,
			text:    style.Render(wordwrap.String(msg.Content, width)),
		}
	}

	result := render.Render(m.renders, msg.Content, width)
	return renderedNode{
		content: msg.Content,
		width:   width,
		text:    result.Text,
		blocks:  result.Blocks,
	}
}

func (m *chatModel) renderHeader(msg chat.Message) string {
	switch {
	case msg.IsUser():
		return m.styles.UserLabel.Render("you")
	case msg.IsError():
		return m.styles.ErrorLabel.Render("error")
	case msg.IsSystem():
		return m.styles.SystemLabel.Render("banter")
	default:
		return m.styles.ModelLabel.Render("model")
	}
}
