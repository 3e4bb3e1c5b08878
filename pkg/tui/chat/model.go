package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/time/rate"

	"github.com/banterhq/banter/pkg/controllers"
	"github.com/banterhq/banter/pkg/render"
	"github.com/banterhq/banter/pkg/tokens"
	"github.com/banterhq/banter/pkg/tui/chat/status"
	"github.com/banterhq/banter/pkg/tui/theme"
)

// binding ties one copy target to the block source it copies. The set
// is rebuilt from scratch on every render pass, in display order, so a
// re-render never duplicates or reorders targets.
type binding struct {
	messageID string
	block     render.CodeBlock
}

// renderedNode caches one message's pipeline output. It is valid while
// the message content and the wrap width both hold still.
type renderedNode struct {
	content string
	width   int
	text    string
	blocks  []render.CodeBlock
}

type chatModel struct {
	viewport  viewport.Model
	textarea  textarea.Model
	statusBar status.StatusModel
	styles    *theme.Styles

	session *controllers.Submission
	renders *render.Context
	counter *tokens.Counter

	// updates is the open stream, nil between submissions.
	updates <-chan controllers.Update

	cache    map[string]renderedNode
	bindings []binding
	copyPick bool
	attached []string

	// limiter paces re-renders while retransmissions arrive faster
	// than the terminal is worth repainting.
	limiter     *rate.Limiter
	renderDirty bool

	numEscPress int
	width       int
	height      int
}

func NewChatModel(session *controllers.Submission, renders *render.Context, counter *tokens.Counter) chatModel {
	ta := textarea.New()
	ta.Focus()
	ta.Placeholder = "Type a message..."
	ta.CharLimit = 0
	ta.SetHeight(1)
	ta.ShowLineNumbers = false
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	// Plain enter submits before the textarea sees it; the newline
	// binding must answer to alt+enter itself.
	ta.KeyMap.InsertNewline.SetKeys("enter", "alt+enter")
	ta.KeyMap.InsertNewline.SetEnabled(true)

	vp := viewport.New(80, 20)

	return chatModel{
		viewport:  vp,
		textarea:  ta,
		statusBar: status.NewStatusModel(),
		styles:    theme.DefaultStyles(),
		session:   session,
		renders:   renders,
		counter:   counter,
		cache:     make(map[string]renderedNode),
		limiter:   rate.NewLimiter(rate.Every(80*time.Millisecond), 1),
	}
}
