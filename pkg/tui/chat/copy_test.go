package chat

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banterhq/banter/pkg/api"
	chatstore "github.com/banterhq/banter/pkg/chat"
	"github.com/banterhq/banter/pkg/controllers"
	"github.com/banterhq/banter/pkg/render"
)

func newTestModel(t *testing.T) chatModel {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)

	session := controllers.NewSubmission(api.NewClient("http://127.0.0.1:1"), chatstore.NewStore())
	renders := &render.Context{
		Markdown:       render.NewMarkdownRenderer("notty"),
		Highlight:      render.NewHighlighter("monokai"),
		Diagrams:       render.EdgeListRenderer{},
		Math:           render.NewMathCache(render.UnicodeTypesetter{}),
		EnableMath:     true,
		EnableDiagrams: true,
	}

	m := NewChatModel(session, renders, nil)
	m.handleWindowResize(100, 30)
	m.statusBar, _ = m.statusBar.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

// captureClipboard swaps the clipboard writer for the duration of a
// test and records what was copied.
func captureClipboard(t *testing.T) *string {
	t.Helper()
	var captured string
	previous := writeClipboard
	writeClipboard = func(text string) error {
		captured = text
		return nil
	}
	t.Cleanup(func() { writeClipboard = previous })
	return &captured
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestCopySingleBlock(t *testing.T) {
	m := newTestModel(t)
	captured := captureClipboard(t)
	source := "fmt.Println(\"<all three & friends>\")"
	m.session.Store().Apply(chatstore.Message{
		Role: chatstore.RoleModel, Content: "try:\n```go\n" + source + "\n```", Timestamp: "t1",
	})
	m.updateViewportContent()
	require.Len(t, m.bindings, 1)

	updated, _ := handleKeyMsg(m, tea.KeyMsg{Type: tea.KeyCtrlY})

	got := updated.(chatModel)
	assert.Equal(t, source, *captured, "copies the wire text exactly")
	assert.False(t, got.copyPick)
	assert.Contains(t, got.statusBar.View(), fmt.Sprintf("Copied %d characters", len(source)))
}

func TestCopyWithSeveralBlocksAsksForPick(t *testing.T) {
	m := newTestModel(t)
	captured := captureClipboard(t)
	m.session.Store().Apply(chatstore.Message{
		Role: chatstore.RoleModel, Content: "```go\nfirst := 1\n```\n```go\nsecond := 2\n```", Timestamp: "t1",
	})
	m.updateViewportContent()
	require.Len(t, m.bindings, 2)

	updated, _ := handleKeyMsg(m, tea.KeyMsg{Type: tea.KeyCtrlY})
	got := updated.(chatModel)
	require.True(t, got.copyPick)
	assert.Empty(t, *captured)

	updated, _ = handleKeyMsg(got, keyRune('2'))
	got = updated.(chatModel)
	assert.False(t, got.copyPick)
	assert.Equal(t, "second := 2", *captured)
}

func TestCopyPickCancelsOnAnyOtherKey(t *testing.T) {
	m := newTestModel(t)
	captured := captureClipboard(t)
	m.session.Store().Apply(chatstore.Message{
		Role: chatstore.RoleModel, Content: "```\na\n```\n```\nb\n```", Timestamp: "t1",
	})
	m.updateViewportContent()

	updated, _ := handleKeyMsg(m, tea.KeyMsg{Type: tea.KeyCtrlY})
	updated, _ = handleKeyMsg(updated.(chatModel), keyRune('x'))

	got := updated.(chatModel)
	assert.False(t, got.copyPick)
	assert.Empty(t, *captured)
	assert.Contains(t, got.statusBar.View(), "cancelled")
}

func TestCopyOutOfRangePickCancels(t *testing.T) {
	m := newTestModel(t)
	captured := captureClipboard(t)
	m.session.Store().Apply(chatstore.Message{
		Role: chatstore.RoleModel, Content: "```\na\n```\n```\nb\n```", Timestamp: "t1",
	})
	m.updateViewportContent()

	updated, _ := handleKeyMsg(m, tea.KeyMsg{Type: tea.KeyCtrlY})
	updated, _ = handleKeyMsg(updated.(chatModel), keyRune('9'))

	assert.Empty(t, *captured)
}

func TestCopyWithNothingToCopy(t *testing.T) {
	m := newTestModel(t)
	captured := captureClipboard(t)
	m.session.Store().Apply(chatstore.Message{
		Role: chatstore.RoleModel, Content: "no fences here", Timestamp: "t1",
	})
	m.updateViewportContent()

	updated, _ := handleKeyMsg(m, tea.KeyMsg{Type: tea.KeyCtrlY})

	got := updated.(chatModel)
	assert.Empty(t, *captured)
	assert.False(t, got.copyPick)
	assert.Contains(t, got.statusBar.View(), "Nothing to copy")
}

func TestBindingsRebuiltWithoutDuplication(t *testing.T) {
	m := newTestModel(t)
	m.session.Store().Apply(chatstore.Message{
		Role: chatstore.RoleModel, Content: "```go\nx := 1\n```", Timestamp: "t1",
	})

	m.updateViewportContent()
	m.updateViewportContent()
	m.updateViewportContent()

	require.Len(t, m.bindings, 1, "repeated renders must not stack bindings")
}

func TestBindingsFollowDisplayOrder(t *testing.T) {
	m := newTestModel(t)
	store := m.session.Store()
	store.Apply(chatstore.Message{Role: chatstore.RoleModel, Content: "```go\nearlier := true\n```", Timestamp: "t1"})
	store.Apply(chatstore.Message{Role: chatstore.RoleModel, Content: "```go\nlater := true\n```", Timestamp: "t2"})

	m.updateViewportContent()

	require.Len(t, m.bindings, 2)
	assert.Equal(t, "t1", m.bindings[0].messageID)
	assert.Equal(t, "earlier := true", m.bindings[0].block.Source)
	assert.Equal(t, "t2", m.bindings[1].messageID)
}

func TestBindingsTrackContentGrowth(t *testing.T) {
	m := newTestModel(t)
	store := m.session.Store()

	store.Apply(chatstore.Message{Role: chatstore.RoleModel, Content: "```go\nx :=", Timestamp: "t1"})
	m.updateViewportContent()
	require.Len(t, m.bindings, 1)
	assert.Equal(t, "x :=", m.bindings[0].block.Source)

	store.Apply(chatstore.Message{Role: chatstore.RoleModel, Content: "```go\nx := 42\n```", Timestamp: "t1"})
	m.updateViewportContent()
	require.Len(t, m.bindings, 1)
	assert.Equal(t, "x := 42", m.bindings[0].block.Source, "the binding follows the latest content")
}
