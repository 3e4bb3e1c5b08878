package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chatstore "github.com/banterhq/banter/pkg/chat"
)

func TestNoticesRenderVerbatim(t *testing.T) {
	m := newTestModel(t)
	m.session.Store().Apply(chatstore.NewSystemMessage("Attached my_file_name.txt. It goes out with your next prompt."))

	text, _ := m.renderNodes()

	assert.Contains(t, text, "my_file_name.txt", "markdown must not eat the underscores")
}

func TestErrorNoticesAddNoCopyTargets(t *testing.T) {
	m := newTestModel(t)
	m.session.Store().Apply(chatstore.NewErrorMessage("The server rejected the request (500): ```stack trace```"))

	m.updateViewportContent()

	assert.Empty(t, m.bindings, "error text is not copyable block source")
}

func TestRenderCacheFollowsWidth(t *testing.T) {
	m := newTestModel(t)
	m.session.Store().Apply(chatstore.Message{
		Role: chatstore.RoleModel, Content: "plain prose", Timestamp: "t1",
	})
	m.updateViewportContent()

	require.Contains(t, m.cache, "t1")
	firstWidth := m.cache["t1"].width

	m.handleWindowResize(48, 30)

	require.Contains(t, m.cache, "t1")
	assert.NotEqual(t, firstWidth, m.cache["t1"].width)
	assert.Equal(t, m.viewport.Width, m.cache["t1"].width)
}
