package chat

import (
	"strings"

	"github.com/google/uuid"
)

// Message is one record of the conversation feed. Role and Content come
// from the server verbatim. Timestamp is the message identity: an opaque
// unique string, never parsed as time.
type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// Wire roles. The server names its assistant side "model"; "assistant"
// is accepted as an alias. system and error messages are client-side.
const (
	RoleUser      = "user"
	RoleModel     = "model"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
	RoleError     = "error"
)

// NewLocalID returns an identity for messages created on the client.
// Server messages carry their own timestamps.
func NewLocalID() string {
	return "local-" + uuid.NewString()
}

func NewUserMessage(content string) Message {
	return Message{
		Role:      RoleUser,
		Content:   strings.TrimSpace(content),
		Timestamp: NewLocalID(),
	}
}

func NewSystemMessage(content string) Message {
	return Message{
		Role:      RoleSystem,
		Content:   content,
		Timestamp: NewLocalID(),
	}
}

func NewErrorMessage(content string) Message {
	return Message{
		Role:      RoleError,
		Content:   content,
		Timestamp: NewLocalID(),
	}
}

func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

// IsAssistant reports whether the message came from the model side of
// the conversation, under either wire name.
func (m Message) IsAssistant() bool {
	return m.Role == RoleModel || m.Role == RoleAssistant
}

func (m Message) IsSystem() bool {
	return m.Role == RoleSystem
}

func (m Message) IsError() bool {
	return m.Role == RoleError
}

func (m Message) IsEmpty() bool {
	return strings.TrimSpace(m.Content) == ""
}

// WithContent returns a copy carrying new content under the same identity.
func (m Message) WithContent(content string) Message {
	m.Content = content
	return m
}
