// Package tokens estimates how much of a model's context window a
// conversation occupies. Counts feed the status bar; they are good
// approximations, not billing numbers.
package tokens

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"github.com/banterhq/banter/pkg/chat"
)

// Counter counts tokens using a tiktoken encoding. A nil Counter still
// counts, falling back to rough estimation, so callers never branch on
// whether encoding data loaded.
type Counter struct {
	encoder *tiktoken.Tiktoken
	mu      sync.RWMutex
}

// NewCounter loads the named encoding, falling back to cl100k_base
// which fits most modern models.
func NewCounter(encoding string) (*Counter, error) {
	if encoding == "" {
		encoding = "cl100k_base"
	}

	encoder, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		encoder, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, err
		}
	}

	return &Counter{encoder: encoder}, nil
}

// Count returns the token count for text.
func (c *Counter) Count(text string) int {
	if c == nil {
		return estimateTokens(text)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.encoder == nil {
		return estimateTokens(text)
	}
	return len(c.encoder.Encode(text, nil, nil))
}

// CountMessages counts tokens for a whole conversation, including the
// per-message boundary overhead chat models add.
func (c *Counter) CountMessages(messages []chat.Message) int {
	total := 0
	for _, msg := range messages {
		total += c.Count(msg.Role)
		total += c.Count(msg.Content)
		total += 4 // message boundary markers
	}
	total += 3 // reply priming
	return total
}

// estimateTokens approximates when no encoder is available: one token
// per word or per four characters, whichever is higher.
func estimateTokens(text string) int {
	wordEstimate := len(strings.Fields(text))
	charEstimate := len(text) / 4

	if wordEstimate > charEstimate {
		return wordEstimate
	}
	return charEstimate
}
