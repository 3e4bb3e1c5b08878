package chat

import "sync"

// ApplyResult describes what Apply did with a message.
type ApplyResult int

const (
	ApplyCreated ApplyResult = iota
	ApplyUpdated
	ApplyUnchanged
)

// Store reconciles the decoded feed onto an ordered node list keyed by
// message identity. Nodes append in first-seen order; a re-seen identity
// replaces that node's content in place and never moves it. The feed may
// retransmit a message many times with growing content, so replacement
// is always a full content swap, never a diff.
type Store struct {
	mu    sync.RWMutex
	nodes []Message
	index map[string]int
}

func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Apply upserts one message by identity.
func (s *Store) Apply(msg Message) ApplyResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[msg.Timestamp]; ok {
		if s.nodes[i].Content == msg.Content {
			return ApplyUnchanged
		}
		// Role and position stay as first seen; only content moves.
		s.nodes[i].Content = msg.Content
		return ApplyUpdated
	}

	s.index[msg.Timestamp] = len(s.nodes)
	s.nodes = append(s.nodes, msg)
	return ApplyCreated
}

// ApplyAll applies records in order and reports how many nodes changed.
func (s *Store) ApplyAll(msgs []Message) (changed int) {
	for _, m := range msgs {
		if s.Apply(m) != ApplyUnchanged {
			changed++
		}
	}
	return changed
}

// Messages returns a snapshot of the nodes in display order.
func (s *Store) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Message, len(s.nodes))
	copy(out, s.nodes)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

// Get returns the node for an identity.
func (s *Store) Get(id string) (Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i, ok := s.index[id]; ok {
		return s.nodes[i], true
	}
	return Message{}, false
}

// Last returns the most recent node.
func (s *Store) Last() (Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.nodes) == 0 {
		return Message{}, false
	}
	return s.nodes[len(s.nodes)-1], true
}

// Clear removes all nodes and identity mappings. Server-held history is
// untouched; dropping that is the API client's clear operation.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nodes = nil
	s.index = make(map[string]int)
}
