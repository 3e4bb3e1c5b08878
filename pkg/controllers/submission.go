// Package controllers coordinates the chat session against the server:
// history hydration, prompt submission, and the rule that at most one
// stream is open at a time.
package controllers

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/banterhq/banter/pkg/api"
	"github.com/banterhq/banter/pkg/chat"
	"github.com/banterhq/banter/pkg/logger"
	"github.com/banterhq/banter/pkg/stream"
)

// ErrBusy means a submission is already in flight. Callers wait for the
// open stream to finish before submitting again.
var ErrBusy = errors.New("a submission is already in flight")

// State is the submission lifecycle. Idle accepts prompts. Submitting
// covers the POST until the server starts answering, Streaming covers
// the open response body. Errored holds the last failure until the next
// submission clears it.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateStreaming
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateStreaming:
		return "streaming"
	case StateErrored:
		return "error"
	default:
		return "unknown"
	}
}

// Update is one batch of progress from an open stream: how many store
// nodes the batch created or rewrote. A non-nil Err is terminal and the
// channel closes after it.
type Update struct {
	Created int
	Updated int
	Err     error
}

// Submission owns the conversation store and the wire session feeding
// it. All methods are safe for concurrent use.
type Submission struct {
	client *api.Client
	store  *chat.Store

	mu      sync.Mutex
	state   State
	lastErr error
}

func NewSubmission(client *api.Client, store *chat.Store) *Submission {
	return &Submission{
		client: client,
		store:  store,
		state:  StateIdle,
	}
}

// Store exposes the conversation the controller feeds.
func (s *Submission) Store() *chat.Store {
	return s.store
}

// Client exposes the API client for operations outside the submission
// lifecycle, like listing server files.
func (s *Submission) Client() *api.Client {
	return s.client
}

func (s *Submission) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Busy reports whether a submission or stream is currently open.
func (s *Submission) Busy() bool {
	st := s.State()
	return st == StateSubmitting || st == StateStreaming
}

// LastError returns the failure behind an Errored state.
func (s *Submission) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Hydrate replaces the store with the server's full history. It runs
// before input is enabled and never overlaps an open stream.
func (s *Submission) Hydrate(ctx context.Context) error {
	if err := s.begin(StateSubmitting); err != nil {
		return err
	}

	body, err := s.client.History(ctx)
	if err != nil {
		s.finish(err)
		return err
	}
	defer body.Close()

	records, err := decodeAll(body)
	if err != nil {
		s.finish(err)
		return err
	}

	s.store.Clear()
	s.store.ApplyAll(records)
	logger.Info("Hydrated %d messages from server history", len(records))
	s.finish(nil)
	return nil
}

// Submit posts the prompt and pumps the response stream into the store.
// The returned channel carries one Update per applied batch and closes
// when the stream ends. The server echoes the submitted prompt as the
// first record, so the caller never inserts it locally.
func (s *Submission) Submit(ctx context.Context, prompt string, files []string) (<-chan Update, error) {
	if err := s.begin(StateSubmitting); err != nil {
		return nil, err
	}

	updates := make(chan Update, 16)
	go s.pump(ctx, prompt, files, updates)
	return updates, nil
}

// Clear wipes the conversation on the server, then locally.
func (s *Submission) Clear(ctx context.Context) error {
	if err := s.begin(StateSubmitting); err != nil {
		return err
	}

	if err := s.client.ClearHistory(ctx); err != nil {
		s.finish(err)
		return err
	}
	s.store.Clear()
	s.finish(nil)
	return nil
}

func (s *Submission) pump(ctx context.Context, prompt string, files []string, updates chan<- Update) {
	defer close(updates)

	body, err := s.client.Send(ctx, prompt, files)
	if err != nil {
		s.finish(err)
		updates <- Update{Err: err}
		return
	}
	defer body.Close()

	s.setState(StateStreaming)

	var dec stream.Decoder
	applied := 0
	buf := make([]byte, 32*1024)
	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			if feedErr := dec.Feed(buf[:n]); feedErr != nil {
				s.finish(feedErr)
				updates <- Update{Err: feedErr}
				return
			}
			if u, ok := s.apply(&dec, &applied); ok {
				updates <- u
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			s.finish(readErr)
			updates <- Update{Err: readErr}
			return
		}
	}

	if err := dec.Flush(); err != nil {
		s.finish(err)
		updates <- Update{Err: err}
		return
	}
	if u, ok := s.apply(&dec, &applied); ok {
		updates <- u
	}

	s.finish(nil)
}

// apply pushes records the decoder confirmed since the last batch into
// the store.
func (s *Submission) apply(dec *stream.Decoder, applied *int) (Update, bool) {
	records := dec.Records()
	if len(records) <= *applied {
		return Update{}, false
	}

	var u Update
	for _, record := range records[*applied:] {
		switch s.store.Apply(record) {
		case chat.ApplyCreated:
			u.Created++
		case chat.ApplyUpdated:
			u.Updated++
		}
	}
	*applied = len(records)

	if u.Created == 0 && u.Updated == 0 {
		return Update{}, false
	}
	return u, true
}

func (s *Submission) begin(next State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting || s.state == StateStreaming {
		return ErrBusy
	}
	s.state = next
	s.lastErr = nil
	return nil
}

func (s *Submission) setState(next State) {
	s.mu.Lock()
	s.state = next
	s.mu.Unlock()
}

func (s *Submission) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateErrored
		s.lastErr = err
		logger.Error("Submission failed: %v", err)
		return
	}
	s.state = StateIdle
	s.lastErr = nil
}

// decodeAll reads a complete NDJSON body, for the non-streaming history
// endpoint.
func decodeAll(body io.Reader) ([]chat.Message, error) {
	var dec stream.Decoder
	buf := make([]byte, 32*1024)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			if feedErr := dec.Feed(buf[:n]); feedErr != nil {
				return nil, feedErr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	if err := dec.Flush(); err != nil {
		return nil, err
	}
	return dec.Records(), nil
}
