package status

import "time"

// StartMsg indicates a submission has started. Label names the phase,
// like "sending" or "streaming".
type StartMsg struct {
	Label string
}

// SetLabelMsg renames the phase while the bar stays active.
type SetLabelMsg struct {
	Label string
}

// StopMsg indicates the submission has finished.
type StopMsg struct{}

// FlashMsg shows a transient notice, replacing any previous one. The
// owner schedules the matching ClearFlashMsg.
type FlashMsg struct {
	Text    string
	IsError bool
}

// ClearFlashMsg removes the transient notice.
type ClearFlashMsg struct{}

// SetTokensMsg replaces the conversation token total.
type SetTokensMsg struct {
	Total int
}

// SetAttachmentsMsg replaces the set of files going out with the next
// prompt. An empty set hides the segment.
type SetAttachmentsMsg struct {
	Names []string
}

// TickMsg updates the timer
type TickMsg time.Time
