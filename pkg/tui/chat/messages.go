package chat

import "github.com/banterhq/banter/pkg/controllers"

type errMsg error

// hydratedMsg reports the startup history load.
type hydratedMsg struct {
	err error
}

// streamOpenedMsg hands the model a freshly opened response stream.
type streamOpenedMsg struct {
	updates <-chan controllers.Update
}

// streamUpdateMsg is one batch from the open stream. open is false once
// the channel closed and the stream is over.
type streamUpdateMsg struct {
	update controllers.Update
	open   bool
}

// mathReadyMsg means a background typeset finished and cached renders
// may be stale.
type mathReadyMsg struct{}

// clearFlashMsg retires a transient status notice.
type clearFlashMsg struct{}

// filesListedMsg answers a /files command.
type filesListedMsg struct {
	files []string
	err   error
}

// attachCheckedMsg answers an /attach command after the name was
// checked against the server's listing.
type attachCheckedMsg struct {
	name  string
	found bool
	err   error
}

// clearedMsg answers a /new command.
type clearedMsg struct {
	err error
}
