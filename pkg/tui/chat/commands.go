package chat

import (
	"context"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/banterhq/banter/pkg/controllers"
)

const (
	commandTimeout = 15 * time.Second
	hydrateTimeout = 30 * time.Second
	flashDuration  = 2 * time.Second
)

func (m chatModel) hydrateCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), hydrateTimeout)
		defer cancel()
		return hydratedMsg{err: m.session.Hydrate(ctx)}
	}
}

func (m chatModel) submitCmd(prompt string, files []string) tea.Cmd {
	return func() tea.Msg {
		updates, err := m.session.Submit(context.Background(), prompt, files)
		if err != nil {
			return errMsg(err)
		}
		return streamOpenedMsg{updates: updates}
	}
}

// waitForUpdate relays one batch from the open stream back into the
// update loop. The handler re-arms it until the channel closes.
func waitForUpdate(updates <-chan controllers.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-updates
		return streamUpdateMsg{update: u, open: ok}
	}
}

// waitForMath parks until a background typeset completes.
func waitForMath(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return mathReadyMsg{}
	}
}

func clearFlashAfter() tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return clearFlashMsg{}
	})
}

func (m chatModel) filesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		files, err := m.session.Client().Files(ctx)
		sort.Strings(files)
		return filesListedMsg{files: files, err: err}
	}
}

func (m chatModel) attachCmd(name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		files, err := m.session.Client().Files(ctx)
		if err != nil {
			return attachCheckedMsg{name: name, err: err}
		}
		for _, f := range files {
			if f == name {
				return attachCheckedMsg{name: name, found: true}
			}
		}
		return attachCheckedMsg{name: name}
	}
}

func (m chatModel) clearCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		return clearedMsg{err: m.session.Clear(ctx)}
	}
}
