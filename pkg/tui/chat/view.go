package chat

import (
	"fmt"
)

func (m chatModel) View() string {
	return fmt.Sprintf(
		"%s\n%s\n%s",
		m.viewport.View(),
		m.statusBar.View(),
		m.textarea.View(),
	)
}
