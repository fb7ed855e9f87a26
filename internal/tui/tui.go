// Package tui is the terminal front end: a dual-pane rich text editor
// with a formatting toolbar, draft modals and debounced autosave.
package tui

import (
	"fmt"

	"cbx-editor/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the editor against the given store and blocks until quit.
func Run(st store.Store) error {
	applyColorProfilePreference()

	p := tea.NewProgram(newAppModel(st), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}
