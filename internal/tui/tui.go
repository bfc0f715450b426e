// Package tui implements the interactive deck editor: a card list with
// pointer gestures (swipe to edit or delete, drag to reorder) on top of the
// usual keyboard bindings.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"quizdeck-cli/internal/store"
)

// Run starts the full-screen editor rooted at dir. It blocks until the user
// quits.
func Run(dir string, db *store.DB) error {
	applyColorProfile()
	zone.NewGlobal()

	m := newAppModel(dir, db)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
