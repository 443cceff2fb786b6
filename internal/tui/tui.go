// Package tui is the interactive block editor: one cell component per block,
// a document-level watch registry for focus and motion subscriptions, and an
// editor.State holding all selection semantics.
package tui

import (
	"scribe-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run opens the editor on the given document and blocks until the user quits.
func Run(dir string, db *store.DB, docID string) error {
	m := newAppModel(dir, db, docID)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
