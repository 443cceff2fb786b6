package tui

import (
	"context"
	"strings"

	"scribe-cli/internal/editor"
	"scribe-cli/internal/registry"
	"scribe-cli/internal/store"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
)

// Header is title + separator line; footer is help + status line.
const (
	headerLines = 2
	footerLines = 2
)

type appModel struct {
	dir   string
	store store.Store
	db    *store.DB
	state *editor.State
	reg   *registry.Registry
	watch *watchRegistry

	// One cell per block. Cells for removed blocks are torn down so their
	// document-level subscriptions never outlive them.
	cells map[string]*blockCell

	width  int
	height int

	// The first WindowSizeMsg is initial sizing, not a user resize.
	seenWindowSize bool

	// docRegion is the scrollable document pane; its parent is the root
	// screen region (which never scrolls itself).
	rootRegion *scrollRegion
	docRegion  *scrollRegion

	// Pointer position in screen coordinates, for wheel-target resolution.
	mouseX, mouseY int

	// multiAnchor tracks where the current multi-selection run started.
	multiAnchor string

	editing      bool
	textarea     textarea.Model
	editingTitle bool
	titleInput   textinput.Model

	statusMsg string
}

func newAppModel(dir string, db *store.DB, docID string) appModel {
	s := store.Store{Dir: dir}
	st := editor.New(db, docID)
	st.Events = s

	root := &scrollRegion{}
	doc := &scrollRegion{parent: root, scrollEnabled: true}

	m := appModel{
		dir:        dir,
		store:      s,
		db:         db,
		state:      st,
		reg:        registry.Default(),
		watch:      newWatchRegistry(),
		cells:      map[string]*blockCell{},
		rootRegion: root,
		docRegion:  doc,
	}

	m.textarea = textarea.New()
	m.textarea.Placeholder = "Write…"
	m.textarea.CharLimit = 0
	m.textarea.SetWidth(72)
	m.textarea.SetHeight(10)
	m.textarea.ShowLineNumbers = false

	m.titleInput = textinput.New()
	m.titleInput.Placeholder = "Document title"
	m.titleInput.CharLimit = 200
	m.titleInput.Width = 40

	m.syncCells()

	// Best effort: restore last selection and scroll for this workspace.
	if sess, err := s.LoadSession(context.Background()); err == nil {
		if sess.SelectedBlockID != "" {
			m.state.SelectBlock(sess.SelectedBlockID)
		}
		m.docRegion.offset = sess.ScrollOffset
		m.syncAllSubscriptions()
	}
	return m
}

// syncCells reconciles the cell set with the document's blocks: new blocks
// get cells, removed blocks get torn down (symmetric subscription release).
func (m *appModel) syncCells() {
	live := map[string]bool{}
	for _, b := range m.state.Blocks() {
		live[b.ID] = true
		if m.cells[b.ID] == nil {
			m.cells[b.ID] = newBlockCell(b.ID, m.state, m.reg, m.watch)
		}
	}
	for id, cell := range m.cells {
		if !live[id] {
			cell.teardown()
			delete(m.cells, id)
		}
	}
}

// syncAllSubscriptions re-evaluates every cell's document-level
// subscriptions. Cheap and idempotent, so it runs after any selection or
// typing transition.
func (m *appModel) syncAllSubscriptions() {
	for _, c := range m.cells {
		c.syncSubscriptions()
	}
}

func (m *appModel) persist() {
	if err := m.store.Save(m.db); err != nil {
		m.statusMsg = "save failed: " + err.Error()
		return
	}
}

func (m *appModel) saveSession() {
	sess := &store.Session{
		OpenDocumentID:  m.state.DocID,
		SelectedBlockID: m.state.SelectedBlockID(),
		ScrollOffset:    m.docRegion.offset,
	}
	_ = m.store.SaveSession(context.Background(), sess)
}

func (m *appModel) selectedCell() *blockCell {
	id := m.state.SelectedBlockID()
	if id == "" {
		return nil
	}
	return m.cells[id]
}

func (m *appModel) docTitle() string {
	if doc, ok := m.state.Document(); ok {
		if strings.TrimSpace(doc.Title) != "" {
			return doc.Title
		}
	}
	return "(untitled)"
}
