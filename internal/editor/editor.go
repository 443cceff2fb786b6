// Package editor owns the mutable editing state for one open document:
// which block is selected, hovered, or focused, whether the user is in
// typing mode, and the intents that mutate blocks. UI components never
// change blocks directly; they read selectors and dispatch intents.
package editor

import (
	"strings"

	"scribe-cli/internal/model"
	"scribe-cli/internal/store"
)

// EventSink receives edit events for the append-only history log.
// store.Store satisfies it; tests pass nil to stay in-memory.
type EventSink interface {
	AppendEvent(typ, entityID string, payload any) error
}

type State struct {
	DB    *store.DB
	DocID string

	// Events, when non-nil, receives one event per applied intent.
	// Appends are best-effort: a full disk must not break editing.
	Events EventSink

	selectedID string
	hoveredID  string

	// Multi-selection is a contiguous run between anchor and focus block.
	multiEnabled bool
	multiAnchor  string
	multiFocus   string

	typing bool
	focus  *model.FocusDescriptor
}

func New(db *store.DB, docID string) *State {
	return &State{DB: db, DocID: strings.TrimSpace(docID)}
}

// --- selectors ---

func (s *State) Document() (*model.Document, bool) {
	return s.DB.FindDocument(s.DocID)
}

func (s *State) Block(id string) (*model.Block, bool) {
	b, ok := s.DB.FindBlock(id)
	if !ok || b.DocumentID != s.DocID {
		return nil, false
	}
	return b, true
}

// Blocks returns the document's blocks in rank order.
func (s *State) Blocks() []model.Block {
	return s.DB.DocumentBlocks(s.DocID)
}

// BlockIndex returns the block's position in document order, or -1.
func (s *State) BlockIndex(id string) int {
	for i, b := range s.Blocks() {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (s *State) PreviousBlock(id string) (*model.Block, bool) {
	blocks := s.Blocks()
	for i := range blocks {
		if blocks[i].ID == id {
			if i == 0 {
				return nil, false
			}
			prev := blocks[i-1]
			return &prev, true
		}
	}
	return nil, false
}

func (s *State) NextBlock(id string) (*model.Block, bool) {
	blocks := s.Blocks()
	for i := range blocks {
		if blocks[i].ID == id {
			if i == len(blocks)-1 {
				return nil, false
			}
			next := blocks[i+1]
			return &next, true
		}
	}
	return nil, false
}

func (s *State) IsSelected(id string) bool {
	return s.selectedID != "" && s.selectedID == id
}

func (s *State) SelectedBlockID() string { return s.selectedID }

func (s *State) IsHovered(id string) bool {
	return s.hoveredID != "" && s.hoveredID == id
}

func (s *State) IsTyping() bool { return s.typing }

func (s *State) MultiSelectionEnabled() bool { return s.multiEnabled }

// multiRange returns the multi-selection run as (start, end) document-order
// indexes, or ok=false when no multi-selection is active.
func (s *State) multiRange() (int, int, bool) {
	if !s.multiEnabled || s.multiAnchor == "" || s.multiFocus == "" {
		return 0, 0, false
	}
	a := s.BlockIndex(s.multiAnchor)
	f := s.BlockIndex(s.multiFocus)
	if a < 0 || f < 0 {
		return 0, 0, false
	}
	if a <= f {
		return a, f, true
	}
	return f, a, true
}

func (s *State) IsMultiSelected(id string) bool {
	start, end, ok := s.multiRange()
	if !ok {
		return false
	}
	idx := s.BlockIndex(id)
	return idx >= start && idx <= end
}

// IsFirstMultiSelected reports whether id is the first block (in document
// order) of the active multi-selection. Exactly one block satisfies this,
// which is what lets a single cell own document-level focus watching.
func (s *State) IsFirstMultiSelected(id string) bool {
	start, _, ok := s.multiRange()
	if !ok {
		return false
	}
	return s.BlockIndex(id) == start
}

func (s *State) Focus() (model.FocusDescriptor, bool) {
	if s.focus == nil {
		return model.FocusDescriptor{}, false
	}
	return *s.focus, true
}

// IsLocked reports whether the document refuses structural edits.
func (s *State) IsLocked() bool {
	doc, ok := s.Document()
	return ok && doc.Locked
}
