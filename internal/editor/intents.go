package editor

import (
	"strings"
	"time"

	"scribe-cli/internal/model"
	"scribe-cli/internal/store"
)

// Intents. Each one is a complete state transition; callers never combine
// partial mutations. Event emission is best-effort and never blocks an edit.

func (s *State) emit(typ, entityID string, payload any) {
	if s.Events == nil {
		return
	}
	_ = s.Events.AppendEvent(typ, entityID, payload)
}

func (s *State) SelectBlock(id string) {
	id = strings.TrimSpace(id)
	if _, ok := s.Block(id); !ok {
		return
	}
	s.selectedID = id
	s.multiAnchor = ""
	s.multiFocus = ""
	s.hoveredID = ""
}

// ClearSelection drops single and multi selection, focus, and typing mode.
func (s *State) ClearSelection() {
	s.selectedID = ""
	s.multiAnchor = ""
	s.multiFocus = ""
	s.focus = nil
	s.typing = false
}

// ToggleMultiSelection turns the multi-selection feature on or off.
// Disabling drops any active run.
func (s *State) ToggleMultiSelection(enable bool) {
	s.multiEnabled = enable
	if !enable {
		s.multiAnchor = ""
		s.multiFocus = ""
	}
}

// MultiSelect sets the contiguous run between anchor and focus (inclusive,
// either order). Ignored while multi-selection is disabled.
func (s *State) MultiSelect(anchorID, focusID string) {
	if !s.multiEnabled {
		return
	}
	if s.BlockIndex(anchorID) < 0 || s.BlockIndex(focusID) < 0 {
		return
	}
	s.multiAnchor = anchorID
	s.multiFocus = focusID
	s.selectedID = ""
}

func (s *State) StartTyping() { s.typing = true }
func (s *State) StopTyping()  { s.typing = false }

func (s *State) SetHover(id string) {
	if _, ok := s.Block(id); !ok {
		return
	}
	s.hoveredID = id
}

func (s *State) ClearHover(id string) {
	if s.hoveredID == id {
		s.hoveredID = ""
	}
}

func (s *State) SetFocus(blockID string, caret model.CaretMarker, collapsed bool) {
	blockID = strings.TrimSpace(blockID)
	if _, ok := s.Block(blockID); !ok {
		s.focus = nil
		return
	}
	s.focus = &model.FocusDescriptor{BlockID: blockID, Caret: caret, Collapsed: collapsed}
}

// UpdateBlockAttributes replaces the block's attributes wholesale.
func (s *State) UpdateBlockAttributes(id string, attrs map[string]any) bool {
	b, ok := s.Block(id)
	if !ok {
		return false
	}
	b.Attributes = attrs
	b.UpdatedAt = time.Now().UTC()
	s.emit("block.update", id, map[string]any{"attributes": attrs})
	return true
}

// InsertBlockAt inserts a new block of the given type at position index
// (clamped to [0, len]) and returns it.
func (s *State) InsertBlockAt(index int, typ model.BlockType) (*model.Block, error) {
	blocks := s.Blocks()
	if index < 0 {
		index = 0
	}
	if index > len(blocks) {
		index = len(blocks)
	}

	lower, upper := "", ""
	if index > 0 {
		lower = blocks[index-1].Rank
	}
	if index < len(blocks) {
		upper = blocks[index].Rank
	}
	rank, err := store.RankBetween(lower, upper)
	if err != nil {
		return nil, err
	}
	id, err := store.NewBlockID(s.DB)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	blk := model.Block{
		ID:         id,
		DocumentID: s.DocID,
		Type:       typ,
		Attributes: map[string]any{"content": ""},
		Valid:      true,
		Rank:       rank,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.DB.Blocks = append(s.DB.Blocks, blk)
	s.emit("block.insert", id, map[string]any{"type": string(typ), "index": index})

	inserted, _ := s.Block(id)
	return inserted, nil
}

// RemoveBlock removes the block and clears any selection state pointing at it.
func (s *State) RemoveBlock(id string) bool {
	if _, ok := s.Block(id); !ok {
		return false
	}
	if !s.DB.RemoveBlock(id) {
		return false
	}
	if s.selectedID == id {
		s.selectedID = ""
	}
	if s.hoveredID == id {
		s.hoveredID = ""
	}
	if s.focus != nil && s.focus.BlockID == id {
		s.focus = nil
	}
	if s.multiAnchor == id || s.multiFocus == id {
		s.multiAnchor = ""
		s.multiFocus = ""
	}
	s.emit("block.remove", id, nil)
	return true
}

// ReplaceBlock swaps one block for one or more new blocks at its position.
func (s *State) ReplaceBlock(id string, replacements []model.Block) error {
	idx := s.BlockIndex(id)
	if idx < 0 || len(replacements) == 0 {
		return store.NotFoundError{Kind: "block", ID: id}
	}
	blocks := s.Blocks()
	lower, upper := "", ""
	if idx > 0 {
		lower = blocks[idx-1].Rank
	}
	if idx < len(blocks)-1 {
		upper = blocks[idx+1].Rank
	}
	s.DB.RemoveBlock(id)

	prev := lower
	for i := range replacements {
		rank, err := store.RankBetween(prev, upper)
		if err != nil {
			return err
		}
		r := replacements[i]
		if strings.TrimSpace(r.ID) == "" {
			newID, err := store.NewBlockID(s.DB)
			if err != nil {
				return err
			}
			r.ID = newID
		}
		r.DocumentID = s.DocID
		r.Rank = rank
		if r.CreatedAt.IsZero() {
			r.CreatedAt = time.Now().UTC()
		}
		r.UpdatedAt = time.Now().UTC()
		s.DB.Blocks = append(s.DB.Blocks, r)
		prev = rank
	}
	s.emit("block.replace", id, map[string]any{"count": len(replacements)})
	return nil
}

// MoveBlock moves the block by delta positions within the document
// (negative = up). Returns false when the move would fall off either end.
func (s *State) MoveBlock(id string, delta int) bool {
	blocks := s.Blocks()
	idx := s.BlockIndex(id)
	if idx < 0 || delta == 0 {
		return false
	}
	target := idx + delta
	if target < 0 || target >= len(blocks) {
		return false
	}

	// Compute the rank slot at the target position, excluding the moving block.
	rest := make([]model.Block, 0, len(blocks)-1)
	for _, b := range blocks {
		if b.ID != id {
			rest = append(rest, b)
		}
	}
	lower, upper := "", ""
	if target > 0 {
		lower = rest[target-1].Rank
	}
	if target < len(rest) {
		upper = rest[target].Rank
	}
	rank, err := store.RankBetween(lower, upper)
	if err != nil {
		return false
	}
	b, _ := s.Block(id)
	b.Rank = rank
	b.UpdatedAt = time.Now().UTC()
	s.emit("block.move", id, map[string]any{"from": idx, "to": target})
	return true
}

// SetDocumentLocked toggles the document's edit lock and returns the new
// state. Structural edits are refused while locked.
func (s *State) SetDocumentLocked(locked bool) bool {
	doc, ok := s.Document()
	if !ok {
		return false
	}
	doc.Locked = locked
	doc.UpdatedAt = time.Now().UTC()
	s.emit("document.lock", doc.ID, map[string]any{"locked": locked})
	return doc.Locked
}

// RenameDocument updates the open document's title.
func (s *State) RenameDocument(title string) bool {
	doc, ok := s.Document()
	if !ok {
		return false
	}
	doc.Title = strings.TrimSpace(title)
	doc.UpdatedAt = time.Now().UTC()
	s.emit("document.rename", doc.ID, map[string]any{"title": doc.Title})
	return true
}
