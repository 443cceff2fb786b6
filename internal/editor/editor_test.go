package editor

import (
	"testing"
	"time"

	"scribe-cli/internal/model"
	"scribe-cli/internal/store"
)

func newTestState(t *testing.T, contents ...string) *State {
	t.Helper()
	now := time.Now().UTC()
	db := &store.DB{
		Version:   1,
		Documents: []model.Document{{ID: "doc-test", Title: "Test", CreatedAt: now, UpdatedAt: now}},
	}
	rank := ""
	for i, c := range contents {
		r, err := store.RankAfter(rank)
		if err != nil {
			t.Fatalf("rank: %v", err)
		}
		rank = r
		db.Blocks = append(db.Blocks, model.Block{
			ID:         blockID(i),
			DocumentID: "doc-test",
			Type:       model.BlockParagraph,
			Attributes: map[string]any{"content": c},
			Valid:      true,
			Rank:       rank,
			CreatedAt:  now.Add(time.Duration(i) * time.Millisecond),
		})
	}
	return New(db, "doc-test")
}

func blockID(i int) string {
	return "blk-" + string(rune('a'+i))
}

func TestSelectBlock(t *testing.T) {
	s := newTestState(t, "one", "two")
	s.SelectBlock("blk-a")
	if !s.IsSelected("blk-a") || s.IsSelected("blk-b") {
		t.Fatalf("expected only blk-a selected")
	}
	s.SelectBlock("blk-b")
	if s.IsSelected("blk-a") || !s.IsSelected("blk-b") {
		t.Fatalf("selection should move to blk-b")
	}
	s.SelectBlock("blk-nope")
	if !s.IsSelected("blk-b") {
		t.Fatalf("selecting an unknown block must not drop the current selection")
	}
}

func TestClearSelectionDropsEverything(t *testing.T) {
	s := newTestState(t, "one", "two")
	s.SelectBlock("blk-a")
	s.SetFocus("blk-a", model.CaretEnd, true)
	s.StartTyping()
	s.ClearSelection()
	if s.IsSelected("blk-a") || s.IsTyping() {
		t.Fatalf("expected selection and typing cleared")
	}
	if _, ok := s.Focus(); ok {
		t.Fatalf("expected focus cleared")
	}
}

func TestMultiSelectionRange(t *testing.T) {
	s := newTestState(t, "one", "two", "three", "four")
	s.ToggleMultiSelection(true)
	// Reversed anchor/focus still forms the same document-order run.
	s.MultiSelect("blk-c", "blk-a")

	for _, id := range []string{"blk-a", "blk-b", "blk-c"} {
		if !s.IsMultiSelected(id) {
			t.Fatalf("expected %s multi-selected", id)
		}
	}
	if s.IsMultiSelected("blk-d") {
		t.Fatalf("blk-d should be outside the run")
	}
	if !s.IsFirstMultiSelected("blk-a") {
		t.Fatalf("blk-a should be first of the run")
	}
	if s.IsFirstMultiSelected("blk-b") || s.IsFirstMultiSelected("blk-c") {
		t.Fatalf("only the first block of the run may report first-of-multi")
	}

	s.ToggleMultiSelection(false)
	if s.IsMultiSelected("blk-b") {
		t.Fatalf("disabling multi-selection should drop the run")
	}
}

func TestMultiSelectIgnoredWhileDisabled(t *testing.T) {
	s := newTestState(t, "one", "two")
	s.MultiSelect("blk-a", "blk-b")
	if s.IsMultiSelected("blk-a") {
		t.Fatalf("multi-select must be a no-op while the feature is disabled")
	}
}

func TestHover(t *testing.T) {
	s := newTestState(t, "one", "two")
	s.SetHover("blk-a")
	if !s.IsHovered("blk-a") {
		t.Fatalf("expected blk-a hovered")
	}
	// Clearing a different id leaves the hover alone.
	s.ClearHover("blk-b")
	if !s.IsHovered("blk-a") {
		t.Fatalf("hover should survive a mismatched clear")
	}
	s.ClearHover("blk-a")
	if s.IsHovered("blk-a") {
		t.Fatalf("expected hover cleared")
	}
}

func TestSiblingLookup(t *testing.T) {
	s := newTestState(t, "one", "two", "three")
	if _, ok := s.PreviousBlock("blk-a"); ok {
		t.Fatalf("first block has no previous")
	}
	if _, ok := s.NextBlock("blk-c"); ok {
		t.Fatalf("last block has no next")
	}
	prev, ok := s.PreviousBlock("blk-b")
	if !ok || prev.ID != "blk-a" {
		t.Fatalf("expected blk-a before blk-b")
	}
	next, ok := s.NextBlock("blk-b")
	if !ok || next.ID != "blk-c" {
		t.Fatalf("expected blk-c after blk-b")
	}
}

func TestInsertBlockAt(t *testing.T) {
	s := newTestState(t, "one", "two")
	blk, err := s.InsertBlockAt(1, model.DefaultBlockType)
	if err != nil {
		t.Fatalf("InsertBlockAt: %v", err)
	}
	if s.BlockIndex(blk.ID) != 1 {
		t.Fatalf("expected inserted block at index 1, got %d", s.BlockIndex(blk.ID))
	}
	if blk.Type != model.BlockParagraph || !blk.Valid {
		t.Fatalf("unexpected inserted block: %+v", blk)
	}

	// Clamped indexes append/prepend instead of failing.
	head, err := s.InsertBlockAt(-5, model.DefaultBlockType)
	if err != nil {
		t.Fatalf("InsertBlockAt(-5): %v", err)
	}
	if s.BlockIndex(head.ID) != 0 {
		t.Fatalf("expected clamped head insert at 0")
	}
	tail, err := s.InsertBlockAt(99, model.DefaultBlockType)
	if err != nil {
		t.Fatalf("InsertBlockAt(99): %v", err)
	}
	if s.BlockIndex(tail.ID) != len(s.Blocks())-1 {
		t.Fatalf("expected clamped tail insert at end")
	}
}

func TestRemoveBlockClearsDerivedState(t *testing.T) {
	s := newTestState(t, "one", "two")
	s.SelectBlock("blk-a")
	s.SetFocus("blk-a", model.CaretEnd, true)
	s.SetHover("blk-a")

	if !s.RemoveBlock("blk-a") {
		t.Fatalf("expected removal")
	}
	if s.IsSelected("blk-a") || s.IsHovered("blk-a") {
		t.Fatalf("expected selection/hover cleared with the block")
	}
	if _, ok := s.Focus(); ok {
		t.Fatalf("expected focus cleared with the block")
	}
	if s.RemoveBlock("blk-a") {
		t.Fatalf("second removal should report false")
	}
}

func TestMoveBlock(t *testing.T) {
	s := newTestState(t, "one", "two", "three")
	if s.MoveBlock("blk-a", -1) {
		t.Fatalf("moving the first block up must fail")
	}
	if s.MoveBlock("blk-c", 1) {
		t.Fatalf("moving the last block down must fail")
	}
	if !s.MoveBlock("blk-a", 1) {
		t.Fatalf("expected move to succeed")
	}
	order := s.Blocks()
	if order[0].ID != "blk-b" || order[1].ID != "blk-a" {
		t.Fatalf("unexpected order after move: %s, %s", order[0].ID, order[1].ID)
	}
}

func TestReplaceBlock(t *testing.T) {
	s := newTestState(t, "one", "two", "three")
	err := s.ReplaceBlock("blk-b", []model.Block{
		{Type: model.BlockHeading, Attributes: map[string]any{"content": "T", "level": 2}, Valid: true},
		{Type: model.BlockParagraph, Attributes: map[string]any{"content": "body"}, Valid: true},
	})
	if err != nil {
		t.Fatalf("ReplaceBlock: %v", err)
	}
	blocks := s.Blocks()
	if len(blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(blocks))
	}
	if blocks[0].ID != "blk-a" || blocks[3].ID != "blk-c" {
		t.Fatalf("replacement must stay between original neighbors")
	}
	if blocks[1].Type != model.BlockHeading || blocks[2].Type != model.BlockParagraph {
		t.Fatalf("unexpected replacement types: %s, %s", blocks[1].Type, blocks[2].Type)
	}
}

func TestUpdateBlockAttributes(t *testing.T) {
	s := newTestState(t, "one")
	if !s.UpdateBlockAttributes("blk-a", map[string]any{"content": "edited"}) {
		t.Fatalf("expected update to succeed")
	}
	b, _ := s.Block("blk-a")
	if b.Content() != "edited" {
		t.Fatalf("expected content edited, got %q", b.Content())
	}
	if s.UpdateBlockAttributes("blk-zz", nil) {
		t.Fatalf("updating unknown block must fail")
	}
}

func TestIsLocked(t *testing.T) {
	s := newTestState(t, "one")
	if s.IsLocked() {
		t.Fatalf("fresh doc should not be locked")
	}
	doc, _ := s.Document()
	doc.Locked = true
	if !s.IsLocked() {
		t.Fatalf("expected locked")
	}
}

type captureSink struct {
	types []string
}

func (c *captureSink) AppendEvent(typ, entityID string, payload any) error {
	c.types = append(c.types, typ)
	return nil
}

func TestIntentsEmitEvents(t *testing.T) {
	s := newTestState(t, "one", "two")
	sink := &captureSink{}
	s.Events = sink

	if _, err := s.InsertBlockAt(2, model.DefaultBlockType); err != nil {
		t.Fatalf("insert: %v", err)
	}
	s.UpdateBlockAttributes("blk-a", map[string]any{"content": "x"})
	s.RemoveBlock("blk-b")

	want := []string{"block.insert", "block.update", "block.remove"}
	if len(sink.types) != len(want) {
		t.Fatalf("expected %d events, got %v", len(want), sink.types)
	}
	for i, typ := range want {
		if sink.types[i] != typ {
			t.Fatalf("event %d: expected %s, got %s", i, typ, sink.types[i])
		}
	}
}
