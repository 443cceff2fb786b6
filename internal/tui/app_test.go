package tui

import (
	"testing"
	"time"

	"scribe-cli/internal/model"
	"scribe-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestApp(t *testing.T, contents ...string) appModel {
	t.Helper()
	now := time.Now().UTC()
	db := &store.DB{
		Version:           1,
		CurrentDocumentID: "doc-test",
		Documents:         []model.Document{{ID: "doc-test", Title: "Test", CreatedAt: now, UpdatedAt: now}},
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

	m := newAppModel(t.TempDir(), db, "doc-test")
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return sized.(appModel)
}

func TestWindowSizeSizesRegions(t *testing.T) {
	m := newTestApp(t, "one", "two")
	if !m.seenWindowSize {
		t.Fatalf("window size should be recorded")
	}
	if m.docRegion.visibleHeight != 24-headerLines-footerLines {
		t.Fatalf("doc pane height = %d", m.docRegion.visibleHeight)
	}
	if m.View() == "" {
		t.Fatalf("sized model should render")
	}
}

func TestCellsTrackBlocks(t *testing.T) {
	m := newTestApp(t, "one", "two")
	if len(m.cells) != 2 {
		t.Fatalf("expected one cell per block, got %d", len(m.cells))
	}

	m.state.RemoveBlock("blk-a")
	m.syncCells()
	if _, ok := m.cells["blk-a"]; ok {
		t.Fatalf("removed block's cell should be torn down")
	}
	if m.watch.focusWatching("blk-a") || m.watch.motionWatching("blk-a") {
		t.Fatalf("torn-down cell must not hold subscriptions")
	}
}

func TestArrowKeysMoveSelection(t *testing.T) {
	m := newTestApp(t, "one", "two", "three")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(appModel)
	if got := m.state.SelectedBlockID(); got != "blk-a" {
		t.Fatalf("first down should select the first block, got %q", got)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(appModel)
	if got := m.state.SelectedBlockID(); got != "blk-b" {
		t.Fatalf("second down should advance, got %q", got)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(appModel)
	if got := m.state.SelectedBlockID(); got != "blk-a" {
		t.Fatalf("up should go back, got %q", got)
	}
}

func TestClickSelectsBlockUnderPointer(t *testing.T) {
	m := newTestApp(t, "one", "two")

	next, _ := m.Update(tea.MouseMsg{
		X: 4, Y: headerLines,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	m = next.(appModel)
	if got := m.state.SelectedBlockID(); got != "blk-a" {
		t.Fatalf("click on the first row should select blk-a, got %q", got)
	}
}

// collectMsgs runs a command tree to completion and flattens the messages it
// produces, the way the bubbletea runtime would deliver them.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func TestSelectionTransferSurvivesOldCellTimer(t *testing.T) {
	m := newTestApp(t, "one", "two")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(appModel)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(appModel)
	if got := m.state.SelectedBlockID(); got != "blk-b" {
		t.Fatalf("selection should have transferred to blk-b, got %q", got)
	}

	// Deliver whatever the transfer scheduled, including the old cell's
	// deselect timer.
	for _, msg := range collectMsgs(cmd) {
		next, _ = m.Update(msg)
		m = next.(appModel)
	}

	if got := m.state.SelectedBlockID(); got != "blk-b" {
		t.Fatalf("old cell's deselect timer cleared the new selection, selected=%q", got)
	}
}

func TestClickTransferSurvivesOldCellTimer(t *testing.T) {
	m := newTestApp(t, "one", "two")
	m.state.SelectBlock("blk-a")
	m.syncAllSubscriptions()

	secondTop := m.rowTop("blk-b")
	next, cmd := m.Update(tea.MouseMsg{
		X: 4, Y: headerLines + secondTop,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	m = next.(appModel)
	if got := m.state.SelectedBlockID(); got != "blk-b" {
		t.Fatalf("click should select blk-b, got %q", got)
	}

	for _, msg := range collectMsgs(cmd) {
		next, _ = m.Update(msg)
		m = next.(appModel)
	}
	if got := m.state.SelectedBlockID(); got != "blk-b" {
		t.Fatalf("clicked selection wiped by the previous cell's timer, selected=%q", got)
	}
}

func TestDeselectTimeoutRoutedToCell(t *testing.T) {
	m := newTestApp(t, "one", "two")
	m.state.SelectBlock("blk-a")
	m.syncAllSubscriptions()
	cell := m.cells["blk-a"]

	cmd, _ := cell.handleFocusChange("blk-b")
	if cmd == nil {
		t.Fatalf("expected an armed deselect timer")
	}

	next, _ := m.Update(deselectTimeoutMsg{blockID: "blk-a", seq: cell.deselectSeq, target: "blk-b"})
	m = next.(appModel)
	if m.state.SelectedBlockID() != "" {
		t.Fatalf("routed timeout should deselect")
	}
}

func TestPreventDeselectRoutedToCell(t *testing.T) {
	m := newTestApp(t, "one", "two")
	m.state.SelectBlock("blk-a")
	m.syncAllSubscriptions()
	cell := m.cells["blk-a"]
	cell.handleFocusChange("blk-b")

	next, _ := m.Update(preventDeselectMsg{blockID: "blk-a"})
	m = next.(appModel)
	next, _ = m.Update(deselectTimeoutMsg{blockID: "blk-a", seq: cell.deselectSeq, target: "blk-b"})
	m = next.(appModel)

	if m.state.SelectedBlockID() != "blk-a" {
		t.Fatalf("vetoed timeout must keep the selection")
	}
}

func TestWheelMarksCellUnderPointer(t *testing.T) {
	m := newTestApp(t, "one", "two")

	next, _ := m.Update(tea.MouseMsg{
		X: 4, Y: headerLines,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonWheelDown,
	})
	m = next.(appModel)
	if !m.cells["blk-a"].wheelSeen {
		t.Fatalf("wheel should mark the cell under the pointer")
	}
}

func TestMoveBlockPreservesRowPosition(t *testing.T) {
	contents := make([]string, 30)
	for i := range contents {
		contents[i] = "line"
	}
	m := newTestApp(t, contents...)
	m.resizeRegions()
	m.docRegion.offset = 5

	sel := m.state.Blocks()[10].ID
	m.state.SelectBlock(sel)
	m.syncAllSubscriptions()

	before := m.rowTop(sel) - m.docRegion.offset
	m.moveBlock(1)
	after := m.rowTop(sel) - m.docRegion.offset

	if m.state.BlockIndex(sel) != 11 {
		t.Fatalf("block should have moved down one slot")
	}
	if before != after {
		t.Fatalf("row moved on screen: before=%d after=%d", before, after)
	}
}

func TestMoveBlockOffEndIsNoOp(t *testing.T) {
	m := newTestApp(t, "one", "two")
	m.state.SelectBlock("blk-a")
	m.syncAllSubscriptions()

	m.moveBlock(-1)
	if m.state.BlockIndex("blk-a") != 0 {
		t.Fatalf("moving the first block up must be a no-op")
	}
	if m.cells["blk-a"].hasCaptured {
		t.Fatalf("a refused move must not leave a dangling capture")
	}
}

func TestEnterFromAppInsertsAndRenders(t *testing.T) {
	m := newTestApp(t, "one")
	m.state.SelectBlock("blk-a")
	m.syncAllSubscriptions()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(appModel)

	if len(m.state.Blocks()) != 2 {
		t.Fatalf("enter should insert a block")
	}
	if len(m.cells) != 2 {
		t.Fatalf("the new block should get a cell")
	}
	if m.View() == "" {
		t.Fatalf("model should render after insertion")
	}
}
