package editor

import "testing"

func TestMergeBackwardAtFirstBlockIsNoop(t *testing.T) {
	s := newTestState(t, "one", "two")
	sink := &captureSink{}
	s.Events = sink
	if s.Merge("blk-a", MergeBackward) {
		t.Fatalf("backward merge at the first block must be a no-op")
	}
	if len(sink.types) != 0 {
		t.Fatalf("no-op merge must not emit events, got %v", sink.types)
	}
	if len(s.Blocks()) != 2 {
		t.Fatalf("blocks must be untouched")
	}
}

func TestMergeForwardAtLastBlockIsNoop(t *testing.T) {
	s := newTestState(t, "one", "two")
	if s.Merge("blk-b", MergeForward) {
		t.Fatalf("forward merge at the last block must be a no-op")
	}
	if len(s.Blocks()) != 2 {
		t.Fatalf("blocks must be untouched")
	}
}

func TestMergeOrdersPairRegardlessOfDirection(t *testing.T) {
	for _, tc := range []struct {
		name string
		id   string
		dir  MergeDirection
	}{
		{"backward from second", "blk-b", MergeBackward},
		{"forward from first", "blk-a", MergeForward},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestState(t, "one", "two")
			if !s.Merge(tc.id, tc.dir) {
				t.Fatalf("expected merge to run")
			}
			blocks := s.Blocks()
			if len(blocks) != 1 {
				t.Fatalf("expected one surviving block, got %d", len(blocks))
			}
			// Earlier block survives and absorbs the later content.
			if blocks[0].ID != "blk-a" {
				t.Fatalf("expected blk-a to survive, got %s", blocks[0].ID)
			}
			if blocks[0].Content() != "one\ntwo" {
				t.Fatalf("unexpected merged content: %q", blocks[0].Content())
			}
		})
	}
}

func TestMergeEmitsSingleEventWithDocumentOrder(t *testing.T) {
	s := newTestState(t, "one", "two")
	sink := &captureSink{}
	s.Events = sink
	if !s.Merge("blk-b", MergeBackward) {
		t.Fatalf("expected merge")
	}
	if len(sink.types) != 1 || sink.types[0] != "block.merge" {
		t.Fatalf("expected exactly one block.merge event, got %v", sink.types)
	}
}

func TestMergeMovesSelectionToSurvivor(t *testing.T) {
	s := newTestState(t, "one", "two")
	s.SelectBlock("blk-b")
	if !s.Merge("blk-b", MergeBackward) {
		t.Fatalf("expected merge")
	}
	if !s.IsSelected("blk-a") {
		t.Fatalf("selection should move to the surviving block")
	}
}

func TestMergeBlocksRejectsSelfAndUnknown(t *testing.T) {
	s := newTestState(t, "one", "two")
	if s.MergeBlocks("blk-a", "blk-a") {
		t.Fatalf("self-merge must be rejected")
	}
	if s.MergeBlocks("blk-a", "blk-zz") {
		t.Fatalf("unknown later block must be rejected")
	}
}

func TestMergeEmptyEarlierKeepsLaterContent(t *testing.T) {
	s := newTestState(t, "", "tail")
	if !s.Merge("blk-a", MergeForward) {
		t.Fatalf("expected merge")
	}
	b := s.Blocks()[0]
	if b.Content() != "tail" {
		t.Fatalf("merging into an empty block must not add a separator, got %q", b.Content())
	}
}
