package editor

import (
	"strings"
	"time"

	"scribe-cli/internal/model"
)

// MergeDirection selects which neighbor a merge request targets.
type MergeDirection int

const (
	MergeBackward MergeDirection = iota // merge with the previous block
	MergeForward                        // merge with the next block
)

// Merge requests a merge between the block and its neighbor in the given
// direction. Backward at the first block and forward at the last block are
// no-ops. The actual merge always runs on the (earlier, later) pair in
// document order, whichever direction was asked for.
func (s *State) Merge(id string, dir MergeDirection) bool {
	var earlier, later string
	switch dir {
	case MergeBackward:
		prev, ok := s.PreviousBlock(id)
		if !ok {
			return false
		}
		earlier, later = prev.ID, id
	case MergeForward:
		next, ok := s.NextBlock(id)
		if !ok {
			return false
		}
		earlier, later = id, next.ID
	default:
		return false
	}
	return s.MergeBlocks(earlier, later)
}

// MergeBlocks folds the later block's content into the earlier one and
// removes the later block. Focus lands at the join point in the survivor.
func (s *State) MergeBlocks(earlierID, laterID string) bool {
	a, okA := s.Block(earlierID)
	b, okB := s.Block(laterID)
	if !okA || !okB || earlierID == laterID {
		return false
	}

	joined := a.Content()
	if tail := b.Content(); tail != "" {
		if joined != "" {
			joined += "\n"
		}
		joined += tail
	}
	*a = a.WithContent(joined)
	a.UpdatedAt = time.Now().UTC()

	s.DB.RemoveBlock(laterID)
	if s.selectedID == laterID {
		s.selectedID = earlierID
	}
	if s.multiAnchor == laterID || s.multiFocus == laterID {
		s.multiAnchor = ""
		s.multiFocus = ""
	}
	if s.focus != nil && s.focus.BlockID == laterID {
		s.SetFocus(earlierID, model.CaretEnd, true)
	}
	s.emit("block.merge", earlierID, map[string]any{
		"earlier": strings.TrimSpace(earlierID),
		"later":   strings.TrimSpace(laterID),
	})
	return true
}
