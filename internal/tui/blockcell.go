package tui

import (
	"fmt"
	"time"

	"scribe-cli/internal/editor"
	"scribe-cli/internal/model"
	"scribe-cli/internal/registry"

	tea "github.com/charmbracelet/bubbletea"
)

// deselectDelay is the coalescing window for focus-outside deselection.
// Two focus transitions inside one window collapse into "focus never left".
const deselectDelay = 50 * time.Millisecond

// deselectTimeoutMsg fires when a cell's deselect window elapses.
type deselectTimeoutMsg struct {
	blockID string
	seq     int
	target  string
}

// preventDeselectMsg lets another component veto a pending deselect
// (e.g. a settings menu that moved focus but wants the block kept selected).
type preventDeselectMsg struct {
	blockID string
}

// blockCell presents one block: it derives UI visibility from editor state,
// translates input events into editor intents, and never stores selection
// itself. All fields below are ephemeral per-instance state that dies with
// the cell.
type blockCell struct {
	id    string
	state *editor.State
	reg   *registry.Registry
	watch *watchRegistry

	// Pointer tracking for move-detection (4.3) and wheel suppression (4.2).
	lastX, lastY int
	hasPointer   bool
	wheelSeen    bool

	// Local hover transition, so hover-on dispatches exactly once per entry.
	hovered bool

	// One-shot viewport offset captured before a reorder (4.4).
	capturedOffset int
	hasCaptured    bool

	// Deselect debounce (4.1).
	deselectSeq       int
	deselectPending   bool
	deselectPrevented bool

	// Render failure caught by the cell's failure boundary (4.7).
	renderErr error
}

func newBlockCell(id string, st *editor.State, reg *registry.Registry, watch *watchRegistry) *blockCell {
	c := &blockCell{id: id, state: st, reg: reg, watch: watch}
	c.syncSubscriptions()
	return c
}

// syncSubscriptions reconciles this cell's document-level subscriptions with
// the editor state. The focus watcher is held exactly while this cell is the
// canonical selected block or the first block of a multi-selection; the
// motion watcher exactly while typing mode is on. Idempotent.
func (c *blockCell) syncSubscriptions() {
	wantFocus := c.state.IsSelected(c.id) || c.state.IsFirstMultiSelected(c.id)
	if !wantFocus && c.deselectPending {
		// The selection already moved on (transfer to another cell, merge,
		// removal); an armed deselect would wipe the new selection when its
		// timer fires, so it is invalidated with the watch.
		c.deselectSeq++
		c.deselectPending = false
	}
	c.watch.setFocusWatch(c.id, wantFocus)

	wantMotion := c.state.IsTyping() && wantFocus
	c.watch.setMotionWatch(c.id, wantMotion)
}

// teardown releases every subscription and invalidates pending timers.
func (c *blockCell) teardown() {
	c.deselectSeq++
	c.deselectPending = false
	c.watch.release(c.id)
}

// --- focus-outside detection (4.1) ---

// handleFocusChange processes a document-level focus transition. consumed is
// true when this cell canceled a pending deselect; the caller must then stop
// dispatching the event to watchers registered after this one.
func (c *blockCell) handleFocusChange(targetBlockID string) (tea.Cmd, bool) {
	if !c.watch.focusWatching(c.id) {
		return nil, false
	}

	if targetBlockID == c.id {
		// Focus stayed (or returned) inside this cell.
		if c.deselectPending {
			c.deselectSeq++
			c.deselectPending = false
			return nil, true
		}
		return nil, false
	}

	// Focus left the cell: schedule a coalesced deselect. Re-scheduling
	// bumps the sequence so an earlier timer can no longer fire.
	c.deselectSeq++
	c.deselectPending = true
	c.deselectPrevented = false
	seq := c.deselectSeq
	target := targetBlockID
	return tea.Tick(deselectDelay, func(time.Time) tea.Msg {
		return deselectTimeoutMsg{blockID: c.id, seq: seq, target: target}
	}), false
}

// handleDeselectTimeout applies a deselect whose window elapsed un-canceled.
// Returns true when the global deselection was dispatched.
func (c *blockCell) handleDeselectTimeout(msg deselectTimeoutMsg) bool {
	if msg.blockID != c.id || msg.seq != c.deselectSeq || !c.deselectPending {
		return false
	}
	c.deselectPending = false
	if c.deselectPrevented {
		c.deselectPrevented = false
		return false
	}
	c.state.ClearSelection()
	c.syncSubscriptions()
	return true
}

func (c *blockCell) handlePreventDeselect(msg preventDeselectMsg) {
	if msg.blockID == c.id && c.deselectPending {
		c.deselectPrevented = true
	}
}

// --- hover arbitration (4.2) + typing-move detection (4.3) ---

// handlePointer processes a pointer position over (inside=true) or off this
// cell. Hover-on dispatches once per transition and is suppressed while the
// block is selected, multi-selected, or right after a wheel gesture (wheel
// scrolling synthesizes motion events under a stationary pointer).
func (c *blockCell) handlePointer(x, y int, inside bool) {
	moved := c.hasPointer && (x != c.lastX || y != c.lastY)

	// Typing mode turns off on measurable movement only: both a previous and
	// a current position must be known and differ in at least one axis.
	if c.watch.motionWatching(c.id) && moved && c.state.IsTyping() {
		c.state.StopTyping()
		c.syncSubscriptions()
	}

	if moved {
		c.wheelSeen = false
	}
	c.lastX, c.lastY = x, y
	c.hasPointer = true

	if !inside {
		if c.hovered {
			c.hovered = false
			c.state.ClearHover(c.id)
		}
		return
	}

	if c.hovered {
		return
	}
	if c.state.IsSelected(c.id) || c.state.IsMultiSelected(c.id) || c.wheelSeen {
		return
	}
	c.hovered = true
	c.state.SetHover(c.id)
}

// handleWheel marks a wheel gesture so the synthetic motion events that
// follow it do not re-trigger hover.
func (c *blockCell) handleWheel() {
	c.wheelSeen = true
}

// --- typing-mode begin (4.3) ---

// typingActivity dispatches start-typing for key-press-class input, but only
// while this block is the selected one. A block that just lost focus in the
// same event tick (split/merge moved focus elsewhere) must not re-enter
// typing mode.
func (c *blockCell) typingActivity() {
	if c.state.IsTyping() {
		return
	}
	if !c.state.IsSelected(c.id) {
		return
	}
	c.state.StartTyping()
	c.syncSubscriptions()
}

// --- keyboard command dispatch (4.5) ---

// handleKey runs the state-free command table. targetSelf reports whether
// the event targets this cell's own editable node (arrow keys act
// regardless). handled=true means the key was consumed.
func (c *blockCell) handleKey(msg tea.KeyMsg, targetSelf bool) (bool, error) {
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyLeft, tea.KeyRight:
		// Arrows do not produce key-press events on every platform; key-down
		// is the fallback typing signal.
		c.typingActivity()
		return false, nil

	case tea.KeyEnter:
		if !targetSelf {
			return false, nil
		}
		if c.state.IsLocked() {
			return true, nil
		}
		idx := c.state.BlockIndex(c.id)
		blk, err := c.state.InsertBlockAt(idx+1, model.DefaultBlockType)
		if err != nil {
			return true, err
		}
		c.state.SelectBlock(blk.ID)
		c.state.SetFocus(blk.ID, model.CaretStart, true)
		c.syncSubscriptions()
		return true, nil

	case tea.KeyBackspace, tea.KeyDelete:
		if !targetSelf {
			return false, nil
		}
		if c.state.IsLocked() {
			return true, nil
		}
		prev, hasPrev := c.state.PreviousBlock(c.id)
		if !c.state.RemoveBlock(c.id) {
			return true, nil
		}
		if hasPrev {
			c.state.SelectBlock(prev.ID)
			c.state.SetFocus(prev.ID, model.CaretEnd, true)
		}
		c.syncSubscriptions()
		return true, nil

	case tea.KeyEscape:
		c.state.ClearSelection()
		c.syncSubscriptions()
		return true, nil

	case tea.KeyRunes, tea.KeySpace:
		if targetSelf {
			c.typingActivity()
		}
		return false, nil
	}
	return false, nil
}

// --- merge coordination (4.6) ---

func (c *blockCell) requestMerge(dir editor.MergeDirection) bool {
	ok := c.state.Merge(c.id, dir)
	if ok {
		c.syncSubscriptions()
	}
	return ok
}

// --- reorder scroll preservation (4.4) ---

// captureRowOffset records the block row's current position within the
// visible viewport, immediately before a reorder.
func (c *blockCell) captureRowOffset(rowTop, viewportOffset int) {
	c.capturedOffset = rowTop - viewportOffset
	c.hasCaptured = true
}

// restoreRowOffset adjusts the nearest scrollable ancestor so the block
// appears visually stationary after the reorder re-render. The capture is
// one-shot: consumed whether or not a scrollable region exists.
func (c *blockCell) restoreRowOffset(region *scrollRegion, newRowTop int) bool {
	if !c.hasCaptured {
		return false
	}
	captured := c.capturedOffset
	c.hasCaptured = false

	target := nearestScrollRegion(region)
	if target == nil {
		return false
	}
	target.offset = newRowTop - captured
	target.clampOffset()
	return true
}

// --- render-failure isolation (4.7) ---

// renderContent runs the block's registered renderer inside a failure
// boundary. A panic is recorded once and surfaces as the fallback warning;
// it never reaches sibling cells or the host.
func (c *blockCell) renderContent(blk model.Block, width int, cb registry.Callbacks) (out string) {
	defer func() {
		if r := recover(); r != nil {
			if c.renderErr == nil {
				c.renderErr = fmt.Errorf("render %s block %s: %v", blk.Type, blk.ID, r)
			}
			out = ""
		}
	}()

	desc, ok := c.reg.Lookup(blk.Type)
	if !ok {
		panic(fmt.Sprintf("unregistered block type %q", blk.Type))
	}
	return desc.Render(blk.Attributes, width, cb)
}

// callbacks builds the editing affordances handed to content renderers.
func (c *blockCell) callbacks() registry.Callbacks {
	return registry.Callbacks{
		OnChange: func(attrs map[string]any) {
			c.state.UpdateBlockAttributes(c.id, attrs)
		},
		InsertAfter: func(blocks []model.Block) {
			idx := c.state.BlockIndex(c.id)
			for i := range blocks {
				blk, err := c.state.InsertBlockAt(idx+1+i, blocks[i].Type)
				if err != nil {
					return
				}
				if len(blocks[i].Attributes) > 0 {
					c.state.UpdateBlockAttributes(blk.ID, blocks[i].Attributes)
				}
			}
		},
		Replace: func(blocks []model.Block) {
			_ = c.state.ReplaceBlock(c.id, blocks)
		},
		Merge: func(forward bool) {
			dir := editor.MergeBackward
			if forward {
				dir = editor.MergeForward
			}
			c.requestMerge(dir)
		},
		SetFocus: func(blockID string, caret model.CaretMarker) {
			c.state.SetFocus(blockID, caret, true)
		},
	}
}
