package tui

import (
	"scribe-cli/internal/editor"

	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.seenWindowSize = true
		m.resizeRegions()
		return m, nil

	case deselectTimeoutMsg:
		if cell := m.cells[msg.blockID]; cell != nil {
			if cell.handleDeselectTimeout(msg) {
				m.multiAnchor = ""
				m.syncAllSubscriptions()
			}
		}
		return m, nil

	case preventDeselectMsg:
		if cell := m.cells[msg.blockID]; cell != nil {
			cell.handlePreventDeselect(msg)
		}
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		if m.editingTitle {
			return m.updateTitleEditor(msg)
		}
		if m.editing {
			return m.updateBlockEditor(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *appModel) resizeRegions() {
	m.rootRegion.visibleHeight = m.height
	m.rootRegion.contentHeight = m.height
	m.docRegion.visibleHeight = m.bodyHeight()
	m.docRegion.contentHeight = m.contentHeight()
	m.docRegion.clampOffset()
	m.textarea.SetWidth(min(m.width-4, 96))
}

func (m *appModel) bodyHeight() int {
	h := m.height - headerLines - footerLines
	if h < 4 {
		h = 4
	}
	return h
}

// dispatchFocusChange notifies focus watchers, in registration order, that
// focus moved to the target block. A watcher that consumes the event
// (canceling its pending deselect) hides it from watchers registered after
// it, so the cancellation wins same-tick races.
func (m *appModel) dispatchFocusChange(target string) tea.Cmd {
	var cmds []tea.Cmd
	for _, id := range m.watch.focusWatchers() {
		cell := m.cells[id]
		if cell == nil {
			continue
		}
		cmd, consumed := cell.handleFocusChange(target)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if consumed {
			break
		}
	}
	return tea.Batch(cmds...)
}

// selectBlock moves the selection through the full transition: focus
// broadcast to watching cells first (so a previously selected cell can arm
// its deselect window), then the selection change itself.
func (m *appModel) selectBlock(id string) tea.Cmd {
	cmd := m.dispatchFocusChange(id)
	m.state.SelectBlock(id)
	m.multiAnchor = ""
	m.syncAllSubscriptions()
	m.scrollSelectionIntoView()
	return cmd
}

func (m appModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.persist()
		m.saveSession()
		return m, tea.Quit

	case "up", "down":
		delta := 1
		if msg.String() == "up" {
			delta = -1
		}
		if cell := m.selectedCell(); cell != nil {
			_, _ = cell.handleKey(msg, true)
		}
		return m, m.moveSelection(delta)

	case "shift+up", "shift+down":
		delta := 1
		if msg.String() == "shift+up" {
			delta = -1
		}
		if !m.state.MultiSelectionEnabled() {
			m.startMultiSelection()
		}
		m.extendMultiSelection(delta)
		return m, nil

	case "enter":
		cell := m.selectedCell()
		if cell == nil {
			return m, nil
		}
		handled, err := cell.handleKey(msg, true)
		if err != nil {
			m.statusMsg = err.Error()
			return m, nil
		}
		if handled && m.state.SelectedBlockID() != cell.id {
			m.syncCells()
			m.syncAllSubscriptions()
			m.resizeRegions()
			m.persist()
			return m, m.dispatchFocusChange(m.state.SelectedBlockID())
		}
		return m, nil

	case "backspace", "delete":
		cell := m.selectedCell()
		if cell == nil {
			return m, nil
		}
		handled, _ := cell.handleKey(msg, true)
		if handled {
			m.syncCells()
			m.syncAllSubscriptions()
			m.resizeRegions()
			m.persist()
			if sel := m.state.SelectedBlockID(); sel != "" {
				return m, m.dispatchFocusChange(sel)
			}
		}
		return m, nil

	case "esc":
		if m.state.MultiSelectionEnabled() {
			m.state.ToggleMultiSelection(false)
			m.multiAnchor = ""
			m.syncAllSubscriptions()
			return m, nil
		}
		if cell := m.selectedCell(); cell != nil {
			_, _ = cell.handleKey(msg, true)
			m.syncAllSubscriptions()
		}
		return m, nil

	case "i":
		return m.startBlockEditor()

	case "t":
		m.editingTitle = true
		m.titleInput.SetValue(m.docTitle())
		return m, m.titleInput.Focus()

	case "v":
		if m.state.MultiSelectionEnabled() {
			m.state.ToggleMultiSelection(false)
			m.multiAnchor = ""
		} else {
			m.startMultiSelection()
		}
		m.syncAllSubscriptions()
		return m, nil

	case "alt+up", "ctrl+k":
		m.moveBlock(-1)
		return m, nil

	case "alt+down", "ctrl+j":
		m.moveBlock(1)
		return m, nil

	case "ctrl+b":
		m.mergeSelected(editor.MergeBackward)
		return m, nil

	case "ctrl+f":
		m.mergeSelected(editor.MergeForward)
		return m, nil

	case "r":
		if cell := m.selectedCell(); cell != nil && cell.renderErr != nil {
			cell.renderErr = nil
			m.statusMsg = "retrying render"
			return m, nil
		}
		if cell := m.selectedCell(); cell != nil {
			_, _ = cell.handleKey(msg, true)
		}
		return m, nil

	case "L":
		m.toggleLock()
		return m, nil

	default:
		// Everything else is typing activity on the selected cell.
		if cell := m.selectedCell(); cell != nil {
			_, _ = cell.handleKey(msg, true)
		}
		return m, nil
	}
}

func (m *appModel) moveSelection(delta int) tea.Cmd {
	blocks := m.state.Blocks()
	if len(blocks) == 0 {
		return nil
	}
	sel := m.state.SelectedBlockID()
	if sel == "" {
		return m.selectBlock(blocks[0].ID)
	}
	idx := m.state.BlockIndex(sel) + delta
	if idx < 0 || idx >= len(blocks) {
		return nil
	}
	return m.selectBlock(blocks[idx].ID)
}

func (m *appModel) startMultiSelection() {
	sel := m.state.SelectedBlockID()
	if sel == "" {
		blocks := m.state.Blocks()
		if len(blocks) == 0 {
			return
		}
		sel = blocks[0].ID
	}
	m.state.ToggleMultiSelection(true)
	m.state.MultiSelect(sel, sel)
	m.multiAnchor = sel
	m.syncAllSubscriptions()
}

// extendMultiSelection pushes the focus edge of the anchored run by delta.
func (m *appModel) extendMultiSelection(delta int) {
	if m.multiAnchor == "" {
		return
	}
	blocks := m.state.Blocks()
	focus := m.multiAnchor
	for _, b := range blocks {
		if !m.state.IsMultiSelected(b.ID) {
			continue
		}
		focus = b.ID
		if delta < 0 {
			break
		}
	}
	idx := m.state.BlockIndex(focus) + delta
	if idx < 0 || idx >= len(blocks) {
		return
	}
	m.state.MultiSelect(m.multiAnchor, blocks[idx].ID)
	m.syncAllSubscriptions()
}

// moveBlock reorders the selected block with scroll preservation: capture
// the row's viewport-relative position, apply the move, then restore the
// offset so the block stays visually stationary.
func (m *appModel) moveBlock(delta int) {
	sel := m.state.SelectedBlockID()
	cell := m.cells[sel]
	if sel == "" || cell == nil {
		return
	}
	if m.state.IsLocked() {
		m.statusMsg = "document is locked"
		return
	}

	cell.captureRowOffset(m.rowTop(sel), m.docRegion.offset)
	if !m.state.MoveBlock(sel, delta) {
		cell.hasCaptured = false
		return
	}
	m.resizeRegions()
	cell.restoreRowOffset(m.docRegion, m.rowTop(sel))
	m.persist()
}

func (m *appModel) mergeSelected(dir editor.MergeDirection) {
	cell := m.selectedCell()
	if cell == nil {
		return
	}
	if m.state.IsLocked() {
		m.statusMsg = "document is locked"
		return
	}
	if cell.requestMerge(dir) {
		m.syncCells()
		m.syncAllSubscriptions()
		m.resizeRegions()
		m.persist()
		m.statusMsg = "merged"
	}
}

func (m *appModel) toggleLock() {
	doc, ok := m.state.Document()
	if !ok {
		return
	}
	locked := m.state.SetDocumentLocked(!doc.Locked)
	m.persist()
	if locked {
		m.statusMsg = "document locked"
	} else {
		m.statusMsg = "document unlocked"
	}
}

// --- block content editing (textarea) ---

func (m appModel) startBlockEditor() (tea.Model, tea.Cmd) {
	cell := m.selectedCell()
	if cell == nil {
		return m, nil
	}
	blk, ok := m.state.Block(cell.id)
	if !ok {
		return m, nil
	}
	if m.state.IsLocked() {
		m.statusMsg = "document is locked"
		return m, nil
	}
	cell.typingActivity()
	m.editing = true
	m.textarea.SetValue(blk.Content())
	return m, m.textarea.Focus()
}

func (m appModel) updateBlockEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+s":
		if cell := m.selectedCell(); cell != nil {
			if blk, ok := m.state.Block(cell.id); ok {
				cell.callbacks().OnChange(blk.WithContent(m.textarea.Value()).Attributes)
			}
		}
		m.editing = false
		m.textarea.Blur()
		m.state.StopTyping()
		m.syncAllSubscriptions()
		m.resizeRegions()
		m.persist()
		return m, nil
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m appModel) updateTitleEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.state.RenameDocument(m.titleInput.Value())
		m.editingTitle = false
		m.titleInput.Blur()
		m.persist()
		return m, nil
	case "esc":
		m.editingTitle = false
		m.titleInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	return m, cmd
}

// --- mouse ---

func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			delta := 3
			if msg.Button == tea.MouseButtonWheelUp {
				delta = -3
			}
			m.docRegion.offset += delta
			m.docRegion.clampOffset()
			// Wheel scrolling moves content under a stationary pointer; the
			// cell under it must suppress hover until genuine movement.
			if id, ok := m.blockAt(msg.X, msg.Y); ok {
				if cell := m.cells[id]; cell != nil {
					cell.handleWheel()
				}
			}
			return m, nil

		case tea.MouseButtonLeft:
			if id, ok := m.blockAt(msg.X, msg.Y); ok {
				return m, m.selectBlock(id)
			}
			return m, nil
		}
		return m, nil

	case tea.MouseActionMotion:
		m.mouseX, m.mouseY = msg.X, msg.Y
		hit, hitOK := m.blockAt(msg.X, msg.Y)
		for _, b := range m.state.Blocks() {
			cell := m.cells[b.ID]
			if cell == nil {
				continue
			}
			cell.handlePointer(msg.X, msg.Y, hitOK && hit == b.ID)
		}
		return m, nil
	}
	return m, nil
}
