package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// cellRow is one block's rendered view plus its position in document space
// (rows from the top of the scrollable document, before the scroll offset is
// applied).
type cellRow struct {
	id     string
	top    int
	height int
	view   string
}

func (m *appModel) viewWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

// layoutRows renders every cell at the current width and assigns row
// positions in document order. Layout is recomputed per call; cells cache
// nothing across frames, so positions always reflect current state.
func (m *appModel) layoutRows() []cellRow {
	width := m.viewWidth()
	blocks := m.state.Blocks()
	rows := make([]cellRow, 0, len(blocks))
	top := 0
	for _, b := range blocks {
		cell := m.cells[b.ID]
		if cell == nil {
			continue
		}
		view := cell.View(width)
		h := lipgloss.Height(view)
		rows = append(rows, cellRow{id: b.ID, top: top, height: h, view: view})
		top += h
	}
	return rows
}

func (m *appModel) contentHeight() int {
	total := 0
	for _, r := range m.layoutRows() {
		total += r.height
	}
	return total
}

// rowTop reports the block row's top in document space, or 0 when the block
// is not laid out.
func (m *appModel) rowTop(id string) int {
	for _, r := range m.layoutRows() {
		if r.id == id {
			return r.top
		}
	}
	return 0
}

// blockAt hit-tests a screen coordinate against the laid-out block rows.
func (m *appModel) blockAt(x, y int) (string, bool) {
	if x < 0 || x >= m.viewWidth() {
		return "", false
	}
	docY := y - headerLines + m.docRegion.offset
	if docY < 0 {
		return "", false
	}
	for _, r := range m.layoutRows() {
		if docY >= r.top && docY < r.top+r.height {
			return r.id, true
		}
	}
	return "", false
}

// scrollSelectionIntoView nudges the document offset just enough to bring
// the selected row fully on screen.
func (m *appModel) scrollSelectionIntoView() {
	sel := m.state.SelectedBlockID()
	if sel == "" {
		return
	}
	for _, r := range m.layoutRows() {
		if r.id != sel {
			continue
		}
		if r.top < m.docRegion.offset {
			m.docRegion.offset = r.top
		} else if bottom := r.top + r.height; bottom > m.docRegion.offset+m.bodyHeight() {
			m.docRegion.offset = bottom - m.bodyHeight()
		}
		m.docRegion.clampOffset()
		return
	}
}

func (m appModel) View() string {
	if !m.seenWindowSize {
		return ""
	}
	width := m.viewWidth()

	var b strings.Builder
	b.WriteString(m.viewHeader(width))
	b.WriteByte('\n')

	if m.editing {
		b.WriteString(m.viewEditor())
	} else {
		b.WriteString(m.viewDocument(width))
	}

	b.WriteByte('\n')
	b.WriteString(m.viewFooter(width))
	return b.String()
}

func (m appModel) viewHeader(width int) string {
	title := m.docTitle()
	if m.editingTitle {
		title = m.titleInput.View()
	}
	line := headerStyle.Render(title)
	if doc, ok := m.state.Document(); ok && doc.Locked {
		line += " " + warnStyle.Render("🔒 locked")
	}
	return padRow(width, lipgloss.NewStyle(), " "+line) + "\n" +
		mutedStyle.Render(strings.Repeat("─", width))
}

// viewDocument renders the scrollable block pane: all cells laid out in
// document order, then sliced to the visible window by the scroll offset.
func (m appModel) viewDocument(width int) string {
	rows := m.layoutRows()
	if len(rows) == 0 {
		return mutedStyle.Render("  (empty document — press enter to add a block)") +
			strings.Repeat("\n", m.bodyHeight()-1)
	}

	var doc strings.Builder
	for i, r := range rows {
		doc.WriteString(r.view)
		if i < len(rows)-1 {
			doc.WriteByte('\n')
		}
	}

	lines := strings.Split(doc.String(), "\n")
	visible := m.bodyHeight()
	start := m.docRegion.offset
	if start < 0 {
		start = 0
	}
	if start > len(lines) {
		start = len(lines)
	}
	end := start + visible
	if end > len(lines) {
		end = len(lines)
	}
	window := lines[start:end]

	var out strings.Builder
	for _, ln := range window {
		out.WriteString(ln)
		out.WriteByte('\n')
	}
	for i := len(window); i < visible; i++ {
		out.WriteByte('\n')
	}
	return strings.TrimSuffix(out.String(), "\n")
}

func (m appModel) viewEditor() string {
	label := "editing block"
	if cell := m.selectedCell(); cell != nil {
		if blk, ok := m.state.Block(cell.id); ok {
			label = "editing " + m.reg.Title(blk.Type)
		}
	}
	body := mutedStyle.Render("  "+label) + "\n\n" + m.textarea.View()
	lines := lipgloss.Height(body)
	if pad := m.bodyHeight() - lines; pad > 0 {
		body += strings.Repeat("\n", pad)
	}
	return body
}

func (m appModel) viewFooter(width int) string {
	help := "↑/↓ select · enter new · i edit · v multi · alt+↑/↓ move · ctrl+b/f merge · q quit"
	if m.editing {
		help = "esc/ctrl+s save"
	} else if m.editingTitle {
		help = "enter save · esc cancel"
	}
	status := m.statusMsg
	return mutedStyle.Render(strings.Repeat("─", width)) + "\n" +
		footerStyle.Render(" "+help+"  "+status)
}
