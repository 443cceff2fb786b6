package tui

import (
	"strings"

	"scribe-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// Cell chrome layout: a 3-column gutter (mover/settings affordances) next to
// the block content. The gutter shows affordances only while hover UI is
// allowed (4.2); the content region carries the selection highlight.

const gutterWidth = 3

// View renders the cell at the given width, chrome included.
func (c *blockCell) View(width int) string {
	blk, ok := c.state.Block(c.id)
	if !ok {
		return ""
	}
	if width < gutterWidth+8 {
		width = gutterWidth + 8
	}
	contentW := width - gutterWidth

	var body string
	var warn string
	switch {
	case c.renderErr != nil:
		// 4.7: the broken renderer is replaced by a fallback affordance.
		body = errStyle.Render("⚠ This block failed to render.") + "\n" +
			mutedStyle.Render(c.reg.Title(blk.Type)+" · press r to retry, backspace to remove")
		warn = "!"
	case !blk.Valid:
		// Soft error: static preview instead of live editable content.
		body = renderMarkdown(blk.Content(), contentW)
		if body == "" {
			body = mutedStyle.Render("(empty)")
		}
		warn = "?"
	default:
		body = c.renderContent(*blk, contentW, c.callbacks())
		if c.renderErr != nil {
			body = errStyle.Render("⚠ This block failed to render.") + "\n" +
				mutedStyle.Render(c.reg.Title(blk.Type)+" · press r to retry, backspace to remove")
			warn = "!"
		}
	}

	selected := c.state.IsSelected(c.id)
	multi := c.state.IsMultiSelected(c.id)
	hoverUI := c.state.IsHovered(c.id) && !selected && !multi

	header := ""
	if selected || hoverUI {
		label := c.reg.Title(blk.Type)
		if props := c.wrapperProps(*blk); props["badge"] != "" {
			label += " " + badgeStyle.Render(props["badge"])
		}
		if warn != "" {
			label += " " + warnStyle.Render("⚠")
		}
		header = hoverBadgeStyle.Render(label)
	}

	lines := strings.Split(body, "\n")
	var out strings.Builder
	if header != "" {
		out.WriteString(padRow(width, mutedStyle, strings.Repeat(" ", gutterWidth)+header))
		out.WriteByte('\n')
	}
	for i, ln := range lines {
		gutter := c.gutterCell(i, hoverUI, selected, warn)
		row := gutter + ln
		switch {
		case selected:
			out.WriteString(padRow(width, selectedRowStyle, row))
		case multi:
			out.WriteString(padRow(width, multiRowStyle, row))
		default:
			out.WriteString(padRow(width, lipgloss.NewStyle(), row))
		}
		if i < len(lines)-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

// gutterCell renders the 3-column gutter for one content line. The first
// line carries the mover affordance, the second the settings handle.
func (c *blockCell) gutterCell(line int, hoverUI, selected bool, warn string) string {
	switch {
	case hoverUI && line == 0:
		return hoverBadgeStyle.Render("↕") + "  "
	case hoverUI && line == 1:
		return hoverBadgeStyle.Render("⋮") + "  "
	case selected && line == 0:
		return "▌  "
	case warn != "" && line == 0 && !hoverUI && !selected:
		return warnStyle.Render(warn) + "  "
	default:
		return strings.Repeat(" ", gutterWidth)
	}
}

func (c *blockCell) wrapperProps(blk model.Block) (props map[string]string) {
	desc, ok := c.reg.Lookup(blk.Type)
	if !ok || desc.WrapperProps == nil {
		return nil
	}
	// Wrapper props come from the same arbitrary per-type code as Render;
	// isolate them behind the same boundary.
	defer func() {
		if recover() != nil {
			props = nil
		}
	}()
	return desc.WrapperProps(blk.Attributes)
}

// padRow fills a row to the full width so background highlights cover the
// whole line, and cuts overlong rows at the width boundary.
func padRow(width int, style lipgloss.Style, line string) string {
	plainW := xansi.StringWidth(line)
	if plainW < width {
		line += strings.Repeat(" ", width-plainW)
	} else if plainW > width {
		line = xansi.Cut(line, 0, width)
	}
	return style.Render(line)
}
