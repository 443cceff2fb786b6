package registry

import (
	"fmt"
	"strings"

	"scribe-cli/internal/model"

	xansi "github.com/charmbracelet/x/ansi"
)

// Default returns a registry with the built-in block types registered.
func Default() *Registry {
	r := New()

	r.Register(model.BlockParagraph, Descriptor{
		Title: "Paragraph",
		Render: func(attrs map[string]any, width int, _ Callbacks) string {
			return wrapText(attrString(attrs, "content"), width)
		},
	})

	r.Register(model.BlockHeading, Descriptor{
		Title: "Heading",
		Render: func(attrs map[string]any, width int, _ Callbacks) string {
			level := attrInt(attrs, "level", 1)
			if level < 1 {
				level = 1
			}
			if level > 6 {
				level = 6
			}
			return wrapText(strings.Repeat("#", level)+" "+attrString(attrs, "content"), width)
		},
		WrapperProps: func(attrs map[string]any) map[string]string {
			return map[string]string{"badge": fmt.Sprintf("H%d", attrInt(attrs, "level", 1))}
		},
	})

	r.Register(model.BlockList, Descriptor{
		Title: "List",
		Render: func(attrs map[string]any, width int, _ Callbacks) string {
			ordered := attrBool(attrs, "ordered")
			lines := strings.Split(attrString(attrs, "content"), "\n")
			var b strings.Builder
			for i, ln := range lines {
				if i > 0 {
					b.WriteByte('\n')
				}
				if ordered {
					b.WriteString(fmt.Sprintf("%d. %s", i+1, ln))
				} else {
					b.WriteString("• " + ln)
				}
			}
			return wrapText(b.String(), width)
		},
		WrapperProps: func(attrs map[string]any) map[string]string {
			if attrBool(attrs, "ordered") {
				return map[string]string{"badge": "1."}
			}
			return map[string]string{"badge": "•"}
		},
	})

	r.Register(model.BlockQuote, Descriptor{
		Title: "Quote",
		Render: func(attrs map[string]any, width int, _ Callbacks) string {
			lines := strings.Split(wrapText(attrString(attrs, "content"), width-2), "\n")
			for i := range lines {
				lines[i] = "│ " + lines[i]
			}
			out := strings.Join(lines, "\n")
			if cite := attrString(attrs, "citation"); cite != "" {
				out += "\n│ — " + cite
			}
			return out
		},
	})

	r.Register(model.BlockCode, Descriptor{
		Title: "Code",
		Render: func(attrs map[string]any, _ int, _ Callbacks) string {
			// Code is never wrapped; horizontal overflow is the viewport's problem.
			lang := attrString(attrs, "language")
			header := "```"
			if lang != "" {
				header += lang
			}
			return header + "\n" + attrString(attrs, "content") + "\n```"
		},
		WrapperProps: func(attrs map[string]any) map[string]string {
			if lang := attrString(attrs, "language"); lang != "" {
				return map[string]string{"badge": lang}
			}
			return nil
		},
	})

	r.Register(model.BlockDivider, Descriptor{
		Title: "Divider",
		Render: func(_ map[string]any, width int, _ Callbacks) string {
			if width < 3 {
				width = 3
			}
			return strings.Repeat("─", width)
		},
	})

	r.Register(model.BlockImage, Descriptor{
		Title: "Image",
		Render: func(attrs map[string]any, width int, _ Callbacks) string {
			// Image blocks must carry a source; rendering without one is a
			// programming error upstream and trips the cell's failure boundary.
			src, ok := attrs["src"].(string)
			if !ok || strings.TrimSpace(src) == "" {
				panic("image block without src attribute")
			}
			label := attrString(attrs, "alt")
			if label == "" {
				label = src
			}
			return wrapText("🖼 "+label+" ("+src+")", width)
		},
	})

	return r
}

func attrString(attrs map[string]any, key string) string {
	if attrs == nil {
		return ""
	}
	s, _ := attrs[key].(string)
	return s
}

func attrInt(attrs map[string]any, key string, def int) int {
	if attrs == nil {
		return def
	}
	switch v := attrs[key].(type) {
	case int:
		return v
	case float64:
		// JSON round-trips numbers as float64.
		return int(v)
	default:
		return def
	}
}

func attrBool(attrs map[string]any, key string) bool {
	if attrs == nil {
		return false
	}
	b, _ := attrs[key].(bool)
	return b
}

func wrapText(s string, width int) string {
	if width < 8 {
		width = 8
	}
	var out strings.Builder
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			out.WriteByte('\n')
		}
		out.WriteString(wrapLine(line, width))
	}
	return out.String()
}

func wrapLine(line string, width int) string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return line
	}
	var b strings.Builder
	cur := 0
	for i, w := range words {
		// Terminal cells, not runes: CJK and emoji occupy two columns.
		ww := xansi.StringWidth(w)
		if i == 0 {
			b.WriteString(w)
			cur = ww
			continue
		}
		if cur+1+ww > width {
			b.WriteByte('\n')
			b.WriteString(w)
			cur = ww
			continue
		}
		b.WriteByte(' ')
		b.WriteString(w)
		cur += 1 + ww
	}
	return b.String()
}
