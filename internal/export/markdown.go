// Package export renders documents to portable markdown.
package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"scribe-cli/internal/model"
	"scribe-cli/internal/store"
)

type RenderOptions struct {
	// IncludeInvalid renders blocks whose validity flag is off; they are
	// skipped by default so exports stay clean.
	IncludeInvalid bool
}

// RenderDocumentMarkdown renders one document, blocks in rank order, as a
// single markdown string.
func RenderDocumentMarkdown(db *store.DB, docID string, opt RenderOptions) (string, error) {
	if db == nil {
		return "", fmt.Errorf("missing db")
	}
	doc, ok := db.FindDocument(strings.TrimSpace(docID))
	if !ok {
		return "", store.NotFoundError{Kind: "document", ID: docID}
	}

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(doc.Title)
	if title == "" {
		title = doc.ID
	}
	writeLn("# " + title)

	for _, b := range db.DocumentBlocks(doc.ID) {
		if !b.Valid && !opt.IncludeInvalid {
			continue
		}
		writeLn("")
		writeLn(blockMarkdown(b))
	}
	return buf.String(), nil
}

func blockMarkdown(b model.Block) string {
	content := strings.TrimRight(b.Content(), "\n")
	switch b.Type {
	case model.BlockHeading:
		level := attrInt(b.Attributes, "level", 2)
		if level < 1 {
			level = 1
		}
		if level > 6 {
			level = 6
		}
		return strings.Repeat("#", level) + " " + content

	case model.BlockList:
		marker := "- "
		ordered, _ := b.Attributes["ordered"].(bool)
		var out []string
		for i, ln := range strings.Split(content, "\n") {
			if ordered {
				marker = strconv.Itoa(i+1) + ". "
			}
			out = append(out, marker+ln)
		}
		return strings.Join(out, "\n")

	case model.BlockQuote:
		var out []string
		for _, ln := range strings.Split(content, "\n") {
			out = append(out, "> "+ln)
		}
		if cite := attrString(b.Attributes, "citation"); cite != "" {
			out = append(out, ">", "> — "+cite)
		}
		return strings.Join(out, "\n")

	case model.BlockCode:
		lang := attrString(b.Attributes, "language")
		return "```" + lang + "\n" + content + "\n```"

	case model.BlockDivider:
		return "---"

	case model.BlockImage:
		src := attrString(b.Attributes, "src")
		alt := attrString(b.Attributes, "alt")
		return "![" + alt + "](" + src + ")"

	default:
		return content
	}
}

func attrString(attrs map[string]any, key string) string {
	s, _ := attrs[key].(string)
	return strings.TrimSpace(s)
}

func attrInt(attrs map[string]any, key string, def int) int {
	switch v := attrs[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return def
	}
}
