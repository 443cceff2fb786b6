package export

import (
	"strings"
	"testing"
	"time"

	"scribe-cli/internal/model"
	"scribe-cli/internal/store"
)

func testDB(t *testing.T) *store.DB {
	t.Helper()
	now := time.Now().UTC()
	db := &store.DB{
		Version:   1,
		Documents: []model.Document{{ID: "doc-x", Title: "Notes", CreatedAt: now, UpdatedAt: now}},
	}
	add := func(typ model.BlockType, attrs map[string]any, valid bool) {
		rank := ""
		if n := len(db.Blocks); n > 0 {
			rank = db.Blocks[n-1].Rank
		}
		r, err := store.RankAfter(rank)
		if err != nil {
			t.Fatalf("rank: %v", err)
		}
		db.Blocks = append(db.Blocks, model.Block{
			ID:         "blk-" + string(rune('a'+len(db.Blocks))),
			DocumentID: "doc-x",
			Type:       typ,
			Attributes: attrs,
			Valid:      valid,
			Rank:       r,
			CreatedAt:  now,
		})
	}
	add(model.BlockHeading, map[string]any{"content": "Intro", "level": float64(2)}, true)
	add(model.BlockParagraph, map[string]any{"content": "hello world"}, true)
	add(model.BlockCode, map[string]any{"content": "x := 1", "language": "go"}, true)
	add(model.BlockQuote, map[string]any{"content": "quoted", "citation": "someone"}, true)
	add(model.BlockParagraph, map[string]any{"content": "broken"}, false)
	add(model.BlockDivider, map[string]any{}, true)
	return db
}

func TestRenderDocumentMarkdown(t *testing.T) {
	out, err := RenderDocumentMarkdown(testDB(t), "doc-x", RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		"# Notes",
		"## Intro",
		"hello world",
		"```go\nx := 1\n```",
		"> quoted",
		"> — someone",
		"---",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "broken") {
		t.Fatalf("invalid block should be skipped by default:\n%s", out)
	}
}

func TestRenderIncludesInvalidOnRequest(t *testing.T) {
	out, err := RenderDocumentMarkdown(testDB(t), "doc-x", RenderOptions{IncludeInvalid: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "broken") {
		t.Fatalf("expected invalid block in output:\n%s", out)
	}
}

func TestRenderUnknownDocument(t *testing.T) {
	_, err := RenderDocumentMarkdown(testDB(t), "doc-nope", RenderOptions{})
	if err == nil {
		t.Fatalf("expected an error for an unknown document")
	}
}

func TestRenderOrderedList(t *testing.T) {
	db := testDB(t)
	r, _ := store.RankAfter(db.Blocks[len(db.Blocks)-1].Rank)
	db.Blocks = append(db.Blocks, model.Block{
		ID: "blk-z", DocumentID: "doc-x", Type: model.BlockList,
		Attributes: map[string]any{"content": "first\nsecond", "ordered": true},
		Valid:      true, Rank: r,
	})
	out, err := RenderDocumentMarkdown(db, "doc-x", RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "1. first\n2. second") {
		t.Fatalf("ordered list not numbered:\n%s", out)
	}
}
