package model

import "time"

// BlockType names a registered block kind (paragraph, heading, ...).
type BlockType string

const (
	BlockParagraph BlockType = "paragraph"
	BlockHeading   BlockType = "heading"
	BlockList      BlockType = "list"
	BlockQuote     BlockType = "quote"
	BlockCode      BlockType = "code"
	BlockDivider   BlockType = "divider"
	BlockImage     BlockType = "image"
)

// DefaultBlockType is used when inserting a fresh block (e.g. Enter on a cell).
const DefaultBlockType = BlockParagraph

// Block is one discrete, independently editable content unit in a document.
//
// Attributes are block-type specific (e.g. "content", "level", "language").
// Blocks are never mutated in place by the UI; all changes go through
// editor intents so the event log stays authoritative.
type Block struct {
	ID         string         `json:"id"`
	DocumentID string         `json:"documentId"`
	Type       BlockType      `json:"type"`
	Attributes map[string]any `json:"attributes,omitempty"`

	// Valid is cleared by validation (e.g. a code block whose language is
	// unknown, an image-ref whose target is missing). Invalid blocks render
	// as a static preview with a warning affordance instead of live content.
	Valid bool `json:"valid"`

	// Rank orders blocks within a document (lexicographic).
	Rank string `json:"rank,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Content returns the block's "content" attribute as a string ("" if unset).
func (b Block) Content() string {
	if b.Attributes == nil {
		return ""
	}
	s, _ := b.Attributes["content"].(string)
	return s
}

// WithContent returns a copy of the block with the content attribute replaced.
func (b Block) WithContent(s string) Block {
	attrs := make(map[string]any, len(b.Attributes)+1)
	for k, v := range b.Attributes {
		attrs[k] = v
	}
	attrs["content"] = s
	b.Attributes = attrs
	return b
}

type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Locked    bool      `json:"locked"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CaretMarker positions the caret when focus is transferred to a block.
type CaretMarker string

const (
	CaretStart CaretMarker = "start"
	CaretEnd   CaretMarker = "end"
)

// FocusDescriptor records which block holds focus and where the caret sits.
// Collapsed reports whether the in-block selection is a bare caret (no range).
type FocusDescriptor struct {
	BlockID   string      `json:"blockId"`
	Caret     CaretMarker `json:"caret,omitempty"`
	Collapsed bool        `json:"collapsed"`
}

type Event struct {
	ID       string    `json:"id"`
	TS       time.Time `json:"ts"`
	Type     string    `json:"type"`
	EntityID string    `json:"entityId"`
	Payload  any       `json:"payload"`
}
