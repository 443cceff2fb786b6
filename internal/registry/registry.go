// Package registry maps block type names to their editing capabilities.
//
// Each block type supplies a human title, a content renderer, and an optional
// wrapper-props generator (attributes -> row chrome hints). No type hierarchy:
// a lookup table plus a typed function set is all the polymorphism needed.
package registry

import (
	"sort"
	"strings"

	"scribe-cli/internal/model"
)

// Callbacks are the editing affordances handed to a renderer. All of them
// dispatch intents against the editor state; none mutate blocks in place.
type Callbacks struct {
	// OnChange requests an attribute update for the rendered block.
	OnChange func(attrs map[string]any)
	// InsertAfter requests insertion of new blocks after the rendered block.
	InsertAfter func(blocks []model.Block)
	// Replace requests replacing the rendered block with other blocks.
	Replace func(blocks []model.Block)
	// Merge requests merging the rendered block with a neighbor.
	Merge func(forward bool)
	// SetFocus requests focus transfer to another block.
	SetFocus func(blockID string, caret model.CaretMarker)
}

// RenderFunc produces the block's displayable content for the given width.
// It may panic on malformed attributes; callers isolate that (the cell's
// failure boundary), so renderers are free to index attributes directly.
type RenderFunc func(attrs map[string]any, width int, cb Callbacks) string

// WrapperPropsFunc derives row chrome hints from attributes (e.g. a badge
// label or an alignment). Optional; nil means no extra props.
type WrapperPropsFunc func(attrs map[string]any) map[string]string

type Descriptor struct {
	Title        string
	Render       RenderFunc
	WrapperProps WrapperPropsFunc
}

type Registry struct {
	types map[model.BlockType]Descriptor
}

func New() *Registry {
	return &Registry{types: map[model.BlockType]Descriptor{}}
}

func (r *Registry) Register(name model.BlockType, d Descriptor) {
	if strings.TrimSpace(string(name)) == "" || d.Render == nil {
		return
	}
	r.types[name] = d
}

func (r *Registry) Lookup(name model.BlockType) (Descriptor, bool) {
	d, ok := r.types[name]
	return d, ok
}

// Title returns the human-readable title for a type, falling back to the raw
// type name for unregistered types so UI labels never come up empty.
func (r *Registry) Title(name model.BlockType) string {
	if d, ok := r.types[name]; ok && strings.TrimSpace(d.Title) != "" {
		return d.Title
	}
	return string(name)
}

// Types returns registered type names, sorted for stable menus.
func (r *Registry) Types() []model.BlockType {
	out := make([]model.BlockType, 0, len(r.types))
	for name := range r.types {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
