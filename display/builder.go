// seehuhn.de/go/snap - a pixel-snapping regression harness
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package display

import (
	"encoding/json"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Item is a drawable primitive of a display list.
type Item interface {
	isItem()
}

// RectItem is a solid color fill of a rectangle.
type RectItem struct {
	Common CommonItemProperties
	Bounds rect.Rect
	Color  ColorF
}

func (RectItem) isItem() {}

// MarshalJSON adds a "type" tag so that the item kind survives encoding.
func (it RectItem) MarshalJSON() ([]byte, error) {
	type plain RectItem
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{"rect", plain(it)})
}

// GlyphInstance places a single glyph.  Point is the glyph origin on the
// baseline, in layout space.
type GlyphInstance struct {
	Index uint32
	Point vec.Vec2
}

// GlyphOptions override the render settings of a font instance for a
// single text item.
type GlyphOptions struct {
	RenderMode FontRenderMode
	Flags      FontInstanceFlags
}

// TextItem is a run of glyphs drawn with one font instance and color.
type TextItem struct {
	Common  CommonItemProperties
	Bounds  rect.Rect
	Glyphs  []GlyphInstance
	Font    FontInstanceKey
	Color   ColorF
	Options *GlyphOptions `json:",omitempty"`
}

func (TextItem) isItem() {}

// MarshalJSON adds a "type" tag so that the item kind survives encoding.
func (it TextItem) MarshalJSON() ([]byte, error) {
	type plain TextItem
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{"text", plain(it)})
}

// List is a finished display list.
type List struct {
	Pipeline PipelineID
	Items    []Item
}

// Builder accumulates display items for one scene.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	pipeline PipelineID
	items    []Item
}

// NewBuilder returns a builder for the given pipeline.
func NewBuilder(p PipelineID) *Builder {
	return &Builder{pipeline: p}
}

// Begin starts a new scene, discarding any items pushed so far.
// It returns the builder to allow chaining.
func (b *Builder) Begin() *Builder {
	b.items = b.items[:0]
	return b
}

// Pipeline returns the pipeline the builder was created for.
func (b *Builder) Pipeline() PipelineID {
	return b.pipeline
}

// Len returns the number of items pushed since the last call to Begin.
func (b *Builder) Len() int {
	return len(b.items)
}

// PushRect appends a solid rectangle fill.
func (b *Builder) PushRect(common CommonItemProperties, bounds rect.Rect, color ColorF) {
	b.items = append(b.items, RectItem{
		Common: common,
		Bounds: bounds,
		Color:  color,
	})
}

// PushText appends a glyph run.  The glyph slice is copied.
func (b *Builder) PushText(common CommonItemProperties, bounds rect.Rect, glyphs []GlyphInstance, font FontInstanceKey, color ColorF, opts *GlyphOptions) {
	item := TextItem{
		Common: common,
		Bounds: bounds,
		Glyphs: slices.Clone(glyphs),
		Font:   font,
		Color:  color,
	}
	if opts != nil {
		o := *opts
		item.Options = &o
	}
	b.items = append(b.items, item)
}

// End finishes the scene and returns the display list.  The builder can
// be reused after calling Begin again.
func (b *Builder) End() *List {
	return &List{
		Pipeline: b.pipeline,
		Items:    slices.Clone(b.items),
	}
}
