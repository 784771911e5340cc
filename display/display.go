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

// Package display describes the renderer surface used by the snapping
// harness: identifiers, colors, display items and the display list builder.
//
// Layout space uses a y-down coordinate system with the origin at the top
// left corner of the canvas.  Rectangles are stored as [rect.Rect] values,
// where LLx/LLy hold the minimum coordinates and URx/URy the maximum
// coordinates.
package display

import (
	"fmt"

	"seehuhn.de/go/geom/rect"
)

// PipelineID identifies the pipeline a display list belongs to.
type PipelineID uint32

// SpatialID identifies a node of the spatial tree.  Every display item is
// anchored to a spatial node, which determines its coordinate transform.
type SpatialID struct {
	Pipeline PipelineID
	Index    int
}

// RootSpatialID returns the root scroll node of the given pipeline.
// Items anchored to it are drawn untransformed.
func RootSpatialID(p PipelineID) SpatialID {
	return SpatialID{Pipeline: p, Index: 0}
}

// IsRoot reports whether id refers to a root spatial node.
func (id SpatialID) IsRoot() bool {
	return id.Index == 0
}

// ClipChainID identifies a chain of clips applied to an item in addition
// to its clip rectangle.
type ClipChainID int

// InvalidClipChain means that no clip chain applies: only the item's clip
// rectangle and the canvas bounds constrain drawing.
const InvalidClipChain ClipChainID = -1

// PrimitiveFlags holds per-item rendering hints.
type PrimitiveFlags uint8

const (
	// FlagBackfaceVisible marks items whose back face is drawn.
	FlagBackfaceVisible PrimitiveFlags = 1 << iota
)

// DefaultPrimitiveFlags are the flags used when nothing else is requested.
const DefaultPrimitiveFlags = FlagBackfaceVisible

// CommonItemProperties are shared by all display items.
type CommonItemProperties struct {
	ClipRect  rect.Rect
	ClipChain ClipChainID
	Spatial   SpatialID
	Flags     PrimitiveFlags
}

// Size is the size of a framebuffer in device pixels.
type Size struct {
	Width  int
	Height int
}

// Bounds returns the layout-space rectangle covering a canvas of size s.
func (s Size) Bounds() rect.Rect {
	return rect.Rect{URx: float64(s.Width), URy: float64(s.Height)}
}

// PixelCount returns the number of pixels in a canvas of size s.
func (s Size) PixelCount() int {
	return s.Width * s.Height
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// FontKey identifies a font registered with a renderer.
type FontKey uint32

// FontInstanceKey identifies a font at a given size and rendering setup.
type FontInstanceKey uint32

// FontInstanceFlags modify how the glyphs of a font instance are drawn.
type FontInstanceFlags uint32

const (
	// FlagSubpixelPosition keeps the horizontal glyph position at sub-pixel
	// precision instead of snapping it to the pixel grid.
	FlagSubpixelPosition FontInstanceFlags = 1 << iota
)

// FontRenderMode selects how glyph coverage is turned into pixels.
type FontRenderMode int

const (
	// RenderModeMono draws glyph pixels fully on or fully off.
	RenderModeMono FontRenderMode = iota

	// RenderModeAlpha draws anti-aliased glyphs.
	RenderModeAlpha
)

func (m FontRenderMode) String() string {
	switch m {
	case RenderModeMono:
		return "mono"
	case RenderModeAlpha:
		return "alpha"
	default:
		return fmt.Sprintf("FontRenderMode(%d)", int(m))
	}
}

// SyntheticItalics describes an artificial slant applied to glyph outlines.
type SyntheticItalics struct {
	// Angle is the slant in degrees.  Zero disables synthetic italics.
	Angle float64
}

// ItalicsDisabled returns the setting for upright glyphs.
func ItalicsDisabled() SyntheticItalics {
	return SyntheticItalics{}
}

// IsEnabled reports whether glyphs are slanted.
func (s SyntheticItalics) IsEnabled() bool {
	return s.Angle != 0
}
