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

// Package testcases holds the catalog of pixel-snapping tests: the scenes
// to draw, the sub-pixel offsets to draw them at, and the pixel pattern a
// correct renderer must produce for each combination.
package testcases

import (
	"image"
	"image/color"

	"seehuhn.de/go/snap/display"
)

// Context carries the per-combination parameters handed to a Producer.
// The runner creates a fresh Context for every (test, variation) pair.
type Context struct {
	Root       display.SpatialID       // anchor for all emitted items
	Size       display.Size            // framebuffer size, fixed for a run
	FontSize   float64                 // font size in pixels
	Font       display.FontInstanceKey // the test font at FontSize
	Background color.RGBA              // color of pixels not covered by any item

	Offset         float64 // fractional vertical offset under test
	ExpectedOffset int     // pixel correction a correct renderer applies
}

// FontSize returns the pixel size of the test font on a canvas of the
// given size.  The font is half as tall as the canvas is wide.
func FontSize(size display.Size) float64 {
	return 0.5 * float64(size.Width)
}

// NewContext returns the context for rendering variation v on a canvas of
// the given size.  Items are anchored at the root of pipeline p, and font
// must be an instance of the test font at [FontSize].
func NewContext(p display.PipelineID, size display.Size, font display.FontInstanceKey, bg color.RGBA, v Variation) *Context {
	return &Context{
		Root:           display.RootSpatialID(p),
		Size:           size,
		FontSize:       FontSize(size),
		Font:           font,
		Background:     bg,
		Offset:         v.Offset,
		ExpectedOffset: v.Expected,
	}
}

// Expectation describes the pixels a correct renderer produces for a
// scene.  The set of expectation kinds is closed; see RectExpectation.
type Expectation interface {
	isExpectation()
}

// RectExpectation expects a single solid rectangle on a uniform
// background.  The rectangle is given before snapping; Offset is the
// vertical pixel correction to apply before comparing.
type RectExpectation struct {
	Color      color.RGBA
	Background color.RGBA
	Rect       image.Rectangle
	Offset     int
}

func (RectExpectation) isExpectation() {}

// Final returns the rectangle the foreground color is expected in.
func (e RectExpectation) Final() image.Rectangle {
	return e.Rect.Add(image.Pt(0, e.Offset))
}

// Producer emits the display items of a test scene and returns what the
// rendered result must look like.
type Producer interface {
	Produce(b *display.Builder, ctx *Context) Expectation
}

// SnapTest is a named scene.
type SnapTest struct {
	Name     string // lowercase a-z and _ only
	Producer Producer
}

// Variation is a fractional vertical offset together with the pixel
// correction a snapping renderer is expected to apply for it.
type Variation struct {
	Offset   float64
	Expected int
}
