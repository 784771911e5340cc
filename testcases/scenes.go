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

package testcases

import (
	"image"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/snap/display"
)

// Colors used by the scenes.  The clear color must differ from both the
// test foreground and the renderer background.
var (
	clearColor      = display.Magenta
	foregroundColor = display.Black
)

// GlyphIndex is the glyph drawn by the glyph test.
const GlyphIndex = 0x41

// BaselineRatio is the baseline position as a fraction of the em size,
// as required by the Ahem test font.
const BaselineRatio = 0.8

type clearScene struct{}

func (clearScene) Produce(b *display.Builder, ctx *Context) Expectation {
	bounds := ctx.Size.Bounds()
	b.PushRect(common(ctx, bounds), bounds, clearColor)

	return RectExpectation{
		Color:      clearColor.ToU(),
		Background: ctx.Background,
		Rect:       image.Rect(0, 0, ctx.Size.Width, ctx.Size.Height),
		Offset:     0,
	}
}

// rectScene draws a centered rectangle.
type rectScene struct{}

func (rectScene) Produce(b *display.Builder, ctx *Context) Expectation {
	r := centered(ctx.Size)
	bounds := shifted(r, ctx.Offset)
	b.PushRect(common(ctx, bounds), bounds, foregroundColor)

	return RectExpectation{
		Color:      foregroundColor.ToU(),
		Background: ctx.Background,
		Rect:       r,
		Offset:     ctx.ExpectedOffset,
	}
}

// glyphScene draws a centered glyph of the Ahem font.  Every Ahem glyph
// is a solid box of one em, so the ink fills the centered rectangle when
// the font size is half the canvas size.
type glyphScene struct{}

func (glyphScene) Produce(b *display.Builder, ctx *Context) Expectation {
	r := centered(ctx.Size)
	bounds := shifted(r, ctx.Offset)
	glyphs := []display.GlyphInstance{
		{
			Index: GlyphIndex,
			Point: vec.Vec2{
				X: bounds.LLx,
				Y: bounds.LLy + ctx.FontSize*BaselineRatio,
			},
		},
	}
	b.PushText(common(ctx, bounds), bounds, glyphs, ctx.Font, foregroundColor, nil)

	return RectExpectation{
		Color:      foregroundColor.ToU(),
		Background: ctx.Background,
		Rect:       r,
		Offset:     ctx.ExpectedOffset,
	}
}

// centered returns a rectangle of half the canvas size, centered on the
// canvas.  Integer division rounds towards the top left.
func centered(size display.Size) image.Rectangle {
	w, h := size.Width/2, size.Height/2
	x0 := (size.Width - w) / 2
	y0 := (size.Height - h) / 2
	return image.Rect(x0, y0, x0+w, y0+h)
}

// shifted converts r to layout space and moves it down by dy.
func shifted(r image.Rectangle, dy float64) rect.Rect {
	return rect.Rect{
		LLx: float64(r.Min.X),
		LLy: float64(r.Min.Y) + dy,
		URx: float64(r.Max.X),
		URy: float64(r.Max.Y) + dy,
	}
}

// common returns item properties clipped to bounds and anchored at the
// root spatial node.
func common(ctx *Context, bounds rect.Rect) display.CommonItemProperties {
	return display.CommonItemProperties{
		ClipRect:  bounds,
		ClipChain: display.InvalidClipChain,
		Spatial:   ctx.Root,
		Flags:     display.DefaultPrimitiveFlags,
	}
}
