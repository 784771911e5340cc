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

package render

import (
	"image"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Snap rounds a layout coordinate to the nearest pixel boundary.
// Exact halves are rounded up, which moves geometry down the canvas.
func Snap(v float64) float64 {
	return math.Floor(v + 0.5)
}

// SnapRect snaps all four edges of r to the pixel grid.
func SnapRect(r rect.Rect) rect.Rect {
	return rect.Rect{
		LLx: Snap(r.LLx),
		LLy: Snap(r.LLy),
		URx: Snap(r.URx),
		URy: Snap(r.URy),
	}
}

// snapPoint snaps the glyph origin p.  The x coordinate is left alone if
// subpixel is set.
func snapPoint(p vec.Vec2, subpixel bool) vec.Vec2 {
	if !subpixel {
		p.X = Snap(p.X)
	}
	p.Y = Snap(p.Y)
	return p
}

// roundOut returns the smallest pixel aligned rectangle containing r.
func roundOut(r rect.Rect) rect.Rect {
	return rect.Rect{
		LLx: math.Floor(r.LLx),
		LLy: math.Floor(r.LLy),
		URx: math.Ceil(r.URx),
		URy: math.Ceil(r.URy),
	}
}

// pixelRect converts a pixel aligned rectangle to device pixels, clamped
// to bounds.  Inverted rectangles come out empty.
func pixelRect(r rect.Rect, bounds image.Rectangle) image.Rectangle {
	clamp := func(v float64, lo, hi int) int {
		return int(max(float64(lo), min(float64(hi), v)))
	}
	return image.Rectangle{
		Min: image.Point{
			X: clamp(r.LLx, bounds.Min.X, bounds.Max.X),
			Y: clamp(r.LLy, bounds.Min.Y, bounds.Max.Y),
		},
		Max: image.Point{
			X: clamp(r.URx, bounds.Min.X, bounds.Max.X),
			Y: clamp(r.URy, bounds.Min.Y, bounds.Max.Y),
		},
	}
}

// layoutRect converts device pixels back to layout coordinates.
func layoutRect(r image.Rectangle) rect.Rect {
	return rect.Rect{
		LLx: float64(r.Min.X),
		LLy: float64(r.Min.Y),
		URx: float64(r.Max.X),
		URy: float64(r.Max.Y),
	}
}
