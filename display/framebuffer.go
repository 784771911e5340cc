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
	"fmt"
	"image"
	"image/color"
)

// FrameBuffer is the raw output of a renderer: RGBA8 pixels, tightly
// packed, with rows stored bottom-to-top.  The first stored row is the
// visually lowest row of the canvas.
type FrameBuffer struct {
	Pix  []byte
	Size Size
}

// NewFrameBuffer wraps pix, checking that its length matches size.
func NewFrameBuffer(pix []byte, size Size) (*FrameBuffer, error) {
	if want := size.PixelCount() * 4; len(pix) != want {
		return nil, fmt.Errorf("frame buffer has %d bytes, want %d for %s",
			len(pix), want, size)
	}
	return &FrameBuffer{Pix: pix, Size: size}, nil
}

// Offset returns the index into Pix of the logical pixel (x, y), where y
// counts rows from the top of the canvas.
func (fb *FrameBuffer) Offset(x, y int) int {
	return ((fb.Size.Height-y-1)*fb.Size.Width + x) * 4
}

// At returns the color of the logical pixel (x, y).
func (fb *FrameBuffer) At(x, y int) color.RGBA {
	i := fb.Offset(x, y)
	p := fb.Pix[i : i+4 : i+4]
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// Set changes the color of the logical pixel (x, y).
func (fb *FrameBuffer) Set(x, y int, c color.RGBA) {
	i := fb.Offset(x, y)
	p := fb.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}

// Image returns a top-down copy of the frame buffer.
func (fb *FrameBuffer) Image() *image.RGBA {
	w, h := fb.Size.Width, fb.Size.Height
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		src := fb.Pix[fb.Offset(0, y):][:4*w]
		copy(img.Pix[y*img.Stride:], src)
	}
	return img
}
