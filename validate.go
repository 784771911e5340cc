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

package snap

import (
	"fmt"
	"image"
	"image/color"

	"seehuhn.de/go/snap/display"
	"seehuhn.de/go/snap/testcases"
)

// Validate compares a rendered frame with the expected pixel pattern.
// The pixels are RGBA8, rows stored bottom-to-top.
//
// The comparison is exact.  Pixels are visited top-down and left to
// right, and the first difference is returned as a [*MismatchError].
// A buffer of the wrong length or a canvas without pixels gives an error
// of class [InvalidFrame].
func Validate(pixels []byte, exp testcases.Expectation, size display.Size) error {
	if size.Width <= 0 || size.Height <= 0 {
		return newError(InvalidFrame, "invalid frame size %s", size)
	}
	fb, err := display.NewFrameBuffer(pixels, size)
	if err != nil {
		return wrapError(InvalidFrame, err, "cannot validate frame")
	}

	for y := range size.Height {
		for x := range size.Width {
			want := expectedAt(exp, x, y)
			if got := fb.At(x, y); got != want {
				return &MismatchError{X: x, Y: y, Expected: want, Actual: got}
			}
		}
	}
	return nil
}

// ExpectedFrame returns a frame buffer holding the pattern described by
// exp.
func ExpectedFrame(exp testcases.Expectation, size display.Size) *display.FrameBuffer {
	fb := &display.FrameBuffer{
		Pix:  make([]byte, size.PixelCount()*4),
		Size: size,
	}
	for y := range size.Height {
		for x := range size.Width {
			fb.Set(x, y, expectedAt(exp, x, y))
		}
	}
	return fb
}

func expectedAt(exp testcases.Expectation, x, y int) color.RGBA {
	switch e := exp.(type) {
	case testcases.RectExpectation:
		if image.Pt(x, y).In(e.Final()) {
			return e.Color
		}
		return e.Background
	default:
		panic(fmt.Sprintf("snap: unexpected expectation type %T", exp))
	}
}
