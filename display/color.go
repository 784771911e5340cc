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
	"image/color"
	"math"
)

// ColorF is a straight (non-premultiplied) color with components in [0, 1].
type ColorF struct {
	R, G, B, A float32
}

// Predefined colors.
var (
	Black   = ColorF{0, 0, 0, 1}
	White   = ColorF{1, 1, 1, 1}
	Magenta = ColorF{1, 0, 1, 1}
)

// ToU converts the color to 8 bits per channel, rounding to nearest.
func (c ColorF) ToU() color.RGBA {
	return color.RGBA{
		R: unitToByte(c.R),
		G: unitToByte(c.G),
		B: unitToByte(c.B),
		A: unitToByte(c.A),
	}
}

// Luminance returns the Rec. 709 luma of the color, ignoring alpha.
func (c ColorF) Luminance() float64 {
	return 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
}

func unitToByte(x float32) uint8 {
	v := math.Round(float64(x) * 255)
	return uint8(max(0, min(255, v)))
}

// FormatHex formats c as "[rr,gg,bb,aa]" with two hex digits per channel.
func FormatHex(c color.RGBA) string {
	return fmt.Sprintf("[%02x,%02x,%02x,%02x]", c.R, c.G, c.B, c.A)
}
