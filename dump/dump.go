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

// Package dump writes debug representations of rendered frames and
// display lists.
package dump

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"seehuhn.de/go/snap/display"
)

// WritePNG stores fb as a PNG file, top row first.
func WritePNG(fname string, fb *display.FrameBuffer) error {
	return writePNG(fname, fb.Image())
}

// WriteDiffPNG stores a 3-panel comparison image: the actual frame on the
// left, the difference in the middle, and the expected frame on the
// right.
//
// In the middle panel, green marks missing ink (the expected pixel is
// darker), red marks extra ink (the actual pixel is darker), and blue
// marks pixels of equal brightness but different color.  Matching pixels
// are black.
func WriteDiffPNG(fname string, actual, expected *display.FrameBuffer) error {
	if actual.Size != expected.Size {
		return fmt.Errorf("dump: frame size %s differs from expected %s",
			actual.Size, expected.Size)
	}
	w, h := actual.Size.Width, actual.Size.Height

	img := image.NewRGBA(image.Rect(0, 0, w*3, h))
	for y := range h {
		for x := range w {
			a := actual.At(x, y)
			e := expected.At(x, y)
			img.SetRGBA(x, y, a)
			img.SetRGBA(x+w, y, diffColor(e, a))
			img.SetRGBA(x+2*w, y, e)
		}
	}
	return writePNG(fname, img)
}

func diffColor(expected, actual color.RGBA) color.RGBA {
	if expected == actual {
		return color.RGBA{A: 255}
	}
	d := int(luma(actual)) - int(luma(expected))
	switch {
	case d > 0:
		return color.RGBA{G: uint8(d), A: 255}
	case d < 0:
		return color.RGBA{R: uint8(-d), A: 255}
	default:
		return color.RGBA{B: 255, A: 255}
	}
}

func luma(c color.RGBA) uint8 {
	return color.GrayModel.Convert(c).(color.Gray).Y
}

func writePNG(fname string, img image.Image) (err error) {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}

// FormatText writes one line per pixel row of fb, top row first.  Each
// pixel is shown as "[rr,gg,bb,aa], ".
func FormatText(w io.Writer, fb *display.FrameBuffer) error {
	bw := bufio.NewWriter(w)
	for y := range fb.Size.Height {
		for x := range fb.Size.Width {
			bw.WriteString(display.FormatHex(fb.At(x, y)))
			bw.WriteString(", ")
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteText stores the [FormatText] listing of fb in a file.
func WriteText(fname string, fb *display.FrameBuffer) (err error) {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return FormatText(f, fb)
}
