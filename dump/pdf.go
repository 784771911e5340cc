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

package dump

import (
	"errors"
	"fmt"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/snap/display"
)

// markSize is the half-width of the cross drawn at each glyph origin.
const markSize = 0.75

// WritePDF stores dl as a single-page PDF file.  One PDF unit corresponds
// to one pixel, and the page has the size of the canvas.
//
// The geometry is written unsnapped, so that the page shows where the
// items are before any pixel grid is applied.  Colors are reduced to
// their luminance.  Rectangles are filled within their clip rectangle.
// The font is not available here, so text items are shown as their
// clipped bounds with a cross at each glyph origin.
func WritePDF(fname string, dl *display.List, size display.Size) error {
	w, h := float64(size.Width), float64(size.Height)
	paper := &pdf.Rectangle{URx: w, URy: h}

	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// display lists use a top-left origin
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, h})

	for i, item := range dl.Items {
		switch it := item.(type) {
		case display.RectItem:
			r, ok := intersect(it.Bounds, it.Common.ClipRect)
			if !ok {
				continue
			}
			page.SetFillColor(color.DeviceGray(it.Color.Luminance()))
			page.Rectangle(r.LLx, r.LLy, r.URx-r.LLx, r.URy-r.LLy)
			page.Fill()

		case display.TextItem:
			if r, ok := intersect(it.Bounds, it.Common.ClipRect); ok {
				page.SetFillColor(color.DeviceGray(it.Color.Luminance()))
				page.Rectangle(r.LLx, r.LLy, r.URx-r.LLx, r.URy-r.LLy)
				page.Fill()
			}
			page.SetStrokeColor(color.DeviceGray(0.5))
			page.SetLineWidth(0.1)
			for _, g := range it.Glyphs {
				x, y := g.Point.X, g.Point.Y
				page.MoveTo(x-markSize, y)
				page.LineTo(x+markSize, y)
				page.MoveTo(x, y-markSize)
				page.LineTo(x, y+markSize)
			}
			if len(it.Glyphs) > 0 {
				page.Stroke()
			}

		default:
			err := fmt.Errorf("dump: item %d: unsupported display item %T", i, item)
			return errors.Join(err, page.Close())
		}
	}

	return page.Close()
}

// intersect returns the overlap of a and b, if any.
func intersect(a, b rect.Rect) (rect.Rect, bool) {
	r := rect.Rect{
		LLx: max(a.LLx, b.LLx),
		LLy: max(a.LLy, b.LLy),
		URx: min(a.URx, b.URx),
		URy: min(a.URy, b.URy),
	}
	return r, r.LLx < r.URx && r.LLy < r.URy
}
