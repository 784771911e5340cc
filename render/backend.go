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
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/path"
)

// Backend selects the rasteriser used for filling shapes.
type Backend int

const (
	// BackendScanline uses the built-in coverage accumulation [Rasteriser].
	BackendScanline Backend = iota

	// BackendVector uses golang.org/x/image/vector.
	BackendVector
)

var backendNames = map[Backend]string{
	BackendScanline: "scanline",
	BackendVector:   "vector",
}

func (b Backend) String() string {
	if name, ok := backendNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Backend(%d)", int(b))
}

// MarshalText implements [encoding.TextMarshaler].
func (b Backend) MarshalText() ([]byte, error) {
	name, ok := backendNames[b]
	if !ok {
		return nil, fmt.Errorf("render: unknown backend %d", int(b))
	}
	return []byte(name), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (b *Backend) UnmarshalText(text []byte) error {
	for k, name := range backendNames {
		if string(text) == name {
			*b = k
			return nil
		}
	}
	return fmt.Errorf("render: unknown backend %q", text)
}

// A filler computes nonzero coverage of a device space path inside clip.
// Coverage is reported row by row, as for [Rasteriser.FillNonZero].
type filler interface {
	fill(p *path.Data, clip image.Rectangle, emit func(y, xMin int, coverage []float32))
}

func newFiller(b Backend) (filler, error) {
	switch b {
	case BackendScanline:
		return &scanlineFiller{r: NewRasteriser(layoutRect(image.Rectangle{}))}, nil
	case BackendVector:
		return &vectorFiller{}, nil
	default:
		return nil, fmt.Errorf("render: unknown backend %d", int(b))
	}
}

type scanlineFiller struct {
	r *Rasteriser
}

func (s *scanlineFiller) fill(p *path.Data, clip image.Rectangle, emit func(y, xMin int, coverage []float32)) {
	s.r.Reset(layoutRect(clip))
	s.r.FillNonZero(p, emit)
}

// vectorFiller rasterises into an alpha mask the size of the clip
// rectangle, and then reports the mask rows.
type vectorFiller struct {
	z    *vector.Rasterizer
	mask *image.Alpha
	row  []float32
}

func (v *vectorFiller) fill(p *path.Data, clip image.Rectangle, emit func(y, xMin int, coverage []float32)) {
	w, h := clip.Dx(), clip.Dy()
	if w <= 0 || h <= 0 {
		return
	}
	if v.z == nil {
		v.z = vector.NewRasterizer(w, h)
	} else {
		v.z.Reset(w, h)
	}
	v.z.DrawOp = draw.Src

	dx, dy := float32(clip.Min.X), float32(clip.Min.Y)
	open := false
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if open {
				v.z.ClosePath()
			}
			q := p.Coords[k]
			v.z.MoveTo(float32(q.X)-dx, float32(q.Y)-dy)
			open = true
			k++
		case path.CmdLineTo:
			q := p.Coords[k]
			v.z.LineTo(float32(q.X)-dx, float32(q.Y)-dy)
			k++
		case path.CmdQuadTo:
			q1, q2 := p.Coords[k], p.Coords[k+1]
			v.z.QuadTo(float32(q1.X)-dx, float32(q1.Y)-dy, float32(q2.X)-dx, float32(q2.Y)-dy)
			k += 2
		case path.CmdCubeTo:
			q1, q2, q3 := p.Coords[k], p.Coords[k+1], p.Coords[k+2]
			v.z.CubeTo(float32(q1.X)-dx, float32(q1.Y)-dy,
				float32(q2.X)-dx, float32(q2.Y)-dy,
				float32(q3.X)-dx, float32(q3.Y)-dy)
			k += 3
		case path.CmdClose:
			if open {
				v.z.ClosePath()
				open = false
			}
		}
	}
	if open {
		v.z.ClosePath()
	}

	if v.mask == nil || v.mask.Rect.Dx() != w || v.mask.Rect.Dy() != h {
		v.mask = image.NewAlpha(image.Rect(0, 0, w, h))
	}
	v.z.Draw(v.mask, v.mask.Bounds(), image.Opaque, image.Point{})

	if cap(v.row) < w {
		v.row = make([]float32, w)
	}
	row := v.row[:w]
	for y := range h {
		pix := v.mask.Pix[y*v.mask.Stride : y*v.mask.Stride+w]
		for i, a := range pix {
			row[i] = float32(a) / 255
		}
		if lo, hi := inkSpan(row); lo < hi {
			emit(clip.Min.Y+y, clip.Min.X+lo, row[lo:hi])
		}
	}
}
