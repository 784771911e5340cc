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
	"math"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/snap/display"
)

type fontInstance struct {
	font  *sfnt.Font
	ppem  fixed.Int26_6
	flags display.FontInstanceFlags
	mode  display.FontRenderMode
	shear float64 // horizontal displacement per unit of height above the baseline
}

// RegisterFont parses a TrueType or OpenType font and makes it available
// for font instances.
func (r *Renderer) RegisterFont(data []byte) (display.FontKey, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return 0, fmt.Errorf("render: cannot parse font: %w", err)
	}
	r.lastFont++
	key := r.lastFont
	r.fonts[key] = f
	return key, nil
}

// AddFontInstance creates an instance of a registered font at the given
// size in pixels per em.
func (r *Renderer) AddFontInstance(key display.FontKey, size float64, flags display.FontInstanceFlags, mode display.FontRenderMode, italics display.SyntheticItalics) (display.FontInstanceKey, error) {
	f, ok := r.fonts[key]
	if !ok {
		return 0, fmt.Errorf("render: unknown font %d", key)
	}
	if !(size > 0) || size > maxFontSize {
		return 0, fmt.Errorf("render: invalid font size %g", size)
	}
	if mode != display.RenderModeMono && mode != display.RenderModeAlpha {
		return 0, fmt.Errorf("render: invalid render mode %s", mode)
	}
	if math.Abs(italics.Angle) >= 90 {
		return 0, fmt.Errorf("render: invalid italics angle %g", italics.Angle)
	}

	inst := &fontInstance{
		font:  f,
		ppem:  fixed.Int26_6(math.Round(size * 64)),
		flags: flags,
		mode:  mode,
	}
	if italics.IsEnabled() {
		inst.shear = math.Tan(italics.Angle * math.Pi / 180)
	}

	r.lastInstance++
	r.instances[r.lastInstance] = inst
	return r.lastInstance, nil
}

// glyphOutline appends the outline of glyph gid, placed with its origin
// at p, to out.  sfnt outlines use y-down coordinates relative to the
// origin, like layout space.
func (r *Renderer) glyphOutline(out *path.Data, inst *fontInstance, gid sfnt.GlyphIndex, p vec.Vec2) error {
	segs, err := inst.font.LoadGlyph(&r.sfntBuf, gid, inst.ppem, nil)
	if err != nil {
		return fmt.Errorf("glyph %d: %w", gid, err)
	}

	pt := func(q fixed.Point26_6) vec.Vec2 {
		x := float64(q.X) / 64
		y := float64(q.Y) / 64
		return vec.Vec2{X: p.X + x - y*inst.shear, Y: p.Y + y}
	}

	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				out.Close()
			}
			out.MoveTo(pt(s.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			out.LineTo(pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			out.QuadTo(pt(s.Args[0]), pt(s.Args[1]))
		case sfnt.SegmentOpCubeTo:
			out.CubeTo(pt(s.Args[0]), pt(s.Args[1]), pt(s.Args[2]))
		}
	}
	if open {
		out.Close()
	}
	return nil
}

// maxFontSize bounds the pixels per em of font instances, so that glyph
// coordinates stay representable in 26.6 fixed point.
const maxFontSize = 1 << 16
