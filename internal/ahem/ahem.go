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

// Package ahem builds a minimal TrueType font in the style of the Ahem
// test font: every printable ASCII glyph is a solid box one em wide,
// reaching from 0.8 em above the baseline to 0.2 em below it.  The space
// glyph is blank.
//
// Glyph indices equal the ASCII code of the character they represent.
package ahem

import (
	"bytes"
	"sync"
	"time"

	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/maxp"
	"seehuhn.de/go/sfnt/os2"
)

// Font metrics in font design units.
const (
	UnitsPerEm = 1000
	Ascent     = 800
	Descent    = 200
)

// NumGlyphs is the number of glyphs in the font.  Glyph 0 is .notdef.
const NumGlyphs = 128

const (
	firstChar = 0x20
	lastChar  = 0x7E
)

// TTF returns the encoded font.  The returned slice is shared and must not
// be modified.
var TTF = sync.OnceValue(build)

// fontDate is stored in the head and name tables.  A fixed date keeps the
// encoded font identical between runs.
var fontDate = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

func build() []byte {
	info := &sfnt.Font{
		FamilyName: "Ahem Snap",
		Weight:     os2.WeightNormal,
		Width:      os2.WidthNormal,
		IsRegular:  true,

		Version:          0x00010000,
		CreationTime:     fontDate,
		ModificationTime: fontDate,

		Copyright: "Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>",
		PermUse:   os2.PermInstall,

		UnitsPerEm: UnitsPerEm,

		Ascent:    Ascent,
		Descent:   -Descent,
		CapHeight: Ascent,
		XHeight:   Ascent,
	}

	box := boxGlyph()
	glyphs := make(glyf.Glyphs, NumGlyphs)
	widths := make([]funit.Int16, NumGlyphs)
	for gid := range glyphs {
		widths[gid] = UnitsPerEm
		if gid == 0 || gid == ' ' {
			continue // blank
		}
		glyphs[gid] = box
	}
	info.Outlines = &glyf.Outlines{
		Glyphs: glyphs,
		Widths: widths,
		Maxp: &maxp.TTFInfo{
			MaxPoints:   4,
			MaxContours: 1,
			MaxZones:    2,
		},
	}

	subtable := make(cmap.Format4)
	for c := firstChar; c <= lastChar; c++ {
		subtable[uint16(c)] = glyph.ID(c)
	}
	info.CMapTable = cmap.Table{
		{PlatformID: 3, EncodingID: 1}: subtable.Encode(0),
	}

	buf := &bytes.Buffer{}
	if _, err := info.Write(buf); err != nil {
		panic("ahem: " + err.Error())
	}
	return buf.Bytes()
}

// boxGlyph returns a simple glyph with one clockwise rectangular contour
// covering the full em box.
func boxGlyph() *glyf.Glyph {
	box := &glyf.SimpleUnpacked{
		Contours: []glyf.Contour{
			{
				{X: 0, Y: -Descent, OnCurve: true},
				{X: 0, Y: Ascent, OnCurve: true},
				{X: UnitsPerEm, Y: Ascent, OnCurve: true},
				{X: UnitsPerEm, Y: -Descent, OnCurve: true},
			},
		},
	}
	return &glyf.Glyph{
		Rect16: funit.Rect16{
			LLx: 0,
			LLy: -Descent,
			URx: UnitsPerEm,
			URy: Ascent,
		},
		Data: box.Pack(),
	}
}
