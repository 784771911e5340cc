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
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// coverageGrid rasterises p into a w×h grid of coverage values.
func coverageGrid(r *Rasteriser, p *path.Data, w, h int, evenOdd bool) [][]float32 {
	grid := make([][]float32, h)
	for y := range grid {
		grid[y] = make([]float32, w)
	}
	emit := func(y, xMin int, coverage []float32) {
		copy(grid[y][xMin:], coverage)
	}
	if evenOdd {
		r.FillEvenOdd(p, emit)
	} else {
		r.FillNonZero(p, emit)
	}
	return grid
}

// TestTriangleCoverage verifies exact coverage values for a simple triangle.
// The triangle (0,0)→(10,0)→(10,1)→close has a diagonal edge y = x/10.
// Each pixel X should have coverage (2X+1)/20: 0.05, 0.15, ..., 0.95.
func TestTriangleCoverage(t *testing.T) {
	triangle := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 1}).
		Close()

	r := NewRasteriser(rect.Rect{URx: 10, URy: 1})
	got := coverageGrid(r, triangle, 10, 1, false)[0]

	const epsilon = 1e-6
	for x := range 10 {
		want := float32(2*x+1) / 20
		if math.Abs(float64(got[x]-want)) > epsilon {
			t.Errorf("pixel %d: expected coverage %.4f, got %.4f", x, want, got[x])
		}
	}
}

// TestAlignedRectIsExact checks that pixel aligned rectangles produce
// coverage of exactly 0 or 1.  Snapping relies on this.
func TestAlignedRectIsExact(t *testing.T) {
	for _, ccw := range []bool{false, true} {
		p := &path.Data{}
		if ccw {
			p.MoveTo(vec.Vec2{X: 3, Y: 2}).
				LineTo(vec.Vec2{X: 3, Y: 9}).
				LineTo(vec.Vec2{X: 12, Y: 9}).
				LineTo(vec.Vec2{X: 12, Y: 2}).
				Close()
		} else {
			p.MoveTo(vec.Vec2{X: 3, Y: 2}).
				LineTo(vec.Vec2{X: 12, Y: 2}).
				LineTo(vec.Vec2{X: 12, Y: 9}).
				LineTo(vec.Vec2{X: 3, Y: 9}).
				Close()
		}

		r := NewRasteriser(rect.Rect{URx: 16, URy: 12})
		grid := coverageGrid(r, p, 16, 12, false)
		for y, row := range grid {
			for x, c := range row {
				want := float32(0)
				if x >= 3 && x < 12 && y >= 2 && y < 9 {
					want = 1
				}
				if c != want {
					t.Errorf("ccw=%t: pixel (%d,%d) has coverage %g, want %g", ccw, x, y, c, want)
				}
			}
		}
	}
}

// TestDenseAndSparseAgree runs every shape through both accumulation
// strategies.
func TestDenseAndSparseAgree(t *testing.T) {
	shapes := map[string]*path.Data{
		"ring":     makeOPath(20, 20, 18, 12),
		"triangle": (&path.Data{}).MoveTo(vec.Vec2{X: 1.5, Y: 0.25}).LineTo(vec.Vec2{X: 38, Y: 20.7}).LineTo(vec.Vec2{X: 4, Y: 39}).Close(),
		"offgrid":  (&path.Data{}).MoveTo(vec.Vec2{X: 5, Y: 5.25}).LineTo(vec.Vec2{X: 15, Y: 5.25}).LineTo(vec.Vec2{X: 15, Y: 15.25}).LineTo(vec.Vec2{X: 5, Y: 15.25}).Close(),
		"partial":  (&path.Data{}).MoveTo(vec.Vec2{X: -10, Y: -3}).LineTo(vec.Vec2{X: 50, Y: 10}).LineTo(vec.Vec2{X: 20, Y: 60}).Close(),
	}
	clip := rect.Rect{URx: 40, URy: 40}

	for name, p := range shapes {
		for _, evenOdd := range []bool{false, true} {
			t.Run(fmt.Sprintf("%s-evenodd=%t", name, evenOdd), func(t *testing.T) {
				dense := NewRasteriser(clip)
				dense.denseLimit = 1 << 30
				sparse := NewRasteriser(clip)
				sparse.denseLimit = 0

				a := coverageGrid(dense, p, 40, 40, evenOdd)
				b := coverageGrid(sparse, p, 40, 40, evenOdd)
				for y := range a {
					for x := range a[y] {
						if d := math.Abs(float64(a[y][x] - b[y][x])); d > 1e-5 {
							t.Fatalf("pixel (%d,%d): dense %g, sparse %g", x, y, a[y][x], b[y][x])
						}
					}
				}
			})
		}
	}
}

func TestEvenOddRing(t *testing.T) {
	ring := makeOPath(20, 20, 18, 12)
	r := NewRasteriser(rect.Rect{URx: 40, URy: 40})

	nonZero := coverageGrid(r, ring, 40, 40, false)
	r.Reset(rect.Rect{URx: 40, URy: 40})
	evenOdd := coverageGrid(r, ring, 40, 40, true)

	near := func(c, want float32) bool {
		return math.Abs(float64(c-want)) < 1e-5
	}

	// the inner circle runs the other way, so both rules leave a hole
	if c := nonZero[20][20]; !near(c, 0) {
		t.Errorf("nonzero: center coverage %g, want 0", c)
	}
	if c := evenOdd[20][20]; !near(c, 0) {
		t.Errorf("even-odd: center coverage %g, want 0", c)
	}
	if c := evenOdd[20][4]; !near(c, 1) {
		t.Errorf("even-odd: ring coverage %g, want 1", c)
	}
	if c := evenOdd[0][0]; c != 0 {
		t.Errorf("even-odd: corner coverage %g, want 0", c)
	}
}

func TestCTM(t *testing.T) {
	unit := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 1, Y: 0}).
		LineTo(vec.Vec2{X: 1, Y: 1}).
		LineTo(vec.Vec2{X: 0, Y: 1}).
		Close()

	r := NewRasteriser(rect.Rect{URx: 10, URy: 10})
	r.CTM = matrix.Matrix{4, 0, 0, 2, 3, 5}
	grid := coverageGrid(r, unit, 10, 10, false)

	var total float32
	for y, row := range grid {
		for x, c := range row {
			total += c
			inside := x >= 3 && x < 7 && y >= 5 && y < 7
			if inside && c != 1 || !inside && c != 0 {
				t.Errorf("pixel (%d,%d) has coverage %g", x, y, c)
			}
		}
	}
	if total != 8 {
		t.Errorf("total coverage %g, want 8", total)
	}
}

func TestClipping(t *testing.T) {
	big := (&path.Data{}).
		MoveTo(vec.Vec2{X: -100, Y: -100}).
		LineTo(vec.Vec2{X: 100, Y: -100}).
		LineTo(vec.Vec2{X: 100, Y: 100}).
		LineTo(vec.Vec2{X: -100, Y: 100}).
		Close()

	r := NewRasteriser(rect.Rect{LLx: 2, LLy: 3, URx: 6, URy: 5})
	rows := 0
	r.FillNonZero(big, func(y, xMin int, coverage []float32) {
		rows++
		if y < 3 || y >= 5 {
			t.Errorf("row %d outside the clip", y)
		}
		if xMin != 2 || len(coverage) != 4 {
			t.Errorf("row %d: span [%d, %d), want [2, 6)", y, xMin, xMin+len(coverage))
		}
		for i, c := range coverage {
			if c != 1 {
				t.Errorf("pixel (%d,%d): coverage %g", xMin+i, y, c)
			}
		}
	})
	if rows != 2 {
		t.Errorf("got %d rows, want 2", rows)
	}
}

func TestEmptyPath(t *testing.T) {
	r := NewRasteriser(rect.Rect{URx: 10, URy: 10})
	flat := (&path.Data{}).
		MoveTo(vec.Vec2{X: 1, Y: 1}).
		LineTo(vec.Vec2{X: 9, Y: 1}).
		Close()
	for _, p := range []*path.Data{{}, flat} {
		r.FillNonZero(p, func(y, xMin int, coverage []float32) {
			t.Errorf("unexpected output in row %d", y)
		})
	}
}
