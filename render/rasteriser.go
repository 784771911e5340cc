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
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// edge is a non-horizontal line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // inverse slope
	dir    float32 // +1 if the edge points down, -1 if it points up
}

func (e *edge) top() float64    { return min(e.y0, e.y1) }
func (e *edge) bottom() float64 { return max(e.y0, e.y1) }

// xAt returns the x coordinate where the line through e crosses height y.
func (e *edge) xAt(y float64) float64 {
	return e.x0 + e.dxdy*(y-e.y0)
}

// Rasteriser computes anti-aliased pixel coverage for filled paths.
// A single instance can be reused for many paths.  Its buffers only
// ever grow, so that steady-state use does not allocate.
type Rasteriser struct {
	// CTM maps path coordinates to device coordinates.
	CTM matrix.Matrix

	// Clip is the device region which receives output.  The coordinates
	// must be integers.
	Clip rect.Rect

	// Flatness is the maximal distance, in device pixels, between a curve
	// and the polygon which replaces it.
	Flatness float64

	// denseLimit is the largest bounding box area, in pixels, for which
	// all scanlines are accumulated at once.  Larger paths are processed
	// one scanline at a time, using an active edge list.
	denseLimit int

	edges   []edge
	active  []int
	cover   []float32 // signed height of edge pieces per pixel; holds the output after resolving
	area    []float32 // cover weighted by the uncovered fraction of the pixel
	touched []bool    // per scanline, in dense mode
	splits  []float64

	haveBox bool
	box     rect.Rect // device space bounding box of the collected edges
}

// NewRasteriser returns a Rasteriser which draws into clip, using the
// identity transformation.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	return &Rasteriser{
		CTM:        matrix.Identity,
		Clip:       clip,
		Flatness:   defaultFlatness,
		denseLimit: denseLimit,
	}
}

// Reset prepares the Rasteriser for drawing into a new clip region.
// The transformation and flatness are restored to their defaults, buffer
// capacity is kept.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness

	r.edges = r.edges[:0]
	r.active = r.active[:0]
	r.cover = r.cover[:0]
	r.area = r.area[:0]
	r.touched = r.touched[:0]
	r.splits = r.splits[:0]
	r.haveBox = false
}

// FillNonZero fills p using the nonzero winding rule.  Coverage values
// in [0, 1] are passed to emit one scanline at a time.  The coverage
// slice is only valid during the call.
func (r *Rasteriser) FillNonZero(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.fill(p, resolveNonZero, emit)
}

// FillEvenOdd fills p using the even-odd rule.  Coverage is reported as
// for [Rasteriser.FillNonZero].
func (r *Rasteriser) FillEvenOdd(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.fill(p, resolveEvenOdd, emit)
}

func (r *Rasteriser) fill(p *path.Data, resolve func(cover, area []float32), emit func(y, xMin int, coverage []float32)) {
	if !r.collect(p) {
		return
	}

	x0 := max(int(math.Floor(r.box.LLx)), int(r.Clip.LLx))
	x1 := min(int(math.Floor(r.box.URx))+1, int(r.Clip.URx))
	y0 := max(int(math.Floor(r.box.LLy)), int(r.Clip.LLy))
	y1 := min(int(math.Floor(r.box.URy))+1, int(r.Clip.URy))
	if x0 >= x1 || y0 >= y1 {
		return
	}

	if (x1-x0)*(y1-y0) <= r.denseLimit {
		r.fillDense(x0, x1, y0, y1, resolve, emit)
	} else {
		r.fillSparse(x0, x1, y0, y1, resolve, emit)
	}
}

// collect converts p into device space edges.  It reports whether any
// edges were found.
func (r *Rasteriser) collect(p *path.Data) bool {
	r.edges = r.edges[:0]
	r.haveBox = false

	var cur, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			cur = p.Coords[k]
			start = cur
			k++
		case path.CmdLineTo:
			r.addEdge(cur, p.Coords[k])
			cur = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.quadTo(cur, p.Coords[k], p.Coords[k+1])
			cur = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.cubeTo(cur, p.Coords[k], p.Coords[k+1], p.Coords[k+2])
			cur = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if cur != start {
				r.addEdge(cur, start)
			}
			cur = start
		}
	}
	return len(r.edges) > 0
}

func (r *Rasteriser) toDevice(p vec.Vec2) vec.Vec2 {
	m := r.CTM
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// deviceLength returns the device space length of the path space vector v.
func (r *Rasteriser) deviceLength(v vec.Vec2) float64 {
	m := r.CTM
	d := vec.Vec2{X: m[0]*v.X + m[2]*v.Y, Y: m[1]*v.X + m[3]*v.Y}
	return d.Length()
}

// addEdge records the segment from a to b, given in path coordinates.
func (r *Rasteriser) addEdge(a, b vec.Vec2) {
	a, b = r.toDevice(a), r.toDevice(b)
	dy := b.Y - a.Y
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}

	e := edge{x0: a.X, y0: a.Y, x1: b.X, y1: b.Y, dxdy: (b.X - a.X) / dy, dir: 1}
	if dy < 0 {
		e.dir = -1
	}
	r.edges = append(r.edges, e)

	ext := rect.Rect{LLx: min(a.X, b.X), LLy: min(a.Y, b.Y), URx: max(a.X, b.X), URy: max(a.Y, b.Y)}
	if !r.haveBox {
		r.box = ext
		r.haveBox = true
		return
	}
	r.box.LLx = min(r.box.LLx, ext.LLx)
	r.box.LLy = min(r.box.LLy, ext.LLy)
	r.box.URx = max(r.box.URx, ext.URx)
	r.box.URy = max(r.box.URy, ext.URy)
}

// quadTo replaces a quadratic Bézier curve by line segments.
func (r *Rasteriser) quadTo(p0, p1, p2 vec.Vec2) {
	dev := r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25))
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		q := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		r.addEdge(prev, q)
		prev = q
	}
}

// cubeTo replaces a cubic Bézier curve by line segments.  The number of
// segments follows Wang's formula.
func (r *Rasteriser) cubeTo(p0, p1, p2, p3 vec.Vec2) {
	dev := max(
		r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2)),
		r.deviceLength(p1.Sub(p2.Mul(2)).Add(p3)),
	)
	n := 1
	if k := math.Sqrt(3 * dev / (4 * r.Flatness)); k > 1 {
		n = int(math.Ceil(k))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		q := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		r.addEdge(prev, q)
		prev = q
	}
}

// Each edge piece inside a pixel contributes its signed height to cover,
// and the same height weighted by the part of the pixel to the right of
// the piece to area.  Walking a scanline from left to right, the coverage
// of a pixel is the cover carried in from the pixels on its left plus its
// own area.

// accumulate adds the contribution of e to scanline y.  The buffers are
// indexed relative to x0.  Contributions left of x0 are folded into the
// first cell, contributions at or right of x1 are dropped.
func (r *Rasteriser) accumulate(e *edge, y int, cover, area []float32, x0, x1 int) {
	top := max(float64(y), e.top())
	bot := min(float64(y+1), e.bottom())
	if bot <= top {
		return
	}

	xa, xb := e.xAt(top), e.xAt(bot)
	left := int(math.Floor(min(xa, xb)))
	right := int(math.Floor(max(xa, xb)))
	if right < x0 {
		c := e.dir * float32(bot-top)
		cover[0] += c
		area[0] += c
		return
	}
	if left >= x1 {
		return
	}

	// cut the edge where it crosses vertical pixel boundaries
	r.splits = append(r.splits[:0], top, bot)
	for x := left + 1; x <= right; x++ {
		ys := e.y0 + (float64(x)-e.x0)/e.dxdy
		if ys > top && ys < bot {
			r.splits = append(r.splits, ys)
		}
	}
	if len(r.splits) > 2 {
		slices.Sort(r.splits)
	}

	for i := 1; i < len(r.splits); i++ {
		lo, hi := r.splits[i-1], r.splits[i]
		if hi <= lo {
			continue
		}
		xm := e.xAt((lo + hi) / 2)
		px := int(math.Floor(xm))
		c := e.dir * float32(hi-lo)
		switch {
		case px < x0:
			cover[0] += c
			area[0] += c
		case px < x1:
			cover[px-x0] += c
			area[px-x0] += c * float32(1-(xm-float64(px)))
		}
	}
}

// resolveNonZero turns accumulated values into nonzero coverage, in place.
func resolveNonZero(cover, area []float32) {
	var carry float32
	for i, a := range area {
		v := carry + a
		carry += cover[i]
		cover[i] = min(abs32(v), 1)
	}
}

// resolveEvenOdd turns accumulated values into even-odd coverage, in place.
func resolveEvenOdd(cover, area []float32) {
	var carry float32
	for i, a := range area {
		v := abs32(carry + a)
		carry += cover[i]
		v -= 2 * float32(math.Floor(float64(v/2)))
		cover[i] = 1 - abs32(1-v)
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// inkSpan returns the range of non-zero entries of coverage.
// If all entries are zero, lo == hi.
func inkSpan(coverage []float32) (lo, hi int) {
	hi = len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	for hi > lo && coverage[hi-1] == 0 {
		hi--
	}
	return lo, hi
}

// fillDense accumulates all scanlines of the bounding box at once.
func (r *Rasteriser) fillDense(x0, x1, y0, y1 int, resolve func(cover, area []float32), emit func(y, xMin int, coverage []float32)) {
	w, h := x1-x0, y1-y0
	r.cover = grow(r.cover, w*h)
	r.area = grow(r.area, w*h)
	r.touched = grow(r.touched, h)

	for i := range r.edges {
		e := &r.edges[i]
		first := max(int(math.Floor(e.top())), y0)
		last := min(int(math.Floor(e.bottom()))+1, y1)
		for y := first; y < last; y++ {
			row := (y - y0) * w
			r.accumulate(e, y, r.cover[row:row+w], r.area[row:row+w], x0, x1)
			r.touched[y-y0] = true
		}
	}

	for j := range h {
		if !r.touched[j] {
			continue
		}
		cov := r.cover[j*w : (j+1)*w]
		resolve(cov, r.area[j*w:(j+1)*w])
		if lo, hi := inkSpan(cov); lo < hi {
			emit(y0+j, x0+lo, cov[lo:hi])
		}
	}
}

// fillSparse processes one scanline at a time, keeping a list of the
// edges which intersect the current scanline.
func (r *Rasteriser) fillSparse(x0, x1, y0, y1 int, resolve func(cover, area []float32), emit func(y, xMin int, coverage []float32)) {
	w := x1 - x0
	r.cover = grow(r.cover, w)
	r.area = grow(r.area, w)

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.top(), b.top())
	})
	r.active = r.active[:0]
	next := 0

	for y := y0; y < y1; y++ {
		yf := float64(y)
		for next < len(r.edges) && r.edges[next].top() < yf+1 {
			r.active = append(r.active, next)
			next++
		}

		// drop edges which end above this scanline
		r.active = slices.DeleteFunc(r.active, func(i int) bool {
			return r.edges[i].bottom() <= yf
		})
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		for _, i := range r.active {
			r.accumulate(&r.edges[i], y, r.cover, r.area, x0, x1)
		}

		resolve(r.cover, r.area)
		if lo, hi := inkSpan(r.cover); lo < hi {
			emit(y, x0+lo, r.cover[lo:hi])
		}
	}
}

// grow returns a zeroed slice of length n, reusing the storage of buf.
func grow[T any](buf []T, n int) []T {
	buf = slices.Grow(buf[:0], n)[:n]
	clear(buf)
	return buf
}

const (
	// defaultFlatness is the default curve tolerance in device pixels.
	defaultFlatness = 0.25

	// denseLimit is the default bounding box area up to which
	// [Rasteriser.fillDense] is used.
	denseLimit = 65536

	// horizontalEdgeThreshold is the smallest height of an edge which
	// contributes to coverage.
	horizontalEdgeThreshold = 1e-10
)
