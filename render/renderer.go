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

// Package render implements a software renderer for display lists.
//
// Rectangle edges, clip rectangles and glyph origins are snapped to the
// pixel grid before rasterisation, unless snapping is disabled.  Output is
// returned as RGBA8 pixels with the rows stored bottom-to-top.
package render

import (
	"errors"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/font/sfnt"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/snap/display"
)

// RootPipeline is the pipeline accepted by [Renderer.Render].
const RootPipeline display.PipelineID = 1

// Config controls a [Renderer].  The zero value selects the scanline
// backend with snapping and frame caching enabled, clearing to white.
type Config struct {
	Backend           Backend        `json:"backend"`
	DisableSnapping   bool           `json:"disableSnapping,omitempty"`
	DisableFrameCache bool           `json:"disableFrameCache,omitempty"`
	ClearColor        display.ColorF `json:"clearColor"`
}

// DefaultConfig returns the configuration used by the command line tools.
func DefaultConfig() Config {
	return Config{
		Backend:    BackendScanline,
		ClearColor: display.White,
	}
}

// Stats counts the work done by a [Renderer].
type Stats struct {
	Frames  int // calls to Render which returned pixels
	Reused  int // frames answered from the frame cache
	Items   int // display items drawn
	Glyphs  int // glyphs drawn
	Dropped int // items fully outside the canvas or their clip
}

// Renderer draws display lists into RGBA8 frame buffers.
// A Renderer is not safe for concurrent use.
type Renderer struct {
	cfg   Config
	clear display.ColorF
	fill  filler

	fonts        map[display.FontKey]*sfnt.Font
	instances    map[display.FontInstanceKey]*fontInstance
	lastFont     display.FontKey
	lastInstance display.FontInstanceKey
	sfntBuf      sfnt.Buffer

	shape path.Data
	cache frameCache
	stats Stats
}

// New creates a Renderer.
func New(cfg Config) (*Renderer, error) {
	fill, err := newFiller(cfg.Backend)
	if err != nil {
		return nil, err
	}
	bg := cfg.ClearColor
	if bg == (display.ColorF{}) {
		bg = display.White
	}
	return &Renderer{
		cfg:       cfg,
		clear:     bg,
		fill:      fill,
		fonts:     make(map[display.FontKey]*sfnt.Font),
		instances: make(map[display.FontInstanceKey]*fontInstance),
	}, nil
}

// RootPipeline returns the pipeline of the display lists accepted by r.
func (r *Renderer) RootPipeline() display.PipelineID {
	return RootPipeline
}

// ClearColor returns the color every frame starts out with.
func (r *Renderer) ClearColor() display.ColorF {
	return r.clear
}

// Stats returns the counters accumulated since r was created.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Render draws dl into a new frame buffer of the given size.  The result
// holds size.Width*size.Height RGBA8 pixels, rows stored bottom-to-top.
//
// If dl and size describe the same frame as the previous call, the
// previous pixels are returned without redrawing.
func (r *Renderer) Render(dl *display.List, size display.Size) ([]byte, error) {
	if dl == nil {
		return nil, errors.New("render: missing display list")
	}
	if size.Width <= 0 || size.Height <= 0 || size.Width > maxCanvas || size.Height > maxCanvas {
		return nil, fmt.Errorf("render: invalid frame size %s", size)
	}
	if dl.Pipeline != RootPipeline {
		return nil, fmt.Errorf("render: unknown pipeline %d", dl.Pipeline)
	}

	var key frameKey
	if !r.cfg.DisableFrameCache {
		var err error
		key, err = fingerprint(dl, size)
		if err != nil {
			return nil, err
		}
		if pix, ok := r.cache.lookup(key); ok {
			r.stats.Frames++
			r.stats.Reused++
			return append([]byte(nil), pix...), nil
		}
	}

	fb := &display.FrameBuffer{
		Pix:  make([]byte, size.PixelCount()*4),
		Size: size,
	}
	bg := r.clear.ToU()
	for i := 0; i < len(fb.Pix); i += 4 {
		fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2], fb.Pix[i+3] = bg.R, bg.G, bg.B, bg.A
	}

	for i, item := range dl.Items {
		var err error
		switch it := item.(type) {
		case display.RectItem:
			err = r.drawRect(fb, it)
		case display.TextItem:
			err = r.drawText(fb, it)
		default:
			err = fmt.Errorf("unsupported display item %T", item)
		}
		if err != nil {
			r.cache.invalidate()
			return nil, fmt.Errorf("render: item %d: %w", i, err)
		}
	}

	if !r.cfg.DisableFrameCache {
		r.cache.store(key, fb.Pix)
	}
	r.stats.Frames++
	return fb.Pix, nil
}

// deviceClip returns the pixels an item may touch.
func (r *Renderer) deviceClip(c display.CommonItemProperties, size display.Size) (image.Rectangle, error) {
	if c.Spatial.Pipeline != RootPipeline {
		return image.Rectangle{}, fmt.Errorf("spatial node of unknown pipeline %d", c.Spatial.Pipeline)
	}
	if !c.Spatial.IsRoot() {
		return image.Rectangle{}, fmt.Errorf("unknown spatial node %d", c.Spatial.Index)
	}
	if c.ClipChain != display.InvalidClipChain {
		return image.Rectangle{}, fmt.Errorf("unknown clip chain %d", c.ClipChain)
	}

	clip := c.ClipRect
	if r.cfg.DisableSnapping {
		clip = roundOut(clip)
	} else {
		clip = SnapRect(clip)
	}
	return pixelRect(clip, image.Rect(0, 0, size.Width, size.Height)), nil
}

func (r *Renderer) drawRect(fb *display.FrameBuffer, it display.RectItem) error {
	clip, err := r.deviceClip(it.Common, fb.Size)
	if err != nil {
		return err
	}
	if clip.Empty() {
		r.stats.Dropped++
		return nil
	}

	b := it.Bounds
	if !r.cfg.DisableSnapping {
		b = SnapRect(b)
	}
	r.shape.Cmds = r.shape.Cmds[:0]
	r.shape.Coords = r.shape.Coords[:0]
	r.shape.
		MoveTo(vec.Vec2{X: b.LLx, Y: b.LLy}).
		LineTo(vec.Vec2{X: b.URx, Y: b.LLy}).
		LineTo(vec.Vec2{X: b.URx, Y: b.URy}).
		LineTo(vec.Vec2{X: b.LLx, Y: b.URy}).
		Close()

	r.fill.fill(&r.shape, clip, paint(fb, it.Color, display.RenderModeAlpha))
	r.stats.Items++
	return nil
}

func (r *Renderer) drawText(fb *display.FrameBuffer, it display.TextItem) error {
	inst, ok := r.instances[it.Font]
	if !ok {
		return fmt.Errorf("unknown font instance %d", it.Font)
	}
	clip, err := r.deviceClip(it.Common, fb.Size)
	if err != nil {
		return err
	}
	if clip.Empty() {
		r.stats.Dropped++
		return nil
	}

	mode, flags := inst.mode, inst.flags
	if it.Options != nil {
		mode, flags = it.Options.RenderMode, it.Options.Flags
	}
	subpixel := flags&display.FlagSubpixelPosition != 0
	emit := paint(fb, it.Color, mode)

	for _, g := range it.Glyphs {
		origin := g.Point
		if !r.cfg.DisableSnapping {
			origin = snapPoint(origin, subpixel)
		}

		r.shape.Cmds = r.shape.Cmds[:0]
		r.shape.Coords = r.shape.Coords[:0]
		err := r.glyphOutline(&r.shape, inst, sfnt.GlyphIndex(g.Index), origin)
		if err != nil {
			return err
		}
		r.fill.fill(&r.shape, clip, emit)
		r.stats.Glyphs++
	}
	r.stats.Items++
	return nil
}

// paint returns a coverage callback which composites c onto fb.
func paint(fb *display.FrameBuffer, c display.ColorF, mode display.FontRenderMode) func(y, xMin int, coverage []float32) {
	return func(y, xMin int, coverage []float32) {
		for i, cov := range coverage {
			a := coverageAlpha(cov, mode)
			if a == 0 {
				continue
			}
			x := xMin + i
			off := fb.Offset(x, y)
			blend(fb.Pix[off:off+4:off+4], c, a)
		}
	}
}

// coverageAlpha converts coverage in [0, 1] to 8-bit alpha.
func coverageAlpha(cov float32, mode display.FontRenderMode) uint8 {
	if mode == display.RenderModeMono {
		if cov >= 0.5 {
			return 255
		}
		return 0
	}
	return uint8(max(0, min(255, math.Round(float64(cov)*255))))
}

// blend composites c with coverage a over the pixel dst.
func blend(dst []byte, c display.ColorF, a uint8) {
	alpha := float64(a) / 255 * float64(c.A)
	if alpha >= 1 {
		u := c.ToU()
		dst[0], dst[1], dst[2], dst[3] = u.R, u.G, u.B, 255
		return
	}
	mix := func(src float32, d byte) byte {
		v := float64(src)*alpha + float64(d)/255*(1-alpha)
		return uint8(max(0, min(255, math.Round(v*255))))
	}
	dst[0] = mix(c.R, dst[0])
	dst[1] = mix(c.G, dst[1])
	dst[2] = mix(c.B, dst[2])
	dst[3] = mix(1, dst[3])
}

// maxCanvas is the largest supported frame width and height.
const maxCanvas = 1 << 14
