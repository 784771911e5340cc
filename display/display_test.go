package display

import (
	"encoding/json"
	"image/color"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

func TestColorToU(t *testing.T) {
	tests := []struct {
		in   ColorF
		want color.RGBA
	}{
		{Black, color.RGBA{0, 0, 0, 255}},
		{White, color.RGBA{255, 255, 255, 255}},
		{Magenta, color.RGBA{255, 0, 255, 255}},
		{ColorF{0.5, 0.2, 1.5, -1}, color.RGBA{128, 51, 255, 0}},
	}
	for _, test := range tests {
		if got := test.in.ToU(); got != test.want {
			t.Errorf("%v.ToU() = %v, want %v", test.in, got, test.want)
		}
	}
}

func TestFormatHex(t *testing.T) {
	got := FormatHex(color.RGBA{255, 0, 10, 255})
	if got != "[ff,00,0a,ff]" {
		t.Errorf("FormatHex = %q", got)
	}
}

func TestBuilder(t *testing.T) {
	pipeline := PipelineID(7)
	b := NewBuilder(pipeline).Begin()

	common := CommonItemProperties{
		ClipRect:  rect.Rect{LLx: 1, LLy: 2, URx: 3, URy: 4},
		ClipChain: InvalidClipChain,
		Spatial:   RootSpatialID(pipeline),
		Flags:     DefaultPrimitiveFlags,
	}
	glyphs := []GlyphInstance{{Index: 0x41, Point: vec.Vec2{X: 1, Y: 10}}}
	b.PushRect(common, common.ClipRect, Black)
	b.PushText(common, common.ClipRect, glyphs, 3, White, &GlyphOptions{RenderMode: RenderModeMono})

	// the builder must not alias caller-owned data
	glyphs[0].Index = 0

	dl := b.End()
	want := &List{
		Pipeline: pipeline,
		Items: []Item{
			RectItem{Common: common, Bounds: common.ClipRect, Color: Black},
			TextItem{
				Common:  common,
				Bounds:  common.ClipRect,
				Glyphs:  []GlyphInstance{{Index: 0x41, Point: vec.Vec2{X: 1, Y: 10}}},
				Font:    3,
				Color:   White,
				Options: &GlyphOptions{RenderMode: RenderModeMono},
			},
		},
	}
	if d := cmp.Diff(want, dl); d != "" {
		t.Errorf("display list mismatch (-want +got):\n%s", d)
	}

	// Begin starts from scratch, the finished list is unaffected
	b.Begin()
	if b.Len() != 0 {
		t.Errorf("Len after Begin = %d", b.Len())
	}
	if len(dl.Items) != 2 {
		t.Errorf("finished list has %d items, want 2", len(dl.Items))
	}
}

func TestListJSONTags(t *testing.T) {
	b := NewBuilder(1).Begin()
	b.PushRect(CommonItemProperties{ClipChain: InvalidClipChain}, rect.Rect{URx: 1, URy: 1}, Magenta)
	b.PushText(CommonItemProperties{ClipChain: InvalidClipChain}, rect.Rect{}, nil, 1, Black, nil)

	data, err := json.Marshal(b.End())
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, want := range []string{`"type":"rect"`, `"type":"text"`, `"URx":1`} {
		if !strings.Contains(s, want) {
			t.Errorf("encoded list %s does not contain %s", s, want)
		}
	}
	if strings.Contains(s, `"Options"`) {
		t.Errorf("nil glyph options should be omitted: %s", s)
	}
}

func TestFrameBufferLayout(t *testing.T) {
	size := Size{Width: 3, Height: 2}
	if _, err := NewFrameBuffer(make([]byte, 5), size); err == nil {
		t.Error("short buffer accepted")
	}

	pix := make([]byte, size.PixelCount()*4)
	fb, err := NewFrameBuffer(pix, size)
	if err != nil {
		t.Fatal(err)
	}

	red := color.RGBA{255, 0, 0, 255}
	fb.Set(1, 0, red) // top row, stored last

	if i := fb.Offset(1, 0); i != (3+1)*4 {
		t.Errorf("Offset(1, 0) = %d", i)
	}
	if pix[16] != 255 || pix[19] != 255 {
		t.Errorf("pixel not stored in bottom-up order: %v", pix)
	}
	if got := fb.At(1, 0); got != red {
		t.Errorf("At(1, 0) = %v", got)
	}

	img := fb.Image()
	if got := img.RGBAAt(1, 0); got != red {
		t.Errorf("Image().RGBAAt(1, 0) = %v", got)
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{}) {
		t.Errorf("Image().RGBAAt(1, 1) = %v", got)
	}
}
