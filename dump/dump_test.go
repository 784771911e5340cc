package dump

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/snap/display"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.RGBA{A: 255}
)

// testFrame returns a 3x2 frame with a red pixel at the top left.
func testFrame() *display.FrameBuffer {
	size := display.Size{Width: 3, Height: 2}
	fb := &display.FrameBuffer{Pix: make([]byte, size.PixelCount()*4), Size: size}
	for y := range size.Height {
		for x := range size.Width {
			fb.Set(x, y, white)
		}
	}
	fb.Set(0, 0, red)
	return fb
}

func TestWritePNG(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "frame.png")
	if err := WritePNG(fname, testFrame()); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("image bounds %v, want 3x2", b)
	}
	if got := color.RGBAModel.Convert(img.At(0, 0)); got != red {
		t.Errorf("top left pixel is %v, want %v", got, red)
	}
	if got := color.RGBAModel.Convert(img.At(0, 1)); got != white {
		t.Errorf("bottom left pixel is %v, want %v", got, white)
	}
}

func TestWriteDiffPNG(t *testing.T) {
	actual := testFrame()
	expected := testFrame()
	expected.Set(0, 0, white) // extra ink in actual
	expected.Set(2, 1, black) // missing ink in actual

	fname := filepath.Join(t.TempDir(), "diff.png")
	if err := WriteDiffPNG(fname, actual, expected); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 9 || b.Dy() != 2 {
		t.Fatalf("image bounds %v, want 9x2", b)
	}

	at := func(x, y int) color.RGBA {
		return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	}
	if got := at(0, 0); got != red {
		t.Errorf("actual panel: got %v, want %v", got, red)
	}
	if got := at(6, 0); got != white {
		t.Errorf("expected panel: got %v, want %v", got, white)
	}
	if got := at(4, 0); got != black {
		t.Errorf("matching pixel: got %v, want black", got)
	}
	if got := at(3, 0); got.R == 0 || got.G != 0 {
		t.Errorf("extra ink: got %v, want red", got)
	}
	if got := at(5, 1); got.G == 0 || got.R != 0 {
		t.Errorf("missing ink: got %v, want green", got)
	}
}

func TestWriteDiffPNGSize(t *testing.T) {
	a := testFrame()
	size := display.Size{Width: 2, Height: 2}
	b := &display.FrameBuffer{Pix: make([]byte, size.PixelCount()*4), Size: size}
	err := WriteDiffPNG(filepath.Join(t.TempDir(), "diff.png"), a, b)
	if err == nil {
		t.Error("frames of different size accepted")
	}
}

func TestFormatText(t *testing.T) {
	var buf strings.Builder
	if err := FormatText(&buf, testFrame()); err != nil {
		t.Fatal(err)
	}
	want := "[ff,00,00,ff], [ff,ff,ff,ff], [ff,ff,ff,ff], \n" +
		"[ff,ff,ff,ff], [ff,ff,ff,ff], [ff,ff,ff,ff], \n"
	if d := cmp.Diff(want, buf.String()); d != "" {
		t.Errorf("text dump (-want +got):\n%s", d)
	}
}

func TestWriteText(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "frame.txt")
	if err := WriteText(fname, testFrame()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "\n"); n != 2 {
		t.Errorf("got %d lines, want 2", n)
	}
}

func TestWritePDF(t *testing.T) {
	bounds := rect.Rect{LLx: 5, LLy: 5.5, URx: 15, URy: 15.5}
	common := display.CommonItemProperties{
		ClipRect:  bounds,
		ClipChain: display.InvalidClipChain,
		Spatial:   display.RootSpatialID(1),
	}
	b := display.NewBuilder(1).Begin()
	b.PushRect(common, bounds, display.Black)
	b.PushText(common, bounds, []display.GlyphInstance{
		{Index: 0x41, Point: vec.Vec2{X: 5, Y: 13.5}},
	}, 1, display.Black, nil)

	fname := filepath.Join(t.TempDir(), "scene.pdf")
	if err := WritePDF(fname, b.End(), display.Size{Width: 20, Height: 20}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", data[:min(len(data), 8)])
	}
}

// otherItem is a display item kind the PDF writer does not know.
type otherItem struct {
	display.RectItem
}

func TestWritePDFUnsupportedItem(t *testing.T) {
	dl := &display.List{
		Pipeline: 1,
		Items:    []display.Item{otherItem{}},
	}
	fname := filepath.Join(t.TempDir(), "bad.pdf")
	err := WritePDF(fname, dl, display.Size{Width: 20, Height: 20})
	if err == nil || !strings.Contains(err.Error(), "unsupported display item") {
		t.Fatalf("got %v, want an unsupported item error", err)
	}

	// the page is closed before returning, so the file is complete
	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("%%EOF")) {
		t.Error("PDF file was not finished")
	}
}

func TestIntersect(t *testing.T) {
	a := rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 10}
	b := rect.Rect{LLx: 5, LLy: -5, URx: 20, URy: 5}
	got, ok := intersect(a, b)
	want := rect.Rect{LLx: 5, LLy: 0, URx: 10, URy: 5}
	if !ok || got != want {
		t.Errorf("intersect = %v, %t; want %v, true", got, ok, want)
	}

	c := rect.Rect{LLx: 10, LLy: 0, URx: 12, URy: 10}
	if _, ok := intersect(a, c); ok {
		t.Error("touching rectangles reported as overlapping")
	}
}
