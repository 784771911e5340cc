// Command export writes the snapping test catalog as canonical JSON, for
// use by renderers which are not written in Go.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"

	"seehuhn.de/go/snap/display"
	"seehuhn.de/go/snap/render"
	"seehuhn.de/go/snap/testcases"
)

// fontInstance is the key a renderer hands out for its first font
// instance.
const fontInstance display.FontInstanceKey = 1

func main() {
	size := flag.Int("size", 20, "canvas `width` and height in pixels")
	out := flag.String("o", "testdata/catalog.json", "output `file`")
	flag.Parse()

	data, err := export(*size)
	if err != nil {
		fmt.Fprintln(os.Stderr, "export:", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "export:", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "export:", err)
		os.Exit(1)
	}
}

type jsonCatalog struct {
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	FontSize   float64         `json:"font_size"`
	Tests      []string        `json:"tests"`
	Variations []jsonVariation `json:"variations"`
	Cases      []jsonCase      `json:"cases"`
}

type jsonVariation struct {
	Offset   float64 `json:"offset"`
	Expected int     `json:"expected"`
}

type jsonCase struct {
	Name        string          `json:"name"`
	Test        string          `json:"test"`
	Offset      float64         `json:"offset"`
	Expected    int             `json:"expected"`
	DisplayList *display.List   `json:"display_list"`
	Expectation jsonExpectation `json:"expectation"`
}

type jsonExpectation struct {
	Kind       string `json:"kind"`
	Color      string `json:"color"`
	Background string `json:"background"`
	Rect       [4]int `json:"rect"`  // x0, y0, x1, y1 before the offset
	Final      [4]int `json:"final"` // the rectangle to compare against
}

// export builds the catalog for a square canvas and returns its canonical
// JSON encoding.
func export(size int) ([]byte, error) {
	canvas := display.Size{Width: size, Height: size}
	cat := jsonCatalog{
		Width:    size,
		Height:   size,
		FontSize: testcases.FontSize(canvas),
	}
	for _, t := range testcases.Tests() {
		cat.Tests = append(cat.Tests, t.Name)
	}
	for _, v := range testcases.Variations() {
		cat.Variations = append(cat.Variations, jsonVariation{Offset: v.Offset, Expected: v.Expected})
	}

	all := append([]testcases.SnapTest{testcases.Clear}, testcases.Tests()...)
	for _, t := range all {
		vars := testcases.Variations()
		if t.Name == testcases.Clear.Name {
			vars = []testcases.Variation{{}}
		}
		for _, v := range vars {
			ctx := testcases.NewContext(render.RootPipeline, canvas, fontInstance,
				display.White.ToU(), v)
			b := display.NewBuilder(render.RootPipeline).Begin()
			exp := t.Producer.Produce(b, ctx)

			jexp, err := toJSON(exp)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", t.Name, err)
			}
			cat.Cases = append(cat.Cases, jsonCase{
				Name:        fmt.Sprintf("%s_%+.2f", t.Name, v.Offset),
				Test:        t.Name,
				Offset:      v.Offset,
				Expected:    v.Expected,
				DisplayList: b.End(),
				Expectation: jexp,
			})
		}
	}

	raw, err := json.Marshal(cat)
	if err != nil {
		return nil, err
	}
	return jsoncanonicalizer.Transform(raw)
}

func toJSON(exp testcases.Expectation) (jsonExpectation, error) {
	switch e := exp.(type) {
	case testcases.RectExpectation:
		return jsonExpectation{
			Kind:       "rect",
			Color:      display.FormatHex(e.Color),
			Background: display.FormatHex(e.Background),
			Rect:       rectJSON(e.Rect),
			Final:      rectJSON(e.Final()),
		}, nil
	default:
		return jsonExpectation{}, fmt.Errorf("unsupported expectation %T", exp)
	}
}

func rectJSON(r image.Rectangle) [4]int {
	return [4]int{r.Min.X, r.Min.Y, r.Max.X, r.Max.Y}
}
