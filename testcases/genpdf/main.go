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

// Command genpdf writes the display list of every test at every offset
// as a PDF file, for inspection in a PDF viewer.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"seehuhn.de/go/snap/display"
	"seehuhn.de/go/snap/dump"
	"seehuhn.de/go/snap/render"
	"seehuhn.de/go/snap/testcases"
)

func main() {
	size := flag.Int("size", 20, "canvas `width` and height in pixels")
	dir := flag.String("o", "testdata/scenes", "output `directory`")
	flag.Parse()

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		panic(err)
	}
	if err := generate(*dir, *size); err != nil {
		panic(err)
	}
}

// generate writes one PDF file per test and offset into dir.
func generate(dir string, size int) error {
	canvas := display.Size{Width: size, Height: size}
	for _, tc := range testcases.Tests() {
		for _, v := range testcases.Variations() {
			ctx := testcases.NewContext(render.RootPipeline, canvas, 1,
				display.White.ToU(), v)
			b := display.NewBuilder(render.RootPipeline).Begin()
			tc.Producer.Produce(b, ctx)

			name := fmt.Sprintf("%s_%+.2f", tc.Name, v.Offset)
			pdfPath := filepath.Join(dir, name+".pdf")
			if err := dump.WritePDF(pdfPath, b.End(), canvas); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	return nil
}
