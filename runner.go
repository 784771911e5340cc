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

package snap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"seehuhn.de/go/snap/display"
	"seehuhn.de/go/snap/dump"
	"seehuhn.de/go/snap/testcases"
)

// Renderer is the system under test.
type Renderer interface {
	// RootPipeline returns the pipeline display lists must be built for.
	RootPipeline() display.PipelineID

	// ClearColor returns the color of pixels not covered by any item.
	ClearColor() display.ColorF

	RegisterFont(data []byte) (display.FontKey, error)
	AddFontInstance(key display.FontKey, size float64, flags display.FontInstanceFlags,
		mode display.FontRenderMode, italics display.SyntheticItalics) (display.FontInstanceKey, error)

	// Render draws dl and returns size.Width*size.Height RGBA8 pixels,
	// rows stored bottom-to-top.
	Render(dl *display.List, size display.Size) ([]byte, error)
}

// Failure records a frame which did not match its expectation.
type Failure struct {
	Test     string
	Offset   float64
	Expected int // the pixel correction a snapping renderer applies
	Mismatch *MismatchError
}

func (f Failure) String() string {
	return fmt.Sprintf("%s at offset %+.2f (correction %+d): %v",
		f.Test, f.Offset, f.Expected, f.Mismatch)
}

// Report summarizes a call to [Runner.Run].
type Report struct {
	Size     display.Size
	Runs     int // real frames rendered, not counting clears
	Failures []Failure
}

// OK reports whether all frames matched.
func (r *Report) OK() bool {
	return len(r.Failures) == 0
}

// Summary returns a one-line description of the result.
func (r *Report) Summary() string {
	if r.OK() {
		return fmt.Sprintf("%d frames at %s: all passed", r.Runs, r.Size)
	}
	return fmt.Sprintf("%d frames at %s: %d failed", r.Runs, r.Size, len(r.Failures))
}

// Runner drives a [Renderer] through the snapping tests.
//
// A Runner is not safe for concurrent use.
type Runner struct {
	r        Renderer
	cfg      Config
	size     display.Size
	fontSize float64
	font     display.FontInstanceKey
}

// NewRunner prepares r for a test run.  The font is registered once and
// instantiated at half the canvas width.
func NewRunner(r Renderer, font []byte, cfg Config) (*Runner, error) {
	if r == nil {
		return nil, newError(InvalidConfig, "missing renderer")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	size := cfg.CanvasSize()
	fontSize := testcases.FontSize(size)

	key, err := r.RegisterFont(font)
	if err != nil {
		return nil, wrapError(RendererFailure, err, "cannot register font")
	}
	inst, err := r.AddFontInstance(key, fontSize, 0,
		display.RenderModeAlpha, display.ItalicsDisabled())
	if err != nil {
		return nil, wrapError(RendererFailure, err, "cannot add font instance")
	}

	return &Runner{
		r:        r,
		cfg:      cfg,
		size:     size,
		fontSize: fontSize,
		font:     inst,
	}, nil
}

// Run renders every test at every variation and validates the results.
// Each frame is followed by a clear frame.
//
// Mismatches are collected in the report and the run continues.  If there
// were any, the returned error has class [Mismatch].  A clear frame which
// does not validate, a renderer error, or a frame of the wrong size ends
// the run immediately.
func (r *Runner) Run(tests []testcases.SnapTest, variations []testcases.Variation) (*Report, error) {
	log := Logger()
	report := &Report{Size: r.size}

	for _, test := range tests {
		for _, v := range variations {
			log.Debug("render frame",
				"test", test.Name, "offset", v.Offset, "expected", v.Expected)

			dl, exp := r.produce(test, v)
			pixels, err := r.r.Render(dl, r.size)
			if err != nil {
				return report, wrapError(RendererFailure, err,
					"test %s at offset %+.2f", test.Name, v.Offset)
			}
			report.Runs++

			err = Validate(pixels, exp, r.size)
			var mismatch *MismatchError
			switch {
			case errors.As(err, &mismatch):
				f := Failure{
					Test:     test.Name,
					Offset:   v.Offset,
					Expected: v.Expected,
					Mismatch: mismatch,
				}
				report.Failures = append(report.Failures, f)
				log.Error("pixel mismatch",
					"test", f.Test,
					"offset", f.Offset,
					"correction", f.Expected,
					"x", mismatch.X,
					"y", mismatch.Y,
					"actual", display.FormatHex(mismatch.Actual),
					"expected", display.FormatHex(mismatch.Expected))
				r.dump(frameName(test.Name, v.Offset), dl, pixels, exp)
			case err != nil:
				return report, err
			}

			if err := r.clear(); err != nil {
				return report, err
			}
		}
	}

	log.Info(report.Summary())
	if !report.OK() {
		return report, newError(Mismatch, "%d of %d frames differ",
			len(report.Failures), report.Runs)
	}
	return report, nil
}

// produce builds the display list for one test and variation.
func (r *Runner) produce(test testcases.SnapTest, v testcases.Variation) (*display.List, testcases.Expectation) {
	ctx := r.context(v)
	b := display.NewBuilder(r.r.RootPipeline()).Begin()
	exp := test.Producer.Produce(b, ctx)
	return b.End(), exp
}

func (r *Runner) context(v testcases.Variation) *testcases.Context {
	return testcases.NewContext(r.r.RootPipeline(), r.size, r.font,
		r.r.ClearColor().ToU(), v)
}

// clear draws the separator scene and checks it.
func (r *Runner) clear() error {
	dl, exp := r.produce(testcases.Clear, testcases.Variation{})
	pixels, err := r.r.Render(dl, r.size)
	if err != nil {
		return wrapError(RendererFailure, err, "clear frame")
	}
	if err := Validate(pixels, exp, r.size); err != nil {
		return wrapError(ClearFailure, err, "clear frame did not validate")
	}
	return nil
}

// dump writes the debug files for a failed frame.  Errors are logged and
// otherwise ignored.
func (r *Runner) dump(name string, dl *display.List, pixels []byte, exp testcases.Expectation) {
	opt := r.cfg.Dump
	if !opt.Enabled() {
		return
	}
	log := Logger()

	dir := r.cfg.dumpDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn("cannot create dump directory", "dir", dir, "error", err)
		return
	}
	base := filepath.Join(dir, name)

	fb, err := display.NewFrameBuffer(pixels, r.size)
	if err != nil {
		log.Warn("cannot dump frame", "name", name, "error", err)
		return
	}

	var errs []error
	if opt.PNG {
		errs = append(errs,
			dump.WritePNG(base+".png", fb),
			dump.WriteDiffPNG(base+"-diff.png", fb, ExpectedFrame(exp, r.size)))
	}
	if opt.Text {
		errs = append(errs, dump.WriteText(base+".txt", fb))
	}
	if opt.PDF {
		errs = append(errs, dump.WritePDF(base+".pdf", dl, r.size))
	}
	if err := errors.Join(errs...); err != nil {
		log.Warn("cannot write debug output", "name", name, "error", err)
	}
}

// frameName returns the file name stem used for debug output.
func frameName(test string, offset float64) string {
	return fmt.Sprintf("%s_%+.2f", test, offset)
}
