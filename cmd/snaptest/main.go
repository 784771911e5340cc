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

// Command snaptest runs the pixel-snapping tests against the software
// renderer.
//
// The exit code is 0 if all frames match, 1 if some frames differ, 2 for
// invalid arguments, 3 if a clear frame failed, and 4 for renderer errors.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"seehuhn.de/go/snap"
	"seehuhn.de/go/snap/internal/ahem"
	"seehuhn.de/go/snap/render"
	"seehuhn.de/go/snap/testcases"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// fileConfig is the layout of the -config file.
type fileConfig struct {
	Harness  snap.Config   `json:"harness"`
	Renderer render.Config `json:"renderer"`
}

// nameList collects the values of a repeatable flag.
type nameList []string

func (l *nameList) String() string { return strings.Join(*l, ",") }

func (l *nameList) Set(s string) error {
	*l = append(*l, s)
	return nil
}

func run(args []string, stdout, stderr io.Writer) int {
	usageError := snap.InvalidConfig.ExitCode()

	fs := flag.NewFlagSet("snaptest", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		size       = fs.Int("size", snap.DefaultSize, "canvas `width` and height in pixels, a multiple of 10")
		noSnap     = fs.Bool("no-snap", false, "disable pixel snapping in the renderer")
		noCache    = fs.Bool("no-cache", false, "disable the renderer frame cache")
		configFile = fs.String("config", "", "read settings from the JSON `file`")
		dumpDir    = fs.String("dump", "", "write debug output for failed frames to `dir`")
		dumpPNG    = fs.Bool("dump-png", false, "write PNG images of failed frames")
		dumpText   = fs.Bool("dump-text", false, "write per-pixel listings of failed frames")
		dumpPDF    = fs.Bool("dump-pdf", false, "write the display lists of failed frames as PDF")
		list       = fs.Bool("list", false, "list the tests and offsets, then exit")
		verbose    = fs.Bool("v", false, "log every rendered frame")
		backend    render.Backend
		only       nameList
	)
	fs.TextVar(&backend, "backend", render.BackendScanline, "rasteriser `name`: scanline or vector")
	fs.Var(&only, "test", "run only the named `test` (repeatable)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return usageError
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "snaptest: unexpected argument %q\n", fs.Arg(0))
		return usageError
	}

	if *list {
		writeCatalog(stdout)
		return 0
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	snap.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer snap.SetLogger(nil)

	cfg := fileConfig{
		Harness:  snap.DefaultConfig(),
		Renderer: render.DefaultConfig(),
	}
	if *configFile != "" {
		if err := loadConfig(*configFile, &cfg); err != nil {
			fmt.Fprintf(stderr, "snaptest: %v\n", err)
			return usageError
		}
	}

	// explicit flags take precedence over the config file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "size":
			cfg.Harness.Size = *size
		case "backend":
			cfg.Renderer.Backend = backend
		case "no-snap":
			cfg.Renderer.DisableSnapping = *noSnap
		case "no-cache":
			cfg.Renderer.DisableFrameCache = *noCache
		case "dump":
			cfg.Harness.Dump.Dir = *dumpDir
		case "dump-png":
			cfg.Harness.Dump.PNG = *dumpPNG
		case "dump-text":
			cfg.Harness.Dump.Text = *dumpText
		case "dump-pdf":
			cfg.Harness.Dump.PDF = *dumpPDF
		}
	})

	tests := testcases.Tests()
	if len(only) > 0 {
		tests = tests[:0]
		for _, name := range only {
			t, ok := testcases.Lookup(name)
			if !ok {
				fmt.Fprintf(stderr, "snaptest: unknown test %q\n", name)
				return usageError
			}
			tests = append(tests, t)
		}
	}

	r, err := render.New(cfg.Renderer)
	if err != nil {
		fmt.Fprintf(stderr, "snaptest: %v\n", err)
		return usageError
	}
	runner, err := snap.NewRunner(r, ahem.TTF(), cfg.Harness)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitCode(err)
	}

	report, err := runner.Run(tests, testcases.Variations())
	for _, f := range report.Failures {
		fmt.Fprintf(stdout, "FAIL %s\n", f)
	}
	fmt.Fprintf(stdout, "%s (backend %s)\n", report.Summary(), cfg.Renderer.Backend)
	if *verbose {
		st := r.Stats()
		fmt.Fprintf(stdout, "renderer: %d frames, %d reused, %d items, %d glyphs\n",
			st.Frames, st.Reused, st.Items, st.Glyphs)
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitCode(err)
	}
	return 0
}

func exitCode(err error) int {
	if class, ok := snap.ClassOf(err); ok {
		return class.ExitCode()
	}
	return snap.FailureClass("").ExitCode()
}

func writeCatalog(w io.Writer) {
	fmt.Fprintln(w, "tests:")
	for _, t := range testcases.Tests() {
		fmt.Fprintf(w, "  %s\n", t.Name)
	}
	fmt.Fprintln(w, "offsets:")
	for _, v := range testcases.Variations() {
		fmt.Fprintf(w, "  %+.2f -> %+d\n", v.Offset, v.Expected)
	}
}

// loadConfig decodes a single JSON document into cfg.  Fields not present
// in the file keep their values.
func loadConfig(fname string, cfg *fileConfig) error {
	data, err := os.ReadFile(fname)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", fname, err)
	}
	if err := ensureSingleJSONDocument(dec); err != nil {
		return fmt.Errorf("decode config %s: %w", fname, err)
	}
	return nil
}

func ensureSingleJSONDocument(dec *json.Decoder) error {
	var trailing any
	if err := dec.Decode(&trailing); err != io.EOF {
		if err == nil {
			return errors.New("unexpected trailing json content")
		}
		return fmt.Errorf("decode trailing json token: %w", err)
	}
	return nil
}
