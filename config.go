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

import "seehuhn.de/go/snap/display"

// Config controls a [Runner].
type Config struct {
	// Size is the width and height of the square canvas in pixels.  It
	// must be even, so that the centered rectangle has an integer size,
	// and a multiple of 5, so that the baseline of the test font falls on
	// a pixel boundary.
	Size int `json:"size"`

	Dump DumpConfig `json:"dump"`
}

// DumpConfig selects the debug files written for failed frames.
type DumpConfig struct {
	Dir  string `json:"dir,omitempty"`
	PNG  bool   `json:"png,omitempty"`  // frame and 3-panel diff as PNG
	Text bool   `json:"text,omitempty"` // per-pixel hex listing
	PDF  bool   `json:"pdf,omitempty"`  // the display list as a PDF page
}

// Enabled reports whether any debug output is requested.
func (d DumpConfig) Enabled() bool {
	return d.PNG || d.Text || d.PDF
}

// Defaults.
const (
	DefaultSize    = 20
	DefaultDumpDir = "debug"
	maxSize        = 4000
)

// DefaultConfig returns the default harness configuration.
func DefaultConfig() Config {
	return Config{
		Size: DefaultSize,
		Dump: DumpConfig{Dir: DefaultDumpDir},
	}
}

// Validate checks c.  Errors are of class [InvalidConfig].
func (c *Config) Validate() error {
	switch {
	case c.Size <= 0 || c.Size > maxSize:
		return newError(InvalidConfig, "canvas size %d out of range [1, %d]", c.Size, maxSize)
	case c.Size%10 != 0:
		return newError(InvalidConfig, "canvas size %d is not a multiple of 10", c.Size)
	}
	return nil
}

// CanvasSize returns the frame buffer size.
func (c *Config) CanvasSize() display.Size {
	return display.Size{Width: c.Size, Height: c.Size}
}

func (c *Config) dumpDir() string {
	if c.Dump.Dir == "" {
		return DefaultDumpDir
	}
	return c.Dump.Dir
}
