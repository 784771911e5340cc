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

// Package snap checks that a renderer snaps geometry to the pixel grid
// consistently.
//
// A [Runner] draws each test scene from package testcases at a series of
// fractional vertical offsets.  A renderer which rounds with floor(v+0.5)
// moves the scene by a whole number of pixels, so the result can be
// compared byte for byte with a solid block.  A magenta clear frame is
// drawn after every test frame, so that no frame can be answered from the
// output of the previous one.
//
// Pixel differences are collected and reported together.  Clear frames
// which do not validate, and errors returned by the renderer, end the run
// immediately.  See [FailureClass] for the possible outcomes.
package snap
