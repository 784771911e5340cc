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
	"image/color"

	"seehuhn.de/go/snap/display"
)

// FailureClass is the category of a harness failure.  It determines the
// exit code of the command line tool.
type FailureClass string

const (
	// Mismatch means that at least one rendered frame differed from its
	// expected pixel pattern.  The run continued after the mismatch.
	Mismatch FailureClass = "MISMATCH"

	// InvalidConfig means that the harness was set up incorrectly.
	InvalidConfig FailureClass = "INVALID_CONFIG"

	// ClearFailure means that a clear frame did not validate.  Later
	// results would be unreliable, so the run was aborted.
	ClearFailure FailureClass = "CLEAR_FAILURE"

	// RendererFailure means that the renderer returned an error.
	RendererFailure FailureClass = "RENDERER_FAILURE"

	// InvalidFrame means that the renderer returned a frame buffer of the
	// wrong size.
	InvalidFrame FailureClass = "INVALID_FRAME"
)

// ExitCode returns the process exit code for this failure class.
func (fc FailureClass) ExitCode() int {
	switch fc {
	case Mismatch:
		return 1
	case InvalidConfig:
		return 2
	case ClearFailure:
		return 3
	case RendererFailure, InvalidFrame:
		return 4
	default:
		return 10
	}
}

// Error is a classified harness failure.
type Error struct {
	Class   FailureClass
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("snap: %s: %s: %v", e.Class, e.Message, e.Cause)
	}
	return fmt.Sprintf("snap: %s: %s", e.Class, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(class FailureClass, format string, args ...any) *Error {
	return &Error{Class: class, Message: fmt.Sprintf(format, args...)}
}

func wrapError(class FailureClass, cause error, format string, args ...any) *Error {
	return &Error{Class: class, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// MismatchError reports the first pixel of a frame which differs from the
// expected pattern.  Coordinates count from the top left of the canvas.
type MismatchError struct {
	X, Y     int
	Expected color.RGBA
	Actual   color.RGBA
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("pixel (%d,%d) is %s, expected %s",
		e.X, e.Y, display.FormatHex(e.Actual), display.FormatHex(e.Expected))
}

// ClassOf returns the failure class of err.  A bare [MismatchError]
// belongs to [Mismatch].  The second result is false if err carries no
// class.
func ClassOf(err error) (FailureClass, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Class, true
	}
	var m *MismatchError
	if errors.As(err, &m) {
		return Mismatch, true
	}
	return "", false
}
