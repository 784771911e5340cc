package testcases

import (
	"math"
	"slices"
)

// Clear fills the whole canvas with a sentinel color.  It separates real
// tests, so that no two consecutive renders can share cached output.
var Clear = SnapTest{
	Name:     "clear",
	Producer: clearScene{},
}

var tests = [...]SnapTest{
	// rectangle, no transform/scroll
	{
		Name:     "rect",
		Producer: rectScene{},
	},

	// glyph, no transform/scroll
	{
		Name:     "glyph",
		Producer: glyphScene{},
	},
}

// The offsets pin down the rounding rule near the half-pixel boundary.
// Ties at +0.5 move the geometry down, ties at -0.5 leave it in place.
var variations = [...]Variation{
	{Offset: 0.0, Expected: 0},
	{Offset: 0.1, Expected: 0},
	{Offset: 0.25, Expected: 0},
	{Offset: 0.33, Expected: 0},
	{Offset: 0.49, Expected: 0},
	{Offset: 0.5, Expected: 1},
	{Offset: 0.51, Expected: 1},
	{Offset: -0.1, Expected: 0},
	{Offset: -0.25, Expected: 0},
	{Offset: -0.33, Expected: 0},
	{Offset: -0.49, Expected: 0},
	{Offset: -0.5, Expected: 0},
	{Offset: -0.51, Expected: -1},
}

// Tests returns the real snapping tests in their fixed order.
func Tests() []SnapTest {
	return slices.Clone(tests[:])
}

// Variations returns the offsets every test is run at, in their fixed
// order.
func Variations() []Variation {
	return slices.Clone(variations[:])
}

// Lookup returns the real test with the given name.
func Lookup(name string) (SnapTest, bool) {
	for _, t := range tests {
		if t.Name == name {
			return t, true
		}
	}
	return SnapTest{}, false
}

// SnapCorrection returns the pixel correction for a fractional offset
// under round-half-up snapping.
func SnapCorrection(offset float64) int {
	return int(math.Floor(offset + 0.5))
}
