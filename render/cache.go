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

package render

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"

	"seehuhn.de/go/snap/display"
)

// frameKey identifies the contents of a frame.
type frameKey [sha256.Size]byte

type frameDesc struct {
	List *display.List `json:"list"`
	Size display.Size  `json:"size"`
}

// fingerprint hashes the canonical JSON form of a frame description.
// Equal display lists give equal keys, independent of how the encoder
// formats numbers.
func fingerprint(dl *display.List, size display.Size) (frameKey, error) {
	raw, err := json.Marshal(frameDesc{List: dl, Size: size})
	if err != nil {
		return frameKey{}, fmt.Errorf("render: encoding display list: %w", err)
	}
	canon, err := jsoncanonicalizer.Transform(raw)
	if err != nil {
		return frameKey{}, fmt.Errorf("render: canonicalizing display list: %w", err)
	}
	return sha256.Sum256(canon), nil
}

// frameCache remembers the most recent frame.
type frameCache struct {
	valid bool
	key   frameKey
	pix   []byte
}

func (c *frameCache) lookup(key frameKey) ([]byte, bool) {
	if !c.valid || c.key != key {
		return nil, false
	}
	return c.pix, true
}

func (c *frameCache) store(key frameKey, pix []byte) {
	c.valid = true
	c.key = key
	c.pix = append(c.pix[:0], pix...)
}

func (c *frameCache) invalidate() {
	c.valid = false
}
