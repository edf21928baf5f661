// seehuhn.de/go/flipcode - digit codes that read upside down
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

// Package assets holds the symbol sets which ship with the program.
//
// Only some letters of the calculator set come with artwork.  The
// remaining glyphs are synthesized when they are first needed.
package assets

import (
	"embed"
	"io/fs"

	"seehuhn.de/go/flipcode/resolve"
)

// DefaultSet is the ID of the symbol set used when none is chosen.
const DefaultSet = "calculator"

//go:embed sets
var files embed.FS

// FS returns the packaged symbol sets.  Every set is a top-level
// directory.
func FS() fs.FS {
	sub, err := fs.Sub(files, "sets")
	if err != nil {
		panic(err) // unreachable
	}
	return sub
}

// Store returns a read-only store for the packaged symbol sets.
func Store() *resolve.FSStore {
	return &resolve.FSStore{FS: FS()}
}
