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

// Package symbols implements symbol sets, which map single lowercase
// letters to digit codes and glyph files.
//
// A symbol set is stored as a JSON record:
//
//	{
//	  "glyphSet": "calculator",
//	  "displayName": "Pocket Calculator",
//	  "status": "available",
//	  "letters": {
//	    "h": {"code": "4", "glyphFile": "h.svg"},
//	    "p": {"code": "01", "glyphFile": "p.svg"}
//	  }
//	}
//
// Codes are always JSON strings.  A numeric code is rejected, since the
// conversion to a number would lose leading zeros.
package symbols

import (
	"maps"
	"slices"
)

// Code is an opaque digit string such as "01".  Leading and trailing zeros
// are significant.  The zero Code is invalid.
//
// Code deliberately has no numeric accessors; the only way to read the
// value is [Code.String].
type Code struct {
	s string
}

// NewCode returns the code with the given text.
func NewCode(s string) (Code, error) {
	if s == "" {
		return Code{}, errEmptyCode
	}
	return Code{s: s}, nil
}

// MustCode is like [NewCode] but panics if s is empty.
func MustCode(s string) Code {
	c, err := NewCode(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the code text, exactly as given in the symbol set.
func (c Code) String() string {
	return c.s
}

// IsZero reports whether c is the zero Code.
func (c Code) IsZero() bool {
	return c.s == ""
}

// Entry describes the encoding of one letter.
type Entry struct {
	Code     Code
	GlyphRef string // file name of the glyph, relative to the set directory
}

// Status indicates whether a symbol set can be used.
type Status int

const (
	Available Status = iota
	ComingSoon
)

func (s Status) String() string {
	switch s {
	case Available:
		return "available"
	case ComingSoon:
		return "coming_soon"
	default:
		return "unknown"
	}
}

// Set is a symbol set.  Sets are immutable once decoded.
type Set struct {
	ID          string
	DisplayName string
	Status      Status

	// Symbols maps lowercase letters 'a'-'z' to their entries.
	// The map may cover only part of the alphabet.
	Symbols map[rune]Entry
}

// Lookup returns the entry for the letter r.
func (s *Set) Lookup(r rune) (Entry, bool) {
	e, ok := s.Symbols[r]
	return e, ok
}

// Letters returns the letters covered by the set, in alphabetical order.
func (s *Set) Letters() []rune {
	return slices.Sorted(maps.Keys(s.Symbols))
}
