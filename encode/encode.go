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

// Package encode turns a phrase into a sequence of digit codes.
//
// The sequence returned by [Encode] is in reverse order.  When the row of
// glyphs is rendered and then turned by 180°, the phrase reads correctly.
package encode

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"seehuhn.de/go/flipcode/symbols"
)

// MaxLength is the maximal number of characters in a phrase.
const MaxLength = 50

// Kind distinguishes letters from word breaks.
type Kind uint8

const (
	Letter Kind = iota
	WordBreak
)

// Element is one item of an encoded phrase.
// Char, Code and GlyphRef are only set for letters.
type Element struct {
	Kind     Kind
	Char     rune
	Code     symbols.Code
	GlyphRef string
}

// Break is the element representing a space in the input.
var Break = Element{Kind: WordBreak}

func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Validate checks whether raw can be encoded.  The input is lowercased
// first.  Invalid characters are reported before the length limit, and only
// the first applicable problem is returned.  The returned error, if any, is
// of type *ValidationError.
func Validate(raw string) error {
	s := lower(raw)
	for _, r := range s {
		if r != ' ' && (r < 'a' || r > 'z') {
			return &ValidationError{Kind: InvalidCharacters, Char: r}
		}
	}
	if n := len([]rune(s)); n > MaxLength {
		return &ValidationError{Kind: CharacterLimitExceeded, Length: n}
	}
	return nil
}

// IsBlank reports whether raw consists of whitespace only.
func IsBlank(raw string) bool {
	return strings.IndexFunc(raw, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}

// Encode maps every character of raw to an element and returns the
// elements in reverse order.  The caller must have checked the input
// using [Validate].
//
// If a letter has no entry in set, a *MissingMappingError for the first
// such letter is returned, and no elements.
func Encode(raw string, set *symbols.Set) ([]Element, error) {
	s := lower(raw)
	res := make([]Element, 0, len(s))
	for _, r := range s {
		if r == ' ' {
			res = append(res, Break)
			continue
		}
		e, ok := set.Lookup(r)
		if !ok {
			return nil, &MissingMappingError{Char: r}
		}
		res = append(res, Element{
			Kind:     Letter,
			Char:     r,
			Code:     e.Code,
			GlyphRef: e.GlyphRef,
		})
	}
	slices.Reverse(res)
	return res, nil
}

// Reverse returns a reversed copy of elems.
func Reverse(elems []Element) []Element {
	res := slices.Clone(elems)
	slices.Reverse(res)
	return res
}

// wordGap is the display separator for one word break.
const wordGap = "   "

// Format returns the display form of an encoded phrase.  Codes of
// adjacent letters are separated by a single space, and every word break
// contributes three spaces of its own.
func Format(elems []Element) string {
	var b strings.Builder
	prevLetter := false
	for _, e := range elems {
		switch e.Kind {
		case Letter:
			if prevLetter {
				b.WriteByte(' ')
			}
			b.WriteString(e.Code.String())
			prevLetter = true
		case WordBreak:
			b.WriteString(wordGap)
			prevLetter = false
		}
	}
	return b.String()
}

// Letters returns the characters of elems, with word breaks as spaces.
func Letters(elems []Element) string {
	var b strings.Builder
	for _, e := range elems {
		if e.Kind == WordBreak {
			b.WriteByte(' ')
		} else {
			b.WriteRune(e.Char)
		}
	}
	return b.String()
}
