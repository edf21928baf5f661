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

package encode

import (
	"fmt"
	"strconv"
)

// ValidationKind lists the problems [Validate] can report.
type ValidationKind uint8

const (
	InvalidCharacters ValidationKind = iota + 1
	CharacterLimitExceeded
)

// ValidationError is returned by [Validate] for input which cannot be
// encoded.  This is a problem with the user input, which goes away once
// the input is corrected.
type ValidationError struct {
	Kind ValidationKind

	Char   rune // first offending character, for InvalidCharacters
	Length int  // length of the input, for CharacterLimitExceeded
}

func (err *ValidationError) Error() string {
	switch err.Kind {
	case InvalidCharacters:
		return "only letters a-z and spaces are allowed, found " + strconv.QuoteRune(err.Char)
	case CharacterLimitExceeded:
		return fmt.Sprintf("at most %d characters are allowed, got %d", MaxLength, err.Length)
	default:
		return "invalid input"
	}
}

// Is allows errors.Is to match on the kind of validation error.
func (err *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && (t.Kind == 0 || t.Kind == err.Kind)
}

// Sentinel values for use with errors.Is.
var (
	ErrInvalidCharacters      = &ValidationError{Kind: InvalidCharacters}
	ErrCharacterLimitExceeded = &ValidationError{Kind: CharacterLimitExceeded}
)

// MissingMappingError indicates that the active symbol set has no entry
// for a letter.  This is a defect in the symbol set, not in the input.
type MissingMappingError struct {
	Char rune
}

func (err *MissingMappingError) Error() string {
	return "no code for letter " + strconv.QuoteRune(err.Char) + " in this symbol set"
}
