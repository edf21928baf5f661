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

package svgpath

import (
	"math"

	"github.com/tdewolff/parse/v2/strconv"
)

// scanner splits path data and attribute values into numbers and flags.
type scanner struct {
	buf []byte
	pos int
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// skipSpace skips white space only.
func (s *scanner) skipSpace() {
	for s.pos < len(s.buf) && isSpace(s.buf[s.pos]) {
		s.pos++
	}
}

// skipSep skips white space with at most one comma in it.
func (s *scanner) skipSep() {
	s.skipSpace()
	if s.pos < len(s.buf) && s.buf[s.pos] == ',' {
		s.pos++
		s.skipSpace()
	}
}

func (s *scanner) done() bool {
	return s.pos >= len(s.buf)
}

// atNumber reports whether a number can start at the current position.
func (s *scanner) atNumber() bool {
	if s.pos >= len(s.buf) {
		return false
	}
	c := s.buf[s.pos]
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

// number reads one number, followed by an optional separator.
// A number ends where a second sign or a second decimal point begins,
// so that "10-20" and "1.5.5" are both read as two numbers.
func (s *scanner) number() (float64, bool) {
	if !s.atNumber() {
		return 0, false
	}
	x, n := strconv.ParseFloat(s.buf[s.pos:])
	if n == 0 || math.IsInf(x, 0) || math.IsNaN(x) {
		return 0, false
	}
	s.pos += n
	s.skipSep()
	return x, true
}

// flag reads a single '0' or '1' character.  Flags need no separator, so
// "a25 25 0 1150 50" has the flags 1 and 1, followed by the number 50.
func (s *scanner) flag() (bool, bool) {
	if s.pos >= len(s.buf) {
		return false, false
	}
	var val bool
	switch s.buf[s.pos] {
	case '0':
		val = false
	case '1':
		val = true
	default:
		return false, false
	}
	s.pos++
	s.skipSep()
	return val, true
}

// ParseNumbers reads a list of numbers separated by white space, commas,
// or nothing where a sign or decimal point starts the next number.
// This is the syntax used by viewBox and points attributes and by the
// arguments of transform functions.
func ParseNumbers(str string) ([]float64, error) {
	s := &scanner{buf: []byte(str)}
	s.skipSpace()
	var res []float64
	for !s.done() {
		x, ok := s.number()
		if !ok {
			return res, &SyntaxError{Pos: s.pos, Msg: "expected number"}
		}
		res = append(res, x)
	}
	return res, nil
}
