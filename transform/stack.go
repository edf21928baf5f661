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

package transform

import "seehuhn.de/go/geom/matrix"

// Stack holds the accumulated transformations of nested groups, indexed by
// nesting depth.  Entry i maps the coordinates used at depth i to the
// coordinates of the outermost frame.
//
// The zero value is an empty stack whose top is the identity.
type Stack struct {
	m []matrix.Matrix
}

// NewStack returns a stack whose outermost frame is mapped by base.
func NewStack(base matrix.Matrix) *Stack {
	return &Stack{m: []matrix.Matrix{base}}
}

// Push enters a group with the transformation local.  Points inside the
// group are first mapped by local and then by the transformations of
// all enclosing groups.
func (s *Stack) Push(local matrix.Matrix) {
	if len(s.m) == 0 {
		s.m = append(s.m, matrix.Identity)
	}
	s.m = append(s.m, local.Mul(s.Top()))
}

// Pop leaves the innermost group.  Pop panics if no group has been
// entered.
func (s *Stack) Pop() {
	if len(s.m) <= 1 {
		panic("transform: Pop without matching Push")
	}
	s.m = s.m[:len(s.m)-1]
}

// Top returns the transformation for the current nesting depth.
func (s *Stack) Top() matrix.Matrix {
	if len(s.m) == 0 {
		return matrix.Identity
	}
	return s.m[len(s.m)-1]
}

// Depth returns the number of groups entered and not yet left.
func (s *Stack) Depth() int {
	return max(len(s.m)-1, 0)
}
