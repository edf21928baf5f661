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

// Package transform reads SVG transform lists and keeps track of the
// transformations of nested groups.
//
// All matrices use the conventions of [matrix.Matrix]: a point is mapped
// by x' = a*x + c*y + e, y' = b*x + d*y + f, and A.Mul(B) first applies A
// and then B.
package transform

import (
	"fmt"
	"math"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/flipcode/svgpath"
)

// SyntaxError describes a malformed transform list.
type SyntaxError struct {
	Func string // the transform function, if known
	Msg  string
}

func (err *SyntaxError) Error() string {
	if err.Func == "" {
		return "transform: " + err.Msg
	}
	return "transform " + err.Func + ": " + err.Msg
}

// Parse reads a transform list like "translate(10 20) rotate(45)".
//
// The functions matrix, translate, scale, rotate, skewX and skewY are
// supported.  As in SVG, the rightmost function of a list is applied to
// points first.  An empty list gives the identity.
func Parse(attr string) (matrix.Matrix, error) {
	acc := matrix.Identity
	s := attr
	for {
		s = strings.TrimLeft(s, " \t\r\n,")
		if s == "" {
			break
		}

		open := strings.IndexByte(s, '(')
		if open < 0 {
			return matrix.Identity, &SyntaxError{Msg: fmt.Sprintf("missing '(' in %q", s)}
		}
		name := strings.TrimSpace(s[:open])
		end := strings.IndexByte(s[open:], ')')
		if end < 0 {
			return matrix.Identity, &SyntaxError{Func: name, Msg: "missing ')'"}
		}
		args, err := svgpath.ParseNumbers(s[open+1 : open+end])
		if err != nil {
			return matrix.Identity, &SyntaxError{Func: name, Msg: err.Error()}
		}
		s = s[open+end+1:]

		m, err := function(name, args)
		if err != nil {
			return matrix.Identity, err
		}
		acc = m.Mul(acc)
	}
	return acc, nil
}

func function(name string, args []float64) (matrix.Matrix, error) {
	n := len(args)
	bad := func() (matrix.Matrix, error) {
		return matrix.Identity, &SyntaxError{Func: name, Msg: fmt.Sprintf("wrong number of arguments (%d)", n)}
	}

	switch name {
	case "matrix":
		if n != 6 {
			return bad()
		}
		return matrix.Matrix{args[0], args[1], args[2], args[3], args[4], args[5]}, nil
	case "translate":
		switch n {
		case 1:
			return matrix.Translate(args[0], 0), nil
		case 2:
			return matrix.Translate(args[0], args[1]), nil
		}
		return bad()
	case "scale":
		switch n {
		case 1:
			return matrix.Scale(args[0], args[0]), nil
		case 2:
			return matrix.Scale(args[0], args[1]), nil
		}
		return bad()
	case "rotate":
		switch n {
		case 1:
			return rotate(args[0]), nil
		case 3:
			cx, cy := args[1], args[2]
			return matrix.Translate(-cx, -cy).Mul(rotate(args[0])).Mul(matrix.Translate(cx, cy)), nil
		}
		return bad()
	case "skewX":
		if n != 1 {
			return bad()
		}
		return matrix.Matrix{1, 0, math.Tan(deg(args[0])), 1, 0, 0}, nil
	case "skewY":
		if n != 1 {
			return bad()
		}
		return matrix.Matrix{1, math.Tan(deg(args[0])), 0, 1, 0, 0}, nil
	}
	return matrix.Identity, &SyntaxError{Func: name, Msg: "unknown transform function"}
}

func deg(x float64) float64 {
	return x * math.Pi / 180
}

// rotate returns a rotation by the given angle in degrees.
// Multiples of 90° are exact.
func rotate(angle float64) matrix.Matrix {
	var sin, cos float64
	switch math.Mod(angle, 360) {
	case 0:
		sin, cos = 0, 1
	case 90, -270:
		sin, cos = 1, 0
	case 180, -180:
		sin, cos = 0, -1
	case 270, -90:
		sin, cos = -1, 0
	default:
		sin, cos = math.Sincos(deg(angle))
	}
	return matrix.Matrix{cos, sin, -sin, cos, 0, 0}
}

// Path returns a copy of p with every point mapped by m.
func Path(p *path.Data, m matrix.Matrix) *path.Data {
	res := &path.Data{
		Cmds:   append([]path.Command(nil), p.Cmds...),
		Coords: make([]vec.Vec2, len(p.Coords)),
	}
	for i, pt := range p.Coords {
		res.Coords[i] = m.Apply(pt)
	}
	return res
}

// MeanScale returns the geometric mean of the scale factors of m.
// This is used to scale lengths like stroke widths and font sizes.
func MeanScale(m matrix.Matrix) float64 {
	return math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))
}
