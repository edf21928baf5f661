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

// Package svgpath reads the path data mini-language used by the "d"
// attribute of SVG path elements.
//
// The result of [Parse] only contains move, line, cubic and close
// commands.  Quadratic curves are raised to cubics and elliptical arcs
// are approximated by cubics, see [AppendArc].
package svgpath

import (
	"fmt"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// SyntaxError describes a problem in path data.
// Pos is the byte offset in the input where the problem was found.
type SyntaxError struct {
	Pos int
	Msg string
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("path data: %s at offset %d", err.Msg, err.Pos)
}

// numArgs gives the number of arguments per coordinate group.
var numArgs = [...]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1,
	'C': 6, 'S': 4, 'Q': 4, 'T': 2,
	'A': 7, 'Z': 0,
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

func isCommand(c byte) bool {
	c = upper(c)
	return int(c) < len(numArgs) && (numArgs[c] > 0 || c == 'Z')
}

// interp holds the pen state while path data is interpreted.
type interp struct {
	p *path.Data

	cur   vec.Vec2 // current point
	start vec.Vec2 // start of the current subpath

	// ctrl is the last control point of the previous segment, used by the
	// smooth curve commands.  prev is the upper case previous command.
	ctrl vec.Vec2
	prev byte

	closed bool // a Z was seen and no new subpath was started
}

// Parse interprets path data.
//
// If d contains a syntax error, the geometry read up to that point is
// returned together with a *SyntaxError.
func Parse(d string) (*path.Data, error) {
	s := &scanner{buf: []byte(d)}
	ip := &interp{p: &path.Data{}}

	s.skipSpace()
	var cmd byte
	for !s.done() {
		c := s.buf[s.pos]
		switch {
		case isCommand(c):
			cmd = c
			s.pos++
			s.skipSpace()
		case cmd != 0 && upper(cmd) != 'Z' && s.atNumber():
			// implicit repetition of the previous command
			if cmd == 'M' {
				cmd = 'L'
			} else if cmd == 'm' {
				cmd = 'l'
			}
		default:
			return ip.p, &SyntaxError{Pos: s.pos, Msg: fmt.Sprintf("unexpected %q", c)}
		}

		if ip.prev == 0 && upper(cmd) != 'M' {
			return ip.p, &SyntaxError{Pos: s.pos, Msg: "path data must start with a move command"}
		}

		if err := ip.exec(s, cmd); err != nil {
			return ip.p, err
		}
	}
	return ip.p, nil
}

// exec reads the arguments of one coordinate group and appends the
// corresponding geometry.
func (ip *interp) exec(s *scanner, cmd byte) error {
	op := upper(cmd)
	rel := cmd != op

	var args [7]float64
	n := numArgs[op]
	for i := range n {
		var ok bool
		if op == 'A' && (i == 3 || i == 4) {
			var f bool
			f, ok = s.flag()
			if f {
				args[i] = 1
			}
		} else {
			args[i], ok = s.number()
		}
		if !ok {
			msg := fmt.Sprintf("command %c needs %d numbers", cmd, n)
			if op == 'A' && (i == 3 || i == 4) {
				msg = "arc flag must be 0 or 1"
			}
			return &SyntaxError{Pos: s.pos, Msg: msg}
		}
	}

	var base vec.Vec2
	if rel {
		base = ip.cur
	}
	pt := func(i int) vec.Vec2 {
		return vec.Vec2{X: base.X + args[i], Y: base.Y + args[i+1]}
	}

	if op != 'M' && op != 'Z' && ip.closed {
		// drawing after Z continues from the start of the closed subpath
		ip.p.MoveTo(ip.start)
		ip.closed = false
	}

	switch op {
	case 'M':
		ip.cur = pt(0)
		ip.start = ip.cur
		ip.p.MoveTo(ip.cur)
		ip.closed = false
	case 'L':
		ip.lineTo(pt(0))
	case 'H':
		x := args[0]
		if rel {
			x += ip.cur.X
		}
		ip.lineTo(vec.Vec2{X: x, Y: ip.cur.Y})
	case 'V':
		y := args[0]
		if rel {
			y += ip.cur.Y
		}
		ip.lineTo(vec.Vec2{X: ip.cur.X, Y: y})
	case 'C':
		ip.cubeTo(pt(0), pt(2), pt(4))
	case 'S':
		c1 := ip.cur
		if ip.prev == 'C' || ip.prev == 'S' {
			c1 = ip.cur.Mul(2).Sub(ip.ctrl)
		}
		ip.cubeTo(c1, pt(0), pt(2))
	case 'Q':
		ip.quadTo(pt(0), pt(2))
	case 'T':
		c := ip.cur
		if ip.prev == 'Q' || ip.prev == 'T' {
			c = ip.cur.Mul(2).Sub(ip.ctrl)
		}
		ip.quadTo(c, pt(0))
	case 'A':
		to := pt(5)
		AppendArc(ip.p, ip.cur, args[0], args[1], args[2], args[3] != 0, args[4] != 0, to)
		ip.cur = to
	case 'Z':
		ip.p.Close()
		ip.cur = ip.start
		ip.closed = true
	}
	ip.prev = op
	return nil
}

func (ip *interp) lineTo(to vec.Vec2) {
	ip.p.LineTo(to)
	ip.cur = to
}

func (ip *interp) cubeTo(c1, c2, to vec.Vec2) {
	ip.p.CubeTo(c1, c2, to)
	ip.ctrl = c2
	ip.cur = to
}

// quadTo appends a quadratic Bézier curve, raised to a cubic.
func (ip *interp) quadTo(c, to vec.Vec2) {
	c1 := ip.cur.Add(c.Sub(ip.cur).Mul(2.0 / 3.0))
	c2 := to.Add(c.Sub(to).Mul(2.0 / 3.0))
	ip.p.CubeTo(c1, c2, to)
	ip.ctrl = c
	ip.cur = to
}
