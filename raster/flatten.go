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

package raster

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// flatten splits p into polylines in user space and calls fn once per
// subpath.  Subpaths consisting of a lone MoveTo are dropped.  The slice
// passed to fn is reused afterwards.
func (r *Rasterizer) flatten(p *path.Data, fn func(poly []vec.Vec2, closed bool)) {
	poly := r.poly[:0]
	drawn := false
	flush := func(closed bool) {
		if drawn && len(poly) > 0 {
			fn(poly, closed)
		}
		drawn = false
	}

	k := 0
	for _, cmd := range p.Cmds {
		if cmd != path.CmdMoveTo && len(poly) == 0 {
			poly = append(poly, vec.Vec2{})
		}
		switch cmd {
		case path.CmdMoveTo:
			flush(false)
			poly = append(poly[:0], p.Coords[k])
			k++
		case path.CmdLineTo:
			poly = append(poly, p.Coords[k])
			drawn = true
			k++
		case path.CmdQuadTo:
			// raise to a cubic
			p0, q, p3 := poly[len(poly)-1], p.Coords[k], p.Coords[k+1]
			c1 := p0.Add(q.Sub(p0).Mul(2.0 / 3))
			c2 := p3.Add(q.Sub(p3).Mul(2.0 / 3))
			poly = r.appendCubic(poly, c1, c2, p3)
			drawn = true
			k += 2
		case path.CmdCubeTo:
			poly = r.appendCubic(poly, p.Coords[k], p.Coords[k+1], p.Coords[k+2])
			drawn = true
			k += 3
		case path.CmdClose:
			start := poly[0]
			flush(true)
			poly = append(poly[:0], start)
		}
	}
	flush(false)
	r.poly = poly[:0]
}

// appendCubic appends the points of a flattened cubic Bézier curve,
// starting from the last point of poly.  The number of segments is chosen
// using Wang's formula, measured in device space.
func (r *Rasterizer) appendCubic(poly []vec.Vec2, c1, c2, p3 vec.Vec2) []vec.Vec2 {
	p0 := poly[len(poly)-1]
	d1 := r.linear(p0.Sub(c1.Mul(2)).Add(c2))
	d2 := r.linear(c1.Sub(c2.Mul(2)).Add(p3))
	m := max(d1.Length(), d2.Length())

	n := int(math.Ceil(math.Sqrt(0.75 * m / r.Flatness)))
	n = min(max(n, 1), 1000)

	for i := 1; i < n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(c1.Mul(3 * s * s * t)).
			Add(c2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		poly = append(poly, pt)
	}
	return append(poly, p3)
}

// linear applies the linear part of the CTM to v.
func (r *Rasterizer) linear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

// deviceScale returns the factor by which the CTM scales lengths, on
// average.
func (r *Rasterizer) deviceScale() float64 {
	return math.Sqrt(math.Abs(r.CTM[0]*r.CTM[3] - r.CTM[1]*r.CTM[2]))
}
