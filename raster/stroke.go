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
	"seehuhn.de/go/pdf/graphics"
)

// Stroke paints the outline of p using Width, Cap, Join and MiterLimit.
//
// The stroke is assembled from one rectangle per flattened segment, plus
// polygons for the joins and caps.  All pieces are oriented the same way
// and filled together with the nonzero rule, so that overlaps are not
// painted twice.
func (r *Rasterizer) Stroke(p *path.Data, emit EmitFunc) {
	if r.Width <= 0 {
		return
	}
	r.outline = r.outline[:0]
	r.starts = r.starts[:0]
	r.flatten(p, r.strokeSubpath)

	r.edges = r.edges[:0]
	for i, start := range r.starts {
		end := len(r.outline)
		if i+1 < len(r.starts) {
			end = r.starts[i+1]
		}
		r.addPolygon(r.outline[start:end])
	}
	r.scan(false, emit)
}

type segment struct {
	a, b vec.Vec2
	t, n vec.Vec2 // unit tangent and normal
}

func (r *Rasterizer) strokeSubpath(poly []vec.Vec2, closed bool) {
	d := r.Width / 2

	var segs []segment
	for i := 1; i < len(poly); i++ {
		a, b := poly[i-1], poly[i]
		l := b.Sub(a).Length()
		if l < 1e-10 {
			continue
		}
		t := b.Sub(a).Mul(1 / l)
		segs = append(segs, segment{a: a, b: b, t: t, n: vec.Vec2{X: -t.Y, Y: t.X}})
	}
	if closed && len(segs) > 0 {
		a, b := segs[len(segs)-1].b, segs[0].a
		if l := b.Sub(a).Length(); l >= 1e-10 {
			t := b.Sub(a).Mul(1 / l)
			segs = append(segs, segment{a: a, b: b, t: t, n: vec.Vec2{X: -t.Y, Y: t.X}})
		}
	}

	if len(segs) == 0 {
		// a dot has no direction, so only round caps are visible
		if r.Cap == graphics.LineCapRound {
			r.addDisc(poly[0], d)
		}
		return
	}

	for _, s := range segs {
		off := s.n.Mul(d)
		r.addPiece(s.a.Sub(off), s.b.Sub(off), s.b.Add(off), s.a.Add(off))
	}
	for i := 1; i < len(segs); i++ {
		r.addJoin(&segs[i-1], &segs[i], d)
	}
	if closed {
		if len(segs) > 1 {
			r.addJoin(&segs[len(segs)-1], &segs[0], d)
		}
		return
	}
	first, last := &segs[0], &segs[len(segs)-1]
	r.addCap(first.a, first.t.Mul(-1), d)
	r.addCap(last.b, last.t, d)
}

// addJoin fills the wedge on the outer side of the corner between s1
// and s2.
func (r *Rasterizer) addJoin(s1, s2 *segment, d float64) {
	v := s1.b
	cross := s1.t.X*s2.t.Y - s1.t.Y*s2.t.X
	dot := s1.t.X*s2.t.X + s1.t.Y*s2.t.Y
	if math.Abs(cross) < 1e-9 && dot > 0 {
		return
	}

	if r.Join == graphics.LineJoinRound {
		r.addDisc(v, d)
		return
	}

	side := 1.0
	if cross > 0 {
		side = -1
	}
	p1 := v.Add(s1.n.Mul(side * d))
	p2 := v.Add(s2.n.Mul(side * d))

	if r.Join == graphics.LineJoinMiter {
		// cos of half the turning angle
		c := math.Sqrt(max(0, (1+dot)/2))
		if c > 0 && 1/c <= r.MiterLimit {
			bis := s1.n.Add(s2.n)
			bis = bis.Mul(side / bis.Length())
			tip := v.Add(bis.Mul(d / c))
			r.addPiece(v, p1, tip, p2)
			return
		}
	}
	r.addPiece(v, p1, p2)
}

// addCap adds the cap at the end point pt of a stroke leaving in
// direction dir.
func (r *Rasterizer) addCap(pt, dir vec.Vec2, d float64) {
	switch r.Cap {
	case graphics.LineCapRound:
		r.addDisc(pt, d)
	case graphics.LineCapSquare:
		n := vec.Vec2{X: -dir.Y, Y: dir.X}.Mul(d)
		ext := pt.Add(dir.Mul(d))
		r.addPiece(pt.Sub(n), ext.Sub(n), ext.Add(n), pt.Add(n))
	}
}

// addDisc adds a regular polygon approximating a circle.
func (r *Rasterizer) addDisc(c vec.Vec2, radius float64) {
	rDev := radius * r.deviceScale()
	n := 8
	if rDev > r.Flatness {
		n = max(n, int(math.Ceil(math.Pi/math.Acos(1-r.Flatness/rDev))))
	}
	n = min(n, 720)

	start := len(r.outline)
	for i := range n {
		phi := 2 * math.Pi * float64(i) / float64(n)
		r.outline = append(r.outline, c.Add(vec.Vec2{X: math.Cos(phi), Y: math.Sin(phi)}.Mul(radius)))
	}
	r.starts = append(r.starts, start)
}

// addPiece adds a polygon to the stroke outline, in positive orientation.
func (r *Rasterizer) addPiece(pts ...vec.Vec2) {
	var a float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		a += p.X*q.Y - q.X*p.Y
	}
	if math.Abs(a) < 1e-12 {
		return
	}
	start := len(r.outline)
	if a > 0 {
		r.outline = append(r.outline, pts...)
	} else {
		for i := len(pts) - 1; i >= 0; i-- {
			r.outline = append(r.outline, pts[i])
		}
	}
	r.starts = append(r.starts, start)
}
