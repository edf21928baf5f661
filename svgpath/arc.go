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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// AppendArc appends an elliptical arc from the point from to the point to.
// The arc is given in the endpoint parameterization of SVG: rx and ry are
// the radii, phiDeg is the rotation of the ellipse's x-axis in degrees,
// and the flags select one of the four candidate arcs.
//
// Radii which are too small to reach the end point are scaled up
// uniformly.  If from equals to, or if one of the radii is zero, a
// straight line is appended instead.  Otherwise the arc is split into
// pieces of at most 90°, and each piece becomes one cubic Bézier curve.
//
// The caller must have set the current point of p to from.
func AppendArc(p *path.Data, from vec.Vec2, rx, ry, phiDeg float64, large, sweep bool, to vec.Vec2) {
	rx = math.Abs(rx)
	ry = math.Abs(ry)
	if from == to || rx == 0 || ry == 0 {
		p.LineTo(to)
		return
	}

	phi := phiDeg * math.Pi / 180
	sinPhi, cosPhi := math.Sincos(phi)

	// Step 1: move the origin to the midpoint of the chord and rotate
	// the ellipse axes onto the coordinate axes.
	dx := (from.X - to.X) / 2
	dy := (from.Y - to.Y) / 2
	x1 := cosPhi*dx + sinPhi*dy
	y1 := -sinPhi*dx + cosPhi*dy

	// Step 2: the center in the rotated frame.  If the radii need to be
	// scaled up, the center is the midpoint of the chord.
	coef := 0.0
	lambda := (x1*x1)/(rx*rx) + (y1*y1)/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	} else {
		rx2, ry2 := rx*rx, ry*ry
		num := rx2*ry2 - rx2*y1*y1 - ry2*x1*x1
		den := rx2*y1*y1 + ry2*x1*x1
		if num > 0 && den > 0 {
			coef = math.Sqrt(num / den)
		}
		if large == sweep {
			coef = -coef
		}
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx

	// Step 3: the center in user space.
	center := vec.Vec2{
		X: cosPhi*cx1 - sinPhi*cy1 + (from.X+to.X)/2,
		Y: sinPhi*cx1 + cosPhi*cy1 + (from.Y+to.Y)/2,
	}

	// Step 4: start angle and sweep angle.
	theta1 := math.Atan2((y1-cy1)/ry, (x1-cx1)/rx)
	theta2 := math.Atan2((-y1-cy1)/ry, (-x1-cx1)/rx)
	delta := theta2 - theta1
	if sweep && delta < 0 {
		delta += 2 * math.Pi
	} else if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	}

	n := int(math.Ceil(math.Abs(delta)/(math.Pi/2) - 1e-9))
	n = max(n, 1)
	step := delta / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)

	point := func(t float64) vec.Vec2 {
		sin, cos := math.Sincos(t)
		x, y := rx*cos, ry*sin
		return vec.Vec2{
			X: center.X + cosPhi*x - sinPhi*y,
			Y: center.Y + sinPhi*x + cosPhi*y,
		}
	}
	tangent := func(t float64) vec.Vec2 {
		sin, cos := math.Sincos(t)
		x, y := -rx*sin, ry*cos
		return vec.Vec2{
			X: cosPhi*x - sinPhi*y,
			Y: sinPhi*x + cosPhi*y,
		}
	}

	p0 := from
	t := theta1
	for i := range n {
		t2 := t + step
		p1 := point(t2)
		if i == n-1 {
			p1 = to
		}
		c1 := p0.Add(tangent(t).Mul(k))
		c2 := p1.Sub(tangent(t2).Mul(k))
		p.CubeTo(c1, c2, p1)
		p0 = p1
		t = t2
	}
}
