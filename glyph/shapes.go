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

package glyph

import (
	"encoding/xml"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/flipcode/svgpath"
)

// shapePath returns the outline of a drawable element in the element's
// own coordinates, or nil if the element does not describe anything
// drawable.
func shapePath(e xml.StartElement) *path.Data {
	num := func(name string) float64 {
		x, _ := lengthAttr(e, name)
		return x
	}

	switch e.Name.Local {
	case "path":
		d, _ := findAttr(e, "d")
		// On errors, the geometry up to the error is used.
		p, _ := svgpath.Parse(d)
		return p

	case "rect":
		rx, hasRx := lengthAttr(e, "rx")
		ry, hasRy := lengthAttr(e, "ry")
		switch {
		case hasRx && !hasRy:
			ry = rx
		case hasRy && !hasRx:
			rx = ry
		}
		return roundedRect(num("x"), num("y"), num("width"), num("height"), rx, ry)

	case "circle":
		r := num("r")
		return ellipse(num("cx"), num("cy"), r, r)

	case "ellipse":
		return ellipse(num("cx"), num("cy"), num("rx"), num("ry"))

	case "line":
		return (&path.Data{}).
			MoveTo(vec.Vec2{X: num("x1"), Y: num("y1")}).
			LineTo(vec.Vec2{X: num("x2"), Y: num("y2")})

	case "polyline", "polygon":
		points, _ := findAttr(e, "points")
		v, _ := svgpath.ParseNumbers(points)
		if len(v) < 4 {
			return nil
		}
		p := &path.Data{}
		for i := 0; i+1 < len(v); i += 2 {
			pt := vec.Vec2{X: v[i], Y: v[i+1]}
			if i == 0 {
				p.MoveTo(pt)
			} else {
				p.LineTo(pt)
			}
		}
		if e.Name.Local == "polygon" {
			p.Close()
		}
		return p
	}
	return nil
}

// roundedRect returns a rectangle with elliptical corners.  The corner
// radii are limited to half the width and height.
func roundedRect(x, y, w, h, rx, ry float64) *path.Data {
	if w <= 0 || h <= 0 {
		return nil
	}
	rx = min(max(rx, 0), w/2)
	ry = min(max(ry, 0), h/2)

	p := &path.Data{}
	if rx == 0 || ry == 0 {
		return p.MoveTo(vec.Vec2{X: x, Y: y}).
			LineTo(vec.Vec2{X: x + w, Y: y}).
			LineTo(vec.Vec2{X: x + w, Y: y + h}).
			LineTo(vec.Vec2{X: x, Y: y + h}).
			Close()
	}

	corner := func(from, to vec.Vec2) {
		svgpath.AppendArc(p, from, rx, ry, 0, false, true, to)
	}
	pts := [8]vec.Vec2{
		{X: x + rx, Y: y}, {X: x + w - rx, Y: y},
		{X: x + w, Y: y + ry}, {X: x + w, Y: y + h - ry},
		{X: x + w - rx, Y: y + h}, {X: x + rx, Y: y + h},
		{X: x, Y: y + h - ry}, {X: x, Y: y + ry},
	}
	p.MoveTo(pts[0])
	for i := 0; i < 8; i += 2 {
		if pts[i] != pts[i+1] {
			p.LineTo(pts[i+1])
		}
		corner(pts[i+1], pts[(i+2)%8])
	}
	return p.Close()
}

// ellipse returns an axis-parallel ellipse, made of four arcs.
func ellipse(cx, cy, rx, ry float64) *path.Data {
	if rx <= 0 || ry <= 0 {
		return nil
	}
	pts := [4]vec.Vec2{
		{X: cx + rx, Y: cy},
		{X: cx, Y: cy + ry},
		{X: cx - rx, Y: cy},
		{X: cx, Y: cy - ry},
	}
	p := (&path.Data{}).MoveTo(pts[0])
	for i := range 4 {
		svgpath.AppendArc(p, pts[i], rx, ry, 0, false, true, pts[(i+1)%4])
	}
	return p.Close()
}
