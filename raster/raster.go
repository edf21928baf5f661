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

// Package raster computes anti-aliased pixel coverage for glyph shapes.
//
// Coverage is the fraction of a pixel's area inside a filled or stroked
// path, from 0 to 1.  It is computed exactly for the flattened outline,
// using signed area accumulation along each scanline.
package raster

import (
	"cmp"
	"image"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// EmitFunc receives the coverage of one scanline.  coverage[i] belongs to
// pixel (xMin+i, y).  The slice is only valid during the call.
type EmitFunc func(y, xMin int, coverage []float32)

// Rasterizer converts paths to coverage values.  A Rasterizer can be
// reused for many paths; its buffers are kept between calls.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM maps user space to device space.  It must be non-singular.
	CTM matrix.Matrix

	// Clip limits the output, in device coordinates.  The corners must
	// be integers.
	Clip rect.Rect

	// Flatness is the maximal distance, in device pixels, between a curve
	// and the line segments which replace it.
	Flatness float64

	// Width is the stroke width in user space.
	Width float64

	Cap  graphics.LineCapStyle
	Join graphics.LineJoinStyle

	// MiterLimit bounds the ratio of miter length to stroke width.
	// Longer miters are drawn as bevels.
	MiterLimit float64

	edges  []edge
	active []int
	cover  []float32
	area   []float32

	poly    []vec.Vec2 // current subpath while flattening
	outline []vec.Vec2 // stroke polygons, back to back
	starts  []int      // start of each polygon in outline
}

// edge is a non-horizontal line segment in device space, oriented so
// that top.Y < bot.Y.
type edge struct {
	top, bot vec.Vec2
	dxdy     float64
	dir      float32 // +1 if the original segment pointed down
}

func (e *edge) xAt(y float64) float64 {
	return e.top.X + e.dxdy*(y-e.top.Y)
}

func (e *edge) yAt(x float64) float64 {
	return e.top.Y + (x-e.top.X)/e.dxdy
}

// NewRasterizer returns a Rasterizer for the given device clip rectangle,
// with an identity CTM and default stroke parameters.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		CTM:        matrix.Identity,
		Clip:       clip,
		Flatness:   0.25,
		Width:      1,
		Cap:        graphics.LineCapButt,
		Join:       graphics.LineJoinMiter,
		MiterLimit: 10,
	}
}

// ClipRect converts an image rectangle into a clip rectangle.
func ClipRect(b image.Rectangle) rect.Rect {
	return rect.Rect{
		LLx: float64(b.Min.X),
		LLy: float64(b.Min.Y),
		URx: float64(b.Max.X),
		URy: float64(b.Max.Y),
	}
}

// FillNonZero fills p using the nonzero winding rule.
func (r *Rasterizer) FillNonZero(p *path.Data, emit EmitFunc) {
	r.fill(p, false, emit)
}

// FillEvenOdd fills p using the even-odd rule.
func (r *Rasterizer) FillEvenOdd(p *path.Data, emit EmitFunc) {
	r.fill(p, true, emit)
}

func (r *Rasterizer) fill(p *path.Data, evenOdd bool, emit EmitFunc) {
	r.edges = r.edges[:0]
	r.flatten(p, func(poly []vec.Vec2, _ bool) {
		r.addPolygon(poly)
	})
	r.scan(evenOdd, emit)
}

// addPolygon adds the edges of a closed polygon, given in user space.
func (r *Rasterizer) addPolygon(poly []vec.Vec2) {
	if len(poly) < 2 {
		return
	}
	prev := r.CTM.Apply(poly[len(poly)-1])
	for _, pt := range poly {
		cur := r.CTM.Apply(pt)
		r.addEdge(prev, cur)
		prev = cur
	}
}

func (r *Rasterizer) addEdge(a, b vec.Vec2) {
	dir := float32(1)
	if b.Y < a.Y {
		a, b = b, a
		dir = -1
	}
	if b.Y-a.Y < 1e-10 {
		return
	}
	r.edges = append(r.edges, edge{
		top:  a,
		bot:  b,
		dxdy: (b.X - a.X) / (b.Y - a.Y),
		dir:  dir,
	})
}

// bounds returns the pixel range touched by the edges, intersected with
// the clip rectangle.
func (r *Rasterizer) bounds() (x0, x1, y0, y1 int, ok bool) {
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}
	lo := vec.Vec2{X: math.Inf(1), Y: math.Inf(1)}
	hi := vec.Vec2{X: math.Inf(-1), Y: math.Inf(-1)}
	for i := range r.edges {
		e := &r.edges[i]
		lo.X = min(lo.X, e.top.X, e.bot.X)
		hi.X = max(hi.X, e.top.X, e.bot.X)
		lo.Y = min(lo.Y, e.top.Y)
		hi.Y = max(hi.Y, e.bot.Y)
	}
	x0 = max(int(math.Floor(lo.X)), int(r.Clip.LLx))
	x1 = min(int(math.Floor(hi.X))+1, int(r.Clip.URx))
	y0 = max(int(math.Floor(lo.Y)), int(r.Clip.LLy))
	y1 = min(int(math.Floor(hi.Y))+1, int(r.Clip.URy))
	return x0, x1, y0, y1, x0 < x1 && y0 < y1
}

// scan walks the scanlines from top to bottom, keeping a list of the
// edges which intersect the current scanline.
func (r *Rasterizer) scan(evenOdd bool, emit EmitFunc) {
	x0, x1, y0, y1, ok := r.bounds()
	if !ok {
		return
	}
	width := x1 - x0
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.top.Y, b.top.Y)
	})

	r.active = r.active[:0]
	next := 0
	for y := y0; y < y1; y++ {
		top, bot := float64(y), float64(y+1)
		for next < len(r.edges) && r.edges[next].top.Y < bot {
			r.active = append(r.active, next)
			next++
		}

		// drop edges which ended above this scanline
		k := 0
		for _, idx := range r.active {
			if r.edges[idx].bot.Y > top {
				r.active[k] = idx
				k++
			}
		}
		r.active = r.active[:k]
		if k == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		for _, idx := range r.active {
			r.accumulate(&r.edges[idx], top, bot, x0, x1)
		}

		if evenOdd {
			integrateEvenOdd(r.cover, r.area)
		} else {
			integrateNonZero(r.cover, r.area)
		}
		if row, offs := trim(r.cover); row != nil {
			emit(y, x0+offs, row)
		}
	}
}

// accumulate records the part of e between the heights top and bot.
//
// Every piece of an edge inside a pixel contributes its signed height to
// cover, which carries over to all pixels further right.  The share of
// the pixel itself which lies to the right of the piece goes into area.
func (r *Rasterizer) accumulate(e *edge, top, bot float64, x0, x1 int) {
	top = max(top, e.top.Y)
	bot = min(bot, e.bot.Y)
	if bot <= top {
		return
	}

	xa, xb := e.xAt(top), e.xAt(bot)
	left := int(math.Floor(min(xa, xb)))
	right := int(math.Floor(max(xa, xb)))
	if left == right {
		r.deposit(left, e.dir*float32(bot-top), (xa+xb)/2, x0, x1)
		return
	}

	for px := left; px <= right && px < x1; px++ {
		ya, yb := e.yAt(float64(px)), e.yAt(float64(px+1))
		lo := max(min(ya, yb), top)
		hi := min(max(ya, yb), bot)
		if hi <= lo {
			continue
		}
		r.deposit(px, e.dir*float32(hi-lo), e.xAt((lo+hi)/2), x0, x1)
	}
}

func (r *Rasterizer) deposit(px int, h float32, xMid float64, x0, x1 int) {
	switch {
	case px < x0:
		r.cover[0] += h
		r.area[0] += h
	case px < x1:
		i := px - x0
		r.cover[i] += h
		r.area[i] += h * float32(1-(xMid-float64(px)))
	}
}

// integrateNonZero turns the accumulated values into coverage, in place.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i, c := range cover {
		v := acc + area[i]
		acc += c
		cover[i] = min(abs32(v), 1)
	}
}

// integrateEvenOdd turns the accumulated values into coverage, in place.
// Winding numbers are folded so that 0, 2, 4, ... map to 0 and odd values
// to 1.
func integrateEvenOdd(cover, area []float32) {
	var acc float32
	for i, c := range cover {
		v := abs32(acc + area[i])
		acc += c
		v -= 2 * float32(math.Floor(float64(v/2)))
		cover[i] = 1 - abs32(1-v)
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// trim removes zero coverage at both ends of a row.
func trim(row []float32) ([]float32, int) {
	lo, hi := 0, len(row)
	for lo < hi && row[lo] == 0 {
		lo++
	}
	for hi > lo && row[hi-1] == 0 {
		hi--
	}
	if lo == hi {
		return nil, 0
	}
	return row[lo:hi], lo
}
