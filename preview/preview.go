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

// Package preview draws encoded phrases as a row of glyph cells.
//
// The row is drawn in reading order of the digit codes.  [Rotated] turns
// the whole row by 180 degrees, which shows how the phrase reads once the
// page is turned around.
package preview

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/flipcode/encode"
	"seehuhn.de/go/flipcode/glyph"
	"seehuhn.de/go/flipcode/raster"
)

// Lookup returns the glyph record for a letter element, or nil if the
// letter has no glyph.
type Lookup func(e encode.Element) *glyph.Record

// Renderer draws rows of glyph cells.  Labels are drawn with a fixed
// 7x13 bitmap face, so [glyph.Label.FontSize] has no effect.
type Renderer struct {
	// Cell is the side length of the square cell used for each letter.
	Cell int

	// Gap is the width of a word break.
	Gap int

	Background color.Color
}

// Default is the renderer used by the command line tool.
var Default = &Renderer{
	Cell:       96,
	Gap:        32,
	Background: color.White,
}

// Size returns the dimensions of the row for elems.
func (r *Renderer) Size(elems []encode.Element) image.Point {
	w := 0
	for _, e := range elems {
		if e.Kind == encode.Letter {
			w += r.Cell
		} else {
			w += r.Gap
		}
	}
	return image.Point{X: w, Y: r.Cell}
}

// Row draws one cell per letter and a gap per word break, from left to
// right.  Letters without a glyph leave an empty cell.
func (r *Renderer) Row(elems []encode.Element, lookup Lookup) *image.NRGBA {
	size := r.Size(elems)
	img := image.NewNRGBA(image.Rectangle{Max: size})
	if r.Background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(r.Background), image.Point{}, draw.Src)
	}

	p := &painter{
		dst:  img,
		ras:  raster.NewRasterizer(raster.ClipRect(img.Bounds())),
		mask: image.NewAlpha(img.Bounds()),
	}
	x := 0
	for _, e := range elems {
		if e.Kind != encode.Letter {
			x += r.Gap
			continue
		}
		cell := image.Rect(x, 0, x+r.Cell, r.Cell)
		if rec := lookup(e); rec != nil {
			p.record(rec, cell)
		}
		x += r.Cell
	}
	return img
}

// Rotated returns a copy of img turned by 180 degrees.  Every pixel is
// moved by the point reflection (x, y) -> (W-x, H-y), so that the last
// cell of a row becomes the first.
func Rotated(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	res := image.NewNRGBA(b)
	s2d := f64.Aff3{
		-1, 0, float64(b.Min.X + b.Max.X),
		0, -1, float64(b.Min.Y + b.Max.Y),
	}
	draw.NearestNeighbor.Transform(res, s2d, img, b, draw.Src, nil)
	return res
}

type painter struct {
	dst  *image.NRGBA
	ras  *raster.Rasterizer
	mask *image.Alpha
}

// record paints a glyph, scaled uniformly to fit the cell and centered.
func (p *painter) record(rec *glyph.Record, cell image.Rectangle) {
	vb := rec.ViewBox
	w, h := vb.URx-vb.LLx, vb.URy-vb.LLy
	s := min(float64(cell.Dx())/w, float64(cell.Dy())/h)
	dx := float64(cell.Min.X) + (float64(cell.Dx())-s*w)/2
	dy := float64(cell.Min.Y) + (float64(cell.Dy())-s*h)/2
	m := matrix.Translate(-vb.LLx, -vb.LLy).Mul(matrix.Scale(s, s)).Mul(matrix.Translate(dx, dy))

	p.ras.Clip = raster.ClipRect(cell)
	p.ras.CTM = m
	for i := range rec.Shapes {
		p.shape(&rec.Shapes[i], cell)
	}

	sub := p.dst.SubImage(cell).(*image.NRGBA)
	for _, l := range rec.Labels {
		p.label(sub, l, m)
	}
}

func (p *painter) shape(sh *glyph.Shape, cell image.Rectangle) {
	if sh.Path == nil {
		return
	}
	if sh.Fill.A > 0 {
		p.clearMask(cell)
		if sh.FillRule == glyph.EvenOdd {
			p.ras.FillEvenOdd(sh.Path, raster.ToAlpha(p.mask))
		} else {
			p.ras.FillNonZero(sh.Path, raster.ToAlpha(p.mask))
		}
		p.composite(sh.Fill, cell)
	}
	if sh.Stroke != nil && sh.Stroke.A > 0 && sh.StrokeWidth > 0 {
		p.clearMask(cell)
		p.ras.Width = sh.StrokeWidth
		p.ras.Cap = sh.Cap
		p.ras.Join = sh.Join
		p.ras.Stroke(sh.Path, raster.ToAlpha(p.mask))
		p.composite(*sh.Stroke, cell)
	}
}

func (p *painter) clearMask(cell image.Rectangle) {
	for y := cell.Min.Y; y < cell.Max.Y; y++ {
		i := p.mask.PixOffset(cell.Min.X, y)
		clear(p.mask.Pix[i : i+cell.Dx()])
	}
}

func (p *painter) composite(c color.NRGBA, cell image.Rectangle) {
	draw.DrawMask(p.dst, cell, image.NewUniform(c), image.Point{}, p.mask, cell.Min, draw.Over)
}

// label draws text with a fixed bitmap face.  Only the position and the
// anchor of the label are honored.
func (p *painter) label(dst *image.NRGBA, l glyph.Label, m matrix.Matrix) {
	if l.Text == "" || l.Fill.A == 0 {
		return
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(l.Fill),
		Face: basicfont.Face7x13,
	}
	pos := m.Apply(l.Pos)
	if l.Anchor == glyph.Middle {
		adv := d.MeasureString(l.Text)
		pos = pos.Sub(vec.Vec2{X: float64(adv) / 64 / 2})
	}
	d.Dot = fixed.Point26_6{
		X: fixed.Int26_6(math.Round(pos.X * 64)),
		Y: fixed.Int26_6(math.Round(pos.Y * 64)),
	}
	d.DrawString(l.Text)
}
