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

// Package glyph reads small SVG documents into paintable glyph records.
//
// Only a restricted subset of SVG is understood: groups with transforms,
// the basic shapes, paths, and text.  Gradients, filters, clipping, masks
// and images are not supported.  Elements which are not understood are
// skipped together with their content.
package glyph

import (
	"image/color"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// DefaultViewBox is the coordinate frame of documents which declare
// neither a viewBox nor a usable width and height.
var DefaultViewBox = rect.Rect{LLx: 0, LLy: 0, URx: 100, URy: 100}

// Record is a parsed glyph.  All geometry is given in the coordinates
// of ViewBox, with the y-axis pointing down.
type Record struct {
	// ViewBox is the intrinsic coordinate frame.
	// Width and height are always positive.
	ViewBox rect.Rect

	Shapes []Shape
	Labels []Label
}

// FillRule selects how the inside of a self-intersecting path is
// determined.
type FillRule uint8

// These are the supported fill rules.
const (
	NonZero FillRule = iota
	EvenOdd
)

// Shape is one drawable element.
type Shape struct {
	// Path uses only MoveTo, LineTo, CubeTo and Close commands.
	// The ambient transformation has already been applied.
	Path *path.Data

	// Fill is the fill color.  A fully transparent color means that the
	// shape is not filled.
	Fill     color.NRGBA
	FillRule FillRule

	// Stroke is the stroke color, or nil if the shape is not stroked.
	Stroke      *color.NRGBA
	StrokeWidth float64
	Cap         graphics.LineCapStyle
	Join        graphics.LineJoinStyle
}

// Anchor is the horizontal alignment of a label.
type Anchor uint8

// These are the supported anchor modes.
const (
	Start Anchor = iota
	Middle
)

func (a Anchor) String() string {
	switch a {
	case Start:
		return "start"
	case Middle:
		return "middle"
	default:
		return "unknown"
	}
}

// Label is a piece of text.
type Label struct {
	Text string

	// Pos is the anchor point on the baseline, transformed into the
	// coordinates of the view box.
	Pos      vec.Vec2
	FontSize float64
	Anchor   Anchor
	Fill     color.NRGBA
}
