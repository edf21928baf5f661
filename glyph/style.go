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
	"image/color"
	"strings"

	"seehuhn.de/go/pdf/graphics"
)

var (
	black       = color.NRGBA{A: 0xff}
	transparent = color.NRGBA{}
)

var namedColors = map[string]color.NRGBA{
	"black":       black,
	"white":       {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	"red":         {R: 0xff, A: 0xff},
	"green":       {G: 0x80, A: 0xff},
	"blue":        {B: 0xff, A: 0xff},
	"yellow":      {R: 0xff, G: 0xff, A: 0xff},
	"cyan":        {G: 0xff, B: 0xff, A: 0xff},
	"magenta":     {R: 0xff, B: 0xff, A: 0xff},
	"gray":        {R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	"grey":        {R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	"orange":      {R: 0xff, G: 0xa5, A: 0xff},
	"purple":      {R: 0x80, B: 0x80, A: 0xff},
	"transparent": transparent,
}

// ParseColor reads a color in "#rgb" or "#rrggbb" notation, or one of a
// small set of color names.  The value "none" gives a fully transparent
// color.  Unknown or malformed values give black.
func ParseColor(s string) color.NRGBA {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "none" {
		return transparent
	}
	if c, ok := namedColors[s]; ok {
		return c
	}
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		var v [6]uint8
		for i := range len(hex) {
			d, ok := hexDigit(hex[i])
			if !ok || i >= 6 {
				return black
			}
			v[i] = d
		}
		switch len(hex) {
		case 3:
			return color.NRGBA{R: v[0] * 0x11, G: v[1] * 0x11, B: v[2] * 0x11, A: 0xff}
		case 6:
			return color.NRGBA{R: v[0]<<4 | v[1], G: v[2]<<4 | v[3], B: v[4]<<4 | v[5], A: 0xff}
		}
	}
	return black
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

// style holds the presentation properties in effect for an element.
type style struct {
	fill        color.NRGBA
	fillRule    FillRule
	stroke      *color.NRGBA
	strokeWidth float64
	cap         graphics.LineCapStyle
	join        graphics.LineJoinStyle
	fontSize    float64
	anchor      Anchor
}

// defaultStyle holds the initial values of all properties.
var defaultStyle = style{
	fill:        black,
	strokeWidth: 1,
	cap:         graphics.LineCapButt,
	join:        graphics.LineJoinMiter,
	fontSize:    16,
}

// derive returns the style of an element with the given attributes,
// inheriting from s.  Inline style declarations take precedence over
// presentation attributes.
func (s style) derive(attrs []xml.Attr) style {
	res := s
	var inline string
	for _, a := range attrs {
		if a.Name.Local == "style" {
			inline = a.Value
			continue
		}
		res.set(a.Name.Local, a.Value)
	}
	for decl := range strings.SplitSeq(inline, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		res.set(strings.TrimSpace(name), value)
	}
	return res
}

// set updates one property.  Names which are not presentation
// properties, and values which cannot be understood, are ignored.
func (s *style) set(name, value string) {
	value = strings.TrimSpace(value)
	switch name {
	case "fill":
		s.fill = ParseColor(value)
	case "stroke":
		c := ParseColor(value)
		if c.A == 0 {
			s.stroke = nil
		} else {
			s.stroke = &c
		}
	case "stroke-width":
		if w, ok := parseLength(value); ok && w >= 0 {
			s.strokeWidth = w
		}
	case "stroke-linecap":
		switch value {
		case "butt":
			s.cap = graphics.LineCapButt
		case "round":
			s.cap = graphics.LineCapRound
		case "square":
			s.cap = graphics.LineCapSquare
		}
	case "stroke-linejoin":
		switch value {
		case "miter":
			s.join = graphics.LineJoinMiter
		case "round":
			s.join = graphics.LineJoinRound
		case "bevel":
			s.join = graphics.LineJoinBevel
		}
	case "fill-rule":
		switch value {
		case "nonzero":
			s.fillRule = NonZero
		case "evenodd":
			s.fillRule = EvenOdd
		}
	case "font-size":
		if fs, ok := parseLength(value); ok && fs > 0 {
			s.fontSize = fs
		}
	case "text-anchor":
		switch value {
		case "start":
			s.anchor = Start
		case "middle":
			s.anchor = Middle
		}
	}
}
