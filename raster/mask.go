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

import "image"

// ToAlpha returns an EmitFunc which records coverage in m.  Coverage is
// combined with the existing values as if painting with an opaque color.
// Pixels outside m.Rect are ignored.
func ToAlpha(m *image.Alpha) EmitFunc {
	return func(y, xMin int, coverage []float32) {
		if y < m.Rect.Min.Y || y >= m.Rect.Max.Y {
			return
		}
		for i, c := range coverage {
			x := xMin + i
			if x < m.Rect.Min.X || x >= m.Rect.Max.X {
				continue
			}
			idx := m.PixOffset(x, y)
			old := float32(m.Pix[idx]) / 255
			v := old + c*(1-old)
			m.Pix[idx] = uint8(min(v*255+0.5, 255))
		}
	}
}
