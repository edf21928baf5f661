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
	"bytes"
	"encoding/xml"
	"fmt"

	"seehuhn.de/go/flipcode/symbols"
)

// Synthesize returns a placeholder document for a letter which has no
// artwork.  The document shows a rounded tile with the letter and, beneath
// it, the code exactly as given.  The output only depends on the
// arguments.
func Synthesize(letter rune, code symbols.Code) []byte {
	vb := DefaultViewBox
	w, h := vb.URx-vb.LLx, vb.URy-vb.LLy

	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%g %g %g %g">`+"\n",
		vb.LLx, vb.LLy, w, h)
	fmt.Fprintf(buf, `  <rect x="%g" y="%g" width="%g" height="%g" rx="%g" fill="#eeeeee" stroke="#999999" stroke-width="2"/>`+"\n",
		vb.LLx+4, vb.LLy+4, w-8, h-8, w/8)

	label := func(text string, y, size float64, fill string) {
		fmt.Fprintf(buf, `  <text x="%g" y="%g" text-anchor="middle" font-size="%g" fill="%s">`,
			vb.LLx+w/2, vb.LLy+y, size, fill)
		xml.EscapeText(buf, []byte(text))
		buf.WriteString("</text>\n")
	}
	label(string(letter), h/2, 2*h/5, "#333333")
	label(code.String(), h-18, h/5, "#666666")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
