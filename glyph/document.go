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
	"errors"
	"io"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/flipcode/svgpath"
	"seehuhn.de/go/flipcode/transform"
)

var errNoRoot = errors.New("missing <svg> root element")

// ParseDocument reads an SVG document.
//
// The second return value is false if data is empty, is not well-formed
// XML, or does not have an <svg> root element.  Otherwise a record is
// returned, even if the document contains nothing drawable.  Malformed
// attribute values do not make the document invalid: a transform which
// cannot be read is ignored, and path data is used up to the first
// error.
func ParseDocument(data []byte) (*Record, bool) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, false
	}
	rec, err := parse(data)
	if err != nil {
		return nil, false
	}
	return rec, true
}

// walker holds the state of one document walk.
type walker struct {
	d     *xml.Decoder
	stack *transform.Stack
	rec   *Record
}

func parse(data []byte) (*Record, error) {
	d := xml.NewDecoder(bytes.NewReader(data))
	for {
		t, err := d.Token()
		if err == io.EOF {
			return nil, errNoRoot
		} else if err != nil {
			return nil, err
		}
		root, ok := t.(xml.StartElement)
		if !ok {
			continue
		}
		if root.Name.Local != "svg" {
			return nil, errNoRoot
		}

		w := &walker{
			d:     d,
			stack: transform.NewStack(matrix.Identity),
			rec:   &Record{ViewBox: viewBox(root)},
		}
		err = w.children(defaultStyle.derive(root.Attr))
		if err != nil {
			return nil, err
		}
		return w.rec, nil
	}
}

// viewBox determines the intrinsic coordinate frame of a document.
func viewBox(root xml.StartElement) rect.Rect {
	if vb, ok := findAttr(root, "viewBox"); ok {
		v, err := svgpath.ParseNumbers(vb)
		if err == nil && len(v) == 4 && v[2] > 0 && v[3] > 0 {
			return rect.Rect{LLx: v[0], LLy: v[1], URx: v[0] + v[2], URy: v[1] + v[3]}
		}
	}
	width, wOK := lengthAttr(root, "width")
	height, hOK := lengthAttr(root, "height")
	if wOK && hOK && width > 0 && height > 0 {
		return rect.Rect{URx: width, URy: height}
	}
	return DefaultViewBox
}

// children visits the content of the current element, up to and
// including its end tag.
func (w *walker) children(st style) error {
	for {
		t, err := w.d.Token()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return err
		}
		switch t := t.(type) {
		case xml.StartElement:
			if err := w.element(t, st); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// element visits one element and its content.
func (w *walker) element(e xml.StartElement, parent style) error {
	switch e.Name.Local {
	case "g", "path", "rect", "circle", "ellipse", "line", "polyline", "polygon", "text":
		// handled below
	default:
		return w.d.Skip()
	}

	local := matrix.Identity
	if attr, ok := findAttr(e, "transform"); ok {
		if m, err := transform.Parse(attr); err == nil {
			local = m
		}
	}
	w.stack.Push(local)
	defer w.stack.Pop()

	st := parent.derive(e.Attr)

	switch e.Name.Local {
	case "g":
		return w.children(st)
	case "text":
		return w.text(e, st)
	}

	p := shapePath(e)
	if p != nil && len(p.Cmds) > 0 {
		w.addShape(p, st)
	}
	return w.d.Skip()
}

func (w *walker) addShape(p *path.Data, st style) {
	m := w.stack.Top()
	shape := Shape{
		Path:     transform.Path(p, m),
		Fill:     st.fill,
		FillRule: st.fillRule,
		Cap:      st.cap,
		Join:     st.join,
	}
	if st.stroke != nil && st.strokeWidth > 0 {
		c := *st.stroke
		shape.Stroke = &c
		shape.StrokeWidth = st.strokeWidth * transform.MeanScale(m)
	}
	w.rec.Shapes = append(w.rec.Shapes, shape)
}

// text collects the character data of a text element, including the
// content of nested tspan elements.
func (w *walker) text(e xml.StartElement, st style) error {
	var buf strings.Builder
	err := w.collectText(&buf)
	if err != nil {
		return err
	}
	content := strings.Join(strings.Fields(buf.String()), " ")
	if content == "" {
		return nil
	}

	x, _ := lengthAttr(e, "x")
	y, _ := lengthAttr(e, "y")
	m := w.stack.Top()
	w.rec.Labels = append(w.rec.Labels, Label{
		Text:     content,
		Pos:      m.Apply(vec.Vec2{X: x, Y: y}),
		FontSize: st.fontSize * transform.MeanScale(m),
		Anchor:   st.anchor,
		Fill:     st.fill,
	})
	return nil
}

func (w *walker) collectText(buf *strings.Builder) error {
	for {
		t, err := w.d.Token()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return err
		}
		switch t := t.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.StartElement:
			var err error
			if t.Name.Local == "tspan" {
				buf.WriteByte(' ')
				err = w.collectText(buf)
				buf.WriteByte(' ')
			} else {
				err = w.d.Skip()
			}
			if err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func findAttr(e xml.StartElement, name string) (string, bool) {
	for _, a := range e.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// parseLength reads a single number, optionally followed by "px".
func parseLength(s string) (float64, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	v, err := svgpath.ParseNumbers(s)
	if err != nil || len(v) != 1 {
		return 0, false
	}
	return v[0], true
}

// lengthAttr reads a length attribute.  If the attribute holds a list,
// as is allowed for the x and y attributes of text elements, the first
// entry is used.
func lengthAttr(e xml.StartElement, name string) (float64, bool) {
	s, ok := findAttr(e, name)
	if !ok {
		return 0, false
	}
	if x, ok := parseLength(s); ok {
		return x, true
	}
	v, _ := svgpath.ParseNumbers(s)
	if len(v) > 1 {
		return v[0], true
	}
	return 0, false
}
