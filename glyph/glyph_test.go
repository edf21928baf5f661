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
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/flipcode/symbols"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func mustParse(t *testing.T, doc string) *Record {
	t.Helper()
	rec, ok := ParseDocument([]byte(doc))
	if !ok {
		t.Fatalf("document rejected:\n%s", doc)
	}
	return rec
}

func countCmds(p *path.Data, cmd path.Command) int {
	n := 0
	for _, c := range p.Cmds {
		if c == cmd {
			n++
		}
	}
	return n
}

func TestSynthesize(t *testing.T) {
	code := symbols.MustCode("04")
	doc := Synthesize('h', code)
	if !bytes.Equal(doc, Synthesize('h', code)) {
		t.Error("output is not deterministic")
	}

	rec := mustParse(t, string(doc))
	if rec.ViewBox != DefaultViewBox {
		t.Errorf("view box %v", rec.ViewBox)
	}
	if len(rec.Shapes) != 1 {
		t.Errorf("got %d shapes, want 1", len(rec.Shapes))
	} else if rec.Shapes[0].Fill.A == 0 {
		t.Error("background is not filled")
	}
	if len(rec.Labels) != 2 {
		t.Fatalf("got %d labels, want 2", len(rec.Labels))
	}
	if got := rec.Labels[0].Text; got != "h" {
		t.Errorf("first label %q, want %q", got, "h")
	}
	if got := rec.Labels[1].Text; got != "04" {
		t.Errorf("second label %q, want %q", got, "04")
	}
	for i, l := range rec.Labels {
		if l.Anchor != Middle {
			t.Errorf("label %d is not centered", i)
		}
	}
	if rec.Labels[1].Pos.Y <= rec.Labels[0].Pos.Y {
		t.Error("code is not beneath the letter")
	}
}

func TestSynthesizeEscapes(t *testing.T) {
	rec := mustParse(t, string(Synthesize('<', symbols.MustCode("0&1"))))
	if len(rec.Labels) != 2 || rec.Labels[0].Text != "<" || rec.Labels[1].Text != "0&1" {
		t.Errorf("labels not escaped correctly: %+v", rec.Labels)
	}
}

func TestParseDocumentInvalid(t *testing.T) {
	for _, doc := range []string{
		"",
		"  \n ",
		"not xml",
		"<html><body/></html>",
		"<svg>",
		"<svg><g></svg>",
		`<?xml version="1.0"?>`,
	} {
		if rec, ok := ParseDocument([]byte(doc)); ok || rec != nil {
			t.Errorf("%q accepted", doc)
		}
	}
}

func TestEmptyDocument(t *testing.T) {
	rec := mustParse(t, `<?xml version="1.0"?><!-- empty --><svg width="10" height="20"/>`)
	if len(rec.Shapes) != 0 || len(rec.Labels) != 0 {
		t.Errorf("unexpected content: %+v", rec)
	}
	if want := (rect.Rect{URx: 10, URy: 20}); rec.ViewBox != want {
		t.Errorf("view box %v, want %v", rec.ViewBox, want)
	}
}

func TestViewBox(t *testing.T) {
	cases := []struct {
		attrs string
		want  rect.Rect
	}{
		{`viewBox="10 20 30 40"`, rect.Rect{LLx: 10, LLy: 20, URx: 40, URy: 60}},
		{`viewBox="0,0,24,24" width="48" height="48"`, rect.Rect{URx: 24, URy: 24}},
		{`width="200px" height="100"`, rect.Rect{URx: 200, URy: 100}},
		{`viewBox="0 0 0 10" width="5" height="6"`, rect.Rect{URx: 5, URy: 6}},
		{`viewBox="0 0 -1 10"`, DefaultViewBox},
		{`width="50%" height="10"`, DefaultViewBox},
		{``, DefaultViewBox},
	}
	for _, tc := range cases {
		rec := mustParse(t, "<svg "+tc.attrs+"></svg>")
		if rec.ViewBox != tc.want {
			t.Errorf("%s: got %v, want %v", tc.attrs, rec.ViewBox, tc.want)
		}
	}
}

func TestGroupTransforms(t *testing.T) {
	rec := mustParse(t, `<svg viewBox="0 0 100 100">
		<g transform="translate(10,0)">
			<g transform="scale(2)">
				<path d="M1 1 L2 1"/>
			</g>
			<path d="M1 1"/>
		</g>
		<path d="M1 1 L 3 3"/>
		<path transform="rotate(90)" d="M1 0"/>
	</svg>`)

	want := [][]vec.Vec2{
		{{X: 12, Y: 2}, {X: 14, Y: 2}},
		{{X: 11, Y: 1}},
		{{X: 1, Y: 1}, {X: 3, Y: 3}},
		{{X: 0, Y: 1}},
	}
	if len(rec.Shapes) != len(want) {
		t.Fatalf("got %d shapes, want %d", len(rec.Shapes), len(want))
	}
	for i, s := range rec.Shapes {
		if d := cmp.Diff(want[i], s.Path.Coords, approx); d != "" {
			t.Errorf("shape %d (-want +got):\n%s", i, d)
		}
	}
}

func TestBadTransformIgnored(t *testing.T) {
	rec := mustParse(t, `<svg><g transform="wobble(3)"><path d="M1 2"/></g></svg>`)
	if len(rec.Shapes) != 1 || rec.Shapes[0].Path.Coords[0] != (vec.Vec2{X: 1, Y: 2}) {
		t.Errorf("unexpected shapes: %+v", rec.Shapes)
	}
}

func TestStylePrecedence(t *testing.T) {
	rec := mustParse(t, `<svg>
		<g fill="red" stroke="blue">
			<rect width="10" height="10" fill="#00ff00" style="fill: #0000ff; stroke-width: 3"/>
			<rect width="10" height="10"/>
			<rect width="10" height="10" fill="none" stroke="none"/>
			<rect width="10" height="10" fill="chartreuse" stroke-linejoin="round" fill-rule="evenodd"/>
		</g>
		<rect width="10" height="10"/>
	</svg>`)

	red := color.NRGBA{R: 0xff, A: 0xff}
	blue := color.NRGBA{B: 0xff, A: 0xff}
	type props struct {
		Fill        color.NRGBA
		Stroke      *color.NRGBA
		StrokeWidth float64
		Join        graphics.LineJoinStyle
		FillRule    FillRule
	}
	want := []props{
		{Fill: blue, Stroke: &blue, StrokeWidth: 3, Join: graphics.LineJoinMiter},
		{Fill: red, Stroke: &blue, StrokeWidth: 1, Join: graphics.LineJoinMiter},
		{Fill: transparent, Join: graphics.LineJoinMiter},
		{Fill: black, Stroke: &blue, StrokeWidth: 1, Join: graphics.LineJoinRound, FillRule: EvenOdd},
		{Fill: black, Join: graphics.LineJoinMiter},
	}
	var got []props
	for _, s := range rec.Shapes {
		got = append(got, props{s.Fill, s.Stroke, s.StrokeWidth, s.Join, s.FillRule})
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.NRGBA
	}{
		{"#f00", color.NRGBA{R: 0xff, A: 0xff}},
		{"#00FF00", color.NRGBA{G: 0xff, A: 0xff}},
		{"#abc", color.NRGBA{R: 0xaa, G: 0xbb, B: 0xcc, A: 0xff}},
		{"#123456", color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff}},
		{" Blue ", color.NRGBA{B: 0xff, A: 0xff}},
		{"grey", color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}},
		{"none", transparent},
		{"transparent", transparent},
		{"", black},
		{"bogus", black},
		{"#12345", black},
		{"#1234567", black},
		{"#ggg", black},
	}
	for _, tc := range cases {
		if got := ParseColor(tc.in); got != tc.want {
			t.Errorf("%q: got %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRoundedRect(t *testing.T) {
	cases := []struct {
		attrs       string
		lines, arcs int
		start       vec.Vec2
	}{
		{`width="20" height="10"`, 3, 0, vec.Vec2{}},
		{`width="20" height="10" rx="2"`, 4, 4, vec.Vec2{X: 2}},
		{`width="20" height="10" ry="2"`, 4, 4, vec.Vec2{X: 2}},
		{`x="1" y="1" width="20" height="10" rx="50"`, 0, 4, vec.Vec2{X: 11, Y: 1}},
	}
	for _, tc := range cases {
		rec := mustParse(t, `<svg><rect `+tc.attrs+`/></svg>`)
		if len(rec.Shapes) != 1 {
			t.Errorf("%s: got %d shapes", tc.attrs, len(rec.Shapes))
			continue
		}
		p := rec.Shapes[0].Path
		if p.Coords[0] != tc.start {
			t.Errorf("%s: starts at %v, want %v", tc.attrs, p.Coords[0], tc.start)
		}
		if n := countCmds(p, path.CmdLineTo); n != tc.lines {
			t.Errorf("%s: %d lines, want %d", tc.attrs, n, tc.lines)
		}
		if n := countCmds(p, path.CmdCubeTo); n != tc.arcs {
			t.Errorf("%s: %d curves, want %d", tc.attrs, n, tc.arcs)
		}
		if p.Cmds[len(p.Cmds)-1] != path.CmdClose {
			t.Errorf("%s: path is not closed", tc.attrs)
		}
	}

	rec := mustParse(t, `<svg><rect width="0" height="10"/><rect width="10"/></svg>`)
	if len(rec.Shapes) != 0 {
		t.Errorf("empty rectangles produced %d shapes", len(rec.Shapes))
	}
}

func TestCircle(t *testing.T) {
	rec := mustParse(t, `<svg><circle cx="50" cy="40" r="10"/><circle r="0"/></svg>`)
	if len(rec.Shapes) != 1 {
		t.Fatalf("got %d shapes, want 1", len(rec.Shapes))
	}
	p := rec.Shapes[0].Path
	want := []path.Command{path.CmdMoveTo, path.CmdCubeTo, path.CmdCubeTo, path.CmdCubeTo, path.CmdCubeTo, path.CmdClose}
	if d := cmp.Diff(want, p.Cmds); d != "" {
		t.Fatalf("(-want +got):\n%s", d)
	}
	center := vec.Vec2{X: 50, Y: 40}
	for _, i := range []int{0, 3, 6, 9, 12} {
		if r := p.Coords[i].Sub(center).Length(); math.Abs(r-10) > 1e-9 {
			t.Errorf("point %v has radius %g", p.Coords[i], r)
		}
	}
}

func TestLinesAndPolygons(t *testing.T) {
	rec := mustParse(t, `<svg>
		<line x1="1" y1="2" x2="3" y2="4"/>
		<polyline points="0,0 10,0 10,10"/>
		<polygon points="0 0 10 0 10 10 5"/>
		<polyline points="1 1"/>
	</svg>`)
	want := [][]path.Command{
		{path.CmdMoveTo, path.CmdLineTo},
		{path.CmdMoveTo, path.CmdLineTo, path.CmdLineTo},
		{path.CmdMoveTo, path.CmdLineTo, path.CmdLineTo, path.CmdClose},
	}
	if len(rec.Shapes) != len(want) {
		t.Fatalf("got %d shapes, want %d", len(rec.Shapes), len(want))
	}
	for i, s := range rec.Shapes {
		if d := cmp.Diff(want[i], s.Path.Cmds); d != "" {
			t.Errorf("shape %d (-want +got):\n%s", i, d)
		}
	}
}

func TestPartialPathData(t *testing.T) {
	rec := mustParse(t, `<svg><path d="M0 0 L10 0 L10 10 X 5"/><path d="garbage"/></svg>`)
	if len(rec.Shapes) != 1 {
		t.Fatalf("got %d shapes, want 1", len(rec.Shapes))
	}
	if n := len(rec.Shapes[0].Path.Cmds); n != 3 {
		t.Errorf("got %d commands, want 3", n)
	}
}

func TestUnknownElementsSkipped(t *testing.T) {
	rec := mustParse(t, `<svg>
		<title>test</title>
		<defs><path d="M0 0 L1 1"/></defs>
		<linearGradient id="g"><stop offset="0"/></linearGradient>
		<svg><path d="M0 0 L1 1"/></svg>
		<path d="M0 0 L1 1"/>
	</svg>`)
	if len(rec.Shapes) != 1 {
		t.Errorf("got %d shapes, want 1", len(rec.Shapes))
	}
}

func TestText(t *testing.T) {
	rec := mustParse(t, `<svg>
		<g transform="translate(10 20) scale(2)" fill="#ff0000">
			<text x="5" y="6" font-size="10" text-anchor="middle">Hello <tspan fill="blue">big</tspan>
				world</text>
		</g>
		<text x="1 2 3" y="4">abc</text>
		<text>   </text>
	</svg>`)

	want := []Label{
		{
			Text:     "Hello big world",
			Pos:      vec.Vec2{X: 20, Y: 32},
			FontSize: 20,
			Anchor:   Middle,
			Fill:     color.NRGBA{R: 0xff, A: 0xff},
		},
		{
			Text:     "abc",
			Pos:      vec.Vec2{X: 1, Y: 4},
			FontSize: 16,
			Anchor:   Start,
			Fill:     black,
		},
	}
	if d := cmp.Diff(want, rec.Labels, approx); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}

func TestStrokeScaling(t *testing.T) {
	rec := mustParse(t, `<svg><g transform="scale(3)">
		<line x2="1" stroke="black" stroke-width="2" stroke-linecap="round"/>
		<line x2="1" stroke="black" stroke-width="0"/>
	</g></svg>`)
	if len(rec.Shapes) != 2 {
		t.Fatalf("got %d shapes", len(rec.Shapes))
	}
	s := rec.Shapes[0]
	if s.Stroke == nil || s.StrokeWidth != 6 || s.Cap != graphics.LineCapRound {
		t.Errorf("stroke %v, width %g, cap %v", s.Stroke, s.StrokeWidth, s.Cap)
	}
	if rec.Shapes[1].Stroke != nil {
		t.Error("zero width stroke kept")
	}
}
