// seehuhn.de/go/folio - page annotations for document viewers
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

package eraser

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/folio/annotation"
)

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

func rectangle(c1, c2 vec.Vec2, width float64) annotation.Annotation {
	return annotation.Annotation{Page: 1, Body: &annotation.Shape{
		Form: annotation.KindRectangle, Start: c1, End: c2,
		Color: "#000", StrokeWidth: width, Opacity: 1,
	}}
}

func TestRectangleSymmetry(t *testing.T) {
	for _, corners := range [][2]vec.Vec2{
		{pt(10, 10), pt(50, 50)},
		{pt(50, 50), pt(10, 10)},
		{pt(10, 50), pt(50, 10)},
	} {
		a := rectangle(corners[0], corners[1], 2)
		cases := []struct {
			p    vec.Vec2
			tol  float64
			want bool
		}{
			{pt(30, 30), 0, true},
			{pt(100, 100), 0, false},
			{pt(50, 5), 6, true},
			{pt(50, 5), 4, false},
		}
		for _, c := range cases {
			if got := Within(a, c.p, c.tol); got != c.want {
				t.Errorf("corners %v: Within(%v, %g) = %t, want %t", corners, c.p, c.tol, got, c.want)
			}
		}
	}
}

func TestHitAddsStrokeWidth(t *testing.T) {
	a := rectangle(pt(10, 10), pt(50, 50), 2)
	// distance 5 from the top border
	if Hit(a, pt(30, 5), 2) {
		t.Error("hit with tolerance 2+2")
	}
	if !Hit(a, pt(30, 5), 3) {
		t.Error("no hit with tolerance 3+2")
	}

	// annotations without a stroke width use 1
	note := annotation.Annotation{Page: 1, Body: &annotation.Arrow{Start: pt(0, 0), End: pt(10, 0)}}
	if !Hit(note, pt(5, 3), 2) || Hit(note, pt(5, 3.5), 2) {
		t.Error("default stroke width not applied")
	}
}

func TestPathAndArrow(t *testing.T) {
	path := annotation.Annotation{Page: 1, Body: &annotation.Path{
		Tool:   annotation.KindBrush,
		Points: []vec.Vec2{pt(0, 0), pt(10, 0), pt(10, 10)},
		Color:  "#000", StrokeWidth: 1, Opacity: 1,
	}}
	if !Within(path, pt(12, 5), 2) {
		t.Error("point near second segment missed")
	}
	if Within(path, pt(5, 5), 2) {
		t.Error("point inside the bend hit")
	}

	arrow := annotation.Annotation{Page: 1, Body: &annotation.Arrow{
		Start: pt(0, 0), End: pt(100, 0), StrokeWidth: 2, Opacity: 1,
	}}
	// the arrow head is not tested separately
	if Within(arrow, pt(90, 6), 3) {
		t.Error("hit on arrow head region")
	}
	if !Within(arrow, pt(50, -3), 3) {
		t.Error("miss on the arrow line")
	}
}

func TestCircle(t *testing.T) {
	a := annotation.Annotation{Page: 1, Body: &annotation.Shape{
		Form: annotation.KindCircle, Start: pt(0, 0), End: pt(20, 10),
		StrokeWidth: 1, Opacity: 1,
	}}
	if !Within(a, pt(10, 5), 0) || !Within(a, pt(21, 5), 1) {
		t.Error("points in the ellipse missed")
	}
	if Within(a, pt(1, 1), 0) {
		t.Error("corner of the bounding box hit")
	}
}

func TestTextAndNote(t *testing.T) {
	text := annotation.Annotation{Page: 1, Body: &annotation.Text{
		Position: pt(100, 100), Text: "hello", FontSize: 10, Opacity: 1,
	}}
	// estimated bubble: x from 96 to 96+5*6+8 = 134, y from 82 to 100
	for _, c := range []struct {
		p    vec.Vec2
		want bool
	}{
		{pt(110, 90), true},
		{pt(133, 83), true},
		{pt(136, 90), false},
		{pt(110, 101), false},
		{pt(110, 80), false},
	} {
		if got := Within(text, c.p, 50); got != c.want {
			t.Errorf("text: Within(%v) = %t, want %t", c.p, got, c.want)
		}
	}

	measured := text
	measured.Body = &annotation.Text{
		Position: pt(100, 100), Text: "hello", FontSize: 10, Opacity: 1,
		Width: 100, Height: 18,
	}
	if !Within(measured, pt(190, 90), 0) {
		t.Error("stored extents not used")
	}

	note := annotation.Annotation{Page: 1, Body: &annotation.StickyNote{
		Position: pt(10, 10), Width: 200, Height: 150, Text: "x", Opacity: 1,
	}}
	if !Within(note, pt(210, 160), 0) || Within(note, pt(211, 100), 100) {
		t.Error("sticky note box wrong")
	}
}

func TestNoMatch(t *testing.T) {
	a := rectangle(pt(10, 10), pt(50, 50), 2)
	if Within(a, pt(math.NaN(), 30), 10) {
		t.Error("NaN point hit")
	}
	if Within(a, pt(30, 30), math.NaN()) {
		t.Error("NaN tolerance hit")
	}
	u := annotation.Annotation{Page: 1, Body: &annotation.Unknown{Type: "stamp"}}
	if Within(u, pt(0, 0), math.Inf(1)) {
		t.Error("unknown annotation hit")
	}
	if Within(annotation.Annotation{Page: 1}, pt(0, 0), math.Inf(1)) {
		t.Error("annotation without body hit")
	}
}

func TestErase(t *testing.T) {
	s := annotation.NewStore("d", "d.pdf")
	add := func(a annotation.Annotation) string {
		t.Helper()
		a, err := s.Add(a)
		if err != nil {
			t.Fatal(err)
		}
		return a.ID
	}
	r1 := add(rectangle(pt(10, 10), pt(50, 50), 2))
	far := add(rectangle(pt(200, 200), pt(250, 250), 2))
	r2 := add(rectangle(pt(20, 20), pt(40, 40), 2))
	other := rectangle(pt(10, 10), pt(50, 50), 2)
	other.Page = 2
	add(other)

	removed := Erase(s, 1, pt(30, 30), 5)
	if d := cmp.Diff([]string{r1, r2}, removed); d != "" {
		t.Errorf("removed (-want +got):\n%s", d)
	}

	var left []string
	for _, a := range s.Page(1) {
		left = append(left, a.ID)
	}
	if d := cmp.Diff([]string{far}, left); d != "" {
		t.Errorf("remaining (-want +got):\n%s", d)
	}
	if len(s.Page(2)) != 1 {
		t.Error("erase touched another page")
	}
	if got := Erase(s, 1, pt(30, 30), 5); got != nil {
		t.Errorf("second erase removed %v", got)
	}
}
