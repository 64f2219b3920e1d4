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

package annotation

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSnapshotRoundTrip(t *testing.T) {
	s := NewStore("doc.pdf_1024_1700000000000", "doc.pdf")
	add := func(a Annotation) {
		t.Helper()
		if _, err := s.Add(a); err != nil {
			t.Fatal(err)
		}
	}
	add(brush(1, Point{X: 1, Y: 2}, Point{X: 3.5, Y: 4.25}, Point{X: 7, Y: 1}))
	add(Annotation{Page: 1, Body: &Path{
		Tool: KindHighlighter, Points: []Point{{X: 0, Y: 0}, {X: 100, Y: 0}},
		Color: "#ffeb3b", StrokeWidth: 20, Opacity: 1,
	}})
	add(Annotation{Page: 2, Body: &Shape{
		Form: KindRectangle, Start: Point{X: 50, Y: 50}, End: Point{X: 10, Y: 10},
		Color: "blue", StrokeWidth: 2, Opacity: 0.5,
	}})
	add(Annotation{Page: 2, Body: &Shape{
		Form: KindCircle, Start: Point{X: 0, Y: 0}, End: Point{X: 20, Y: 10},
		Color: "rgb(10, 20, 30)", StrokeWidth: 2, Opacity: 1,
	}})
	add(Annotation{Page: 3, Body: &Arrow{
		Start: Point{X: 0, Y: 0}, End: Point{X: 30, Y: 40},
		Color: "#000", StrokeWidth: 2, Opacity: 1,
	}})
	add(Annotation{Page: 3, Body: &Text{
		Position: Point{X: 100, Y: 100}, Text: "Größe", FontSize: 16,
		Color: "#333333", Opacity: 1, Width: 52, Height: 24,
	}})
	add(Annotation{Page: 10, Body: &StickyNote{
		Position: Point{X: 5, Y: 5}, Text: "remember this", Width: 200, Height: 150,
		Color: "#fff59d", Opacity: 1,
	}})

	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatal(err)
	}
	r := Restore(&snap)

	if d := cmp.Diff(s.Pages(), r.Pages()); d != "" {
		t.Fatalf("pages (-orig +loaded):\n%s", d)
	}
	for _, n := range s.Pages() {
		if d := cmp.Diff(s.Page(n), r.Page(n)); d != "" {
			t.Errorf("page %d (-orig +loaded):\n%s", n, d)
		}
	}
}

func TestWireFormat(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 600, time.UTC)
	snap := &Snapshot{
		DocumentID:   "a_1_2",
		FileName:     "a.pdf",
		LastModified: created,
		Pages: map[int][]Annotation{
			7: {{
				ID: "x1", Page: 7, CreatedAt: created,
				Body: &Arrow{Start: Point{X: 1, Y: 2}, End: Point{X: 3, Y: 4}, Color: "#000", StrokeWidth: 2, Opacity: 1},
			}},
		},
	}
	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"documentId":"a_1_2","fileName":"a.pdf","lastModified":"2026-01-02T03:04:05.0000006Z",` +
		`"pages":{"7":[{"id":"x1","type":"arrow","page":7,"createdAt":"2026-01-02T03:04:05.0000006Z",` +
		`"color":"#000","strokeWidth":2,"opacity":1,"startPoint":{"x":1,"y":2},"endPoint":{"x":3,"y":4}}]}}`
	if d := cmp.Diff(want, string(data)); d != "" {
		t.Errorf("wire format (-want +got):\n%s", d)
	}
}

func TestUnknownPreserved(t *testing.T) {
	in := `{"documentId":"d","fileName":"d.pdf","lastModified":"2026-01-01T00:00:00Z","pages":{"1":[` +
		`{"id":"s1","type":"stamp","page":1,"icon":"approved"},` +
		`{"id":"r1","type":"rectangle","page":1,"color":"red"},` +
		`{"id":"b1","type":"brush","page":1,"points":"oops"}` +
		`]}}`

	var snap Snapshot
	if err := json.Unmarshal([]byte(in), &snap); err != nil {
		t.Fatal(err)
	}
	list := snap.Pages[1]
	if len(list) != 3 {
		t.Fatalf("got %d annotations, want 3", len(list))
	}
	for i, id := range []string{"s1", "r1", "b1"} {
		if _, ok := list[i].Body.(*Unknown); !ok {
			t.Errorf("annotation %d decoded as %T, want *Unknown", i, list[i].Body)
		}
		if list[i].ID != id {
			t.Errorf("annotation %d has id %q, want %q", i, list[i].ID, id)
		}
	}
	if list[0].Kind() != "stamp" {
		t.Errorf("kind %q, want stamp", list[0].Kind())
	}

	out, err := json.Marshal(snap.Pages[1])
	if err != nil {
		t.Fatal(err)
	}
	for _, frag := range []string{`"icon":"approved"`, `"points":"oops"`, `{"id":"r1","type":"rectangle","page":1,"color":"red"}`} {
		if !strings.Contains(string(out), frag) {
			t.Errorf("re-encoded data lost %s:\n%s", frag, out)
		}
	}
}

func TestDecodeDefaults(t *testing.T) {
	in := `[{"id":"t","type":"text","page":1,"position":{"x":1,"y":2},"text":"hi"},` +
		`{"id":"p","type":"brush","page":1,"points":[{"x":0,"y":0},{"x":1,"y":1}],"color":"#000"}]`
	var list []Annotation
	if err := json.Unmarshal([]byte(in), &list); err != nil {
		t.Fatal(err)
	}

	want := []Annotation{
		{ID: "t", Page: 1, Body: &Text{Position: Point{X: 1, Y: 2}, Text: "hi", FontSize: DefaultFontSize, Opacity: 1}},
		{ID: "p", Page: 1, Body: &Path{Tool: KindBrush, Points: []Point{{}, {X: 1, Y: 1}}, Color: "#000", Opacity: 1}},
	}
	if d := cmp.Diff(want, list); d != "" {
		t.Errorf("decoded (-want +got):\n%s", d)
	}
}
