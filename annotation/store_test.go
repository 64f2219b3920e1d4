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
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func brush(page int, pts ...Point) Annotation {
	return Annotation{
		Page: page,
		Body: &Path{
			Tool:        KindBrush,
			Points:      pts,
			Color:       "#e53935",
			StrokeWidth: 3,
			Opacity:     1,
		},
	}
}

func ids(list []Annotation) []string {
	var res []string
	for _, a := range list {
		res = append(res, a.ID)
	}
	return res
}

func TestAddAssignsIDAndTime(t *testing.T) {
	s := NewStore("doc_1_2", "doc.pdf")
	before := time.Now()
	a, err := s.Add(brush(1, Point{X: 0, Y: 0}, Point{X: 1, Y: 1}))
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == "" {
		t.Error("no id assigned")
	}
	if a.CreatedAt.Before(before) {
		t.Errorf("CreatedAt %v before call", a.CreatedAt)
	}
	if !s.Dirty() {
		t.Error("store not dirty after Add")
	}

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	in := brush(1, Point{X: 0, Y: 0}, Point{X: 1, Y: 1})
	in.ID = "given"
	in.CreatedAt = fixed
	b, err := s.Add(in)
	if err != nil {
		t.Fatal(err)
	}
	if b.ID != "given" || !b.CreatedAt.Equal(fixed) {
		t.Errorf("preset fields overwritten: %q %v", b.ID, b.CreatedAt)
	}
}

func TestAddRejectsInvalid(t *testing.T) {
	p := Point{X: 1, Y: 1}
	cases := []struct {
		name string
		a    Annotation
	}{
		{"page zero", brush(0, p, p)},
		{"single point", brush(1, p)},
		{"no body", Annotation{Page: 1}},
		{"unknown", Annotation{Page: 1, Body: &Unknown{Type: "stamp"}}},
		{"zero opacity", Annotation{Page: 1, Body: &Shape{Form: KindRectangle, Color: "red", StrokeWidth: 1}}},
		{"bad colour", Annotation{Page: 1, Body: &Arrow{Color: "#12", StrokeWidth: 1, Opacity: 1}}},
		{"zero width", Annotation{Page: 1, Body: &Arrow{Color: "#123", Opacity: 1}}},
		{"empty text", Annotation{Page: 1, Body: &Text{FontSize: 16, Color: "#000", Opacity: 1}}},
		{"flat note", Annotation{Page: 1, Body: &StickyNote{Text: "x", Width: 200, Color: "#000", Opacity: 1}}},
		{"wrong form", Annotation{Page: 1, Body: &Shape{Form: KindArrow, Color: "red", StrokeWidth: 1, Opacity: 1}}},
	}

	s := NewStore("d", "d.pdf")
	for _, c := range cases {
		if _, err := s.Add(c.a); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: got %v, want ErrInvalid", c.name, err)
		}
	}
	if s.Dirty() || len(s.Pages()) != 0 {
		t.Error("rejected annotations changed the store")
	}
}

func TestOrderPreserved(t *testing.T) {
	s := NewStore("d", "d.pdf")
	var want []string
	for i := range 5 {
		a, err := s.Add(brush(2, Point{X: float64(i)}, Point{X: float64(i), Y: 1}))
		if err != nil {
			t.Fatal(err)
		}
		want = append(want, a.ID)
	}
	if d := cmp.Diff(want, ids(s.Page(2))); d != "" {
		t.Fatalf("page order (-want +got):\n%s", d)
	}

	s.RemoveByID(want[2], 2)
	want = append(want[:2], want[3:]...)
	if d := cmp.Diff(want, ids(s.Page(2))); d != "" {
		t.Errorf("order after removal (-want +got):\n%s", d)
	}
}

func TestRemoveIdempotent(t *testing.T) {
	s := NewStore("d", "d.pdf")
	a, _ := s.Add(brush(1, Point{}, Point{X: 1}))
	b, _ := s.Add(brush(1, Point{}, Point{X: 2}))

	if !s.RemoveByID(a.ID, 1) {
		t.Fatal("first removal failed")
	}
	once := s.Page(1)
	gen := s.Generation()

	if s.RemoveByID(a.ID, 1) {
		t.Error("second removal reported success")
	}
	if s.Generation() != gen {
		t.Error("no-op removal changed the generation")
	}
	if d := cmp.Diff(once, s.Page(1)); d != "" {
		t.Errorf("state changed by second removal (-once +twice):\n%s", d)
	}
	if s.RemoveByID(b.ID, 7) {
		t.Error("removal on wrong page succeeded")
	}
}

func TestPageIsCopy(t *testing.T) {
	s := NewStore("d", "d.pdf")
	s.Add(brush(1, Point{}, Point{X: 1}))
	list := s.Page(1)
	list[0].ID = "changed"
	if s.Page(1)[0].ID == "changed" {
		t.Error("Page exposes internal slice")
	}
	if len(s.Page(99)) != 0 {
		t.Error("unused page not empty")
	}
}

func TestClear(t *testing.T) {
	s := NewStore("d", "d.pdf")
	s.Add(brush(1, Point{}, Point{X: 1}))
	s.Add(brush(3, Point{}, Point{X: 1}))

	s.ClearPage(1)
	if d := cmp.Diff([]int{3}, s.Pages()); d != "" {
		t.Errorf("pages after ClearPage (-want +got):\n%s", d)
	}
	s.ClearAll()
	if len(s.Pages()) != 0 {
		t.Errorf("pages after ClearAll: %v", s.Pages())
	}
}

func TestMarkSaved(t *testing.T) {
	s := NewStore("d", "d.pdf")
	s.Add(brush(1, Point{}, Point{X: 1}))

	snap := s.Snapshot()
	s.Add(brush(1, Point{}, Point{X: 2})) // modified while saving
	s.MarkSaved(snap.Generation)
	if !s.Dirty() {
		t.Error("store clean although modified after the snapshot")
	}

	s.MarkSaved(s.Snapshot().Generation)
	if s.Dirty() {
		t.Error("store still dirty after saving the current generation")
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s := NewStore("d", "d.pdf")
	s.Add(brush(1, Point{}, Point{X: 1}))
	snap := s.Snapshot()
	snap.Pages[1][0].Body.(*Path).Points[0].X = 42
	if s.Page(1)[0].Body.(*Path).Points[0].X == 42 {
		t.Error("snapshot shares points with the store")
	}
}

func TestRestore(t *testing.T) {
	s := NewStore("doc_10_20", "doc.pdf")
	s.Add(brush(1, Point{}, Point{X: 1}))
	s.Add(Annotation{Page: 4, Body: &StickyNote{
		Position: Point{X: 5, Y: 5}, Text: "hello", Width: 200, Height: 150,
		Color: "#fff59d", Opacity: 1,
	}})

	r := Restore(s.Snapshot())
	if r.Dirty() {
		t.Error("restored store is dirty")
	}
	if r.DocumentID() != "doc_10_20" || r.Name() != "doc.pdf" {
		t.Errorf("identity lost: %q %q", r.DocumentID(), r.Name())
	}
	for _, n := range []int{1, 4} {
		if d := cmp.Diff(s.Page(n), r.Page(n)); d != "" {
			t.Errorf("page %d (-orig +restored):\n%s", n, d)
		}
	}
}
