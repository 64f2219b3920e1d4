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

// Package eraser decides which annotations are touched by the eraser and
// removes them.
//
// The eraser has no notion of a topmost annotation: every annotation
// touched by the eraser disc is removed.
package eraser

import (
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/folio/annotation"
	"seehuhn.de/go/folio/geometry"
	"seehuhn.de/go/folio/paint"
)

// Hit reports whether an eraser of the given size at pt touches a.
// The tolerance is the eraser size plus the stroke width of a, or plus 1
// for annotations without a stroke width.
func Hit(a annotation.Annotation, pt vec.Vec2, size float64) bool {
	w := annotation.StrokeWidth(a)
	if !(w > 0) {
		w = 1
	}
	return Within(a, pt, size+w)
}

// Within reports whether pt lies within distance tol of the geometry of a.
//
// Rectangles are hit by points inside them or within tol of their border.
// Text and sticky notes are hit by points inside their box; tol does not
// apply to them.  Annotations which cannot be drawn are never hit.
func Within(a annotation.Annotation, pt vec.Vec2, tol float64) bool {
	if !geometry.Finite(pt) || math.IsNaN(tol) {
		return false
	}

	switch b := a.Body.(type) {
	case *annotation.Path:
		return geometry.NearPolyline(pt, b.Points, tol)

	case *annotation.Shape:
		switch b.Form {
		case annotation.KindRectangle:
			return hitRect(pt, b.Start, b.End, tol)
		case annotation.KindCircle:
			return geometry.InEllipse(pt, b.Start, b.End, tol)
		}

	case *annotation.Arrow:
		return geometry.NearSegment(pt, b.Start, b.End, tol)

	case *annotation.Text:
		if b.Text == "" {
			return false
		}
		return inside(pt, paint.TextBubble(b, nil))

	case *annotation.StickyNote:
		return inside(pt, paint.NoteRect(b))
	}
	return false
}

func hitRect(pt, c1, c2 vec.Vec2, tol float64) bool {
	if geometry.InAxisRect(pt, c1, c2, 0) {
		return true
	}
	r := geometry.Rect(c1, c2)
	corners := []vec.Vec2{
		{X: r.LLx, Y: r.LLy},
		{X: r.URx, Y: r.LLy},
		{X: r.URx, Y: r.URy},
		{X: r.LLx, Y: r.URy},
		{X: r.LLx, Y: r.LLy},
	}
	return geometry.NearPolyline(pt, corners, tol)
}

func inside(pt vec.Vec2, r rect.Rect) bool {
	return r.LLx <= pt.X && pt.X <= r.URx && r.LLy <= pt.Y && pt.Y <= r.URy
}

// Store is the part of [annotation.Store] used by [Erase].
type Store interface {
	Page(n int) []annotation.Annotation
	RemoveByID(id string, n int) bool
}

// Erase removes every annotation on the given page which is hit by an
// eraser of the given size at pt.  The ids of the removed annotations are
// returned in drawing order.  The caller is responsible for redrawing the
// page.
func Erase(s Store, page int, pt vec.Vec2, size float64) []string {
	var removed []string
	for _, a := range s.Page(page) {
		if Hit(a, pt, size) && s.RemoveByID(a.ID, page) {
			removed = append(removed, a.ID)
		}
	}
	return removed
}
