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

// Package geometry implements the distance and containment tests used to
// hit-test annotations.
//
// All functions are pure.  Non-finite input never produces a match: every
// test is phrased as a "<=" comparison, which is false for NaN.
package geometry

import (
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Distance returns the Euclidean distance between p and q.
func Distance(p, q vec.Vec2) float64 {
	return p.Sub(q).Length()
}

// NearSegment reports whether p lies within tol of the line segment from a
// to b.  The projection of p onto the segment is clamped to the end points.
// A degenerate segment (a == b) is treated as the single point a.
func NearSegment(p, a, b vec.Vec2, tol float64) bool {
	ab := b.Sub(a)
	len2 := ab.Dot(ab)
	if len2 == 0 {
		return Distance(p, a) <= tol
	}

	t := p.Sub(a).Dot(ab) / len2
	t = max(0, min(1, t))
	closest := a.Add(ab.Mul(t))
	return Distance(p, closest) <= tol
}

// NearPolyline reports whether p lies within tol of any segment of the
// polyline through pts.  Fewer than two points form no segment.
func NearPolyline(p vec.Vec2, pts []vec.Vec2, tol float64) bool {
	for i := 1; i < len(pts); i++ {
		if NearSegment(p, pts[i-1], pts[i], tol) {
			return true
		}
	}
	return false
}

// Rect returns the axis-aligned rectangle spanned by two corners,
// given in any order.
func Rect(c1, c2 vec.Vec2) rect.Rect {
	return rect.Rect{
		LLx: min(c1.X, c2.X),
		LLy: min(c1.Y, c2.Y),
		URx: max(c1.X, c2.X),
		URy: max(c1.Y, c2.Y),
	}
}

// InAxisRect reports whether p lies inside the rectangle spanned by c1 and
// c2, enlarged by tol on every side.
func InAxisRect(p, c1, c2 vec.Vec2, tol float64) bool {
	r := Rect(c1, c2)
	return r.LLx-tol <= p.X && p.X <= r.URx+tol &&
		r.LLy-tol <= p.Y && p.Y <= r.URy+tol
}

// InEllipse reports whether p lies inside the ellipse inscribed in the
// rectangle spanned by c1 and c2, with both radii enlarged by tol.
// An ellipse with a zero enlarged radius contains no points.
func InEllipse(p, c1, c2 vec.Vec2, tol float64) bool {
	cx, cy, rx, ry := EllipseOf(c1, c2)
	rx += tol
	ry += tol
	if !(rx > 0 && ry > 0) {
		return false
	}

	dx := (p.X - cx) / rx
	dy := (p.Y - cy) / ry
	return dx*dx+dy*dy <= 1
}

// EllipseOf returns the center and radii of the ellipse inscribed in the
// rectangle spanned by c1 and c2.
func EllipseOf(c1, c2 vec.Vec2) (cx, cy, rx, ry float64) {
	cx = (c1.X + c2.X) / 2
	cy = (c1.Y + c2.Y) / 2
	rx = math.Abs(c2.X-c1.X) / 2
	ry = math.Abs(c2.Y-c1.Y) / 2
	return cx, cy, rx, ry
}

// Finite reports whether both coordinates of p are finite numbers.
func Finite(p vec.Vec2) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
