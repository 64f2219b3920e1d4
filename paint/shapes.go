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

package paint

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// kappa is the control point distance for a quarter ellipse made of one
// cubic Bézier curve, relative to the radius.
const kappa = 0.5522847498

// SmoothPath returns a path through pts which avoids visible corners at
// the sample points.
//
// Each interior point becomes the control point of a quadratic curve
// ending at the midpoint to the next sample; the final piece is a straight
// line to the last point.  Fewer than two points give nil.
func SmoothPath(pts []vec.Vec2) *path.Data {
	n := len(pts)
	if n < 2 {
		return nil
	}

	p := (&path.Data{}).MoveTo(pts[0])
	for i := 1; i < n-1; i++ {
		mid := pts[i].Add(pts[i+1]).Mul(0.5)
		quadTo(p, pts[i], mid)
	}
	return p.LineTo(pts[n-1])
}

func quadTo(p *path.Data, ctrl, end vec.Vec2) {
	p.Cmds = append(p.Cmds, path.CmdQuadTo)
	p.Coords = append(p.Coords, ctrl, end)
}

func cubeTo(p *path.Data, c1, c2, end vec.Vec2) {
	p.Cmds = append(p.Cmds, path.CmdCubeTo)
	p.Coords = append(p.Coords, c1, c2, end)
}

// roundedRect returns the outline of r with corners rounded by the given
// radius.  The radius is reduced for rectangles too small to hold it.
func roundedRect(r rect.Rect, radius float64) *path.Data {
	w, h := r.URx-r.LLx, r.URy-r.LLy
	radius = max(0, min(radius, w/2, h/2))
	k := radius * (1 - kappa)

	x0, y0, x1, y1 := r.LLx, r.LLy, r.URx, r.URy
	p := (&path.Data{}).MoveTo(vec.Vec2{X: x0 + radius, Y: y0})
	p.LineTo(vec.Vec2{X: x1 - radius, Y: y0})
	if radius > 0 {
		cubeTo(p, vec.Vec2{X: x1 - k, Y: y0}, vec.Vec2{X: x1, Y: y0 + k}, vec.Vec2{X: x1, Y: y0 + radius})
	}
	p.LineTo(vec.Vec2{X: x1, Y: y1 - radius})
	if radius > 0 {
		cubeTo(p, vec.Vec2{X: x1, Y: y1 - k}, vec.Vec2{X: x1 - k, Y: y1}, vec.Vec2{X: x1 - radius, Y: y1})
	}
	p.LineTo(vec.Vec2{X: x0 + radius, Y: y1})
	if radius > 0 {
		cubeTo(p, vec.Vec2{X: x0 + k, Y: y1}, vec.Vec2{X: x0, Y: y1 - k}, vec.Vec2{X: x0, Y: y1 - radius})
	}
	p.LineTo(vec.Vec2{X: x0, Y: y0 + radius})
	if radius > 0 {
		cubeTo(p, vec.Vec2{X: x0, Y: y0 + k}, vec.Vec2{X: x0 + k, Y: y0}, vec.Vec2{X: x0 + radius, Y: y0})
	}
	return p.Close()
}

// ellipse returns the outline of the axis-aligned ellipse with center
// (cx, cy) and radii rx, ry.
func ellipse(cx, cy, rx, ry float64) *path.Data {
	kx, ky := kappa*rx, kappa*ry
	pt := func(x, y float64) vec.Vec2 { return vec.Vec2{X: cx + x, Y: cy + y} }

	p := (&path.Data{}).MoveTo(pt(rx, 0))
	cubeTo(p, pt(rx, ky), pt(kx, ry), pt(0, ry))
	cubeTo(p, pt(-kx, ry), pt(-rx, ky), pt(-rx, 0))
	cubeTo(p, pt(-rx, -ky), pt(-kx, -ry), pt(0, -ry))
	cubeTo(p, pt(kx, -ry), pt(rx, -ky), pt(rx, 0))
	return p.Close()
}

// arrowHead returns the concave head of an arrow pointing from start to
// end.  The tip is at end.
func arrowHead(start, end vec.Vec2) *path.Data {
	heading := math.Atan2(end.Y-start.Y, end.X-start.X)
	back := func(angle, length float64) vec.Vec2 {
		return end.Sub(vec.Vec2{X: math.Cos(angle), Y: math.Sin(angle)}.Mul(length))
	}

	return (&path.Data{}).
		MoveTo(end).
		LineTo(back(heading-ArrowHeadAngle, ArrowHeadLength)).
		LineTo(back(heading, ArrowHeadLength*arrowNotch)).
		LineTo(back(heading+ArrowHeadAngle, ArrowHeadLength)).
		Close()
}

func polygon(pts ...vec.Vec2) *path.Data {
	p := (&path.Data{}).MoveTo(pts[0])
	for _, pt := range pts[1:] {
		p.LineTo(pt)
	}
	return p.Close()
}
