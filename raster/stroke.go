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

package raster

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Stroke renders the outline of p, using the current Width and Cap.
// Line joins are always round.
//
// The outline is built from one quadrilateral per segment and one disc per
// join, all with the same orientation, and the union is filled with the
// nonzero winding rule.
func (r *Rasteriser) Stroke(p *path.Data, emit EmitFunc) {
	d := r.Width / 2
	if !(d > 0) || math.IsInf(d, 0) {
		return
	}

	r.outline = r.outline[:0]
	r.outlineIdx = r.outlineIdx[:0]
	r.flat = r.flat[:0]
	r.margin = d*max(math.Abs(r.CTM[0])+math.Abs(r.CTM[2]), math.Abs(r.CTM[1])+math.Abs(r.CTM[3])) + 1

	var cur, start vec.Vec2
	inSubpath, drawn := false, false
	finish := func(closed bool) {
		if inSubpath && drawn {
			r.strokeSubpath(r.flat, closed, d)
		}
		r.flat = r.flat[:0]
		drawn = false
	}
	lineTo := func(_, to vec.Vec2) {
		if n := len(r.flat); n > 0 && to.Sub(r.flat[n-1]).Length() < zeroLengthThreshold {
			return
		}
		r.flat = append(r.flat, to)
	}

	i := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			finish(false)
			cur, start = p.Coords[i], p.Coords[i]
			r.flat = append(r.flat, cur)
			inSubpath = true
			i++
		case path.CmdLineTo:
			lineTo(cur, p.Coords[i])
			cur = p.Coords[i]
			drawn = true
			i++
		case path.CmdQuadTo:
			r.flattenQuadratic(cur, p.Coords[i], p.Coords[i+1], lineTo)
			cur = p.Coords[i+1]
			drawn = true
			i += 2
		case path.CmdCubeTo:
			r.flattenCubic(cur, p.Coords[i], p.Coords[i+1], p.Coords[i+2], lineTo)
			cur = p.Coords[i+2]
			drawn = true
			i += 3
		case path.CmdClose:
			finish(true)
			// Drawing may continue from the start of the closed subpath.
			cur = start
			r.flat = append(r.flat, start)
		}
	}
	finish(false)

	r.edges = r.edges[:0]
	for k, first := range r.outlineIdx {
		last := len(r.outline)
		if k+1 < len(r.outlineIdx) {
			last = r.outlineIdx[k+1]
		}
		poly := r.outline[first:last]
		for j := range poly {
			r.addEdge(poly[j], poly[(j+1)%len(poly)])
		}
	}
	r.scan(emit)
}

// strokeSubpath adds the outline polygons for the polyline pts.
func (r *Rasteriser) strokeSubpath(pts []vec.Vec2, closed bool, d float64) {
	n := len(pts)
	if closed && n > 1 && pts[n-1].Sub(pts[0]).Length() < zeroLengthThreshold {
		n--
		pts = pts[:n]
	}

	if n == 1 {
		c := pts[0]
		switch r.Cap {
		case graphics.LineCapRound:
			r.addDisc(c, d)
		case graphics.LineCapSquare:
			r.addPolygon(
				vec.Vec2{X: c.X - d, Y: c.Y + d},
				vec.Vec2{X: c.X + d, Y: c.Y + d},
				vec.Vec2{X: c.X + d, Y: c.Y - d},
				vec.Vec2{X: c.X - d, Y: c.Y - d})
		}
		return
	}

	segs := n - 1
	if closed && n > 2 {
		segs = n
	} else {
		closed = false
	}

	for k := range segs {
		a, b := pts[k], pts[(k+1)%n]
		if !closed && r.Cap == graphics.LineCapSquare {
			t := b.Sub(a).Mul(d / b.Sub(a).Length())
			if k == 0 {
				a = a.Sub(t)
			}
			if k == segs-1 {
				b = b.Add(t)
			}
		}
		r.addSegment(a, b, d)
	}

	for k := range n {
		if !closed && (k == 0 || k == n-1) {
			continue
		}
		prev, next := pts[(k+n-1)%n], pts[(k+1)%n]
		if !collinear(prev, pts[k], next) {
			r.addDisc(pts[k], d)
		}
	}
	if !closed && r.Cap == graphics.LineCapRound {
		r.addDisc(pts[0], d)
		r.addDisc(pts[n-1], d)
	}
}

// collinear reports whether the path a → b → c continues straight at b.
func collinear(a, b, c vec.Vec2) bool {
	u, v := b.Sub(a), c.Sub(b)
	lu, lv := u.Length(), v.Length()
	if lu == 0 || lv == 0 {
		return true
	}
	cross := (u.X*v.Y - u.Y*v.X) / (lu * lv)
	return math.Abs(cross) < collinearityThreshold && u.Dot(v) > 0
}

// addSegment adds the rectangle of half-width d around the segment a–b.
func (r *Rasteriser) addSegment(a, b vec.Vec2, d float64) {
	u := b.Sub(a)
	l := u.Length()
	if l < zeroLengthThreshold {
		return
	}
	nrm := vec.Vec2{X: -u.Y, Y: u.X}.Mul(d / l)
	r.addPolygon(a.Add(nrm), b.Add(nrm), b.Sub(nrm), a.Sub(nrm))
}

// addDisc adds a polygonal approximation of the disc with center c and
// radius d.  The vertices run with the same orientation as the segment
// rectangles.
func (r *Rasteriser) addDisc(c vec.Vec2, d float64) {
	rDev := d * r.deviceScale()
	n := 8
	if rDev > r.Flatness {
		step := math.Acos(1 - r.Flatness/rDev)
		n = max(n, int(math.Ceil(math.Pi/step)))
	}
	n = min(n, maxDiscVertices)

	r.outlineIdx = append(r.outlineIdx, len(r.outline))
	for k := range n {
		phi := -2 * math.Pi * float64(k) / float64(n)
		r.outline = append(r.outline, vec.Vec2{
			X: c.X + d*math.Cos(phi),
			Y: c.Y + d*math.Sin(phi),
		})
	}
}

func (r *Rasteriser) addPolygon(pts ...vec.Vec2) {
	r.outlineIdx = append(r.outlineIdx, len(r.outline))
	r.outline = append(r.outline, pts...)
}

// maxDiscVertices bounds the number of vertices used for round joins and caps.
const maxDiscVertices = 512
