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

// Package raster converts paths into anti-aliased pixel coverage.
//
// A [Rasteriser] fills paths with the nonzero winding rule and strokes them
// with round joins.  Coverage is computed exactly from the signed area of
// the path within each pixel, and delivered one row at a time through a
// callback:
//
//	emit(y, xMin int, coverage []float32)
//
// where coverage[i] is the coverage of pixel (xMin+i, y), in [0, 1].
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// EmitFunc receives the coverage of one pixel row.
// The coverage slice is only valid for the duration of the call.
type EmitFunc func(y, xMin int, coverage []float32)

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

func (e *edge) yMin() float64 { return min(e.y0, e.y1) }
func (e *edge) yMax() float64 { return max(e.y0, e.y1) }

// Rasteriser converts paths to pixel coverage values.
//
// A Rasteriser is meant to be reused for many paths.  Its internal buffers
// grow as needed and are kept between calls.  A Rasteriser is not safe for
// concurrent use.
type Rasteriser struct {
	// CTM maps user space to device space.  It must be non-singular.
	CTM matrix.Matrix

	// Clip is the output region in device coordinates, with integer
	// coordinates.
	Clip rect.Rect

	// Flatness is the curve flattening tolerance in device pixels.
	Flatness float64

	// Width is the stroke width in user space units.
	Width float64

	// Cap is the line cap style used at the ends of open subpaths.
	Cap graphics.LineCapStyle

	// margin is the distance, in device pixels, within which geometry
	// outside the clip can still affect the output.
	margin float64

	edges     []edge
	active    []int
	cover     []float32 // signed vertical extent of edges per pixel
	area      []float32 // cover weighted by the horizontal position in the pixel
	crossings []float64

	// stroke outline state
	outline    []vec.Vec2 // vertices of all outline polygons
	outlineIdx []int      // start of each polygon in outline
	flat       []vec.Vec2 // flattened vertices of the current subpath
}

// New returns a Rasteriser for the given clip rectangle, with the identity
// transformation, unit stroke width and round caps.
func New(clip rect.Rect) *Rasteriser {
	r := &Rasteriser{}
	r.Reset(clip)
	return r
}

// Reset restores the default parameters, keeping the allocated buffers.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapRound

	r.edges = r.edges[:0]
	r.active = r.active[:0]
	r.outline = r.outline[:0]
	r.outlineIdx = r.outlineIdx[:0]
	r.flat = r.flat[:0]
}

// toDevice applies the CTM to a point.
func (r *Rasteriser) toDevice(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*p.X + r.CTM[2]*p.Y + r.CTM[4],
		Y: r.CTM[1]*p.X + r.CTM[3]*p.Y + r.CTM[5],
	}
}

// deviceLength returns the device space length of the user space vector v,
// ignoring the translation part of the CTM.
func (r *Rasteriser) deviceLength(v vec.Vec2) float64 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}.Length()
}

// deviceScale estimates how many device pixels one user space unit covers.
func (r *Rasteriser) deviceScale() float64 {
	det := math.Abs(r.CTM[0]*r.CTM[3] - r.CTM[1]*r.CTM[2])
	return math.Sqrt(det)
}

// flattenQuadratic approximates the quadratic Bézier curve p0, p1, p2 by
// line segments, calling emit for each of them.
func (r *Rasteriser) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(from, to vec.Vec2)) {
	r.subdivideQuadratic(p0, p1, p2, 0, emit)
}

func (r *Rasteriser) subdivideQuadratic(p0, p1, p2 vec.Vec2, depth int, emit func(from, to vec.Vec2)) {
	if !r.visible(p0, p1, p2) {
		emit(p0, p2)
		return
	}

	// The distance between the curve and its chord is at most |p0-2p1+p2|/4.
	dev := r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25))
	n, ok := segments(math.Sqrt(dev / r.Flatness))
	if !ok && depth < maxCurveDepth {
		p01, p12 := midpoint(p0, p1), midpoint(p1, p2)
		m := midpoint(p01, p12)
		r.subdivideQuadratic(p0, p01, m, depth+1, emit)
		r.subdivideQuadratic(m, p12, p2, depth+1, emit)
		return
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates a cubic Bézier curve by line segments, using
// Wang's formula to choose the number of segments.
func (r *Rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(from, to vec.Vec2)) {
	r.subdivideCubic(p0, p1, p2, p3, 0, emit)
}

func (r *Rasteriser) subdivideCubic(p0, p1, p2, p3 vec.Vec2, depth int, emit func(from, to vec.Vec2)) {
	if !r.visible(p0, p1, p2, p3) {
		emit(p0, p3)
		return
	}

	d1 := r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2))
	d2 := r.deviceLength(p1.Sub(p2.Mul(2)).Add(p3))
	n, ok := segments(math.Sqrt(3 * max(d1, d2) / (4 * r.Flatness)))
	if !ok && depth < maxCurveDepth {
		p01, p12, p23 := midpoint(p0, p1), midpoint(p1, p2), midpoint(p2, p3)
		p012, p123 := midpoint(p01, p12), midpoint(p12, p23)
		m := midpoint(p012, p123)
		r.subdivideCubic(p0, p01, p012, m, depth+1, emit)
		r.subdivideCubic(m, p123, p23, p3, depth+1, emit)
		return
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		emit(prev, pt)
		prev = pt
	}
}

// visible reports whether the bounding box of the control points, in
// device space, comes within r.margin of the clip rectangle.  A curve
// which is not visible can be replaced by its chord: both lie inside the
// control hull, so the winding number outside the hull is unchanged.
// NaN coordinates are never visible.
func (r *Rasteriser) visible(pts ...vec.Vec2) bool {
	xLo, xHi := math.Inf(1), math.Inf(-1)
	yLo, yHi := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		d := r.toDevice(p)
		if math.IsNaN(d.X) || math.IsNaN(d.Y) {
			return false
		}
		xLo, xHi = min(xLo, d.X), max(xHi, d.X)
		yLo, yHi = min(yLo, d.Y), max(yHi, d.Y)
	}
	m := r.margin
	return xHi >= r.Clip.LLx-m && xLo <= r.Clip.URx+m &&
		yHi >= r.Clip.LLy-m && yLo <= r.Clip.URy+m
}

// segments turns an estimated segment count into an integer in
// [1, maxCurveSegments].  The result ok is false if the estimate exceeds
// the bound.
func segments(f float64) (n int, ok bool) {
	switch {
	case !(f > 1): // also catches NaN
		return 1, true
	case f > maxCurveSegments:
		return maxCurveSegments, false
	default:
		return int(math.Ceil(f)), true
	}
}

func midpoint(a, b vec.Vec2) vec.Vec2 {
	return a.Add(b).Mul(0.5)
}

// FillNonZero fills the path p using the nonzero winding rule.
// Open subpaths are closed implicitly.
func (r *Rasteriser) FillNonZero(p *path.Data, emit EmitFunc) {
	r.edges = r.edges[:0]
	r.margin = 1

	var cur, start vec.Vec2
	open := false
	i := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if open {
				r.addEdge(cur, start)
			}
			cur, start = p.Coords[i], p.Coords[i]
			open = true
			i++
		case path.CmdLineTo:
			r.addEdge(cur, p.Coords[i])
			cur = p.Coords[i]
			i++
		case path.CmdQuadTo:
			r.flattenQuadratic(cur, p.Coords[i], p.Coords[i+1], r.addEdge)
			cur = p.Coords[i+1]
			i += 2
		case path.CmdCubeTo:
			r.flattenCubic(cur, p.Coords[i], p.Coords[i+1], p.Coords[i+2], r.addEdge)
			cur = p.Coords[i+2]
			i += 3
		case path.CmdClose:
			r.addEdge(cur, start)
			cur = start
			open = false
		}
	}
	if open {
		r.addEdge(cur, start)
	}

	r.scan(emit)
}

// addEdge transforms the user space segment from p0 to p1 into device
// space and adds it to the edge list.  Horizontal edges are dropped since
// they do not contribute to the coverage.
func (r *Rasteriser) addEdge(p0, p1 vec.Vec2) {
	d0 := r.toDevice(p0)
	d1 := r.toDevice(p1)
	dy := d1.Y - d0.Y
	if math.Abs(dy) < horizontalEdgeThreshold || math.IsNaN(dy) {
		return
	}
	r.edges = append(r.edges, edge{
		x0: d0.X, y0: d0.Y,
		x1: d1.X, y1: d1.Y,
		dxdy: (d1.X - d0.X) / dy,
	})
}

// scan converts the current edge list into coverage, using an active edge
// list and one row of accumulation buffers.
func (r *Rasteriser) scan(emit EmitFunc) {
	if len(r.edges) == 0 {
		return
	}

	xLo, xHi := math.Inf(1), math.Inf(-1)
	yLo, yHi := math.Inf(1), math.Inf(-1)
	for i := range r.edges {
		e := &r.edges[i]
		xLo = min(xLo, e.x0, e.x1)
		xHi = max(xHi, e.x0, e.x1)
		yLo = min(yLo, e.y0, e.y1)
		yHi = max(yHi, e.y0, e.y1)
	}
	xMin := max(int(math.Floor(xLo)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(xHi))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(yLo)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(yHi))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}

	// Edges left of the clip region still contribute their winding, so
	// the accumulation buffers start one pixel early.  Pixel xMin-1 is
	// never emitted.
	width := xMax - xMin + 1
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.yMin(), b.yMin())
	})
	r.active = r.active[:0]
	next := 0

	for y := yMin; y < yMax; y++ {
		top, bot := float64(y), float64(y+1)

		for next < len(r.edges) && r.edges[next].yMin() < bot {
			r.active = append(r.active, next)
			next++
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for k := 0; k < len(r.active); {
			e := &r.edges[r.active[k]]
			if e.yMax() <= top {
				r.active[k] = r.active[len(r.active)-1]
				r.active = r.active[:len(r.active)-1]
				continue
			}
			if r.accumulate(e, top, bot, xMin-1, xMax) {
				touched = true
			}
			k++
		}
		if !touched {
			continue
		}

		integrate(r.cover, r.area)
		row, offs := trimZeros(r.cover[1:])
		if row != nil {
			emit(y, xMin+offs, row)
		}
	}
}

// accumulate adds the contribution of edge e within the scanline [top, bot)
// to the cover and area buffers.  The buffers are indexed by x - base and
// the pixels at or right of xMax are ignored.  The return value reports
// whether the edge intersects the scanline.
func (r *Rasteriser) accumulate(e *edge, top, bot float64, base, xMax int) bool {
	top = max(top, e.yMin())
	bot = min(bot, e.yMax())
	if bot <= top {
		return false
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	// Split the piece of the edge inside the scanline at the vertical pixel
	// boundaries, so that every sub-segment lies in one pixel column.
	xTop := e.x0 + e.dxdy*(top-e.y0)
	xBot := e.x0 + e.dxdy*(bot-e.y0)
	left, right := int(math.Floor(min(xTop, xBot))), int(math.Floor(max(xTop, xBot)))

	r.crossings = append(r.crossings[:0], top, bot)
	if left != right {
		// Boundaries outside [base+1, xMax] do not change which buffer
		// entry a sub-segment is added to.
		for x := max(left+1, base+1); x <= min(right, xMax); x++ {
			yx := e.y0 + (float64(x)-e.x0)/e.dxdy
			if yx > top && yx < bot {
				r.crossings = append(r.crossings, yx)
			}
		}
		slices.Sort(r.crossings)
	}

	for i := 1; i < len(r.crossings); i++ {
		y0, y1 := r.crossings[i-1], r.crossings[i]
		if y1 <= y0 {
			continue
		}
		c := sign * float32(y1-y0)
		xMid := e.x0 + e.dxdy*((y0+y1)/2-e.y0)
		pix := int(math.Floor(xMid))
		switch {
		case pix < base:
			r.cover[0] += c
			r.area[0] += c
		case pix < xMax:
			frac := xMid - float64(pix)
			r.cover[pix-base] += c
			r.area[pix-base] += c * float32(1-frac)
		}
	}
	return true
}

// integrate turns the accumulated cover and area values of one row into
// coverage, using the nonzero winding rule.  The result is stored in cover.
func integrate(cover, area []float32) {
	var acc float32
	for i := range cover {
		raw := acc + area[i]
		acc += cover[i]
		if raw < 0 {
			raw = -raw
		}
		cover[i] = min(raw, 1)
	}
}

// trimZeros returns the part of coverage between the first and the last
// non-zero value, together with its offset.
func trimZeros(coverage []float32) ([]float32, int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	for hi > lo && coverage[hi-1] == 0 {
		hi--
	}
	if lo == hi {
		return nil, 0
	}
	return coverage[lo:hi], lo
}

const (
	// defaultFlatness is the curve flattening tolerance in device pixels.
	defaultFlatness = 0.25

	// horizontalEdgeThreshold is the minimum vertical extent of an edge.
	horizontalEdgeThreshold = 1e-10

	// zeroLengthThreshold is the minimum length of a stroke segment.
	zeroLengthThreshold = 1e-10

	// maxCurveSegments bounds the number of line segments per curve
	// piece.  Longer curves are subdivided first.
	maxCurveSegments = 256

	// maxCurveDepth bounds the subdivision of curves.  Off-screen pieces
	// are not subdivided, so only the pieces near the clip region
	// multiply.
	maxCurveDepth = 32

	// collinearityThreshold decides when two consecutive segments are
	// treated as collinear, so that no join is needed.
	collinearityThreshold = 1e-6
)
