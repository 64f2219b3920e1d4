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

package testcases

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/folio/annotation"
)

var pathCases = []TestCase{
	{
		Name:   "line",
		Width:  64,
		Height: 64,
		Annotations: page1(brush(6, "#000000",
			pt(10, 32), pt(54, 32))),
	},
	{
		Name:   "corner",
		Width:  64,
		Height: 64,
		Annotations: page1(brush(6, "#000000",
			pt(10, 50), pt(32, 14), pt(54, 50))),
	},
	{
		Name:        "zigzag",
		Width:       128,
		Height:      64,
		Annotations: page1(brush(3, "#000000", zigzag(10, 32, 118, 16, 8)...)),
	},
	{
		Name:        "spiral",
		Width:       128,
		Height:      128,
		Annotations: page1(brush(2, "#404040", spiral(64, 64, 5, 55, 3)...)),
	},
	{
		Name:        "figure_eight",
		Width:       128,
		Height:      96,
		Annotations: page1(brush(4, "#000000", figureEight(64, 48, 40)...)),
	},
	{
		Name:   "overlap",
		Width:  64,
		Height: 64,
		Annotations: page1(
			brush(8, "#808080", pt(10, 20), pt(54, 44)),
			brush(8, "#000000", pt(10, 44), pt(54, 20)),
		),
	},
	{
		Name:   "thin",
		Width:  64,
		Height: 64,
		Annotations: page1(brush(0.5, "#000000",
			pt(5, 5), pt(59, 30), pt(5, 59))),
	},
}

func brush(width float64, col string, pts ...vec.Vec2) *annotation.Path {
	return &annotation.Path{
		Tool:        annotation.KindBrush,
		Points:      pts,
		Color:       col,
		StrokeWidth: width,
		Opacity:     1,
	}
}

// zigzag returns n teeth between x1 and x2, centered on y.
func zigzag(x1, y, x2, amplitude float64, n int) []vec.Vec2 {
	pts := make([]vec.Vec2, 0, 2*n+1)
	step := (x2 - x1) / float64(2*n)
	for i := range 2*n + 1 {
		dy := amplitude
		if i%2 == 0 {
			dy = -amplitude
		}
		pts = append(pts, pt(x1+float64(i)*step, y+dy))
	}
	return pts
}

// spiral samples an Archimedean spiral the way a pointer would.
func spiral(cx, cy, rMin, rMax, turns float64) []vec.Vec2 {
	const samplesPerTurn = 48
	n := int(turns * samplesPerTurn)
	pts := make([]vec.Vec2, 0, n+1)
	for i := range n + 1 {
		t := float64(i) / float64(n)
		r := rMin + (rMax-rMin)*t
		phi := 2 * math.Pi * turns * t
		pts = append(pts, pt(cx+r*math.Cos(phi), cy+r*math.Sin(phi)))
	}
	return pts
}

// figureEight samples a lemniscate, which crosses itself at the center.
func figureEight(cx, cy, size float64) []vec.Vec2 {
	const n = 64
	pts := make([]vec.Vec2, 0, n+1)
	for i := range n + 1 {
		phi := 2 * math.Pi * float64(i) / n
		s, c := math.Sincos(phi)
		d := 1 + s*s
		pts = append(pts, pt(cx+size*c/d, cy+size*s*c/d))
	}
	return pts
}
