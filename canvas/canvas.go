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

// Package canvas provides the raster surfaces annotations are drawn on.
//
// Drawing is expressed as a display list of [Op] values.  A [Surface]
// executes the list onto an RGBA image; other consumers, for example a PDF
// writer, can interpret the same list.  A [Page] bundles the three layers
// of a displayed page.
package canvas

import (
	"image/color"
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Op is one drawing operation.  The set of operations is closed:
// [Fill], [Stroke], [Text] and [Clear].
type Op interface {
	isOp()
}

// Fill paints the interior of a path, using the nonzero winding rule.
type Fill struct {
	Path  *path.Data
	Color color.NRGBA
}

// Stroke paints the outline of a path with round joins.
type Stroke struct {
	Path  *path.Data
	Color color.NRGBA
	Width float64
	Cap   graphics.LineCapStyle
}

// Text draws a single line of text.  Pos is the left end of the baseline.
type Text struct {
	Pos   vec.Vec2
	Text  string
	Size  float64 // font size in user space units
	Color color.NRGBA
}

// Clear removes existing paint along a path, as if the stroke was drawn
// with the destination-out operator.  If Width is zero, the interior of
// the path is cleared instead.
type Clear struct {
	Path  *path.Data
	Width float64
}

func (Fill) isOp()   {}
func (Stroke) isOp() {}
func (Text) isOp()   {}
func (Clear) isOp()  {}

// Measurer determines the width of text.
type Measurer interface {
	// MeasureText returns the advance width of text set at the given font
	// size.  Both values are in user space units.
	MeasureText(text string, size float64) float64
}

// WithAlpha returns c with its alpha channel scaled by alpha, which is
// clamped to [0, 1].
func WithAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	alpha = max(0, min(1, alpha))
	c.A = uint8(math.Round(float64(c.A) * alpha))
	return c
}
