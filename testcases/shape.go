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
	"seehuhn.de/go/folio/annotation"
)

var shapeCases = []TestCase{
	{
		Name:        "rectangle",
		Width:       64,
		Height:      64,
		Annotations: page1(shape(annotation.KindRectangle, 4, pt(10, 12), pt(54, 50))),
	},
	{
		Name:        "rectangle_reversed",
		Width:       64,
		Height:      64,
		Annotations: page1(shape(annotation.KindRectangle, 4, pt(54, 50), pt(10, 12))),
	},
	{
		Name:        "rectangle_thin",
		Width:       64,
		Height:      64,
		Annotations: page1(shape(annotation.KindRectangle, 1, pt(8.5, 8.5), pt(55.5, 55.5))),
	},
	{
		Name:        "circle",
		Width:       64,
		Height:      64,
		Annotations: page1(shape(annotation.KindCircle, 3, pt(8, 8), pt(56, 56))),
	},
	{
		Name:        "ellipse",
		Width:       96,
		Height:      64,
		Annotations: page1(shape(annotation.KindCircle, 2, pt(88, 12), pt(8, 52))),
	},
	{
		Name:   "nested",
		Width:  64,
		Height: 64,
		Annotations: page1(
			shape(annotation.KindRectangle, 2, pt(6, 6), pt(58, 58)),
			shape(annotation.KindCircle, 2, pt(6, 6), pt(58, 58)),
			shape(annotation.KindRectangle, 2, pt(22, 22), pt(42, 42)),
		),
	},
}

func shape(form annotation.Kind, width float64, start, end annotation.Point) *annotation.Shape {
	return &annotation.Shape{
		Form:        form,
		Start:       start,
		End:         end,
		Color:       "#000000",
		StrokeWidth: width,
		Opacity:     1,
	}
}
