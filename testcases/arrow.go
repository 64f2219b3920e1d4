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

var arrowCases = []TestCase{
	{
		Name:        "horizontal",
		Width:       64,
		Height:      64,
		Annotations: page1(arrow(3, pt(8, 32), pt(56, 32))),
	},
	{
		Name:        "diagonal",
		Width:       64,
		Height:      64,
		Annotations: page1(arrow(2, pt(8, 56), pt(56, 8))),
	},
	{
		Name:        "backwards",
		Width:       64,
		Height:      64,
		Annotations: page1(arrow(2, pt(56, 40), pt(8, 24))),
	},
	{
		Name:        "short",
		Width:       64,
		Height:      64,
		Annotations: page1(arrow(2, pt(28, 32), pt(36, 32))),
	},
}

func arrow(width float64, start, end annotation.Point) *annotation.Arrow {
	return &annotation.Arrow{
		Start:       start,
		End:         end,
		Color:       "#000000",
		StrokeWidth: width,
		Opacity:     1,
	}
}
