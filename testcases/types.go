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
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/folio/annotation"
)

// TestCase defines a single rendering test.
type TestCase struct {
	Name        string                  // lowercase a-z and _ only
	Width       int                     // page width in pixels
	Height      int                     // page height in pixels
	Annotations []annotation.Annotation // drawn in order onto a white page
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// page1 wraps bodies as annotations on page 1.
func page1(bodies ...annotation.Body) []annotation.Annotation {
	res := make([]annotation.Annotation, len(bodies))
	for i, b := range bodies {
		res[i] = annotation.Annotation{Page: 1, Body: b}
	}
	return res
}
