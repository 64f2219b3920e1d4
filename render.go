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

// Package folio keeps the annotations of a document and draws them over its
// pages.
//
// A [Session] ties together the annotation store of one document, the
// gesture builder for the page on screen and the periodic saving of the
// store.  The sub-packages can also be used on their own.
package folio

//go:generate go run ./testcases/genpdf

import (
	"image"
	"image/color"

	"seehuhn.de/go/folio/annotation"
	"seehuhn.de/go/folio/canvas"
	"seehuhn.de/go/folio/paint"
	"seehuhn.de/go/folio/testcases"
)

// Render draws annotations onto a white page of the given size.
// The page size is in user space units and scale gives the number of
// pixels per unit.
func Render(as []annotation.Annotation, width, height, scale float64, fonts *canvas.Fonts) *image.RGBA {
	page := canvas.NewPage(width, height, scale, fonts)
	page.Base.FillColor(color.White)
	paint.Replay(page.Committed, as)
	return page.Composite()
}

// RenderExample renders a test case into a grayscale buffer, in row-major
// order.  Each byte is the luminance of one pixel, from 0 (black) to 255
// (white).
func RenderExample(tc testcases.TestCase, buf []byte, width, height, stride int) {
	img := Render(tc.Annotations, float64(tc.Width), float64(tc.Height), 1, nil)
	b := img.Bounds()
	for y := range min(height, b.Dy()) {
		for x := range min(width, b.Dx()) {
			c := color.GrayModel.Convert(img.RGBAAt(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			buf[y*stride+x] = c.Y
		}
	}
}
