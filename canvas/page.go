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

package canvas

import (
	"image"
	"image/draw"
	"math"
)

// Page is the drawing surface of one displayed page.  It has three
// layers: Base holds the document content, Committed the stored
// annotations and Preview the feedback for a gesture in progress.
type Page struct {
	// Width and Height give the page size in user space units.
	Width, Height float64

	// Scale is the zoom factor, in device pixels per user space unit.
	Scale float64

	Base      *Surface
	Committed *Surface
	Preview   *Surface
}

// NewPage allocates the layers for a page of the given size.
func NewPage(width, height, scale float64, fonts *Fonts) *Page {
	w := int(math.Ceil(width * scale))
	h := int(math.Ceil(height * scale))
	return &Page{
		Width:     width,
		Height:    height,
		Scale:     scale,
		Base:      NewSurface(w, h, scale, fonts),
		Committed: NewSurface(w, h, scale, fonts),
		Preview:   NewSurface(w, h, scale, fonts),
	}
}

// PixelSize returns the size of the layers in device pixels.
func (p *Page) PixelSize() (w, h int) {
	return p.Base.Size()
}

// Composite returns the three layers drawn on top of each other.
func (p *Page) Composite() *image.RGBA {
	out := image.NewRGBA(p.Base.Img.Bounds())
	for _, layer := range []*Surface{p.Base, p.Committed, p.Preview} {
		draw.Draw(out, out.Bounds(), layer.Img, image.Point{}, draw.Over)
	}
	return out
}
