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
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/folio/raster"
)

// Surface is a raster image which display lists can be drawn on.
//
// User space coordinates are mapped to device pixels by scaling with
// Scale; the origin is the top-left corner and y grows downwards.
// A Surface is not safe for concurrent use.
type Surface struct {
	// Img holds premultiplied pixel data.
	Img *image.RGBA

	// Scale is the number of device pixels per user space unit.
	Scale float64

	fonts *Fonts
	r     *raster.Rasteriser
}

// NewSurface allocates a transparent surface of w×h device pixels.
func NewSurface(w, h int, scale float64, fonts *Fonts) *Surface {
	s := &Surface{
		Img:   image.NewRGBA(image.Rect(0, 0, w, h)),
		Scale: scale,
		fonts: fonts,
	}
	s.r = raster.New(s.clip())
	return s
}

func (s *Surface) clip() rect.Rect {
	b := s.Img.Bounds()
	return rect.Rect{URx: float64(b.Dx()), URy: float64(b.Dy())}
}

// Size returns the size of the surface in device pixels.
func (s *Surface) Size() (w, h int) {
	b := s.Img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear makes every pixel of the surface transparent.
func (s *Surface) Clear() {
	clear(s.Img.Pix)
}

// FillColor sets every pixel of the surface to c.
func (s *Surface) FillColor(c color.Color) {
	r, g, b, a := c.RGBA()
	px := [4]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
	for i := 0; i < len(s.Img.Pix); i += 4 {
		copy(s.Img.Pix[i:i+4], px[:])
	}
}

// MeasureText implements the [Measurer] interface.
func (s *Surface) MeasureText(text string, size float64) float64 {
	if s.fonts == nil {
		return 0
	}
	return s.fonts.MeasureText(text, size)
}

// Draw executes the operations in order.
func (s *Surface) Draw(ops ...Op) {
	for _, op := range ops {
		s.r.Reset(s.clip())
		s.r.CTM = matrix.Matrix{s.Scale, 0, 0, s.Scale, 0, 0}

		switch op := op.(type) {
		case Fill:
			if op.Path == nil || op.Color.A == 0 {
				continue
			}
			s.r.FillNonZero(op.Path, s.sourceOver(op.Color))
		case Stroke:
			if op.Path == nil || op.Color.A == 0 {
				continue
			}
			s.r.Width = op.Width
			s.r.Cap = op.Cap
			s.r.Stroke(op.Path, s.sourceOver(op.Color))
		case Clear:
			if op.Path == nil {
				continue
			}
			if op.Width > 0 {
				s.r.Width = op.Width
				s.r.Cap = graphics.LineCapRound
				s.r.Stroke(op.Path, s.destinationOut)
			} else {
				s.r.FillNonZero(op.Path, s.destinationOut)
			}
		case Text:
			s.drawText(op)
		}
	}
}

// sourceOver returns an emit callback which composites c over the
// existing pixels, weighted by coverage.
func (s *Surface) sourceOver(c color.NRGBA) raster.EmitFunc {
	a := float32(c.A) / 255
	src := [4]float32{
		float32(c.R) * a,
		float32(c.G) * a,
		float32(c.B) * a,
		float32(c.A),
	}
	return func(y, xMin int, coverage []float32) {
		pix := s.Img.Pix[s.Img.PixOffset(xMin, y):]
		for i, k := range coverage {
			if k <= 0 {
				continue
			}
			p := pix[4*i : 4*i+4]
			keep := 1 - a*k
			for j := range p {
				p[j] = to8(src[j]*k + float32(p[j])*keep)
			}
		}
	}
}

// destinationOut removes paint from the existing pixels, weighted by
// coverage.
func (s *Surface) destinationOut(y, xMin int, coverage []float32) {
	pix := s.Img.Pix[s.Img.PixOffset(xMin, y):]
	for i, k := range coverage {
		if k <= 0 {
			continue
		}
		p := pix[4*i : 4*i+4]
		keep := 1 - k
		for j := range p {
			p[j] = to8(float32(p[j]) * keep)
		}
	}
}

func (s *Surface) drawText(op Text) {
	if s.fonts == nil || op.Text == "" || op.Color.A == 0 {
		return
	}
	dot := vec.Vec2{X: op.Pos.X * s.Scale, Y: op.Pos.Y * s.Scale}
	if math.IsNaN(dot.X) || math.IsNaN(dot.Y) {
		return
	}
	_ = s.fonts.withFace(op.Size*s.Scale, func(face font.Face) {
		d := &font.Drawer{
			Dst:  s.Img,
			Src:  image.NewUniform(op.Color),
			Face: face,
			Dot:  fixed.Point26_6{X: toFixed(dot.X), Y: toFixed(dot.Y)},
		}
		d.DrawString(op.Text)
	})
}

func to8(x float32) uint8 {
	return uint8(max(0, min(255, x+0.5)))
}
