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
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Fonts provides faces of the Go Regular font at arbitrary pixel sizes.
// Faces are created on first use and cached.  Fonts is safe for
// concurrent use.
type Fonts struct {
	font *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewFonts parses the embedded Go Regular font.
func NewFonts() (*Fonts, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("canvas: parsing Go Regular: %w", err)
	}
	return &Fonts{
		font:  f,
		faces: make(map[float64]font.Face),
	}, nil
}

// withFace calls fn with a face for text of the given height in pixels.
// Faces are not safe for concurrent use, so fn runs with f.mu held.
func (f *Fonts) withFace(px float64, fn func(font.Face)) error {
	if !(px > 0) || math.IsInf(px, 0) {
		return fmt.Errorf("canvas: invalid font size %g", px)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	face, ok := f.faces[px]
	if !ok {
		var err error
		face, err = opentype.NewFace(f.font, &opentype.FaceOptions{
			Size:    px,
			DPI:     72,
			Hinting: font.HintingNone,
		})
		if err != nil {
			return err
		}
		f.faces[px] = face
	}
	fn(face)
	return nil
}

// MeasureText implements the [Measurer] interface.
// Invalid font sizes measure as zero.
func (f *Fonts) MeasureText(text string, size float64) float64 {
	var w float64
	_ = f.withFace(size, func(face font.Face) {
		w = fromFixed(font.MeasureString(face, text))
	})
	return w
}

func fromFixed(x fixed.Int26_6) float64 {
	return float64(x) / 64
}

func toFixed(x float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(x * 64))
}
