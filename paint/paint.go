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

// Package paint renders annotations.
//
// [Ops] translates one annotation into a display list of [canvas.Op]
// values.  [Draw] renders a single annotation on top of a surface and
// [Replay] redraws all annotations of a page.
package paint

import (
	"image/color"
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/folio/annotation"
	"seehuhn.de/go/folio/canvas"
	"seehuhn.de/go/folio/geometry"
)

// Visual constants of the annotation kinds.
const (
	HighlighterAlpha = 0.3

	RectRadius = 4

	ArrowHeadLength = 15
	ArrowHeadAngle  = math.Pi / 6
	arrowNotch      = 0.8 // position of the back vertex, relative to the head length

	BubblePadding = 4
	bubbleRadius  = 4
	bubbleAlpha   = 0.85
	borderAlpha   = 0.1

	NoteFontSize   = 14
	NoteLineHeight = 18
	NotePadding    = 10
	NoteFold       = 15
	noteRadius     = 4
	shadowOffset   = 2
	shadowAlpha    = 0.2
)

var (
	noteBackground = color.NRGBA{R: 0xff, G: 0xf5, B: 0x9d, A: 0xff}
	noteFoldColor  = color.NRGBA{R: 0xfb, G: 0xc0, B: 0x2d, A: 0xff}
	black          = color.NRGBA{A: 0xff}
	white          = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Draw renders a on top of the existing content of s.
func Draw(s *canvas.Surface, a annotation.Annotation) {
	s.Draw(Ops(a, s)...)
}

// Replay clears s and renders the annotations in order.
func Replay(s *canvas.Surface, as []annotation.Annotation) {
	s.Clear()
	for _, a := range as {
		Draw(s, a)
	}
}

// Ops returns the display list for a.  Text is measured with m.
// Annotations which lack the data needed for drawing give an empty list.
func Ops(a annotation.Annotation, m canvas.Measurer) []canvas.Op {
	switch b := a.Body.(type) {
	case *annotation.Path:
		return pathOps(b)
	case *annotation.Shape:
		return shapeOps(b)
	case *annotation.Arrow:
		return arrowOps(b)
	case *annotation.Text:
		return textOps(b, m)
	case *annotation.StickyNote:
		return noteOps(b, m)
	default:
		return nil
	}
}

func pathOps(b *annotation.Path) []canvas.Op {
	if !finite(b.Points...) {
		return nil
	}
	p := SmoothPath(b.Points)
	if p == nil {
		return nil
	}
	width := strokeWidth(b.StrokeWidth)

	switch b.Tool {
	case annotation.KindEraser:
		return []canvas.Op{canvas.Clear{Path: p, Width: width}}
	case annotation.KindHighlighter:
		return []canvas.Op{canvas.Stroke{
			Path:  p,
			Color: canvas.WithAlpha(parseColor(b.Color), HighlighterAlpha),
			Width: width,
			Cap:   graphics.LineCapRound,
		}}
	default:
		return []canvas.Op{canvas.Stroke{
			Path:  p,
			Color: canvas.WithAlpha(parseColor(b.Color), b.Opacity),
			Width: width,
			Cap:   graphics.LineCapRound,
		}}
	}
}

func shapeOps(b *annotation.Shape) []canvas.Op {
	if !finite(b.Start, b.End) {
		return nil
	}

	var p *path.Data
	switch b.Form {
	case annotation.KindRectangle:
		p = roundedRect(geometry.Rect(b.Start, b.End), RectRadius)
	case annotation.KindCircle:
		p = ellipse(geometry.EllipseOf(b.Start, b.End))
	default:
		return nil
	}
	return []canvas.Op{canvas.Stroke{
		Path:  p,
		Color: canvas.WithAlpha(parseColor(b.Color), b.Opacity),
		Width: strokeWidth(b.StrokeWidth),
		Cap:   graphics.LineCapRound,
	}}
}

func arrowOps(b *annotation.Arrow) []canvas.Op {
	if !finite(b.Start, b.End) {
		return nil
	}
	col := canvas.WithAlpha(parseColor(b.Color), b.Opacity)
	line := (&path.Data{}).MoveTo(b.Start).LineTo(b.End)
	return []canvas.Op{
		canvas.Stroke{Path: line, Color: col, Width: strokeWidth(b.StrokeWidth), Cap: graphics.LineCapRound},
		canvas.Fill{Path: arrowHead(b.Start, b.End), Color: col},
	}
}

func textOps(b *annotation.Text, m canvas.Measurer) []canvas.Op {
	if b.Text == "" || !finite(b.Position) {
		return nil
	}
	size := fontSize(b.FontSize)
	bubble := roundedRect(TextBubble(b, m), bubbleRadius)
	return []canvas.Op{
		canvas.Fill{Path: bubble, Color: canvas.WithAlpha(white, bubbleAlpha)},
		canvas.Stroke{Path: bubble, Color: canvas.WithAlpha(black, borderAlpha), Width: 1, Cap: graphics.LineCapRound},
		canvas.Text{
			Pos:   vec.Vec2{X: b.Position.X, Y: b.Position.Y - BubblePadding},
			Text:  b.Text,
			Size:  size,
			Color: canvas.WithAlpha(parseColor(b.Color), b.Opacity),
		},
	}
}

func noteOps(b *annotation.StickyNote, m canvas.Measurer) []canvas.Op {
	if !finite(b.Position) || !(b.Width > 0) || !(b.Height > 0) {
		return nil
	}
	x, y, w, h := b.Position.X, b.Position.Y, b.Width, b.Height
	alpha := b.Opacity

	note := NoteRect(b)
	shadow := note
	shadow.LLx += shadowOffset
	shadow.URx += shadowOffset
	shadow.LLy += shadowOffset
	shadow.URy += shadowOffset

	fold := min(NoteFold, w, h)
	ops := []canvas.Op{
		canvas.Fill{Path: roundedRect(shadow, noteRadius), Color: canvas.WithAlpha(black, shadowAlpha*alpha)},
		canvas.Fill{Path: roundedRect(note, noteRadius), Color: canvas.WithAlpha(noteBackground, alpha)},
		canvas.Fill{
			Path: polygon(
				vec.Vec2{X: x + w - fold, Y: y},
				vec.Vec2{X: x + w - fold, Y: y + fold},
				vec.Vec2{X: x + w, Y: y + fold}),
			Color: canvas.WithAlpha(noteFoldColor, alpha),
		},
	}

	if m == nil {
		return ops
	}
	for i, line := range WrapText(b.Text, NoteFontSize, w-2*NotePadding, m) {
		ops = append(ops, canvas.Text{
			Pos: vec.Vec2{
				X: x + NotePadding,
				Y: y + NotePadding + NoteFontSize + float64(i)*NoteLineHeight,
			},
			Text:  line,
			Size:  NoteFontSize,
			Color: canvas.WithAlpha(black, alpha),
		})
	}
	return ops
}

// EraserCursor returns the outline drawn on the preview layer to show the
// reach of the eraser at pt.
func EraserCursor(pt vec.Vec2, size float64) []canvas.Op {
	if !finite(pt) || !(size > 0) {
		return nil
	}
	return []canvas.Op{canvas.Stroke{
		Path:  ellipse(pt.X, pt.Y, size, size),
		Color: color.NRGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xc0},
		Width: 1,
		Cap:   graphics.LineCapRound,
	}}
}

// parseColor falls back to black for invalid colour specifiers.
func parseColor(spec string) color.NRGBA {
	c, err := annotation.ParseColor(spec)
	if err != nil {
		return black
	}
	return c
}

func strokeWidth(w float64) float64 {
	if w > 0 && !math.IsInf(w, 1) {
		return w
	}
	return 1
}

func fontSize(s float64) float64 {
	if s > 0 && !math.IsInf(s, 1) {
		return s
	}
	return annotation.DefaultFontSize
}

func finite(pts ...vec.Vec2) bool {
	for _, p := range pts {
		if !geometry.Finite(p) {
			return false
		}
	}
	return true
}
