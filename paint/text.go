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

package paint

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/folio/annotation"
	"seehuhn.de/go/folio/canvas"
)

// averageGlyphWidth is the assumed advance of one glyph, relative to the
// font size, for text which cannot be measured.
const averageGlyphWidth = 0.6

// TextBubble returns the bubble of a text annotation.  The bubble's
// bottom-left corner lies BubblePadding to the left of the insertion point
// and the bubble grows upwards.
//
// If m is not nil, the text is measured with m.  Otherwise the extents
// stored in t are used, or, if these are missing, an estimate based on the
// number of glyphs.
func TextBubble(t *annotation.Text, m canvas.Measurer) rect.Rect {
	size := fontSize(t.FontSize)

	var w, h float64
	switch {
	case m != nil:
		w = m.MeasureText(t.Text, size) + 2*BubblePadding
		h = size + 2*BubblePadding
	case t.Width > 0 && t.Height > 0:
		w, h = t.Width, t.Height
	default:
		w = EstimateTextWidth(t.Text, size) + 2*BubblePadding
		h = size + 2*BubblePadding
	}

	x0 := t.Position.X - BubblePadding
	y1 := t.Position.Y
	return rect.Rect{LLx: x0, LLy: y1 - h, URx: x0 + w, URy: y1}
}

// EstimateTextWidth approximates the width of text from its glyph count.
// Glyphs are counted as code points of the NFC normal form.
func EstimateTextWidth(text string, size float64) float64 {
	glyphs := utf8.RuneCountInString(norm.NFC.String(text))
	return float64(glyphs) * averageGlyphWidth * size
}

// NoteRect returns the area covered by a sticky note.
func NoteRect(n *annotation.StickyNote) rect.Rect {
	return rect.Rect{
		LLx: n.Position.X,
		LLy: n.Position.Y,
		URx: n.Position.X + n.Width,
		URy: n.Position.Y + n.Height,
	}
}

// WrapText breaks text into lines no wider than maxWidth, when set at the
// given font size.  Words are never split: a line is broken before the
// first word which does not fit, and a single word wider than maxWidth
// forms a line of its own.  Newlines in the text force a line break.
func WrapText(text string, size, maxWidth float64, m canvas.Measurer) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			if line == "" {
				line = word
				continue
			}
			candidate := line + " " + word
			if m.MeasureText(candidate, size) > maxWidth {
				lines = append(lines, line)
				line = word
			} else {
				line = candidate
			}
		}
		lines = append(lines, line)
	}

	// drop trailing empty lines
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil
	}
	return lines
}
