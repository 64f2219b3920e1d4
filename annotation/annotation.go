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

// Package annotation defines the annotation data model and the per-document
// store which keeps the annotations of every page in drawing order.
//
// An [Annotation] combines the fields every annotation has (id, page and
// creation time) with a [Body].  The set of body types is closed: [Path],
// [Shape], [Arrow], [Text], [StickyNote] and [Unknown].  Code dispatching on
// the body uses a type switch over exactly these types.
package annotation

import (
	"encoding/json"
	"time"

	"seehuhn.de/go/geom/vec"
)

// Point is a position in page coordinates.
type Point = vec.Vec2

// Kind identifies the variant of an annotation.
type Kind string

// These are the annotation kinds understood by this package.
const (
	KindBrush       Kind = "brush"
	KindHighlighter Kind = "highlighter"
	KindEraser      Kind = "eraser"
	KindRectangle   Kind = "rectangle"
	KindCircle      Kind = "circle"
	KindArrow       Kind = "arrow"
	KindText        Kind = "text"
	KindStickyNote  Kind = "sticky-note"
)

// IsPath reports whether annotations of kind k are freehand paths.
func (k Kind) IsPath() bool {
	return k == KindBrush || k == KindHighlighter || k == KindEraser
}

// IsShape reports whether annotations of kind k are rectangles or ellipses.
func (k Kind) IsShape() bool {
	return k == KindRectangle || k == KindCircle
}

// Annotation is one piece of markup on a page.
//
// Annotations are values and are never modified after they have been added
// to a [Store].  An edit is a removal followed by an addition.
type Annotation struct {
	// ID uniquely identifies the annotation within a document.
	ID string

	// Page is the 1-based page number.
	Page int

	// CreatedAt records when the annotation was committed.
	// It is not used for ordering.
	CreatedAt time.Time

	// Body holds the variant-specific data.
	Body Body
}

// Kind returns the kind of the annotation body, or the empty string if the
// body is missing.
func (a Annotation) Kind() Kind {
	if a.Body == nil {
		return ""
	}
	return a.Body.Kind()
}

// Body is the variant-specific part of an annotation.
type Body interface {
	Kind() Kind
	isBody()
}

// Path is a freehand stroke drawn with the brush, highlighter or (in older
// documents) eraser tool.
type Path struct {
	Tool        Kind // KindBrush, KindHighlighter or KindEraser
	Points      []Point
	Color       string
	StrokeWidth float64
	Opacity     float64
}

// Kind implements the [Body] interface.
func (p *Path) Kind() Kind { return p.Tool }

func (*Path) isBody() {}

// Shape is a rectangle or an ellipse spanned by two corner points.
// The corners are stored as drawn; Start may lie below or right of End.
type Shape struct {
	Form        Kind // KindRectangle or KindCircle
	Start, End  Point
	Color       string
	StrokeWidth float64
	Opacity     float64
}

// Kind implements the [Body] interface.
func (s *Shape) Kind() Kind { return s.Form }

func (*Shape) isBody() {}

// Arrow is a straight line from Start to End with an arrowhead at End.
type Arrow struct {
	Start, End  Point
	Color       string
	StrokeWidth float64
	Opacity     float64
}

// Kind implements the [Body] interface.
func (*Arrow) Kind() Kind { return KindArrow }

func (*Arrow) isBody() {}

// Text is a single line of text in a speech bubble.  Position is the
// insertion point; the bubble extends upwards and to the right of it.
type Text struct {
	Position Point
	Text     string
	FontSize float64
	Color    string
	Opacity  float64

	// Width and Height give the measured size of the bubble.
	// Zero values mean "not measured".
	Width, Height float64
}

// Kind implements the [Body] interface.
func (*Text) Kind() Kind { return KindText }

func (*Text) isBody() {}

// StickyNote is a note with word-wrapped text.  Position is the top-left
// corner.
type StickyNote struct {
	Position      Point
	Text          string
	Width, Height float64
	Color         string
	Opacity       float64
}

// Kind implements the [Body] interface.
func (*StickyNote) Kind() Kind { return KindStickyNote }

func (*StickyNote) isBody() {}

// Unknown holds a stored annotation which could not be decoded into one of
// the other body types, either because its kind is not known or because
// required fields are missing.  The original encoding is kept so that the
// annotation survives a load/save cycle.  Unknown annotations are neither
// drawn nor hit by the eraser.
type Unknown struct {
	Type string
	Raw  json.RawMessage
}

// Kind implements the [Body] interface.
func (u *Unknown) Kind() Kind { return Kind(u.Type) }

func (*Unknown) isBody() {}

// StrokeWidth returns the stroke width of a, or 0 for kinds without one.
func StrokeWidth(a Annotation) float64 {
	switch b := a.Body.(type) {
	case *Path:
		return b.StrokeWidth
	case *Shape:
		return b.StrokeWidth
	case *Arrow:
		return b.StrokeWidth
	default:
		return 0
	}
}

// Clone returns a deep copy of a.  Since stored annotations are never
// modified this is only needed where callers may hold on to slices.
func (a Annotation) Clone() Annotation {
	switch b := a.Body.(type) {
	case *Path:
		c := *b
		c.Points = append([]Point(nil), b.Points...)
		a.Body = &c
	case *Shape:
		c := *b
		a.Body = &c
	case *Arrow:
		c := *b
		a.Body = &c
	case *Text:
		c := *b
		a.Body = &c
	case *StickyNote:
		c := *b
		a.Body = &c
	case *Unknown:
		c := *b
		c.Raw = append(json.RawMessage(nil), b.Raw...)
		a.Body = &c
	}
	return a
}
