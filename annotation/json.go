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

package annotation

import (
	"bytes"
	"encoding/json"
	"time"
)

// Snapshot is a copy of the contents of a [Store], suitable for
// persistence.  In JSON form, pages are keyed by their decimal page
// number and dates are RFC 3339 strings.
type Snapshot struct {
	DocumentID   string               `json:"documentId"`
	FileName     string               `json:"fileName"`
	LastModified time.Time            `json:"lastModified"`
	Pages        map[int][]Annotation `json:"pages"`

	// Generation is the store generation the snapshot was taken at.
	// It is not persisted.
	Generation uint64 `json:"-"`
}

// Count returns the total number of annotations in the snapshot.
func (s *Snapshot) Count() int {
	n := 0
	for _, list := range s.Pages {
		n += len(list)
	}
	return n
}

type wirePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func toWire(p Point) *wirePoint {
	return &wirePoint{X: p.X, Y: p.Y}
}

func (w *wirePoint) point() Point {
	return Point{X: w.X, Y: w.Y}
}

// wireAnnotation is the stored form of all annotation kinds.
type wireAnnotation struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Page      int       `json:"page"`
	CreatedAt time.Time `json:"createdAt"`

	Points      []wirePoint `json:"points,omitempty"`
	Color       string      `json:"color,omitempty"`
	StrokeWidth *float64    `json:"strokeWidth,omitempty"`
	Opacity     *float64    `json:"opacity,omitempty"`

	StartPoint *wirePoint `json:"startPoint,omitempty"`
	EndPoint   *wirePoint `json:"endPoint,omitempty"`

	Position *wirePoint `json:"position,omitempty"`
	Text     *string    `json:"text,omitempty"`
	FontSize *float64   `json:"fontSize,omitempty"`
	Width    *float64   `json:"width,omitempty"`
	Height   *float64   `json:"height,omitempty"`
}

// DefaultFontSize is used for stored text annotations without a font size.
const DefaultFontSize = 16

// MarshalJSON implements the [json.Marshaler] interface.
// Unknown annotations are written back exactly as they were read.
func (a Annotation) MarshalJSON() ([]byte, error) {
	if u, ok := a.Body.(*Unknown); ok {
		return u.Raw, nil
	}

	w := wireAnnotation{
		ID:        a.ID,
		Type:      string(a.Kind()),
		Page:      a.Page,
		CreatedAt: a.CreatedAt,
	}
	switch b := a.Body.(type) {
	case *Path:
		w.Points = make([]wirePoint, len(b.Points))
		for i, p := range b.Points {
			w.Points[i] = wirePoint{X: p.X, Y: p.Y}
		}
		w.Color = b.Color
		w.StrokeWidth = &b.StrokeWidth
		w.Opacity = &b.Opacity
	case *Shape:
		w.StartPoint, w.EndPoint = toWire(b.Start), toWire(b.End)
		w.Color = b.Color
		w.StrokeWidth = &b.StrokeWidth
		w.Opacity = &b.Opacity
	case *Arrow:
		w.StartPoint, w.EndPoint = toWire(b.Start), toWire(b.End)
		w.Color = b.Color
		w.StrokeWidth = &b.StrokeWidth
		w.Opacity = &b.Opacity
	case *Text:
		w.Position = toWire(b.Position)
		w.Text = &b.Text
		w.FontSize = &b.FontSize
		w.Color = b.Color
		w.Opacity = &b.Opacity
		if b.Width > 0 && b.Height > 0 {
			w.Width, w.Height = &b.Width, &b.Height
		}
	case *StickyNote:
		w.Position = toWire(b.Position)
		w.Text = &b.Text
		w.Width, w.Height = &b.Width, &b.Height
		w.Color = b.Color
		w.Opacity = &b.Opacity
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
//
// Decoding never fails: an element which is not a well-formed annotation of
// a known kind is decoded as an [Unknown] body holding a copy of data.
func (a *Annotation) UnmarshalJSON(data []byte) error {
	var w wireAnnotation
	if err := json.Unmarshal(data, &w); err != nil {
		*a = unknownFrom(data)
		return nil
	}

	body := w.body()
	if body == nil {
		*a = unknownFrom(data)
		return nil
	}
	*a = Annotation{
		ID:        w.ID,
		Page:      w.Page,
		CreatedAt: w.CreatedAt,
		Body:      body,
	}
	return nil
}

// body returns nil if required fields are missing.
func (w *wireAnnotation) body() Body {
	opacity := 1.0
	if w.Opacity != nil {
		opacity = *w.Opacity
	}
	var strokeWidth float64
	if w.StrokeWidth != nil {
		strokeWidth = *w.StrokeWidth
	}

	switch k := Kind(w.Type); k {
	case KindBrush, KindHighlighter, KindEraser:
		if len(w.Points) == 0 {
			return nil
		}
		pts := make([]Point, len(w.Points))
		for i := range w.Points {
			pts[i] = w.Points[i].point()
		}
		return &Path{
			Tool:        k,
			Points:      pts,
			Color:       w.Color,
			StrokeWidth: strokeWidth,
			Opacity:     opacity,
		}

	case KindRectangle, KindCircle, KindArrow:
		if w.StartPoint == nil || w.EndPoint == nil {
			return nil
		}
		if k == KindArrow {
			return &Arrow{
				Start:       w.StartPoint.point(),
				End:         w.EndPoint.point(),
				Color:       w.Color,
				StrokeWidth: strokeWidth,
				Opacity:     opacity,
			}
		}
		return &Shape{
			Form:        k,
			Start:       w.StartPoint.point(),
			End:         w.EndPoint.point(),
			Color:       w.Color,
			StrokeWidth: strokeWidth,
			Opacity:     opacity,
		}

	case KindText:
		if w.Position == nil || w.Text == nil {
			return nil
		}
		t := &Text{
			Position: w.Position.point(),
			Text:     *w.Text,
			FontSize: DefaultFontSize,
			Color:    w.Color,
			Opacity:  opacity,
		}
		if w.FontSize != nil && *w.FontSize > 0 {
			t.FontSize = *w.FontSize
		}
		if w.Width != nil && w.Height != nil {
			t.Width, t.Height = *w.Width, *w.Height
		}
		return t

	case KindStickyNote:
		if w.Position == nil || w.Text == nil || w.Width == nil || w.Height == nil {
			return nil
		}
		return &StickyNote{
			Position: w.Position.point(),
			Text:     *w.Text,
			Width:    *w.Width,
			Height:   *w.Height,
			Color:    w.Color,
			Opacity:  opacity,
		}
	}
	return nil
}

func unknownFrom(data []byte) Annotation {
	var head struct {
		ID   any `json:"id"`
		Type any `json:"type"`
		Page any `json:"page"`
	}
	_ = json.Unmarshal(data, &head)

	a := Annotation{
		Body: &Unknown{Raw: bytes.Clone(data)},
	}
	if id, ok := head.ID.(string); ok {
		a.ID = id
	}
	if tp, ok := head.Type.(string); ok {
		a.Body.(*Unknown).Type = tp
	}
	if page, ok := head.Page.(float64); ok {
		a.Page = int(page)
	}
	return a
}
