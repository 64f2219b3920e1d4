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

// Package gesture turns pointer input into annotations.
//
// A [Builder] is driven by the pointer events of one page.  Path tools
// collect the pointer positions of a drag, shape tools the start and end
// of the drag, and the eraser removes annotations under the pointer.
// Feedback for a gesture in progress is drawn on the preview layer.
//
// Text and sticky notes need content from the user.  For these tools,
// [Builder.Down] returns a [Request]; the annotation is created once the
// caller supplies the content with [Builder.Resolve].
package gesture

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/folio/annotation"
	"seehuhn.de/go/folio/canvas"
	"seehuhn.de/go/folio/eraser"
	"seehuhn.de/go/folio/paint"
)

// ErrNoRequest is returned by [Builder.Resolve] if the given request is not
// pending.
var ErrNoRequest = errors.New("no such request")

// Style holds the tool settings used for new annotations.
type Style struct {
	Color       string
	StrokeWidth float64
	Opacity     float64
	FontSize    float64

	EraserSize float64

	NoteWidth, NoteHeight float64
}

// DefaultStyle returns the initial tool settings.
func DefaultStyle() Style {
	return Style{
		Color:       "#000000",
		StrokeWidth: 2,
		Opacity:     1,
		FontSize:    annotation.DefaultFontSize,
		EraserSize:  10,
		NoteWidth:   200,
		NoteHeight:  150,
	}
}

// noteColor is stored with new sticky notes.
const noteColor = "#fff59d"

// Request asks for the content of a text annotation or sticky note.
type Request struct {
	ID       string
	Tool     annotation.Kind
	Page     int
	Position vec.Vec2
}

// Builder is the state machine translating pointer events into
// annotations.  It is not safe for concurrent use.
type Builder struct {
	// Logger receives messages about annotations which could not be
	// stored.  If nil, the standard logger is used.
	Logger *log.Logger

	store   *annotation.Store
	page    *canvas.Page
	pageNum int

	tool  annotation.Kind
	style Style

	active bool
	start  vec.Vec2
	last   vec.Vec2
	points []vec.Vec2

	pending *Request
}

// New returns a builder for page pageNum of the document held by store.
// The page surface may be nil, in which case nothing is drawn.
func New(store *annotation.Store, page *canvas.Page, pageNum int) *Builder {
	return &Builder{
		store:   store,
		page:    page,
		pageNum: pageNum,
		tool:    annotation.KindBrush,
		style:   DefaultStyle(),
	}
}

// Tool returns the current tool.
func (b *Builder) Tool() annotation.Kind {
	return b.tool
}

// SetTool selects the tool for the next gesture.  A gesture in progress
// is abandoned and a pending request is dismissed.
func (b *Builder) SetTool(tool annotation.Kind) error {
	switch tool {
	case annotation.KindBrush, annotation.KindHighlighter, annotation.KindEraser,
		annotation.KindRectangle, annotation.KindCircle, annotation.KindArrow,
		annotation.KindText, annotation.KindStickyNote:
	default:
		return fmt.Errorf("gesture: unknown tool %q", tool)
	}
	b.Cancel()
	b.tool = tool
	return nil
}

// Style returns the current tool settings.
func (b *Builder) Style() Style {
	return b.style
}

// SetStyle changes the tool settings for subsequent annotations.
func (b *Builder) SetStyle(s Style) error {
	if _, err := annotation.ParseColor(s.Color); err != nil {
		return fmt.Errorf("gesture: %w", err)
	}
	if !(s.StrokeWidth > 0) || !(s.FontSize > 0) || !(s.EraserSize > 0) {
		return fmt.Errorf("gesture: invalid sizes in style %+v", s)
	}
	if !(s.Opacity > 0 && s.Opacity <= 1) {
		return fmt.Errorf("gesture: invalid opacity %g", s.Opacity)
	}
	if !(s.NoteWidth > 0) || !(s.NoteHeight > 0) {
		return fmt.Errorf("gesture: invalid note size %gx%g", s.NoteWidth, s.NoteHeight)
	}
	b.style = s
	return nil
}

// SetPage switches the builder to another page.  In-flight state of the
// previous page is abandoned.
func (b *Builder) SetPage(page *canvas.Page, pageNum int) {
	b.Cancel()
	b.page = page
	b.pageNum = pageNum
}

// Active reports whether a drag gesture is in progress.
func (b *Builder) Active() bool {
	return b.active
}

// Pending returns the outstanding content request, or nil.
func (b *Builder) Pending() *Request {
	return b.pending
}

// Down starts a gesture at pt.  For the text and sticky-note tools no
// gesture is started; instead a request for the content is returned.
func (b *Builder) Down(pt vec.Vec2) *Request {
	b.Cancel()

	switch b.tool {
	case annotation.KindText, annotation.KindStickyNote:
		b.pending = &Request{
			ID:       annotation.NewID(),
			Tool:     b.tool,
			Page:     b.pageNum,
			Position: pt,
		}
		return b.pending
	}

	b.active = true
	b.start, b.last = pt, pt
	switch {
	case b.tool == annotation.KindEraser:
		b.erase(pt)
	case b.tool.IsPath():
		b.points = append(b.points[:0], pt)
	}
	return nil
}

// Move continues the gesture to pt.
func (b *Builder) Move(pt vec.Vec2) {
	if !b.active {
		return
	}
	b.last = pt

	switch {
	case b.tool == annotation.KindEraser:
		b.erase(pt)
	case b.tool.IsPath():
		b.points = append(b.points, pt)
		b.preview(b.candidate())
	default:
		b.preview(b.candidate())
	}
}

// Up ends the gesture at pt.  If an annotation was created, it is stored,
// drawn on the committed layer and returned.
//
// Paths with fewer than two samples are discarded.  Shapes are always
// stored, even if they have zero size.
func (b *Builder) Up(pt vec.Vec2) (annotation.Annotation, bool) {
	if !b.active {
		return annotation.Annotation{}, false
	}
	if !b.tool.IsPath() {
		b.last = pt
	}
	defer b.reset()

	if b.tool == annotation.KindEraser {
		return annotation.Annotation{}, false
	}
	if b.tool.IsPath() && len(b.points) < 2 {
		return annotation.Annotation{}, false
	}
	return b.commit(b.candidate())
}

// Leave handles the pointer leaving the page.  It ends the gesture at the
// last known pointer position.
func (b *Builder) Leave() (annotation.Annotation, bool) {
	return b.Up(b.last)
}

// Cancel abandons the gesture in progress and dismisses a pending request.
// Nothing is stored.
func (b *Builder) Cancel() {
	b.pending = nil
	if b.active {
		b.reset()
	}
}

// Resolve completes the pending request id with the given content.
// Empty content cancels the request.  The stored annotation is returned,
// if one was created.
func (b *Builder) Resolve(id string, content string) (annotation.Annotation, bool, error) {
	req := b.pending
	if req == nil || req.ID != id {
		return annotation.Annotation{}, false, ErrNoRequest
	}
	b.pending = nil

	if strings.TrimSpace(content) == "" {
		return annotation.Annotation{}, false, nil
	}

	var body annotation.Body
	switch req.Tool {
	case annotation.KindText:
		t := &annotation.Text{
			Position: req.Position,
			Text:     content,
			FontSize: b.style.FontSize,
			Color:    b.style.Color,
			Opacity:  b.style.Opacity,
		}
		if b.page != nil {
			r := paint.TextBubble(t, b.page.Committed)
			t.Width, t.Height = r.URx-r.LLx, r.URy-r.LLy
		}
		body = t
	case annotation.KindStickyNote:
		body = &annotation.StickyNote{
			Position: req.Position,
			Text:     content,
			Width:    b.style.NoteWidth,
			Height:   b.style.NoteHeight,
			Color:    noteColor,
			Opacity:  1,
		}
	}

	a, ok := b.commit(annotation.Annotation{Page: req.Page, Body: body})
	return a, ok, nil
}

// Dismiss cancels the pending request id.  Unknown ids are ignored.
func (b *Builder) Dismiss(id string) {
	if b.pending != nil && b.pending.ID == id {
		b.pending = nil
	}
}

// candidate returns the annotation described by the current gesture.
func (b *Builder) candidate() annotation.Annotation {
	s := b.style
	var body annotation.Body
	switch b.tool {
	case annotation.KindBrush, annotation.KindHighlighter:
		body = &annotation.Path{
			Tool:        b.tool,
			Points:      append([]vec.Vec2(nil), b.points...),
			Color:       s.Color,
			StrokeWidth: s.StrokeWidth,
			Opacity:     s.Opacity,
		}
	case annotation.KindRectangle, annotation.KindCircle:
		body = &annotation.Shape{
			Form:        b.tool,
			Start:       b.start,
			End:         b.last,
			Color:       s.Color,
			StrokeWidth: s.StrokeWidth,
			Opacity:     s.Opacity,
		}
	case annotation.KindArrow:
		body = &annotation.Arrow{
			Start:       b.start,
			End:         b.last,
			Color:       s.Color,
			StrokeWidth: s.StrokeWidth,
			Opacity:     s.Opacity,
		}
	}
	return annotation.Annotation{Page: b.pageNum, Body: body}
}

func (b *Builder) commit(a annotation.Annotation) (annotation.Annotation, bool) {
	stored, err := b.store.Add(a)
	if err != nil {
		b.logger().Printf("gesture: %s annotation on page %d dropped: %v", a.Kind(), a.Page, err)
		return annotation.Annotation{}, false
	}
	if b.page != nil {
		paint.Draw(b.page.Committed, stored)
	}
	return stored, true
}

func (b *Builder) erase(pt vec.Vec2) {
	removed := eraser.Erase(b.store, b.pageNum, pt, b.style.EraserSize)
	if b.page == nil {
		return
	}
	if len(removed) > 0 {
		paint.Replay(b.page.Committed, b.store.Page(b.pageNum))
	}
	b.page.Preview.Clear()
	b.page.Preview.Draw(paint.EraserCursor(pt, b.style.EraserSize)...)
}

func (b *Builder) preview(a annotation.Annotation) {
	if b.page == nil {
		return
	}
	b.page.Preview.Clear()
	paint.Draw(b.page.Preview, a)
}

func (b *Builder) reset() {
	b.active = false
	b.points = b.points[:0]
	if b.page != nil {
		b.page.Preview.Clear()
	}
}

func (b *Builder) logger() *log.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return log.Default()
}
