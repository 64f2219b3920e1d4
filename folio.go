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

package folio

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log"
	"time"

	"seehuhn.de/go/folio/annotation"
	"seehuhn.de/go/folio/canvas"
	"seehuhn.de/go/folio/gesture"
	"seehuhn.de/go/folio/paint"
	"seehuhn.de/go/folio/persist"
)

// Options configures a [Session].
type Options struct {
	// Backend stores the annotations.  If nil, annotations are kept in
	// memory only.
	Backend persist.Backend

	// Interval is the autosave period.  If zero, persist.DefaultInterval
	// is used.
	Interval time.Duration

	// Fonts is used to draw text.  If nil, the default fonts are loaded.
	Fonts *canvas.Fonts

	// Logger receives messages about failed loads and saves.  If nil, the
	// standard logger is used.
	Logger *log.Logger

	// OnError, if set, is notified of failed loads and saves.  These errors
	// are not fatal; the session keeps working with the annotations in
	// memory.
	OnError func(error)
}

// Session is an open document.
//
// Apart from the store, which may be read from any goroutine, a Session
// is not safe for concurrent use.
type Session struct {
	store   *annotation.Store
	saver   *persist.Autosaver
	builder *gesture.Builder
	fonts   *canvas.Fonts

	page    *canvas.Page
	pageNum int

	logger  *log.Logger
	onError func(error)
}

// Open loads the annotations of a document and starts saving them
// periodically.
//
// If the stored annotations cannot be loaded, the failure is reported
// through Options.OnError and the session starts with an empty store.
// An error is only returned if the session cannot be set up at all.
func Open(ctx context.Context, documentID, fileName string, opt *Options) (*Session, error) {
	if opt == nil {
		opt = &Options{}
	}
	s := &Session{
		fonts:   opt.Fonts,
		logger:  opt.Logger,
		onError: opt.OnError,
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.fonts == nil {
		fonts, err := canvas.NewFonts()
		if err != nil {
			return nil, fmt.Errorf("folio: %w", err)
		}
		s.fonts = fonts
	}

	backend := opt.Backend
	if backend == nil {
		backend = persist.NewMemory()
	}
	snap, err := backend.Load(ctx, documentID)
	switch {
	case err == nil:
		s.store = annotation.Restore(snap)
	case errors.Is(err, persist.ErrNotFound):
		s.store = annotation.NewStore(documentID, fileName)
	default:
		s.report(fmt.Errorf("loading annotations: %w", err))
		s.store = annotation.NewStore(documentID, fileName)
	}

	s.builder = gesture.New(s.store, nil, 0)
	s.builder.Logger = s.logger

	s.saver = persist.NewAutosaver(s.store, backend, opt.Interval)
	s.saver.Logger = s.logger
	s.saver.OnError = s.onError
	if err := s.saver.Start(); err != nil {
		return nil, fmt.Errorf("folio: %w", err)
	}
	return s, nil
}

// Store returns the annotations of the document.
func (s *Session) Store() *annotation.Store {
	return s.store
}

// Builder returns the gesture builder for the current page.
func (s *Session) Builder() *gesture.Builder {
	return s.builder
}

// ShowPage makes page n the current page.  The page is width x height
// user space units large and drawn with scale pixels per unit.  The base
// layer is filled white and the stored annotations are drawn on the
// committed layer.
func (s *Session) ShowPage(n int, width, height, scale float64) *canvas.Page {
	page := canvas.NewPage(width, height, scale, s.fonts)
	page.Base.FillColor(color.White)
	paint.Replay(page.Committed, s.store.Page(n))

	s.page = page
	s.pageNum = n
	s.builder.SetPage(page, n)
	return page
}

// Page returns the current page and its number.  Before the first call to
// ShowPage, the page is nil.
func (s *Session) Page() (*canvas.Page, int) {
	return s.page, s.pageNum
}

// Redraw draws the committed layer of the current page from scratch.
func (s *Session) Redraw() {
	if s.page == nil {
		return
	}
	paint.Replay(s.page.Committed, s.store.Page(s.pageNum))
}

// ClearPage removes all annotations from page n.
func (s *Session) ClearPage(n int) {
	s.store.ClearPage(n)
	if n == s.pageNum {
		s.builder.Cancel()
		s.Redraw()
	}
}

// ClearAll removes all annotations of the document.
func (s *Session) ClearAll() {
	s.store.ClearAll()
	s.builder.Cancel()
	s.Redraw()
}

// Save writes unsaved changes to the backend now.
func (s *Session) Save(ctx context.Context) error {
	err := s.saver.Flush(ctx)
	if err != nil {
		s.report(err)
	}
	return err
}

// Close stops the periodic saving and writes unsaved changes.
// The session must not be used afterwards.
func (s *Session) Close(ctx context.Context) error {
	s.builder.Cancel()
	err := s.saver.Stop(ctx)
	if err != nil {
		s.report(err)
	}
	return err
}

func (s *Session) report(err error) {
	s.logger.Printf("folio: %v", err)
	if s.onError != nil {
		s.onError(err)
	}
}
