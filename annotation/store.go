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
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"sync"
	"time"

	"seehuhn.de/go/folio/geometry"
)

// ErrInvalid is returned by [Store.Add] for annotations which violate the
// invariants of the data model.
var ErrInvalid = errors.New("invalid annotation")

// Store holds the annotations of one document, page by page.
//
// The annotations of a page are kept in the order they were added, which
// is also the order in which they are drawn.  A Store is safe for
// concurrent use.
type Store struct {
	mu sync.Mutex

	documentID string
	name       string
	modified   time.Time
	pages      map[int][]Annotation

	gen   uint64 // incremented on every mutation
	saved uint64 // generation of the last successful save
}

// NewStore returns an empty store for the given document.
func NewStore(documentID, name string) *Store {
	return &Store{
		documentID: documentID,
		name:       name,
		pages:      make(map[int][]Annotation),
	}
}

// DocumentID returns the identity of the document the store belongs to.
func (s *Store) DocumentID() string {
	return s.documentID
}

// Name returns the file name of the document.
func (s *Store) Name() string {
	return s.name
}

// Page returns the annotations on page n in drawing order.
// The returned slice is a copy.  The annotation bodies are shared with the
// store and must not be modified.
func (s *Store) Page(n int) []Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.pages[n])
}

// Pages returns the numbers of all pages which carry annotations, in
// increasing order.
func (s *Store) Pages() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res []int
	for n, list := range s.pages {
		if len(list) > 0 {
			res = append(res, n)
		}
	}
	slices.Sort(res)
	return res
}

// Add appends a to the end of its page.
//
// If a has no id, a new one is assigned.  If the creation time is zero, it
// is set to the current time.  The stored annotation is returned.  If a
// violates the data model, an error wrapping [ErrInvalid] is returned and
// the store is unchanged.
func (s *Store) Add(a Annotation) (Annotation, error) {
	if err := Validate(a); err != nil {
		return Annotation{}, err
	}

	a = a.Clone()
	if a.ID == "" {
		a.ID = NewID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[a.Page] = append(s.pages[a.Page], a)
	s.touch()
	return a, nil
}

// RemoveByID removes the annotation with the given id from page n.
// The return value reports whether an annotation was removed.
// Removing an id which is not present is not an error.
func (s *Store) RemoveByID(id string, n int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.pages[n]
	idx := slices.IndexFunc(list, func(a Annotation) bool { return a.ID == id })
	if idx < 0 {
		return false
	}
	s.pages[n] = slices.Delete(list, idx, idx+1)
	s.touch()
	return true
}

// ClearPage removes all annotations from page n.
func (s *Store) ClearPage(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pages[n]) == 0 {
		return
	}
	delete(s.pages, n)
	s.touch()
}

// ClearAll removes all annotations from every page.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pages) == 0 {
		return
	}
	clear(s.pages)
	s.touch()
}

// Dirty reports whether the store was modified since the last save.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen != s.saved
}

// Generation returns a counter which changes on every modification.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// MarkSaved records that the state of generation gen has been saved.
// The store stays dirty if it was modified after gen.
func (s *Store) MarkSaved(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen > s.saved && gen <= s.gen {
		s.saved = gen
	}
}

// touch must be called with s.mu held.
func (s *Store) touch() {
	s.gen++
	s.modified = time.Now()
}

// Snapshot returns a deep copy of the store contents.
func (s *Store) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := &Snapshot{
		DocumentID:   s.documentID,
		FileName:     s.name,
		LastModified: s.modified,
		Pages:        make(map[int][]Annotation, len(s.pages)),
		Generation:   s.gen,
	}
	for n, list := range s.pages {
		if len(list) == 0 {
			continue
		}
		cp := make([]Annotation, len(list))
		for i, a := range list {
			cp[i] = a.Clone()
		}
		snap.Pages[n] = cp
	}
	return snap
}

// Restore creates a store holding the contents of snap.
// The new store is not dirty.
func Restore(snap *Snapshot) *Store {
	s := NewStore(snap.DocumentID, snap.FileName)
	s.modified = snap.LastModified
	for _, n := range slices.Sorted(maps.Keys(snap.Pages)) {
		list := snap.Pages[n]
		if len(list) == 0 {
			continue
		}
		cp := make([]Annotation, len(list))
		for i, a := range list {
			a = a.Clone()
			a.Page = n
			cp[i] = a
		}
		s.pages[n] = cp
	}
	return s
}

// Validate checks a against the invariants of the data model.
// The error, if any, wraps [ErrInvalid].
func Validate(a Annotation) error {
	if a.Page < 1 {
		return fmt.Errorf("%w: page %d", ErrInvalid, a.Page)
	}

	var (
		col   string
		width = 1.0
		alpha float64
		pts   []Point
	)
	switch b := a.Body.(type) {
	case *Path:
		if !b.Tool.IsPath() {
			return fmt.Errorf("%w: path with kind %q", ErrInvalid, b.Tool)
		}
		if len(b.Points) < 2 {
			return fmt.Errorf("%w: path with %d points", ErrInvalid, len(b.Points))
		}
		col, width, alpha, pts = b.Color, b.StrokeWidth, b.Opacity, b.Points
	case *Shape:
		if !b.Form.IsShape() {
			return fmt.Errorf("%w: shape with kind %q", ErrInvalid, b.Form)
		}
		col, width, alpha, pts = b.Color, b.StrokeWidth, b.Opacity, []Point{b.Start, b.End}
	case *Arrow:
		col, width, alpha, pts = b.Color, b.StrokeWidth, b.Opacity, []Point{b.Start, b.End}
	case *Text:
		if b.Text == "" {
			return fmt.Errorf("%w: empty text", ErrInvalid)
		}
		if !positive(b.Width) && b.Width != 0 || !positive(b.Height) && b.Height != 0 {
			return fmt.Errorf("%w: text extent %gx%g", ErrInvalid, b.Width, b.Height)
		}
		col, width, alpha, pts = b.Color, b.FontSize, b.Opacity, []Point{b.Position}
	case *StickyNote:
		if b.Text == "" {
			return fmt.Errorf("%w: empty note", ErrInvalid)
		}
		if !positive(b.Width) || !positive(b.Height) {
			return fmt.Errorf("%w: note size %gx%g", ErrInvalid, b.Width, b.Height)
		}
		col, alpha, pts = b.Color, b.Opacity, []Point{b.Position}
	case nil:
		return fmt.Errorf("%w: missing body", ErrInvalid)
	default:
		return fmt.Errorf("%w: kind %q cannot be added", ErrInvalid, a.Kind())
	}

	for _, p := range pts {
		if !geometry.Finite(p) {
			return fmt.Errorf("%w: point %v", ErrInvalid, p)
		}
	}
	if !positive(width) {
		return fmt.Errorf("%w: width %g", ErrInvalid, width)
	}
	if !(alpha > 0 && alpha <= 1) {
		return fmt.Errorf("%w: opacity %g", ErrInvalid, alpha)
	}
	if _, err := ParseColor(col); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}
