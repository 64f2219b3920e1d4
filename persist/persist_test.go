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

package persist

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"seehuhn.de/go/folio/annotation"
)

func sampleStore(t *testing.T) *annotation.Store {
	t.Helper()
	s := annotation.NewStore("report.pdf_1234_1700000000000", "report.pdf")
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	add := func(page int, body annotation.Body) {
		t.Helper()
		_, err := s.Add(annotation.Annotation{Page: page, CreatedAt: created, Body: body})
		if err != nil {
			t.Fatal(err)
		}
	}
	add(1, &annotation.Path{
		Tool:        annotation.KindBrush,
		Points:      []annotation.Point{{X: 1, Y: 2}, {X: 3, Y: 4}},
		Color:       "#ff0000",
		StrokeWidth: 2,
		Opacity:     1,
	})
	add(1, &annotation.Shape{
		Form:        annotation.KindCircle,
		Start:       annotation.Point{X: 10, Y: 10},
		End:         annotation.Point{X: 30, Y: 20},
		Color:       "blue",
		StrokeWidth: 1,
		Opacity:     0.5,
	})
	add(3, &annotation.Text{
		Position: annotation.Point{X: 50, Y: 60},
		Text:     "check this",
		FontSize: 16,
		Color:    "#000",
		Opacity:  1,
		Width:    80,
		Height:   24,
	})
	return s
}

var ignoreGeneration = cmpopts.IgnoreFields(annotation.Snapshot{}, "Generation")

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	dir, err := OpenDir(filepath.Join(t.TempDir(), "docs"))
	if err != nil {
		t.Fatal(err)
	}
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "folio.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return map[string]Backend{
		"memory": NewMemory(),
		"dir":    dir,
		"sqlite": db,
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := sampleStore(t)
			snap := s.Snapshot()

			if _, err := b.Load(ctx, snap.DocumentID); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Load before Save: err = %v, want ErrNotFound", err)
			}
			if err := b.Save(ctx, snap); err != nil {
				t.Fatal(err)
			}
			got, err := b.Load(ctx, snap.DocumentID)
			if err != nil {
				t.Fatal(err)
			}
			if d := cmp.Diff(snap, got, ignoreGeneration); d != "" {
				t.Errorf("round trip (-want +got):\n%s", d)
			}

			// a second save replaces the first one
			s.ClearPage(1)
			snap = s.Snapshot()
			if err := b.Save(ctx, snap); err != nil {
				t.Fatal(err)
			}
			got, err = b.Load(ctx, snap.DocumentID)
			if err != nil {
				t.Fatal(err)
			}
			if got.Count() != 1 {
				t.Errorf("reloaded %d annotations, want 1", got.Count())
			}

			infos, err := b.(Lister).List(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if len(infos) != 1 || infos[0].DocumentID != snap.DocumentID ||
				infos[0].FileName != "report.pdf" || infos[0].Annotations != 1 ||
				!infos[0].LastModified.Equal(snap.LastModified) {
				t.Errorf("List = %+v", infos)
			}
		})
	}
}

func TestRestoreLoaded(t *testing.T) {
	ctx := context.Background()
	b := NewMemory()
	s := sampleStore(t)
	if err := b.Save(ctx, s.Snapshot()); err != nil {
		t.Fatal(err)
	}
	snap, err := b.Load(ctx, s.DocumentID())
	if err != nil {
		t.Fatal(err)
	}

	restored := annotation.Restore(snap)
	if restored.Dirty() {
		t.Error("restored store is dirty")
	}
	if d := cmp.Diff(s.Page(1), restored.Page(1)); d != "" {
		t.Errorf("page 1 (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]int{1, 3}, restored.Pages()); d != "" {
		t.Errorf("pages (-want +got):\n%s", d)
	}
}

func TestDirFiles(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	d, err := OpenDir(root)
	if err != nil {
		t.Fatal(err)
	}

	snap := annotation.NewStore("a/b c", "b c").Snapshot()
	if err := d.Save(ctx, snap); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("found %d files, want 1", len(entries))
	}
	if name := entries[0].Name(); strings.ContainsAny(name, "/") || strings.HasPrefix(name, ".save-") {
		t.Errorf("unexpected file name %q", name)
	}

	got, err := d.Load(ctx, "a/b c")
	if err != nil {
		t.Fatal(err)
	}
	if got.DocumentID != "a/b c" {
		t.Errorf("document id %q", got.DocumentID)
	}
}

func TestDirCorrupt(t *testing.T) {
	root := t.TempDir()
	d, err := OpenDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "broken.json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = d.Load(context.Background(), "broken")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Load of corrupt file: err = %v", err)
	}
}

func TestSQLiteReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "folio.db")

	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	snap := sampleStore(t).Snapshot()
	if err := db.Save(ctx, snap); err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	db, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	got, err := db.Load(ctx, snap.DocumentID)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(snap, got, ignoreGeneration); d != "" {
		t.Errorf("after reopen (-want +got):\n%s", d)
	}
}

func TestDocumentKey(t *testing.T) {
	mod := time.UnixMilli(1700000000123)
	if got := DocumentKey("paper.pdf", 4096, mod); got != "paper.pdf_4096_1700000000123" {
		t.Errorf("DocumentKey = %q", got)
	}
}

// recorder counts saves and runs an optional hook during each save.
type recorder struct {
	Backend
	saves  int
	during func()
	err    error
}

func (r *recorder) Save(ctx context.Context, snap *annotation.Snapshot) error {
	r.saves++
	if r.during != nil {
		r.during()
	}
	if r.err != nil {
		return r.err
	}
	return r.Backend.Save(ctx, snap)
}

func quietAutosaver(s *annotation.Store, b Backend) *Autosaver {
	a := NewAutosaver(s, b, time.Hour)
	a.Logger = log.New(io.Discard, "", 0)
	return a
}

func TestFlush(t *testing.T) {
	ctx := context.Background()
	s := sampleStore(t)
	rec := &recorder{Backend: NewMemory()}
	a := quietAutosaver(s, rec)

	if err := a.Flush(ctx); err != nil {
		t.Fatal(err)
	}
	if s.Dirty() {
		t.Error("store dirty after flush")
	}
	if err := a.Flush(ctx); err != nil {
		t.Fatal(err)
	}
	if rec.saves != 1 {
		t.Errorf("%d saves, want 1 since the store was clean", rec.saves)
	}
	if _, err := rec.Load(ctx, s.DocumentID()); err != nil {
		t.Error(err)
	}
}

func TestFlushConcurrentEdit(t *testing.T) {
	s := sampleStore(t)
	rec := &recorder{Backend: NewMemory()}
	rec.during = func() {
		rec.during = nil
		s.ClearPage(3)
	}
	a := quietAutosaver(s, rec)

	if err := a.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !s.Dirty() {
		t.Error("edit during save was marked as saved")
	}
	if err := a.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}
	if s.Dirty() {
		t.Error("store dirty after second flush")
	}
}

func TestTickError(t *testing.T) {
	s := sampleStore(t)
	failure := errors.New("disk full")
	rec := &recorder{Backend: NewMemory(), err: failure}
	a := quietAutosaver(s, rec)
	var reported error
	a.OnError = func(err error) { reported = err }

	a.tick()
	if !errors.Is(reported, failure) {
		t.Errorf("reported %v, want %v", reported, failure)
	}
	if !s.Dirty() {
		t.Error("failed save cleared the dirty flag")
	}
}

func TestStopFlushes(t *testing.T) {
	ctx := context.Background()
	s := annotation.NewStore("doc", "doc.pdf")
	mem := NewMemory()
	a := quietAutosaver(s, mem)
	if err := a.Start(); err != nil {
		t.Fatal(err)
	}

	_, err := s.Add(annotation.Annotation{Page: 2, Body: &annotation.Arrow{
		Start: annotation.Point{X: 0, Y: 0}, End: annotation.Point{X: 5, Y: 5},
		Color: "black", StrokeWidth: 1, Opacity: 1,
	}})
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Stop(ctx); err != nil {
		t.Fatal(err)
	}

	snap, err := mem.Load(ctx, "doc")
	if err != nil {
		t.Fatal(err)
	}
	if snap.Count() != 1 {
		t.Errorf("saved %d annotations, want 1", snap.Count())
	}
	if s.Dirty() {
		t.Error("store dirty after Stop")
	}
}

func TestStopAfterDeadline(t *testing.T) {
	s := annotation.NewStore("doc", "doc.pdf")
	arrow := annotation.Annotation{Page: 1, Body: &annotation.Arrow{
		Start: annotation.Point{X: 0, Y: 0}, End: annotation.Point{X: 5, Y: 5},
		Color: "black", StrokeWidth: 1, Opacity: 1,
	}}
	if _, err := s.Add(arrow); err != nil {
		t.Fatal(err)
	}

	started := make(chan struct{})
	release := make(chan struct{})
	first := true
	mem := NewMemory()
	rec := &recorder{Backend: mem, during: func() {
		if first {
			first = false
			close(started)
			<-release
		}
	}}
	a := quietAutosaver(s, rec)
	if err := a.Start(); err != nil {
		t.Fatal(err)
	}

	tickDone := make(chan struct{})
	go func() {
		a.tick()
		close(tickDone)
	}()
	<-started
	if _, err := s.Add(arrow); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stopErr := make(chan error)
	go func() { stopErr <- a.Stop(ctx) }()
	close(release)
	<-tickDone
	if err := <-stopErr; err != nil {
		t.Fatal(err)
	}

	snap, err := mem.Load(context.Background(), "doc")
	if err != nil {
		t.Fatal(err)
	}
	if snap.Count() != 2 {
		t.Errorf("saved %d annotations, want 2", snap.Count())
	}
	if s.Dirty() {
		t.Error("store dirty after Stop")
	}
}
