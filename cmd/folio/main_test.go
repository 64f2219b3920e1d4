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

package main

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seehuhn.de/go/folio/annotation"
	"seehuhn.de/go/folio/persist"
)

func sample(t *testing.T, b persist.Backend) {
	t.Helper()
	s := annotation.NewStore("notes.pdf_10_20", "notes.pdf")
	_, err := s.Add(annotation.Annotation{Page: 1, Body: &annotation.Arrow{
		Start:       annotation.Point{X: 10, Y: 10},
		End:         annotation.Point{X: 90, Y: 90},
		Color:       "green",
		StrokeWidth: 3,
		Opacity:     1,
	}})
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Save(context.Background(), s.Snapshot()); err != nil {
		t.Fatal(err)
	}
}

func TestList(t *testing.T) {
	mem := persist.NewMemory()
	sample(t, mem)

	var out strings.Builder
	if err := list(context.Background(), mem, &out); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), out.String())
	}
	fields := strings.Fields(lines[1])
	if fields[0] != "notes.pdf_10_20" || fields[1] != "notes.pdf" || fields[2] != "1" {
		t.Errorf("unexpected row %q", lines[1])
	}
}

func TestKey(t *testing.T) {
	name := filepath.Join(t.TempDir(), "paper.pdf")
	if err := os.WriteFile(name, []byte("%PDF-1.7"), 0o644); err != nil {
		t.Fatal(err)
	}
	var out strings.Builder
	if err := key([]string{name}, &out); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); !strings.HasPrefix(got, "paper.pdf_8_") {
		t.Errorf("key output %q", got)
	}
}

func TestRenderAndClear(t *testing.T) {
	ctx := context.Background()
	dir, err := persist.OpenDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	sample(t, dir)

	out := filepath.Join(t.TempDir(), "page.png")
	err = render(ctx, dir, []string{"-width", "100", "-height", "100", "notes.pdf_10_20", out})
	if err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(f)
	f.Close()
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
		t.Errorf("image size %v", b)
	}

	if err := clearCmd(ctx, dir, []string{"notes.pdf_10_20"}); err != nil {
		t.Fatal(err)
	}
	snap, err := dir.Load(ctx, "notes.pdf_10_20")
	if err != nil {
		t.Fatal(err)
	}
	if snap.Count() != 0 {
		t.Errorf("%d annotations left after clear", snap.Count())
	}
}
