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

// Package persist stores annotation snapshots.
//
// A [Backend] loads and saves the [annotation.Snapshot] of one document
// at a time.  [Memory], [Dir] and [SQLite] are the available
// implementations.  An [Autosaver] periodically writes the contents of a
// store to a backend.
package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"seehuhn.de/go/folio/annotation"
)

// ErrNotFound is returned by [Backend.Load] if no snapshot is stored for
// the requested document.
var ErrNotFound = errors.New("document not found")

// Backend is a storage location for annotation snapshots.
type Backend interface {
	// Load returns the snapshot stored for documentID.  If there is none,
	// an error wrapping ErrNotFound is returned.
	Load(ctx context.Context, documentID string) (*annotation.Snapshot, error)

	// Save stores snap, replacing an earlier snapshot of the same document.
	Save(ctx context.Context, snap *annotation.Snapshot) error
}

// Info summarises a stored snapshot.
type Info struct {
	DocumentID   string
	FileName     string
	LastModified time.Time
	Annotations  int
}

// Lister is implemented by backends which can enumerate their documents.
// The result is sorted by document id.
type Lister interface {
	List(ctx context.Context) ([]Info, error)
}

// DocumentKey derives the identity of a document from its file name, size
// and modification time.  Annotations follow a file as long as it is not
// changed.
func DocumentKey(name string, size int64, modTime time.Time) string {
	return fmt.Sprintf("%s_%d_%d", name, size, modTime.UnixMilli())
}

func infoOf(snap *annotation.Snapshot) Info {
	return Info{
		DocumentID:   snap.DocumentID,
		FileName:     snap.FileName,
		LastModified: snap.LastModified,
		Annotations:  snap.Count(),
	}
}
