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
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"seehuhn.de/go/folio/annotation"
)

const dirSuffix = ".json"

// Dir is a [Backend] which stores one JSON file per document in a
// directory.  Files are replaced atomically, so that a crash during a save
// leaves the previous version intact.
type Dir struct {
	root string
}

// OpenDir returns a backend storing its files in root.  The directory is
// created if needed.
func OpenDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("dir: create %s: %w", root, err)
	}
	return &Dir{root: root}, nil
}

func (d *Dir) file(documentID string) string {
	return filepath.Join(d.root, url.PathEscape(documentID)+dirSuffix)
}

// Load implements the [Backend] interface.
func (d *Dir) Load(ctx context.Context, documentID string) (*annotation.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(d.file(documentID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("dir: %w: %q", ErrNotFound, documentID)
	} else if err != nil {
		return nil, fmt.Errorf("dir: %w", err)
	}

	snap := &annotation.Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("dir: decode %q: %w", documentID, err)
	}
	return snap, nil
}

// Save implements the [Backend] interface.
func (d *Dir) Save(ctx context.Context, snap *annotation.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("dir: encode %q: %w", snap.DocumentID, err)
	}

	tmp, err := os.CreateTemp(d.root, ".save-*")
	if err != nil {
		return fmt.Errorf("dir: %w", err)
	}
	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), d.file(snap.DocumentID))
	}
	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("dir: save %q: %w", snap.DocumentID, err)
	}
	return nil
}

// List implements the [Lister] interface.
func (d *Dir) List(ctx context.Context) ([]Info, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, fmt.Errorf("dir: %w", err)
	}

	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, dirSuffix) {
			continue
		}
		id, err := url.PathUnescape(strings.TrimSuffix(name, dirSuffix))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)

	res := make([]Info, 0, len(ids))
	for _, id := range ids {
		snap, err := d.Load(ctx, id)
		if err != nil {
			return nil, err
		}
		res = append(res, infoOf(snap))
	}
	return res, nil
}
