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
	"fmt"
	"slices"
	"sync"

	"seehuhn.de/go/folio/annotation"
)

// Memory is a [Backend] which keeps snapshots in memory.  Snapshots are
// held in encoded form, so that loading always returns a fresh copy.
// Memory is safe for concurrent use.
type Memory struct {
	mu   sync.Mutex
	docs map[string][]byte
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

// Load implements the [Backend] interface.
func (m *Memory) Load(_ context.Context, documentID string) (*annotation.Snapshot, error) {
	m.mu.Lock()
	data, ok := m.docs[documentID]
	m.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("memory: %w: %q", ErrNotFound, documentID)
	}

	snap := &annotation.Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("memory: decode %q: %w", documentID, err)
	}
	return snap, nil
}

// Save implements the [Backend] interface.
func (m *Memory) Save(_ context.Context, snap *annotation.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("memory: encode %q: %w", snap.DocumentID, err)
	}

	m.mu.Lock()
	m.docs[snap.DocumentID] = data
	m.mu.Unlock()
	return nil
}

// List implements the [Lister] interface.
func (m *Memory) List(ctx context.Context) ([]Info, error) {
	m.mu.Lock()
	ids := make([]string, 0, len(m.docs))
	for id := range m.docs {
		ids = append(ids, id)
	}
	m.mu.Unlock()
	slices.Sort(ids)

	res := make([]Info, 0, len(ids))
	for _, id := range ids {
		snap, err := m.Load(ctx, id)
		if err != nil {
			return nil, err
		}
		res = append(res, infoOf(snap))
	}
	return res, nil
}
