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
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"seehuhn.de/go/folio/annotation"
)

// DefaultInterval is the autosave period used if none is given.
const DefaultInterval = 5 * time.Second

// Autosaver periodically saves a store to a backend.
//
// Each tick saves a snapshot if the store is dirty.  The dirty flag is
// cleared only if the store was not modified while the snapshot was being
// written.
type Autosaver struct {
	store    *annotation.Store
	backend  Backend
	interval time.Duration

	// Logger receives failed saves.  If nil, the standard logger is used.
	Logger *log.Logger

	// OnError, if set, is called with the error of every failed save
	// triggered by the timer.
	OnError func(error)

	mu   sync.Mutex // serialises saves
	cron *cron.Cron
}

// NewAutosaver returns an autosaver for store.  If interval is not
// positive, DefaultInterval is used.  Call Start to begin saving.
func NewAutosaver(store *annotation.Store, backend Backend, interval time.Duration) *Autosaver {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Autosaver{
		store:    store,
		backend:  backend,
		interval: interval,
	}
}

// Start schedules the periodic saves.
func (a *Autosaver) Start() error {
	if a.cron != nil {
		return nil
	}
	c := cron.New()
	_, err := c.AddFunc(fmt.Sprintf("@every %s", a.interval), a.tick)
	if err != nil {
		return fmt.Errorf("autosave: %w", err)
	}
	c.Start()
	a.cron = c
	return nil
}

// Stop ends the periodic saves and then saves the store one final time.
// A save still running from the timer is waited for.  The final save is
// not cancelled when ctx is done, so edits made before Stop are never
// dropped.
func (a *Autosaver) Stop(ctx context.Context) error {
	if a.cron != nil {
		a.cron.Stop()
		a.cron = nil
	}
	return a.Flush(context.WithoutCancel(ctx))
}

// Flush saves the store now, if it is dirty.
func (a *Autosaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.store.Dirty() {
		return nil
	}
	snap := a.store.Snapshot()
	if err := a.backend.Save(ctx, snap); err != nil {
		return fmt.Errorf("autosave %q: %w", snap.DocumentID, err)
	}
	a.store.MarkSaved(snap.Generation)
	return nil
}

func (a *Autosaver) tick() {
	err := a.Flush(context.Background())
	if err == nil {
		return
	}
	a.logger().Printf("persist: %v", err)
	if a.OnError != nil {
		a.OnError(err)
	}
}

func (a *Autosaver) logger() *log.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return log.Default()
}
