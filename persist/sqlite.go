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
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"seehuhn.de/go/folio/annotation"
)

// SQLite is a [Backend] which stores one row per document in an SQLite
// database.
type SQLite struct {
	conn *sql.DB
}

// OpenSQLite opens (or creates) the database file at path.
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite: create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// SQLite has a single writer.
	conn.SetMaxOpenConns(1)

	db := &SQLite{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}
	return db, nil
}

// Close closes the database.
func (db *SQLite) Close() error {
	return db.conn.Close()
}

func (db *SQLite) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			file_name TEXT NOT NULL,
			last_modified TEXT NOT NULL,
			data TEXT NOT NULL
		)`,
		`ALTER TABLE documents ADD COLUMN annotations INTEGER NOT NULL DEFAULT 0`,
		`ALTER TABLE documents ADD COLUMN saved_at TEXT NOT NULL DEFAULT ''`,
	}

	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			// ALTER TABLE fails once the column exists
			if strings.Contains(m, "ALTER TABLE") && strings.Contains(err.Error(), "duplicate column") {
				continue
			}
			return fmt.Errorf("migration failed: %s: %w", m[:40], err)
		}
	}
	return nil
}

// Load implements the [Backend] interface.
func (db *SQLite) Load(ctx context.Context, documentID string) (*annotation.Snapshot, error) {
	var data string
	err := db.conn.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE id = ?`, documentID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sqlite: %w: %q", ErrNotFound, documentID)
	} else if err != nil {
		return nil, fmt.Errorf("sqlite: load %q: %w", documentID, err)
	}

	snap := &annotation.Snapshot{}
	if err := json.Unmarshal([]byte(data), snap); err != nil {
		return nil, fmt.Errorf("sqlite: decode %q: %w", documentID, err)
	}
	return snap, nil
}

// Save implements the [Backend] interface.
func (db *SQLite) Save(ctx context.Context, snap *annotation.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("sqlite: encode %q: %w", snap.DocumentID, err)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO documents (id, file_name, last_modified, data, annotations, saved_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			file_name = excluded.file_name,
			last_modified = excluded.last_modified,
			data = excluded.data,
			annotations = excluded.annotations,
			saved_at = excluded.saved_at`,
		snap.DocumentID, snap.FileName, snap.LastModified.UTC().Format(time.RFC3339Nano),
		string(data), snap.Count())
	if err != nil {
		return fmt.Errorf("sqlite: save %q: %w", snap.DocumentID, err)
	}
	return nil
}

// List implements the [Lister] interface.
func (db *SQLite) List(ctx context.Context) ([]Info, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, file_name, last_modified, annotations FROM documents ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list: %w", err)
	}
	defer rows.Close()

	var res []Info
	for rows.Next() {
		var info Info
		var modified string
		if err := rows.Scan(&info.DocumentID, &info.FileName, &modified, &info.Annotations); err != nil {
			return nil, fmt.Errorf("sqlite: list: %w", err)
		}
		info.LastModified, err = time.Parse(time.RFC3339Nano, modified)
		if err != nil {
			return nil, fmt.Errorf("sqlite: list %q: %w", info.DocumentID, err)
		}
		res = append(res, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list: %w", err)
	}
	return res, nil
}
