// Package store persists flattened element trees in SQLite so that two
// captures taken minutes or days apart can be diffed by content hash.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mj1618/axquery/internal/model"
)

// ErrNotFound is returned when a snapshot ID does not exist.
var ErrNotFound = errors.New("snapshot not found")

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	target TEXT NOT NULL,
	scope TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS elements (
	snapshot_id INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
	seq INTEGER NOT NULL,
	elem_id INTEGER NOT NULL,
	pos TEXT NOT NULL DEFAULT '',
	path TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL,
	subrole TEXT NOT NULL DEFAULT '',
	title TEXT NOT NULL DEFAULT '',
	value TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	identifier TEXT NOT NULL DEFAULT '',
	x INTEGER NOT NULL DEFAULT 0,
	y INTEGER NOT NULL DEFAULT 0,
	w INTEGER NOT NULL DEFAULT 0,
	h INTEGER NOT NULL DEFAULT 0,
	focused INTEGER NOT NULL DEFAULT 0,
	enabled INTEGER,
	selected INTEGER NOT NULL DEFAULT 0,
	actions TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (snapshot_id, seq)
);
CREATE INDEX IF NOT EXISTS idx_snapshots_target ON snapshots(target, created_at);
`

// Snapshot describes one saved capture.
type Snapshot struct {
	ID        int64     `yaml:"id"              json:"id"`
	Target    string    `yaml:"target"          json:"target"`
	Scope     string    `yaml:"scope,omitempty" json:"scope,omitempty"`
	CreatedAt time.Time `yaml:"created_at"      json:"created_at"`
	Count     int       `yaml:"count"           json:"count"`
}

// Store is a snapshot database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path. ":memory:" gives a
// private in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open store %q: %w", path, err)
	}
	// one connection keeps ":memory:" a single database
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping store %q: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save records els as a new snapshot of target.
func (s *Store) Save(ctx context.Context, target, scope string, els []model.FlatElement) (Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	created := s.now().UTC().Truncate(time.Second)
	res, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (target, scope, created_at) VALUES (?, ?, ?)`,
		target, scope, created.Unix())
	if err != nil {
		return Snapshot{}, fmt.Errorf("insert snapshot: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO elements
		(snapshot_id, seq, elem_id, pos, path, role, subrole, title, value, description, identifier,
		 x, y, w, h, focused, enabled, selected, actions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for seq, el := range els {
		var enabled any
		if el.Enabled != nil {
			enabled = *el.Enabled
		}
		_, err := stmt.ExecContext(ctx, id, seq, el.ID, el.Pos, el.Path, el.Role, el.Subrole,
			el.Title, el.Value, el.Description, el.Identifier,
			el.Bounds[0], el.Bounds[1], el.Bounds[2], el.Bounds[3],
			el.Focused, enabled, el.Selected, strings.Join(el.Actions, ","))
		if err != nil {
			return Snapshot{}, fmt.Errorf("insert element %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Snapshot{}, fmt.Errorf("commit: %w", err)
	}
	return Snapshot{ID: id, Target: target, Scope: scope, CreatedAt: created, Count: len(els)}, nil
}

// List returns saved snapshots, newest first. An empty target lists all.
func (s *Store) List(ctx context.Context, target string) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.target, s.scope, s.created_at, COUNT(e.seq)
		FROM snapshots s LEFT JOIN elements e ON e.snapshot_id = s.id
		WHERE ? = '' OR s.target = ?
		GROUP BY s.id
		ORDER BY s.created_at DESC, s.id DESC`, target, target)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		var created int64
		if err := rows.Scan(&snap.ID, &snap.Target, &snap.Scope, &created, &snap.Count); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snap.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, snap)
	}
	return out, rows.Err()
}

// Latest returns the newest snapshot of target.
func (s *Store) Latest(ctx context.Context, target string) (Snapshot, error) {
	snaps, err := s.List(ctx, target)
	if err != nil {
		return Snapshot{}, err
	}
	if len(snaps) == 0 {
		return Snapshot{}, fmt.Errorf("latest for %q: %w", target, ErrNotFound)
	}
	return snaps[0], nil
}

// Load returns a snapshot and its elements in saved order.
func (s *Store) Load(ctx context.Context, id int64) (Snapshot, []model.FlatElement, error) {
	var snap Snapshot
	var created int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, target, scope, created_at FROM snapshots WHERE id = ?`, id).
		Scan(&snap.ID, &snap.Target, &snap.Scope, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, nil, fmt.Errorf("snapshot %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Snapshot{}, nil, fmt.Errorf("load snapshot %d: %w", id, err)
	}
	snap.CreatedAt = time.Unix(created, 0).UTC()

	rows, err := s.db.QueryContext(ctx, `
		SELECT elem_id, pos, path, role, subrole, title, value, description, identifier,
		       x, y, w, h, focused, enabled, selected, actions
		FROM elements WHERE snapshot_id = ? ORDER BY seq`, id)
	if err != nil {
		return Snapshot{}, nil, fmt.Errorf("load elements: %w", err)
	}
	defer rows.Close()

	els := []model.FlatElement{}
	for rows.Next() {
		var el model.FlatElement
		var enabled sql.NullBool
		var actions string
		if err := rows.Scan(&el.ID, &el.Pos, &el.Path, &el.Role, &el.Subrole, &el.Title, &el.Value,
			&el.Description, &el.Identifier, &el.Bounds[0], &el.Bounds[1], &el.Bounds[2], &el.Bounds[3],
			&el.Focused, &enabled, &el.Selected, &actions); err != nil {
			return Snapshot{}, nil, fmt.Errorf("scan element: %w", err)
		}
		if enabled.Valid {
			v := enabled.Bool
			el.Enabled = &v
		}
		if actions != "" {
			el.Actions = strings.Split(actions, ",")
		}
		els = append(els, el)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, nil, err
	}
	snap.Count = len(els)
	return snap, els, nil
}

// Diff compares two saved snapshots by content hash.
func (s *Store) Diff(ctx context.Context, from, to int64) (model.TreeDiff, error) {
	_, prev, err := s.Load(ctx, from)
	if err != nil {
		return model.TreeDiff{}, err
	}
	_, curr, err := s.Load(ctx, to)
	if err != nil {
		return model.TreeDiff{}, err
	}
	return model.DiffElementsByHash(prev, curr), nil
}

// Delete removes a snapshot and its elements.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete snapshot %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("snapshot %d: %w", id, ErrNotFound)
	}
	return nil
}
