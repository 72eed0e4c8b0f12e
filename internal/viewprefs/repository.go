// Package viewprefs persists list-screen state (search text and facet
// values) so an interactive session reopens where the previous one left off.
//
// Preferences are keyed by (API origin, entity kind) and stored in the
// shared opsdeck SQLite database in their own table.
package viewprefs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nathanbeddoewebdev/opsdeck/internal/database"
)

// Repository defines the persistence interface for list preferences.
type Repository interface {
	// Get returns preferences for an (origin, kind) pair, or nil if none
	// were saved.
	Get(ctx context.Context, origin, kind string) (*ViewPrefs, error)

	// Save upserts preferences.
	Save(ctx context.Context, prefs *ViewPrefs) error

	// Close releases database resources.
	Close() error
}

// SQLiteRepository implements Repository backed by a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

var _ Repository = (*SQLiteRepository)(nil)

// Open creates or opens the repository at the default database path.
func Open() (*SQLiteRepository, error) {
	path, err := database.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("viewprefs: %w", err)
	}
	return OpenAt(path)
}

// OpenAt creates or opens a SQLite database at the given path.
func OpenAt(path string) (*SQLiteRepository, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("viewprefs: %w", err)
	}

	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepository) migrate() error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS view_prefs (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			origin     TEXT NOT NULL,
			kind       TEXT NOT NULL,
			search     TEXT NOT NULL DEFAULT '',
			facets     TEXT NOT NULL DEFAULT '{}',
			updated_at TEXT NOT NULL DEFAULT (datetime('now')),
			UNIQUE(origin, kind)
		);
	`
	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("viewprefs: migration failed: %w", err)
	}
	return nil
}

// Get returns preferences for an (origin, kind) pair, or nil if not found.
func (r *SQLiteRepository) Get(ctx context.Context, origin, kind string) (*ViewPrefs, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, origin, kind, search, facets, updated_at
		FROM view_prefs WHERE origin = ? AND kind = ?`,
		origin, kind)

	var prefs ViewPrefs
	var facetsJSON, updatedStr string
	err := row.Scan(&prefs.ID, &prefs.Origin, &prefs.Kind, &prefs.Search, &facetsJSON, &updatedStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("viewprefs: query failed: %w", err)
	}
	if err := json.Unmarshal([]byte(facetsJSON), &prefs.Facets); err != nil {
		return nil, fmt.Errorf("viewprefs: corrupt facets for %s: %w", kind, err)
	}
	prefs.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedStr)
	return &prefs, nil
}

// Save upserts preferences for an (origin, kind) pair.
func (r *SQLiteRepository) Save(ctx context.Context, prefs *ViewPrefs) error {
	prefs.UpdatedAt = time.Now().UTC()

	facets := prefs.Facets
	if facets == nil {
		facets = map[string]string{}
	}
	facetsJSON, err := json.Marshal(facets)
	if err != nil {
		return fmt.Errorf("viewprefs: failed to encode facets: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO view_prefs (origin, kind, search, facets, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(origin, kind) DO UPDATE SET
			search = excluded.search,
			facets = excluded.facets,
			updated_at = excluded.updated_at`,
		prefs.Origin, prefs.Kind, prefs.Search, string(facetsJSON), prefs.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("viewprefs: upsert failed: %w", err)
	}

	if prefs.ID == 0 {
		if id, err := result.LastInsertId(); err == nil {
			prefs.ID = id
		}
	}
	return nil
}

// Close releases database resources.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
