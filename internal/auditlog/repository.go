package auditlog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"nathanbeddoewebdev/opsdeck/internal/database"
)

// Repository defines the persistence interface for audit entries.
type Repository interface {
	Save(ctx context.Context, entry *Entry) error
	List(ctx context.Context, limit int) ([]Entry, error)
	ListByKind(ctx context.Context, kind string, limit int) ([]Entry, error)
	Prune(ctx context.Context, olderThan time.Duration, kind string) (int64, error)
	Close() error
}

// SQLiteRepository implements Repository backed by a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

var _ Repository = (*SQLiteRepository)(nil)

// Open creates or opens the audit repository at the default path.
func Open() (*SQLiteRepository, error) {
	path, err := database.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("auditlog: %w", err)
	}
	return OpenAt(path)
}

// OpenAt creates or opens a SQLite database at the given path.
func OpenAt(path string) (*SQLiteRepository, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("auditlog: %w", err)
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
        CREATE TABLE IF NOT EXISTS mutations (
            id            INTEGER PRIMARY KEY AUTOINCREMENT,
            timestamp     TEXT    NOT NULL,
            kind          TEXT    NOT NULL,
            operation     TEXT    NOT NULL,
            resource_id   TEXT    NOT NULL DEFAULT '',
            resource_name TEXT    NOT NULL DEFAULT '',
            source        TEXT    NOT NULL DEFAULT '',
            args          TEXT    NOT NULL DEFAULT '',
            origin        TEXT    NOT NULL DEFAULT '',
            outcome       TEXT    NOT NULL DEFAULT '',
            detail        TEXT    NOT NULL DEFAULT '',
            duration_ms   INTEGER NOT NULL DEFAULT 0
        );
        CREATE INDEX IF NOT EXISTS idx_mutations_timestamp ON mutations(timestamp);
        CREATE INDEX IF NOT EXISTS idx_mutations_kind ON mutations(kind, resource_id);
    `
	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("auditlog: migration failed: %w", err)
	}
	return nil
}

// Save inserts a new audit entry, assigning its ID and, when unset, its
// timestamp.
func (r *SQLiteRepository) Save(ctx context.Context, entry *Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	result, err := r.db.ExecContext(ctx, `
        INSERT INTO mutations (timestamp, kind, operation, resource_id, resource_name, source, args, origin, outcome, detail, duration_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.Timestamp.UTC().Format(time.RFC3339Nano), entry.Kind, entry.Operation,
		entry.ResourceID, entry.ResourceName, entry.Source, entry.Args, entry.Origin,
		entry.Outcome, entry.Detail, entry.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("auditlog: insert failed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("auditlog: failed to get last insert ID: %w", err)
	}
	entry.ID = id
	return nil
}

const selectColumns = `SELECT id, timestamp, kind, operation, resource_id, resource_name,
               source, args, origin, outcome, detail, duration_ms
        FROM mutations`

// List returns the most recent n audit entries.
func (r *SQLiteRepository) List(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("auditlog: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// ListByKind returns the most recent n audit entries for one entity kind.
func (r *SQLiteRepository) ListByKind(ctx context.Context, kind string, limit int) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` WHERE kind = ? ORDER BY timestamp DESC LIMIT ?`,
		strings.ToLower(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("auditlog: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// Prune deletes entries older than the given duration. A non-empty kind
// limits the deletion to that resource kind.
func (r *SQLiteRepository) Prune(ctx context.Context, olderThan time.Duration, kind string) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339Nano)

	query, args := `DELETE FROM mutations WHERE timestamp < ?`, []any{cutoff}
	if kind != "" {
		query += ` AND kind = ?`
		args = append(args, kind)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("auditlog: delete failed: %w", err)
	}
	return result.RowsAffected()
}

// Close releases database resources.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func scanRows(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var entry Entry
		var timestampStr string
		err := rows.Scan(
			&entry.ID, &timestampStr, &entry.Kind, &entry.Operation,
			&entry.ResourceID, &entry.ResourceName, &entry.Source, &entry.Args, &entry.Origin,
			&entry.Outcome, &entry.Detail, &entry.DurationMs,
		)
		if err != nil {
			return nil, fmt.Errorf("auditlog: scan failed: %w", err)
		}
		entry.Timestamp, _ = time.Parse(time.RFC3339Nano, timestampStr)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
