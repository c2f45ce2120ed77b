package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ImportRow links an inbox file to the note it was imported as.
type ImportRow struct {
	Path       string
	Checksum   string
	NoteID     int64
	ImportedAt time.Time
}

// GetImport returns the import record for path, or nil when the file was never imported.
func (db *DB) GetImport(ctx context.Context, path string) (*ImportRow, error) {
	r := ImportRow{Path: path}
	err := db.conn.QueryRowContext(ctx,
		`SELECT checksum, note_id, imported_at FROM imports WHERE path = ?`, path,
	).Scan(&r.Checksum, &r.NoteID, &r.ImportedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get import: %w", err)
	}
	return &r, nil
}

// UpsertImport records that path with checksum is now stored as noteID.
func (db *DB) UpsertImport(ctx context.Context, path, checksum string, noteID int64) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO imports (path, checksum, note_id, imported_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			checksum    = excluded.checksum,
			note_id     = excluded.note_id,
			imported_at = excluded.imported_at
	`, path, checksum, noteID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("store: upsert import: %w", err)
	}
	return nil
}
