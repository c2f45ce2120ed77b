package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/starford/glosa/internal/apperr"
	"github.com/starford/glosa/internal/models"
)

const noteColumns = `id, title, content, analyzed_words, analyzed_count, total_words, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// CreateNote inserts a note and returns it with its assigned ID.
func (db *DB) CreateNote(ctx context.Context, title *string, content string) (*models.Note, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO notes (title, content, analyzed_words, created_at, updated_at)
		VALUES (?, ?, '[]', ?, ?)
	`, nullString(title), content, now, now)
	if err != nil {
		return nil, fmt.Errorf("store: insert note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("store: note id: %w", err)
	}
	if err := ftsUpsert(ctx, tx, id, derefString(title), content); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: commit: %w", err)
	}
	return db.GetNote(ctx, id)
}

// GetNote returns the note with the given ID or apperr.ErrNotFound.
func (db *DB) GetNote(ctx context.Context, id int64) (*models.Note, error) {
	row := db.conn.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get note: %w", err)
	}
	return n, nil
}

// ListNotes returns notes ordered by creation time and the total note count.
// A non-positive limit defaults to 50.
func (db *DB) ListNotes(ctx context.Context, limit, offset int) ([]models.Note, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := db.conn.QueryRowContext(ctx, `SELECT count(*) FROM notes`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("store: count notes: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx, `
		SELECT `+noteColumns+` FROM notes
		ORDER BY created_at, id
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("store: list notes: %w", err)
	}
	defer rows.Close()

	out := []models.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("store: scan note: %w", err)
		}
		out = append(out, *n)
	}
	return out, total, rows.Err()
}

// UpdateNote applies the non-nil fields and bumps updated_at. A non-nil
// empty title clears the title.
func (db *DB) UpdateNote(ctx context.Context, id int64, title, content *string) (*models.Note, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, `
		UPDATE notes SET
			title      = CASE WHEN ? THEN ? ELSE title END,
			content    = COALESCE(?, content),
			updated_at = ?
		WHERE id = ?
	`, title != nil, nullTitle(title), nullString(content), time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("store: update note: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, apperr.ErrNotFound
	}

	var curTitle sql.NullString
	var curContent string
	if err := tx.QueryRowContext(ctx, `SELECT title, content FROM notes WHERE id = ?`, id).Scan(&curTitle, &curContent); err != nil {
		return nil, fmt.Errorf("store: reload note: %w", err)
	}
	if err := ftsUpsert(ctx, tx, id, curTitle.String, curContent); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: commit: %w", err)
	}
	return db.GetNote(ctx, id)
}

// SetAnalysis replaces the analyzed words and counts of a note.
func (db *DB) SetAnalysis(ctx context.Context, id int64, words []models.AnalyzedWord, totalWords int) (*models.Note, error) {
	if words == nil {
		words = []models.AnalyzedWord{}
	}
	data, err := json.Marshal(words)
	if err != nil {
		return nil, fmt.Errorf("store: encode analyzed words: %w", err)
	}
	res, err := db.conn.ExecContext(ctx, `
		UPDATE notes SET
			analyzed_words = ?,
			analyzed_count = ?,
			total_words    = ?,
			updated_at     = ?
		WHERE id = ?
	`, string(data), len(words), totalWords, time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("store: set analysis: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, apperr.ErrNotFound
	}
	return db.GetNote(ctx, id)
}

// DeleteNote removes a note and its search entry. Import records are kept,
// so an unchanged inbox file does not bring the note back.
func (db *DB) DeleteNote(ctx context.Context, id int64) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete note: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	ftsDelete(ctx, tx, id)
	return tx.Commit()
}

func scanNote(row rowScanner) (*models.Note, error) {
	var (
		n     models.Note
		title sql.NullString
		words string
	)
	if err := row.Scan(&n.ID, &title, &n.Content, &words, &n.AnalyzedCount, &n.TotalWords, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	if title.Valid {
		t := title.String
		n.Title = &t
	}
	if err := json.Unmarshal([]byte(words), &n.AnalyzedWords); err != nil {
		return nil, fmt.Errorf("decode analyzed words: %w", err)
	}
	if n.AnalyzedWords == nil {
		n.AnalyzedWords = []models.AnalyzedWord{}
	}
	return &n, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// nullTitle maps a blank title to NULL.
func nullTitle(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
