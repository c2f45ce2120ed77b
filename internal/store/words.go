package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/starford/glosa/internal/models"
)

// WordCache is the durable definition cache keyed by normalized word.
// It has upsert semantics and no eviction.
type WordCache struct {
	db *DB
}

// Words returns the definition cache backed by db.
func (db *DB) Words() *WordCache {
	return &WordCache{db: db}
}

// CachedWord is one row of the definition cache.
type CachedWord struct {
	Word     string
	Entry    *models.Entry
	StoredAt time.Time
}

// Get returns the cached entry for word. The bool is false on a miss.
func (c *WordCache) Get(ctx context.Context, word string) (*models.Entry, bool, error) {
	cw, err := c.Lookup(ctx, word)
	if err != nil || cw == nil {
		return nil, false, err
	}
	return cw.Entry, true, nil
}

// Lookup returns the full cache row for word, or nil when absent.
func (c *WordCache) Lookup(ctx context.Context, word string) (*CachedWord, error) {
	var (
		data string
		cw   = CachedWord{Word: word}
	)
	err := c.db.conn.QueryRowContext(ctx,
		`SELECT analysis_data, created_at FROM words WHERE word = ?`, word,
	).Scan(&data, &cw.StoredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get word: %w", err)
	}
	var e models.Entry
	if err := json.Unmarshal([]byte(data), &e); err != nil {
		return nil, fmt.Errorf("store: decode word %q: %w", word, err)
	}
	cw.Entry = &e
	return &cw, nil
}

// Put upserts the entry for word, overwriting payload and stored time.
func (c *WordCache) Put(ctx context.Context, word string, entry *models.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("store: encode word %q: %w", word, err)
	}
	_, err = c.db.conn.ExecContext(ctx, `
		INSERT INTO words (word, analysis_data, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(word) DO UPDATE SET
			analysis_data = excluded.analysis_data,
			created_at    = excluded.created_at
	`, word, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("store: upsert word: %w", err)
	}
	return nil
}
