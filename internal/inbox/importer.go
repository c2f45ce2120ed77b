// Package inbox turns text and Markdown files dropped into a folder into
// notes, and keeps those notes in step with later edits to the files.
package inbox

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/starford/glosa/internal/analyzer"
	"github.com/starford/glosa/internal/apperr"
	"github.com/starford/glosa/internal/checksum"
	"github.com/starford/glosa/internal/models"
	"github.com/starford/glosa/internal/noteservice"
	"github.com/starford/glosa/internal/store"
)

// Outcome reports what an import did with a file.
type Outcome string

const (
	Created   Outcome = "created"
	Updated   Outcome = "updated"
	Unchanged Outcome = "unchanged"
	Skipped   Outcome = "skipped"
)

// NoteAnalyzer analyzes a note after it is imported.
type NoteAnalyzer interface {
	AnalyzeNote(ctx context.Context, id int64, words []string) (*analyzer.Report, error)
}

// Importer imports inbox files as notes. Each file path maps to at most one
// note; the file checksum is recorded so unchanged files are not re-imported.
type Importer struct {
	root     string
	notes    *noteservice.Service
	db       *store.DB
	analyzer NoteAnalyzer
	log      *slog.Logger
}

// NewImporter creates an Importer for root. When an is non-nil every created
// or updated note is analyzed right away.
func NewImporter(root string, notes *noteservice.Service, db *store.DB, an NoteAnalyzer, logger *slog.Logger) *Importer {
	return &Importer{
		root:     root,
		notes:    notes,
		db:       db,
		analyzer: an,
		log:      logger.With("component", "inbox"),
	}
}

// Eligible reports whether path names a file the inbox imports.
func Eligible(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".md", ".txt":
		return true
	}
	return false
}

// Scan imports every eligible file under the inbox root.
func (im *Importer) Scan(ctx context.Context) error {
	return im.scanDir(ctx, im.root)
}

func (im *Importer) scanDir(ctx context.Context, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !Eligible(path) {
			return nil
		}
		if _, impErr := im.ImportFile(ctx, path); impErr != nil {
			im.log.WarnContext(ctx, "import failed", slog.String("path", path), slog.String("error", impErr.Error()))
		}
		return nil
	})
}

// ImportFile creates or updates the note for the file at path.
func (im *Importer) ImportFile(ctx context.Context, path string) (Outcome, error) {
	if !Eligible(path) {
		return Skipped, nil
	}
	rel, err := filepath.Rel(im.root, path)
	if err != nil {
		return Skipped, fmt.Errorf("inbox: relative path: %w", err)
	}
	rel = filepath.ToSlash(rel)

	data, err := os.ReadFile(path)
	if err != nil {
		return Skipped, fmt.Errorf("inbox: read %s: %w", rel, err)
	}
	sum := checksum.Sum(data)

	prev, err := im.db.GetImport(ctx, rel)
	if err != nil {
		return Skipped, err
	}
	if prev != nil && prev.Checksum == sum {
		return Unchanged, nil
	}

	doc := ParseDocument(data)
	if strings.TrimSpace(doc.Body) == "" {
		im.log.DebugContext(ctx, "empty file skipped", slog.String("path", rel))
		return Skipped, nil
	}

	note, outcome, err := im.write(ctx, prev, doc)
	if err != nil {
		return Skipped, fmt.Errorf("inbox: import %s: %w", rel, err)
	}
	if err := im.db.UpsertImport(ctx, rel, sum, note.ID); err != nil {
		return Skipped, err
	}
	im.log.InfoContext(ctx, "file imported",
		slog.String("path", rel),
		slog.Int64("note_id", note.ID),
		slog.String("outcome", string(outcome)))

	if im.analyzer != nil {
		if _, err := im.analyzer.AnalyzeNote(ctx, note.ID, nil); err != nil {
			im.log.WarnContext(ctx, "auto analysis failed", slog.Int64("note_id", note.ID), slog.String("error", err.Error()))
		}
	}
	return outcome, nil
}

// write updates the previously imported note, or creates one when there is
// none or it has since been deleted.
func (im *Importer) write(ctx context.Context, prev *store.ImportRow, doc Document) (*models.Note, Outcome, error) {
	if prev != nil {
		title := doc.Title
		if title == nil {
			title = new(string)
		}
		n, err := im.notes.UpdateNote(ctx, prev.NoteID, noteservice.UpdateInput{Title: title, Content: &doc.Body})
		if err == nil {
			return n, Updated, nil
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			return nil, Skipped, err
		}
	}
	n, err := im.notes.CreateNote(ctx, noteservice.CreateInput{Title: doc.Title, Content: doc.Body})
	if err != nil {
		return nil, Skipped, err
	}
	return n, Created, nil
}
