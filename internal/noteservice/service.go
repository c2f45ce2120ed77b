// Package noteservice implements note CRUD on top of the store and
// announces changes to live subscribers.
package noteservice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/starford/glosa/internal/apperr"
	"github.com/starford/glosa/internal/checksum"
	"github.com/starford/glosa/internal/models"
	"github.com/starford/glosa/internal/sse"
	"github.com/starford/glosa/internal/store"
)

// Events receives note lifecycle notifications.
type Events interface {
	PublishNoteEvent(kind string, id int64)
}

// CreateInput holds the fields of a new note.
type CreateInput struct {
	Title   *string
	Content string
}

// UpdateInput holds a partial note update. Nil fields are left unchanged.
// IfMatch, when set, must equal the note's current ETag.
type UpdateInput struct {
	Title   *string
	Content *string
	IfMatch string
}

// Service coordinates note storage and change events.
type Service struct {
	db     *store.DB
	events Events
	log    *slog.Logger
}

// NewService creates a new note service. events may be nil.
func NewService(db *store.DB, events Events, logger *slog.Logger) *Service {
	return &Service{db: db, events: events, log: logger.With("component", "notes")}
}

// ETag returns the version tag of a note's editable fields.
func ETag(n *models.Note) string {
	var title string
	if n.Title != nil {
		title = *n.Title
	}
	return checksum.Fields(title, n.Content)
}

// GetNote returns the note with the given id.
func (s *Service) GetNote(ctx context.Context, id int64) (*models.Note, error) {
	return s.db.GetNote(ctx, id)
}

// ListNotes returns a page of notes, oldest first, and the total count.
func (s *Service) ListNotes(ctx context.Context, limit, offset int) ([]models.Note, int, error) {
	if limit < 0 || offset < 0 {
		return nil, 0, fmt.Errorf("%w: limit and offset must not be negative", apperr.ErrInvalidInput)
	}
	return s.db.ListNotes(ctx, limit, offset)
}

// CreateNote stores a new note. Content must not be blank.
func (s *Service) CreateNote(ctx context.Context, in CreateInput) (*models.Note, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", apperr.ErrInvalidInput)
	}
	n, err := s.db.CreateNote(ctx, normalizeTitle(in.Title), in.Content)
	if err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "note created", slog.Int64("note_id", n.ID))
	s.publish(sse.TypeNoteCreated, n.ID)
	return n, nil
}

// UpdateNote applies a partial update.
func (s *Service) UpdateNote(ctx context.Context, id int64, in UpdateInput) (*models.Note, error) {
	if in.Title == nil && in.Content == nil {
		return nil, fmt.Errorf("%w: nothing to update", apperr.ErrInvalidInput)
	}
	if in.Content != nil && strings.TrimSpace(*in.Content) == "" {
		return nil, fmt.Errorf("%w: content must not be empty", apperr.ErrInvalidInput)
	}
	if in.IfMatch != "" {
		cur, err := s.db.GetNote(ctx, id)
		if err != nil {
			return nil, err
		}
		if ETag(cur) != in.IfMatch {
			return nil, apperr.ErrConflict
		}
	}

	// A blank title clears it.
	var title *string
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		title = &t
	}
	n, err := s.db.UpdateNote(ctx, id, title, in.Content)
	if err != nil {
		return nil, err
	}
	s.publish(sse.TypeNoteUpdated, id)
	return n, nil
}

// DeleteNote removes a note.
func (s *Service) DeleteNote(ctx context.Context, id int64) error {
	if err := s.db.DeleteNote(ctx, id); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "note deleted", slog.Int64("note_id", id))
	s.publish(sse.TypeNoteDeleted, id)
	return nil
}

// Search runs a full-text query over note titles and content.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]store.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", apperr.ErrInvalidInput)
	}
	return s.db.Search(ctx, query, limit)
}

func (s *Service) publish(kind string, id int64) {
	if s.events != nil {
		s.events.PublishNoteEvent(kind, id)
	}
}

func normalizeTitle(t *string) *string {
	if t == nil {
		return nil
	}
	v := strings.TrimSpace(*t)
	if v == "" {
		return nil
	}
	return &v
}
