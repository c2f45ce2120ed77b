package analyzer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/starford/glosa/internal/dictionary"
	"github.com/starford/glosa/internal/extract"
	"github.com/starford/glosa/internal/models"
)

// NoteStore is the note persistence the analyzer reads from and writes to.
type NoteStore interface {
	GetNote(ctx context.Context, id int64) (*models.Note, error)
	SetAnalysis(ctx context.Context, id int64, words []models.AnalyzedWord, totalWords int) (*models.Note, error)
}

// Events receives a notification after each note analysis.
type Events interface {
	PublishAnalysis(id int64, analyzed, total int)
}

// Report is the outcome of analyzing one note.
type Report struct {
	Note          *models.Note `json:"note"`
	AnalyzedCount int          `json:"analyzed_count"`
	TotalWords    int          `json:"total_words"`
	Message       string       `json:"message"`
}

// Service analyzes notes: it picks candidate words, resolves them in a
// batch, and stores the resolved words on the note.
type Service struct {
	notes  NoteStore
	batch  *Batch
	events Events
	log    *slog.Logger
}

// NewService creates a Service. events may be nil.
func NewService(notes NoteStore, batch *Batch, events Events, logger *slog.Logger) *Service {
	return &Service{
		notes:  notes,
		batch:  batch,
		events: events,
		log:    logger.With("component", "analyzer"),
	}
}

// AnalyzeNote resolves the words of note id. When requested is empty the
// words are extracted from the note content.
//
// Words that cannot be resolved only lower the analyzed count; errors are
// returned for a missing note or failing note storage.
func (s *Service) AnalyzeNote(ctx context.Context, id int64, requested []string) (*Report, error) {
	note, err := s.notes.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}

	words := CandidateWords(note.Content, requested)
	res := s.batch.ResolveAll(ctx, words)

	updated, err := s.notes.SetAnalysis(ctx, id, res.Results, res.Attempted)
	if err != nil {
		return nil, fmt.Errorf("analyzer: store analysis: %w", err)
	}

	s.log.InfoContext(ctx, "note analyzed",
		slog.Int64("note_id", id),
		slog.Int("analyzed", res.Resolved),
		slog.Int("total", res.Attempted))
	if s.events != nil {
		s.events.PublishAnalysis(id, res.Resolved, res.Attempted)
	}

	return &Report{
		Note:          updated,
		AnalyzedCount: res.Resolved,
		TotalWords:    res.Attempted,
		Message:       fmt.Sprintf("Se analizaron %d de %d palabras encontradas", res.Resolved, res.Attempted),
	}, nil
}

// CandidateWords returns the words to resolve for content. An explicit
// request list wins: its words are normalized, blanks dropped, and
// duplicates removed in first-occurrence order.
func CandidateWords(content string, requested []string) []string {
	if len(requested) == 0 {
		return extract.Words(content)
	}
	seen := make(map[string]struct{}, len(requested))
	out := make([]string, 0, len(requested))
	for _, w := range requested {
		w = dictionary.NormalizeWord(w)
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
