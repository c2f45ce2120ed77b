package api

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/glosa/internal/analyzer"
	"github.com/starford/glosa/internal/models"
	"github.com/starford/glosa/internal/store"
)

const (
	maxTitleLen     = 200
	maxWordLen      = 64
	maxAnalyzeWords = 500
)

// notBlank rejects whitespace-only strings; nil pointers pass.
var notBlank = validation.By(func(v any) error {
	v, isNil := validation.Indirect(v)
	if isNil {
		return nil
	}
	if s, _ := v.(string); strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
})

// CreateNoteRequest is the request body for creating a note.
type CreateNoteRequest struct {
	Title   *string `json:"title" example:"Paseo"`
	Content string  `json:"content" example:"El perro corre en el parque" validate:"required"`
}

// Validate checks the request fields.
func (r *CreateNoteRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Length(0, maxTitleLen)),
		validation.Field(&r.Content, validation.Required, notBlank),
	)
}

// UpdateNoteRequest is the request body for a partial note update.
type UpdateNoteRequest struct {
	Title   *string `json:"title" example:"Paseo"`
	Content *string `json:"content" example:"El gato duerme"`
}

// Validate checks the request fields.
func (r *UpdateNoteRequest) Validate() error {
	if r.Title == nil && r.Content == nil {
		return errors.New("title or content is required")
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Length(0, maxTitleLen)),
		validation.Field(&r.Content, notBlank),
	)
}

// AnalyzeRequest optionally restricts an analysis to explicit words.
type AnalyzeRequest struct {
	Words []string `json:"words,omitempty" example:"perro,parque"`
}

// Validate checks the request fields.
func (r *AnalyzeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Words,
			validation.Length(0, maxAnalyzeWords),
			validation.Each(validation.Length(0, maxWordLen)),
		),
	)
}

// NoteListResponse wraps paginated note listings.
type NoteListResponse struct {
	Notes []models.Note `json:"notes" validate:"required"`
	Total int           `json:"total" example:"42" validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []store.SearchResult `json:"results" validate:"required"`
}

// AnalyzeResponse wraps the analysis report.
type AnalyzeResponse struct {
	OK   bool             `json:"ok"`
	Data *analyzer.Report `json:"data"`
}

// WordResponse is the single-word lookup payload.
type WordResponse struct {
	OK     bool       `json:"ok"`
	Data   *WordEntry `json:"data"`
	Cached bool       `json:"cached"`
	Tier   string     `json:"tier" example:"direct"`
}

// WordErrorResponse is returned when a word cannot be resolved.
type WordErrorResponse struct {
	OK          bool     `json:"ok"`
	Error       string   `json:"error"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// WordEntry mirrors models.Entry with display labels on each sense.
type WordEntry struct {
	Word     string        `json:"word"`
	Meanings []WordMeaning `json:"meanings"`
}

// WordMeaning mirrors models.Meaning.
type WordMeaning struct {
	Origin       *models.Origin       `json:"origin,omitempty"`
	Senses       []WordSense          `json:"senses"`
	Conjugations *models.Conjugations `json:"conjugations,omitempty"`
}

// WordSense is a sense plus Spanish labels for its category and usage codes.
type WordSense struct {
	models.Sense
	CategoryLabel string `json:"category_label" example:"Sustantivo"`
	UsageLabel    string `json:"usage_label" example:"Uso común"`
}

func newWordEntry(e *models.Entry) *WordEntry {
	out := &WordEntry{Word: e.Word, Meanings: make([]WordMeaning, len(e.Meanings))}
	for i, m := range e.Meanings {
		senses := make([]WordSense, len(m.Senses))
		for j, s := range m.Senses {
			senses[j] = WordSense{
				Sense:         s,
				CategoryLabel: models.CategoryLabel(s.Category),
				UsageLabel:    models.UsageLabel(s.Usage),
			}
		}
		out.Meanings[i] = WordMeaning{Origin: m.Origin, Senses: senses, Conjugations: m.Conjugations}
	}
	return out
}
