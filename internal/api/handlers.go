package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/glosa/internal/analyzer"
	"github.com/starford/glosa/internal/apperr"
	"github.com/starford/glosa/internal/dictionary"
	"github.com/starford/glosa/internal/images"
	"github.com/starford/glosa/internal/noteservice"
)

// WordResolver resolves a single word through the cache and the authority.
type WordResolver interface {
	Resolve(ctx context.Context, word string) (*dictionary.Resolution, error)
}

// NoteAnalyzer runs the batch analysis of a note.
type NoteAnalyzer interface {
	AnalyzeNote(ctx context.Context, id int64, words []string) (*analyzer.Report, error)
}

// ImageFinder looks up an illustrative image for a word.
type ImageFinder interface {
	Find(ctx context.Context, word string) (*images.Image, error)
}

// Handler holds API route handlers.
type Handler struct {
	notes    *noteservice.Service
	analyzer NoteAnalyzer
	resolver WordResolver
	images   ImageFinder
	log      *slog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(notes *noteservice.Service, an NoteAnalyzer, resolver WordResolver, img ImageFinder, logger *slog.Logger) *Handler {
	return &Handler{
		notes:    notes,
		analyzer: an,
		resolver: resolver,
		images:   img,
		log:      logger.With("component", "api"),
	}
}

// noteID parses the {id} URL parameter.
func noteID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// writeServiceError maps service errors to HTTP responses.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("note not found"))
	case errors.Is(err, apperr.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrConflict):
		writeJSON(w, http.StatusConflict, errorBody("etag mismatch"))
	default:
		h.log.ErrorContext(r.Context(), op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// ListNotes handles GET /api/notes.
//
//	@Summary		List notes, oldest first
//	@Tags			notes
//	@Produce		json
//	@Param			limit	query		int		false	"Page size"
//	@Param			offset	query		int		false	"Page offset"
//	@Success		200		{object}	NoteListResponse
//	@Security		BearerAuth
//	@Router			/notes [get]
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	notes, total, err := h.notes.ListNotes(r.Context(), limit, offset)
	if err != nil {
		h.writeServiceError(w, r, "list notes", err)
		return
	}
	writeJSON(w, http.StatusOK, NoteListResponse{Notes: notes, Total: total})
}

// GetNote handles GET /api/notes/{id}.
//
//	@Summary		Get a single note
//	@Tags			notes
//	@Produce		json
//	@Param			id	path		int	true	"Note id"
//	@Success		200	{object}	models.Note
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id} [get]
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid note id"))
		return
	}
	note, err := h.notes.GetNote(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, "get note", err)
		return
	}
	w.Header().Set("ETag", `"`+noteservice.ETag(note)+`"`)
	writeJSON(w, http.StatusOK, note)
}

// CreateNote handles POST /api/notes.
//
//	@Summary		Create a new note
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateNoteRequest	true	"Note to create"
//	@Success		201		{object}	models.Note
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes [post]
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req CreateNoteRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	note, err := h.notes.CreateNote(r.Context(), noteservice.CreateInput{Title: req.Title, Content: req.Content})
	if err != nil {
		h.writeServiceError(w, r, "create note", err)
		return
	}
	w.Header().Set("ETag", `"`+noteservice.ETag(note)+`"`)
	writeJSON(w, http.StatusCreated, note)
}

// UpdateNote handles PUT /api/notes/{id}.
//
//	@Summary		Partially update a note
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			id			path		int					true	"Note id"
//	@Param			If-Match	header		string				false	"ETag from a previous read"
//	@Param			body		body		UpdateNoteRequest	true	"Fields to change"
//	@Success		200			{object}	models.Note
//	@Failure		400			{object}	errResponse
//	@Failure		404			{object}	errResponse
//	@Failure		409			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id} [put]
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid note id"))
		return
	}
	var req UpdateNoteRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	// Strip surrounding quotes if present (standard ETag format).
	ifMatch := strings.Trim(r.Header.Get("If-Match"), `"`)

	note, err := h.notes.UpdateNote(r.Context(), id, noteservice.UpdateInput{
		Title:   req.Title,
		Content: req.Content,
		IfMatch: ifMatch,
	})
	if err != nil {
		h.writeServiceError(w, r, "update note", err)
		return
	}
	w.Header().Set("ETag", `"`+noteservice.ETag(note)+`"`)
	writeJSON(w, http.StatusOK, note)
}

// DeleteNote handles DELETE /api/notes/{id}.
//
//	@Summary		Delete a note
//	@Tags			notes
//	@Param			id	path	int	true	"Note id"
//	@Success		204	"Note deleted"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id} [delete]
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid note id"))
		return
	}
	if err := h.notes.DeleteNote(r.Context(), id); err != nil {
		h.writeServiceError(w, r, "delete note", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AnalyzeNote handles POST /api/notes/{id}/analyze.
//
// Unresolvable words only lower the analyzed count; the response is 200
// whenever the note exists.
//
//	@Summary		Resolve the words of a note
//	@Tags			analysis
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int				true	"Note id"
//	@Param			body	body		AnalyzeRequest	false	"Optional explicit words"
//	@Success		200		{object}	AnalyzeResponse
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id}/analyze [post]
func (h *Handler) AnalyzeNote(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid note id"))
		return
	}
	var req AnalyzeRequest
	if err := decodeBody(w, r, &req, true); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	rep, err := h.analyzer.AnalyzeNote(r.Context(), id, req.Words)
	if err != nil {
		h.writeServiceError(w, r, "analyze note", err)
		return
	}
	writeJSON(w, http.StatusOK, AnalyzeResponse{OK: true, Data: rep})
}

// Search handles GET /api/search.
//
//	@Summary		Full-text search across notes
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if strings.TrimSpace(q) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.notes.Search(r.Context(), q, limit)
	if err != nil {
		h.writeServiceError(w, r, "search", err)
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}
