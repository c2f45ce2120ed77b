package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/starford/glosa/internal/apperr"
	"github.com/starford/glosa/internal/dictionary"
	"github.com/starford/glosa/internal/images"
)

// wordParam returns the normalized {word} URL parameter.
func wordParam(r *http.Request) string {
	raw := chi.URLParam(r, "word")
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	return dictionary.NormalizeWord(raw)
}

// GetWord handles GET /api/words/{word}.
//
//	@Summary		Resolve a single word
//	@Tags			words
//	@Produce		json
//	@Param			word	path		string	true	"Word"
//	@Success		200		{object}	WordResponse
//	@Failure		400		{object}	WordErrorResponse
//	@Failure		404		{object}	WordErrorResponse
//	@Failure		502		{object}	WordErrorResponse
//	@Security		BearerAuth
//	@Router			/words/{word} [get]
func (h *Handler) GetWord(w http.ResponseWriter, r *http.Request) {
	word := wordParam(r)

	res, err := h.resolver.Resolve(r.Context(), word)
	if err != nil {
		var nf *dictionary.NotFoundError
		switch {
		case errors.Is(err, apperr.ErrInvalidInput):
			writeJSON(w, http.StatusBadRequest, WordErrorResponse{Error: "word parameter is required"})
		case errors.As(err, &nf):
			writeJSON(w, http.StatusNotFound, WordErrorResponse{Error: "word not found in dictionary", Suggestions: nf.Suggestions})
		case errors.Is(err, dictionary.ErrUpstream):
			h.log.ErrorContext(r.Context(), "dictionary lookup failed", slog.String("word", word), slog.String("error", err.Error()))
			writeJSON(w, http.StatusBadGateway, WordErrorResponse{Error: "dictionary unavailable"})
		default:
			h.log.ErrorContext(r.Context(), "resolve word failed", slog.String("word", word), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, WordErrorResponse{Error: "internal error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, WordResponse{
		OK:     true,
		Data:   newWordEntry(res.Entry),
		Cached: res.Cached,
		Tier:   res.Tier,
	})
}

// GetImage handles GET /api/images/{word}.
//
//	@Summary		Find an illustrative image for a word
//	@Tags			words
//	@Produce		json
//	@Param			word	path		string	true	"Word"
//	@Success		200		{object}	images.Image
//	@Failure		404		{object}	errResponse
//	@Failure		502		{object}	errResponse
//	@Failure		503		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/images/{word} [get]
func (h *Handler) GetImage(w http.ResponseWriter, r *http.Request) {
	word := wordParam(r)
	if word == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("word parameter is required"))
		return
	}

	img, err := h.images.Find(r.Context(), word)
	if err != nil {
		switch {
		case errors.Is(err, images.ErrNotConfigured):
			writeJSON(w, http.StatusServiceUnavailable, errorBody("image search not configured"))
		case errors.Is(err, images.ErrNoResults):
			writeJSON(w, http.StatusNotFound, errorBody("no images found for this word"))
		default:
			h.log.ErrorContext(r.Context(), "image search failed", slog.String("word", word), slog.String("error", err.Error()))
			writeJSON(w, http.StatusBadGateway, errorBody("failed to fetch image"))
		}
		return
	}
	writeJSON(w, http.StatusOK, img)
}
