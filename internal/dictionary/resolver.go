package dictionary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/starford/glosa/internal/apperr"
	"github.com/starford/glosa/internal/models"
)

// Resolution tiers, in the order they are tried after a cache miss.
const (
	TierCache      = "cache"
	TierDirect     = "direct"
	TierSuggestion = "suggestion"
	TierSearch     = "search"
)

// Upstream is the dictionary authority as seen by the Resolver.
type Upstream interface {
	Lookup(ctx context.Context, word string) (*models.Entry, error)
	Search(ctx context.Context, word string) (*models.Entry, error)
}

// Cache stores resolved entries by normalized word.
type Cache interface {
	Get(ctx context.Context, word string) (*models.Entry, bool, error)
	Put(ctx context.Context, word string, entry *models.Entry) error
}

// Resolution is a successfully resolved word.
type Resolution struct {
	Entry  *models.Entry
	Cached bool

	// Tier names the step that produced Entry.
	Tier string
}

// Resolver resolves one word at a time: cache first, then direct lookup,
// the authority's first suggestion, and finally exact-match search.
// It is safe for concurrent use.
type Resolver struct {
	upstream Upstream
	cache    Cache
	tiers    []tier
	log      *slog.Logger
}

// attempt carries state between tiers for a single word.
type attempt struct {
	word        string
	suggestions []string

	// resolvedAs is the corrected spelling a suggestion lookup succeeded with.
	resolvedAs string
}

type tier struct {
	name string
	run  func(ctx context.Context, a *attempt) (*models.Entry, error)
}

// NewResolver creates a Resolver over upstream and cache.
func NewResolver(upstream Upstream, cache Cache, logger *slog.Logger) *Resolver {
	r := &Resolver{
		upstream: upstream,
		cache:    cache,
		log:      logger.With("component", "resolver"),
	}
	r.tiers = []tier{
		{name: TierDirect, run: r.direct},
		{name: TierSuggestion, run: r.suggested},
		{name: TierSearch, run: r.search},
	}
	return r
}

// NormalizeWord lower-cases, trims and NFC-composes w into a cache key, so
// precomposed and decomposed accents share one key.
func NormalizeWord(w string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(w)))
}

// Resolve returns the entry for word.
//
// Errors match ErrNotFound when no tier produced an entry and ErrUpstream on
// transport or protocol failures; an empty word matches apperr.ErrInvalidInput.
func (r *Resolver) Resolve(ctx context.Context, word string) (*Resolution, error) {
	word = NormalizeWord(word)
	if word == "" {
		return nil, fmt.Errorf("dictionary: empty word: %w", apperr.ErrInvalidInput)
	}

	if e, ok := r.cached(ctx, word); ok {
		return &Resolution{Entry: e, Cached: true, Tier: TierCache}, nil
	}

	a := &attempt{word: word}
	for _, t := range r.tiers {
		entry, err := t.run(ctx, a)
		if err == nil {
			cleanEntry(entry)
			r.store(ctx, entry, a.cacheKeys(t.name, entry)...)
			r.log.DebugContext(ctx, "word resolved", slog.String("word", word), slog.String("tier", t.name))
			return &Resolution{Entry: entry, Tier: t.name}, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		r.log.DebugContext(ctx, "tier missed", slog.String("word", word), slog.String("tier", t.name))
	}
	return nil, &NotFoundError{Word: word, Suggestions: a.suggestions}
}

func (r *Resolver) direct(ctx context.Context, a *attempt) (*models.Entry, error) {
	e, err := r.upstream.Lookup(ctx, a.word)
	var nf *NotFoundError
	if errors.As(err, &nf) {
		a.suggestions = nf.Suggestions
	}
	return e, err
}

func (r *Resolver) suggested(ctx context.Context, a *attempt) (*models.Entry, error) {
	if len(a.suggestions) == 0 {
		return nil, ErrNotFound
	}
	s := NormalizeWord(a.suggestions[0])
	if s == "" || s == a.word {
		return nil, ErrNotFound
	}
	e, err := r.upstream.Lookup(ctx, s)
	if err == nil {
		a.resolvedAs = s
	}
	return e, err
}

func (r *Resolver) search(ctx context.Context, a *attempt) (*models.Entry, error) {
	return r.upstream.Search(ctx, a.word)
}

// cacheKeys lists every key the entry should be stored under. A suggestion
// hit is stored under both the requested word and the corrected one.
func (a *attempt) cacheKeys(tierName string, e *models.Entry) []string {
	keys := []string{a.word}
	if tierName != TierSuggestion {
		return keys
	}
	corrected := NormalizeWord(e.Word)
	if corrected == "" {
		corrected = a.resolvedAs
	}
	if corrected != "" && corrected != a.word {
		keys = append(keys, corrected)
	}
	return keys
}

// cached reads the cache; read failures count as a miss.
func (r *Resolver) cached(ctx context.Context, word string) (*models.Entry, bool) {
	if r.cache == nil {
		return nil, false
	}
	e, ok, err := r.cache.Get(ctx, word)
	if err != nil {
		r.log.WarnContext(ctx, "cache read failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, false
	}
	return e, ok
}

// store writes the cache; write failures are logged and otherwise ignored.
func (r *Resolver) store(ctx context.Context, e *models.Entry, keys ...string) {
	if r.cache == nil {
		return
	}
	for _, k := range keys {
		if err := r.cache.Put(ctx, k, e); err != nil {
			r.log.WarnContext(ctx, "cache write failed", slog.String("word", k), slog.String("error", err.Error()))
		}
	}
}
