package dictionary

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/starford/glosa/internal/apperr"
	"github.com/starford/glosa/internal/models"
)

// fakeUpstream answers from fixed tables and records every call.
type fakeUpstream struct {
	mu      sync.Mutex
	lookups map[string]*models.Entry
	suggest map[string][]string
	search  map[string]*models.Entry
	fail    error
	calls   []string

	// failWord fails lookups of individual words.
	failWord map[string]error
}

func (f *fakeUpstream) Lookup(_ context.Context, word string) (*models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "lookup:"+word)
	if f.fail != nil {
		return nil, f.fail
	}
	if err, ok := f.failWord[word]; ok {
		return nil, err
	}
	if e, ok := f.lookups[word]; ok {
		return copyEntry(e), nil
	}
	return nil, &NotFoundError{Word: word, Suggestions: f.suggest[word]}
}

func (f *fakeUpstream) Search(_ context.Context, word string) (*models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "search:"+word)
	if e, ok := f.search[word]; ok {
		return copyEntry(e), nil
	}
	return nil, &NotFoundError{Word: word}
}

func copyEntry(e *models.Entry) *models.Entry {
	c := *e
	c.Meanings = append([]models.Meaning(nil), e.Meanings...)
	for i := range c.Meanings {
		c.Meanings[i].Senses = append([]models.Sense(nil), e.Meanings[i].Senses...)
	}
	return &c
}

type memCache struct {
	mu      sync.Mutex
	entries map[string]*models.Entry
	getErr  error
	putErr  error
	puts    int
}

func newMemCache() *memCache {
	return &memCache{entries: map[string]*models.Entry{}}
}

func (m *memCache) Get(_ context.Context, word string) (*models.Entry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	e, ok := m.entries[word]
	return e, ok, nil
}

func (m *memCache) Put(_ context.Context, word string, e *models.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	m.entries[word] = e
	return nil
}

func entry(word, raw string) *models.Entry {
	return &models.Entry{Word: word, Meanings: []models.Meaning{{
		Senses: []models.Sense{{Raw: raw, MeaningNumber: 1, Description: raw}},
	}}}
}

func TestResolve_CacheHit(t *testing.T) {
	up := &fakeUpstream{}
	cache := newMemCache()
	cache.entries["perro"] = entry("perro", "")
	r := NewResolver(up, cache, newTestLogger())

	res, err := r.Resolve(context.Background(), "  Perro ")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !res.Cached || res.Tier != TierCache {
		t.Errorf("res = %+v, want cache hit", res)
	}
	if len(up.calls) != 0 {
		t.Errorf("upstream called on cache hit: %v", up.calls)
	}
}

func TestResolve_DirectCleansAndCaches(t *testing.T) {
	up := &fakeUpstream{lookups: map[string]*models.Entry{
		"mover": entry("mover", "1. mover algo. Sin.: desplazar Ant.: fijar"),
	}}
	cache := newMemCache()
	r := NewResolver(up, cache, newTestLogger())

	res, err := r.Resolve(context.Background(), "mover")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Cached || res.Tier != TierDirect {
		t.Errorf("res = %+v", res)
	}
	if got := res.Entry.Meanings[0].Senses[0].Description; got != "mover algo" {
		t.Errorf("description = %q", got)
	}
	cached, ok, _ := cache.Get(context.Background(), "mover")
	if !ok || cached.Meanings[0].Senses[0].Description != "mover algo" {
		t.Errorf("cache should hold cleaned entry, got %+v", cached)
	}
}

func TestResolve_SuggestionCachesBothWords(t *testing.T) {
	up := &fakeUpstream{
		lookups: map[string]*models.Entry{"perro": entry("perro", "1. m. Mamífero.")},
		suggest: map[string][]string{"pero": {"perro", "pera"}},
	}
	cache := newMemCache()
	r := NewResolver(up, cache, newTestLogger())

	res, err := r.Resolve(context.Background(), "pero")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Tier != TierSuggestion || res.Entry.Word != "perro" {
		t.Errorf("res = %+v", res)
	}
	for _, w := range []string{"pero", "perro"} {
		if _, ok, _ := cache.Get(context.Background(), w); !ok {
			t.Errorf("%q should be cached", w)
		}
	}

	// Both spellings are now served without touching the authority.
	calls := len(up.calls)
	for _, w := range []string{"pero", "perro"} {
		res, err := r.Resolve(context.Background(), w)
		if err != nil || !res.Cached {
			t.Errorf("Resolve(%q) = %+v, %v; want cache hit", w, res, err)
		}
	}
	if len(up.calls) != calls {
		t.Errorf("upstream called again: %v", up.calls[calls:])
	}
}

func TestResolve_SearchFallback(t *testing.T) {
	up := &fakeUpstream{
		suggest: map[string][]string{"corrió": {"corrio"}},
		search:  map[string]*models.Entry{"corrió": entry("correr", "1. intr. Ir deprisa.")},
	}
	cache := newMemCache()
	r := NewResolver(up, cache, newTestLogger())

	res, err := r.Resolve(context.Background(), "corrió")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Tier != TierSearch {
		t.Errorf("tier = %s", res.Tier)
	}
	want := []string{"lookup:corrió", "lookup:corrio", "search:corrió"}
	if len(up.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", up.calls, want)
	}
	for i := range want {
		if up.calls[i] != want[i] {
			t.Errorf("call %d = %s, want %s", i, up.calls[i], want[i])
		}
	}
	if _, ok, _ := cache.Get(context.Background(), "corrió"); !ok {
		t.Error("search result should be cached under the requested word")
	}
	if _, ok, _ := cache.Get(context.Background(), "correr"); ok {
		t.Error("search result should not be cached under the lemma")
	}
}

func TestResolve_NoSuggestionsGoesToSearch(t *testing.T) {
	up := &fakeUpstream{}
	r := NewResolver(up, newMemCache(), newTestLogger())

	_, err := r.Resolve(context.Background(), "xyzzy")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	want := []string{"lookup:xyzzy", "search:xyzzy"}
	if len(up.calls) != 2 || up.calls[0] != want[0] || up.calls[1] != want[1] {
		t.Errorf("calls = %v, want %v", up.calls, want)
	}
}

func TestResolve_ExhaustionCreatesNoCacheEntry(t *testing.T) {
	up := &fakeUpstream{suggest: map[string][]string{"qwer": {"quer"}}}
	cache := newMemCache()
	r := NewResolver(up, cache, newTestLogger())

	_, err := r.Resolve(context.Background(), "qwer")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if errors.Is(err, ErrUpstream) {
		t.Error("not found must not be an upstream error")
	}
	if cache.puts != 0 {
		t.Errorf("puts = %d, want 0", cache.puts)
	}
}

func TestResolve_UpstreamErrorStopsChain(t *testing.T) {
	up := &fakeUpstream{fail: &UpstreamError{Op: "lookup", Word: "perro", Status: 503}}
	cache := newMemCache()
	r := NewResolver(up, cache, newTestLogger())

	_, err := r.Resolve(context.Background(), "perro")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("err = %v, want ErrUpstream", err)
	}
	if len(up.calls) != 1 {
		t.Errorf("calls = %v, want only the direct lookup", up.calls)
	}
	if cache.puts != 0 {
		t.Errorf("puts = %d, want 0", cache.puts)
	}
}

func TestResolve_SuggestionUpstreamErrorStopsChain(t *testing.T) {
	up := &fakeUpstream{
		suggest:  map[string][]string{"prro": {"perro"}},
		search:   map[string]*models.Entry{"prro": entry("prro", "1. m. Nada.")},
		failWord: map[string]error{"perro": &UpstreamError{Op: "lookup", Word: "perro", Status: 502}},
	}
	cache := newMemCache()
	r := NewResolver(up, cache, newTestLogger())

	_, err := r.Resolve(context.Background(), "prro")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("err = %v, want ErrUpstream", err)
	}
	for _, c := range up.calls {
		if c == "search:prro" {
			t.Errorf("search called after upstream failure: %v", up.calls)
		}
	}
	if len(up.calls) != 2 {
		t.Errorf("calls = %v, want direct and suggestion lookups", up.calls)
	}
	if cache.puts != 0 {
		t.Errorf("puts = %d, want 0", cache.puts)
	}
}

func TestResolve_DecomposedSpellingHitsCache(t *testing.T) {
	up := &fakeUpstream{}
	cache := newMemCache()
	cache.entries["rápido"] = entry("rápido", "")
	r := NewResolver(up, cache, newTestLogger())

	res, err := r.Resolve(context.Background(), "Ra\u0301pido")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !res.Cached {
		t.Errorf("res = %+v, want cache hit", res)
	}
	if len(up.calls) != 0 || cache.puts != 0 {
		t.Errorf("calls = %v, puts = %d, want none", up.calls, cache.puts)
	}
}

func TestNormalizeWord(t *testing.T) {
	if got := NormalizeWord(" Ra\u0301pido "); got != "rápido" {
		t.Errorf("NormalizeWord = %q, want precomposed rápido", got)
	}
}

func TestResolve_CacheFailuresAreTolerated(t *testing.T) {
	up := &fakeUpstream{lookups: map[string]*models.Entry{"casa": entry("casa", "1. f. Edificio.")}}
	cache := newMemCache()
	cache.getErr = errors.New("disk I/O error")
	cache.putErr = errors.New("disk I/O error")
	r := NewResolver(up, cache, newTestLogger())

	res, err := r.Resolve(context.Background(), "casa")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Entry.Meanings[0].Senses[0].Description != "f. Edificio" {
		t.Errorf("description = %q", res.Entry.Meanings[0].Senses[0].Description)
	}
}

func TestResolve_EmptyWord(t *testing.T) {
	r := NewResolver(&fakeUpstream{}, newMemCache(), newTestLogger())
	_, err := r.Resolve(context.Background(), "   ")
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}
