// Package analyzer resolves the candidate words of a note in paced batches.
package analyzer

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starford/glosa/internal/dictionary"
	"github.com/starford/glosa/internal/models"
)

// Default pacing against the dictionary authority.
const (
	DefaultGroupSize  = 5
	DefaultGroupDelay = 100 * time.Millisecond
)

// Pacing bounds how hard a batch hits the authority: at most GroupSize
// lookups run at once, and Delay separates consecutive groups.
type Pacing struct {
	GroupSize int
	Delay     time.Duration
}

func (p Pacing) withDefaults() Pacing {
	if p.GroupSize <= 0 {
		p.GroupSize = DefaultGroupSize
	}
	if p.Delay < 0 {
		p.Delay = 0
	}
	return p
}

// WordResolver resolves a single word.
type WordResolver interface {
	Resolve(ctx context.Context, word string) (*dictionary.Resolution, error)
}

// BatchResult aggregates one batch run.
type BatchResult struct {
	// Results holds resolved words in input order.
	Results   []models.AnalyzedWord
	Attempted int
	Resolved  int
}

// Batch resolves word lists group by group.
type Batch struct {
	resolver WordResolver
	pacing   Pacing
	sleep    func(ctx context.Context, d time.Duration)
	log      *slog.Logger
}

// NewBatch creates a Batch.
func NewBatch(resolver WordResolver, pacing Pacing, logger *slog.Logger) *Batch {
	return &Batch{
		resolver: resolver,
		pacing:   pacing.withDefaults(),
		sleep:    sleepCtx,
		log:      logger.With("component", "batch"),
	}
}

// ResolveAll resolves words in groups of Pacing.GroupSize. Lookups inside a
// group run concurrently; the next group starts only after the whole group
// finished and the pacing delay elapsed. Words that are not found or fail
// upstream are left out of Results without affecting their siblings.
func (b *Batch) ResolveAll(ctx context.Context, words []string) BatchResult {
	res := BatchResult{
		Results:   make([]models.AnalyzedWord, 0, len(words)),
		Attempted: len(words),
	}
	size := b.pacing.GroupSize

	for start := 0; start < len(words); start += size {
		end := min(start+size, len(words))
		group := words[start:end]

		entries := make([]*models.Entry, len(group))
		var g errgroup.Group
		for i, w := range group {
			g.Go(func() error {
				r, err := b.resolver.Resolve(ctx, w)
				if err != nil {
					b.log.WarnContext(ctx, "word not resolved", slog.String("word", w), slog.String("error", err.Error()))
					return nil
				}
				entries[i] = r.Entry
				return nil
			})
		}
		_ = g.Wait()

		for i, e := range entries {
			if e == nil {
				continue
			}
			res.Results = append(res.Results, models.AnalyzedWord{Word: group[i], Definition: e})
		}

		if end < len(words) {
			b.sleep(ctx, b.pacing.Delay)
		}
	}

	res.Resolved = len(res.Results)
	b.log.InfoContext(ctx, "batch resolved",
		slog.Int("attempted", res.Attempted),
		slog.Int("resolved", res.Resolved))
	return res
}

// sleepCtx pauses for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
