// Package pipeline merges per-source fetch results into one deduplicated,
// optionally date-filtered batch.
package pipeline

import (
	"context"
	"time"

	"github.com/frnietz/lettaearthnewsletterbist/internal/cache"
	"github.com/frnietz/lettaearthnewsletterbist/internal/feed"
	"github.com/frnietz/lettaearthnewsletterbist/internal/logger"
	"github.com/frnietz/lettaearthnewsletterbist/internal/metrics"
)

// Fetcher is the slice of the feed layer the pipeline depends on.
type Fetcher interface {
	Fetch(ctx context.Context, src feed.Source) []feed.Item
}

// Clock supplies the current time so "today" stays testable.
type Clock func() time.Time

// Pipeline wires configured sources through the fetcher and cache.
type Pipeline struct {
	fetcher   Fetcher
	sources   []feed.Source
	limit     int
	onlyToday bool
	loc       *time.Location
	cache     *cache.Cache
	now       Clock
}

// Result of one collection pass. Errors carries the synthetic items for
// sources that failed, kept apart from the digestible batch.
type Result struct {
	Items  []feed.Item
	Errors []feed.Item
}

func New(fetcher Fetcher, sources []feed.Source, limit int, onlyToday bool, loc *time.Location, c *cache.Cache, now Clock) *Pipeline {
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		fetcher:   fetcher,
		sources:   sources,
		limit:     limit,
		onlyToday: onlyToday,
		loc:       loc,
		cache:     c,
		now:       now,
	}
}

// Collect fetches every source sequentially in declaration order, then
// merges, splits off error items, dedupes and applies the today filter.
func (p *Pipeline) Collect(ctx context.Context) Result {
	batches := make([][]feed.Item, 0, len(p.sources))
	for _, src := range p.sources {
		batches = append(batches, p.fetchOne(ctx, src))
	}

	merged := Merge(batches...)
	metrics.Global.AddItemsProcessed(len(merged))

	var items, errs []feed.Item
	for _, it := range merged {
		if it.IsError {
			errs = append(errs, it)
			continue
		}
		items = append(items, it)
	}

	items = Dedupe(items)
	items = FilterToday(items, p.onlyToday, p.now(), p.loc)

	logger.Debug("pipeline collected", "items", len(items), "errors", len(errs))
	return Result{Items: items, Errors: errs}
}

// Invalidate forgets cached fetch results so the next Collect refetches.
func (p *Pipeline) Invalidate() {
	if p.cache != nil {
		p.cache.Invalidate()
	}
}

func (p *Pipeline) fetchOne(ctx context.Context, src feed.Source) []feed.Item {
	if p.cache == nil {
		return p.fetcher.Fetch(ctx, src)
	}

	key := cache.Key(src.Name, src.URL, p.limit)
	if v, ok := p.cache.Get(key); ok {
		metrics.Global.IncrementCacheHits()
		return v.([]feed.Item)
	}

	items := p.fetcher.Fetch(ctx, src)
	p.cache.Set(key, items)
	return items
}

// Merge concatenates batches preserving encounter order.
func Merge(batches ...[]feed.Item) []feed.Item {
	total := 0
	for _, b := range batches {
		total += len(b)
	}
	out := make([]feed.Item, 0, total)
	for _, b := range batches {
		out = append(out, b...)
	}
	return out
}

// Dedupe removes duplicate fingerprints, first occurrence wins. Items
// without a fingerprint fall back to title+link as the key.
func Dedupe(items []feed.Item) []feed.Item {
	seen := make(map[string]struct{}, len(items))
	out := make([]feed.Item, 0, len(items))
	for _, it := range items {
		key := it.Fingerprint
		if key == "" {
			key = it.Title + it.Link
		}
		if _, dup := seen[key]; dup {
			metrics.Global.IncrementDuplicatesFiltered()
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}

// FilterToday keeps items published on now's date in the display zone.
// Disabled, it is the identity. Items without a timestamp are dropped when
// the filter is on.
func FilterToday(items []feed.Item, enabled bool, now time.Time, loc *time.Location) []feed.Item {
	if !enabled {
		return items
	}

	y, m, d := now.In(loc).Date()
	out := make([]feed.Item, 0, len(items))
	for _, it := range items {
		if it.Published == nil {
			continue
		}
		py, pm, pd := it.Published.In(loc).Date()
		if py == y && pm == m && pd == d {
			out = append(out, it)
		}
	}
	return out
}
