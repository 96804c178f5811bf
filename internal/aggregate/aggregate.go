package aggregate

import (
	"context"
	"sync"

	"github.com/matheuskafuri/mednews/internal/arxiv"
	"github.com/matheuskafuri/mednews/internal/cache"
	"github.com/matheuskafuri/mednews/internal/classify"
	"github.com/matheuskafuri/mednews/internal/config"
	"github.com/matheuskafuri/mednews/internal/feed"
)

// ArxivFetcher retrieves papers from the arXiv search API.
type ArxivFetcher interface {
	Fetch(ctx context.Context, query string, maxResults int) ([]cache.Article, error)
}

// Aggregator runs one fetch-normalize-classify-cache cycle across all
// configured sources.
type Aggregator struct {
	cfg   *config.Config
	db    *cache.Cache
	rss   feed.Fetcher
	arxiv ArxivFetcher
}

func New(cfg *config.Config, db *cache.Cache) *Aggregator {
	return &Aggregator{
		cfg:   cfg,
		db:    db,
		rss:   feed.NewRSSFetcher(),
		arxiv: arxiv.NewClient(),
	}
}

// NewWithFetchers is used by tests to inject stub fetchers.
func NewWithFetchers(cfg *config.Config, db *cache.Cache, rss feed.Fetcher, ax ArxivFetcher) *Aggregator {
	return &Aggregator{cfg: cfg, db: db, rss: rss, arxiv: ax}
}

// Result summarizes a refresh cycle.
type Result struct {
	Fetched int      // articles written to the cache
	Skipped []string // sources still fresh within the TTL
	Errors  []error  // per-source failures, never fatal
}

// Refresh fetches every stale source concurrently, deduplicates the merged
// results by link (first occurrence wins, in registry order), classifies,
// and caches. A failing source contributes zero articles and an entry in
// Errors; the rest of the cycle proceeds. When force is true the TTL is
// ignored.
func (a *Aggregator) Refresh(ctx context.Context, force bool) Result {
	ttl := a.cfg.RefreshDuration()
	if force {
		ttl = 0
	}

	var result Result

	sources := a.cfg.EnabledSources()
	// One slot per RSS source plus one for arXiv, so merged output keeps
	// registry order no matter which fetch finishes first.
	batches := make([][]cache.Article, len(sources)+1)
	fetched := make([]string, 0, len(sources)+1)

	var (
		mu   sync.Mutex
		errs []error
		wg   sync.WaitGroup
	)

	for i, src := range sources {
		if !a.db.NeedsFetch(src.Name, ttl) {
			result.Skipped = append(result.Skipped, src.Name)
			continue
		}
		wg.Add(1)
		go func(i int, s config.Source) {
			defer wg.Done()
			articles, err := a.rss.Fetch(ctx, s)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			batches[i] = articles
			fetched = append(fetched, s.Name)
		}(i, src)
	}

	if a.cfg.ArxivEnabled() {
		if a.db.NeedsFetch(arxiv.SourceName, ttl) {
			wg.Add(1)
			go func() {
				defer wg.Done()
				query, maxResults := a.cfg.ArxivQuery()
				articles, err := a.arxiv.Fetch(ctx, query, maxResults)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					errs = append(errs, err)
					return
				}
				batches[len(sources)] = articles
				fetched = append(fetched, arxiv.SourceName)
			}()
		} else {
			result.Skipped = append(result.Skipped, arxiv.SourceName)
		}
	}

	wg.Wait()
	result.Errors = errs

	var merged []cache.Article
	for _, batch := range batches {
		merged = append(merged, batch...)
	}
	merged = Dedupe(merged)

	for i := range merged {
		merged[i].Topics = classify.Join(classify.Classify(merged[i].Title, merged[i].Summary))
	}

	if len(merged) > 0 {
		if err := a.db.UpsertArticles(merged); err != nil {
			result.Errors = append(result.Errors, err)
			return result
		}
	}
	result.Fetched = len(merged)

	for _, name := range fetched {
		if err := a.db.SetLastFetch(name); err != nil {
			result.Errors = append(result.Errors, err)
		}
	}

	return result
}

// Dedupe drops articles whose link was already seen, keeping the first
// occurrence.
func Dedupe(articles []cache.Article) []cache.Article {
	seen := make(map[string]bool, len(articles))
	out := articles[:0]
	for _, a := range articles {
		if seen[a.Link] {
			continue
		}
		seen[a.Link] = true
		out = append(out, a)
	}
	return out
}
