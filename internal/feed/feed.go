package feed

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/matheuskafuri/mednews/internal/cache"
	"github.com/matheuskafuri/mednews/internal/config"
	"github.com/mmcdole/gofeed"
)

// Fetcher retrieves articles from a single configured feed.
type Fetcher interface {
	Fetch(ctx context.Context, source config.Source) ([]cache.Article, error)
}

type RSSFetcher struct {
	parser *gofeed.Parser
}

func NewRSSFetcher() *RSSFetcher {
	return &RSSFetcher{parser: gofeed.NewParser()}
}

func (f *RSSFetcher) Fetch(ctx context.Context, source config.Source) ([]cache.Article, error) {
	feed, err := f.parser.ParseURLWithContext(source.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", source.Name, err)
	}

	now := time.Now()
	articles := make([]cache.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}

		// Missing publish date defaults to fetch time
		pub := now
		if item.PublishedParsed != nil {
			pub = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			pub = *item.UpdatedParsed
		}

		summary := item.Description
		if summary == "" {
			summary = item.Content
		}
		summary = Truncate(StripHTML(summary), 300)

		articles = append(articles, cache.Article{
			ID:        ArticleID(item.Link),
			Source:    source.Name,
			Title:     strings.TrimSpace(item.Title),
			Link:      item.Link,
			Summary:   summary,
			Published: pub,
			FetchedAt: now,
		})
	}
	return articles, nil
}

// ArticleID derives a stable id from the article link, the dedup key.
func ArticleID(link string) string {
	h := sha256.Sum256([]byte(link))
	return fmt.Sprintf("%x", h[:16])
}

// Truncate cuts s to at most n runes, appending an ellipsis when trimmed.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// StripHTML removes tags and collapses whitespace. Feed descriptions often
// arrive as HTML fragments.
func StripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
