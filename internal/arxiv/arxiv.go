package arxiv

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/matheuskafuri/mednews/internal/cache"
	"github.com/matheuskafuri/mednews/internal/feed"
	"github.com/mmcdole/gofeed"
)

// SourceName labels arXiv articles in the cache and UI.
const SourceName = "arXiv"

const defaultBaseURL = "http://export.arxiv.org/api/query"

// Client queries the arXiv search API. The API responds with an Atom feed,
// so the same parser used for RSS sources covers it.
type Client struct {
	parser  *gofeed.Parser
	baseURL string
}

func NewClient() *Client {
	return &Client{parser: gofeed.NewParser(), baseURL: defaultBaseURL}
}

// NewClientWithBaseURL is used by tests to point at a local server.
func NewClientWithBaseURL(base string) *Client {
	return &Client{parser: gofeed.NewParser(), baseURL: base}
}

// QueryURL builds the API request URL for a search query, newest
// submissions first.
func (c *Client) QueryURL(query string, maxResults int) string {
	params := url.Values{}
	params.Set("search_query", query)
	params.Set("start", "0")
	params.Set("max_results", fmt.Sprintf("%d", maxResults))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")
	return c.baseURL + "?" + params.Encode()
}

// Fetch retrieves papers matching the query and normalizes them into the
// uniform article shape.
func (c *Client) Fetch(ctx context.Context, query string, maxResults int) ([]cache.Article, error) {
	result, err := c.parser.ParseURLWithContext(c.QueryURL(query, maxResults), ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching arXiv: %w", err)
	}

	now := time.Now()
	articles := make([]cache.Article, 0, len(result.Items))
	for _, item := range result.Items {
		if item.Link == "" {
			continue
		}

		// arXiv abstracts and titles carry hard-wrapped newlines
		title := collapseWhitespace(item.Title)
		summary := feed.Truncate(collapseWhitespace(feed.StripHTML(item.Description)), 300)

		// Missing submission date defaults to fetch time, never absent
		pub := now
		if item.PublishedParsed != nil {
			pub = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			pub = *item.UpdatedParsed
		}

		articles = append(articles, cache.Article{
			ID:        feed.ArticleID(item.Link),
			Source:    SourceName,
			Title:     title,
			Link:      item.Link,
			Summary:   summary,
			Published: pub,
			FetchedAt: now,
		})
	}
	return articles, nil
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
