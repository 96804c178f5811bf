package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

type Cache struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	c := &Cache{readDB: readDB, writeDB: writeDB}
	if err := c.init(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) init() error {
	_, err := c.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS articles (
			id         TEXT PRIMARY KEY,
			source     TEXT NOT NULL,
			title      TEXT NOT NULL,
			link       TEXT NOT NULL,
			summary    TEXT NOT NULL DEFAULT '',
			published  DATETIME NOT NULL,
			fetched_at DATETIME NOT NULL,
			topics     TEXT NOT NULL DEFAULT '',
			ai_summary TEXT NOT NULL DEFAULT '',
			ai_tags    TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_articles_published ON articles(published DESC);
		CREATE INDEX IF NOT EXISTS idx_articles_source ON articles(source);

		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	var errs []error
	if c.readDB != nil {
		errs = append(errs, c.readDB.Close())
	}
	if c.writeDB != nil {
		errs = append(errs, c.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

func (c *Cache) UpsertArticles(articles []Article) error {
	tx, err := c.writeDB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO articles (id, source, title, link, summary, published, fetched_at, topics)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			summary = excluded.summary,
			topics = excluded.topics,
			fetched_at = excluded.fetched_at
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range articles {
		_, err := stmt.Exec(a.ID, a.Source, a.Title, a.Link, a.Summary, a.Published, a.FetchedAt, a.Topics)
		if err != nil {
			return fmt.Errorf("upserting article %s: %w", a.ID, err)
		}
	}

	return tx.Commit()
}

func (c *Cache) GetArticles(opts QueryOpts) ([]Article, error) {
	var (
		where []string
		args  []interface{}
	)

	if !opts.Since.IsZero() {
		where = append(where, "published >= ?")
		args = append(args, opts.Since)
	}

	if len(opts.Sources) > 0 {
		placeholders := make([]string, len(opts.Sources))
		for i, s := range opts.Sources {
			placeholders[i] = "?"
			args = append(args, s)
		}
		where = append(where, "source IN ("+strings.Join(placeholders, ",")+")")
	}

	if opts.Topic != "" {
		where = append(where, "topics LIKE ?")
		args = append(args, "%|"+opts.Topic+"|%")
	}

	if opts.Search != "" {
		where = append(where, "(title LIKE ? OR summary LIKE ?)")
		term := "%" + opts.Search + "%"
		args = append(args, term, term)
	}

	query := "SELECT id, source, title, link, summary, published, fetched_at, topics, ai_summary, ai_tags FROM articles"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY published DESC"

	limit := opts.Limit
	if limit <= 0 {
		limit = 500
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	rows, err := c.readDB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying articles: %w", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		var a Article
		if err := rows.Scan(&a.ID, &a.Source, &a.Title, &a.Link, &a.Summary, &a.Published, &a.FetchedAt, &a.Topics, &a.AISummary, &a.AITags); err != nil {
			return nil, fmt.Errorf("scanning article: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// lastFetchKey namespaces per-source TTL stamps in the meta table.
// The arXiv client uses the source name "arXiv" like any feed.
func lastFetchKey(source string) string {
	return "last_fetch:" + source
}

// NeedsFetch reports whether a source's cached articles are older than the
// TTL. True when the source has never been fetched or the stamp is bad.
func (c *Cache) NeedsFetch(source string, ttl time.Duration) bool {
	var value string
	err := c.readDB.QueryRow("SELECT value FROM meta WHERE key = ?", lastFetchKey(source)).Scan(&value)
	if err != nil {
		return true
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return true
	}
	return time.Since(t) >= ttl
}

// SetLastFetch stamps a source as freshly fetched.
func (c *Cache) SetLastFetch(source string) error {
	return c.setMeta(lastFetchKey(source), time.Now().Format(time.RFC3339))
}

// LastFetch returns the stamp for a source, zero time when unset.
func (c *Cache) LastFetch(source string) time.Time {
	var value string
	err := c.readDB.QueryRow("SELECT value FROM meta WHERE key = ?", lastFetchKey(source)).Scan(&value)
	if err != nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (c *Cache) setMeta(key, value string) error {
	_, err := c.writeDB.Exec(`
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// UpdateArticleAISummary persists an LLM summary for an article.
func (c *Cache) UpdateArticleAISummary(id, summary, tags string) error {
	_, err := c.writeDB.Exec("UPDATE articles SET ai_summary = ?, ai_tags = ? WHERE id = ?", summary, tags, id)
	return err
}

// Prune deletes articles published before the retention cutoff and returns
// how many were removed.
func (c *Cache) Prune(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	res, err := c.writeDB.Exec("DELETE FROM articles WHERE published < ?", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Stats returns the article count and database file size.
func (c *Cache) Stats(dbPath string) (count int64, size int64, err error) {
	if err := c.readDB.QueryRow("SELECT COUNT(*) FROM articles").Scan(&count); err != nil {
		return 0, 0, err
	}
	info, err := os.Stat(dbPath)
	if err != nil {
		return count, 0, err
	}
	return count, info.Size(), nil
}

// UpdateStreak bumps the consecutive-day usage streak and returns it.
func (c *Cache) UpdateStreak() (int, error) {
	today := time.Now().Format("2006-01-02")
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	var lastActive string
	c.readDB.QueryRow("SELECT value FROM meta WHERE key = 'last_active_date'").Scan(&lastActive)

	streak := 1
	if lastActive == today || lastActive == yesterday {
		var prev string
		c.readDB.QueryRow("SELECT value FROM meta WHERE key = 'streak_days'").Scan(&prev)
		if n, err := strconv.Atoi(prev); err == nil {
			if lastActive == today {
				streak = n
			} else {
				streak = n + 1
			}
		}
	}

	if err := c.setMeta("last_active_date", today); err != nil {
		return streak, err
	}
	if err := c.setMeta("streak_days", strconv.Itoa(streak)); err != nil {
		return streak, err
	}
	return streak, nil
}
