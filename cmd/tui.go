package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/matheuskafuri/mednews/internal/aggregate"
	"github.com/matheuskafuri/mednews/internal/ai"
	"github.com/matheuskafuri/mednews/internal/arxiv"
	"github.com/matheuskafuri/mednews/internal/cache"
	"github.com/matheuskafuri/mednews/internal/classify"
	"github.com/matheuskafuri/mednews/internal/config"
	"github.com/matheuskafuri/mednews/internal/digest"
	"github.com/matheuskafuri/mednews/internal/tui"
	"github.com/matheuskafuri/mednews/internal/update"
)

func runApp(browseMode bool) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := cache.Open(config.CachePath())
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer db.Close()

	// Refresh if forced or any source's TTL has lapsed
	if flagRefresh || anyStale(cfg, db) {
		fmt.Println("Fetching feeds...")
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		result := aggregate.New(cfg, db).Refresh(ctx, flagRefresh)
		cancel()

		for _, e := range result.Errors {
			fmt.Printf("  [warn] %v\n", e)
		}

		// Auto-prune old articles after refresh
		db.Prune(cfg.RetentionDuration())
	}

	since, err := sinceTime(cfg)
	if err != nil {
		return err
	}

	var topic classify.Topic
	if flagTopic != "" {
		topic, err = classify.ResolveAlias(flagTopic)
		if err != nil {
			return fmt.Errorf("invalid --topic value: %w", err)
		}
	}

	streak, _ := db.UpdateStreak()

	var summarizer ai.Summarizer
	if cfg.AIEnabled() {
		summarizer, err = ai.New(cfg.AI, cfg.AIKey())
		if err != nil {
			fmt.Printf("  [warn] AI summaries disabled: %v\n", err)
		}
	}

	windowArticles, err := db.GetArticles(cache.QueryOpts{Since: since})
	if err != nil {
		return fmt.Errorf("loading articles: %w", err)
	}
	allArticles, _ := db.GetArticles(cache.QueryOpts{})
	d := digest.Generate(windowArticles, allArticles)

	var updateVersion string
	if res := update.Check(context.Background(), version); res != nil {
		updateVersion = res.LatestVersion
	}

	return tui.Run(tui.RunOpts{
		Cfg:           cfg,
		DB:            db,
		Since:         since,
		Streak:        streak,
		Summarizer:    summarizer,
		Digest:        &d,
		UpdateVersion: updateVersion,
		Topic:         topic,
		BrowseMode:    browseMode,
	})
}

// anyStale reports whether any enabled source is past its fetch TTL.
func anyStale(cfg *config.Config, db *cache.Cache) bool {
	ttl := cfg.RefreshDuration()
	for _, src := range cfg.EnabledSources() {
		if db.NeedsFetch(src.Name, ttl) {
			return true
		}
	}
	if cfg.ArxivEnabled() && db.NeedsFetch(arxiv.SourceName, ttl) {
		return true
	}
	return false
}

// sinceTime resolves the article window: --since wins, otherwise the
// configured window in days.
func sinceTime(cfg *config.Config) (time.Time, error) {
	if flagSince != "" {
		d, err := parseSince(flagSince)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --since value: %w", err)
		}
		return time.Now().Add(-d), nil
	}
	return time.Now().AddDate(0, 0, -cfg.GetWindowDays()), nil
}

func parseSince(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}
