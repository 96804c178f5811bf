package cmd

import (
	"fmt"

	"github.com/matheuskafuri/mednews/internal/cache"
	"github.com/matheuskafuri/mednews/internal/config"
	"github.com/matheuskafuri/mednews/internal/digest"
	"github.com/spf13/cobra"
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Print a plain-text digest of the current window",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		db, err := cache.Open(config.CachePath())
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer db.Close()

		since, err := sinceTime(cfg)
		if err != nil {
			return err
		}

		windowArticles, err := db.GetArticles(cache.QueryOpts{Since: since})
		if err != nil {
			return fmt.Errorf("loading articles: %w", err)
		}
		allArticles, _ := db.GetArticles(cache.QueryOpts{})

		d := digest.Generate(windowArticles, allArticles)

		fmt.Printf("%s. %d article(s) in your window.\n", d.Greeting, d.NewCount)
		if d.ActiveSources != "" {
			fmt.Printf("Most active: %s\n", d.ActiveSources)
		}
		if d.Trending != "" {
			fmt.Printf("Trending: %s\n", d.Trending)
		}
		for _, tc := range d.TopicCounts {
			fmt.Printf("  %-28s %d\n", tc.Topic, tc.Count)
		}
		return nil
	},
}
