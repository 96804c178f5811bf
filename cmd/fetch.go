package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/matheuskafuri/mednews/internal/aggregate"
	"github.com/matheuskafuri/mednews/internal/cache"
	"github.com/matheuskafuri/mednews/internal/config"
	"github.com/spf13/cobra"
)

var flagFetchForce bool

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch feeds without launching the dashboard",
	Long:  "Run one fetch cycle headless. Sources still fresh within the refresh interval are skipped unless --force is given.",
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

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		result := aggregate.New(cfg, db).Refresh(ctx, flagFetchForce)

		for _, name := range result.Skipped {
			fmt.Printf("  %-28s fresh, skipped\n", name)
		}
		for _, e := range result.Errors {
			fmt.Printf("  [warn] %v\n", e)
		}
		fmt.Printf("Cached %d article(s).\n", result.Fetched)
		return nil
	},
}

func init() {
	fetchCmd.Flags().BoolVar(&flagFetchForce, "force", false, "ignore the refresh interval and fetch everything")
}
