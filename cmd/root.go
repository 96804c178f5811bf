package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/matheuskafuri/mednews/internal/update"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagSince   string
	flagRefresh bool
	flagTopic   string
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "mednews",
	Short: "TUI aggregator for AI-in-medicine news",
	Long:  "mednews aggregates AI-in-medicine articles from journals, news feeds, and arXiv into a clean terminal dashboard.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(false)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.Flags().StringVar(&flagSince, "since", "", "only show articles from the last duration (e.g., 7d, 24h)")
	rootCmd.Flags().BoolVar(&flagRefresh, "refresh", false, "force refresh feeds before launching")
	rootCmd.Flags().StringVar(&flagTopic, "topic", "", "start filtered to a topic (e.g., imaging, genomics, nlp)")

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(digestCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(statsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mednews %s (commit: %s, built: %s)\n", version, commit, date)
		if res := update.Check(context.Background(), version); res != nil {
			fmt.Printf("Update available: v%s\n", res.LatestVersion)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
