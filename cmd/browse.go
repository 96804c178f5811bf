package cmd

import "github.com/spf13/cobra"

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Launch the full article browser",
	Long:  "Open mednews in browse mode, the two-pane article browser, skipping the home screen.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(true)
	},
}
