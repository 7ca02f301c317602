package cmd

import (
	"fmt"

	"github.com/mthomas46/jirassic-pack-sub000/internal/analytics"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show entry counts by level and by feature",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := loadEntries()
		if err != nil {
			return err
		}

		stats := analytics.Summary(entries)
		fmt.Printf("Total log entries: %d\n", stats.Total)
		fmt.Println("Log entries by level:")
		for _, c := range stats.Levels {
			fmt.Printf("  %s: %d\n", c.Label, c.Value)
		}
		fmt.Println("Log entries by feature:")
		for _, c := range stats.Features {
			fmt.Printf("  %s: %d\n", c.Label, c.Value)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
