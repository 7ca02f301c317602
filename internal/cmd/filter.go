package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mthomas46/jirassic-pack-sub000/internal/report"
	"github.com/spf13/cobra"
)

var (
	filterLimit  int
	filterExport string
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter log entries and show or export them",
	Long: `Filter log entries by level, feature, correlation ID, and/or time
window. All predicates combine with AND. Matching entries print to the
terminal, or export as a JSON array with --export.

Examples:
  jplog filter --level ERROR
  jplog filter --feature create_issue --from "2024-01-01 00:00:00"
  jplog filter --correlation-id abc123 --export filtered_logs.json`,
	RunE: runFilter,
}

func init() {
	rootCmd.AddCommand(filterCmd)
	addFilterFlags(filterCmd)
	filterCmd.Flags().IntVar(&filterLimit, "limit", 50, "max entries to print (0 = all)")
	filterCmd.Flags().StringVar(&filterExport, "export", "", "write filtered entries to a JSON file")
}

func runFilter(cmd *cobra.Command, args []string) error {
	entries, err := loadEntries()
	if err != nil {
		return err
	}

	f, err := buildFilter()
	if err != nil {
		return err
	}
	filtered := f.Apply(entries)

	if filterExport != "" {
		return exportEntries(filtered, filterExport)
	}

	fmt.Printf("Filtered log entries: %d\n\n", len(filtered))
	shown := len(filtered)
	if filterLimit > 0 && shown > filterLimit {
		shown = filterLimit
	}
	for _, e := range filtered[:shown] {
		fmt.Println(report.RenderEntry(e))
	}
	if rest := len(filtered) - shown; rest > 0 {
		fmt.Printf("... %d more entries not shown ...\n", rest)
	}
	return nil
}

// exportEntries writes the entries as an indented JSON array, creating
// parent directories as needed.
func exportEntries(entries any, path string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write filtered logs to %s: %w", path, err)
	}
	fmt.Printf("Filtered logs exported to %s\n", path)
	return nil
}
