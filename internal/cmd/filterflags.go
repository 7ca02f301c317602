package cmd

import (
	"fmt"

	"github.com/mthomas46/jirassic-pack-sub000/internal/filter"
	"github.com/mthomas46/jirassic-pack-sub000/internal/parser"
	"github.com/spf13/cobra"
)

// Shared entry-filter flags; both the filter and report subcommands
// accept the same optional predicates.
var (
	flagLevel   string
	flagFeature string
	flagCID     string
	flagFrom    string
	flagTo      string
)

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagLevel, "level", "l", "", "filter by level (INFO, ERROR, WARNING, DEBUG)")
	cmd.Flags().StringVar(&flagFeature, "feature", "", "filter by feature/module")
	cmd.Flags().StringVar(&flagCID, "correlation-id", "", "filter by correlation ID")
	cmd.Flags().StringVar(&flagFrom, "from", "", "start time (YYYY-MM-DD HH:MM:SS)")
	cmd.Flags().StringVar(&flagTo, "to", "", "end time (YYYY-MM-DD HH:MM:SS)")
}

// buildFilter assembles a Filter from the shared flags, rejecting time
// bounds that do not parse.
func buildFilter() (filter.Filter, error) {
	f := filter.Filter{
		Level:         flagLevel,
		Feature:       flagFeature,
		CorrelationID: flagCID,
	}
	if flagFrom != "" {
		t := parser.ParseTimestamp(flagFrom)
		if t.IsZero() {
			return f, fmt.Errorf("invalid --from time %q (want YYYY-MM-DD HH:MM:SS)", flagFrom)
		}
		f.Start = &t
	}
	if flagTo != "" {
		t := parser.ParseTimestamp(flagTo)
		if t.IsZero() {
			return f, fmt.Errorf("invalid --to time %q (want YYYY-MM-DD HH:MM:SS)", flagTo)
		}
		f.End = &t
	}
	return f, nil
}
