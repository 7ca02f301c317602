package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mthomas46/jirassic-pack-sub000/internal/analytics"
	"github.com/mthomas46/jirassic-pack-sub000/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	reportInterval  string
	reportTopN      int
	reportThreshold float64
	reportExport    string
	reportFormat    string
)

var reportCmd = &cobra.Command{
	Use:   "report <analytic>",
	Short: "Run a named analytic and show or export the result",
	Long: `Run one of the registered analytics over the (optionally filtered)
log entries. See "jplog report list" for the available analytics and
their parameters.

Examples:
  jplog report error-rate --interval day
  jplog report top-features --top-n 10 --level ERROR
  jplog report error-spikes --threshold 1.5 --export spikes.md
  jplog report batch-durations --export report.json --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available analytics",
	Run: func(cmd *cobra.Command, args []string) {
		for _, a := range analytics.Registry() {
			fmt.Printf("%-18s %s", a.Key, a.Title)
			if len(a.Params) > 0 {
				names := make([]string, 0, len(a.Params))
				for _, p := range a.Params {
					names = append(names, p.Name)
				}
				fmt.Printf("  (params: %s)", strings.Join(names, ", "))
			}
			fmt.Println()
		}
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportListCmd)

	addFilterFlags(reportCmd)
	reportCmd.Flags().StringVar(&reportInterval, "interval", "", "time bucket: hour or day")
	reportCmd.Flags().IntVar(&reportTopN, "top-n", 0, "number of rows for top-N analytics")
	reportCmd.Flags().Float64Var(&reportThreshold, "threshold", 0, "z-score threshold for anomaly detection")
	reportCmd.Flags().StringVar(&reportExport, "export", "", "write the report to a file")
	reportCmd.Flags().StringVar(&reportFormat, "format", "", "export format: md or json (default: by extension)")
}

func runReport(cmd *cobra.Command, args []string) error {
	a, ok := analytics.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown analytic %q (see \"jplog report list\")", args[0])
	}

	entries, err := loadEntries()
	if err != nil {
		return err
	}
	f, err := buildFilter()
	if err != nil {
		return err
	}

	params, err := reportParams(cmd)
	if err != nil {
		return err
	}

	result := a.Run(f.Apply(entries), params)
	rep := report.Report{
		Type:    a.Title,
		Headers: a.Headers,
		Data:    result.Rows,
		Summary: result.Summary,
	}

	fmt.Print(rep.Terminal())

	if reportExport == "" {
		return nil
	}
	if err := exportReport(rep, reportExport, reportFormat); err != nil {
		// The rendered result above stays valid; only the write failed.
		return fmt.Errorf("failed to write analytics report to %s: %w", reportExport, err)
	}
	fmt.Printf("Analytics report exported to %s\n", reportExport)
	return nil
}

// reportParams merges explicitly-set flags over the configured
// defaults. Changed() rather than a zero-value check, so "--top-n 0"
// and a zero or negative --threshold reach the analytic as given.
func reportParams(cmd *cobra.Command) (analytics.Params, error) {
	params := analytics.Params{
		Interval:  viper.GetString("interval"),
		TopN:      viper.GetInt("top_n"),
		Threshold: viper.GetFloat64("threshold"),
	}
	if cmd.Flags().Changed("interval") {
		if reportInterval != analytics.IntervalHour && reportInterval != analytics.IntervalDay {
			return params, fmt.Errorf("invalid --interval %q (want hour or day)", reportInterval)
		}
		params.Interval = reportInterval
	}
	if cmd.Flags().Changed("top-n") {
		params.TopN = reportTopN
	}
	if cmd.Flags().Changed("threshold") {
		params.Threshold = reportThreshold
	}
	return params, nil
}

func exportReport(rep report.Report, path, format string) error {
	if format == "" {
		if strings.EqualFold(filepath.Ext(path), ".json") {
			format = "json"
		} else {
			format = "md"
		}
	}
	switch strings.ToLower(format) {
	case "json":
		return rep.WriteJSON(path)
	case "md", "markdown":
		return rep.WriteMarkdown(path)
	default:
		return fmt.Errorf("unknown format %q (want md or json)", format)
	}
}
