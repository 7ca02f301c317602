package analytics

import (
	"fmt"

	"github.com/mthomas46/jirassic-pack-sub000/internal/anomaly"
	"github.com/mthomas46/jirassic-pack-sub000/internal/model"
)

// Params carries every scalar parameter an analytic can take. Each
// analytic declares which ones it reads via its ParamSpec list; callers
// are responsible for populating them with valid values.
type Params struct {
	Interval  string  `json:"interval,omitempty"`
	TopN      int     `json:"top_n,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
}

// ParamSpec declares one parameter an analytic accepts, for CLI help and
// the HTTP registry listing.
type ParamSpec struct {
	Name    string   `json:"name"`              // interval, top_n, threshold
	Type    string   `json:"type"`              // select, int, float
	Choices []string `json:"choices,omitempty"` // for select
	Default any      `json:"default"`
}

// Result is the output of one analytic run: ordered rows matching the
// analytic's header schema, plus an optional scalar summary.
type Result struct {
	Rows    [][]any
	Summary *string
}

// Analytic is one named computation in the registry.
type Analytic struct {
	Key     string      // stable CLI/API identifier
	Title   string      // human-readable report type
	Headers []string    // column schema for Rows
	Params  []ParamSpec // declared parameters
	Run     func(entries []model.LogEntry, p Params) Result
}

var intervalSpec = ParamSpec{Name: "interval", Type: "select", Choices: []string{IntervalHour, IntervalDay}, Default: IntervalHour}
var topNSpec = ParamSpec{Name: "top_n", Type: "int", Default: 5}
var thresholdSpec = ParamSpec{Name: "threshold", Type: "float", Default: 2.0}

// DefaultParams are the registry-wide parameter defaults.
var DefaultParams = Params{Interval: IntervalHour, TopN: 5, Threshold: 2.0}

var registry = []Analytic{
	{
		Key:     "error-rate",
		Title:   "Error rate over time",
		Headers: []string{"Time", "Error Count"},
		Params:  []ParamSpec{intervalSpec},
		Run: func(entries []model.LogEntry, p Params) Result {
			return Result{Rows: countRows(ErrorRateOverTime(entries, p.Interval))}
		},
	},
	{
		Key:     "top-features",
		Title:   "Top features by error count",
		Headers: []string{"Feature", "Error Count"},
		Params:  []ParamSpec{topNSpec},
		Run: func(entries []model.LogEntry, p Params) Result {
			return Result{Rows: countRows(TopFeaturesByError(entries, p.TopN))}
		},
	},
	{
		Key:     "top-errors",
		Title:   "Most frequent error messages",
		Headers: []string{"Error Message", "Count"},
		Params:  []ParamSpec{topNSpec},
		Run: func(entries []model.LogEntry, p Params) Result {
			return Result{Rows: countRows(MostFrequentErrorMessages(entries, p.TopN))}
		},
	},
	{
		Key:     "batch-outcomes",
		Title:   "Batch run success/failure",
		Headers: []string{"Correlation ID", "Successes", "Failures", "Duration (s)"},
		Run: func(entries []model.LogEntry, _ Params) Result {
			outcomes := BatchOutcomes(entries)
			rows := make([][]any, 0, len(outcomes))
			for _, o := range outcomes {
				rows = append(rows, []any{o.CorrelationID, o.Successes, o.Failures, nullable(o.Duration)})
			}
			return Result{Rows: rows}
		},
	},
	{
		Key:     "batch-durations",
		Title:   "Batch run time-to-completion",
		Headers: []string{"Correlation ID", "Duration (s)"},
		Run: func(entries []model.LogEntry, _ Params) Result {
			durations, summary := BatchDurations(entries)
			rows := make([][]any, 0, len(durations))
			for _, d := range durations {
				rows = append(rows, []any{d.CorrelationID, nullable(d.Duration)})
			}
			text := "No durations available."
			if summary.Avg != nil {
				text = fmt.Sprintf("Average: %.2f s, Min: %.2f s, Max: %.2f s", *summary.Avg, *summary.Min, *summary.Max)
			}
			return Result{Rows: rows, Summary: &text}
		},
	},
	{
		Key:     "error-spikes",
		Title:   "Anomaly detection (error spikes)",
		Headers: []string{"Time", "Error Count", "Z-score"},
		Params:  []ParamSpec{intervalSpec, thresholdSpec},
		Run: func(entries []model.LogEntry, p Params) Result {
			found := anomaly.Detect(ErrorRateOverTime(entries, p.Interval), p.Threshold)
			return Result{Rows: anomalyRows(found)}
		},
	},
	{
		Key:     "feature-anomalies",
		Title:   "Feature-based anomaly detection",
		Headers: []string{"Feature", "Error Count", "Z-score"},
		Params:  []ParamSpec{thresholdSpec},
		Run: func(entries []model.LogEntry, p Params) Result {
			found := anomaly.Detect(FeatureErrorCounts(entries), p.Threshold)
			return Result{Rows: anomalyRows(found)}
		},
	},
	{
		Key:     "user-activity",
		Title:   "User activity analytics",
		Headers: []string{"User", "Total Actions", "Error Count", "Error Rate"},
		Params:  []ParamSpec{topNSpec},
		Run: func(entries []model.LogEntry, p Params) Result {
			users := UserActivityStats(entries, p.TopN)
			rows := make([][]any, 0, len(users))
			for _, u := range users {
				rows = append(rows, []any{u.User, u.Total, u.Errors, u.ErrorRate})
			}
			return Result{Rows: rows}
		},
	},
}

// Registry returns the analytics in their canonical order.
func Registry() []Analytic {
	return registry
}

// Lookup finds an analytic by key.
func Lookup(key string) (Analytic, bool) {
	for _, a := range registry {
		if a.Key == key {
			return a, true
		}
	}
	return Analytic{}, false
}

func countRows(counts []anomaly.Count) [][]any {
	rows := make([][]any, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []any{c.Label, c.Value})
	}
	return rows
}

func anomalyRows(found []anomaly.Anomaly) [][]any {
	rows := make([][]any, 0, len(found))
	for _, a := range found {
		rows = append(rows, []any{a.Label, a.Count, a.ZScore})
	}
	return rows
}

// nullable widens an optional float into a row cell, keeping JSON null
// for absent durations.
func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
