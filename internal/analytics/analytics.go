// Package analytics computes aggregate statistics over a LogEntry
// collection. Every analytic is a pure function: same entries in, same
// rows out, no shared state between invocations.
package analytics

import (
	"fmt"
	"sort"

	"github.com/mthomas46/jirassic-pack-sub000/internal/anomaly"
	"github.com/mthomas46/jirassic-pack-sub000/internal/model"
)

// Bucketing intervals for time-based analytics.
const (
	IntervalHour = "hour"
	IntervalDay  = "day"
)

const levelError = "ERROR"

// ErrorRateOverTime buckets ERROR entries into hour- or day-granularity
// labels and returns the counts sorted ascending by label. Entries
// without a parseable timestamp contribute to no bucket.
func ErrorRateOverTime(entries []model.LogEntry, interval string) []anomaly.Count {
	buckets := make(map[string]int)
	for _, e := range entries {
		if e.Level != levelError || !e.HasTimestamp() {
			continue
		}
		var label string
		switch interval {
		case IntervalHour:
			label = e.Timestamp.Format("2006-01-02 15:00")
		case IntervalDay:
			label = e.Timestamp.Format("2006-01-02")
		default:
			label = e.Timestamp.Format("2006-01-02 15:04:05")
		}
		buckets[label]++
	}

	labels := make([]string, 0, len(buckets))
	for label := range buckets {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	counts := make([]anomaly.Count, 0, len(labels))
	for _, label := range labels {
		counts = append(counts, anomaly.Count{Label: label, Value: buckets[label]})
	}
	return counts
}

// TopFeaturesByError returns the topN features with the most ERROR
// entries, descending by count, ties in first-encountered order.
func TopFeaturesByError(entries []model.LogEntry, topN int) []anomaly.Count {
	return topCounts(FeatureErrorCounts(entries), topN)
}

// MostFrequentErrorMessages ranks exact ERROR message texts the same way.
// No normalization or fuzzy matching is applied.
func MostFrequentErrorMessages(entries []model.LogEntry, topN int) []anomaly.Count {
	var counts []anomaly.Count
	index := make(map[string]int)
	for _, e := range entries {
		if e.Level != levelError {
			continue
		}
		msg := e.Message
		if msg == "" {
			msg = model.DefaultTag
		}
		bump(&counts, index, msg)
	}
	return topCounts(counts, topN)
}

// FeatureErrorCounts counts ERROR entries per feature, in the order
// features are first encountered. Feeds both the feature ranking and the
// feature anomaly detector.
func FeatureErrorCounts(entries []model.LogEntry) []anomaly.Count {
	var counts []anomaly.Count
	index := make(map[string]int)
	for _, e := range entries {
		if e.Level != levelError {
			continue
		}
		bump(&counts, index, e.Feature)
	}
	return counts
}

// UserActivity ranks users by total action count and reports their error
// count and error rate. The rate is a two-decimal percentage string and
// never divides by zero.
type UserActivity struct {
	User      string
	Total     int
	Errors    int
	ErrorRate string
}

// UserActivityStats returns the topN most active users.
func UserActivityStats(entries []model.LogEntry, topN int) []UserActivity {
	var totals []anomaly.Count
	index := make(map[string]int)
	errors := make(map[string]int)
	for _, e := range entries {
		bump(&totals, index, e.User)
		if e.Level == levelError {
			errors[e.User]++
		}
	}

	var out []UserActivity
	for _, c := range topCounts(totals, topN) {
		rate := 0.0
		if c.Value > 0 {
			rate = float64(errors[c.Label]) / float64(c.Value)
		}
		out = append(out, UserActivity{
			User:      c.Label,
			Total:     c.Value,
			Errors:    errors[c.Label],
			ErrorRate: fmt.Sprintf("%.2f%%", rate*100),
		})
	}
	return out
}

// bump increments the count for key, appending it on first sight so the
// slice keeps first-encountered order.
func bump(counts *[]anomaly.Count, index map[string]int, key string) {
	if i, ok := index[key]; ok {
		(*counts)[i].Value++
		return
	}
	index[key] = len(*counts)
	*counts = append(*counts, anomaly.Count{Label: key, Value: 1})
}

// topCounts sorts descending by count (stable, so ties keep their
// first-encountered order) and truncates to topN.
func topCounts(counts []anomaly.Count, topN int) []anomaly.Count {
	ranked := make([]anomaly.Count, len(counts))
	copy(ranked, counts)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value > ranked[j].Value
	})
	if topN >= 0 && topN < len(ranked) {
		ranked = ranked[:topN]
	}
	return ranked
}
