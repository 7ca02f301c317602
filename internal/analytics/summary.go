package analytics

import (
	"github.com/mthomas46/jirassic-pack-sub000/internal/anomaly"
	"github.com/mthomas46/jirassic-pack-sub000/internal/model"
)

// SummaryStats is a quick overview of a log collection: total entry
// count plus per-level and per-feature breakdowns, each in
// first-encountered order.
type SummaryStats struct {
	Total    int             `json:"total"`
	Levels   []anomaly.Count `json:"levels"`
	Features []anomaly.Count `json:"features"`
}

// Summary computes SummaryStats over the given entries.
func Summary(entries []model.LogEntry) SummaryStats {
	stats := SummaryStats{Total: len(entries)}
	levelIdx := make(map[string]int)
	featureIdx := make(map[string]int)
	for _, e := range entries {
		bump(&stats.Levels, levelIdx, e.Level)
		bump(&stats.Features, featureIdx, e.Feature)
	}
	return stats
}
