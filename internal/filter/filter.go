// Package filter narrows a LogEntry collection by level, feature,
// correlation ID, and/or time window. All predicates are conjunctive and
// independently optional; filtering never mutates its input.
package filter

import (
	"strings"
	"time"

	"github.com/mthomas46/jirassic-pack-sub000/internal/model"
)

// Filter holds the optional predicates. Zero-valued fields pass
// everything through, so the zero Filter is the identity.
type Filter struct {
	Level         string // case-insensitive exact match on the normalized level
	Feature       string // exact match
	CorrelationID string // exact match
	Start         *time.Time
	End           *time.Time
}

// Apply returns the entries that satisfy every set predicate, preserving
// order. Time predicates require a parseable timestamp; entries without
// one are excluded only when a time bound is set, never otherwise.
func (f Filter) Apply(entries []model.LogEntry) []model.LogEntry {
	out := make([]model.LogEntry, 0, len(entries))
	for _, e := range entries {
		if f.match(e) {
			out = append(out, e)
		}
	}
	return out
}

func (f Filter) match(e model.LogEntry) bool {
	if f.CorrelationID != "" && e.CorrelationID != f.CorrelationID {
		return false
	}
	if f.Level != "" && !strings.EqualFold(e.Level, f.Level) {
		return false
	}
	if f.Feature != "" && e.Feature != f.Feature {
		return false
	}
	if f.Start != nil || f.End != nil {
		if !e.HasTimestamp() {
			return false
		}
		if f.Start != nil && e.Timestamp.Before(*f.Start) {
			return false
		}
		if f.End != nil && e.Timestamp.After(*f.End) {
			return false
		}
	}
	return true
}
