package model

import "time"

// DefaultTag is the placeholder for grouping fields a record omits.
// Keeping level/feature/user non-empty keeps every grouping key printable.
const DefaultTag = "N/A"

// LogEntry represents a single parsed log record.
type LogEntry struct {
	Timestamp     time.Time         `json:"timestamp"` // zero when absent or unparseable
	Level         string            `json:"level"`     // INFO, ERROR, WARNING, DEBUG (or opaque text)
	Feature       string            `json:"feature"`   // originating feature/module
	User          string            `json:"user"`      // acting principal
	CorrelationID string            `json:"correlation_id,omitempty"`
	Message       string            `json:"message"`
	Attrs         map[string]string `json:"attrs,omitempty"` // unrecognized fields, passed through
}

// HasTimestamp reports whether the entry carried a parseable timestamp.
// Entries without one are kept, but excluded from time-ordered analytics.
func (e LogEntry) HasTimestamp() bool {
	return !e.Timestamp.IsZero()
}
