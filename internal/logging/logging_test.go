package logging

import (
	"path/filepath"
	"testing"

	"github.com/mthomas46/jirassic-pack-sub000/internal/parser"
)

func TestWriterProducesParseableSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	w := New(path)
	w.Event("INFO", "create_issue", "alice", "batch-1", "Starting batch")
	w.Event("ERROR", "create_issue", "alice", "batch-1", "Jira API returned 500")
	w.Event("WARNING", "gather_metrics", "bob", "", "slow response")
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	entries, diag, err := parser.ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if diag != "" {
		t.Fatalf("unexpected diagnostic %q", diag)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	if entries[0].Level != "INFO" || entries[0].Feature != "create_issue" || entries[0].User != "alice" {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[0].CorrelationID != "batch-1" {
		t.Errorf("expected correlation_id batch-1, got %q", entries[0].CorrelationID)
	}
	if !entries[0].HasTimestamp() {
		t.Error("expected a parseable asctime")
	}
	if entries[1].Level != "ERROR" {
		t.Errorf("expected ERROR, got %q", entries[1].Level)
	}
	// Python logging spells it WARNING, and so must we.
	if entries[2].Level != "WARNING" {
		t.Errorf("expected WARNING, got %q", entries[2].Level)
	}
	if entries[2].CorrelationID != "" {
		t.Errorf("expected no correlation_id, got %q", entries[2].CorrelationID)
	}
}
