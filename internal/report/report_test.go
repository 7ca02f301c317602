package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() Report {
	summary := "Average: 30.00 s, Min: 30.00 s, Max: 30.00 s"
	return Report{
		Type:    "Batch run success/failure",
		Headers: []string{"Correlation ID", "Successes", "Failures", "Duration (s)"},
		Data: [][]any{
			{"abc", 2.0, 1.0, 30.0},
			{"def", 5.0, 0.0, nil},
		},
		Summary: &summary,
	}
}

func TestMarkdownRendering(t *testing.T) {
	md := sample().Markdown()

	assert.Contains(t, md, "# Analytics Report: Batch run success/failure\n")
	assert.Contains(t, md, "| Correlation ID |")
	assert.Contains(t, md, "| abc")
	assert.Contains(t, md, "| 30 ")
	assert.Contains(t, md, "Average: 30.00 s, Min: 30.00 s, Max: 30.00 s")
}

func TestMarkdownEmptyData(t *testing.T) {
	r := Report{Type: "Error rate over time", Headers: []string{"Time", "Error Count"}}
	assert.Contains(t, r.Markdown(), "No data available.")
}

func TestJSONRoundTrip(t *testing.T) {
	r := sample()
	path := filepath.Join(t.TempDir(), "reports", "out.json")

	require.NoError(t, r.WriteJSON(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Report
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, r.Type, got.Type)
	assert.Equal(t, r.Headers, got.Headers)
	assert.Equal(t, r.Data, got.Data)
	assert.Equal(t, *r.Summary, *got.Summary)
}

func TestJSONNullSummary(t *testing.T) {
	r := Report{Type: "t", Headers: []string{"h"}, Data: [][]any{{"x"}}}
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"summary":null`)
}

func TestWriteMarkdownCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "report.md")
	require.NoError(t, sample().WriteMarkdown(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "# Analytics Report:")
}

func TestWriteFailureLeavesReportIntact(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	r := sample()
	// Parent "directory" is a regular file, so the write must fail.
	err := r.WriteJSON(filepath.Join(blocker, "out.json"))
	assert.Error(t, err)
	assert.Equal(t, sample(), r, "failed export must not modify the report")
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "", FormatCell(nil))
	assert.Equal(t, "30", FormatCell(30.0))
	assert.Equal(t, "30.5", FormatCell(30.5))
	assert.Equal(t, "7", FormatCell(7))
	assert.Equal(t, "abc", FormatCell("abc"))
}
