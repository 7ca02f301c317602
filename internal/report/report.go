// Package report renders a computed analytic result to Markdown, JSON,
// or the terminal. Rendering is a pure formatting step; a failed export
// leaves the in-memory report untouched so the caller can retry with a
// different path.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Report is one analytic result ready for export.
type Report struct {
	Type    string   `json:"type"`
	Headers []string `json:"headers"`
	Data    [][]any  `json:"data"`
	Summary *string  `json:"summary"`
}

// Markdown renders the report as a top-level heading, a GitHub-flavored
// pipe table, and the summary as a trailing paragraph when present.
func (r Report) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Analytics Report: %s\n\n", r.Type)
	b.WriteString(MarkdownTable(r.Headers, r.Data))
	if r.Summary != nil && *r.Summary != "" {
		b.WriteString("\n\n")
		b.WriteString(*r.Summary)
	}
	b.WriteString("\n")
	return b.String()
}

// WriteMarkdown writes the Markdown rendering to path, creating parent
// directories as needed.
func (r Report) WriteMarkdown(path string) error {
	return write(path, []byte(r.Markdown()))
}

// WriteJSON writes the report as {"type","headers","data","summary"}.
func (r Report) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return write(path, append(data, '\n'))
}

func write(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// MarkdownTable renders headers and rows as a GitHub pipe table, columns
// padded to their widest cell. Empty data renders a placeholder message.
func MarkdownTable(headers []string, rows [][]any) string {
	if len(rows) == 0 {
		return "No data available."
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	cells := make([][]string, len(rows))
	for ri, row := range rows {
		cells[ri] = make([]string, len(headers))
		for ci := range headers {
			var text string
			if ci < len(row) {
				text = FormatCell(row[ci])
			}
			cells[ri][ci] = text
			if len(text) > widths[ci] {
				widths[ci] = len(text)
			}
		}
	}

	var b strings.Builder
	writeRow := func(row []string) {
		b.WriteString("|")
		for i, cell := range row {
			fmt.Fprintf(&b, " %-*s |", widths[i], cell)
		}
		b.WriteString("\n")
	}

	writeRow(headers)
	b.WriteString("|")
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteString("|")
	}
	b.WriteString("\n")
	for _, row := range cells {
		writeRow(row)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatCell renders one row value for table output. Nil (a missing
// duration) renders empty; floats drop trailing zeros.
func FormatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}
