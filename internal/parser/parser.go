package parser

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/mthomas46/jirassic-pack-sub000/internal/model"
)

// TimeLayout is the timestamp format used by the JSONL log schema.
// A trailing ",fraction" suffix (Python logging style) is discarded.
const TimeLayout = "2006-01-02 15:04:05"

// maxLineSize caps how much of one line is buffered; a longer line is
// treated as malformed and discarded, and scanning continues with the
// next line.
const maxLineSize = 1024 * 1024

// Parse reads JSON Lines from r and returns one LogEntry per valid line,
// in source order. Lines that are not JSON objects, and lines over
// maxLineSize, are skipped silently, so one corrupted line never poisons
// an otherwise healthy stream.
func Parse(r io.Reader) []model.LogEntry {
	var entries []model.LogEntry

	br := bufio.NewReaderSize(r, 64*1024)
	var buf []byte
	tooLong := false
	for {
		chunk, isPrefix, err := br.ReadLine()
		if len(chunk) > 0 && !tooLong {
			if len(buf)+len(chunk) > maxLineSize {
				tooLong = true
				buf = buf[:0]
			} else {
				buf = append(buf, chunk...)
			}
		}
		if err == nil && isPrefix {
			continue // line continues in the next read
		}

		if !tooLong {
			if entry, ok := parseLine(buf); ok {
				entries = append(entries, entry)
			}
		}
		buf = buf[:0]
		tooLong = false

		if err != nil {
			return entries
		}
	}
}

// parseLine decodes one raw line, reporting whether it held a JSON
// object.
func parseLine(raw []byte) (model.LogEntry, bool) {
	line := strings.TrimSpace(string(raw))
	if line == "" {
		return model.LogEntry{}, false
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(line), &record); err != nil || record == nil {
		return model.LogEntry{}, false
	}
	return fromRecord(record), true
}

// ParseFile reads the log file at path. A missing file is an expected
// condition ("no logs yet"), not an error: it yields an empty slice and a
// diagnostic for the caller to show.
func ParseFile(path string) ([]model.LogEntry, string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Sprintf("Log file not found: %s", path), nil
		}
		return nil, "", fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f), "", nil
}

// ParseGlob reads every file matching the doublestar pattern, in lexical
// path order, and concatenates their entries. Useful for rotated logs
// such as "jirassicpack.log*".
func ParseGlob(pattern string) ([]model.LogEntry, string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, "", fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Sprintf("Log file not found: %s", pattern), nil
	}
	sort.Strings(matches)

	var entries []model.LogEntry
	for _, path := range matches {
		got, _, err := ParseFile(path)
		if err != nil {
			return nil, "", err
		}
		entries = append(entries, got...)
	}
	return entries, "", nil
}

// ParseTimestamp parses an asctime value, discarding any fractional
// suffix. Returns the zero time when the value does not parse.
func ParseTimestamp(s string) time.Time {
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// fromRecord maps a decoded JSON object onto a LogEntry, defaulting
// absent grouping fields so downstream keys stay total.
func fromRecord(record map[string]any) model.LogEntry {
	entry := model.LogEntry{
		Level:   model.DefaultTag,
		Feature: model.DefaultTag,
		User:    model.DefaultTag,
	}

	if v, ok := strField(record, "asctime"); ok {
		entry.Timestamp = ParseTimestamp(v)
	}
	if v, ok := strField(record, "levelname"); ok {
		entry.Level = strings.ToUpper(strings.TrimSpace(v))
	}
	if v, ok := strField(record, "feature"); ok {
		entry.Feature = v
	}
	if v, ok := strField(record, "user"); ok {
		entry.User = v
	}
	if v, ok := strField(record, "correlation_id"); ok {
		entry.CorrelationID = v
	}
	if v, ok := strField(record, "message"); ok {
		entry.Message = v
	}

	// Preserve everything else opaquely.
	known := map[string]bool{
		"asctime": true, "levelname": true, "feature": true,
		"user": true, "correlation_id": true, "message": true,
	}
	for k, v := range record {
		if known[k] {
			continue
		}
		if entry.Attrs == nil {
			entry.Attrs = make(map[string]string)
		}
		entry.Attrs[k] = fmt.Sprintf("%v", v)
	}

	return entry
}

// strField returns the record field as a string, if present and non-empty.
func strField(record map[string]any, key string) (string, bool) {
	v, ok := record[key]
	if !ok || v == nil {
		return "", false
	}
	s := fmt.Sprintf("%v", v)
	if s == "" {
		return "", false
	}
	return s, true
}
