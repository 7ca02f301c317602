package analytics

import (
	"testing"
	"time"

	"github.com/mthomas46/jirassic-pack-sub000/internal/model"
)

func at(day, h, m, s int) time.Time {
	return time.Date(2024, 1, day, h, m, s, 0, time.UTC)
}

func TestErrorRateOverTimeHour(t *testing.T) {
	entries := []model.LogEntry{
		{Timestamp: at(1, 10, 5, 0), Level: "ERROR"},
		{Timestamp: at(1, 10, 50, 0), Level: "ERROR"},
		{Timestamp: at(1, 11, 5, 0), Level: "INFO"},
	}

	counts := ErrorRateOverTime(entries, IntervalHour)

	if len(counts) != 1 {
		t.Fatalf("expected 1 bucket, got %d: %+v", len(counts), counts)
	}
	if counts[0].Label != "2024-01-01 10:00" || counts[0].Value != 2 {
		t.Errorf("expected (2024-01-01 10:00, 2), got (%s, %d)", counts[0].Label, counts[0].Value)
	}
}

func TestErrorRateOverTimeDay(t *testing.T) {
	entries := []model.LogEntry{
		{Timestamp: at(2, 9, 0, 0), Level: "ERROR"},
		{Timestamp: at(1, 23, 0, 0), Level: "ERROR"},
		{Timestamp: at(2, 18, 0, 0), Level: "ERROR"},
	}

	counts := ErrorRateOverTime(entries, IntervalDay)

	if len(counts) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(counts))
	}
	// Sorted ascending by label.
	if counts[0].Label != "2024-01-01" || counts[0].Value != 1 {
		t.Errorf("unexpected first bucket (%s, %d)", counts[0].Label, counts[0].Value)
	}
	if counts[1].Label != "2024-01-02" || counts[1].Value != 2 {
		t.Errorf("unexpected second bucket (%s, %d)", counts[1].Label, counts[1].Value)
	}
}

func TestErrorRateBucketConservation(t *testing.T) {
	entries := []model.LogEntry{
		{Timestamp: at(1, 10, 0, 0), Level: "ERROR"},
		{Timestamp: at(1, 12, 0, 0), Level: "ERROR"},
		{Timestamp: at(2, 10, 0, 0), Level: "ERROR"},
		{Level: "ERROR"}, // no timestamp, contributes to no bucket
		{Timestamp: at(1, 10, 0, 0), Level: "INFO"},
	}

	total := 0
	for _, c := range ErrorRateOverTime(entries, IntervalHour) {
		total += c.Value
	}
	if total != 3 {
		t.Errorf("expected bucket counts to sum to 3, got %d", total)
	}
}

func TestTopFeaturesTieOrder(t *testing.T) {
	entries := []model.LogEntry{
		{Level: "ERROR", Feature: "beta"},
		{Level: "ERROR", Feature: "alpha"},
		{Level: "ERROR", Feature: "gamma"},
		{Level: "ERROR", Feature: "gamma"},
		{Level: "INFO", Feature: "alpha"},
	}

	counts := TopFeaturesByError(entries, 5)

	if len(counts) != 3 {
		t.Fatalf("expected 3 features, got %d", len(counts))
	}
	if counts[0].Label != "gamma" || counts[0].Value != 2 {
		t.Errorf("expected gamma first with 2, got (%s, %d)", counts[0].Label, counts[0].Value)
	}
	// beta and alpha tie at 1; beta was encountered first.
	if counts[1].Label != "beta" || counts[2].Label != "alpha" {
		t.Errorf("tie not broken by first-encountered order: %+v", counts)
	}
}

func TestTopFeaturesTruncates(t *testing.T) {
	entries := []model.LogEntry{
		{Level: "ERROR", Feature: "a"},
		{Level: "ERROR", Feature: "b"},
		{Level: "ERROR", Feature: "c"},
	}
	if got := TopFeaturesByError(entries, 2); len(got) != 2 {
		t.Errorf("expected 2 rows, got %d", len(got))
	}
}

func TestMostFrequentErrorMessages(t *testing.T) {
	entries := []model.LogEntry{
		{Level: "ERROR", Message: "timeout"},
		{Level: "ERROR", Message: "Timeout"}, // exact text, no normalization
		{Level: "ERROR", Message: "timeout"},
		{Level: "WARNING", Message: "timeout"},
	}

	counts := MostFrequentErrorMessages(entries, 5)

	if len(counts) != 2 {
		t.Fatalf("expected 2 distinct messages, got %d", len(counts))
	}
	if counts[0].Label != "timeout" || counts[0].Value != 2 {
		t.Errorf("expected (timeout, 2) first, got (%s, %d)", counts[0].Label, counts[0].Value)
	}
}

func TestUserActivityStats(t *testing.T) {
	entries := []model.LogEntry{
		{Level: "INFO", User: "alice"},
		{Level: "ERROR", User: "alice"},
		{Level: "INFO", User: "alice"},
		{Level: "INFO", User: "bob"},
	}

	users := UserActivityStats(entries, 5)

	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].User != "alice" || users[0].Total != 3 || users[0].Errors != 1 {
		t.Errorf("unexpected alice row: %+v", users[0])
	}
	if users[0].ErrorRate != "33.33%" {
		t.Errorf("expected rate 33.33%%, got %s", users[0].ErrorRate)
	}
	if users[1].ErrorRate != "0.00%" {
		t.Errorf("expected rate 0.00%% for bob, got %s", users[1].ErrorRate)
	}
}

func TestSummary(t *testing.T) {
	entries := []model.LogEntry{
		{Level: "INFO", Feature: "create_issue"},
		{Level: "ERROR", Feature: "create_issue"},
		{Level: "INFO", Feature: "gather_metrics"},
	}

	stats := Summary(entries)

	if stats.Total != 3 {
		t.Errorf("expected total 3, got %d", stats.Total)
	}
	if len(stats.Levels) != 2 || stats.Levels[0].Label != "INFO" || stats.Levels[0].Value != 2 {
		t.Errorf("unexpected level counts: %+v", stats.Levels)
	}
	if len(stats.Features) != 2 || stats.Features[0].Value != 2 {
		t.Errorf("unexpected feature counts: %+v", stats.Features)
	}
}
