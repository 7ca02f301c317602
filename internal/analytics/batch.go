package analytics

import (
	"time"

	"github.com/mthomas46/jirassic-pack-sub000/internal/model"
)

// BatchOutcome summarizes one batch run (entries sharing a correlation
// ID): INFO entries count as successes, ERROR entries as failures, other
// levels count toward neither. Duration spans the earliest to latest
// parseable timestamp in the group and is nil when fewer than two
// timestamps parse.
type BatchOutcome struct {
	CorrelationID string
	Successes     int
	Failures      int
	Duration      *float64 // seconds
}

// BatchDuration is one batch run's time to completion.
type BatchDuration struct {
	CorrelationID string
	Duration      *float64 // seconds
}

// DurationSummary aggregates the non-nil batch durations. All fields are
// nil when no batch has a computable duration.
type DurationSummary struct {
	Avg *float64
	Min *float64
	Max *float64
}

type batchWindow struct {
	start, end time.Time
	stamps     int
}

func (w *batchWindow) observe(e model.LogEntry) {
	if !e.HasTimestamp() {
		return
	}
	if w.stamps == 0 || e.Timestamp.Before(w.start) {
		w.start = e.Timestamp
	}
	if w.stamps == 0 || e.Timestamp.After(w.end) {
		w.end = e.Timestamp
	}
	w.stamps++
}

func (w *batchWindow) duration() *float64 {
	if w.stamps < 2 {
		return nil
	}
	d := w.end.Sub(w.start).Seconds()
	return &d
}

// BatchOutcomes groups entries by correlation ID (entries without one are
// excluded), in the order each ID is first encountered.
func BatchOutcomes(entries []model.LogEntry) []BatchOutcome {
	var order []string
	outcomes := make(map[string]*BatchOutcome)
	windows := make(map[string]*batchWindow)

	for _, e := range entries {
		cid := e.CorrelationID
		if cid == "" {
			continue
		}
		if _, ok := outcomes[cid]; !ok {
			order = append(order, cid)
			outcomes[cid] = &BatchOutcome{CorrelationID: cid}
			windows[cid] = &batchWindow{}
		}
		switch e.Level {
		case levelError:
			outcomes[cid].Failures++
		case "INFO":
			outcomes[cid].Successes++
		}
		windows[cid].observe(e)
	}

	out := make([]BatchOutcome, 0, len(order))
	for _, cid := range order {
		o := *outcomes[cid]
		o.Duration = windows[cid].duration()
		out = append(out, o)
	}
	return out
}

// BatchDurations computes each batch run's duration plus an avg/min/max
// summary over the runs that have one.
func BatchDurations(entries []model.LogEntry) ([]BatchDuration, DurationSummary) {
	var order []string
	windows := make(map[string]*batchWindow)

	for _, e := range entries {
		cid := e.CorrelationID
		if cid == "" {
			continue
		}
		if _, ok := windows[cid]; !ok {
			order = append(order, cid)
			windows[cid] = &batchWindow{}
		}
		windows[cid].observe(e)
	}

	durations := make([]BatchDuration, 0, len(order))
	var known []float64
	for _, cid := range order {
		d := windows[cid].duration()
		durations = append(durations, BatchDuration{CorrelationID: cid, Duration: d})
		if d != nil {
			known = append(known, *d)
		}
	}

	var summary DurationSummary
	if len(known) > 0 {
		avg, min, max := known[0], known[0], known[0]
		var sum float64
		for _, d := range known {
			sum += d
			if d < min {
				min = d
			}
			if d > max {
				max = d
			}
		}
		avg = sum / float64(len(known))
		summary = DurationSummary{Avg: &avg, Min: &min, Max: &max}
	}
	return durations, summary
}
