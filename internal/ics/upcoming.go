package ics

import (
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"smartmirror/internal/log"
	"smartmirror/internal/model"
)

// DefaultWindow is the lookahead horizon for recurrence expansion.
const DefaultWindow = 31 * 24 * time.Hour

// maxOccurrencesPerEvent caps expansion so a pathological RRULE cannot
// flood the card.
const maxOccurrencesPerEvent = 100

// Upcoming turns parsed events into the sorted list of future events
// within [now, now+window]. Recurring events contribute every occurrence
// inside the window; a weekly meeting whose DTSTART is years old still
// surfaces its next instance. Non-recurring events contribute their start
// when it has not passed yet.
func Upcoming(events []ParsedEvent, now time.Time, window time.Duration) []model.Event {
	if window <= 0 {
		window = DefaultWindow
	}
	horizon := now.Add(window)

	out := make([]model.Event, 0, len(events))
	for _, ev := range events {
		for _, start := range occurrences(ev, now, horizon) {
			// Naive comparison on purpose, matching the upstream feed
			// semantics: both sides are compared by wall-clock fields with
			// the zone stripped. Events within a zone-offset of midnight
			// can be misclassified; accepted edge case.
			if naive(start).Before(naive(now)) {
				continue
			}
			out = append(out, model.Event{
				Summary: ev.Summary,
				Start:   start,
				AllDay:  ev.AllDay,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// occurrences lists the candidate start times of ev up to horizon.
func occurrences(ev ParsedEvent, now, horizon time.Time) []time.Time {
	if ev.RawRRule == "" {
		return []time.Time{ev.Start}
	}

	opt, err := rrule.StrToROptionInLocation(ev.RawRRule, ev.Start.Location())
	if err != nil {
		log.Warn("ics: unparsable RRULE, using DTSTART only",
			"uid", ev.UID, "rrule", ev.RawRRule, "err", err.Error())
		return []time.Time{ev.Start}
	}
	opt.Dtstart = ev.Start

	rule, err := rrule.NewRRule(*opt)
	if err != nil {
		log.Warn("ics: invalid RRULE, using DTSTART only",
			"uid", ev.UID, "rrule", ev.RawRRule, "err", err.Error())
		return []time.Time{ev.Start}
	}

	// Expand from just before now so an occurrence starting this instant
	// is included.
	times := rule.Between(now.Add(-time.Minute), horizon, true)
	if len(times) > maxOccurrencesPerEvent {
		times = times[:maxOccurrencesPerEvent]
	}
	return times
}

// naive strips the zone, keeping wall-clock fields.
func naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
