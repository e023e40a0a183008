// Package model holds the transient, card-local record types produced by
// the feed normalizers. Records live only until the next refresh replaces
// them; nothing here is persisted.
package model

import "time"

// Departure is a single normalized transit departure.
type Departure struct {
	// Line is the route designation shown to the rider (e.g. "14").
	Line        string
	Destination string

	// Expected is the live estimate, Scheduled the timetable time.
	// Either may be nil when the feed omits or mangles the field.
	Expected  *time.Time
	Scheduled *time.Time

	DelaySec int

	// Mode is the upper-cased transport mode (BUS, METRO, TRAIN, ...).
	Mode string
}

// BestTime resolves the departure's best-known time: live estimate, else
// scheduled time, else fallback. Callers pass the fetch-time "now" as
// fallback so records with no resolvable time sort last without breaking
// total ordering.
func (d Departure) BestTime(fallback time.Time) time.Time {
	if d.Expected != nil {
		return *d.Expected
	}
	if d.Scheduled != nil {
		return *d.Scheduled
	}
	return fallback
}

// Event is a single normalized upcoming calendar event. Start is always
// timezone-aware; naive feed values are assumed UTC during parsing.
type Event struct {
	Summary string
	Start   time.Time
	AllDay  bool
}
