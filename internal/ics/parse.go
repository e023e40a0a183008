// Package ics turns a raw iCalendar feed into the bounded, sorted list of
// upcoming events the calendar card displays: parse the VEVENTs, expand
// recurrences into the lookahead window, normalize timestamps, drop the
// past, sort ascending.
package ics

import (
	"bytes"
	"errors"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"smartmirror/internal/log"
)

// ParsedEvent is the normalized representation of a single VEVENT before
// recurrence expansion.
type ParsedEvent struct {
	UID     string
	Summary string

	Start  time.Time
	AllDay bool

	// RawRRule is kept verbatim; expansion happens in upcoming.go.
	RawRRule string
}

// ParseICS parses an ICS payload into ParsedEvents. Components missing a
// start time or a summary are skipped, not errors; the surrounding feed
// keeps parsing. Timezone handling is delegated to the underlying
// library, which resolves TZID references and treats floating times as
// UTC. Date-only starts become UTC midnight of that date.
func ParseICS(body []byte) ([]ParsedEvent, error) {
	if len(body) == 0 {
		return nil, errors.New("ics: empty body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	events := make([]ParsedEvent, 0)
	skipped := 0

	for _, ve := range cal.Events() {
		ev, ok := parseVEvent(ve)
		if !ok {
			skipped++
			continue
		}
		events = append(events, ev)
	}

	if skipped > 0 {
		log.Debug("ics parse skipped incomplete events", "skipped", skipped, "kept", len(events))
	}
	return events, nil
}

func parseVEvent(ve *ical.VEvent) (ParsedEvent, bool) {
	var out ParsedEvent

	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		out.UID = p.Value
	}

	p := ve.GetProperty(ical.ComponentPropertySummary)
	if p == nil || p.Value == "" {
		return out, false
	}
	out.Summary = p.Value

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil || dtStart.Value == "" {
		return out, false
	}
	out.AllDay = isAllDay(dtStart)

	if out.AllDay {
		start, err := ve.GetAllDayStartAt()
		if err != nil {
			return out, false
		}
		// UTC midnight of the given date, regardless of what location the
		// library attached.
		out.Start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	} else {
		start, err := ve.GetStartAt()
		if err != nil {
			return out, false
		}
		out.Start = start
	}

	if rruleProp := ve.GetProperty(ical.ComponentPropertyRrule); rruleProp != nil {
		out.RawRRule = rruleProp.Value
	}

	return out, true
}

// isAllDay detects all-day events: VALUE=DATE parameter or a value with
// no time component.
func isAllDay(dtStart *ical.IANAProperty) bool {
	if params := dtStart.ICalParameters; params != nil {
		if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			return true
		}
	}
	return !strings.Contains(dtStart.Value, "T")
}
