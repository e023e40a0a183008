package trafiklab

import (
	"sort"
	"strings"
	"time"

	"smartmirror/internal/model"
)

// Normalize flattens raw feed entries into sorted departures.
//
// Policy, in order:
//  1. entries flagged canceled or with no route information are dropped
//  2. realtime and scheduled timestamps parse independently; an
//     unparsable or absent value becomes nil, never a record error
//  3. ordering is ascending by best-known time (live estimate, else
//     timetable); records with neither sort after every record that has
//     one, using the fetch-time now as placeholder
func Normalize(entries []DepartureEntry, now time.Time) []model.Departure {
	out := make([]model.Departure, 0, len(entries))

	for _, entry := range entries {
		if entry.Canceled {
			continue
		}
		dep, ok := parseEntry(entry)
		if !ok {
			continue
		}
		out = append(out, dep)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := resolvable(out[i]), resolvable(out[j])
		if ri != rj {
			return ri
		}
		return out[i].BestTime(now).Before(out[j].BestTime(now))
	})
	return out
}

func resolvable(d model.Departure) bool {
	return d.Expected != nil || d.Scheduled != nil
}

// parseEntry converts one raw entry. Structurally empty entries (no line
// and no destination) report !ok.
func parseEntry(entry DepartureEntry) (model.Departure, bool) {
	line := entry.Route.Designation
	if line == "" {
		line = entry.Route.Name
	}
	if line == "" && entry.Route.Direction == "" {
		return model.Departure{}, false
	}

	return model.Departure{
		Line:        line,
		Destination: entry.Route.Direction,
		Expected:    ParseTime(entry.Realtime),
		Scheduled:   ParseTime(entry.Scheduled),
		DelaySec:    entry.Delay,
		Mode:        strings.ToUpper(entry.Route.TransportMode),
	}, true
}

// ParseTime parses an ISO-8601 timestamp. Values without an explicit zone
// offset are assumed UTC. Absent or unparsable values yield nil.
func ParseTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t
	}
	// Zone-less variant, e.g. "2024-05-01T08:30:00".
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", value, time.UTC); err == nil {
		return &t
	}
	return nil
}
