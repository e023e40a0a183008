package ics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpcomingDropsPastKeepsFuture(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	events := []ParsedEvent{
		{Summary: "Yesterday", Start: now.Add(-24 * time.Hour)},
		{Summary: "Tomorrow", Start: now.Add(24 * time.Hour)},
	}

	out := Upcoming(events, now, DefaultWindow)
	require.Len(t, out, 1)
	assert.Equal(t, "Tomorrow", out[0].Summary)
}

func TestUpcomingSortsAscending(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	events := []ParsedEvent{
		{Summary: "Later", Start: now.Add(48 * time.Hour)},
		{Summary: "Sooner", Start: now.Add(2 * time.Hour)},
		{Summary: "Middle", Start: now.Add(24 * time.Hour)},
	}

	out := Upcoming(events, now, DefaultWindow)
	require.Len(t, out, 3)
	assert.Equal(t, "Sooner", out[0].Summary)
	assert.Equal(t, "Middle", out[1].Summary)
	assert.Equal(t, "Later", out[2].Summary)
}

func TestUpcomingExpandsWeeklyRecurrence(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) // a Monday
	events := []ParsedEvent{{
		Summary: "Standup",
		// DTSTART long in the past; only the expansion makes it visible.
		Start:    time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), // also a Monday
		RawRRule: "FREQ=WEEKLY;BYDAY=MO",
	}}

	out := Upcoming(events, now, DefaultWindow)
	require.NotEmpty(t, out)
	first := out[0]
	assert.Equal(t, "Standup", first.Summary)
	assert.Equal(t, time.Monday, first.Start.Weekday())
	assert.False(t, first.Start.Before(now))
	// Next Monday 09:00 after a Monday noon.
	assert.Equal(t, time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC), first.Start.UTC())
}

func TestUpcomingRecurrenceStaysInsideWindow(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	events := []ParsedEvent{{
		Summary:  "Daily",
		Start:    time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
		RawRRule: "FREQ=DAILY",
	}}

	out := Upcoming(events, now, 7*24*time.Hour)
	require.NotEmpty(t, out)
	horizon := now.Add(7 * 24 * time.Hour)
	for _, ev := range out {
		assert.False(t, ev.Start.After(horizon), ev.Start.String())
	}
}

func TestUpcomingBadRRuleFallsBackToStart(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	events := []ParsedEvent{{
		Summary:  "Odd",
		Start:    now.Add(3 * time.Hour),
		RawRRule: "FREQ=SOMETIMES",
	}}

	out := Upcoming(events, now, DefaultWindow)
	require.Len(t, out, 1)
	assert.Equal(t, now.Add(3*time.Hour), out[0].Start)
}

func TestUpcomingAllDayTodayKept(t *testing.T) {
	now := time.Date(2026, 8, 31, 18, 0, 0, 0, time.UTC)
	events := []ParsedEvent{{
		Summary: "Conference day",
		Start:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		AllDay:  true,
	}}

	// Midnight today is before now; an all-day event still on the calendar
	// today has passed its start, so it is not shown. Matches the feed's
	// start-based semantics.
	out := Upcoming(events, now, DefaultWindow)
	assert.Empty(t, out)
}

func TestUpcomingZeroWindowUsesDefault(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	events := []ParsedEvent{{Summary: "In30d", Start: now.Add(30 * 24 * time.Hour)}}

	out := Upcoming(events, now, 0)
	require.Len(t, out, 1)
}
