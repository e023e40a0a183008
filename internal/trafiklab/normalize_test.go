package trafiklab

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(line, direction, realtime, scheduled string, delay int) DepartureEntry {
	return DepartureEntry{
		Realtime:  realtime,
		Scheduled: scheduled,
		Delay:     delay,
		Route:     Route{Designation: line, Direction: direction, TransportMode: "bus"},
	}
}

func TestNormalizeDropsCanceled(t *testing.T) {
	canceled := entry("4", "Radiohuset", "2026-08-31T08:30:00", "", 0)
	canceled.Canceled = true
	kept := entry("4", "Gullmarsplan", "2026-08-31T08:35:00", "", 0)

	out := Normalize([]DepartureEntry{canceled, kept}, time.Now())
	require.Len(t, out, 1)
	assert.Equal(t, "Gullmarsplan", out[0].Destination)
}

func TestNormalizeDropsStructurallyEmpty(t *testing.T) {
	empty := DepartureEntry{Scheduled: "2026-08-31T08:30:00"}
	out := Normalize([]DepartureEntry{empty}, time.Now())
	assert.Empty(t, out)
}

func TestNormalizeFallsBackToRouteName(t *testing.T) {
	e := DepartureEntry{
		Scheduled: "2026-08-31T08:30:00",
		Route:     Route{Name: "Roslagsbanan", Direction: "Kårsta"},
	}
	out := Normalize([]DepartureEntry{e}, time.Now())
	require.Len(t, out, 1)
	assert.Equal(t, "Roslagsbanan", out[0].Line)
}

func TestNormalizeSortsByBestTime(t *testing.T) {
	now := time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)
	later := entry("1", "Later", "2026-08-31T08:40:00", "", 0)
	// No realtime estimate; sorts by its timetable slot.
	soonest := entry("2", "Soonest", "", "2026-08-31T08:10:00", 0)
	middle := entry("3", "Middle", "2026-08-31T08:20:00", "2026-08-31T08:15:00", 300)

	out := Normalize([]DepartureEntry{later, soonest, middle}, now)
	require.Len(t, out, 3)
	assert.Equal(t, "Soonest", out[0].Destination)
	assert.Equal(t, "Middle", out[1].Destination)
	assert.Equal(t, "Later", out[2].Destination)
}

func TestNormalizeUnresolvableSortLast(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	noTimes := entry("7", "Unknown", "not-a-time", "", 0)
	// Departed a moment ago; still sorts before the record with no time.
	past := entry("8", "JustLeft", "2026-08-31T11:59:00", "", 0)

	out := Normalize([]DepartureEntry{noTimes, past}, now)
	require.Len(t, out, 2)
	assert.Equal(t, "JustLeft", out[0].Destination)
	assert.Equal(t, "Unknown", out[1].Destination)
	assert.Nil(t, out[1].Expected)
	assert.Nil(t, out[1].Scheduled)
}

func TestNormalizeUppercasesMode(t *testing.T) {
	out := Normalize([]DepartureEntry{entry("4", "X", "2026-08-31T08:30:00", "", 0)}, time.Now())
	require.Len(t, out, 1)
	assert.Equal(t, "BUS", out[0].Mode)
}

func TestParseTime(t *testing.T) {
	t.Run("rfc3339 keeps offset", func(t *testing.T) {
		got := ParseTime("2026-08-31T08:30:00+02:00")
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2026, 8, 31, 6, 30, 0, 0, time.UTC), got.UTC())
	})

	t.Run("naive assumed UTC", func(t *testing.T) {
		got := ParseTime("2026-08-31T08:30:00")
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2026, 8, 31, 8, 30, 0, 0, time.UTC), *got)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, ParseTime(""))
	})

	t.Run("garbage", func(t *testing.T) {
		assert.Nil(t, ParseTime("half past eight"))
	})
}
