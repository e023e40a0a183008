package menu

import (
	"strings"
	"time"
)

// DayMenu is the dishes offered on one weekday.
type DayMenu struct {
	Day     string
	Weekday time.Weekday
	Dishes  []string
}

// weekdayNames maps the Swedish day headers used on the menu page.
var weekdayNames = map[string]time.Weekday{
	"måndag":  time.Monday,
	"tisdag":  time.Tuesday,
	"onsdag":  time.Wednesday,
	"torsdag": time.Thursday,
	"fredag":  time.Friday,
	"lördag":  time.Saturday,
	"söndag":  time.Sunday,
}

// ParseWeek splits the extracted menu text into per-day sections. A line
// that starts with a weekday name (case-insensitive) opens a new section;
// subsequent non-empty lines are its dishes. Text before the first header
// is ignored.
func ParseWeek(text string) []DayMenu {
	var (
		week    []DayMenu
		current *DayMenu
	)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if wd, ok := headerWeekday(line); ok {
			week = append(week, DayMenu{Day: line, Weekday: wd})
			current = &week[len(week)-1]
			continue
		}
		if current == nil {
			continue
		}
		current.Dishes = append(current.Dishes, strings.TrimPrefix(line, "• "))
	}

	return week
}

// headerWeekday reports whether line opens a weekday section.
func headerWeekday(line string) (time.Weekday, bool) {
	lower := strings.ToLower(line)
	for name, wd := range weekdayNames {
		if strings.HasPrefix(lower, name) {
			return wd, true
		}
	}
	return 0, false
}

// Today picks the section matching now's weekday.
func Today(week []DayMenu, now time.Time) (DayMenu, bool) {
	for _, day := range week {
		if day.Weekday == now.Weekday() {
			return day, true
		}
	}
	return DayMenu{}, false
}
