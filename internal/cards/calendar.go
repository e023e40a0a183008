package cards

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"smartmirror/internal/card"
	"smartmirror/internal/ics"
	"smartmirror/internal/model"
)

var (
	calendarFirstStyle = lipgloss.NewStyle().Bold(true)
	calendarRestStyle  = lipgloss.NewStyle().Faint(true)
	calendarErrStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// eventIcons classifies events by summary keyword. Order matters: the
// first matching keyword wins.
var eventIcons = []struct {
	keyword string
	icon    string
}{
	{"meeting", "🗓️"},
	{"call", "📞"},
	{"lunch", "🍽️"},
	{"birthday", "🎂"},
	{"travel", "✈️"},
	{"workout", "💪"},
	{"doctor", "🏥"},
}

const defaultEventIcon = "📅"

// IconFor picks the icon for an event summary by case-insensitive
// substring match against the keyword table.
func IconFor(summary string) string {
	lower := strings.ToLower(summary)
	for _, entry := range eventIcons {
		if strings.Contains(lower, entry.keyword) {
			return entry.icon
		}
	}
	return defaultEventIcon
}

// Calendar shows the next few upcoming events from an iCal feed.
type Calendar struct {
	card.Base

	url       string
	maxEvents int
	loc       *time.Location
	now       func() time.Time

	mu     sync.Mutex
	events []model.Event
	errMsg string
}

// DefaultCalendarConfig places the calendar top right.
func DefaultCalendarConfig() card.Config {
	return card.NewConfig("Calendar", card.TopRight, 5*time.Minute,
		card.WithBorderColor("green"),
	)
}

func NewCalendar(cfg card.Config, url string, maxEvents int, loc *time.Location) *Calendar {
	if maxEvents <= 0 {
		maxEvents = 3
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{
		Base:      card.NewBase(cfg),
		url:       url,
		maxEvents: maxEvents,
		loc:       loc,
		now:       time.Now,
	}
}

func (c *Calendar) Refresh(ctx context.Context) error {
	body, err := ics.Fetch(ctx, c.url)
	if err != nil {
		c.setError(err)
		return card.WrapErr(card.KindFetch, err)
	}

	parsed, err := ics.ParseICS(body)
	if err != nil {
		c.setError(err)
		return card.WrapErr(card.KindParse, err)
	}

	events := ics.Upcoming(parsed, c.now(), ics.DefaultWindow)

	c.mu.Lock()
	c.events = events
	c.errMsg = ""
	c.mu.Unlock()
	return nil
}

func (c *Calendar) setError(err error) {
	c.mu.Lock()
	c.errMsg = errText(err)
	c.mu.Unlock()
}

func (c *Calendar) View(width int) string {
	c.mu.Lock()
	events := c.events
	errMsg := c.errMsg
	c.mu.Unlock()

	if errMsg != "" {
		return calendarErrStyle.Render("Calendar Error") + "\n" + errMsg
	}
	if len(events) == 0 {
		return defaultEventIcon + "  No upcoming events"
	}

	now := c.now().In(c.loc)
	var lines []string
	for i, ev := range events {
		if i >= c.maxEvents {
			break
		}
		style := calendarRestStyle
		if i == 0 {
			style = calendarFirstStyle
		}
		label := RelativeDay(ev.Start.In(c.loc), now, ev.AllDay)
		lines = append(lines,
			style.Render(IconFor(ev.Summary)+" "+ev.Summary),
			style.Render("   "+label),
		)
		if i < c.maxEvents-1 && i < len(events)-1 {
			lines = append(lines, "")
		}
	}
	return strings.Join(lines, "\n")
}

// RelativeDay renders an event start relative to now: "Today HH:MM",
// "Tomorrow HH:MM", otherwise abbreviated weekday, month and day. All-day
// events get the day label without a clock time.
func RelativeDay(start, now time.Time, allDay bool) string {
	var day string
	switch {
	case sameDate(start, now):
		day = "Today"
	case sameDate(start, now.AddDate(0, 0, 1)):
		day = "Tomorrow"
	default:
		if allDay {
			return start.Format("Mon Jan 2")
		}
		return start.Format("Mon Jan 2, 15:04")
	}
	if allDay {
		return day
	}
	return day + " " + start.Format("15:04")
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
