package cards

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"smartmirror/internal/card"
)

var (
	clockTimeStyle = lipgloss.NewStyle().Bold(true)
	clockDateStyle = lipgloss.NewStyle().Faint(true)
)

// Clock shows the current time and date, refreshed every second.
type Clock struct {
	card.Base

	loc *time.Location
	now func() time.Time

	mu      sync.Mutex
	current time.Time
}

// DefaultClockConfig places the clock top center without a title.
func DefaultClockConfig() card.Config {
	return card.NewConfig("Clock", card.TopCenter, time.Second,
		card.WithTitle(false),
		card.WithBorderColor("cyan"),
	)
}

func NewClock(cfg card.Config, loc *time.Location) *Clock {
	if loc == nil {
		loc = time.Local
	}
	return &Clock{
		Base: card.NewBase(cfg),
		loc:  loc,
		now:  time.Now,
	}
}

func (c *Clock) Refresh(ctx context.Context) error {
	now := c.now().In(c.loc)
	c.mu.Lock()
	c.current = now
	c.mu.Unlock()
	return nil
}

func (c *Clock) View(width int) string {
	c.mu.Lock()
	current := c.current
	c.mu.Unlock()

	if current.IsZero() {
		return "--:--:--"
	}
	return clockTimeStyle.Render(current.Format("15:04:05")) + "\n" +
		clockDateStyle.Render(current.Format("Monday, January 2, 2006"))
}
