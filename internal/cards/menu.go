package cards

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"smartmirror/internal/card"
	"smartmirror/internal/menu"
)

var (
	menuTodayStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	menuRestStyle  = lipgloss.NewStyle().Faint(true)
)

// Menu shows the cafeteria lunch menu for the week, today's section
// first.
type Menu struct {
	card.Base

	fetcher *menu.Fetcher
	now     func() time.Time

	mu     sync.Mutex
	week   []menu.DayMenu
	errMsg string
}

// DefaultMenuConfig places the menu bottom right; the page changes rarely
// so six hours between scrapes is plenty.
func DefaultMenuConfig() card.Config {
	return card.NewConfig("Menu", card.BottomRight, 6*time.Hour,
		card.WithBorder(false),
		card.WithTitle(false),
	)
}

func NewMenu(cfg card.Config, fetcher *menu.Fetcher) *Menu {
	return &Menu{
		Base:    card.NewBase(cfg),
		fetcher: fetcher,
		now:     time.Now,
	}
}

func (m *Menu) Refresh(ctx context.Context) error {
	text, err := m.fetcher.FetchText(ctx)
	if err != nil {
		m.mu.Lock()
		m.errMsg = errText(err)
		m.mu.Unlock()
		return card.WrapErr(card.KindFetch, err)
	}

	week := menu.ParseWeek(text)
	if len(week) == 0 {
		err := card.Errf(card.KindParse, "no weekday sections found in menu page")
		m.mu.Lock()
		m.errMsg = errText(err)
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	m.week = week
	m.errMsg = ""
	m.mu.Unlock()
	return nil
}

func (m *Menu) View(width int) string {
	m.mu.Lock()
	week := m.week
	errMsg := m.errMsg
	m.mu.Unlock()

	if errMsg != "" {
		return errMsg
	}
	if len(week) == 0 {
		return "Loading menu..."
	}

	now := m.now()
	var lines []string

	if today, ok := menu.Today(week, now); ok {
		lines = append(lines, menuTodayStyle.Render("Today"))
		lines = append(lines, dishes(today, menuTodayStyle)...)
		for _, day := range week {
			if day.Weekday == today.Weekday {
				continue
			}
			lines = append(lines, "", menuRestStyle.Render(day.Day))
			lines = append(lines, dishes(day, menuRestStyle)...)
		}
	} else {
		// Weekend or stale page: show the whole week as-is.
		for i, day := range week {
			if i > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, menuRestStyle.Render(day.Day))
			lines = append(lines, dishes(day, menuRestStyle)...)
		}
	}

	return strings.Join(lines, "\n")
}

func dishes(day menu.DayMenu, style lipgloss.Style) []string {
	out := make([]string, 0, len(day.Dishes))
	for _, dish := range day.Dishes {
		out = append(out, style.Render("• "+dish))
	}
	return out
}
