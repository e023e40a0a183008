package cards

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"smartmirror/internal/card"
)

var greeterStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))

// Greeter shows a time-of-day greeting addressed to the current user.
// The displayed name can be replaced at any moment through SetUserName
// (the presence-detection path), independent of the refresh interval.
type Greeter struct {
	card.Base

	now func() time.Time

	mu       sync.Mutex
	userName string
	greeting string
}

// DefaultGreeterConfig places the greeter dead center, borderless.
func DefaultGreeterConfig() card.Config {
	return card.NewConfig("Greeter", card.MiddleCenter, 5*time.Minute,
		card.WithBorder(false),
		card.WithTitle(false),
	)
}

func NewGreeter(cfg card.Config, userName string) *Greeter {
	g := &Greeter{
		Base:     card.NewBase(cfg),
		now:      time.Now,
		userName: userName,
	}
	g.greeting = GreetingForHour(g.now().Hour())
	return g
}

// GreetingForHour maps an hour of day to its greeting phrase. Buckets:
// 5-11 morning, 12-16 afternoon, 17-21 evening, everything else night.
func GreetingForHour(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "Good morning"
	case hour >= 12 && hour < 17:
		return "Good afternoon"
	case hour >= 17 && hour < 22:
		return "Good evening"
	default:
		return "Good night"
	}
}

func (g *Greeter) Refresh(ctx context.Context) error {
	greeting := GreetingForHour(g.now().Hour())
	g.mu.Lock()
	g.greeting = greeting
	g.mu.Unlock()
	return nil
}

// SetUserName replaces the displayed name immediately.
func (g *Greeter) SetUserName(name string) {
	g.mu.Lock()
	g.userName = name
	g.mu.Unlock()
}

// UserName returns the currently displayed name.
func (g *Greeter) UserName() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.userName
}

func (g *Greeter) View(width int) string {
	g.mu.Lock()
	text := fmt.Sprintf("%s, %s!", g.greeting, g.userName)
	g.mu.Unlock()
	return greeterStyle.Render(text)
}
