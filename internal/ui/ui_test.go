package ui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartmirror/internal/app"
	"smartmirror/internal/card"
)

type fixedCard struct {
	card.Base
	content string
}

func newFixedCard(name string, pos card.Position, content string) *fixedCard {
	return &fixedCard{
		Base:    card.NewBase(card.NewConfig(name, pos, time.Hour)),
		content: content,
	}
}

func (c *fixedCard) Refresh(ctx context.Context) error { return nil }
func (c *fixedCard) View(width int) string             { return c.content }

func sized(m Model, w, h int) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return next.(Model)
}

func TestViewBeforeFirstWindowSize(t *testing.T) {
	m := New(app.New(nil))
	assert.Equal(t, "starting...", m.View())
}

func TestViewRendersRegisteredCards(t *testing.T) {
	registry := app.New(nil)
	registry.Register(newFixedCard("Clock", card.TopCenter, "12:34:56"))
	registry.Register(newFixedCard("Weather", card.BottomLeft, "Sunny"))

	m := sized(New(registry), 120, 30)
	view := m.View()
	assert.Contains(t, view, "12:34:56")
	assert.Contains(t, view, "Sunny")
	assert.Contains(t, view, "Clock", "title line is shown by default")
}

func TestViewSkipsDisabledCards(t *testing.T) {
	registry := app.New(nil)
	disabled := &fixedCard{
		Base: card.NewBase(card.NewConfig("Hidden", card.TopLeft, time.Hour,
			card.WithEnabled(false))),
		content: "should not appear",
	}
	registry.Register(disabled)

	m := sized(New(registry), 120, 30)
	assert.NotContains(t, m.View(), "should not appear")
}

func TestUpdateQuitKeys(t *testing.T) {
	m := sized(New(app.New(nil)), 120, 30)

	for _, key := range []string{"q", "ctrl+c"} {
		var msg tea.Msg
		if key == "q" {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		}
		_, cmd := m.Update(msg)
		require.NotNil(t, cmd, key)
	}
}

func TestUpdateCardUpdatedMsgRepaints(t *testing.T) {
	m := sized(New(app.New(nil)), 120, 30)
	next, cmd := m.Update(CardUpdatedMsg{Name: "Clock"})
	assert.Nil(t, cmd)
	assert.NotNil(t, next)
}

func TestClampLines(t *testing.T) {
	assert.Equal(t, "a\nb", clampLines("a\nb\nc\nd", 2))
	assert.Equal(t, "a\nb", clampLines("a\nb", 5))
	assert.Equal(t, "", clampLines("a\nb", 0))
}
